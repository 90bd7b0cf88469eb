package repodata

import "encoding/xml"

// repomd mirrors repodata/repomd.xml as far as reading goes
type repomd struct {
	XMLName  xml.Name      `xml:"repomd"`
	Revision string        `xml:"revision"`
	Data     []repomdEntry `xml:"data"`
}

type repomdEntry struct {
	Type     string         `xml:"type,attr"`
	Checksum repomdChecksum `xml:"checksum"`
	Location repomdLocation `xml:"location"`
	Size     int64          `xml:"size"`
	OpenSize int64          `xml:"open-size"`
}

type repomdChecksum struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type repomdLocation struct {
	Href string `xml:"href,attr"`
}
