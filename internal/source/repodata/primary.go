package repodata

import (
	"encoding/xml"
	"fmt"

	"github.com/resf/repoview/internal/models"
)

// XML structures for primary.xml

type primaryMetadata struct {
	XMLName  xml.Name         `xml:"metadata"`
	Count    int              `xml:"packages,attr"`
	Packages []primaryPackage `xml:"package"`
}

type primaryPackage struct {
	Type        string          `xml:"type,attr"`
	Name        string          `xml:"name"`
	Arch        string          `xml:"arch"`
	Version     primaryVersion  `xml:"version"`
	Checksum    primaryChecksum `xml:"checksum"`
	Summary     string          `xml:"summary"`
	Description string          `xml:"description"`
	URL         string          `xml:"url"`
	Time        primaryTime     `xml:"time"`
	Size        primarySize     `xml:"size"`
	Location    primaryLocation `xml:"location"`
	Format      primaryFormat   `xml:"format"`
}

type primaryVersion struct {
	Epoch string `xml:"epoch,attr"`
	Ver   string `xml:"ver,attr"`
	Rel   string `xml:"rel,attr"`
}

type primaryChecksum struct {
	Type  string `xml:"type,attr"`
	Pkgid string `xml:"pkgid,attr"`
	Value string `xml:",chardata"`
}

type primaryTime struct {
	File  int64 `xml:"file,attr"`
	Build int64 `xml:"build,attr"`
}

type primarySize struct {
	Package   int64 `xml:"package,attr"`
	Installed int64 `xml:"installed,attr"`
	Archive   int64 `xml:"archive,attr"`
}

type primaryLocation struct {
	Href    string `xml:"href,attr"`
	XMLBase string `xml:"base,attr"`
}

type primaryFormat struct {
	License   string   `xml:"license"`
	Vendor    string   `xml:"vendor"`
	Group     string   `xml:"group"`
	SourceRPM string   `xml:"sourcerpm"`
	Files     []string `xml:"file"`
}

// parsePrimary converts primary.xml into version records keyed by pkgid.
// The returned slice preserves document order; that order is the stable
// tiebreak everywhere downstream.
func parsePrimary(data []byte) ([]string, map[string]*models.VersionRecord, error) {
	var md primaryMetadata
	if err := xml.Unmarshal(data, &md); err != nil {
		return nil, nil, fmt.Errorf("failed to parse primary metadata: %w", err)
	}

	pkgids := make([]string, 0, len(md.Packages))
	byPkgid := make(map[string]*models.VersionRecord, len(md.Packages))

	for _, pkg := range md.Packages {
		remote := ""
		if pkg.Location.XMLBase != "" {
			remote = pkg.Location.XMLBase + "/" + pkg.Location.Href
		}

		rec := &models.VersionRecord{
			Name: pkg.Name,
			Key: models.VersionKey{
				Epoch:   pkg.Version.Epoch,
				Version: pkg.Version.Ver,
				Release: pkg.Version.Rel,
				Arch:    pkg.Arch,
			},
			Summary:        pkg.Summary,
			Description:    pkg.Description,
			URL:            pkg.URL,
			Buildtime:      pkg.Time.Build,
			License:        pkg.Format.License,
			SourceRPM:      pkg.Format.SourceRPM,
			Size:           pkg.Size.Package,
			Location:       pkg.Location.Href,
			RemoteLocation: remote,
			Vendor:         pkg.Format.Vendor,
			RPMGroup:       pkg.Format.Group,
			Files:          pkg.Format.Files,
		}

		pkgid := pkg.Checksum.Value
		if pkgid == "" {
			return nil, nil, fmt.Errorf("package %s has no checksum in primary metadata", pkg.Name)
		}
		if _, dup := byPkgid[pkgid]; dup {
			// same artifact listed twice, keep the first
			continue
		}

		pkgids = append(pkgids, pkgid)
		byPkgid[pkgid] = rec
	}

	return pkgids, byPkgid, nil
}
