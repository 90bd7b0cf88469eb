package repodata

import (
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/resf/repoview/internal/models"
)

// XML structures for other.xml (changelogs) and filelists.xml

type otherData struct {
	XMLName  xml.Name       `xml:"otherdata"`
	Packages []otherPackage `xml:"package"`
}

type otherPackage struct {
	Pkgid     string           `xml:"pkgid,attr"`
	Name      string           `xml:"name,attr"`
	Changelog []otherChangelog `xml:"changelog"`
}

type otherChangelog struct {
	Author string `xml:"author,attr"`
	Date   int64  `xml:"date,attr"`
	Text   string `xml:",chardata"`
}

type filelistsData struct {
	XMLName  xml.Name           `xml:"filelists"`
	Packages []filelistsPackage `xml:"package"`
}

type filelistsPackage struct {
	Pkgid string   `xml:"pkgid,attr"`
	Name  string   `xml:"name,attr"`
	Files []string `xml:"file"`
}

// mergeChangelogs attaches changelog entries from other.xml to the records
// parsed out of primary. Entries end up newest first regardless of how the
// metadata writer ordered them.
func mergeChangelogs(data []byte, byPkgid map[string]*models.VersionRecord) error {
	var od otherData
	if err := xml.Unmarshal(data, &od); err != nil {
		return fmt.Errorf("failed to parse other metadata: %w", err)
	}

	for _, pkg := range od.Packages {
		rec, ok := byPkgid[pkg.Pkgid]
		if !ok {
			continue
		}

		entries := make([]models.ChangelogEntry, 0, len(pkg.Changelog))
		for _, change := range pkg.Changelog {
			entries = append(entries, models.ChangelogEntry{
				Author: change.Author,
				Date:   change.Date,
				Text:   change.Text,
			})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Date > entries[j].Date
		})
		rec.Changelog = entries
	}

	return nil
}

// mergeFilelists replaces the partial file list carried by primary with the
// complete one from filelists.xml.
func mergeFilelists(data []byte, byPkgid map[string]*models.VersionRecord) error {
	var fd filelistsData
	if err := xml.Unmarshal(data, &fd); err != nil {
		return fmt.Errorf("failed to parse filelists metadata: %w", err)
	}

	for _, pkg := range fd.Packages {
		rec, ok := byPkgid[pkg.Pkgid]
		if !ok {
			continue
		}
		if len(pkg.Files) > 0 {
			rec.Files = pkg.Files
		}
	}

	return nil
}
