// Package repodata loads repository metadata from a local createrepo-style
// tree: repomd.xml plus the primary, other, filelists and comps payloads it
// points at.
package repodata

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/resf/repoview/internal/models"
	"github.com/resf/repoview/internal/source"
	"github.com/resf/repoview/internal/utils"
	"github.com/sirupsen/logrus"
)

// RepomdPath returns the location of repomd.xml inside a repository tree
func RepomdPath(dir string) string {
	return filepath.Join(dir, "repodata", "repomd.xml")
}

// Load reads a repository tree rooted at dir and indexes its metadata.
// primary data is required; other (changelogs), filelists and group data
// are optional and degrade the view when absent.
func Load(dir string) (*source.Snapshot, error) {
	repomdData, err := os.ReadFile(RepomdPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read repomd.xml: %w", err)
	}

	var md repomd
	if err := xml.Unmarshal(repomdData, &md); err != nil {
		return nil, fmt.Errorf("failed to parse repomd.xml: %w", err)
	}

	entries := make(map[string]repomdEntry)
	for _, entry := range md.Data {
		entries[entry.Type] = entry
	}

	primaryEntry, ok := entries["primary"]
	if !ok {
		return nil, fmt.Errorf("repomd.xml has no primary entry")
	}

	primaryData, err := readEntry(dir, primaryEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to read primary metadata: %w", err)
	}

	pkgids, byPkgid, err := parsePrimary(primaryData)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Parsed %d version records from primary metadata", len(pkgids))

	hasChangelogs := false
	if otherEntry, ok := entries["other"]; ok {
		otherData, err := readEntry(dir, otherEntry)
		if err != nil {
			return nil, fmt.Errorf("failed to read other metadata: %w", err)
		}
		if err := mergeChangelogs(otherData, byPkgid); err != nil {
			return nil, err
		}
		hasChangelogs = true
	}

	if filelistsEntry, ok := entries["filelists"]; ok {
		filelistsData, err := readEntry(dir, filelistsEntry)
		if err != nil {
			return nil, fmt.Errorf("failed to read filelists metadata: %w", err)
		}
		if err := mergeFilelists(filelistsData, byPkgid); err != nil {
			return nil, err
		}
	}

	var groups []models.GroupDefinition
	var envs []string
	if compsEntry, ok := findCompsEntry(entries); ok {
		compsData, err := readEntry(dir, compsEntry)
		if err != nil {
			return nil, fmt.Errorf("failed to read group metadata: %w", err)
		}
		groups, envs, err = parseComps(compsData)
		if err != nil {
			return nil, err
		}
		logrus.Debugf("Parsed %d groups and %d environments", len(groups), len(envs))
	}

	return source.NewSnapshot(flatten(pkgids, byPkgid), groups, envs, hasChangelogs), nil
}

// findCompsEntry locates the comps payload. createrepo publishes it under
// type "group" (plain) or "group_gz"/"group_xz"/"group_zst" (compressed);
// prefer the plain one when both exist.
func findCompsEntry(entries map[string]repomdEntry) (repomdEntry, bool) {
	if entry, ok := entries["group"]; ok {
		return entry, true
	}
	for _, t := range []string{"group_gz", "group_xz", "group_zst"} {
		if entry, ok := entries[t]; ok {
			return entry, true
		}
	}
	return repomdEntry{}, false
}

// readEntry opens a repomd data file, checks its digest and decompresses it
func readEntry(dir string, entry repomdEntry) ([]byte, error) {
	path := filepath.Join(dir, filepath.FromSlash(entry.Location.Href))

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if entry.Checksum.Type == "sha256" && entry.Checksum.Value != "" {
		if sum := utils.SHA256Sum(raw); sum != entry.Checksum.Value {
			return nil, fmt.Errorf("checksum mismatch for %s: repomd lists %s, file has %s",
				entry.Location.Href, entry.Checksum.Value, sum)
		}
	} else if entry.Checksum.Type != "" && entry.Checksum.Type != "sha256" {
		logrus.Warnf("Skipping %s digest check for %s", entry.Checksum.Type, entry.Location.Href)
	}

	r, err := utils.DecompressReader(entry.Location.Href, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", entry.Location.Href, err)
	}

	return io.ReadAll(r)
}

// flatten returns the records in primary order with merged data applied
func flatten(order []string, byPkgid map[string]*models.VersionRecord) []models.VersionRecord {
	records := make([]models.VersionRecord, 0, len(order))
	for _, pkgid := range order {
		records = append(records, *byPkgid[pkgid])
	}
	return records
}
