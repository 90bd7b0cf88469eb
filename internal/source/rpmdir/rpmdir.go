// Package rpmdir builds repository metadata straight from a directory of
// .rpm files, for trees that have no repodata. Headers are read with
// go-rpmutils; payloads are never unpacked.
package rpmdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/resf/repoview/internal/models"
	"github.com/resf/repoview/internal/source"
	"github.com/sirupsen/logrus"
)

// Load walks dir for .rpm files and indexes their headers. Files that fail
// to parse are skipped with a warning; a directory yielding no usable
// packages is an error.
func Load(ctx context.Context, dir string) (*source.Snapshot, error) {
	var records []models.VersionRecord

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() || !strings.HasSuffix(path, ".rpm") {
			return nil
		}

		rec, err := parseRPM(path)
		if err != nil {
			logrus.Warnf("Failed to parse %s: %v", path, err)
			return nil
		}

		if rel, relErr := filepath.Rel(dir, path); relErr == nil {
			rec.Location = filepath.ToSlash(rel)
		} else {
			rec.Location = filepath.Base(path)
		}

		logrus.Debugf("Found package %s at %s", rec.Name, rec.Location)
		records = append(records, *rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no rpm packages found in %s", dir)
	}

	logrus.Infof("Found %d packages in %s", len(records), dir)
	return source.NewSnapshot(records, groupsFromHeaders(records), nil, true), nil
}

// groupsFromHeaders synthesizes one curated group per distinct RPM group
// header string, so bare directories still get browsable groups.
func groupsFromHeaders(records []models.VersionRecord) []models.GroupDefinition {
	members := make(map[string][]string)
	for _, rec := range records {
		if rec.RPMGroup == "" {
			continue
		}
		members[rec.RPMGroup] = append(members[rec.RPMGroup], rec.Name)
	}

	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]models.GroupDefinition, 0, len(names))
	for _, name := range names {
		defs = append(defs, models.GroupDefinition{
			ID:          name,
			Name:        name,
			Description: fmt.Sprintf("Packages in the %s group", name),
			Visible:     true,
			Packages:    members[name],
		})
	}
	return defs
}
