package rpmdir

import (
	"fmt"
	"os"
	"strings"

	"github.com/resf/repoview/internal/models"
	"github.com/sassoftware/go-rpmutils"
)

// parseRPM reads one rpm header and converts it into a version record
func parseRPM(path string) (*models.VersionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read RPM: %w", err)
	}

	nevra, err := rpm.Header.GetNEVRA()
	if err != nil {
		return nil, fmt.Errorf("failed to read NEVRA: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	rec := &models.VersionRecord{
		Name: nevra.Name,
		Key: models.VersionKey{
			Epoch:   nevra.Epoch,
			Version: nevra.Version,
			Release: nevra.Release,
			Arch:    nevra.Arch,
		},
		Summary:     getStringTag(rpm, rpmutils.SUMMARY),
		Description: getStringTag(rpm, rpmutils.DESCRIPTION),
		URL:         getStringTag(rpm, rpmutils.URL),
		Buildtime:   getIntTag(rpm, rpmutils.BUILDTIME),
		License:     getStringTag(rpm, rpmutils.LICENSE),
		SourceRPM:   getStringTag(rpm, rpmutils.SOURCERPM),
		Size:        info.Size(),
		Vendor:      getStringTag(rpm, rpmutils.VENDOR),
		RPMGroup:    getStringTag(rpm, rpmutils.GROUP),
		Changelog:   getChangelog(rpm),
	}

	if files, err := rpm.Header.GetFiles(); err == nil {
		for _, file := range files {
			rec.Files = append(rec.Files, file.Name())
		}
	}

	return rec, nil
}

// getChangelog zips the three parallel changelog header arrays. rpm stores
// them newest first already.
func getChangelog(rpm *rpmutils.Rpm) []models.ChangelogEntry {
	authors := getStringSliceTag(rpm, rpmutils.CHANGELOGNAME)
	times := getIntSliceTag(rpm, rpmutils.CHANGELOGTIME)
	texts := getStringSliceTag(rpm, rpmutils.CHANGELOGTEXT)

	var entries []models.ChangelogEntry
	for i := range authors {
		entry := models.ChangelogEntry{Author: authors[i]}
		if i < len(times) {
			entry.Date = times[i]
		}
		if i < len(texts) {
			entry.Text = texts[i]
		}
		entries = append(entries, entry)
	}
	return entries
}

// getStringTag safely gets a string tag from RPM
func getStringTag(rpm *rpmutils.Rpm, tag int) string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return ""
	}

	// Handle different types that might be returned
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	default:
		return fmt.Sprintf("%v", v)
	}

	return ""
}

// getIntTag safely gets an integer tag from RPM
func getIntTag(rpm *rpmutils.Rpm, tag int) int64 {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return 0
	}
	switch v := val.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case []int32:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []uint32:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []uint64:
		if len(v) > 0 {
			return int64(v[0])
		}
	}
	return 0
}

// getStringSliceTag safely gets a string slice tag from RPM
func getStringSliceTag(rpm *rpmutils.Rpm, tag int) []string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return nil
	}
	if slice, ok := val.([]string); ok {
		var result []string
		for _, s := range slice {
			result = append(result, strings.TrimRight(s, "\n"))
		}
		return result
	}
	return nil
}

// getIntSliceTag safely gets an integer slice tag from RPM
func getIntSliceTag(rpm *rpmutils.Rpm, tag int) []int64 {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return nil
	}
	switch v := val.(type) {
	case []int32:
		result := make([]int64, len(v))
		for i, n := range v {
			result[i] = int64(n)
		}
		return result
	case []uint32:
		result := make([]int64, len(v))
		for i, n := range v {
			result[i] = int64(n)
		}
		return result
	case []int64:
		return v
	case []uint64:
		result := make([]int64, len(v))
		for i, n := range v {
			result[i] = int64(n)
		}
		return result
	}
	return nil
}
