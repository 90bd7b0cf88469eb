package resolver

import (
	"testing"

	"github.com/resf/repoview/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(epoch, version, release, arch string) models.VersionRecord {
	return models.VersionRecord{
		Name: "pkg",
		Key: models.VersionKey{
			Epoch:   epoch,
			Version: version,
			Release: release,
			Arch:    arch,
		},
	}
}

func TestResolveNoRecords(t *testing.T) {
	assert.Nil(t, Resolve("gone", nil))
	assert.Nil(t, Resolve("gone", []models.VersionRecord{}))
}

func TestResolveOrdersNewestFirst(t *testing.T) {
	// multilib pair at 1,2,3 plus a newer 1,2,4 build, deliberately fed
	// out of order
	records := []models.VersionRecord{
		record("1", "2", "3", "x86_64"),
		record("1", "2", "3", "aarch64"),
		record("1", "2", "4", "x86_64"),
	}

	agg := Resolve("pkg", records)
	require.NotNil(t, agg)
	require.Len(t, agg.Versions, 3)

	assert.Equal(t, "4", agg.Versions[0].Release)
	assert.Equal(t, "x86_64", agg.Versions[0].Arch)
	// the equal-EVR pair keeps its ingestion order
	assert.Equal(t, "3", agg.Versions[1].Release)
	assert.Equal(t, "x86_64", agg.Versions[1].Arch)
	assert.Equal(t, "3", agg.Versions[2].Release)
	assert.Equal(t, "aarch64", agg.Versions[2].Arch)
}

func TestResolveCollapsesExactDuplicates(t *testing.T) {
	records := []models.VersionRecord{
		record("0", "1.0", "1", "noarch"),
		record("0", "1.0", "1", "noarch"),
	}

	agg := Resolve("pkg", records)
	require.NotNil(t, agg)
	assert.Len(t, agg.Versions, 1)
}

func TestResolveSharedFieldsComeFromNewestRecord(t *testing.T) {
	older := record("0", "1.0", "1", "x86_64")
	older.Summary = "old summary"
	older.Description = "old description"
	older.Vendor = "Old Vendor"

	newer := record("0", "2.0", "1", "x86_64")
	newer.Summary = "new summary"
	newer.Description = "new description"
	newer.URL = "https://example.com"
	newer.License = "MIT"
	newer.SourceRPM = "pkg-2.0-1.src.rpm"
	newer.Vendor = "New Vendor"

	agg := Resolve("pkg", []models.VersionRecord{older, newer})
	require.NotNil(t, agg)

	assert.Equal(t, "new summary", agg.Summary)
	assert.Equal(t, "new description", agg.Description)
	assert.Equal(t, "https://example.com", agg.URL)
	assert.Equal(t, "MIT", agg.License)
	assert.Equal(t, "pkg-2.0-1.src.rpm", agg.SourceRPM)
	assert.Equal(t, "New Vendor", agg.Vendor)
}

func TestResolveFilenameIsSlugged(t *testing.T) {
	rec := record("0", "1.0", "1", "noarch")
	agg := Resolve("my lib/core", []models.VersionRecord{rec})
	require.NotNil(t, agg)
	assert.Equal(t, "my_lib.core.html", agg.Filename)
}

func TestResolveTrimsChangelog(t *testing.T) {
	rec := record("0", "1.0", "1", "x86_64")
	rec.Changelog = []models.ChangelogEntry{
		{Author: "Jane Doe <jane@example.com>", Date: 300, Text: "update"},
		{Author: "builder", Date: 200, Text: "rebuild"},
		{Author: "Old Hand <old@example.com>", Date: 100, Text: "initial"},
	}

	agg := Resolve("pkg", []models.VersionRecord{rec})
	require.NotNil(t, agg)
	require.Len(t, agg.Versions, 1)

	changelog := agg.Versions[0].Changelog
	require.Len(t, changelog, 2)
	assert.Equal(t, "Jane Doe", changelog[0].Author)
	assert.Equal(t, "builder", changelog[1].Author)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "0 Bytes", HumanSize(0))
	assert.Equal(t, "1023 Bytes", HumanSize(1023))
	// exact multiples keep their decimal part
	assert.Equal(t, "1.0 KiB", HumanSize(1024))
	assert.Equal(t, "1.5 KiB", HumanSize(1536))
	assert.Equal(t, "2.0 KiB", HumanSize(2048))
	assert.Equal(t, "1.0 MiB", HumanSize(1024*1024))
	assert.Equal(t, "2.5 MiB", HumanSize(1024*1024*5/2))
}
