package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/resf/repoview/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepoData() RepoData {
	return RepoData{
		Title:       "Test Repository",
		Link:        "https://example.com/repo",
		Description: "Test packages",
		Version:     "0.1.0",
		Date:        "2024-01-01",
	}
}

func TestRenderPackagePage(t *testing.T) {
	renderer, err := New("")
	require.NoError(t, err)

	pkg := &models.PackageAggregate{
		Name:     "bash",
		Filename: "bash.html",
		Summary:  "The GNU Bourne Again shell",
		License:  "GPLv3+",
		Versions: []models.VersionInfo{
			{
				Version:   "5.2.15",
				Release:   "3.el9",
				Arch:      "x86_64",
				Buildtime: 1700000000,
				Size:      "1.75 MiB",
				Changelog: []models.ChangelogEntry{
					{Author: "Jane Doe", Date: 1700000000, Text: "- rebase"},
				},
			},
		},
	}

	out, err := renderer.Render(KindPackage, PackageData{
		Repo:    testRepoData(),
		Group:   &models.Group{Name: "Core"},
		Package: pkg,
	})
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "bash")
	assert.Contains(t, page, "The GNU Bourne Again shell")
	assert.Contains(t, page, "GPLv3+")
	assert.Contains(t, page, "5.2.15")
	assert.Contains(t, page, "1.75 MiB")
	assert.Contains(t, page, "Jane Doe")
	// the date helper formats unix seconds
	assert.Contains(t, page, "2023-11-14")
}

func TestRenderGroupPage(t *testing.T) {
	renderer, err := New("")
	require.NoError(t, err)

	out, err := renderer.Render(KindGroup, GroupData{
		Repo: testRepoData(),
		Group: &models.Group{
			Name:        "Core",
			Description: "Smallest possible installation",
			Filename:    "core.group.html",
			Packages: []models.GroupPackage{
				{Name: "bash", Filename: "bash.html", Summary: "The GNU Bourne Again shell"},
			},
		},
	})
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "Core")
	assert.Contains(t, page, "bash.html")
}

func TestRenderIndexPage(t *testing.T) {
	renderer, err := New("")
	require.NoError(t, err)

	out, err := renderer.Render(KindIndex, IndexData{
		Repo: testRepoData(),
		Groups: []*models.Group{
			{Name: "Core", Filename: "core.group.html"},
		},
		Latest: []models.LatestEntry{
			{Name: "bash", Filename: "bash.html", Version: "5.2.15", Release: "3.el9", Buildtime: 1700000000},
		},
	})
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "Test Repository")
	assert.Contains(t, page, "core.group.html")
	assert.Contains(t, page, "bash.html")
}

func TestRenderEscapesMetadata(t *testing.T) {
	renderer, err := New("")
	require.NoError(t, err)

	out, err := renderer.Render(KindGroup, GroupData{
		Repo: testRepoData(),
		Group: &models.Group{
			Name:        "<script>alert(1)</script>",
			Description: "desc",
		},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>alert(1)</script>")
}

func TestRenderTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "index.html.tmpl")
	require.NoError(t, os.WriteFile(custom, []byte("custom: {{ .Repo.Title }}"), 0644))

	renderer, err := New(dir)
	require.NoError(t, err)

	out, err := renderer.Render(KindIndex, IndexData{Repo: testRepoData()})
	require.NoError(t, err)
	assert.Equal(t, "custom: Test Repository", string(out))

	// non-overridden kinds fall back to embedded templates
	out, err = renderer.Render(KindGroup, GroupData{Repo: testRepoData(), Group: &models.Group{Name: "Core"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Core")
}
