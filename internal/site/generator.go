// Package site holds the generation core: group construction and the
// single-pass orchestrator that resolves packages and emits the page tree.
package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/resf/repoview/internal/models"
	"github.com/resf/repoview/internal/render"
	"github.com/resf/repoview/internal/resolver"
	"github.com/resf/repoview/internal/source"
	"github.com/resf/repoview/internal/utils"
	"github.com/sirupsen/logrus"
)

// ToolVersion is the repoview release tag shown in page footers
const ToolVersion = "0.1.0"

const fileIndex = "index.html"

// Generator drives one full site generation pass. The memo map is owned by
// the instance, so repeated runs in one process stay isolated.
type Generator struct {
	src      source.Source
	renderer render.Renderer
	config   *models.SiteConfig

	// memo holds one resolution outcome per package name for the whole
	// run; a present nil entry marks a name known to have no data
	memo map[string]*models.PackageAggregate
}

// New creates a generator for one run
func New(src source.Source, renderer render.Renderer, config *models.SiteConfig) *Generator {
	return &Generator{
		src:      src,
		renderer: renderer,
		config:   config,
		memo:     make(map[string]*models.PackageAggregate),
	}
}

// Run executes the whole pass: output setup, group resolution, package and
// group page emission, latest list, index. Strictly sequential, no
// backtracking; the first fatal error aborts the run and leaves partial
// output behind for the next full refresh to replace.
func (g *Generator) Run() error {
	if err := g.setupOutput(); err != nil {
		return err
	}

	if !g.src.HasChangelogs() {
		logrus.Warn("Source provides no changelog data, package pages will omit changelogs")
	}

	logrus.Info("Obtaining group information")
	groups := BuildCuratedGroups(g.src.GroupDefinitions())

	names := g.src.PackageNames()
	logrus.Info("Getting letter group package lists")
	letters := Letters(names)
	groups = append(groups, BuildLetterGroups(names)...)

	repo := render.RepoData{
		Title:        g.config.Title,
		Link:         g.config.Link,
		Description:  g.config.Description,
		Version:      ToolVersion,
		Date:         time.Now().UTC().Format("2006-01-02"),
		Letters:      letters,
		Environments: g.src.Environments(),
	}

	logrus.Info("Processing group data")
	var published []*models.Group
	for _, group := range groups {
		if err := g.resolveGroup(repo, group); err != nil {
			return err
		}

		// empty groups are discovered only after resolution, since
		// comps rosters may reference retired packages
		if len(group.Packages) == 0 {
			logrus.Infof("Group %s is empty", group.Name)
			continue
		}

		logrus.Debugf("Writing group %s", group.Name)
		out, err := g.renderer.Render(render.KindGroup, render.GroupData{Repo: repo, Group: group})
		if err != nil {
			return &models.ViewError{Type: models.ErrRender, Subject: group.Name, Err: err}
		}
		if err := g.writeFile(group.Filename, out); err != nil {
			return err
		}
		published = append(published, group)
	}

	logrus.Infof("Getting %d of the latest packages", g.config.Latest)
	latest := g.latest()

	logrus.Info("Writing index")
	out, err := g.renderer.Render(render.KindIndex, render.IndexData{
		Repo:   repo,
		Groups: published,
		Latest: latest,
	})
	if err != nil {
		return &models.ViewError{Type: models.ErrRender, Subject: fileIndex, Err: err}
	}
	if err := g.writeFile(fileIndex, out); err != nil {
		return err
	}

	logrus.Infof("Generated %d group pages and %d package pages", len(published), g.pagesWritten())
	return nil
}

// resolveGroup resolves every member of a group and fills its package
// list. Each package page is written exactly once per run, when its name
// first resolves; groups sharing a package reuse the memoized aggregate.
func (g *Generator) resolveGroup(repo render.RepoData, group *models.Group) error {
	members := append([]string(nil), group.Members...)
	sort.Strings(members)

	seen := make(map[string]bool, len(members))
	for _, name := range members {
		if seen[name] {
			continue
		}
		seen[name] = true

		agg, cached := g.memo[name]
		if !cached {
			agg = resolver.Resolve(name, g.src.VersionRecords(name))
			g.memo[name] = agg

			if agg != nil {
				logrus.Debugf("Writing package %s to %s", name, agg.Filename)
				out, err := g.renderer.Render(render.KindPackage, render.PackageData{
					Repo:    repo,
					Group:   group,
					Package: agg,
				})
				if err != nil {
					return &models.ViewError{Type: models.ErrRender, Subject: name, Err: err}
				}
				if err := g.writeFile(agg.Filename, out); err != nil {
					return err
				}
			}
		}

		if agg == nil {
			// comps rosters are sometimes just inaccurate
			logrus.Debugf("Group member %s has no data, skipping", name)
			continue
		}

		group.Packages = append(group.Packages, models.GroupPackage{
			Name:     agg.Name,
			Filename: agg.Filename,
			Summary:  agg.Summary,
		})
	}

	return nil
}

// latest picks the newest-built packages for the index. The source
// pre-sorts by buildtime; sorting again keeps the guarantee independent of
// the source implementation while preserving enumeration order on ties.
func (g *Generator) latest() []models.LatestEntry {
	refs := append([]models.NameBuildtime(nil), g.src.PackagesByBuildtime()...)
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Buildtime > refs[j].Buildtime
	})

	entries := make([]models.LatestEntry, 0, g.config.Latest)
	for _, ref := range refs {
		if len(entries) == g.config.Latest {
			break
		}

		agg := g.memo[ref.Name]
		if agg == nil || len(agg.Versions) == 0 {
			continue
		}

		// show the build that owns the buildtime, which is not always the
		// EVR-newest one
		info := agg.Versions[0]
		for _, v := range agg.Versions[1:] {
			if v.Buildtime > info.Buildtime {
				info = v
			}
		}

		entries = append(entries, models.LatestEntry{
			Name:      agg.Name,
			Filename:  agg.Filename,
			Version:   info.Version,
			Release:   info.Release,
			Buildtime: ref.Buildtime,
		})
	}
	return entries
}

// setupOutput refreshes the output directory from scratch and seeds it
// with the template layout when one is bundled.
func (g *Generator) setupOutput() error {
	out := g.config.OutputDir

	if _, err := os.Stat(out); err == nil {
		logrus.Debugf("Removing existing output directory %s", out)
		if err := os.RemoveAll(out); err != nil {
			return &models.ViewError{Type: models.ErrOutputWrite, Subject: out, Err: err}
		}
	}
	if err := utils.EnsureDir(out); err != nil {
		return &models.ViewError{Type: models.ErrOutputWrite, Subject: out, Err: err}
	}

	if g.config.TemplateDir == "" {
		return nil
	}

	layoutSrc := filepath.Join(g.config.TemplateDir, "layout")
	layoutDst := filepath.Join(out, "layout")
	if info, err := os.Stat(layoutSrc); err == nil && info.IsDir() {
		if _, err := os.Stat(layoutDst); os.IsNotExist(err) {
			logrus.Info("Copying layout")
			if err := utils.CopyDir(layoutSrc, layoutDst); err != nil {
				return &models.ViewError{Type: models.ErrOutputWrite, Subject: layoutDst, Err: err}
			}
		}
	}

	return nil
}

// writeFile writes one page under the output directory
func (g *Generator) writeFile(name string, data []byte) error {
	path := filepath.Join(g.config.OutputDir, name)
	if err := utils.WriteFile(path, data, 0644); err != nil {
		return &models.ViewError{
			Type:    models.ErrOutputWrite,
			Subject: name,
			Err:     fmt.Errorf("failed to write %s: %w", path, err),
		}
	}
	return nil
}

// pagesWritten counts distinct package pages emitted this run
func (g *Generator) pagesWritten() int {
	count := 0
	for _, agg := range g.memo {
		if agg != nil {
			count++
		}
	}
	return count
}
