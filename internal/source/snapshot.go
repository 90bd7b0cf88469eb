package source

import (
	"sort"

	"github.com/resf/repoview/internal/models"
)

// Snapshot is an in-memory Source built from a flat record set. The
// concrete loaders parse their inputs into records and group definitions
// and delegate the query surface here. Tests construct Snapshots directly.
type Snapshot struct {
	groups      []models.GroupDefinition
	envs        []string
	records     map[string][]models.VersionRecord
	names       []string
	byBuildtime []models.NameBuildtime
	changelogs  bool
}

// NewSnapshot indexes the given records. Records keep their input order
// within each name; that order is the tiebreak for equal-EVR builds.
func NewSnapshot(records []models.VersionRecord, groups []models.GroupDefinition, envs []string, changelogs bool) *Snapshot {
	s := &Snapshot{
		groups:     groups,
		envs:       envs,
		records:    make(map[string][]models.VersionRecord),
		changelogs: changelogs,
	}

	for _, rec := range records {
		s.records[rec.Name] = append(s.records[rec.Name], rec)
	}

	s.names = make([]string, 0, len(s.records))
	for name := range s.records {
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)

	s.byBuildtime = make([]models.NameBuildtime, 0, len(s.names))
	for _, name := range s.names {
		newest := int64(0)
		for _, rec := range s.records[name] {
			if rec.Buildtime > newest {
				newest = rec.Buildtime
			}
		}
		s.byBuildtime = append(s.byBuildtime, models.NameBuildtime{
			Name:      name,
			Buildtime: newest,
		})
	}
	sort.SliceStable(s.byBuildtime, func(i, j int) bool {
		return s.byBuildtime[i].Buildtime > s.byBuildtime[j].Buildtime
	})

	return s
}

// GroupDefinitions returns comps groups in definition order
func (s *Snapshot) GroupDefinitions() []models.GroupDefinition {
	return s.groups
}

// Environments returns comps environment names in definition order
func (s *Snapshot) Environments() []string {
	return s.envs
}

// VersionRecords returns every known build of the named package
func (s *Snapshot) VersionRecords(name string) []models.VersionRecord {
	return s.records[name]
}

// PackageNames returns the sorted universe of package names
func (s *Snapshot) PackageNames() []string {
	return s.names
}

// PackagesByBuildtime returns one entry per name, newest build first
func (s *Snapshot) PackagesByBuildtime() []models.NameBuildtime {
	return s.byBuildtime
}

// HasChangelogs reports whether the loader supplied changelog data
func (s *Snapshot) HasChangelogs() bool {
	return s.changelogs
}
