// Package source defines the metadata capability set the site generator
// consumes. Implementations load a repository snapshot once at
// construction time and serve read-only views of it.
package source

import "github.com/resf/repoview/internal/models"

// Source supplies repository metadata to the site generator
type Source interface {
	// GroupDefinitions returns comps groups in definition order
	GroupDefinitions() []models.GroupDefinition

	// Environments returns comps environment names in definition order
	Environments() []string

	// VersionRecords returns every known build of the named package, in
	// no particular order. An unknown name yields an empty slice.
	VersionRecords(name string) []models.VersionRecord

	// PackageNames returns the sorted universe of package names
	PackageNames() []string

	// PackagesByBuildtime returns one entry per package name carrying its
	// most recent buildtime, newest first
	PackagesByBuildtime() []models.NameBuildtime

	// HasChangelogs reports whether this source can supply changelog
	// data. Callers degrade gracefully when it cannot.
	HasChangelogs() bool
}
