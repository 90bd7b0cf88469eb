package models

// VersionKey identifies one build of a package. Epoch, Version and Release
// take part in ordering; Arch only distinguishes multilib records of the
// same EVR and never affects sort position.
type VersionKey struct {
	Epoch   string
	Version string
	Release string
	Arch    string
}

// EVR returns the ordering-relevant part of the key with Arch cleared.
func (k VersionKey) EVR() VersionKey {
	k.Arch = ""
	return k
}

// ChangelogEntry is one changelog item attached to a package build.
type ChangelogEntry struct {
	Author string
	Date   int64
	Text   string
}

// VersionRecord is one NEVRA instance as supplied by a metadata source.
// Records are read-only snapshots; nothing downstream mutates them.
type VersionRecord struct {
	Name           string
	Key            VersionKey
	Summary        string
	Description    string
	URL            string
	Buildtime      int64
	License        string
	SourceRPM      string
	Size           int64
	Location       string
	RemoteLocation string
	Vendor         string
	RPMGroup       string
	Changelog      []ChangelogEntry
	Files          []string
}

// VersionInfo is one ordered row on a package page: the record's identity
// plus the display form of its size and a truncated changelog.
type VersionInfo struct {
	Epoch          string
	Version        string
	Release        string
	Arch           string
	Buildtime      int64
	Size           string
	Location       string
	RemoteLocation string
	Changelog      []ChangelogEntry
	Files          []string
}

// PackageAggregate is the resolved view of one package name: shared
// descriptive fields taken from the newest record, and every distinct
// build ordered newest first.
type PackageAggregate struct {
	Name        string
	Filename    string
	Summary     string
	Description string
	URL         string
	License     string
	SourceRPM   string
	Vendor      string
	Versions    []VersionInfo
}
