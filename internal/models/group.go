package models

// GroupDefinition is a curated (comps) group as supplied by a metadata
// source. Packages holds the merged mandatory/default/optional/conditional
// member names; duplicates are allowed and resolved later.
type GroupDefinition struct {
	ID          string
	Name        string
	Description string
	Visible     bool
	Packages    []string
}

// GroupPackage is one resolved member of a group page.
type GroupPackage struct {
	Name     string
	Filename string
	Summary  string
}

// Group is a page-ready group: either a curated comps group or a synthetic
// letter group. Members is the raw name roster; Packages is filled in
// during resolution and only contains names that resolved to data.
type Group struct {
	Name        string
	Description string
	Filename    string
	Members     []string
	Packages    []GroupPackage
}

// NameBuildtime pairs a package name with its most recent buildtime.
type NameBuildtime struct {
	Name      string
	Buildtime int64
}

// LatestEntry is one row of the "latest packages" list on the index page.
type LatestEntry struct {
	Name      string
	Filename  string
	Version   string
	Release   string
	Buildtime int64
}
