package utils

import "strings"

// Slug makes a web friendly filename out of a package or group name.
// Slashes become dots before spaces become underscores; the substitution
// order is load-bearing for names containing both.
func Slug(name string) string {
	name = strings.ReplaceAll(name, "/", ".")
	name = strings.ReplaceAll(name, " ", "_")
	return name
}
