package site

import (
	"fmt"
	"sort"
	"strings"

	"github.com/resf/repoview/internal/models"
	"github.com/resf/repoview/internal/utils"
)

const fileGroupSuffix = ".group.html"

// BuildCuratedGroups turns comps definitions into page-ready group shells.
// Hidden groups and groups with empty rosters are dropped here; groups
// whose members all fail to resolve are dropped later, after resolution.
func BuildCuratedGroups(defs []models.GroupDefinition) []*models.Group {
	var groups []*models.Group
	for _, def := range defs {
		if !def.Visible || len(def.Packages) == 0 {
			continue
		}
		groups = append(groups, &models.Group{
			Name:        def.Name,
			Description: def.Description,
			Filename:    utils.Slug(def.ID) + fileGroupSuffix,
			Members:     def.Packages,
		})
	}
	return groups
}

// Letters returns the sorted unique leading characters of the package
// name universe. Matching is case sensitive.
func Letters(names []string) []string {
	set := make(map[string]bool)
	for _, name := range names {
		for _, r := range name {
			set[string(r)] = true
			break
		}
	}

	letters := make([]string, 0, len(set))
	for letter := range set {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	return letters
}

// BuildLetterGroups synthesizes one group per leading character. Members
// are the deduplicated, sorted names sharing that prefix.
func BuildLetterGroups(names []string) []*models.Group {
	unique := uniqueSorted(names)

	var groups []*models.Group
	for _, letter := range Letters(unique) {
		var members []string
		for _, name := range unique {
			if strings.HasPrefix(name, letter) {
				members = append(members, name)
			}
		}

		groups = append(groups, &models.Group{
			Name:        fmt.Sprintf("Letter %s", letter),
			Description: fmt.Sprintf("Packages beginning with the letter %q", letter),
			Filename:    utils.Slug(letter) + fileGroupSuffix,
			Members:     members,
		})
	}
	return groups
}

// uniqueSorted deduplicates and sorts a name list
func uniqueSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	sort.Strings(unique)
	return unique
}
