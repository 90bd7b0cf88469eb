package repodata

import (
	"encoding/xml"
	"fmt"

	"github.com/resf/repoview/internal/models"
)

// XML structures for comps (group) data

type comps struct {
	XMLName      xml.Name           `xml:"comps"`
	Groups       []compsGroup       `xml:"group"`
	Environments []compsEnvironment `xml:"environment"`
}

type compsGroup struct {
	ID           string          `xml:"id"`
	Names        []localizedText `xml:"name"`
	Descriptions []localizedText `xml:"description"`
	UserVisible  string          `xml:"uservisible"`
	Packages     []compsPackage  `xml:"packagelist>packagereq"`
}

type compsEnvironment struct {
	ID    string          `xml:"id"`
	Names []localizedText `xml:"name"`
}

type compsPackage struct {
	Type string `xml:"type,attr"`
	Name string `xml:",chardata"`
}

type localizedText struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

// parseComps converts comps XML into group definitions and environment
// names. All member categories (mandatory, default, optional, conditional)
// merge into one roster; duplicates survive until resolution.
func parseComps(data []byte) ([]models.GroupDefinition, []string, error) {
	var c comps
	if err := xml.Unmarshal(data, &c); err != nil {
		return nil, nil, fmt.Errorf("failed to parse comps data: %w", err)
	}

	groups := make([]models.GroupDefinition, 0, len(c.Groups))
	for _, group := range c.Groups {
		def := models.GroupDefinition{
			ID:          group.ID,
			Name:        pickText(group.Names, group.ID),
			Description: pickText(group.Descriptions, ""),
			Visible:     group.UserVisible != "false",
		}
		for _, pkg := range group.Packages {
			def.Packages = append(def.Packages, pkg.Name)
		}
		groups = append(groups, def)
	}

	envs := make([]string, 0, len(c.Environments))
	for _, env := range c.Environments {
		envs = append(envs, pickText(env.Names, env.ID))
	}

	return groups, envs, nil
}

// pickText returns the untranslated variant of a localized element
func pickText(texts []localizedText, fallback string) string {
	for _, text := range texts {
		if text.Lang == "" {
			return text.Value
		}
	}
	if len(texts) > 0 {
		return texts[0].Value
	}
	return fallback
}
