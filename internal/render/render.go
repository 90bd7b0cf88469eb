// Package render turns structured page contexts into HTML bytes. The
// generator treats the output as opaque; all markup lives here and in the
// template files.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/resf/repoview/internal/models"
)

// Kind selects which page template a render call uses
type Kind int

const (
	KindIndex Kind = iota
	KindGroup
	KindPackage
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindGroup:
		return "group"
	case KindPackage:
		return "package"
	default:
		return "unknown"
	}
}

const (
	templateIndex   = "index.html.tmpl"
	templateGroup   = "group.html.tmpl"
	templatePackage = "package.html.tmpl"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// RepoData is the site-wide front matter handed to every template
type RepoData struct {
	Title        string
	Link         string
	Description  string
	Version      string
	Date         string
	Letters      []string
	Environments []string
}

// IndexData is the context for the index page
type IndexData struct {
	Repo   RepoData
	Groups []*models.Group
	Latest []models.LatestEntry
}

// GroupData is the context for one group page
type GroupData struct {
	Repo  RepoData
	Group *models.Group
}

// PackageData is the context for one package page. Group is the group
// whose resolution first produced the package; templates list it for
// navigation only, so page content stays identical across groups.
type PackageData struct {
	Repo    RepoData
	Group   *models.Group
	Package *models.PackageAggregate
}

// Renderer produces page bytes from a kind and its context
type Renderer interface {
	Render(kind Kind, data any) ([]byte, error)
}

// HTMLRenderer renders pages with html/template. Templates come from the
// embedded defaults unless a template directory provides overrides.
type HTMLRenderer struct {
	templates map[Kind]*template.Template
}

// funcMap holds the helpers templates may call
var funcMap = template.FuncMap{
	// date renders unix seconds as a simple page date
	"date": func(ts int64) string {
		return time.Unix(ts, 0).UTC().Format("2006-01-02")
	},
}

// New creates a renderer. When templateDir is set, template files found
// there replace the embedded defaults one by one.
func New(templateDir string) (*HTMLRenderer, error) {
	r := &HTMLRenderer{templates: make(map[Kind]*template.Template)}

	names := map[Kind]string{
		KindIndex:   templateIndex,
		KindGroup:   templateGroup,
		KindPackage: templatePackage,
	}

	for kind, name := range names {
		tmpl, err := loadTemplate(templateDir, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s template: %w", kind, err)
		}
		r.templates[kind] = tmpl
	}

	return r, nil
}

func loadTemplate(templateDir, name string) (*template.Template, error) {
	var data []byte
	var err error

	if templateDir != "" {
		data, err = os.ReadFile(filepath.Join(templateDir, name))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	if data == nil {
		data, err = fs.ReadFile(defaultTemplates, "templates/"+name)
		if err != nil {
			return nil, err
		}
	}

	return template.New(name).Funcs(funcMap).Parse(string(data))
}

// Render executes the template for kind against data and returns the page
// bytes. The call is stateless; nothing persists between renders.
func (r *HTMLRenderer) Render(kind Kind, data any) ([]byte, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return nil, fmt.Errorf("no template for kind %s", kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}
