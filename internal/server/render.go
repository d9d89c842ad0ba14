package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/ariel-frischer/statusboard/internal/content"
	"github.com/ariel-frischer/statusboard/internal/roadmap"
)

// TemplateFS embeds the page templates.
//
//go:embed templates/*.tmpl
var TemplateFS embed.FS

// Page names, one template file each.
const (
	PageOverview    = "overview"
	PageRoadmap     = "roadmap"
	PageDeliverable = "deliverable"
	PageCommits     = "commits"
	PageIssues      = "issues"
	PageNotFound    = "notfound"
)

var pageNames = []string{PageOverview, PageRoadmap, PageDeliverable, PageCommits, PageIssues, PageNotFound}

// Page is the data passed to the layout.
type Page struct {
	Title   string
	Project string
	// Active is the page name highlighted in the navigation.
	Active string
	// Static hides links to pages that need a live server.
	Static bool
	View   any
}

// Renderer renders pages with the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"statusSlug":  func(s any) string { return content.Status(fmt.Sprint(s)).Slug() },
	"statusLabel": statusLabel,
	"shipped":     roadmap.IsShipped,
	"upper":       func(s any) string { return strings.ToUpper(fmt.Sprint(s)) },
	"pct":         func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
	"num":         func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"add":         func(a, b float64) float64 { return a + b },
	"sub":         func(a, b float64) float64 { return a - b },
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

func statusLabel(s any) string {
	status := content.Status(fmt.Sprint(s))
	if status == "" {
		return "PLANNED"
	}
	return status.Label()
}

// NewRenderer parses the layout, the shared partials and every page.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(TemplateFS,
			"templates/layout.tmpl",
			"templates/partials.tmpl",
			"templates/"+name+".tmpl",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes the named page to w. The page is rendered into a buffer first
// so a template error never produces a partial document.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
