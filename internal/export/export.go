// Package export writes the dashboard as a static site.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/statusboard/internal/dashboard"
	"github.com/ariel-frischer/statusboard/internal/logging"
	"github.com/ariel-frischer/statusboard/internal/server"
)

// Result summarises one build.
type Result struct {
	OutDir string
	Pages  []string
}

// Exporter renders every static page into OutDir.
type Exporter struct {
	Dash     *dashboard.Dashboard
	Renderer *server.Renderer
	OutDir   string
	Log      logging.Logger
}

// New returns an Exporter writing into outDir.
func New(dash *dashboard.Dashboard, renderer *server.Renderer, outDir string, log logging.Logger) *Exporter {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Exporter{Dash: dash, Renderer: renderer, OutDir: outDir, Log: log}
}

// Build renders the overview, roadmap, commit feed, a page per record and a
// 404 page. The issues page needs live tracker data and is not exported.
func (e *Exporter) Build(ctx context.Context) (Result, error) {
	res := Result{OutDir: e.OutDir}
	project := e.Dash.Config().Project

	overview, err := e.Dash.Overview(ctx)
	if err != nil {
		return res, err
	}
	if err := e.write(&res, "", server.PageOverview, server.Page{Project: project, View: overview}); err != nil {
		return res, err
	}

	roadmap, err := e.Dash.Roadmap(ctx)
	if err != nil {
		return res, err
	}
	if err := e.write(&res, "roadmap", server.PageRoadmap, server.Page{Title: "Roadmap", Project: project, View: roadmap}); err != nil {
		return res, err
	}

	commits, err := e.Dash.Commits(ctx, 0)
	if err != nil {
		return res, err
	}
	if err := e.write(&res, "commits", server.PageCommits, server.Page{Title: "Commits", Project: project, View: commits}); err != nil {
		return res, err
	}

	records, err := e.Dash.Store().All()
	if err != nil {
		return res, fmt.Errorf("listing records: %w", err)
	}
	for _, r := range records {
		page, err := e.Dash.Deliverable(ctx, r.Slug)
		if err != nil {
			return res, fmt.Errorf("rendering %s: %w", r.Slug, err)
		}
		p := server.Page{Title: r.Title(), Project: project, View: page}
		if err := e.write(&res, filepath.Join("deliverable", r.Slug), server.PageDeliverable, p); err != nil {
			return res, err
		}
	}

	if err := e.writeFile(&res, "404.html", server.PageNotFound, server.Page{Title: "Not found", Project: project}); err != nil {
		return res, err
	}

	e.Log.Infof("exported %d pages to %s", len(res.Pages), e.OutDir)
	return res, nil
}

// write renders a page as dir/index.html.
func (e *Exporter) write(res *Result, dir, name string, page server.Page) error {
	return e.writeFile(res, filepath.Join(dir, "index.html"), name, page)
}

func (e *Exporter) writeFile(res *Result, rel, name string, page server.Page) error {
	page.Active = name
	page.Static = true

	path := filepath.Join(e.OutDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", rel, err)
	}
	if err := e.Renderer.Render(f, name, page); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}

	res.Pages = append(res.Pages, filepath.ToSlash(rel))
	e.Log.Debugf("wrote %s", path)
	return nil
}

// Clean removes a previous build. Only directories that look like an export
// (containing index.html) or are empty are removed.
func Clean(outDir string) error {
	if strings.TrimSpace(outDir) == "" || filepath.Clean(outDir) == "/" {
		return fmt.Errorf("refusing to clean %q", outDir)
	}

	entries, err := os.ReadDir(outDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading output directory: %w", err)
	}
	if len(entries) > 0 {
		if _, err := os.Stat(filepath.Join(outDir, "index.html")); err != nil {
			return fmt.Errorf("refusing to clean %s: not a previous export", outDir)
		}
	}
	return os.RemoveAll(outDir)
}
