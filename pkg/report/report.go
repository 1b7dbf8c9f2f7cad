// Package report renders a human-readable summary of a fill pass. The output
// is an inspection aid only; nothing downstream parses it.
package report

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formfill/pkg/fill"
)

//go:embed templates/*.tpl
var embedded embed.FS

const defaultTemplate = "report.tpl"

// Meta carries pass-level context for the report header.
type Meta struct {
	SessionID string
	Source    string
	TestMode  bool
}

// Row is one field outcome line.
type Row struct {
	ID     string
	Status string
}

// Renderer renders fill results through a pongo2 template set. The embedded
// default template is used unless a template directory is supplied.
type Renderer struct {
	mu  sync.Mutex
	set *pongo2.TemplateSet
}

// Option customises the renderer.
type Option func(*config)

type config struct {
	templates fs.FS
}

// WithFS overrides the embedded template set.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.templates == nil {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("report: embedded templates: %w", err)
		}
		cfg.templates = sub
	}

	return &Renderer{
		set: pongo2.NewSet("formfill", pongo2.NewFSLoader(cfg.templates)),
	}, nil
}

// Render produces the report text for one result.
func (r *Renderer) Render(res *fill.Result, meta Meta, out ...io.Writer) (string, error) {
	if res == nil {
		return "", fmt.Errorf("report: result is required")
	}

	r.mu.Lock()
	tmpl, err := r.set.FromFile(defaultTemplate)
	r.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("report: load template: %w", err)
	}

	rows := make([]Row, 0, len(res.Order))
	for _, id := range res.Fields() {
		rows = append(rows, Row{ID: id, Status: string(res.Statuses[id])})
	}

	mode := "normal"
	if meta.TestMode {
		mode = "test"
	}

	rendered, err := tmpl.Execute(pongo2.Context{
		"session":   meta.SessionID,
		"source":    meta.Source,
		"mode":      mode,
		"rows":      rows,
		"total":     len(rows),
		"filled":    res.Filled(),
		"notFound":  res.Count(fill.StatusNotFound),
		"unmutable": res.Count(fill.StatusUnmutable),
		"noMatch":   res.Count(fill.StatusNoMatch),
		"failed":    res.Count(fill.StatusFailed),
		"skipped":   res.Count(fill.StatusSkipped),
	})
	if err != nil {
		return "", fmt.Errorf("report: execute template: %w", err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("report: write output: %w", err)
		}
	}
	return rendered, nil
}
