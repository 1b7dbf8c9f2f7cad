package formfill

import (
	"context"
	"io"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/fill"
	"github.com/goliatone/go-formfill/pkg/model"
)

// Field aliases the field descriptor consumed by the engine.
type Field = model.Field

// Option aliases one choice entry of a select or radio field.
type Option = model.Option

// Result aliases the per-pass outcome report.
type Result = fill.Result

// NewSession exposes the fill session constructor from the top-level module.
func NewSession(doc *dom.Document, options ...fill.Option) *fill.Session {
	return fill.New(doc, options...)
}

// FillDocument parses an HTML document, runs a single fill pass over it, and
// returns the session alongside the pass result. It is the simplest entry
// point for callers holding a page and a field list.
func FillDocument(ctx context.Context, page io.Reader, fields []Field, testMode bool, options ...fill.Option) (*fill.Session, *Result, error) {
	doc, err := dom.Parse(page)
	if err != nil {
		return nil, nil, err
	}
	session := fill.New(doc, options...)
	res, err := session.FillFields(ctx, fields, testMode)
	if err != nil {
		return session, res, err
	}
	return session, res, nil
}

// FillDocumentStream parses an HTML document and applies an NDJSON stream of
// partial field updates incrementally.
func FillDocumentStream(ctx context.Context, page io.Reader, fields []Field, updates io.Reader, testMode bool, options ...fill.Option) (*fill.Session, *Result, error) {
	doc, err := dom.Parse(page)
	if err != nil {
		return nil, nil, err
	}
	session := fill.New(doc, options...)
	res, err := session.FillStream(ctx, fields, updates, testMode)
	if err != nil {
		return session, res, err
	}
	return session, res, nil
}
