// Package update mutates located elements, one strategy per element kind, and
// raises the synthetic event sequence frameworks on the host page expect.
package update

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
	"github.com/goliatone/go-formfill/pkg/model"
)

// ErrNoMatch reports a select/radio target value with no corresponding
// option. The field is skipped; the pass continues.
var ErrNoMatch = errors.New("update: no matching option")

// ErrFetchFailed reports a file-field resource that could not be retrieved.
// The field is left unset; the pass continues.
var ErrFetchFailed = errors.New("update: resource fetch failed")

// Request carries everything a strategy needs to mutate one element.
type Request struct {
	Field *model.Field

	// Value is the resolved effective value; HasValue is false when the
	// resolver found nothing usable and the strategy should fall back to its
	// empty-state behavior.
	Value    string
	HasValue bool

	// Checked overrides boolean resolution for checkbox kinds and marks the
	// radio group winner.
	Checked *bool

	TestMode bool
	Events   events.Options
	Fetcher  Fetcher
	Logger   logrus.FieldLogger
}

func (r Request) logger() logrus.FieldLogger {
	if r.Logger != nil {
		return r.Logger
	}
	return logrus.StandardLogger()
}

// Updater is one per-kind mutation strategy.
type Updater interface {
	// Name identifies the strategy in registry listings and logs.
	Name() string
	// Kinds lists the element kinds the strategy handles.
	Kinds() []dom.ElementKind
	// Apply mutates the element and dispatches the follow-up events.
	Apply(ctx context.Context, el *dom.Element, req Request) error
}
