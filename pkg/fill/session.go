// Package fill drives a complete fill pass: group resolution first, then
// per-field value resolution, element mutation, and event synthesis, with
// pass-scoped bookkeeping so no field is touched twice.
package fill

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
	"github.com/goliatone/go-formfill/pkg/groups"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/stream"
	"github.com/goliatone/go-formfill/pkg/update"
	"github.com/goliatone/go-formfill/pkg/values"
)

// Option customises a Session.
type Option func(*Session)

// WithLogger injects the logger shared by the session and its updaters.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry swaps the updater registry.
func WithRegistry(registry *update.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithFetcher injects the file-field resource fetcher.
func WithFetcher(fetcher update.Fetcher) Option {
	return func(s *Session) {
		if fetcher != nil {
			s.fetcher = fetcher
		}
	}
}

// WithGroupDepth bounds the ancestor walk used to group unnamed radios.
func WithGroupDepth(depth int) Option {
	return func(s *Session) {
		if depth > 0 {
			s.groupDepth = depth
		}
	}
}

// Session runs fill passes against one document. It owns the only shared
// mutable state in the engine: the visual marker cache, which lives as long
// as the session (the page), and the per-pass processed-set. All work is
// single-goroutine and sequential; fields are awaited one at a time so event
// ordering stays deterministic.
type Session struct {
	id         string
	doc        *dom.Document
	registry   *update.Registry
	logger     logrus.FieldLogger
	fetcher    update.Fetcher
	groupDepth int
	marker     *update.Marker
}

// New creates a session over a parsed document. Missing collaborators are
// initialised with the built-ins so callers can start with a single
// constructor call.
func New(doc *dom.Document, options ...Option) *Session {
	s := &Session{
		id:         uuid.NewString(),
		doc:        doc,
		groupDepth: groups.DefaultMaxDepth,
		marker:     update.NewMarker(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.registry == nil {
		s.registry = update.DefaultRegistry()
	}
	if s.fetcher == nil {
		s.fetcher = &update.HTTPFetcher{}
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	s.logger = s.logger.WithField("session", s.id)
	return s
}

// ID returns the session identifier used in log fields.
func (s *Session) ID() string {
	return s.id
}

// Document returns the document the session mutates.
func (s *Session) Document() *dom.Document {
	return s.doc
}

// FillFields runs one fill pass. Groups are processed before ungrouped
// fields, every field is visited exactly once, and a single field's failure
// never aborts the batch. The returned error is reserved for pass-level
// problems (nil context, cancellation).
func (s *Session) FillFields(ctx context.Context, fields []model.Field, testMode bool) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("fill: context is required")
	}

	res := newResult()
	pass := model.CloneAll(fields)
	resolver := values.Resolver{TestMode: testMode}
	set := groups.Resolve(s.doc, pass, groups.Options{MaxDepth: s.groupDepth})
	processed := make(map[string]struct{}, len(pass))

	for _, group := range set.RadioGroups() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s.fillRadioGroup(ctx, group, resolver, processed, res)
	}

	for _, group := range set.CheckboxGroups() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s.fillCheckboxGroup(ctx, group, resolver, processed, res)
	}

	for _, field := range set.Ungrouped() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, done := processed[field.ID]; done {
			continue
		}
		processed[field.ID] = struct{}{}
		s.applyField(ctx, field, resolver, nil, res)
	}

	return res, nil
}

// FillStream consumes an NDJSON byte stream of partial field updates and
// applies each merged batch as soon as its line decodes.
func (s *Session) FillStream(ctx context.Context, fields []model.Field, r io.Reader, testMode bool) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("fill: context is required")
	}

	total := newResult()
	merger := stream.NewMerger(fields, func(ctx context.Context, batch []model.Field) error {
		res, err := s.FillFields(ctx, batch, testMode)
		if res != nil {
			total.merge(res)
		}
		return err
	}, stream.WithLogger(s.logger))

	if err := merger.Consume(ctx, r); err != nil {
		return total, fmt.Errorf("fill: consume stream: %w", err)
	}
	return total, nil
}

// fillRadioGroup mutates only the resolved winner and marks every member
// processed so the ungrouped pass cannot touch them again.
func (s *Session) fillRadioGroup(ctx context.Context, group *groups.Group, resolver values.Resolver, processed map[string]struct{}, res *Result) {
	winner, _ := resolver.RadioWinner(group.Members)

	for _, member := range group.Members {
		processed[member.ID] = struct{}{}
		if winner == nil || member.ID != winner.ID {
			res.record(member.ID, StatusSkipped)
		}
	}
	if winner == nil {
		return
	}

	s.clearRadioGroup(group)

	checked := true
	s.applyField(ctx, winner, resolver, &checked, res)
}

// clearRadioGroup unchecks every located member element before the winner is
// applied. Groups built from metadata or an ancestor container have no shared
// name attribute, so the updater's sibling discovery cannot see them; the
// session holds the membership and enforces exclusivity itself.
func (s *Session) clearRadioGroup(group *groups.Group) {
	for _, member := range group.Members {
		for _, el := range s.doc.LocateAll(member.ID) {
			if !el.Mutable() {
				continue
			}
			switch el.Kind() {
			case dom.KindRadio, dom.KindAriaRadio:
				el.SetChecked(false)
			}
		}
	}
}

func (s *Session) fillCheckboxGroup(ctx context.Context, group *groups.Group, resolver values.Resolver, processed map[string]struct{}, res *Result) {
	selections := resolver.CheckboxSelections(group.Members)

	for _, member := range group.Members {
		processed[member.ID] = struct{}{}
		checked := selections[member.ID]
		s.applyField(ctx, member, resolver, &checked, res)
	}
}

// applyField is the pass-level guard: locate, check mutability, dispatch to
// the kind strategy, and record the outcome. Errors and panics are contained
// per field.
func (s *Session) applyField(ctx context.Context, field *model.Field, resolver values.Resolver, checked *bool, res *Result) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.WithField("field", field.ID).Errorf("field update panicked: %v", recovered)
			res.record(field.ID, StatusFailed)
		}
	}()

	els := s.doc.LocateAll(field.ID)
	if len(els) == 0 {
		s.logger.WithField("field", field.ID).Debug("no element for field")
		res.record(field.ID, StatusNotFound)
		return
	}

	el := els[0]
	if !el.Mutable() {
		res.record(field.ID, StatusUnmutable)
		return
	}

	updater, err := s.registry.Get(el.Kind())
	if err != nil {
		s.logger.WithField("field", field.ID).WithError(err).Debug("element kind unhandled")
		res.record(field.ID, StatusSkipped)
		return
	}

	value, hasValue := resolver.Effective(field)
	req := update.Request{
		Field:    field,
		Value:    value,
		HasValue: hasValue,
		Checked:  checked,
		TestMode: resolver.TestMode,
		Events:   s.eventOptions(field),
		Fetcher:  s.fetcher,
		Logger:   s.logger,
	}

	if err := updater.Apply(ctx, el, req); err != nil {
		switch {
		case errors.Is(err, update.ErrNoMatch):
			res.record(field.ID, StatusNoMatch)
		case errors.Is(err, update.ErrFetchFailed):
			res.record(field.ID, StatusFailed)
		default:
			s.logger.WithField("field", field.ID).WithError(err).Error("field update failed")
			res.record(field.ID, StatusFailed)
		}
		return
	}

	if el.Kind() != dom.KindHidden {
		s.marker.MarkOnce(el, field.ID)
	}
	res.record(field.ID, StatusFilled)
}

func (s *Session) eventOptions(field *model.Field) events.Options {
	return events.Options{
		Framework: events.ParseFramework(field.Metadata.Framework),
		Validate:  field.Required || field.Validation != nil,
	}
}
