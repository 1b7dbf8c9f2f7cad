package update

import (
	"context"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
)

// textUpdater handles free-form string inputs, textareas, and hidden inputs.
// A missing value coerces to the empty string.
type textUpdater struct{}

func (u *textUpdater) Name() string { return "text" }

func (u *textUpdater) Kinds() []dom.ElementKind {
	return []dom.ElementKind{dom.KindText, dom.KindTextArea, dom.KindHidden}
}

func (u *textUpdater) Apply(_ context.Context, el *dom.Element, req Request) error {
	el.SetValue(req.Value)
	el.DispatchAll(events.Sequence(req.Field.ID, req.Value, req.Events))
	return nil
}

// contentEditableUpdater handles contenteditable regions and ARIA textbox
// widgets, which carry their value as text content rather than an attribute.
type contentEditableUpdater struct{}

func (u *contentEditableUpdater) Name() string { return "contenteditable" }

func (u *contentEditableUpdater) Kinds() []dom.ElementKind {
	return []dom.ElementKind{dom.KindContentEditable}
}

func (u *contentEditableUpdater) Apply(_ context.Context, el *dom.Element, req Request) error {
	el.SetText(req.Value)
	el.DispatchAll(events.Sequence(req.Field.ID, req.Value, req.Events))
	return nil
}
