package update

import (
	"context"
	"strings"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
)

// buttonUpdater rewrites a button's visible text. Submit and reset controls
// are never mutated; rewording them would change form behavior.
type buttonUpdater struct{}

func (u *buttonUpdater) Name() string { return "button" }

func (u *buttonUpdater) Kinds() []dom.ElementKind {
	return []dom.ElementKind{dom.KindButton}
}

func (u *buttonUpdater) Apply(_ context.Context, el *dom.Element, req Request) error {
	if !req.HasValue || isSubmitControl(el) {
		return nil
	}

	if el.Tag() == "input" {
		el.SetAttr("value", req.Value)
	} else {
		el.SetText(req.Value)
	}

	el.DispatchAll(events.Sequence(req.Field.ID, req.Value, req.Events))
	return nil
}

func isSubmitControl(el *dom.Element) bool {
	typ := strings.ToLower(el.AttrOr("type", ""))
	if typ == "submit" || typ == "reset" {
		return true
	}
	// A button element without an explicit type submits its form.
	return el.Tag() == "button" && typ == ""
}
