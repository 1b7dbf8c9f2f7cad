package update

import (
	"context"
	"strconv"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
	"github.com/goliatone/go-formfill/pkg/values"
)

// checkboxUpdater handles native checkboxes and ARIA checkbox/switch widgets.
// The target state comes from the group resolution when present, otherwise
// from boolean coercion of the resolved value.
type checkboxUpdater struct{}

func (u *checkboxUpdater) Name() string { return "checkbox" }

func (u *checkboxUpdater) Kinds() []dom.ElementKind {
	return []dom.ElementKind{dom.KindCheckbox, dom.KindAriaCheckbox}
}

func (u *checkboxUpdater) Apply(_ context.Context, el *dom.Element, req Request) error {
	var checked bool
	if req.Checked != nil {
		checked = *req.Checked
	} else if req.HasValue {
		checked = values.ParseBool(req.Field, req.Value)
	}

	el.SetChecked(checked)
	el.DispatchAll(events.Sequence(req.Field.ID, strconv.FormatBool(checked), req.Events))
	return nil
}
