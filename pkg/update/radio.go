package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
)

// radioUpdater checks the resolved winner of a radio group. Same-name
// siblings are unchecked so the group holds at most one selection, and ARIA
// siblings under a role=radiogroup ancestor get their aria-checked cleared.
type radioUpdater struct{}

func (u *radioUpdater) Name() string { return "radio" }

func (u *radioUpdater) Kinds() []dom.ElementKind {
	return []dom.ElementKind{dom.KindRadio, dom.KindAriaRadio}
}

func (u *radioUpdater) Apply(_ context.Context, el *dom.Element, req Request) error {
	target := el
	if req.HasValue && req.Value != "" {
		matched, err := u.matchByValue(el, req)
		if err != nil {
			return err
		}
		target = matched
	}

	u.clearSiblings(target)
	target.SetChecked(true)

	opts := req.Events
	opts.ClickNudge = true
	target.DispatchAll(events.Sequence(req.Field.ID, req.Value, opts))
	return nil
}

// matchByValue picks, among the elements sharing the field id, the input whose
// value attribute equals the resolved value. Elements without a value
// attribute accept any value. Disabled and readonly candidates never match;
// the mutability guard runs before dispatch but only sees the first located
// element, so the real target is re-checked here.
func (u *radioUpdater) matchByValue(el *dom.Element, req Request) (*dom.Element, error) {
	candidates := el.Document().LocateAll(req.Field.ID)
	if len(candidates) == 0 {
		candidates = []*dom.Element{el}
	}

	var available []string
	for _, candidate := range candidates {
		if !candidate.Mutable() {
			continue
		}
		value, ok := candidate.Attr("value")
		if !ok {
			return candidate, nil
		}
		if value == req.Value {
			return candidate, nil
		}
		available = append(available, value)
	}

	req.logger().WithFields(logrus.Fields{
		"field":     req.Field.ID,
		"value":     req.Value,
		"available": strings.Join(available, ","),
	}).Warn("radio value matches no input")
	return nil, fmt.Errorf("%w: radio %q value %q", ErrNoMatch, req.Field.ID, req.Value)
}

func (u *radioUpdater) clearSiblings(target *dom.Element) {
	if name := target.AttrOr("name", ""); name != "" {
		selector := fmt.Sprintf(`input[type="radio"][name="%s"]`, name)
		for _, sibling := range target.Document().Find(selector) {
			if sibling.Node() != target.Node() {
				sibling.SetChecked(false)
			}
		}
	}

	group, ok := target.Closest(`[role="radiogroup"]`)
	if !ok {
		return
	}
	for _, sibling := range group.Find(`[role="radio"]`) {
		if sibling.Node() != target.Node() {
			sibling.RemoveAttr("aria-checked")
		}
	}
}
