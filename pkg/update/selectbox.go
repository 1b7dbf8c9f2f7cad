package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
)

// selectUpdater sets the selected option of a select element, matching the
// resolved value against option values first and visible option text second.
// A click on the element follows the event sequence as a compatibility nudge.
type selectUpdater struct{}

func (u *selectUpdater) Name() string { return "select" }

func (u *selectUpdater) Kinds() []dom.ElementKind {
	return []dom.ElementKind{dom.KindSelect}
}

func (u *selectUpdater) Apply(_ context.Context, el *dom.Element, req Request) error {
	if !req.HasValue {
		return nil
	}

	options := el.Options()
	target := matchOption(options, req.Value)
	if target == nil {
		req.logger().WithFields(logrus.Fields{
			"field":     req.Field.ID,
			"value":     req.Value,
			"available": strings.Join(optionValues(options), ","),
		}).Warn("select value matches no option")
		return fmt.Errorf("%w: select %q value %q", ErrNoMatch, req.Field.ID, req.Value)
	}

	for _, opt := range options {
		if opt.Node() == target.Node() {
			opt.SetAttr("selected", "selected")
		} else {
			opt.RemoveAttr("selected")
		}
	}

	opts := req.Events
	opts.ClickNudge = true
	el.DispatchAll(events.Sequence(req.Field.ID, target.AttrOr("value", ""), opts))
	return nil
}

func matchOption(options []*dom.Element, value string) *dom.Element {
	for _, opt := range options {
		if opt.AttrOr("value", "") == value {
			return opt
		}
	}
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt.Text()), strings.TrimSpace(value)) {
			return opt
		}
	}
	return nil
}

func optionValues(options []*dom.Element) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.AttrOr("value", strings.TrimSpace(opt.Text())))
	}
	return out
}
