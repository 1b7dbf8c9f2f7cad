package events

import "strings"

// Framework identifies the event-compatibility profile for the reactive
// framework mounted on the host page.
type Framework string

const (
	FrameworkGeneric Framework = ""
	FrameworkReact   Framework = "react"
	FrameworkVue     Framework = "vue"
	FrameworkAngular Framework = "angular"
	FrameworkSvelte  Framework = "svelte"
)

// focusSensitive lists frameworks whose bindings only commit a value once the
// control has seen focus traffic.
var focusSensitive = map[Framework]struct{}{
	FrameworkAngular: {},
	FrameworkSvelte:  {},
}

// ParseFramework normalizes a metadata hint into a known Framework. Unknown
// hints map to the generic profile.
func ParseFramework(hint string) Framework {
	switch Framework(strings.ToLower(strings.TrimSpace(hint))) {
	case FrameworkReact:
		return FrameworkReact
	case FrameworkVue:
		return FrameworkVue
	case FrameworkAngular:
		return FrameworkAngular
	case FrameworkSvelte:
		return FrameworkSvelte
	default:
		return FrameworkGeneric
	}
}

// Options controls which events a sequence contains beyond input and change.
type Options struct {
	Framework Framework
	// Validate requests a trailing invalid event, raised for required fields
	// or when the caller explicitly asks for validation.
	Validate bool
	// ClickNudge appends a native click, the last-resort path for frameworks
	// that only observe click-derived state changes (selects and radios).
	ClickNudge bool
}

// Sequence builds the ordered event list dispatched after a mutation: input,
// change, optionally invalid, focus traffic for focus-sensitive frameworks,
// and the click nudge last.
func Sequence(fieldID, value string, opts Options) []Event {
	props := frameworkProps(opts.Framework)

	events := make([]Event, 0, 6)
	events = append(events, valued(TypeInput, fieldID, value, props))
	events = append(events, valued(TypeChange, fieldID, value, props))

	if opts.Validate {
		events = append(events, bare(TypeInvalid, fieldID, props))
	}
	if _, ok := focusSensitive[opts.Framework]; ok {
		events = append(events, bare(TypeFocus, fieldID, props))
		events = append(events, bare(TypeFocusIn, fieldID, props))
	}
	if opts.ClickNudge {
		events = append(events, bare(TypeClick, fieldID, props))
	}

	return events
}

// Click builds a standalone click event for a field's element.
func Click(fieldID string) Event {
	return bare(TypeClick, fieldID, nil)
}

func valued(t Type, fieldID, value string, props map[string]string) Event {
	v := value
	ev := bare(t, fieldID, props)
	ev.Value = &v
	return ev
}

func bare(t Type, fieldID string, props map[string]string) Event {
	return Event{
		Type:          t,
		FieldID:       fieldID,
		Target:        fieldID,
		CurrentTarget: fieldID,
		Bubbles:       t != TypeFocus,
		Props:         props,
	}
}

func frameworkProps(fw Framework) map[string]string {
	switch fw {
	case FrameworkReact:
		// React reads the tracked value through its synthetic event wrapper,
		// so the native value setter path must be flagged.
		return map[string]string{"simulated": "true", "reactTracked": "reset"}
	case FrameworkVue:
		return map[string]string{"composed": "true"}
	default:
		return nil
	}
}
