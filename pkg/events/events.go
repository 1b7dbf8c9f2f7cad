package events

// Type names the synthetic DOM event kinds the engine dispatches.
type Type string

const (
	TypeInput   Type = "input"
	TypeChange  Type = "change"
	TypeInvalid Type = "invalid"
	TypeFocus   Type = "focus"
	TypeFocusIn Type = "focusin"
	TypeClick   Type = "click"
)

// Event is one synthetic DOM event. Target and CurrentTarget are force-set on
// every event (and Value on input/change) because several front-end frameworks
// read these properties directly instead of trusting native target resolution
// for programmatically constructed events.
type Event struct {
	Type          Type
	FieldID       string
	Target        string
	CurrentTarget string
	Value         *string
	Bubbles       bool
	Props         map[string]string
}

// Sink receives dispatched events. Host integrations forward them to the real
// page; tests use a RecordingSink.
type Sink interface {
	Dispatch(ev Event)
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(ev Event)

// Dispatch delegates to the underlying function.
func (fn SinkFunc) Dispatch(ev Event) {
	fn(ev)
}

// Discard is a Sink that drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// RecordingSink collects dispatched events in order for inspection.
type RecordingSink struct {
	Events []Event
}

// Dispatch appends the event to the recorded list.
func (s *RecordingSink) Dispatch(ev Event) {
	s.Events = append(s.Events, ev)
}

// Types returns the recorded event types in dispatch order.
func (s *RecordingSink) Types() []Type {
	out := make([]Type, 0, len(s.Events))
	for _, ev := range s.Events {
		out = append(out, ev.Type)
	}
	return out
}

// ByField returns the events recorded for a single field id, in order.
func (s *RecordingSink) ByField(fieldID string) []Event {
	var out []Event
	for _, ev := range s.Events {
		if ev.FieldID == fieldID {
			out = append(out, ev)
		}
	}
	return out
}

// Reset clears the recorded events.
func (s *RecordingSink) Reset() {
	s.Events = nil
}
