package fill

// Status records how a field fared within a pass.
type Status string

const (
	// StatusFilled means the element was mutated and events were raised.
	StatusFilled Status = "filled"
	// StatusNotFound means no element carries the field id; the field is
	// skipped without escalation.
	StatusNotFound Status = "not-found"
	// StatusUnmutable means the element is disabled or readonly.
	StatusUnmutable Status = "unmutable"
	// StatusNoMatch means a choice value corresponded to no option.
	StatusNoMatch Status = "no-match"
	// StatusFailed means the per-field guard caught an error or panic.
	StatusFailed Status = "failed"
	// StatusSkipped means the engine had nothing to do for the field.
	StatusSkipped Status = "skipped"
)

// Result is the per-pass outcome report. A field appears exactly once per
// pass; stream consumption folds successive passes together, letting later
// increments overwrite earlier statuses.
type Result struct {
	Statuses map[string]Status
	// Order preserves first-recorded order for stable reporting.
	Order []string
}

func newResult() *Result {
	return &Result{Statuses: make(map[string]Status)}
}

func (r *Result) record(fieldID string, status Status) {
	if _, seen := r.Statuses[fieldID]; !seen {
		r.Order = append(r.Order, fieldID)
	}
	r.Statuses[fieldID] = status
}

func (r *Result) merge(other *Result) {
	for _, id := range other.Order {
		r.record(id, other.Statuses[id])
	}
}

// Count returns how many fields ended the pass in the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, st := range r.Statuses {
		if st == status {
			n++
		}
	}
	return n
}

// Filled returns the number of successfully mutated fields.
func (r *Result) Filled() int {
	return r.Count(StatusFilled)
}

// Fields returns the field ids in first-recorded order.
func (r *Result) Fields() []string {
	out := make([]string, len(r.Order))
	copy(out, r.Order)
	return out
}
