package values

import "github.com/goliatone/go-formfill/pkg/model"

// RadioWinner picks the single group member to check and the value to apply.
// Members carrying a usable value win first; in test mode a group with no
// values still resolves so every rendered radio group ends up with exactly one
// selection: the first member with a non-placeholder label, else the first
// member unconditionally. winner is nil only in normal mode with nothing
// usable.
func (r Resolver) RadioWinner(members []*model.Field) (*model.Field, string) {
	for _, member := range members {
		if value, ok := r.Effective(member); ok {
			return member, value
		}
	}

	if !r.TestMode || len(members) == 0 {
		return nil, ""
	}

	for _, member := range members {
		if !PlaceholderLike(member.Label) {
			return member, ""
		}
	}
	return members[0], ""
}

// CheckboxSelections resolves the checked state for every member of a
// checkbox group, keyed by field id. When at least one member carries an
// explicit value each member resolves individually; a valueless group in test
// mode checks the first MaxTestCheckboxSelections members.
func (r Resolver) CheckboxSelections(members []*model.Field) map[string]bool {
	out := make(map[string]bool, len(members))

	anyExplicit := false
	for _, member := range members {
		if member.HasValue() || (r.TestMode && member.HasTestValue()) {
			anyExplicit = true
			break
		}
	}

	if anyExplicit {
		for _, member := range members {
			out[member.ID] = r.EffectiveBool(member)
		}
		return out
	}

	for i, member := range members {
		out[member.ID] = r.TestMode && i < MaxTestCheckboxSelections
	}
	return out
}
