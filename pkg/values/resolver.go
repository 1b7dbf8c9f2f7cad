// Package values computes the effective value applied to each field, covering
// the normal externally-supplied path and the test-mode path that synthesizes
// plausible defaults.
package values

import (
	"encoding/json"
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

// MaxTestCheckboxSelections bounds how many members of a checkbox group are
// checked when test mode has no explicit values to work from, so sparse
// multi-select UIs are not saturated.
const MaxTestCheckboxSelections = 2

// Resolver computes effective values for one fill pass.
type Resolver struct {
	TestMode bool
}

// Effective returns the string value to apply to the field. ok is false when
// no usable value exists, which callers treat as "leave the field alone".
// In test mode the synthesized choice is written back onto the field so
// repeated references within the pass reuse the same pick.
func (r Resolver) Effective(f *model.Field) (string, bool) {
	if r.TestMode {
		return r.effectiveTest(f)
	}
	return effectiveNormal(f)
}

func effectiveNormal(f *model.Field) (string, bool) {
	if f.HasValue() {
		return *f.Value, true
	}
	if f.Type.IsChoice() {
		if opt, ok := f.SelectedOption(); ok {
			return opt.Value, true
		}
	}
	return "", false
}

func (r Resolver) effectiveTest(f *model.Field) (string, bool) {
	if f.HasTestValue() {
		return *f.TestValue, true
	}
	if f.Type.IsChoice() && len(f.Options) > 0 {
		opt := PickOption(f.Options)
		f.TestValue = model.String(opt.Value)
		return opt.Value, true
	}
	if f.HasValue() {
		return *f.Value, true
	}
	return "", false
}

// PickOption selects the first option not judged a placeholder, falling back
// to the first option when everything looks like one.
func PickOption(options []model.Option) model.Option {
	for i, opt := range options {
		if !IsPlaceholderOption(i, opt) {
			return opt
		}
	}
	return options[0]
}

// IsPlaceholderOption reports whether an option is a prompt rather than a real
// choice: the first option whose text carries a case-insensitive select-like
// token. The heuristic is locale- and copy-dependent; it is kept for parity
// with observed page behavior.
func IsPlaceholderOption(index int, opt model.Option) bool {
	return index == 0 && PlaceholderLike(opt.Text)
}

// PlaceholderLike reports whether a label or option text reads like a
// selection prompt.
func PlaceholderLike(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return true
	}
	if strings.HasPrefix(lower, "--") {
		return true
	}
	return strings.Contains(lower, "select")
}

// EffectiveBool resolves the boolean state for checkbox-like fields.
func (r Resolver) EffectiveBool(f *model.Field) bool {
	value, ok := r.Effective(f)
	if !ok {
		return false
	}
	return ParseBool(f, value)
}

// trueTokens are the string forms accepted as a checked state.
var trueTokens = map[string]struct{}{
	"true": {},
	"yes":  {},
	"on":   {},
	"1":    {},
}

// ParseBool resolves a checkbox value string: the true-token set, an explicit
// checkboxValue match, or membership of the checkboxValue in a JSON value
// array.
func ParseBool(f *model.Field, value string) bool {
	trimmed := strings.TrimSpace(value)
	if _, ok := trueTokens[strings.ToLower(trimmed)]; ok {
		return true
	}

	checkboxValue := f.Metadata.CheckboxValue
	if checkboxValue == "" {
		return false
	}
	if trimmed == checkboxValue {
		return true
	}
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal([]byte(trimmed), &items); err == nil {
			for _, item := range items {
				if item == checkboxValue {
					return true
				}
			}
		}
	}
	return false
}
