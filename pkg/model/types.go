package model

// FieldType enumerates the closed set of field kinds the fill engine
// understands. Values match the wire format produced by field detection.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeTel      FieldType = "tel"
	FieldTypeURL      FieldType = "url"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSearch   FieldType = "search"
	FieldTypeHidden   FieldType = "hidden"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeButton   FieldType = "button"
	FieldTypeFile     FieldType = "file"
	FieldTypeFieldset FieldType = "fieldset"
)

// textLike groups the field types that resolve to plain string input.
var textLike = map[FieldType]struct{}{
	FieldTypeText:     {},
	FieldTypeEmail:    {},
	FieldTypePassword: {},
	FieldTypeTel:      {},
	FieldTypeURL:      {},
	FieldTypeNumber:   {},
	FieldTypeDate:     {},
	FieldTypeSearch:   {},
	FieldTypeTextarea: {},
}

// IsTextLike reports whether the type accepts free-form string input.
func (t FieldType) IsTextLike() bool {
	_, ok := textLike[t]
	return ok
}

// IsChoice reports whether the type selects from a fixed option set.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio
}

// Option is one entry of a choice-based field. The engine never mutates
// options; Selected reflects the state reported by field detection.
type Option struct {
	Value    string `json:"value" yaml:"value"`
	Text     string `json:"text" yaml:"text"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Validation carries advisory constraints. The engine only inspects it to
// decide whether a validation event should be raised after mutation.
type Validation struct {
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Metadata holds per-field hints collected during detection. Framework selects
// the event-compatibility profile, CheckboxValue disambiguates which token
// means "checked" for a checkbox, and GroupName overrides grouping when the
// page's own naming is unreliable.
type Metadata struct {
	Framework     string `json:"framework,omitempty" yaml:"framework,omitempty"`
	Visibility    string `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	CheckboxValue string `json:"checkboxValue,omitempty" yaml:"checkboxValue,omitempty"`
	GroupName     string `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	IsExclusive   bool   `json:"isExclusive,omitempty" yaml:"isExclusive,omitempty"`
	IsMultiple    bool   `json:"isMultiple,omitempty" yaml:"isMultiple,omitempty"`
}

// Field describes one fillable form control, decoupled from its live DOM
// representation. ID is unique within a fill pass and doubles as the merge key
// for streamed partial updates.
type Field struct {
	ID         string      `json:"id" yaml:"id"`
	Type       FieldType   `json:"type" yaml:"type"`
	Label      string      `json:"label,omitempty" yaml:"label,omitempty"`
	Value      *string     `json:"value,omitempty" yaml:"value,omitempty"`
	TestValue  *string     `json:"testValue,omitempty" yaml:"testValue,omitempty"`
	Options    []Option    `json:"options,omitempty" yaml:"options,omitempty"`
	Required   bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Validation *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
	Metadata   Metadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// HasValue reports whether a normal-mode value was supplied.
func (f Field) HasValue() bool {
	return f.Value != nil
}

// HasTestValue reports whether a test-mode value was supplied or assigned.
func (f Field) HasTestValue() bool {
	return f.TestValue != nil
}

// SelectedOption returns the first option flagged as selected.
func (f Field) SelectedOption() (Option, bool) {
	for _, opt := range f.Options {
		if opt.Selected {
			return opt, true
		}
	}
	return Option{}, false
}

// Clone returns a deep copy so a fill pass can assign test values without
// mutating caller-owned fields.
func (f Field) Clone() Field {
	out := f
	if f.Value != nil {
		v := *f.Value
		out.Value = &v
	}
	if f.TestValue != nil {
		v := *f.TestValue
		out.TestValue = &v
	}
	if len(f.Options) > 0 {
		out.Options = make([]Option, len(f.Options))
		copy(out.Options, f.Options)
	}
	if f.Validation != nil {
		v := *f.Validation
		out.Validation = &v
	}
	return out
}

// CloneAll deep-copies a field slice into pass-local pointers.
func CloneAll(fields []Field) []*Field {
	out := make([]*Field, 0, len(fields))
	for _, f := range fields {
		clone := f.Clone()
		out = append(out, &clone)
	}
	return out
}

// String returns a pointer to s, a convenience for building Field literals.
func String(s string) *string {
	return &s
}
