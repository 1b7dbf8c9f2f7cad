package values_test

import (
	"testing"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/values"
)

func TestEffective_NormalModeUsesValue(t *testing.T) {
	r := values.Resolver{}
	f := model.Field{ID: "a", Type: model.FieldTypeText, Value: model.String("hello")}

	got, ok := r.Effective(&f)
	if !ok || got != "hello" {
		t.Fatalf("Effective = (%q, %v), want (hello, true)", got, ok)
	}
}

func TestEffective_NormalModePropagatesSelectedOption(t *testing.T) {
	r := values.Resolver{}
	f := model.Field{
		ID:   "a",
		Type: model.FieldTypeRadio,
		Options: []model.Option{
			{Value: "a", Text: "A"},
			{Value: "b", Text: "B", Selected: true},
		},
	}

	got, ok := r.Effective(&f)
	if !ok || got != "b" {
		t.Fatalf("Effective = (%q, %v), want (b, true)", got, ok)
	}
}

func TestEffective_TestModeSkipsPlaceholder(t *testing.T) {
	r := values.Resolver{TestMode: true}
	f := model.Field{
		ID:   "color",
		Type: model.FieldTypeSelect,
		Options: []model.Option{
			{Value: "", Text: "Select one"},
			{Value: "red", Text: "Red"},
			{Value: "blue", Text: "Blue"},
		},
	}

	got, ok := r.Effective(&f)
	if !ok || got != "red" {
		t.Fatalf("Effective = (%q, %v), want (red, true)", got, ok)
	}
	if f.TestValue == nil || *f.TestValue != "red" {
		t.Fatalf("choice not written back: %v", f.TestValue)
	}

	// Second reference reuses the assigned choice.
	again, _ := r.Effective(&f)
	if again != "red" {
		t.Fatalf("second reference = %q, want red", again)
	}
}

func TestEffective_TestModeAllPlaceholdersFallsBackToFirst(t *testing.T) {
	r := values.Resolver{TestMode: true}
	f := model.Field{
		ID:      "only",
		Type:    model.FieldTypeSelect,
		Options: []model.Option{{Value: "", Text: "Select an option"}},
	}

	got, ok := r.Effective(&f)
	if !ok || got != "" {
		t.Fatalf("Effective = (%q, %v), want first option", got, ok)
	}
}

func TestIsPlaceholderOption_OnlyFirstIndexCounts(t *testing.T) {
	opt := model.Option{Value: "x", Text: "Select something"}
	if !values.IsPlaceholderOption(0, opt) {
		t.Fatal("first select-like option should be a placeholder")
	}
	if values.IsPlaceholderOption(1, opt) {
		t.Fatal("non-first options are never placeholders")
	}
}

func TestParseBool(t *testing.T) {
	plain := model.Field{ID: "a"}
	withCheckbox := model.Field{ID: "a", Metadata: model.Metadata{CheckboxValue: "newsletter"}}

	cases := []struct {
		field model.Field
		value string
		want  bool
	}{
		{plain, "true", true},
		{plain, "Yes", true},
		{plain, "on", true},
		{plain, "1", true},
		{plain, "false", false},
		{plain, "newsletter", false},
		{withCheckbox, "newsletter", true},
		{withCheckbox, `["offers","newsletter"]`, true},
		{withCheckbox, `["offers"]`, false},
	}
	for _, tc := range cases {
		if got := values.ParseBool(&tc.field, tc.value); got != tc.want {
			t.Fatalf("ParseBool(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRadioWinner_ValueCarrierWins(t *testing.T) {
	r := values.Resolver{}
	members := []*model.Field{
		{ID: "r1", Type: model.FieldTypeRadio},
		{ID: "r2", Type: model.FieldTypeRadio, Value: model.String("b")},
	}

	winner, value := r.RadioWinner(members)
	if winner == nil || winner.ID != "r2" || value != "b" {
		t.Fatalf("winner = %v value %q, want r2/b", winner, value)
	}
}

func TestRadioWinner_NormalModeNoValueNoWinner(t *testing.T) {
	r := values.Resolver{}
	members := []*model.Field{
		{ID: "r1", Type: model.FieldTypeRadio},
		{ID: "r2", Type: model.FieldTypeRadio},
	}

	if winner, _ := r.RadioWinner(members); winner != nil {
		t.Fatalf("expected no winner, got %s", winner.ID)
	}
}

func TestRadioWinner_TestModeAlwaysResolves(t *testing.T) {
	r := values.Resolver{TestMode: true}
	members := []*model.Field{
		{ID: "r1", Type: model.FieldTypeRadio, Label: "Select an option"},
		{ID: "r2", Type: model.FieldTypeRadio, Label: "Red"},
	}

	winner, _ := r.RadioWinner(members)
	if winner == nil || winner.ID != "r2" {
		t.Fatalf("winner = %v, want r2 (first non-placeholder label)", winner)
	}

	allPlaceholders := []*model.Field{
		{ID: "p1", Type: model.FieldTypeRadio, Label: "Select one"},
		{ID: "p2", Type: model.FieldTypeRadio, Label: ""},
	}
	winner, _ = r.RadioWinner(allPlaceholders)
	if winner == nil || winner.ID != "p1" {
		t.Fatalf("winner = %v, want unconditional first member", winner)
	}
}

func TestCheckboxSelections_BoundedInTestMode(t *testing.T) {
	r := values.Resolver{TestMode: true}
	members := []*model.Field{
		{ID: "c1", Type: model.FieldTypeCheckbox},
		{ID: "c2", Type: model.FieldTypeCheckbox},
		{ID: "c3", Type: model.FieldTypeCheckbox},
		{ID: "c4", Type: model.FieldTypeCheckbox},
		{ID: "c5", Type: model.FieldTypeCheckbox},
	}

	selections := r.CheckboxSelections(members)

	checked := 0
	for _, on := range selections {
		if on {
			checked++
		}
	}
	if checked != values.MaxTestCheckboxSelections {
		t.Fatalf("checked = %d, want %d", checked, values.MaxTestCheckboxSelections)
	}
	if !selections["c1"] || !selections["c2"] {
		t.Fatalf("expected the first two members selected: %v", selections)
	}
}

func TestCheckboxSelections_ExplicitValuesResolveIndividually(t *testing.T) {
	r := values.Resolver{}
	members := []*model.Field{
		{ID: "c1", Type: model.FieldTypeCheckbox, Value: model.String("true")},
		{ID: "c2", Type: model.FieldTypeCheckbox, Value: model.String("false")},
		{ID: "c3", Type: model.FieldTypeCheckbox},
	}

	selections := r.CheckboxSelections(members)
	if !selections["c1"] || selections["c2"] || selections["c3"] {
		t.Fatalf("unexpected selections: %v", selections)
	}
}
