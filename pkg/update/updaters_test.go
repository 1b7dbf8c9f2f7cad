package update_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/testsupport"
	"github.com/goliatone/go-formfill/pkg/update"
)

func apply(t *testing.T, doc *dom.Document, fieldID string, req update.Request) error {
	t.Helper()

	el, ok := doc.Locate(fieldID)
	if !ok {
		t.Fatalf("fixture missing element %q", fieldID)
	}
	updater, err := update.DefaultRegistry().Get(el.Kind())
	if err != nil {
		t.Fatalf("resolve updater: %v", err)
	}
	if req.Logger == nil {
		req.Logger = testsupport.NopLogger()
	}
	return updater.Apply(context.Background(), el, req)
}

func TestTextUpdater_SetsValueAndEvents(t *testing.T) {
	doc, sink := testsupport.ParseDoc(t, `<body><input data-field-id="name" type="text"></body>`)
	field := testsupport.TextField("name", "Ada")

	err := apply(t, doc, "name", update.Request{Field: &field, Value: "Ada", HasValue: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	el, _ := doc.Locate("name")
	if el.Value() != "Ada" {
		t.Fatalf("value = %q, want Ada", el.Value())
	}
	types := sink.Types()
	if len(types) != 2 || types[0] != events.TypeInput || types[1] != events.TypeChange {
		t.Fatalf("event types = %v, want [input change]", types)
	}
}

func TestSelectUpdater_MatchesByVisibleText(t *testing.T) {
	doc, _ := testsupport.ParseDoc(t, `<body>
		<select data-field-id="color">
			<option value="r">Red</option>
			<option value="b">Blue</option>
		</select>
	</body>`)
	field := testsupport.SelectField("color", testsupport.Opt("r", "Red"), testsupport.Opt("b", "Blue"))

	err := apply(t, doc, "color", update.Request{Field: &field, Value: "Blue", HasValue: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	el, _ := doc.Locate("color")
	options := el.Options()
	if options[0].HasAttr("selected") || !options[1].HasAttr("selected") {
		t.Fatalf("wrong option selected: %v %v", options[0].HasAttr("selected"), options[1].HasAttr("selected"))
	}
}

func TestSelectUpdater_ClickNudgeAfterSelection(t *testing.T) {
	doc, sink := testsupport.ParseDoc(t, `<body>
		<select data-field-id="color"><option value="r">Red</option></select>
	</body>`)
	field := testsupport.SelectField("color", testsupport.Opt("r", "Red"))

	if err := apply(t, doc, "color", update.Request{Field: &field, Value: "r", HasValue: true}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	types := sink.Types()
	if types[len(types)-1] != events.TypeClick {
		t.Fatalf("event types = %v, want trailing click", types)
	}
}

func TestSelectUpdater_NoMatchSkipsWithoutMutation(t *testing.T) {
	doc, sink := testsupport.ParseDoc(t, `<body>
		<select data-field-id="color"><option value="r">Red</option></select>
	</body>`)
	field := testsupport.SelectField("color", testsupport.Opt("r", "Red"))

	err := apply(t, doc, "color", update.Request{Field: &field, Value: "green", HasValue: true})
	if !errors.Is(err, update.ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch", err)
	}
	if len(sink.Events) != 0 {
		t.Fatalf("no events expected on miss, got %v", sink.Types())
	}
	el, _ := doc.Locate("color")
	if el.Options()[0].HasAttr("selected") {
		t.Fatal("option mutated despite miss")
	}
}

func TestRadioUpdater_ChecksMatchingInputAndClearsSiblings(t *testing.T) {
	doc, _ := testsupport.ParseDoc(t, `<body>
		<input data-field-id="f1" type="radio" name="choice" value="a" checked>
		<input data-field-id="f1" type="radio" name="choice" value="b">
	</body>`)
	field := model.Field{ID: "f1", Type: model.FieldTypeRadio}

	err := apply(t, doc, "f1", update.Request{Field: &field, Value: "b", HasValue: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	els := doc.LocateAll("f1")
	var checked []string
	for _, el := range els {
		if el.Checked() {
			checked = append(checked, el.AttrOr("value", ""))
		}
	}
	if len(checked) != 1 || checked[0] != "b" {
		t.Fatalf("checked = %v, want exactly [b]", checked)
	}
}

func TestRadioUpdater_DisabledCandidateNeverMatches(t *testing.T) {
	doc, _ := testsupport.ParseDoc(t, `<body>
		<input data-field-id="f1" type="radio" name="g" value="a">
		<input data-field-id="f1" type="radio" name="g" value="b" disabled>
	</body>`)
	field := model.Field{ID: "f1", Type: model.FieldTypeRadio}

	err := apply(t, doc, "f1", update.Request{Field: &field, Value: "b", HasValue: true})
	if !errors.Is(err, update.ErrNoMatch) {
		t.Fatalf("err = %v, want ErrNoMatch when the only value match is disabled", err)
	}

	for _, el := range doc.LocateAll("f1") {
		if el.Checked() {
			t.Fatalf("input value=%q mutated despite the miss", el.AttrOr("value", ""))
		}
	}
}

func TestRadioUpdater_AriaSiblingsCleared(t *testing.T) {
	doc, _ := testsupport.ParseDoc(t, `<body>
		<div role="radiogroup">
			<div data-field-id="r1" role="radio" aria-checked="true"></div>
			<div data-field-id="r2" role="radio"></div>
		</div>
	</body>`)
	field := model.Field{ID: "r2", Type: model.FieldTypeRadio}

	if err := apply(t, doc, "r2", update.Request{Field: &field}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	r1, _ := doc.Locate("r1")
	if r1.HasAttr("aria-checked") {
		t.Fatalf("sibling aria-checked not cleared: %q", r1.AttrOr("aria-checked", ""))
	}
	r2, _ := doc.Locate("r2")
	if r2.AttrOr("aria-checked", "") != "true" {
		t.Fatal("winner not checked")
	}
}

func TestButtonUpdater_NeverTouchesSubmitControls(t *testing.T) {
	doc, sink := testsupport.ParseDoc(t, `<body>
		<input data-field-id="go" type="submit" value="Send">
		<input data-field-id="label" type="button" value="Old">
	</body>`)

	submit := model.Field{ID: "go", Type: model.FieldTypeButton}
	if err := apply(t, doc, "go", update.Request{Field: &submit, Value: "Hacked", HasValue: true}); err != nil {
		t.Fatalf("apply submit: %v", err)
	}
	el, _ := doc.Locate("go")
	if el.AttrOr("value", "") != "Send" {
		t.Fatal("submit control was mutated")
	}
	if len(sink.Events) != 0 {
		t.Fatalf("submit control raised events: %v", sink.Types())
	}

	button := model.Field{ID: "label", Type: model.FieldTypeButton}
	if err := apply(t, doc, "label", update.Request{Field: &button, Value: "New", HasValue: true}); err != nil {
		t.Fatalf("apply button: %v", err)
	}
	el, _ = doc.Locate("label")
	if el.AttrOr("value", "") != "New" {
		t.Fatal("plain button not mutated")
	}
}

func TestFileUpdater_TestModeAttachesSample(t *testing.T) {
	doc, sink := testsupport.ParseDoc(t, `<body><input data-field-id="doc" type="file"></body>`)
	field := model.Field{ID: "doc", Type: model.FieldTypeFile}

	err := apply(t, doc, "doc", update.Request{Field: &field, TestMode: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	el, _ := doc.Locate("doc")
	if el.AttrOr("data-file-name", "") != update.SampleDocument.Name {
		t.Fatalf("sample not attached: %q", el.AttrOr("data-file-name", ""))
	}
	if len(sink.Events) == 0 {
		t.Fatal("no events raised for file attachment")
	}
}

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) (update.File, error) {
	return update.File{}, fmt.Errorf("boom")
}

func TestFileUpdater_FetchFailureLeavesFieldUnset(t *testing.T) {
	doc, _ := testsupport.ParseDoc(t, `<body><input data-field-id="doc" type="file"></body>`)
	field := model.Field{ID: "doc", Type: model.FieldTypeFile, Value: model.String("https://example.com/x.pdf")}

	err := apply(t, doc, "doc", update.Request{
		Field:    &field,
		Value:    *field.Value,
		HasValue: true,
		Fetcher:  failingFetcher{},
	})
	if !errors.Is(err, update.ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}

	el, _ := doc.Locate("doc")
	if el.HasAttr("data-file-name") {
		t.Fatal("field mutated despite fetch failure")
	}
}

func TestMarker_MarksOnce(t *testing.T) {
	doc, _ := testsupport.ParseDoc(t, `<body><input data-field-id="a" type="text"></body>`)
	el, _ := doc.Locate("a")

	marker := update.NewMarker()
	marker.MarkOnce(el, "a")
	first := el.AttrOr("style", "")
	marker.MarkOnce(el, "a")

	if el.AttrOr("style", "") != first {
		t.Fatal("second mark mutated style again")
	}
	if !marker.Marked("a") {
		t.Fatal("marker did not record field")
	}
	if el.AttrOr("title", "") == "" {
		t.Fatal("tooltip missing")
	}
}
