package formfill_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	formfill "github.com/goliatone/go-formfill"
	"github.com/goliatone/go-formfill/pkg/fill"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/testsupport"
)

const signupPage = `<body>
	<form>
		<input data-field-id="name" type="text">
		<input data-field-id="email" type="email">
		<select data-field-id="plan">
			<option value="">Select a plan</option>
			<option value="basic">Basic</option>
			<option value="pro">Pro</option>
		</select>
	</form>
</body>`

func TestFillDocument(t *testing.T) {
	fields := []formfill.Field{
		{ID: "name", Type: model.FieldTypeText, Value: model.String("Ada")},
		{ID: "email", Type: model.FieldTypeEmail, Value: model.String("ada@example.com")},
		{ID: "plan", Type: model.FieldTypeSelect, Value: model.String("pro")},
	}

	session, res, err := formfill.FillDocument(context.Background(), strings.NewReader(signupPage), fields, false,
		fill.WithLogger(testsupport.NopLogger()))
	if err != nil {
		t.Fatalf("fill document: %v", err)
	}
	if res.Filled() != 3 {
		t.Fatalf("filled = %d, want 3", res.Filled())
	}

	doc := session.Document()
	name, _ := doc.Locate("name")
	if name.Value() != "Ada" {
		t.Fatalf("name = %q", name.Value())
	}

	plan, _ := doc.Locate("plan")
	if !plan.Options()[2].HasAttr("selected") {
		t.Fatal("pro plan not selected")
	}
}

func TestFillDocument_TestModeUsesPlaceholderSkipping(t *testing.T) {
	fields := []formfill.Field{
		{ID: "plan", Type: model.FieldTypeSelect, Options: []formfill.Option{
			{Value: "", Text: "Select a plan"},
			{Value: "basic", Text: "Basic"},
			{Value: "pro", Text: "Pro"},
		}},
	}

	session, res, err := formfill.FillDocument(context.Background(), strings.NewReader(signupPage), fields, true,
		fill.WithLogger(testsupport.NopLogger()))
	if err != nil {
		t.Fatalf("fill document: %v", err)
	}
	if res.Statuses["plan"] != fill.StatusFilled {
		t.Fatalf("status = %s", res.Statuses["plan"])
	}

	plan, _ := session.Document().Locate("plan")
	options := plan.Options()
	if !options[1].HasAttr("selected") {
		t.Fatal("first real option not selected in test mode")
	}
	if options[0].HasAttr("selected") {
		t.Fatal("placeholder selected")
	}
}

func TestFillDocumentStream(t *testing.T) {
	base := []formfill.Field{
		{ID: "name", Type: model.FieldTypeText},
		{ID: "email", Type: model.FieldTypeEmail},
	}
	updates := `{"data":[{"id":"name","value":"Ada"}]}` + "\n" +
		`{"data":[{"id":"email","value":"ada@example.com"}]}` + "\n"

	session, res, err := formfill.FillDocumentStream(context.Background(), strings.NewReader(signupPage), base,
		strings.NewReader(updates), false, fill.WithLogger(testsupport.NopLogger()))
	if err != nil {
		t.Fatalf("fill stream: %v", err)
	}
	if res.Filled() != 2 {
		t.Fatalf("filled = %d, want 2", res.Filled())
	}

	email, _ := session.Document().Locate("email")
	if email.Value() != "ada@example.com" {
		t.Fatalf("email = %q", email.Value())
	}
}

func TestFillDocument_BadHTMLReaderErrors(t *testing.T) {
	_, _, err := formfill.FillDocument(context.Background(), failingReader{}, nil, false)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}
