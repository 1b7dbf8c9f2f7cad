// Package testsupport provides the fixture documents and field builders the
// package tests share.
package testsupport

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/events"
	"github.com/goliatone/go-formfill/pkg/model"
)

// ParseDoc parses fixture HTML and wires a recording sink so tests can assert
// on dispatched event sequences.
func ParseDoc(t *testing.T, src string) (*dom.Document, *events.RecordingSink) {
	t.Helper()

	sink := &events.RecordingSink{}
	doc, err := dom.ParseString(src, dom.WithSink(sink))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc, sink
}

// NopLogger returns a logger that swallows all output, keeping test runs
// quiet while still exercising the logging paths.
func NopLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// TextField builds a text field with a normal-mode value.
func TextField(id, value string) model.Field {
	return model.Field{ID: id, Type: model.FieldTypeText, Value: model.String(value)}
}

// RadioField builds a radio field from value/text option pairs. selected
// flags the option index reported as selected; pass a negative index for
// none.
func RadioField(id string, selected int, options ...model.Option) model.Field {
	f := model.Field{ID: id, Type: model.FieldTypeRadio, Options: options}
	if selected >= 0 && selected < len(options) {
		f.Options[selected].Selected = true
	}
	return f
}

// SelectField builds a select field from options.
func SelectField(id string, options ...model.Option) model.Field {
	return model.Field{ID: id, Type: model.FieldTypeSelect, Options: options}
}

// CheckboxField builds a checkbox field with an optional label.
func CheckboxField(id, label string) model.Field {
	return model.Field{ID: id, Type: model.FieldTypeCheckbox, Label: label}
}

// Opt builds one option.
func Opt(value, text string) model.Option {
	return model.Option{Value: value, Text: text}
}
