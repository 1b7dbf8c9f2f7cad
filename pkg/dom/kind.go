package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ElementKind is the closed classification the updater registry dispatches
// over. It is resolved once per element handle.
type ElementKind int

const (
	KindUnknown ElementKind = iota
	KindText
	KindTextArea
	KindCheckbox
	KindRadio
	KindSelect
	KindFile
	KindButton
	KindHidden
	KindContentEditable
	KindAriaCheckbox
	KindAriaRadio
)

var kindNames = map[ElementKind]string{
	KindUnknown:         "unknown",
	KindText:            "text",
	KindTextArea:        "textarea",
	KindCheckbox:        "checkbox",
	KindRadio:           "radio",
	KindSelect:          "select",
	KindFile:            "file",
	KindButton:          "button",
	KindHidden:          "hidden",
	KindContentEditable: "contenteditable",
	KindAriaCheckbox:    "aria-checkbox",
	KindAriaRadio:       "aria-radio",
}

func (k ElementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// classify resolves the element kind from tag, type attribute, role, and
// contenteditable state.
func classify(sel *goquery.Selection) ElementKind {
	tag := goquery.NodeName(sel)

	switch tag {
	case "select":
		return KindSelect
	case "textarea":
		return KindTextArea
	case "button":
		return KindButton
	case "input":
		switch strings.ToLower(sel.AttrOr("type", "text")) {
		case "checkbox":
			return KindCheckbox
		case "radio":
			return KindRadio
		case "file":
			return KindFile
		case "hidden":
			return KindHidden
		case "button", "submit", "reset", "image":
			return KindButton
		default:
			return KindText
		}
	}

	if editable, ok := sel.Attr("contenteditable"); ok && !strings.EqualFold(editable, "false") {
		return KindContentEditable
	}

	switch strings.ToLower(sel.AttrOr("role", "")) {
	case "checkbox", "switch":
		return KindAriaCheckbox
	case "radio":
		return KindAriaRadio
	case "textbox", "searchbox":
		return KindContentEditable
	}

	return KindUnknown
}
