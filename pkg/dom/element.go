package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formfill/pkg/events"
)

// Element is a handle over a single node inside a Document. Mutations write
// straight onto the underlying tree; events dispatch through the document
// sink.
type Element struct {
	doc  *Document
	sel  *goquery.Selection
	node *html.Node
	kind ElementKind
}

func newElement(doc *Document, sel *goquery.Selection) *Element {
	el := &Element{doc: doc, sel: sel}
	if len(sel.Nodes) > 0 {
		el.node = sel.Nodes[0]
	}
	el.kind = classify(sel)
	return el
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Node exposes the underlying parse-tree node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Kind returns the element classification resolved at handle creation.
func (e *Element) Kind() ElementKind {
	return e.kind
}

// Tag returns the lowercase tag name.
func (e *Element) Tag() string {
	return goquery.NodeName(e.sel)
}

// FieldID returns the identifier the element carries: the configured id
// attribute first, then id, then name.
func (e *Element) FieldID() string {
	if v, ok := e.Attr(e.doc.idAttr); ok {
		return v
	}
	if v, ok := e.Attr("id"); ok {
		return v
	}
	return e.AttrOr("name", "")
}

// Attr reads an attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// AttrOr reads an attribute with a fallback.
func (e *Element) AttrOr(name, fallback string) string {
	return e.sel.AttrOr(name, fallback)
}

// HasAttr reports attribute presence regardless of value.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.sel.Attr(name)
	return ok
}

// SetAttr writes an attribute.
func (e *Element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(name string) {
	e.sel.RemoveAttr(name)
}

// Text returns the combined text content.
func (e *Element) Text() string {
	return e.sel.Text()
}

// SetText replaces the element's content with a text node.
func (e *Element) SetText(text string) {
	e.sel.SetText(text)
}

// Value returns the value attribute, or the text content for textareas.
func (e *Element) Value() string {
	if e.kind == KindTextArea {
		return e.Text()
	}
	return e.AttrOr("value", "")
}

// SetValue writes the element's value: text content for textareas, the value
// attribute otherwise.
func (e *Element) SetValue(value string) {
	if e.kind == KindTextArea {
		e.SetText(value)
		return
	}
	e.SetAttr("value", value)
}

// Checked reports the checked state for checkbox/radio inputs and their ARIA
// counterparts.
func (e *Element) Checked() bool {
	if e.kind == KindAriaCheckbox || e.kind == KindAriaRadio {
		return strings.EqualFold(e.AttrOr("aria-checked", ""), "true")
	}
	return e.HasAttr("checked")
}

// SetChecked writes the checked state. ARIA widgets get aria-checked; native
// inputs get the checked attribute plus mirrored aria-checked when the page
// already carries one.
func (e *Element) SetChecked(checked bool) {
	if e.kind == KindAriaCheckbox || e.kind == KindAriaRadio {
		if checked {
			e.SetAttr("aria-checked", "true")
		} else {
			e.SetAttr("aria-checked", "false")
		}
		return
	}
	if checked {
		e.SetAttr("checked", "checked")
	} else {
		e.RemoveAttr("checked")
	}
	if e.HasAttr("aria-checked") {
		if checked {
			e.SetAttr("aria-checked", "true")
		} else {
			e.SetAttr("aria-checked", "false")
		}
	}
}

// Visible reports whether the element renders. Hidden inputs, hidden/
// aria-hidden attributes, and inline display:none/visibility:hidden styles all
// count as invisible.
func (e *Element) Visible() bool {
	if e.kind == KindHidden {
		return false
	}
	if e.HasAttr("hidden") {
		return false
	}
	if strings.EqualFold(e.AttrOr("aria-hidden", ""), "true") {
		return false
	}
	style := strings.ToLower(e.AttrOr("style", ""))
	style = strings.ReplaceAll(style, " ", "")
	if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
		return false
	}
	return true
}

// Disabled reports whether the element refuses mutation via disabled state.
func (e *Element) Disabled() bool {
	return e.HasAttr("disabled") || strings.EqualFold(e.AttrOr("aria-disabled", ""), "true")
}

// ReadOnly reports the readonly/aria-readonly state.
func (e *Element) ReadOnly() bool {
	return e.HasAttr("readonly") || strings.EqualFold(e.AttrOr("aria-readonly", ""), "true")
}

// Mutable reports whether the engine is allowed to touch the element.
func (e *Element) Mutable() bool {
	return !e.Disabled() && !e.ReadOnly()
}

// Parent returns the parent element, ok=false at the tree root.
func (e *Element) Parent() (*Element, bool) {
	parent := e.sel.Parent()
	if parent.Length() == 0 {
		return nil, false
	}
	tag := goquery.NodeName(parent)
	if tag == "" || strings.HasPrefix(tag, "#") {
		return nil, false
	}
	return newElement(e.doc, parent), true
}

// Ancestors returns up to maxDepth parents, nearest first.
func (e *Element) Ancestors(maxDepth int) []*Element {
	var out []*Element
	current := e
	for depth := 0; depth < maxDepth; depth++ {
		parent, ok := current.Parent()
		if !ok {
			break
		}
		out = append(out, parent)
		current = parent
	}
	return out
}

// Closest returns the nearest ancestor (or self) matching the selector.
func (e *Element) Closest(selector string) (*Element, bool) {
	closest := e.sel.Closest(selector)
	if closest.Length() == 0 {
		return nil, false
	}
	return newElement(e.doc, closest), true
}

// Find queries descendants by selector.
func (e *Element) Find(selector string) []*Element {
	var out []*Element
	e.sel.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, newElement(e.doc, sel))
	})
	return out
}

// Options returns the option elements of a select.
func (e *Element) Options() []*Element {
	return e.Find("option")
}

// Classes returns the class attribute tokens.
func (e *Element) Classes() []string {
	raw := e.AttrOr("class", "")
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}

// OuterHTML serializes the element, mostly for diagnostics and tests.
func (e *Element) OuterHTML() (string, error) {
	return goquery.OuterHtml(e.sel)
}

// Dispatch raises one synthetic event through the document sink.
func (e *Element) Dispatch(ev events.Event) {
	e.doc.dispatch(ev)
}

// DispatchAll raises an event sequence in order.
func (e *Element) DispatchAll(evs []events.Event) {
	for _, ev := range evs {
		e.Dispatch(ev)
	}
}

// Click dispatches a synthetic click against the element.
func (e *Element) Click() {
	e.Dispatch(events.Click(e.FieldID()))
}
