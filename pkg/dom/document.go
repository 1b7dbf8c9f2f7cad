package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/goliatone/go-formfill/pkg/events"
)

// DefaultIDAttribute is the stable attribute fillable elements carry to match
// a field id. Plain id and name attributes act as fallbacks.
const DefaultIDAttribute = "data-field-id"

// Document is a live handle over a parsed HTML page. Synthetic events raised
// against its elements flow into the configured sink.
type Document struct {
	doc    *goquery.Document
	sink   events.Sink
	idAttr string
}

// DocumentOption customises a Document during parsing.
type DocumentOption func(*Document)

// WithSink routes dispatched synthetic events to the supplied sink.
func WithSink(sink events.Sink) DocumentOption {
	return func(d *Document) {
		if sink != nil {
			d.sink = sink
		}
	}
}

// WithIDAttribute overrides the attribute used to match field ids.
func WithIDAttribute(attr string) DocumentOption {
	return func(d *Document) {
		if trimmed := strings.TrimSpace(attr); trimmed != "" {
			d.idAttr = trimmed
		}
	}
}

// Parse reads an HTML document from r.
func Parse(r io.Reader, options ...DocumentOption) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}

	doc := &Document{
		doc:    gq,
		sink:   events.Discard,
		idAttr: DefaultIDAttribute,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(doc)
	}
	return doc, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(src string, options ...DocumentOption) (*Document, error) {
	return Parse(strings.NewReader(src), options...)
}

// Sink returns the event sink receiving dispatched synthetic events.
func (d *Document) Sink() events.Sink {
	return d.sink
}

// IDAttribute returns the attribute used to match field ids.
func (d *Document) IDAttribute() string {
	return d.idAttr
}

// Locate returns the primary element for a field id: the first visible match,
// falling back to the first hidden one. ok is false when nothing matches,
// which is not an error; unrendered fields are simply skipped.
func (d *Document) Locate(fieldID string) (*Element, bool) {
	els := d.LocateAll(fieldID)
	if len(els) == 0 {
		return nil, false
	}
	return els[0], true
}

// LocateAll returns every element carrying the field id, visible elements
// first. Duplicated widgets (a visible control plus a hidden accessibility
// twin) are all reported so callers can pick by value.
func (d *Document) LocateAll(fieldID string) []*Element {
	if strings.TrimSpace(fieldID) == "" {
		return nil
	}

	escaped := escapeAttrValue(fieldID)
	selectors := []string{
		fmt.Sprintf(`[%s="%s"]`, d.idAttr, escaped),
		fmt.Sprintf(`[id="%s"]`, escaped),
		fmt.Sprintf(`[name="%s"]`, escaped),
	}

	seen := make(map[*html.Node]struct{})
	var candidates []*Element
	for _, selector := range selectors {
		d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			el := newElement(d, sel)
			if _, dup := seen[el.node]; dup {
				return
			}
			seen[el.node] = struct{}{}
			candidates = append(candidates, el)
		})
	}

	return visibleFirst(candidates)
}

// Find runs a raw selector query against the document.
func (d *Document) Find(selector string) []*Element {
	var out []*Element
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, newElement(d, sel))
	})
	return out
}

// HTML serializes the current document state.
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("dom: serialize document: %w", err)
	}
	return out, nil
}

// Render writes the serialized document to w.
func (d *Document) Render(w io.Writer) error {
	out, err := d.HTML()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("dom: render document: %w", err)
	}
	return nil
}

func (d *Document) dispatch(ev events.Event) {
	if d.sink == nil {
		return
	}
	d.sink.Dispatch(ev)
}

// visibleFirst reorders elements so visible ones come before hidden ones while
// keeping relative order stable within each class.
func visibleFirst(els []*Element) []*Element {
	if len(els) < 2 {
		return els
	}
	out := make([]*Element, 0, len(els))
	for _, el := range els {
		if el.Visible() {
			out = append(out, el)
		}
	}
	for _, el := range els {
		if !el.Visible() {
			out = append(out, el)
		}
	}
	return out
}

// escapeAttrValue keeps arbitrary page-supplied ids safe inside an attribute
// selector literal.
func escapeAttrValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}
