package update

import (
	"strings"

	"github.com/goliatone/go-formfill/pkg/dom"
)

const (
	markerStyle = "outline:2px solid #6d28d9;outline-offset:1px"
	markerTitle = "Filled automatically"
)

// Marker applies the one-time visual feedback to freshly filled elements. It
// is owned by a fill session, not a package singleton, so concurrent harness
// runs cannot leak marks into each other. The marked set persists for the
// session lifetime so repeated passes don't re-animate the same element.
type Marker struct {
	marked map[string]struct{}
}

// NewMarker creates an empty marker cache.
func NewMarker() *Marker {
	return &Marker{marked: make(map[string]struct{})}
}

// MarkOnce decorates the element the first time its field id is seen. The
// styling is for human inspection only and plays no part in correctness.
func (m *Marker) MarkOnce(el *dom.Element, fieldID string) {
	if _, done := m.marked[fieldID]; done {
		return
	}
	m.marked[fieldID] = struct{}{}

	style := strings.TrimSpace(el.AttrOr("style", ""))
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	el.SetAttr("style", style+markerStyle)
	el.SetAttr("title", markerTitle)
}

// Marked reports whether a field already received its marker.
func (m *Marker) Marked(fieldID string) bool {
	_, ok := m.marked[fieldID]
	return ok
}
