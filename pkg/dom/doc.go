// Package dom wraps a parsed HTML document and exposes the element handles the
// fill engine mutates. Locating is always a live query against the current
// tree; element handles are never cached across passes.
package dom
