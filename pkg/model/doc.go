// Package model defines the field descriptors the fill engine consumes and the
// merge semantics applied to streamed partial updates.
package model
