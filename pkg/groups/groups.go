// Package groups partitions radio and checkbox fields into selection groups
// before any mutation happens, so exclusivity can be enforced per group rather
// than per field.
package groups

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfill/pkg/dom"
	"github.com/goliatone/go-formfill/pkg/model"
)

// Kind distinguishes mutually-exclusive radio groups from co-selectable
// checkbox groups.
type Kind int

const (
	KindRadio Kind = iota
	KindCheckbox
)

// Group is a transient set of fields sharing selection semantics. It lives for
// a single fill pass and is never persisted.
type Group struct {
	Key     string
	Kind    Kind
	Members []*model.Field
}

// Set is the pass-scoped partition result: ordered radio and checkbox groups
// plus every field that takes no part in grouping.
type Set struct {
	radio    []*Group
	checkbox []*Group
	other    []*model.Field
}

// RadioGroups returns the radio groups in first-appearance order.
func (s *Set) RadioGroups() []*Group {
	return s.radio
}

// CheckboxGroups returns the checkbox groups in first-appearance order.
func (s *Set) CheckboxGroups() []*Group {
	return s.checkbox
}

// Ungrouped returns fields processed individually, in input order.
func (s *Set) Ungrouped() []*model.Field {
	return s.other
}

// Options tunes group resolution.
type Options struct {
	// MaxDepth bounds the upward ancestor walk for unnamed radios.
	MaxDepth int
}

// DefaultMaxDepth is how far the ancestor heuristic climbs by default.
const DefaultMaxDepth = 3

// Resolve partitions the fields. Radio keys come from an explicit metadata
// group name, the element's name attribute, or the ancestor heuristic;
// a radio with none of those forms a singleton group. Checkbox keys come from
// the name attribute, the metadata group name, or the field label; checkboxes
// without a discoverable key stay independent.
func Resolve(doc *dom.Document, fields []*model.Field, opts Options) *Set {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	set := &Set{}
	radioIdx := make(map[string]*Group)
	checkIdx := make(map[string]*Group)

	for _, field := range fields {
		switch field.Type {
		case model.FieldTypeRadio:
			key := radioKey(doc, field, maxDepth)
			appendMember(&set.radio, radioIdx, key, KindRadio, field)
		case model.FieldTypeCheckbox:
			key, ok := checkboxKey(doc, field)
			if !ok {
				set.other = append(set.other, field)
				continue
			}
			appendMember(&set.checkbox, checkIdx, key, KindCheckbox, field)
		default:
			set.other = append(set.other, field)
		}
	}

	return set
}

func appendMember(groups *[]*Group, idx map[string]*Group, key string, kind Kind, field *model.Field) {
	if g, ok := idx[key]; ok {
		g.Members = append(g.Members, field)
		return
	}
	g := &Group{Key: key, Kind: kind, Members: []*model.Field{field}}
	idx[key] = g
	*groups = append(*groups, g)
}

func radioKey(doc *dom.Document, field *model.Field, maxDepth int) string {
	if name := strings.TrimSpace(field.Metadata.GroupName); name != "" {
		return "meta:" + name
	}

	el, ok := doc.Locate(field.ID)
	if !ok {
		return "field:" + field.ID
	}
	if name := strings.TrimSpace(el.AttrOr("name", "")); name != "" {
		return "name:" + name
	}
	if key, ok := AncestorGroupKey(el, maxDepth); ok {
		return key
	}
	return "field:" + field.ID
}

func checkboxKey(doc *dom.Document, field *model.Field) (string, bool) {
	if el, ok := doc.Locate(field.ID); ok {
		if name := strings.TrimSpace(el.AttrOr("name", "")); name != "" {
			return "name:" + name, true
		}
	}
	if name := strings.TrimSpace(field.Metadata.GroupName); name != "" {
		return "meta:" + name, true
	}
	if label := LabelKey(field.Label); label != "" {
		return "label:" + label, true
	}
	return "", false
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// LabelKey derives a grouping key from a field label. Labels scraped off
// uncontrolled pages can carry markup, so the text is stripped through a
// strict sanitizer before normalization.
func LabelKey(label string) string {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	clean := labelPolicy.Sanitize(label)
	clean = strings.ToLower(strings.TrimSpace(clean))
	if clean == "" {
		return ""
	}
	return strings.Join(strings.Fields(clean), " ")
}
