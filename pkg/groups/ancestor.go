package groups

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-formfill/pkg/dom"
)

// choiceTokens are class-name fragments suggestive of a choice list. A
// container whose class attribute carries one of these is accepted as a group
// boundary during the ancestor walk.
var choiceTokens = []string{"radio", "option", "toggle", "choice"}

// AncestorGroupKey climbs at most maxDepth parents from an unnamed radio
// looking for a usable group container: an explicit radiogroup/fieldset
// marker, a container holding more than one radio input, or a container with
// choice-like class tokens. The first match wins. ok is false when no
// container qualifies within the depth bound, in which case the caller treats
// the field as a singleton group.
func AncestorGroupKey(el *dom.Element, maxDepth int) (string, bool) {
	if el == nil {
		return "", false
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	for _, anc := range el.Ancestors(maxDepth) {
		if isGroupContainer(anc) {
			return containerKey(anc), true
		}
	}
	return "", false
}

func isGroupContainer(el *dom.Element) bool {
	if strings.EqualFold(el.AttrOr("role", ""), "radiogroup") {
		return true
	}
	if el.Tag() == "fieldset" {
		return true
	}
	if len(el.Find(`input[type="radio"]`)) > 1 {
		return true
	}
	for _, class := range el.Classes() {
		lower := strings.ToLower(class)
		for _, token := range choiceTokens {
			if strings.Contains(lower, token) {
				return true
			}
		}
	}
	return false
}

// containerKey synthesizes a stable key for a discovered container: its id
// when present, otherwise its position path in the tree. The path stays
// stable for the lifetime of the parsed document, which matches the group's
// single-pass lifetime.
func containerKey(el *dom.Element) string {
	if id := strings.TrimSpace(el.AttrOr("id", "")); id != "" {
		return "container:" + id
	}
	return "container:" + nodePath(el.Node())
}

func nodePath(node *html.Node) string {
	if node == nil {
		return ""
	}

	var segments []string
	for current := node; current != nil && current.Type == html.ElementNode; current = current.Parent {
		segments = append(segments, fmt.Sprintf("%s[%d]", current.Data, elementIndex(current)))
	}

	// Reverse into root-first order.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/")
}

func elementIndex(node *html.Node) int {
	idx := 0
	for sibling := node.PrevSibling; sibling != nil; sibling = sibling.PrevSibling {
		if sibling.Type == html.ElementNode {
			idx++
		}
	}
	return idx
}
