package rewriter

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is the start tag of a matched element. Mutations are applied to
// the tag before it is written; content is never buffered.
type Element struct {
	node     *html.Node
	modified bool
	removed  bool
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// GetAttribute returns the value of the named attribute and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

// SetAttribute sets name to value, replacing an existing value.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	e.modified = true
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute deletes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			e.modified = true
			return
		}
	}
}

// Remove drops the element, its content and its end tag from the output.
// Handlers registered after the removing one are not called.
func (e *Element) Remove() {
	e.removed = true
}

// Removed reports whether Remove was called.
func (e *Element) Removed() bool {
	return e.removed
}
