// Package xmltree builds a small in-memory element tree from XML input.
//
// Only element names, attributes and element children are kept; character
// data and namespaces are dropped since meet-result documents carry all of
// their data in attributes.
package xmltree

import (
	"strings"

	"github.com/okian/swimtab/internal/domain/types"
)

// Element is a node of the parsed tree.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
}

// Attr returns the named attribute. A nil element has no attributes.
func (e *Element) Attr(name string) types.Opt[string] {
	if e == nil {
		return types.None[string]()
	}
	v, ok := e.Attrs[name]
	if !ok {
		return types.None[string]()
	}
	return types.Some(v)
}

// Find returns the first element matching the slash separated path relative
// to e, or nil.
func (e *Element) Find(path string) *Element {
	found := e.FindAll(path)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// FindAll returns every element matching the slash separated path relative
// to e, in document order.
func (e *Element) FindAll(path string) []*Element {
	if e == nil {
		return nil
	}
	current := []*Element{e}
	for _, step := range strings.Split(path, "/") {
		if step == "" || step == "." {
			continue
		}
		var next []*Element
		for _, el := range current {
			for _, child := range el.Children {
				if child.Name == step {
					next = append(next, child)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}
