package js

import (
	"errors"

	"github.com/dop251/goja"
)

var (
	errHierarchy = errors.New("HierarchyRequestError: the new child is an ancestor of the parent")
	errNotFound  = errors.New("NotFoundError: the node to be removed is not a child of this node")
)

// Traversal property methods on elementAccessor

func (e *elementAccessor) firstChild() goja.Value {
	if len(e.node.Children) == 0 {
		return goja.Null()
	}
	return e.ctx.elementProxy(e.node.Children[0])
}

func (e *elementAccessor) lastChild() goja.Value {
	if len(e.node.Children) == 0 {
		return goja.Null()
	}
	return e.ctx.elementProxy(e.node.Children[len(e.node.Children)-1])
}

// sibling returns the sibling offset positions away, or null.
func (e *elementAccessor) sibling(offset int) goja.Value {
	parent := e.node.Parent
	if parent == nil {
		return goja.Null()
	}
	for i, c := range parent.Children {
		if c != e.node {
			continue
		}
		j := i + offset
		if j < 0 || j >= len(parent.Children) {
			return goja.Null()
		}
		return e.ctx.elementProxy(parent.Children[j])
	}
	return goja.Null()
}
