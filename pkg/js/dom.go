package js

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"tessera/pkg/html"
)

// domContext holds shared state for DOM bindings within a single execution.
// It maintains a node-to-proxy cache so the same JS object is returned for
// the same underlying *html.Node (needed for === identity checks).
type domContext struct {
	vm    *goja.Runtime
	doc   *html.Document
	cache map[*html.Node]goja.Value
}

func newDOMContext(vm *goja.Runtime, doc *html.Document) *domContext {
	return &domContext{
		vm:    vm,
		doc:   doc,
		cache: make(map[*html.Node]goja.Value),
	}
}

// registerDocument sets up the global `document` object on the goja runtime.
func registerDocument(vm *goja.Runtime, doc *html.Document) *domContext {
	ctx := newDOMContext(vm, doc)

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		node := doc.Root.GetElementByID(call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return ctx.elementProxy(node)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(getElementsByTagName(doc.Root, call.Arguments[0].String(), true))
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		return ctx.elementArray(doc.Root.GetElementsByClassName(call.Arguments[0].String()))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
		}
		return ctx.elementProxy(html.NewElement(call.Arguments[0].String()))
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return ctx.elementProxy(html.NewText(text))
	})

	docObj.Set("documentElement", ctx.elementProxy(doc.Root))
	if body := firstChildOfKind(doc.Root, html.KindBody); body != nil {
		docObj.Set("body", ctx.elementProxy(body))
	} else {
		docObj.Set("body", goja.Null())
	}

	vm.Set("document", docObj)
	return ctx
}

func firstChildOfKind(node *html.Node, kind html.ElementKind) *html.Node {
	for _, c := range node.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// getElementsByTagName collects element nodes with the given tag name,
// including node itself when self is set.
func getElementsByTagName(node *html.Node, tag string, self bool) []*html.Node {
	tag = strings.ToLower(tag)
	var result []*html.Node
	node.Walk(func(n *html.Node) bool {
		if (self || n != node) && !n.IsText() && (tag == "*" || n.Tag == tag) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// elementArray creates a JS array of Element proxies.
func (ctx *domContext) elementArray(nodes []*html.Node) goja.Value {
	arr := ctx.vm.NewArray()
	for i, n := range nodes {
		arr.Set(strconv.Itoa(i), ctx.elementProxy(n))
	}
	return arr
}

// elementProxy creates (or retrieves from cache) a JS DynamicObject wrapping an html.Node.
func (ctx *domContext) elementProxy(node *html.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

// unwrapNode extracts the *html.Node from a goja value that wraps an elementAccessor.
func (ctx *domContext) unwrapNode(val goja.Value) *html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for node, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return node
		}
	}
	return nil
}

// elementAccessor implements goja.DynamicObject to intercept property access
// on DOM element proxies.
type elementAccessor struct {
	ctx  *domContext
	node *html.Node
}

var elementKeys = []string{
	"tagName", "nodeName", "nodeType", "nodeValue", "id", "className",
	"textContent", "children", "childNodes", "parentElement", "parentNode",
	"appendChild", "removeChild", "remove",
	"firstChild", "lastChild", "nextSibling", "previousSibling",
	"classList", "getElementsByTagName", "getElementsByClassName",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	n := e.node

	switch key {
	case "nodeType":
		if n.IsText() {
			return vm.ToValue(3) // Node.TEXT_NODE
		}
		return vm.ToValue(1) // Node.ELEMENT_NODE
	case "nodeName":
		if n.IsText() {
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(n.Tag))
	case "nodeValue":
		if n.IsText() {
			return vm.ToValue(n.Text)
		}
		return goja.Null()
	case "tagName":
		if n.IsText() {
			return goja.Undefined()
		}
		return vm.ToValue(strings.ToUpper(n.Tag))
	case "id":
		return vm.ToValue(n.ID)
	case "className":
		return vm.ToValue(n.ClassAttr())
	case "textContent":
		return vm.ToValue(n.TextContent())
	case "children":
		var elChildren []*html.Node
		for _, child := range n.Children {
			if !child.IsText() {
				elChildren = append(elChildren, child)
			}
		}
		return e.ctx.elementArray(elChildren)
	case "childNodes":
		return e.ctx.elementArray(n.Children)
	case "parentElement", "parentNode":
		if n.Parent != nil {
			return e.ctx.elementProxy(n.Parent)
		}
		return goja.Null()

	case "appendChild":
		return vm.ToValue(e.appendChildFn())
	case "removeChild":
		return vm.ToValue(e.removeChildFn())
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return goja.Undefined()
		})

	case "firstChild":
		return e.firstChild()
	case "lastChild":
		return e.lastChild()
	case "nextSibling":
		return e.sibling(1)
	case "previousSibling":
		return e.sibling(-1)

	case "classList":
		return newClassListProxy(e.ctx, n)

	case "getElementsByTagName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return e.ctx.elementArray(nil)
			}
			return e.ctx.elementArray(getElementsByTagName(n, call.Arguments[0].String(), false))
		})
	case "getElementsByClassName":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return e.ctx.elementArray(nil)
			}
			cls := call.Arguments[0].String()
			var result []*html.Node
			for _, child := range n.Children {
				result = append(result, child.GetElementsByClassName(cls)...)
			}
			return e.ctx.elementArray(result)
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		e.node.SetTextContent(val.String())
		return true
	case "className":
		e.node.SetClassAttr(val.String())
		return true
	case "id":
		e.node.ID = val.String()
		return true
	case "nodeValue":
		if e.node.IsText() {
			e.node.Text = val.String()
		}
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}

// appendChildFn moves the argument node under this element and returns it.
func (e *elementAccessor) appendChildFn() func(goja.FunctionCall) goja.Value {
	vm := e.ctx.vm
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': 1 argument required"))
		}
		child := e.ctx.unwrapNode(call.Arguments[0])
		if child == nil {
			panic(vm.NewTypeError("Failed to execute 'appendChild' on 'Node': parameter 1 is not of type 'Node'"))
		}
		if child == e.node || contains(child, e.node) {
			panic(vm.NewGoError(errHierarchy))
		}
		e.node.AddChild(child)
		return call.Arguments[0]
	}
}

// removeChildFn detaches a direct child and returns it.
func (e *elementAccessor) removeChildFn() func(goja.FunctionCall) goja.Value {
	vm := e.ctx.vm
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("Failed to execute 'removeChild' on 'Node': 1 argument required"))
		}
		child := e.ctx.unwrapNode(call.Arguments[0])
		if child == nil || child.Parent != e.node {
			panic(vm.NewGoError(errNotFound))
		}
		e.node.RemoveChild(child)
		return call.Arguments[0]
	}
}

// contains reports whether descendant is inside node's subtree.
func contains(node, descendant *html.Node) bool {
	for p := descendant.Parent; p != nil; p = p.Parent {
		if p == node {
			return true
		}
	}
	return false
}
