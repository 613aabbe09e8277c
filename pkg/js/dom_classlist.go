package js

import (
	"strconv"

	"github.com/dop251/goja"

	"tessera/pkg/html"
)

// newClassListProxy creates a JS DynamicObject implementing the DOMTokenList
// interface for element.classList.
func newClassListProxy(ctx *domContext, node *html.Node) goja.Value {
	return ctx.vm.NewDynamicObject(&classListAccessor{ctx: ctx, node: node})
}

type classListAccessor struct {
	ctx  *domContext
	node *html.Node
}

func (cl *classListAccessor) Get(key string) goja.Value {
	vm := cl.ctx.vm
	n := cl.node

	switch key {
	case "length":
		return vm.ToValue(len(n.Classes))
	case "value":
		return vm.ToValue(n.ClassAttr())
	case "add":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			for _, arg := range call.Arguments {
				n.AddClass(arg.String())
			}
			return goja.Undefined()
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			for _, arg := range call.Arguments {
				n.RemoveClass(arg.String())
			}
			return goja.Undefined()
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			return vm.ToValue(n.HasClass(call.Arguments[0].String()))
		})
	case "toggle":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				panic(vm.NewTypeError("Failed to execute 'toggle': 1 argument required"))
			}
			token := call.Arguments[0].String()

			// Optional force parameter
			add := !n.HasClass(token)
			if len(call.Arguments) > 1 {
				add = call.Arguments[1].ToBoolean()
			}
			if add {
				n.AddClass(token)
			} else {
				n.RemoveClass(token)
			}
			return vm.ToValue(add)
		})
	case "item":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			i := int(call.Arguments[0].ToInteger())
			if i < 0 || i >= len(n.Classes) {
				return goja.Null()
			}
			return vm.ToValue(n.Classes[i])
		})
	case "toString":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(n.ClassAttr())
		})
	}

	// Numeric index access: classList[0]
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(n.Classes) {
		return vm.ToValue(n.Classes[idx])
	}
	return goja.Undefined()
}

func (cl *classListAccessor) Set(key string, val goja.Value) bool {
	if key == "value" {
		cl.node.SetClassAttr(val.String())
		return true
	}
	return false
}

func (cl *classListAccessor) Has(key string) bool {
	switch key {
	case "length", "value", "add", "remove", "contains", "toggle", "item", "toString":
		return true
	}
	idx, err := strconv.Atoi(key)
	return err == nil && idx >= 0 && idx < len(cl.node.Classes)
}

func (cl *classListAccessor) Delete(key string) bool {
	return false
}

func (cl *classListAccessor) Keys() []string {
	keys := make([]string, len(cl.node.Classes))
	for i := range cl.node.Classes {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}
