package js

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"multicol/pkg/html"
)

// classListAccessor implements the DOMTokenList subset scripts use to
// toggle spanners and break classes.
type classListAccessor struct {
	vm   *goja.Runtime
	node *html.Node
}

func (cl *classListAccessor) tokens() []string {
	attr, _ := cl.node.GetAttribute("class")
	return strings.Fields(attr)
}

func (cl *classListAccessor) setTokens(tokens []string) {
	cl.node.SetAttribute("class", strings.Join(tokens, " "))
}

func (cl *classListAccessor) Get(key string) goja.Value {
	vm := cl.vm
	tokens := cl.tokens()
	switch key {
	case "length":
		return vm.ToValue(len(tokens))
	case "value":
		return vm.ToValue(strings.Join(tokens, " "))
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(indexOf(cl.tokens(), call.Argument(0).String()) >= 0)
		})
	case "add":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			ts := cl.tokens()
			for _, arg := range call.Arguments {
				if indexOf(ts, arg.String()) < 0 {
					ts = append(ts, arg.String())
				}
			}
			cl.setTokens(ts)
			return goja.Undefined()
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			ts := cl.tokens()
			for _, arg := range call.Arguments {
				if i := indexOf(ts, arg.String()); i >= 0 {
					ts = append(ts[:i], ts[i+1:]...)
				}
			}
			cl.setTokens(ts)
			return goja.Undefined()
		})
	case "toggle":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			token := call.Argument(0).String()
			ts := cl.tokens()
			i := indexOf(ts, token)
			want := i < 0
			if len(call.Arguments) > 1 {
				want = call.Argument(1).ToBoolean()
			}
			switch {
			case want && i < 0:
				ts = append(ts, token)
			case !want && i >= 0:
				ts = append(ts[:i], ts[i+1:]...)
			}
			cl.setTokens(ts)
			return vm.ToValue(want)
		})
	}
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(tokens) {
		return vm.ToValue(tokens[idx])
	}
	return goja.Undefined()
}

func (cl *classListAccessor) Set(key string, val goja.Value) bool {
	if key != "value" {
		return false
	}
	cl.node.SetAttribute("class", val.String())
	return true
}

func (cl *classListAccessor) Has(key string) bool {
	switch key {
	case "length", "value", "contains", "add", "remove", "toggle":
		return true
	}
	idx, err := strconv.Atoi(key)
	return err == nil && idx >= 0 && idx < len(cl.tokens())
}

func (cl *classListAccessor) Delete(string) bool { return false }

func (cl *classListAccessor) Keys() []string {
	return []string{"length", "value", "contains", "add", "remove", "toggle"}
}

func indexOf(tokens []string, token string) int {
	for i, t := range tokens {
		if t == token {
			return i
		}
	}
	return -1
}
