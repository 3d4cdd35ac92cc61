package js

import (
	"strings"
	"unicode"

	"github.com/dop251/goja"

	"multicol/pkg/html"
)

// domContext holds the bindings for one document. The proxy cache keeps
// element identity stable so `a === b` works for the same node.
type domContext struct {
	vm    *goja.Runtime
	doc   *html.Document
	cache map[*html.Node]goja.Value
}

func registerDocument(vm *goja.Runtime, doc *html.Document) *domContext {
	ctx := &domContext{vm: vm, doc: doc, cache: make(map[*html.Node]goja.Value)}

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		return ctx.nodeOrNull(doc.GetElementByID(call.Argument(0).String()))
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		return ctx.elementArray(elementsByTagName(doc.Root, strings.ToLower(call.Argument(0).String())))
	})
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("createElement: 1 argument required"))
		}
		return ctx.elementProxy(html.NewElement(call.Argument(0).String()))
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		return ctx.elementProxy(html.NewText(call.Argument(0).String()))
	})
	docObj.Set("querySelector", querySelectorFn(ctx, doc.Root))
	docObj.Set("querySelectorAll", querySelectorAllFn(ctx, doc.Root))
	docObj.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return ctx.elementProxy(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	vm.Set("document", docObj)
	return ctx
}

func elementsByTagName(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for _, c := range root.Children {
		c.Walk(func(n *html.Node) bool {
			if n.Type == html.ElementNode && (tag == "*" || n.TagName == tag) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

func (ctx *domContext) nodeOrNull(n *html.Node) goja.Value {
	if n == nil {
		return goja.Null()
	}
	return ctx.elementProxy(n)
}

func (ctx *domContext) elementArray(nodes []*html.Node) goja.Value {
	vals := make([]interface{}, len(nodes))
	for i, n := range nodes {
		vals[i] = ctx.elementProxy(n)
	}
	return ctx.vm.NewArray(vals...)
}

func (ctx *domContext) elementProxy(node *html.Node) goja.Value {
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

// unwrapNode maps a proxy back to its node. Values that did not come from
// this context yield nil.
func (ctx *domContext) unwrapNode(val goja.Value) *html.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	for node, cached := range ctx.cache {
		if cached.SameAs(val) {
			return node
		}
	}
	return nil
}

func (ctx *domContext) mustUnwrap(method string, val goja.Value) *html.Node {
	n := ctx.unwrapNode(val)
	if n == nil {
		panic(ctx.vm.NewTypeError(method + ": parameter is not of type 'Node'"))
	}
	return n
}

type elementAccessor struct {
	ctx  *domContext
	node *html.Node
}

var elementKeys = []string{
	"nodeType", "nodeName", "tagName", "id", "className", "textContent",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"children", "childNodes", "firstChild", "parentNode", "style", "classList",
	"appendChild", "removeChild", "insertBefore", "remove",
	"querySelector", "querySelectorAll", "matches",
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	n := e.node
	switch key {
	case "nodeType":
		if n.Type == html.TextNode {
			return vm.ToValue(3)
		}
		return vm.ToValue(1)
	case "nodeName", "tagName":
		if n.Type == html.TextNode {
			if key == "tagName" {
				return goja.Undefined()
			}
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "id":
		v, _ := n.GetAttribute("id")
		return vm.ToValue(v)
	case "className":
		v, _ := n.GetAttribute("class")
		return vm.ToValue(v)
	case "textContent":
		return vm.ToValue(n.TextContent())
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			v, ok := n.GetAttribute(call.Argument(0).String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(v)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			n.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			_, ok := n.GetAttribute(call.Argument(0).String())
			return vm.ToValue(ok)
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			delete(n.Attributes, call.Argument(0).String())
			return goja.Undefined()
		})
	case "children":
		var els []*html.Node
		for _, c := range n.Children {
			if c.Type == html.ElementNode {
				els = append(els, c)
			}
		}
		return e.ctx.elementArray(els)
	case "childNodes":
		return e.ctx.elementArray(n.Children)
	case "firstChild":
		if len(n.Children) == 0 {
			return goja.Null()
		}
		return e.ctx.elementProxy(n.Children[0])
	case "parentNode":
		if n.Parent == nil || n.Parent.Type == html.DocumentNode {
			return goja.Null()
		}
		return e.ctx.elementProxy(n.Parent)
	case "style":
		return vm.NewDynamicObject(&styleAccessor{vm: vm, node: n})
	case "classList":
		return vm.NewDynamicObject(&classListAccessor{vm: vm, node: n})
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			n.AddChild(e.ctx.mustUnwrap("appendChild", call.Argument(0)))
			return call.Argument(0)
		})
	case "removeChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.ctx.mustUnwrap("removeChild", call.Argument(0))
			if n.RemoveChild(child) == nil {
				panic(vm.NewGoError(errNotAChild))
			}
			return call.Argument(0)
		})
	case "insertBefore":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := e.ctx.mustUnwrap("insertBefore", call.Argument(0))
			ref := e.ctx.unwrapNode(call.Argument(1))
			if n.InsertBefore(child, ref) == nil {
				panic(vm.NewGoError(errNotAChild))
			}
			return call.Argument(0)
		})
	case "remove":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
			return goja.Undefined()
		})
	case "querySelector":
		return vm.ToValue(querySelectorFn(e.ctx, n))
	case "querySelectorAll":
		return vm.ToValue(querySelectorAllFn(e.ctx, n))
	case "matches":
		return vm.ToValue(matchesFn(e.ctx, n))
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		e.node.SetTextContent(val.String())
	case "className":
		e.node.SetAttribute("class", val.String())
	case "id":
		e.node.SetAttribute("id", val.String())
	default:
		return false
	}
	return true
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(string) bool { return false }

func (e *elementAccessor) Keys() []string { return elementKeys }

// styleAccessor maps camelCase property access onto the style attribute.
// Declarations keep their source order.
type styleAccessor struct {
	vm   *goja.Runtime
	node *html.Node
}

type declaration struct{ property, value string }

func (s *styleAccessor) Get(key string) goja.Value {
	prop := camelToKebab(key)
	for _, d := range s.declarations() {
		if d.property == prop {
			return s.vm.ToValue(d.value)
		}
	}
	return s.vm.ToValue("")
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	prop, value := camelToKebab(key), val.String()
	decls := s.declarations()
	for i := range decls {
		if decls[i].property == prop {
			decls[i].value = value
			s.store(decls)
			return true
		}
	}
	s.store(append(decls, declaration{prop, value}))
	return true
}

func (s *styleAccessor) Has(string) bool { return true }

func (s *styleAccessor) Delete(key string) bool {
	prop := camelToKebab(key)
	decls := s.declarations()
	kept := decls[:0]
	for _, d := range decls {
		if d.property != prop {
			kept = append(kept, d)
		}
	}
	s.store(kept)
	return true
}

func (s *styleAccessor) Keys() []string {
	var keys []string
	for _, d := range s.declarations() {
		keys = append(keys, d.property)
	}
	return keys
}

func (s *styleAccessor) declarations() []declaration {
	attr, _ := s.node.GetAttribute("style")
	var out []declaration
	for _, part := range strings.Split(attr, ";") {
		idx := strings.IndexByte(part, ':')
		if idx < 0 {
			continue
		}
		out = append(out, declaration{
			property: strings.TrimSpace(part[:idx]),
			value:    strings.TrimSpace(part[idx+1:]),
		})
	}
	return out
}

func (s *styleAccessor) store(decls []declaration) {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		if d.value != "" {
			parts = append(parts, d.property+": "+d.value)
		}
	}
	s.node.SetAttribute("style", strings.Join(parts, "; "))
}

// camelToKebab turns columnCount into column-count. Names that are already
// kebab-case pass through.
func camelToKebab(s string) string {
	if s == "cssFloat" {
		return "float"
	}
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
