package js

import (
	"errors"

	"github.com/dop251/goja"

	"multicol/pkg/css"
	"multicol/pkg/html"
)

var errNotAChild = errors.New("the node is not a child of this node")

func (ctx *domContext) parseSelectors(method string, call goja.FunctionCall) []css.Selector {
	if len(call.Arguments) == 0 {
		panic(ctx.vm.NewTypeError(method + ": 1 argument required"))
	}
	sels, err := css.ParseSelectorList(call.Argument(0).String())
	if err != nil {
		panic(ctx.vm.NewGoError(err))
	}
	return sels
}

// matchDescendants walks root's descendants in document order. root itself
// never matches.
func matchDescendants(root *html.Node, sels []css.Selector, first bool) []*html.Node {
	var out []*html.Node
	for _, c := range root.Children {
		done := !c.Walk(func(n *html.Node) bool {
			if n.Type == html.ElementNode && matchesAny(n, sels) {
				out = append(out, n)
				return !first
			}
			return true
		})
		if done {
			break
		}
	}
	return out
}

func matchesAny(n *html.Node, sels []css.Selector) bool {
	for _, s := range sels {
		if css.MatchesSelector(n, s) {
			return true
		}
	}
	return false
}

func querySelectorFn(ctx *domContext, root *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		found := matchDescendants(root, ctx.parseSelectors("querySelector", call), true)
		if len(found) == 0 {
			return goja.Null()
		}
		return ctx.elementProxy(found[0])
	}
}

func querySelectorAllFn(ctx *domContext, root *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		return ctx.elementArray(matchDescendants(root, ctx.parseSelectors("querySelectorAll", call), false))
	}
}

func matchesFn(ctx *domContext, node *html.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		return ctx.vm.ToValue(node.Type == html.ElementNode && matchesAny(node, ctx.parseSelectors("matches", call)))
	}
}
