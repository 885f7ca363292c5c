package vdom

import (
	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/reactive"
)

// BindText writes the signal's current value as the node's text content
// and rewrites it on every change. The returned function releases the
// subscription; until it is called the signal keeps node reachable.
func BindText[T any](node *dom.Node, s *reactive.Signal[T]) (unsubscribe func()) {
	return bindText(node, reactive.Bind(s))
}

// BindMarkdown is BindText, but every value is rendered through render and
// written as parsed HTML. Output is not sanitized.
func BindMarkdown[T any](node *dom.Node, s *reactive.Signal[T], render markup.Renderer) (unsubscribe func()) {
	return bindMarkup(node, reactive.Bind(s), markup.Or(render))
}

func bindText(node *dom.Node, v reactive.Value) func() {
	node.SetTextContent(dom.Stringify(v.Current()))
	return v.Watch(func(x any) {
		node.SetTextContent(dom.Stringify(x))
	})
}

func bindMarkup(node *dom.Node, v reactive.Value, render markup.Renderer) func() {
	node.SetInnerHTML(render(dom.Stringify(v.Current())))
	return v.Watch(func(x any) {
		node.SetInnerHTML(render(dom.Stringify(x)))
	})
}
