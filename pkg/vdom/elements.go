package vdom

import (
	"fmt"
	"sort"
)

// El creates an element VNode.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, string.
// Strings become text children.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue
		case Attr:
			if !v.IsEmpty() {
				node.Props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Props[a.Key] = a.Value
				}
			}
		case Props:
			for k, pv := range v {
				node.Props[k] = pv
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		default:
			panic(fmt.Sprintf("vdom: unsupported argument %T for <%s>", arg, tag))
		}
	}

	return node
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// Range maps items to nodes.
func Range[T any](items []T, fn func(int, T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(i, item); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Common elements.

func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }
func A(args ...any) *VNode       { return El("a", args...) }
func Button(args ...any) *VNode  { return El("button", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Img(args ...any) *VNode     { return El("img", args...) }

// Prop sets an arbitrary property.
func Prop(key string, value any) Attr { return Attr{Key: key, Value: value} }

// ID sets the id attribute.
func ID(id any) Attr { return Prop("id", id) }

// Class sets className. Pass a reactive.Value to bind it.
func Class(class any) Attr { return Prop(PropClassName, class) }

// Styles sets the style map.
func Styles(style Style) Attr { return Prop(PropStyle, style) }

// Content sets the markup source rendered into the element.
func Content(src any) Attr { return Prop(PropTextContent, src) }

// OnClick sets the click handler.
func OnClick(h Handler) Attr { return Prop(PropClickAction, h) }

// Href sets the href attribute.
func Href(url string) Attr { return Prop("href", url) }

// sortedKeys returns map keys in a stable order so attribute order in the
// serialized document does not depend on map iteration.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
