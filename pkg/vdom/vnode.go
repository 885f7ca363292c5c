package vdom

import (
	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/reactive"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Recognized property keys.
const (
	PropClassName   = "className"
	PropStyle       = "style"
	PropClickAction = "clickAction"
	PropTextContent = "textContent"
	PropInnerHTML   = "innerHTML"
)

// VNode describes one element or text node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Properties, see package docs
	Children []*VNode // Child nodes, matched by position
	Text     string   // For KindText
}

// Props maps property keys to literals or reactive.Values.
type Props map[string]any

// Style maps CSS property names to literals or reactive.Values.
type Style map[string]any

// Handler handles a dispatched event.
type Handler func(*dom.Event)

// Attr represents a single property.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// SameShape reports whether a and b would occupy a position with the same
// live node: both text, or both elements with the same tag.
func SameShape(a, b *VNode) bool {
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	return a.Kind == KindText || a.Tag == b.Tag
}

// markupSource returns the textContent/innerHTML source of props and
// whether one is present.
func markupSource(props Props) (any, bool) {
	if v, ok := props[PropTextContent]; ok {
		return v, true
	}
	v, ok := props[PropInnerHTML]
	return v, ok
}

// asStyle converts supported style shapes to Style.
func asStyle(v any) (Style, bool) {
	switch s := reactive.Resolve(v).(type) {
	case Style:
		return s, true
	case map[string]any:
		return Style(s), true
	case map[string]string:
		out := make(Style, len(s))
		for k, v := range s {
			out[k] = v
		}
		return out, true
	case nil:
		return nil, true
	}
	return nil, false
}

// asHandler converts supported handler shapes to Handler.
func asHandler(v any) Handler {
	switch h := reactive.Resolve(v).(type) {
	case Handler:
		return h
	case func(*dom.Event):
		return h
	case func():
		return func(*dom.Event) { h() }
	}
	return nil
}
