package vdom

import (
	"log/slog"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/reactive"
)

// Materializer builds live nodes whose signal-valued properties stay bound.
// Each CreateElement call produces a new node; identity across calls is the
// caller's concern.
type Materializer struct {
	doc    *dom.Document
	render markup.Renderer
	logger *slog.Logger

	// disposers release every binding made by this materializer.
	disposers []func()
}

// NewMaterializer creates a Materializer for doc. A nil render uses markdown.
func NewMaterializer(doc *dom.Document, render markup.Renderer) *Materializer {
	return &Materializer{
		doc:    doc,
		render: markup.Or(render),
		logger: slog.Default().With("component", "materializer"),
	}
}

// SetLogger replaces the logger.
func (m *Materializer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// CreateElement builds one live element with props and children.
// Children can be string, *dom.Node, *VNode or []*VNode.
func (m *Materializer) CreateElement(tag string, props Props, children ...any) *dom.Node {
	el := m.doc.CreateElement(tag)

	for _, key := range sortedKeys(props) {
		m.applyProp(el, key, props[key])
	}

	for _, child := range children {
		switch c := child.(type) {
		case nil:
			continue
		case string:
			m.append(el, m.doc.CreateTextNode(c))
		case *dom.Node:
			m.append(el, c)
		case *VNode:
			if c != nil {
				m.append(el, m.Materialize(c))
			}
		case []*VNode:
			for _, v := range c {
				if v != nil {
					m.append(el, m.Materialize(v))
				}
			}
		default:
			m.append(el, m.doc.CreateTextNode(dom.Stringify(c)))
		}
	}

	return el
}

// Materialize builds the live node for a VNode, binding signal values.
func (m *Materializer) Materialize(v *VNode) *dom.Node {
	if v.Kind == KindText {
		return m.doc.CreateTextNode(v.Text)
	}
	children := make([]any, len(v.Children))
	for i, c := range v.Children {
		children[i] = c
	}
	return m.CreateElement(v.Tag, v.Props, children...)
}

func (m *Materializer) append(el, child *dom.Node) {
	if err := el.AppendChild(child); err != nil {
		m.logger.Warn("append child", "parent", el, "child", child, "error", err)
	}
}

// applyProp applies one property, binding it if it is signal-valued.
func (m *Materializer) applyProp(el *dom.Node, key string, value any) {
	v, isValue := value.(reactive.Value)
	live := isValue && v.IsSignal()

	switch key {
	case PropTextContent, PropInnerHTML:
		if live {
			m.keep(bindMarkup(el, v, m.render))
			return
		}
		el.SetInnerHTML(m.render(dom.Stringify(reactive.Resolve(value))))

	case PropStyle:
		if live {
			// The whole map is live: reapply it on every change.
			applyStyle(el, v.Current())
			m.keep(v.Watch(func(x any) { applyStyle(el, x) }))
			return
		}
		style, _ := asStyle(value)
		for _, prop := range sortedKeys(style) {
			sv, ok := style[prop].(reactive.Value)
			if ok && sv.IsSignal() {
				m.keep(bindStyleProp(el, prop, sv))
				continue
			}
			el.Style().Set(prop, dom.Stringify(reactive.Resolve(style[prop])))
		}

	case PropClickAction:
		// No removal path in this mode.
		if h := asHandler(value); h != nil {
			el.AddEventListener("click", h)
		}

	default:
		if live {
			el.SetProperty(key, v.Current())
			m.keep(v.Watch(func(x any) { el.SetProperty(key, x) }))
			return
		}
		if key == PropClassName {
			el.SetClassName(dom.Stringify(value))
			return
		}
		el.SetAttribute(key, dom.Stringify(reactive.Resolve(value)))
	}
}

func (m *Materializer) keep(dispose func()) {
	m.disposers = append(m.disposers, dispose)
}

// Bindings returns the number of live bindings held.
func (m *Materializer) Bindings() int {
	return len(m.disposers)
}

// Dispose releases every binding made so far. Nodes keep their last values.
func (m *Materializer) Dispose() {
	for _, d := range m.disposers {
		d()
	}
	m.disposers = nil
}

func bindStyleProp(el *dom.Node, prop string, v reactive.Value) func() {
	el.Style().Set(prop, dom.Stringify(v.Current()))
	return v.Watch(func(x any) {
		el.Style().Set(prop, dom.Stringify(x))
	})
}

func applyStyle(el *dom.Node, value any) {
	style, _ := asStyle(value)
	for _, prop := range sortedKeys(style) {
		el.Style().Set(prop, dom.Stringify(reactive.Resolve(style[prop])))
	}
}
