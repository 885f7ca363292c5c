package vdom

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/reactive"
)

// Stats counts the work done by a Reconciler.
type Stats struct {
	Renders  int // Render calls
	Mounts   int // Nodes created (including descendants)
	Appends  int // Positions filled by a new node
	Removes  int // Positions emptied
	Replaces int // Positions replaced because the shape changed
	Writes   int // Property and text writes issued to the host
}

// Reconciler keeps the children of a container in sync with a VNode forest.
// It remembers only the previous forest, and matches children by position.
type Reconciler struct {
	container *dom.Node
	render    markup.Renderer
	logger    *slog.Logger

	previous []*VNode
	mounted  bool

	// listeners tracks the click listener attached to each node.
	listeners map[*dom.Node]dom.ListenerID

	stats Stats
}

// NewReconciler creates a Reconciler rendering into container.
func NewReconciler(container *dom.Node, render markup.Renderer) *Reconciler {
	return &Reconciler{
		container: container,
		render:    markup.Or(render),
		logger:    slog.Default().With("component", "reconciler"),
		listeners: make(map[*dom.Node]dom.ListenerID),
	}
}

// SetLogger replaces the logger.
func (r *Reconciler) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// Container returns the node the forest is rendered into.
func (r *Reconciler) Container() *dom.Node {
	return r.container
}

// Previous returns the forest from the last successful Render.
func (r *Reconciler) Previous() []*VNode {
	return r.previous
}

// Stats returns cumulative counters.
func (r *Reconciler) Stats() Stats {
	return r.stats
}

// Render makes the container's children match next.
// The first call mounts every node; later calls patch against the
// previous forest, which is then replaced by next.
func (r *Reconciler) Render(next ...*VNode) error {
	next = compact(next)
	before := r.stats

	if !r.mounted {
		// Build every root before attaching so a failure leaves the
		// container untouched and the next Render mounts from scratch.
		roots := make([]*dom.Node, 0, len(next))
		for _, v := range next {
			el, err := r.create(v)
			if err != nil {
				for _, built := range roots {
					r.forget(built)
				}
				return err
			}
			roots = append(roots, el)
		}
		for _, el := range roots {
			if err := r.container.AppendChild(el); err != nil {
				return fmt.Errorf("vdom: mount: %w", err)
			}
		}
		r.mounted = true
	} else if err := r.updateChildren(r.container, next, r.previous); err != nil {
		return err
	}

	r.previous = next
	r.stats.Renders++
	r.logger.Debug("render",
		"roots", len(next),
		"mounts", r.stats.Mounts-before.Mounts,
		"replaces", r.stats.Replaces-before.Replaces,
		"removes", r.stats.Removes-before.Removes,
		"writes", r.stats.Writes-before.Writes,
	)
	return nil
}

// updateChildren diffs two child lists of parent position by position.
// Removals run last, from the end, so indexes stay valid.
func (r *Reconciler) updateChildren(parent *dom.Node, next, prev []*VNode) error {
	n := max(len(next), len(prev))
	for i := 0; i < n && i < len(next); i++ {
		var old *VNode
		if i < len(prev) {
			old = prev[i]
		}
		if err := r.updateElement(parent, next[i], old, i); err != nil {
			return err
		}
	}
	for i := len(prev) - 1; i >= len(next); i-- {
		if err := r.updateElement(parent, nil, prev[i], i); err != nil {
			return err
		}
	}
	return nil
}

// updateElement reconciles one position of parent.
func (r *Reconciler) updateElement(parent *dom.Node, next, prev *VNode, index int) error {
	switch {
	case prev == nil:
		el, err := r.create(next)
		if err != nil {
			return err
		}
		if err := parent.AppendChild(el); err != nil {
			return fmt.Errorf("vdom: append at %d: %w", index, err)
		}
		r.stats.Appends++
		return nil

	case next == nil:
		child := parent.ChildAt(index)
		if child == nil {
			return nil
		}
		r.forget(child)
		if err := parent.RemoveChild(child); err != nil {
			return fmt.Errorf("vdom: remove at %d: %w", index, err)
		}
		r.stats.Removes++
		return nil
	}

	child := parent.ChildAt(index)
	if child == nil || !SameShape(next, prev) {
		el, err := r.create(next)
		if err != nil {
			return err
		}
		if child == nil {
			err = parent.AppendChild(el)
		} else {
			r.forget(child)
			err = parent.ReplaceChild(el, child)
		}
		if err != nil {
			return fmt.Errorf("vdom: replace at %d: %w", index, err)
		}
		r.stats.Replaces++
		return nil
	}

	if next.Kind == KindText {
		if next.Text != prev.Text {
			child.SetTextContent(next.Text)
			r.stats.Writes++
		}
		return nil
	}

	r.updateProps(child, next.Props, prev.Props)
	if _, owned := markupSource(next.Props); owned {
		// Markup owns the element's content.
		return nil
	}
	return r.updateChildren(child, compact(next.Children), compact(prev.Children))
}

// updateProps patches the properties of el from prev to next.
// Only className and markup content skip writes when unchanged.
func (r *Reconciler) updateProps(el *dom.Node, next, prev Props) {
	for _, key := range sortedKeys(next) {
		value := reactive.Resolve(next[key])
		switch key {
		case PropTextContent, PropInnerHTML:
			rendered := r.render(dom.Stringify(value))
			if !el.SameInnerHTML(rendered) {
				r.forgetChildren(el)
				el.SetInnerHTML(rendered)
				r.stats.Writes++
			}

		case PropClassName:
			class := dom.Stringify(value)
			if el.ClassName() != class {
				el.SetClassName(class)
				r.stats.Writes++
			}

		case PropClickAction:
			r.detachClick(el)
			r.attachClick(el, value)

		case PropStyle:
			style, _ := asStyle(value)
			for _, prop := range sortedKeys(style) {
				el.Style().Set(prop, dom.Stringify(reactive.Resolve(style[prop])))
				r.stats.Writes++
			}
			if old, ok := prev[PropStyle]; ok {
				oldStyle, _ := asStyle(old)
				for _, prop := range sortedKeys(oldStyle) {
					if _, kept := style[prop]; !kept {
						el.Style().Set(prop, "")
						r.stats.Writes++
					}
				}
			}

		default:
			el.SetAttribute(key, dom.Stringify(value))
			r.stats.Writes++
		}
	}

	for _, key := range sortedKeys(prev) {
		if _, ok := next[key]; ok {
			continue
		}
		switch key {
		case PropTextContent, PropInnerHTML:
			if _, other := markupSource(next); !other {
				r.forgetChildren(el)
				el.SetTextContent("")
			}
		case PropClassName:
			el.SetClassName("")
		case PropClickAction:
			r.detachClick(el)
			continue
		case PropStyle:
			oldStyle, _ := asStyle(prev[key])
			for _, prop := range sortedKeys(oldStyle) {
				el.Style().Set(prop, "")
			}
		default:
			el.RemoveAttribute(key)
		}
		r.stats.Writes++
	}
}

// create builds a live subtree for v. Signal values are read once.
func (r *Reconciler) create(v *VNode) (*dom.Node, error) {
	doc := r.container.Document()
	r.stats.Mounts++

	if v.Kind == KindText {
		return doc.CreateTextNode(v.Text), nil
	}

	if !validTag(v.Tag) {
		return nil, fmt.Errorf("vdom: invalid tag name %q", v.Tag)
	}
	el := doc.CreateElement(v.Tag)
	for _, key := range sortedKeys(v.Props) {
		value := reactive.Resolve(v.Props[key])
		switch key {
		case PropTextContent, PropInnerHTML:
			el.SetInnerHTML(r.render(dom.Stringify(value)))
		case PropClickAction:
			r.attachClick(el, value)
		case PropStyle:
			applyStyle(el, value)
		case PropClassName:
			el.SetClassName(dom.Stringify(value))
		default:
			el.SetAttribute(key, dom.Stringify(value))
		}
	}

	if _, owned := markupSource(v.Props); owned {
		return el, nil
	}
	for _, c := range compact(v.Children) {
		child, err := r.create(c)
		if err != nil {
			return nil, err
		}
		if err := el.AppendChild(child); err != nil {
			return nil, fmt.Errorf("vdom: create <%s>: %w", v.Tag, err)
		}
	}
	return el, nil
}

func (r *Reconciler) attachClick(el *dom.Node, value any) {
	if h := asHandler(value); h != nil {
		r.listeners[el] = el.AddEventListener("click", h)
	}
}

func (r *Reconciler) detachClick(el *dom.Node) {
	if id, ok := r.listeners[el]; ok {
		el.RemoveEventListener("click", id)
		delete(r.listeners, el)
	}
}

// forget drops listener bookkeeping for a subtree leaving the document.
func (r *Reconciler) forget(n *dom.Node) {
	delete(r.listeners, n)
	for _, c := range n.ChildNodes() {
		r.forget(c)
	}
}

func (r *Reconciler) forgetChildren(n *dom.Node) {
	for _, c := range n.ChildNodes() {
		r.forget(c)
	}
}

// validTag rejects names a browser's createElement would throw on.
func validTag(tag string) bool {
	if tag == "" || strings.ContainsAny(tag, " \t\n\f\r/<>\"'=") {
		return false
	}
	c := tag[0]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// compact drops nil entries so positions line up with live children.
func compact(nodes []*VNode) []*VNode {
	for _, n := range nodes {
		if n == nil {
			out := make([]*VNode, 0, len(nodes))
			for _, n := range nodes {
				if n != nil {
					out = append(out, n)
				}
			}
			return out
		}
	}
	return nodes
}
