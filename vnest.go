// Package vnest is a minimal UI toolkit. A page is described as a tree of
// elements whose properties are static values or reactive signals, and the
// live document is kept in line with that description.
//
// Usage:
//
//	doc := dom.NewDocument()
//	page := vnest.CreatePage(doc)
//	count := vnest.CreateSignal(0)
//	page.Render(vdom.Button(vdom.OnClick(func(*dom.Event) { count.Update(inc) }),
//	    vdom.Content(vnest.Bind(count))))
//
// Two modes share one property model. CreateElement binds live nodes
// directly to signals. Render diffs the previous tree against the next one
// and touches only what changed.
package vnest

import (
	"github.com/vnest-dev/vnest/pkg/head"
	"github.com/vnest-dev/vnest/pkg/reactive"
	"github.com/vnest-dev/vnest/pkg/style"
	"github.com/vnest-dev/vnest/pkg/vdom"
)

// =============================================================================
// Reactive primitives (re-export from pkg/reactive)
// =============================================================================

// Signal is a reactive value cell.
type Signal[T any] = reactive.Signal[T]

// Value is a property value that is either static or bound to a signal.
type Value = reactive.Value

// CreateSignal creates a signal holding initial.
func CreateSignal[T any](initial T) *Signal[T] {
	return reactive.NewSignal(initial)
}

// Bind wraps a signal as a property value.
func Bind[T any](s *Signal[T]) Value {
	return reactive.Bind(s)
}

// =============================================================================
// Tree description (re-export from pkg/vdom)
// =============================================================================

// VNode describes one element or text node.
type VNode = vdom.VNode

// Props holds element properties.
type Props = vdom.Props

// Style maps CSS property names to values.
type Style = vdom.Style

// =============================================================================
// Styles and head
// =============================================================================

// Decls maps CSS property names to values for rule-level styling.
type Decls = style.Decls

// HeadProps is the metadata accepted by Page.ModifyHead.
type HeadProps = head.Props

// Meta describes one <meta> tag.
type Meta = head.Meta
