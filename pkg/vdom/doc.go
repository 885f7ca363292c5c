// Package vdom describes pages as trees of VNodes and keeps a live
// dom.Document in sync with them.
//
// Two strategies share the same property model:
//
//   - Reactive mode: Materializer.CreateElement builds live nodes once and
//     binds signal-valued properties directly, so later signal changes
//     update the node without re-rendering.
//   - Tree-diff mode: Reconciler.Render diffs the new VNode forest against
//     the previous one and applies the changes position by position.
//
// # Properties
//
// Props keys have fixed meanings:
//
//	className    class attribute
//	style        Style, CSS property -> value
//	clickAction  click handler (Handler or func(*dom.Event) or func())
//	textContent  markup source rendered to HTML (innerHTML is an alias)
//	anything     stringified HTML attribute
//
// Any value may be a reactive.Value. In reactive mode signal values stay
// live; in tree-diff mode they are read once per render.
//
// # Element API
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Content("Some *markdown*")),
//	    OnClick(handler),
//	)
//
// # Limitations
//
// Children are matched by position only. Moving a child to another index
// is seen as a change at both positions, never as a move.
package vdom
