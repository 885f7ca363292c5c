// Package vtest provides testing helpers for vnest pages.
//
// # Render Assertions
//
// Assert on the HTML a tree reconciles to:
//
//	vtest.ExpectContains(t, Card("hi"), "<p>hi</p>")
//	vtest.ExpectElement(t, Card("hi"), "button")
//	vtest.ExpectAttribute(t, Card("hi"), "class", "card")
//
// # Mutation Assertions
//
// Watch a document and count what a change touched:
//
//	w := vtest.Watch(doc)
//	defer w.Stop()
//	page.Render(next)
//	w.ExpectCount(t, dom.MutationReplace, 0)
package vtest
