package vdom

import (
	"testing"

	"github.com/vnest-dev/vnest/pkg/dom"
)

// countMatches returns the number of descendants of n matching selector.
func countMatches(t *testing.T, n *dom.Node, selector string) int {
	t.Helper()
	all, err := n.QuerySelectorAll(selector)
	if err != nil {
		t.Fatalf("QuerySelectorAll(%q): %v", selector, err)
	}
	return len(all)
}

// newContainer returns a document and a container attached to its body,
// with a recorder observing mutations made after this call.
func newContainer(t *testing.T) (*dom.Document, *dom.Node, *dom.Recorder) {
	t.Helper()
	doc := dom.NewDocument()
	container := doc.CreateElement("div")
	if err := doc.Body().AppendChild(container); err != nil {
		t.Fatal(err)
	}
	rec := &dom.Recorder{}
	doc.Observe(rec.Record)
	return doc, container, rec
}

// plain renders markup sources verbatim.
func plain(s string) string { return s }
