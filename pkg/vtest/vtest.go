package vtest

import (
	"strings"
	"testing"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/vdom"
)

// RenderToString reconciles nodes into a fresh container and returns the
// container's inner HTML. Content props pass through unrendered.
func RenderToString(nodes ...*vdom.VNode) string {
	doc := dom.NewDocument()
	container := doc.CreateElement("div")
	_ = doc.Body().AppendChild(container)

	r := vdom.NewReconciler(container, markup.Plain)
	if err := r.Render(nodes...); err != nil {
		return ""
	}
	return container.InnerHTML()
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// Watcher records the mutations of one document.
type Watcher struct {
	dom.Recorder
	stop func()
}

// Watch starts recording doc's mutations.
func Watch(doc *dom.Document) *Watcher {
	w := &Watcher{}
	w.stop = doc.Observe(w.Record)
	return w
}

// Stop ends the recording. Recorded mutations stay available.
func (w *Watcher) Stop() {
	w.stop()
}

// ExpectCount asserts the number of recorded mutations with op.
func (w *Watcher) ExpectCount(t *testing.T, op dom.MutationOp, want int) {
	t.Helper()
	if got := w.Count(op); got != want {
		t.Errorf("expected %d %s mutations, got %d", want, op, got)
	}
}

// ExpectNoStructural asserts that no node was added, removed or replaced.
func (w *Watcher) ExpectNoStructural(t *testing.T) {
	t.Helper()
	if n := w.Structural(); n != 0 {
		t.Errorf("expected no structural mutations, got %d", n)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
