package vtest

import (
	"testing"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/vdom"
)

func card(text string) *vdom.VNode {
	return vdom.Div(vdom.Class("card"),
		vdom.P(vdom.Text(text)),
		vdom.Button(vdom.ID("ok"), vdom.Text("OK")),
	)
}

func TestRenderToString(t *testing.T) {
	got := RenderToString(card("hi"))
	want := `<div class="card"><p>hi</p><button id="ok">OK</button></div>`
	if got != want {
		t.Errorf("RenderToString() = %q, want %q", got, want)
	}
}

func TestExpectHelpers(t *testing.T) {
	node := card("hello")

	ExpectContains(t, node, "<p>hello</p>")
	ExpectNotContains(t, node, "goodbye")
	ExpectElement(t, node, "button")
	ExpectAttribute(t, node, "class", "card")
}

func TestWatcher(t *testing.T) {
	doc := dom.NewDocument()
	container := doc.CreateElement("div")
	_ = doc.Body().AppendChild(container)
	r := vdom.NewReconciler(container, nil)

	w := Watch(doc)
	if err := r.Render(card("a")); err != nil {
		t.Fatal(err)
	}
	w.ExpectCount(t, dom.MutationAppend, 1)

	w.Reset()
	if err := r.Render(card("b")); err != nil {
		t.Fatal(err)
	}
	w.ExpectNoStructural(t)
	w.ExpectCount(t, dom.MutationSetText, 1)

	w.Stop()
	if err := r.Render(card("c")); err != nil {
		t.Fatal(err)
	}
	w.ExpectCount(t, dom.MutationSetText, 1)
}
