package dom

import (
	"errors"
	"strings"
	"testing"
)

func TestNewDocumentShape(t *testing.T) {
	doc := NewDocument()

	if doc.DocumentElement() == nil || doc.DocumentElement().TagName() != "html" {
		t.Fatal("expected <html> document element")
	}
	if doc.Head() == nil {
		t.Error("expected <head>")
	}
	if doc.Body() == nil {
		t.Error("expected <body>")
	}
	if !strings.HasPrefix(doc.String(), "<!DOCTYPE html>") {
		t.Errorf("expected doctype, got %q", doc.String())
	}
}

func TestNodeIdentityIsStable(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("DIV")
	if err := doc.Body().AppendChild(div); err != nil {
		t.Fatal(err)
	}

	if div.TagName() != "div" {
		t.Errorf("expected lowercase tag, got %q", div.TagName())
	}
	if doc.Body().ChildAt(0) != div {
		t.Error("expected the same *Node for the same element")
	}
	if div.Parent() != doc.Body() {
		t.Error("expected body as parent")
	}
}

func TestChildOperations(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("ul")
	a, b, c := doc.CreateElement("li"), doc.CreateElement("li"), doc.CreateElement("li")

	_ = parent.AppendChild(a)
	_ = parent.AppendChild(c)
	if err := parent.InsertBefore(b, c); err != nil {
		t.Fatal(err)
	}
	if parent.ChildCount() != 3 || parent.ChildAt(1) != b {
		t.Fatalf("expected b at index 1, got %v", parent.ChildNodes())
	}
	if b.Index() != 1 {
		t.Errorf("expected index 1, got %d", b.Index())
	}

	span := doc.CreateElement("span")
	if err := parent.ReplaceChild(span, b); err != nil {
		t.Fatal(err)
	}
	if parent.ChildAt(1) != span || b.Parent() != nil {
		t.Error("expected span to replace b")
	}

	if err := parent.RemoveChild(a); err != nil {
		t.Fatal(err)
	}
	if parent.ChildCount() != 2 {
		t.Errorf("expected 2 children, got %d", parent.ChildCount())
	}

	if err := parent.RemoveChild(a); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := span.AppendChild(parent); !errors.Is(err, ErrHierarchy) {
		t.Errorf("expected ErrHierarchy, got %v", err)
	}
	if err := doc.CreateTextNode("x").AppendChild(span); !errors.Is(err, ErrHierarchy) {
		t.Errorf("expected ErrHierarchy for text parent, got %v", err)
	}
}

func TestAppendMovesNode(t *testing.T) {
	doc := NewDocument()
	first, second := doc.CreateElement("div"), doc.CreateElement("div")
	child := doc.CreateElement("p")

	_ = first.AppendChild(child)
	_ = second.AppendChild(child)

	if first.ChildCount() != 0 || second.ChildAt(0) != child {
		t.Error("expected child to move to second parent")
	}
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("a")

	el.SetAttribute("href", "/x")
	if v, ok := el.GetAttribute("href"); !ok || v != "/x" {
		t.Errorf("expected /x, got %q %v", v, ok)
	}
	el.SetAttribute("href", "/y")
	if el.Attribute("href") != "/y" || len(el.Attributes()) != 1 {
		t.Error("expected attribute overwrite, not duplicate")
	}
	el.RemoveAttribute("href")
	if el.HasAttribute("href") {
		t.Error("expected attribute removed")
	}
}

func TestTextAndHTML(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	el.SetTextContent("<b>not bold</b>")
	if el.InnerHTML() != "&lt;b&gt;not bold&lt;/b&gt;" {
		t.Errorf("expected escaped text, got %q", el.InnerHTML())
	}

	el.SetInnerHTML("<p>hi <em>there</em></p>\n")
	if el.TextContent() != "hi there\n" {
		t.Errorf("unexpected text content %q", el.TextContent())
	}
	if !el.SameInnerHTML("<p>hi <em>there</em></p>\n") {
		t.Error("expected same markup to compare equal")
	}
	if el.SameInnerHTML("<p>bye</p>") {
		t.Error("expected different markup to compare unequal")
	}
}

func TestSetProperty(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("input")

	tests := []struct {
		key   string
		value any
		attr  string
		want  string
		isSet bool
	}{
		{"className", "btn", "class", "btn", true},
		{"value", 42, "value", "42", true},
		{"disabled", true, "disabled", "", true},
		{"disabled", false, "disabled", "", false},
		{"data-x", 1.5, "data-x", "1.5", true},
		{"htmlFor", "name", "for", "name", true},
	}

	for _, tt := range tests {
		el.SetProperty(tt.key, tt.value)
		got, ok := el.GetAttribute(tt.attr)
		if ok != tt.isSet || got != tt.want {
			t.Errorf("SetProperty(%q, %v): attr %q = %q (%v), want %q (%v)", tt.key, tt.value, tt.attr, got, ok, tt.want, tt.isSet)
		}
	}

	el.SetProperty("textContent", "ignored by input but stored")
	if el.Property("textContent") != "ignored by input but stored" {
		t.Errorf("unexpected textContent %q", el.Property("textContent"))
	}
}

func TestTitle(t *testing.T) {
	doc := NewDocument()
	doc.SetTitle("Home")
	doc.SetTitle("About")

	if doc.Title() != "About" {
		t.Errorf("expected About, got %q", doc.Title())
	}
	titles, _ := doc.Head().QuerySelectorAll("title")
	if len(titles) != 1 {
		t.Errorf("expected one <title>, got %d", len(titles))
	}
}

func TestGetElementByIDAndQuery(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("section")
	el.SetAttribute("id", "main")
	el.SetClassName("card wide")

	if doc.GetElementByID("main") != nil {
		t.Error("detached elements should not be found")
	}
	_ = doc.Body().AppendChild(el)
	if doc.GetElementByID("main") != el {
		t.Error("expected connected element to be found")
	}
	if doc.GetElementByID("missing") != nil {
		t.Error("expected nil for unknown id")
	}

	found, err := doc.QuerySelector("section.card")
	if err != nil || found != el {
		t.Errorf("QuerySelector: got %v, %v", found, err)
	}
	if _, err := doc.QuerySelector("[[["); !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("expected ErrInvalidSelector, got %v", err)
	}
}

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html><head><style>.a { color: red; }</style></head><body><p id="x">hi</p></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.GetElementByID("x").TextContent() != "hi" {
		t.Error("expected parsed body content")
	}
	sheets := doc.StyleSheets()
	if len(sheets) != 1 || sheets[0].Len() != 1 {
		t.Fatalf("expected one sheet with one rule, got %d sheets", len(sheets))
	}
	if sheets[0].Rule(0).Style().Get("color") != "red" {
		t.Errorf("expected color red, got %q", sheets[0].Rule(0).Style().Get("color"))
	}
}

func TestEvents(t *testing.T) {
	doc := NewDocument()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("button")
	_ = outer.AppendChild(inner)

	var order []string
	id := inner.AddEventListener("click", func(e *Event) {
		order = append(order, "inner")
		if e.Target != inner {
			t.Error("expected target to be inner")
		}
	})
	outer.AddEventListener("click", func(e *Event) {
		order = append(order, "outer")
		if e.CurrentTarget != outer {
			t.Error("expected current target to be outer")
		}
	})

	if n := inner.Click(); n != 2 {
		t.Errorf("expected 2 listener calls, got %d", n)
	}
	if strings.Join(order, ",") != "inner,outer" {
		t.Errorf("expected bubbling order, got %v", order)
	}

	inner.RemoveEventListener("click", id)
	inner.RemoveEventListener("click", id)
	if inner.ListenerCount("click") != 0 {
		t.Error("expected listener removed")
	}

	inner.AddEventListener("click", func(e *Event) { e.StopPropagation() })
	order = nil
	inner.Click()
	if len(order) != 0 {
		t.Errorf("expected propagation stopped, got %v", order)
	}
}

func TestObserve(t *testing.T) {
	doc := NewDocument()
	rec := &Recorder{}
	stop := doc.Observe(rec.Record)

	el := doc.CreateElement("div")
	_ = doc.Body().AppendChild(el)
	el.SetAttribute("id", "a")
	el.SetAttribute("id", "a")
	el.SetTextContent("x")
	el.Style().Set("color", "red")

	if rec.Count(MutationAppend) != 1 {
		t.Errorf("expected 1 append, got %d", rec.Count(MutationAppend))
	}
	if rec.Count(MutationSetAttr) != 2 {
		t.Errorf("expected every attribute write recorded, got %d", rec.Count(MutationSetAttr))
	}
	if rec.Count(MutationSetText) != 1 || rec.Count(MutationSetStyle) != 1 {
		t.Error("expected text and style mutations")
	}
	if rec.Structural() != 1 {
		t.Errorf("expected 1 structural mutation, got %d", rec.Structural())
	}

	detached := doc.CreateElement("p")
	detached.SetAttribute("id", "x")
	if rec.Count(MutationSetAttr) != 2 {
		t.Error("expected detached mutations to be unobservable")
	}

	stop()
	el.SetAttribute("id", "b")
	if rec.Count(MutationSetAttr) != 2 {
		t.Error("expected no mutations after stop")
	}
}

func TestMutationOpString(t *testing.T) {
	if MutationReplace.String() != "Replace" || MutationOp(0xFF).String() != "Unknown" {
		t.Error("unexpected MutationOp strings")
	}
}

func TestRemovedNodesReleaseWrappers(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()
	base := len(doc.nodes)

	for i := 0; i < 1000; i++ {
		div := doc.CreateElement("div")
		_ = div.AppendChild(doc.CreateTextNode("x"))
		if err := body.AppendChild(div); err != nil {
			t.Fatal(err)
		}
		_ = div.ChildAt(0)
		if err := body.RemoveChild(div); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(doc.nodes); got != base {
		t.Errorf("append/remove loop left %d wrappers, want %d", got, base)
	}

	old := doc.CreateElement("p")
	_ = body.AppendChild(old)
	_ = body.ReplaceChild(doc.CreateElement("span"), old)
	body.SetInnerHTML("<p><em>a</em></p>")
	_, _ = body.QuerySelectorAll("em")
	body.SetTextContent("")
	if got := len(doc.nodes); got != base {
		t.Errorf("replace and innerHTML left %d wrappers, want %d", got, base)
	}
}

func TestReattachKeepsIdentityAndListeners(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()

	div := doc.CreateElement("div")
	btn := doc.CreateElement("button")
	_ = div.AppendChild(btn)
	clicks := 0
	btn.AddEventListener("click", func(*Event) { clicks++ })

	_ = body.AppendChild(div)
	_ = body.RemoveChild(div)
	if div.ChildAt(0) != btn {
		t.Error("expected detached subtree to keep its wrappers")
	}

	_ = body.AppendChild(div)
	got := body.ChildAt(0).ChildAt(0)
	if got != btn {
		t.Fatal("expected the same *Node after reattaching")
	}
	got.Click()
	if clicks != 1 {
		t.Errorf("expected listener kept across detach, got %d clicks", clicks)
	}
	if btn.Parent() != div {
		t.Error("expected div as parent")
	}
}
