package vdom

import (
	"testing"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/reactive"
)

func TestBindText(t *testing.T) {
	doc := dom.NewDocument()
	n := doc.CreateElement("span")
	s := reactive.NewSignal("hello")

	stop := BindText(n, s)
	if n.TextContent() != "hello" {
		t.Errorf("expected hello, got %q", n.TextContent())
	}

	s.Set("world")
	if n.TextContent() != "world" {
		t.Errorf("expected world, got %q", n.TextContent())
	}

	stop()
	s.Set("ignored")
	if n.TextContent() != "world" {
		t.Errorf("expected no update after unsubscribe, got %q", n.TextContent())
	}
}

func TestBindTextDoesNotParseMarkup(t *testing.T) {
	doc := dom.NewDocument()
	n := doc.CreateElement("span")
	BindText(n, reactive.NewSignal("<b>x</b>"))

	if n.ChildCount() != 1 || !n.ChildAt(0).IsText() {
		t.Errorf("expected a single text node, got %q", n.InnerHTML())
	}
}

func TestBindTextStringifies(t *testing.T) {
	doc := dom.NewDocument()
	n := doc.CreateElement("span")
	count := reactive.NewSignal(3)
	BindText(n, count)
	count.Set(4)
	if n.TextContent() != "4" {
		t.Errorf("expected 4, got %q", n.TextContent())
	}
}

func TestBindMarkdown(t *testing.T) {
	doc := dom.NewDocument()
	n := doc.CreateElement("div")
	s := reactive.NewSignal("**hi**")

	stop := BindMarkdown(n, s, nil)
	defer stop()

	if !n.SameInnerHTML(markup.Markdown("**hi**")) {
		t.Errorf("expected rendered markdown, got %q", n.InnerHTML())
	}
	if countMatches(t, n, "strong") != 1 {
		t.Errorf("expected parsed markup, got %q", n.InnerHTML())
	}

	s.Set("*bye*")
	if !n.SameInnerHTML(markup.Markdown("*bye*")) {
		t.Errorf("expected re-rendered markdown, got %q", n.InnerHTML())
	}
}

func TestBindMarkdownCustomRenderer(t *testing.T) {
	doc := dom.NewDocument()
	n := doc.CreateElement("div")
	BindMarkdown(n, reactive.NewSignal("x"), func(s string) string { return "<i>" + s + "</i>" })

	if n.InnerHTML() != "<i>x</i>" {
		t.Errorf("expected custom renderer output, got %q", n.InnerHTML())
	}
}
