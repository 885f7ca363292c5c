package vnest

import (
	"strings"
	"testing"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/vdom"
	"github.com/vnest-dev/vnest/pkg/vtest"
)

func TestCreatePageMounts(t *testing.T) {
	doc := dom.NewDocument()
	page := CreatePage(doc)

	if page.Root().ClassName() != PageClass {
		t.Errorf("expected class %q, got %q", PageClass, page.Root().ClassName())
	}
	if page.Root().Parent() != doc.Body() {
		t.Error("expected page container appended to body")
	}

	detached := CreatePage(doc, WithoutMount())
	if detached.Root().Parent() != nil {
		t.Error("expected container left detached")
	}
}

func TestPagesAreIndependent(t *testing.T) {
	doc := dom.NewDocument()
	a := CreatePage(doc, WithMarkup(markup.Plain))
	b := CreatePage(doc, WithMarkup(markup.Plain))

	if err := a.Render(vdom.P(vdom.Text("a"))); err != nil {
		t.Fatal(err)
	}
	if err := b.Render(vdom.P(vdom.Text("b1")), vdom.P(vdom.Text("b2"))); err != nil {
		t.Fatal(err)
	}
	if err := a.Render(vdom.P(vdom.Text("a2"))); err != nil {
		t.Fatal(err)
	}

	if a.Root().TextContent() != "a2" {
		t.Errorf("page a: got %q", a.Root().TextContent())
	}
	if b.Root().TextContent() != "b1b2" {
		t.Errorf("page b: got %q", b.Root().TextContent())
	}
}

func TestBindTextScenario(t *testing.T) {
	doc := dom.NewDocument()
	s := CreateSignal("hello")
	n := doc.CreateElement("p")

	calls := 0
	s.Subscribe(func(string) { calls++ })
	vdom.BindText(n, s)
	if n.TextContent() != "hello" {
		t.Fatalf("got %q", n.TextContent())
	}

	s.Set("world")
	if n.TextContent() != "world" {
		t.Fatalf("got %q", n.TextContent())
	}
	s.Set("world")
	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
}

func TestPageCreateElementBinds(t *testing.T) {
	doc := dom.NewDocument()
	page := CreatePage(doc, WithMarkup(markup.Plain))
	title := CreateSignal("one")

	el := page.CreateElement("h1", Props{"textContent": Bind(title), "id": "t"})
	_ = page.Root().AppendChild(el)

	title.Set("two")
	if got := doc.GetElementByID("t").TextContent(); got != "two" {
		t.Errorf("expected bound text, got %q", got)
	}

	page.Dispose()
	title.Set("three")
	if got := el.TextContent(); got != "two" {
		t.Errorf("expected binding released, got %q", got)
	}
}

func TestModifyProperty(t *testing.T) {
	doc := dom.NewDocument()
	page := CreatePage(doc)
	if err := page.Render(vdom.Div(vdom.ID("box"), vdom.Prop("title", "x"))); err != nil {
		t.Fatal(err)
	}
	box := doc.GetElementByID("box")

	page.ModifyProperty("box", Props{
		"className": "active",
		"title":     nil,
		"style":     Style{"color": "red"},
	})

	if box.ClassName() != "active" {
		t.Errorf("expected className, got %q", box.ClassName())
	}
	if box.Attribute("title") != "" {
		t.Errorf("expected nil written as empty, got %q", box.Attribute("title"))
	}
	if box.Style().Get("color") != "red" {
		t.Errorf("expected inline style, got %q", box.Attribute("style"))
	}

	// unknown ids are ignored
	page.ModifyProperty("missing", Props{"title": "y"})
}

func TestPageStyles(t *testing.T) {
	doc := dom.NewDocument()
	page := CreatePage(doc)

	if err := page.ClassStyle("x", Decls{"color": "red"}); err != nil {
		t.Fatal(err)
	}
	if err := page.ClassStyle("x", Decls{"fontSize": "2em"}); err != nil {
		t.Fatal(err)
	}
	if err := page.PageStyle(Decls{"padding": "1em"}); err != nil {
		t.Fatal(err)
	}

	rule, err := page.Styles().Rule(".x")
	if err != nil {
		t.Fatal(err)
	}
	if rule.Style().Get("color") != "red" || rule.Style().Get("font-size") != "2em" {
		t.Errorf("expected merged rule, got %q", rule.CSSText())
	}

	sheet := page.Styles().EnsureStylesheet()
	if !strings.Contains(sheet.CSSText(), ".vNestPage") {
		t.Errorf("expected page rule, got %q", sheet.CSSText())
	}
}

func TestModifyHead(t *testing.T) {
	doc := dom.NewDocument()
	page := CreatePage(doc)
	title := "Demo"

	page.ModifyHead(HeadProps{Title: &title, Meta: []Meta{{Name: "description", Content: "A"}}})
	page.ModifyHead(HeadProps{Meta: []Meta{{Name: "description", Content: "B"}}})

	if doc.Title() != "Demo" {
		t.Errorf("got title %q", doc.Title())
	}
	html := doc.String()
	if strings.Count(html, `name="description"`) != 1 || !strings.Contains(html, `content="B"`) {
		t.Errorf("unexpected head: %s", html)
	}
}

func TestRenderSameTreeIsStable(t *testing.T) {
	doc := dom.NewDocument()
	page := CreatePage(doc)
	tree := func() *VNode {
		return vdom.Ul(vdom.Class("list"),
			vdom.Li(vdom.Text("one")),
			vdom.Li(vdom.Text("two")),
		)
	}
	if err := page.Render(tree()); err != nil {
		t.Fatal(err)
	}

	w := vtest.Watch(doc)
	defer w.Stop()
	if err := page.Render(tree()); err != nil {
		t.Fatal(err)
	}
	w.ExpectNoStructural(t)
	w.ExpectCount(t, dom.MutationSetText, 0)
}
