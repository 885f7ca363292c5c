// Package demo builds the counter page served and rendered by the CLI.
package demo

import (
	"fmt"
	"log/slog"

	"github.com/vnest-dev/vnest"
	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/markup"
	"github.com/vnest-dev/vnest/pkg/vdom"
)

// maxHistory bounds the click log.
const maxHistory = 5

// Demo is a counter page. The heading is bound to a signal; the rest is
// re-rendered through the reconciler on every change.
type Demo struct {
	Page    *vnest.Page
	Count   *vnest.Signal[int]
	Heading *dom.Node

	history []string
}

// Build creates the demo page in doc.
func Build(doc *dom.Document, render markup.Renderer, logger *slog.Logger) (*Demo, error) {
	opts := []vnest.Option{vnest.WithMarkup(render)}
	if logger != nil {
		opts = append(opts, vnest.WithLogger(logger))
	}
	page := vnest.CreatePage(doc, opts...)
	d := &Demo{Page: page, Count: vnest.CreateSignal(0)}

	title := "vNest demo"
	page.ModifyHead(vnest.HeadProps{
		Title: &title,
		Meta: []vnest.Meta{
			{Charset: "utf-8"},
			{Name: "viewport", Content: "width=device-width, initial-scale=1"},
			{Name: "description", Content: "A counter rendered by vnest"},
		},
	})

	if err := page.DocStyle(vnest.Decls{"fontFamily": "system-ui, sans-serif", "margin": "0"}); err != nil {
		return nil, err
	}
	if err := page.PageStyle(vnest.Decls{"maxWidth": "32em", "margin": "2em auto"}); err != nil {
		return nil, err
	}
	if err := page.ClassStyle("card", vnest.Decls{"padding": "1em", "border": "1px solid #ddd", "borderRadius": "8px"}); err != nil {
		return nil, err
	}
	if err := page.CustomStyle("button", vnest.Decls{"marginRight": "0.5em"}); err != nil {
		return nil, err
	}

	label := vnest.CreateSignal("Clicked 0 times")
	d.Count.Subscribe(func(n int) {
		label.Set(fmt.Sprintf("Clicked %d times", n))
	})
	d.Heading = page.CreateElement("h1", vnest.Props{
		"id":          "heading",
		"textContent": vnest.Bind(label),
	})
	if root := page.Root(); root.Parent() != nil {
		_ = root.Parent().InsertBefore(d.Heading, root)
	}

	if err := d.Render(); err != nil {
		return nil, err
	}
	return d, nil
}

// Render reconciles the page against the current count.
func (d *Demo) Render() error {
	n := d.Count.Get()
	return d.Page.Render(
		vdom.Div(vdom.Class("card"),
			vdom.Button(vdom.ID("inc"), vdom.OnClick(d.increment), vdom.Text("+1")),
			vdom.Button(vdom.ID("reset"), vdom.OnClick(d.reset), vdom.Text("Reset")),
			vdom.P(vdom.ID("total"), vdom.Content(fmt.Sprintf("Total: **%d**", n))),
			vdom.If(n%2 == 1, vdom.P(vdom.Class("odd"), vdom.Text("odd"))),
		),
		vdom.Ul(vdom.ID("history"),
			vdom.Range(d.history, func(_ int, entry string) *vdom.VNode {
				return vdom.Li(vdom.Text(entry))
			}),
		),
	)
}

func (d *Demo) increment(*dom.Event) {
	d.Count.Update(func(n int) int { return n + 1 })
	d.log(fmt.Sprintf("increment to %d", d.Count.Get()))
}

func (d *Demo) reset(*dom.Event) {
	d.Count.Set(0)
	d.log("reset")
}

func (d *Demo) log(entry string) {
	d.history = append(d.history, entry)
	if len(d.history) > maxHistory {
		d.history = d.history[len(d.history)-maxHistory:]
	}
	if err := d.Render(); err != nil {
		slog.Default().Warn("demo render failed", "error", err)
	}
}
