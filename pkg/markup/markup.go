// Package markup renders markup source text to HTML.
//
// The default renderer is CommonMark-style markdown via gomarkdown with its
// common extensions. Output is NOT sanitized: callers rendering untrusted
// input must sanitize it themselves.
package markup

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer converts source text to an HTML string. Implementations must be pure.
type Renderer func(src string) string

// Markdown renders src as markdown using the default configuration.
func Markdown(src string) string {
	// Parsers carry state, so one is built per call.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(src), p, r))
}

// Plain returns src unchanged. Useful when the source is already HTML.
func Plain(src string) string {
	return src
}

// Or returns r, or Markdown when r is nil.
func Or(r Renderer) Renderer {
	if r == nil {
		return Markdown
	}
	return r
}
