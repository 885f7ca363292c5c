// Package dom is an in-memory host document for vnest pages.
//
// It provides the subset of the browser DOM and CSSOM that the renderer
// needs: element and text nodes backed by golang.org/x/net/html, attribute
// and inline-style access, event listeners, stylesheets with addressable
// rules, and a synchronous mutation feed.
//
// # Nodes
//
// Every *html.Node in a Document has exactly one *Node wrapper, so node
// identity is stable: the same element always yields the same pointer.
//
//	doc := dom.NewDocument()
//	div := doc.CreateElement("div")
//	div.SetAttribute("id", "main")
//	_ = doc.Body().AppendChild(div)
//
// # Styles
//
// Inline styles live in the element's style attribute and are parsed with
// douceur on access. Stylesheets are <style> elements whose text is kept
// in sync with their rule list. Property names may be camelCase (fontSize)
// or CSS case (font-size). Setting a property to "" removes it, as in CSSOM.
//
// # Mutations
//
// Observe registers a callback for every structural, attribute, text and
// style change. The live server uses it to push updates; tests use it to
// count host calls.
//
// A Document is not safe for concurrent use.
package dom
