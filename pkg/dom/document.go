package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"weak"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrInvalidSelector is returned for selectors the host cannot parse.
	ErrInvalidSelector = errors.New("dom: invalid selector")

	// ErrInvalidRule is returned when rule text does not hold exactly one style rule.
	ErrInvalidRule = errors.New("dom: invalid rule")

	// ErrIndexSize is returned for out-of-range rule or child indexes.
	ErrIndexSize = errors.New("dom: index out of range")

	// ErrNotFound is returned when a reference node is not a child of the parent.
	ErrNotFound = errors.New("dom: node not found")

	// ErrHierarchy is returned when an insertion would create a cycle or
	// targets a node that cannot have children.
	ErrHierarchy = errors.New("dom: hierarchy request")
)

const emptyDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an in-memory HTML document.
type Document struct {
	root  *html.Node
	nodes map[*html.Node]*Node

	// roots of detached trees, see wrap
	detached map[*html.Node]weak.Pointer[Node]
	sweepAt  int

	sheets map[*html.Node]*StyleSheet

	observers []observer

	// seq issues observer and listener IDs.
	seq uint64
}

// NewDocument creates an empty document with <html>, <head> and <body>.
func NewDocument() *Document {
	doc, err := Parse(strings.NewReader(emptyDocument))
	if err != nil {
		// The input is a constant; the parser only fails on reader errors.
		panic(err)
	}
	return doc
}

// Parse builds a document from HTML. Existing <style> elements become
// stylesheets on first access.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Document{
		root:     root,
		nodes:    make(map[*html.Node]*Node),
		detached: make(map[*html.Node]weak.Pointer[Node]),
		sweepAt:  minSweep,
		sheets:   make(map[*html.Node]*StyleSheet),
	}, nil
}

// CreateElement creates a detached element. Tag names are lowercased.
func (d *Document) CreateElement(tag string) *Node {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *Node {
	return d.wrap(&html.Node{Type: html.TextNode, Data: text})
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return d.wrap(c)
		}
	}
	return nil
}

// Head returns the <head> element, or nil if there is none.
func (d *Document) Head() *Node {
	return d.topLevel(atom.Head)
}

// Body returns the <body> element, or nil if there is none.
func (d *Document) Body() *Node {
	return d.topLevel(atom.Body)
}

func (d *Document) topLevel(a atom.Atom) *Node {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for c := root.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return d.wrap(c)
		}
	}
	return nil
}

// Title returns the text of the first <title> in <head>.
func (d *Document) Title() string {
	if t := d.titleElement(); t != nil {
		return strings.TrimSpace(t.TextContent())
	}
	return ""
}

// SetTitle overwrites the document title, creating <title> in <head> if
// needed. Without a <head> it does nothing.
func (d *Document) SetTitle(title string) {
	t := d.titleElement()
	if t == nil {
		head := d.Head()
		if head == nil {
			return
		}
		t = d.CreateElement("title")
		head.appendChild(t, false)
	}
	t.setText(title, false)
	d.record(Mutation{Op: MutationSetTitle, Target: t, Value: title})
}

func (d *Document) titleElement() *Node {
	head := d.Head()
	if head == nil {
		return nil
	}
	for c := head.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Title {
			return d.wrap(c)
		}
	}
	return nil
}

// GetElementByID returns the first connected element whose id attribute
// equals id, or nil.
func (d *Document) GetElementByID(id string) *Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return d.wrap(found)
}

// QuerySelector returns the first connected element matching selector.
func (d *Document) QuerySelector(selector string) (*Node, error) {
	root := d.DocumentElement()
	if root == nil {
		return nil, nil
	}
	return root.QuerySelector(selector)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the document as HTML.
func (d *Document) String() string {
	var sb strings.Builder
	_ = d.Render(&sb)
	return sb.String()
}

// walk visits n and its descendants in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
