// Package head keeps a document's <head> and <html> attributes in line with
// declarative metadata. Meta tags are upserted so repeated calls never
// duplicate them; link and script tags are appended on every call.
package head

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/reactive"
)

// Meta describes one <meta> tag. The first non-empty of Name, Property,
// Charset and HTTPEquiv identifies the tag; every non-empty one is written.
// A Meta with none of them is always appended.
type Meta struct {
	Name      string
	Property  string
	Charset   string
	HTTPEquiv string
	Content   string
}

// Attrs maps attribute names to values. Values are stringified; nil values
// are skipped on new tags and removed from <html>.
type Attrs map[string]any

// Props is the metadata applied by Modify. Zero fields are left alone.
type Props struct {
	Title  *string
	Meta   []Meta
	Link   []Attrs
	Script []Attrs
	Attrs  Attrs
}

// Synchronizer applies Props to a document.
type Synchronizer struct {
	doc    *dom.Document
	logger *slog.Logger
}

// New creates a Synchronizer for doc.
func New(doc *dom.Document) *Synchronizer {
	return &Synchronizer{
		doc:    doc,
		logger: slog.Default().With("component", "head"),
	}
}

// SetLogger replaces the logger.
func (s *Synchronizer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Modify applies props.
func (s *Synchronizer) Modify(props Props) {
	head := s.EnsureHead()
	if head == nil {
		s.logger.Warn("document has no root element")
		return
	}

	if props.Title != nil {
		s.doc.SetTitle(*props.Title)
	}

	for _, m := range props.Meta {
		s.upsertMeta(head, m)
	}
	for _, attrs := range props.Link {
		s.appendTag(head, "link", attrs)
	}
	for _, attrs := range props.Script {
		s.appendTag(head, "script", attrs)
	}

	if len(props.Attrs) > 0 {
		root := s.doc.DocumentElement()
		for _, key := range sortedKeys(props.Attrs) {
			v := reactive.Resolve(props.Attrs[key])
			if v == nil {
				root.RemoveAttribute(key)
				continue
			}
			root.SetAttribute(key, dom.Stringify(v))
		}
	}
}

// EnsureHead returns the document's <head>, creating it before <body> (or
// at the end of <html>) when missing. It returns nil only for a document
// without a root element.
func (s *Synchronizer) EnsureHead() *dom.Node {
	if h := s.doc.Head(); h != nil {
		return h
	}
	root := s.doc.DocumentElement()
	if root == nil {
		return nil
	}
	h := s.doc.CreateElement("head")
	if body := s.doc.Body(); body != nil && body.Parent() == root {
		_ = root.InsertBefore(h, body)
	} else {
		_ = root.AppendChild(h)
	}
	return h
}

func (s *Synchronizer) upsertMeta(head *dom.Node, m Meta) {
	var el *dom.Node
	if key, value := m.identity(); key != "" {
		el = findMeta(head, key, value)
	}
	if el == nil {
		el = s.doc.CreateElement("meta")
		_ = head.AppendChild(el)
	}
	for _, attr := range m.attrs() {
		el.SetAttribute(attr[0], attr[1])
	}
	el.SetAttribute("content", m.Content)
}

// attrs returns the non-empty identifying attributes in precedence order.
func (m Meta) attrs() [][2]string {
	var out [][2]string
	for _, kv := range [][2]string{
		{"name", m.Name},
		{"property", m.Property},
		{"charset", m.Charset},
		{"http-equiv", m.HTTPEquiv},
	} {
		if kv[1] != "" {
			out = append(out, kv)
		}
	}
	return out
}

func (s *Synchronizer) appendTag(head *dom.Node, tag string, attrs Attrs) {
	el := s.doc.CreateElement(tag)
	for _, key := range sortedKeys(attrs) {
		v := reactive.Resolve(attrs[key])
		if v == nil {
			continue
		}
		el.SetAttribute(key, dom.Stringify(v))
	}
	_ = head.AppendChild(el)
}

// identity returns the attribute that identifies the tag.
func (m Meta) identity() (key, value string) {
	switch {
	case m.Name != "":
		return "name", m.Name
	case m.Property != "":
		return "property", m.Property
	case m.Charset != "":
		return "charset", m.Charset
	case m.HTTPEquiv != "":
		return "http-equiv", m.HTTPEquiv
	}
	return "", ""
}

// Selector returns the CSS selector matching the tag, with quotes in the
// value escaped. Any charset meta matches regardless of value.
func (m Meta) Selector() string {
	key, value := m.identity()
	switch key {
	case "":
		return ""
	case "charset":
		return "meta[charset]"
	}
	return `meta[` + key + `="` + strings.ReplaceAll(value, `"`, `\"`) + `"]`
}

func findMeta(head *dom.Node, key, value string) *dom.Node {
	for _, c := range head.ChildNodes() {
		if c.TagName() != "meta" {
			continue
		}
		got, ok := c.GetAttribute(key)
		if !ok {
			continue
		}
		// only one charset declaration is meaningful
		if key == "charset" || got == value {
			return c
		}
	}
	return nil
}

func sortedKeys(m Attrs) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
