package dom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is an element, text or other node in a Document.
type Node struct {
	doc *Document
	n   *html.Node

	listeners map[string][]listener

	// wrappers of the subtree while n is the root of a detached tree
	sub map[*html.Node]*Node
}

// Document returns the owning document.
func (n *Node) Document() *Document {
	return n.doc
}

// HTML returns the underlying x/net/html node.
func (n *Node) HTML() *html.Node {
	return n.n
}

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool {
	return n.n.Type == html.ElementNode
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.n.Type == html.TextNode
}

// TagName returns the lowercase tag name of an element, or "" for other nodes.
func (n *Node) TagName() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// Parent returns the parent node, or nil if n is detached.
func (n *Node) Parent() *Node {
	if n.n.Parent == nil || n.n.Parent.Type == html.DocumentNode {
		return nil
	}
	return n.doc.wrap(n.n.Parent)
}

// ChildNodes returns the children of n in order.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, n.doc.wrap(c))
	}
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the child at index i, or nil.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 {
		return nil
	}
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if i == 0 {
			return n.doc.wrap(c)
		}
		i--
	}
	return nil
}

// Connected reports whether n is attached to its document.
func (n *Node) Connected() bool {
	for p := n.n; p != nil; p = p.Parent {
		if p == n.doc.root {
			return true
		}
	}
	return false
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other.n; p != nil; p = p.Parent {
		if p == n.n {
			return true
		}
	}
	return false
}

// AppendChild appends child to n, detaching it from any previous parent.
func (n *Node) AppendChild(child *Node) error {
	if err := n.checkInsert(child); err != nil {
		return err
	}
	n.appendChild(child, true)
	return nil
}

func (n *Node) appendChild(child *Node, record bool) {
	oldTop, from := topOf(child.n), n.doc.tree(child.n)
	detach(child.n)
	n.n.AppendChild(child.n)
	n.doc.adopt(child, oldTop, from)
	n.childrenChanged()
	if record {
		n.doc.record(Mutation{Op: MutationAppend, Target: n, Child: child})
	}
}

// InsertBefore inserts child before ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) error {
	if ref == nil {
		return n.AppendChild(child)
	}
	if err := n.checkInsert(child); err != nil {
		return err
	}
	if ref.n.Parent != n.n {
		return fmt.Errorf("%w: reference is not a child of <%s>", ErrNotFound, n.n.Data)
	}
	if ref == child {
		return nil
	}
	oldTop, from := topOf(child.n), n.doc.tree(child.n)
	detach(child.n)
	n.n.InsertBefore(child.n, ref.n)
	n.doc.adopt(child, oldTop, from)
	n.childrenChanged()
	n.doc.record(Mutation{Op: MutationInsert, Target: n, Child: child})
	return nil
}

// RemoveChild removes child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.n.Parent != n.n {
		return fmt.Errorf("%w: not a child of <%s>", ErrNotFound, n.n.Data)
	}
	from := n.doc.tree(n.n)
	n.n.RemoveChild(child.n)
	n.doc.release(child.n, from)
	n.childrenChanged()
	n.doc.record(Mutation{Op: MutationRemove, Target: n, Child: child})
	return nil
}

// ReplaceChild replaces old with child.
func (n *Node) ReplaceChild(child, old *Node) error {
	if old == nil || old.n.Parent != n.n {
		return fmt.Errorf("%w: not a child of <%s>", ErrNotFound, n.n.Data)
	}
	if child == old {
		return nil
	}
	if err := n.checkInsert(child); err != nil {
		return err
	}
	oldTop, from := topOf(child.n), n.doc.tree(child.n)
	detach(child.n)
	n.n.InsertBefore(child.n, old.n)
	n.doc.adopt(child, oldTop, from)
	tree := n.doc.tree(n.n)
	n.n.RemoveChild(old.n)
	n.doc.release(old.n, tree)
	n.childrenChanged()
	n.doc.record(Mutation{Op: MutationReplace, Target: n, Child: child})
	return nil
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if p := n.Parent(); p != nil {
		_ = p.RemoveChild(n)
	} else if n.n.Parent != nil {
		from := n.doc.tree(n.n)
		detach(n.n)
		n.doc.release(n.n, from)
	}
}

func (n *Node) checkInsert(child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrHierarchy)
	}
	if n.n.Type == html.TextNode {
		return fmt.Errorf("%w: text nodes cannot have children", ErrHierarchy)
	}
	if child.Contains(n) {
		return fmt.Errorf("%w: <%s> would contain itself", ErrHierarchy, child.n.Data)
	}
	return nil
}

// childrenChanged drops a cached stylesheet when a <style> element's text changes.
func (n *Node) childrenChanged() {
	if n.n.Type == html.ElementNode && n.n.DataAtom == atom.Style {
		if sheet, ok := n.doc.sheets[n.n]; ok && !sheet.syncing {
			delete(n.doc.sheets, n.n)
		}
	}
}

func detach(c *html.Node) {
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
}

// GetAttribute returns the attribute value and whether it is present.
func (n *Node) GetAttribute(key string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Attribute returns the attribute value, or "" when absent.
func (n *Node) Attribute(key string) string {
	v, _ := n.GetAttribute(key)
	return v
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(key string) bool {
	_, ok := n.GetAttribute(key)
	return ok
}

// SetAttribute sets an attribute. Every call is recorded, even when the
// value is unchanged.
func (n *Node) SetAttribute(key, value string) {
	key = strings.ToLower(key)
	n.setAttribute(key, value)
	n.doc.record(Mutation{Op: MutationSetAttr, Target: n, Key: key, Value: value})
}

func (n *Node) setAttribute(key, value string) {
	for i, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.n.Attr[i].Val = value
			return
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttribute removes an attribute if present.
func (n *Node) RemoveAttribute(key string) {
	key = strings.ToLower(key)
	n.removeAttribute(key)
	n.doc.record(Mutation{Op: MutationRemoveAttr, Target: n, Key: key})
}

func (n *Node) removeAttribute(key string) {
	for i, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.n.Attr = append(n.n.Attr[:i], n.n.Attr[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of the element's attributes in order.
func (n *Node) Attributes() []html.Attribute {
	out := make([]html.Attribute, len(n.n.Attr))
	copy(out, n.n.Attr)
	return out
}

// ID returns the id attribute.
func (n *Node) ID() string {
	return n.Attribute("id")
}

// ClassName returns the class attribute.
func (n *Node) ClassName() string {
	return n.Attribute("class")
}

// SetClassName sets the class attribute.
func (n *Node) SetClassName(class string) {
	n.SetAttribute("class", class)
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.n.Type == html.TextNode {
		return n.n.Data
	}
	var sb strings.Builder
	walk(n.n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// SetTextContent replaces the children of an element with a single text
// node, or rewrites the data of a text node.
func (n *Node) SetTextContent(text string) {
	n.setText(text, true)
}

func (n *Node) setText(text string, record bool) {
	if n.n.Type == html.TextNode {
		n.n.Data = text
	} else {
		n.clearChildren()
		if text != "" {
			n.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		}
		n.childrenChanged()
	}
	if record {
		n.doc.record(Mutation{Op: MutationSetText, Target: n, Value: text})
	}
}

func (n *Node) clearChildren() {
	from := n.doc.tree(n.n)
	for c := n.n.FirstChild; c != nil; {
		next := c.NextSibling
		n.n.RemoveChild(c)
		n.doc.release(c, from)
		c = next
	}
}

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// OuterHTML serializes n.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	_ = html.Render(&sb, n.n)
	return sb.String()
}

// SetInnerHTML parses markup in the context of n and replaces its children.
func (n *Node) SetInnerHTML(markup string) {
	if n.n.Type != html.ElementNode {
		n.setText(markup, true)
		return
	}
	nodes := n.parseFragment(markup)
	n.clearChildren()
	for _, c := range nodes {
		n.n.AppendChild(c)
	}
	n.childrenChanged()
	n.doc.record(Mutation{Op: MutationSetHTML, Target: n, Value: markup})
}

// SameInnerHTML reports whether setting markup would leave the serialized
// content of n unchanged.
func (n *Node) SameInnerHTML(markup string) bool {
	if n.n.Type != html.ElementNode {
		return n.n.Data == markup
	}
	var sb strings.Builder
	for _, c := range n.parseFragment(markup) {
		_ = html.Render(&sb, c)
	}
	return sb.String() == n.InnerHTML()
}

func (n *Node) parseFragment(markup string) []*html.Node {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n.n)
	if err != nil {
		// Only reader errors fail; fall back to literal text.
		return []*html.Node{{Type: html.TextNode, Data: markup}}
	}
	return nodes
}

// booleanAttrs are attributes whose presence is their value.
var booleanAttrs = map[string]bool{
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
	"multiple":  true,
	"autofocus": true,
}

// SetProperty assigns a JavaScript-style element property. textContent,
// innerHTML and className map to their DOM meaning; boolean attributes
// follow the truthiness of v; anything else becomes a stringified attribute.
func (n *Node) SetProperty(key string, v any) {
	switch key {
	case "textContent", "innerText":
		n.SetTextContent(Stringify(v))
	case "innerHTML":
		n.SetInnerHTML(Stringify(v))
	case "className":
		n.SetClassName(Stringify(v))
	case "htmlFor":
		n.SetAttribute("for", Stringify(v))
	default:
		lower := strings.ToLower(key)
		if booleanAttrs[lower] {
			if truthy(v) {
				n.SetAttribute(lower, "")
			} else {
				n.RemoveAttribute(lower)
			}
			return
		}
		n.SetAttribute(key, Stringify(v))
	}
}

// Property reads a JavaScript-style element property as a string.
func (n *Node) Property(key string) string {
	switch key {
	case "textContent", "innerText":
		return n.TextContent()
	case "innerHTML":
		return n.InnerHTML()
	case "className":
		return n.ClassName()
	case "htmlFor":
		return n.Attribute("for")
	default:
		return n.Attribute(strings.ToLower(key))
	}
}

// Stringify converts a property value to its attribute form. nil becomes "".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

// Index returns the position of n among its siblings, or -1 if detached.
func (n *Node) Index() int {
	if n.n.Parent == nil {
		return -1
	}
	i := 0
	for c := n.n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == n.n {
			return i
		}
		i++
	}
	return -1
}

// String returns a short description for logs.
func (n *Node) String() string {
	switch n.n.Type {
	case html.ElementNode:
		if id := n.ID(); id != "" {
			return "<" + n.n.Data + "#" + id + ">"
		}
		return "<" + n.n.Data + ">"
	case html.TextNode:
		return strconv.Quote(n.n.Data)
	default:
		return fmt.Sprintf("node(%d)", n.n.Type)
	}
}
