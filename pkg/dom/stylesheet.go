package dom

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	selcss "github.com/ericchiang/css"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleSheet is the CSSOM view of a <style> element.
type StyleSheet struct {
	doc   *Document
	owner *html.Node
	sheet *css.Stylesheet
	rules map[*css.Rule]*CSSRule

	// syncing is set while the sheet rewrites its own owner text.
	syncing bool
}

// CSSRule is one rule of a StyleSheet. Its pointer is stable for the
// lifetime of the rule.
type CSSRule struct {
	sheet *StyleSheet
	rule  *css.Rule
}

// StyleSheets returns the stylesheets of all connected <style> elements in
// document order.
func (d *Document) StyleSheets() []*StyleSheet {
	var out []*StyleSheet
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Style {
			out = append(out, d.sheetFor(n))
		}
		return true
	})
	return out
}

// CreateStyleSheet appends an empty <style> element to <head> (or to the
// document element when there is no head) and returns its sheet.
func (d *Document) CreateStyleSheet() *StyleSheet {
	style := d.CreateElement("style")
	parent := d.Head()
	if parent == nil {
		parent = d.DocumentElement()
	}
	if parent != nil {
		parent.appendChild(style, true)
	}
	return d.sheetFor(style.n)
}

// sheetFor returns the sheet of a <style> node, parsing its text on first use.
func (d *Document) sheetFor(n *html.Node) *StyleSheet {
	if s, ok := d.sheets[n]; ok {
		return s
	}
	s := &StyleSheet{
		doc:   d,
		owner: n,
		sheet: css.NewStylesheet(),
		rules: make(map[*css.Rule]*CSSRule),
	}
	if text := d.wrap(n).TextContent(); strings.TrimSpace(text) != "" {
		if parsed, err := parser.Parse(text); err == nil {
			s.sheet = parsed
		}
	}
	d.sheets[n] = s
	return s
}

// Owner returns the <style> element.
func (s *StyleSheet) Owner() *Node {
	return s.doc.wrap(s.owner)
}

// Len returns the number of rules.
func (s *StyleSheet) Len() int {
	return len(s.sheet.Rules)
}

// Rules returns the rules in insertion order.
func (s *StyleSheet) Rules() []*CSSRule {
	out := make([]*CSSRule, len(s.sheet.Rules))
	for i, r := range s.sheet.Rules {
		out[i] = s.wrapRule(r)
	}
	return out
}

// Rule returns the rule at index i, or nil.
func (s *StyleSheet) Rule(i int) *CSSRule {
	if i < 0 || i >= len(s.sheet.Rules) {
		return nil
	}
	return s.wrapRule(s.sheet.Rules[i])
}

func (s *StyleSheet) wrapRule(r *css.Rule) *CSSRule {
	if w, ok := s.rules[r]; ok {
		return w
	}
	w := &CSSRule{sheet: s, rule: r}
	s.rules[r] = w
	return w
}

// InsertRule parses text as a single rule and inserts it at index.
// It returns the index of the new rule.
func (s *StyleSheet) InsertRule(text string, index int) (int, error) {
	if index < 0 || index > len(s.sheet.Rules) {
		return 0, fmt.Errorf("%w: rule index %d of %d", ErrIndexSize, index, len(s.sheet.Rules))
	}
	parsed, err := parser.Parse(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	if len(parsed.Rules) != 1 {
		return 0, fmt.Errorf("%w: expected one rule, got %d", ErrInvalidRule, len(parsed.Rules))
	}
	rule := parsed.Rules[0]
	if rule.Kind == css.QualifiedRule {
		if err := ValidateSelector(strings.Join(rule.Selectors, ", ")); err != nil {
			return 0, err
		}
	}

	rules := s.sheet.Rules
	rules = append(rules, nil)
	copy(rules[index+1:], rules[index:])
	rules[index] = rule
	s.sheet.Rules = rules

	s.sync()
	s.doc.record(Mutation{Op: MutationInsertRule, Key: selectorText(rule), Value: text})
	return index, nil
}

// DeleteRule removes the rule at index.
func (s *StyleSheet) DeleteRule(index int) error {
	if index < 0 || index >= len(s.sheet.Rules) {
		return fmt.Errorf("%w: rule index %d of %d", ErrIndexSize, index, len(s.sheet.Rules))
	}
	rule := s.sheet.Rules[index]
	s.sheet.Rules = append(s.sheet.Rules[:index], s.sheet.Rules[index+1:]...)
	delete(s.rules, rule)

	s.sync()
	s.doc.record(Mutation{Op: MutationDeleteRule, Key: selectorText(rule)})
	return nil
}

// CSSText serializes the sheet.
func (s *StyleSheet) CSSText() string {
	return s.sheet.String()
}

// sync rewrites the owner element's text from the rule list.
func (s *StyleSheet) sync() {
	s.syncing = true
	defer func() { s.syncing = false }()
	s.doc.wrap(s.owner).setText(s.sheet.String(), false)
}

// SelectorText returns the rule's selector list, or the at-rule prelude.
func (r *CSSRule) SelectorText() string {
	return selectorText(r.rule)
}

func selectorText(rule *css.Rule) string {
	if rule.Kind == css.AtRule {
		return strings.TrimSpace(rule.Name + " " + rule.Prelude)
	}
	return strings.Join(rule.Selectors, ", ")
}

// Style returns the rule's declaration block.
func (r *CSSRule) Style() *Style {
	return &Style{
		load: func() []*css.Declaration {
			return r.rule.Declarations
		},
		store: func(decls []*css.Declaration, prop, value string) {
			r.rule.Declarations = decls
			r.sheet.sync()
			r.sheet.doc.record(Mutation{Op: MutationSetStyle, Key: prop, Value: value})
		},
	}
}

// CSSText serializes the rule.
func (r *CSSRule) CSSText() string {
	return r.rule.String()
}

// pseudoSelector matches pseudo-classes and pseudo-elements, which the
// selector engine only partially supports.
var pseudoSelector = regexp.MustCompile(`::?[a-zA-Z-]+(\([^)]*\))?`)

// ValidateSelector checks that selector is syntactically valid.
func ValidateSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	if _, err := selcss.Parse(selector); err == nil {
		return nil
	}
	stripped := pseudoSelector.ReplaceAllString(selector, "")
	if strings.TrimSpace(stripped) == "" {
		// A bare pseudo selector such as ":root".
		stripped = "*"
	}
	if _, err := selcss.Parse(stripped); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSelector, selector, err)
	}
	return nil
}
