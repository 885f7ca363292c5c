package dom

import (
	"strings"
	"unicode"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Style is a CSS declaration block: an element's inline style or a rule's body.
type Style struct {
	load  func() []*css.Declaration
	store func(decls []*css.Declaration, prop, value string)
}

// Get returns the value of prop, or "" when unset.
func (s *Style) Get(prop string) string {
	prop = CSSProperty(prop)
	for _, d := range s.load() {
		if d.Property == prop {
			if d.Important {
				return d.Value + " !important"
			}
			return d.Value
		}
	}
	return ""
}

// Set writes prop. An empty value removes the declaration. Every call is
// recorded as a mutation, even when the value is unchanged.
func (s *Style) Set(prop, value string) {
	prop = CSSProperty(prop)
	value = strings.TrimSpace(value)

	important := false
	if v, ok := strings.CutSuffix(value, "!important"); ok {
		value = strings.TrimSpace(v)
		important = true
	}

	decls := s.load()
	idx := -1
	for i, d := range decls {
		if d.Property == prop {
			idx = i
			break
		}
	}

	switch {
	case value == "" && idx >= 0:
		decls = append(decls[:idx], decls[idx+1:]...)
	case value == "":
	case idx >= 0:
		decls[idx].Value = value
		decls[idx].Important = important
	default:
		decls = append(decls, &css.Declaration{Property: prop, Value: value, Important: important})
	}
	s.store(decls, prop, value)
}

// Len returns the number of declarations.
func (s *Style) Len() int {
	return len(s.load())
}

// Properties returns declared property names in order.
func (s *Style) Properties() []string {
	decls := s.load()
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.Property
	}
	return out
}

// CSSText serializes the block as "prop: value; ...".
func (s *Style) CSSText() string {
	return formatDeclarations(s.load())
}

func formatDeclarations(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		p := d.Property + ": " + d.Value
		if d.Important {
			p += " !important"
		}
		parts = append(parts, p+";")
	}
	return strings.Join(parts, " ")
}

// parseInline parses a style attribute. Malformed input yields no declarations.
func parseInline(text string) []*css.Declaration {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	// the parser is strict about trailing semicolons
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil
	}
	return decls
}

// Style returns the inline style of an element.
func (n *Node) Style() *Style {
	return &Style{
		load: func() []*css.Declaration {
			return parseInline(n.Attribute("style"))
		},
		store: func(decls []*css.Declaration, prop, value string) {
			if len(decls) == 0 {
				n.removeAttribute("style")
			} else {
				n.setAttribute("style", formatDeclarations(decls))
			}
			n.doc.record(Mutation{Op: MutationSetStyle, Target: n, Key: prop, Value: value})
		},
	}
}

// CSSProperty converts a camelCase property name (fontSize, WebkitTransition)
// to CSS form (font-size, -webkit-transition). Names already containing a
// dash, and custom properties, are returned unchanged.
func CSSProperty(name string) string {
	if strings.HasPrefix(name, "--") || strings.Contains(name, "-") {
		return name
	}
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 || isVendorPrefix(name) {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isVendorPrefix(name string) bool {
	for _, p := range []string{"Webkit", "Moz", "Ms", "O"} {
		if strings.HasPrefix(name, p) && len(name) > len(p) && unicode.IsUpper(rune(name[len(p)])) {
			return true
		}
	}
	return false
}
