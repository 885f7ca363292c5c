package style

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vnest-dev/vnest/internal/errors"
	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/reactive"
)

// Selectors used by the fixed-target setters.
const (
	PageSelector     = ".vNestPage"
	DocumentSelector = "body"
)

// Decls maps CSS property names (camelCase or CSS case) to values.
// A nil or "" value clears the property.
type Decls map[string]any

// Store resolves selectors to rules in a document's first stylesheet.
type Store struct {
	doc    *dom.Document
	logger *slog.Logger

	// mu serializes lookup and insert so concurrent callers never create
	// two rules for one selector.
	mu sync.Mutex
}

// NewStore creates a Store for doc.
func NewStore(doc *dom.Document) *Store {
	return &Store{
		doc:    doc,
		logger: slog.Default().With("component", "style"),
	}
}

// SetLogger replaces the logger.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// EnsureStylesheet returns the document's first stylesheet, creating an
// empty one if the document has none.
func (s *Store) EnsureStylesheet() *dom.StyleSheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureStylesheet()
}

func (s *Store) ensureStylesheet() *dom.StyleSheet {
	if sheets := s.doc.StyleSheets(); len(sheets) > 0 {
		return sheets[0]
	}
	s.logger.Debug("creating stylesheet")
	return s.doc.CreateStyleSheet()
}

// Rule returns the rule whose selector text equals selector, appending an
// empty rule when none exists. Only a selector the stylesheet cannot parse
// produces an error.
func (s *Store) Rule(selector string) (*dom.CSSRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := s.ensureStylesheet()
	for _, rule := range sheet.Rules() {
		if rule.SelectorText() == selector {
			return rule, nil
		}
	}

	idx, err := sheet.InsertRule(selector+" {}", sheet.Len())
	if err != nil {
		code := "E102"
		if errors.Is(err, dom.ErrInvalidSelector) {
			code = "E101"
		}
		return nil, errors.New(code).
			WithDetail(fmt.Sprintf("selector %q", selector)).
			Wrap(err)
	}
	return sheet.Rule(idx), nil
}

// ClassStyle styles ".className".
func (s *Store) ClassStyle(className string, decls Decls) error {
	return s.CustomStyle("."+className, decls)
}

// PageStyle styles the page container class.
func (s *Store) PageStyle(decls Decls) error {
	return s.CustomStyle(PageSelector, decls)
}

// DocStyle styles the document body.
func (s *Store) DocStyle(decls Decls) error {
	return s.CustomStyle(DocumentSelector, decls)
}

// CustomStyle styles an arbitrary selector.
func (s *Store) CustomStyle(selector string, decls Decls) error {
	rule, err := s.Rule(selector)
	if err != nil {
		return err
	}
	Apply(rule.Style(), decls)
	return nil
}

// IDStyle sets inline style on the element with the given id.
// An unknown id is a no-op.
func (s *Store) IDStyle(id string, decls Decls) {
	el := s.doc.GetElementByID(id)
	if el == nil {
		s.logger.Debug("idStyle: no element", "id", id)
		return
	}
	Apply(el.Style(), decls)
}

// Apply writes decls onto a declaration block in key order.
func Apply(st *dom.Style, decls Decls) {
	for _, prop := range sortedKeys(decls) {
		st.Set(prop, dom.Stringify(reactive.Resolve(decls[prop])))
	}
}
