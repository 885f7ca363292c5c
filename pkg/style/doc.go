// Package style manages a document's stylesheet rules by selector.
//
// A Store looks up rules by exact selector text in the document's first
// stylesheet, creating the stylesheet and the rule on first use. Setters
// merge: properties not named in a later call keep their earlier values.
// A nil or empty value clears a property.
//
//	store := style.NewStore(doc)
//	_ = store.ClassStyle("card", style.Decls{"color": "red"})
//	_ = store.ClassStyle("card", style.Decls{"fontSize": "2em"})
//	// .card { color: red; font-size: 2em; }
package style
