package dom

import (
	"fmt"

	selcss "github.com/ericchiang/css"
)

// QuerySelector returns the first descendant of n matching selector, or nil.
func (n *Node) QuerySelector(selector string) (*Node, error) {
	all, err := n.QuerySelectorAll(selector)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// QuerySelectorAll returns every descendant of n matching selector in
// document order. n itself is never included.
func (n *Node) QuerySelectorAll(selector string) ([]*Node, error) {
	sel, err := selcss.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, selector, err)
	}
	var out []*Node
	for _, m := range sel.Select(n.n) {
		if m == n.n {
			continue
		}
		out = append(out, n.doc.wrap(m))
	}
	return out, nil
}
