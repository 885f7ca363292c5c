package dom

import (
	"weak"

	"golang.org/x/net/html"
)

// Wrappers live in one map per tree. The connected tree uses
// Document.nodes. A detached tree keeps its map on the wrapper of its root,
// which the document only references weakly, so a subtree nobody holds is
// collected with its wrappers.

const minSweep = 64

// wrap returns the unique Node for n.
func (d *Document) wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	m := d.tree(n)
	if w, ok := m[n]; ok {
		return w
	}
	w := &Node{doc: d, n: n}
	if m == nil {
		// first wrapper in this detached tree
		top := topOf(n)
		if top != n {
			m = d.wrap(top).sub
			m[n] = w
			return w
		}
		w.sub = map[*html.Node]*Node{n: w}
		d.track(w)
		return w
	}
	m[n] = w
	return w
}

// tree returns the wrapper map of the tree holding n, or nil when that tree
// has none yet.
func (d *Document) tree(n *html.Node) map[*html.Node]*Node {
	top := topOf(n)
	if top == d.root {
		return d.nodes
	}
	if p, ok := d.detached[top]; ok {
		if w := p.Value(); w != nil {
			return w.sub
		}
		delete(d.detached, top)
	}
	return nil
}

// store is tree, creating the map when missing.
func (d *Document) store(n *html.Node) map[*html.Node]*Node {
	if m := d.tree(n); m != nil {
		return m
	}
	return d.wrap(topOf(n)).sub
}

func (d *Document) track(root *Node) {
	d.detached[root.n] = weak.Make(root)
	if len(d.detached) < d.sweepAt {
		return
	}
	for n, p := range d.detached {
		if p.Value() == nil {
			delete(d.detached, n)
		}
	}
	d.sweepAt = max(minSweep, 2*len(d.detached))
}

// adopt moves the wrappers of child's subtree into its new tree. oldTop
// and from describe the tree it was in before the move.
func (d *Document) adopt(child *Node, oldTop *html.Node, from map[*html.Node]*Node) {
	h := child.n
	if topOf(h) == oldTop {
		return
	}
	if oldTop == h {
		delete(d.detached, h)
	}
	to := d.store(h)
	walk(h, func(x *html.Node) bool {
		if w, ok := from[x]; ok {
			delete(from, x)
			to[x] = w
		}
		return true
	})
	to[h] = child
	child.sub = nil
}

// release runs after h left the tree whose map is from. The wrappers of
// its subtree move to h's own wrapper, or are dropped when h has none.
func (d *Document) release(h *html.Node, from map[*html.Node]*Node) {
	if from == nil {
		return
	}
	root := from[h]
	var sub map[*html.Node]*Node
	if root != nil {
		sub = make(map[*html.Node]*Node)
	}
	walk(h, func(x *html.Node) bool {
		if w, ok := from[x]; ok {
			delete(from, x)
			if sub != nil {
				sub[x] = w
			}
		}
		return true
	})
	if root != nil {
		root.sub = sub
		d.track(root)
	}
}

func topOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
