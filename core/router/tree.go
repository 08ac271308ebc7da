package router

import (
	"slices"

	"github.com/dmitrymomot/linkrouter/core/pattern"
)

// Segment ranks used to compare candidates position by position.
// A pattern that ends exactly where the address ends outranks one whose
// rest wildcard matches nothing.
const (
	rankRest    uint8 = 1
	rankVar     uint8 = 2
	rankLiteral uint8 = 3
	rankEnd     uint8 = 4
)

// node is one segment of the per-scheme route trie.
type node struct {
	// static children keyed by literal text
	children map[string]*node

	// varChild matches any single segment (:name)
	varChild *node

	// restChild matches the remaining segments, zero or more
	restChild *node

	// routes whose pattern ends at this node; several patterns can share a
	// shape (a/:id and a/:name) and stay separate entries
	routes []*route
}

func newNode() *node {
	return &node{}
}

// insert walks or creates the path for segs and stores rt at its end.
func (n *node) insert(segs []pattern.Segment, rt *route) {
	cur := n
	for _, seg := range segs {
		cur = cur.child(seg, true)
	}
	cur.routes = append(cur.routes, rt)
}

// child returns the child for seg, creating it when create is set.
func (n *node) child(seg pattern.Segment, create bool) *node {
	switch seg.Kind {
	case pattern.Variable:
		if n.varChild == nil && create {
			n.varChild = newNode()
		}
		return n.varChild
	case pattern.Rest:
		if n.restChild == nil && create {
			n.restChild = newNode()
		}
		return n.restChild
	default:
		c := n.children[seg.Value]
		if c == nil && create {
			if n.children == nil {
				n.children = make(map[string]*node)
			}
			c = newNode()
			n.children[seg.Value] = c
		}
		return c
	}
}

// remove deletes the route registered as raw under segs and prunes branches
// left empty. It reports whether n itself is now empty.
func (n *node) remove(segs []pattern.Segment, raw string) bool {
	if len(segs) == 0 {
		n.routes = slices.DeleteFunc(n.routes, func(rt *route) bool {
			return rt.pattern.String() == raw
		})
		return n.empty()
	}

	c := n.child(segs[0], false)
	if c == nil {
		return n.empty()
	}
	if c.remove(segs[1:], raw) {
		switch segs[0].Kind {
		case pattern.Variable:
			n.varChild = nil
		case pattern.Rest:
			n.restChild = nil
		default:
			delete(n.children, segs[0].Value)
		}
	}
	return n.empty()
}

func (n *node) empty() bool {
	return len(n.routes) == 0 && len(n.children) == 0 && n.varChild == nil && n.restChild == nil
}

// candidate is a route compatible with an address together with its rank vector.
type candidate struct {
	route *route
	ranks []uint8
}

// collect appends every route compatible with segs to out. Each rank vector
// has len(segs)+1 entries: one per address segment and one for the end.
func (n *node) collect(segs []string, i int, ranks []uint8, out []candidate) []candidate {
	if i == len(segs) {
		for _, rt := range n.routes {
			out = append(out, candidate{route: rt, ranks: withRanks(ranks, rankEnd, 1)})
		}
	} else {
		if c := n.children[segs[i]]; c != nil {
			out = c.collect(segs, i+1, append(ranks, rankLiteral), out)
		}
		if n.varChild != nil {
			out = n.varChild.collect(segs, i+1, append(ranks, rankVar), out)
		}
	}

	// the rest wildcard covers positions i..len(segs)-1 and the end marker
	if n.restChild != nil {
		for _, rt := range n.restChild.routes {
			out = append(out, candidate{route: rt, ranks: withRanks(ranks, rankRest, len(segs)-i+1)})
		}
	}
	return out
}

// withRanks copies ranks and appends count copies of r.
func withRanks(ranks []uint8, r uint8, count int) []uint8 {
	out := make([]uint8, len(ranks), len(ranks)+count)
	copy(out, ranks)
	for range count {
		out = append(out, r)
	}
	return out
}

// better reports whether a is more specific than b: higher rank at the first
// differing position, then more leading literals, then scheme-specific over
// scheme-less, then the most recent registration. The scheme rule comes
// before recency, so an older app://a/:id still beats a newer a/:x.
func better(a, b candidate) bool {
	if c := slices.Compare(a.ranks, b.ranks); c != 0 {
		return c > 0
	}
	if la, lb := a.route.pattern.LeadingLiterals(), b.route.pattern.LeadingLiterals(); la != lb {
		return la > lb
	}
	if sa, sb := a.route.pattern.Scheme() != "", b.route.pattern.Scheme() != ""; sa != sb {
		return sa
	}
	return a.route.seq > b.route.seq
}

// best returns the most specific candidate.
func best(cands []candidate) (candidate, bool) {
	if len(cands) == 0 {
		return candidate{}, false
	}
	top := cands[0]
	for _, c := range cands[1:] {
		if better(c, top) {
			top = c
		}
	}
	return top, true
}
