package router

import (
	"strings"

	"github.com/dmitrymomot/linkrouter/core/pattern"
)

// Match is the result of matching an address against the registry.
type Match struct {
	// Pattern is the raw pattern string of the winning route.
	Pattern string

	// Variables holds each named variable bound to its decoded segment.
	Variables map[string]string

	// PathToEnd is the decoded tail captured by a rest wildcard.
	PathToEnd string

	// HasTail is true when the winning pattern ends with a rest wildcard,
	// even if the tail is empty.
	HasTail bool
}

// Match resolves rawURL to the most specific registered route without running
// the interception pipeline or any handler.
func (r *Router) Match(rawURL string) (Match, bool) {
	addr, err := pattern.ParseAddress(rawURL)
	if err != nil {
		return Match{}, false
	}
	_, m, ok := r.lookup(addr)
	return m, ok
}

// lookup finds the winning route for addr under the read lock.
// The returned route is immutable and safe to use after the lock is released.
func (r *Router) lookup(addr pattern.Address) (*route, Match, bool) {
	r.mu.RLock()
	var cands []candidate
	if addr.Scheme != "" {
		if root := r.trees[addr.Scheme]; root != nil {
			cands = root.collect(addr.Segments, 0, make([]uint8, 0, len(addr.Segments)+1), cands)
		}
	}
	if root := r.trees[""]; root != nil {
		cands = root.collect(addr.Segments, 0, make([]uint8, 0, len(addr.Segments)+1), cands)
	}
	r.mu.RUnlock()

	c, ok := best(cands)
	if !ok {
		return nil, Match{}, false
	}
	return c.route, bind(c.route.pattern, addr), true
}

// bind extracts variables and the rest tail of addr for p.
func bind(p *pattern.Pattern, addr pattern.Address) Match {
	m := Match{Pattern: p.String()}
	for i, seg := range p.Segments() {
		switch seg.Kind {
		case pattern.Variable:
			if m.Variables == nil {
				m.Variables = make(map[string]string)
			}
			m.Variables[seg.Value] = addr.Segments[i]
		case pattern.Rest:
			m.HasTail = true
			m.PathToEnd = pattern.Unescape(strings.Join(addr.RawSegments[i:], "/"))
		}
	}
	return m
}
