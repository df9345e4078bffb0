// Package extract implements site-adaptive conversation extraction over the
// chatlens.Node capability interface. It has no HTML or browser dependency;
// callers supply pages from goquery or any other Node implementation.
package extract

import "github.com/fwojciec/chatlens"

// Cascade is an ordered list of selector tiers, most specific first.
// Markup drifts between site releases, so later tiers cover older or
// alternate layouts.
type Cascade []string

// Select returns the matches of the first tier that matches at least one
// node, along with that tier's index. Results from different tiers are never
// merged. It returns (nil, -1) when no tier matches.
func (c Cascade) Select(root chatlens.Node) ([]chatlens.Node, int) {
	for i, pattern := range c {
		if nodes := root.Find(pattern); len(nodes) > 0 {
			return nodes, i
		}
	}
	return nil, -1
}

// firstMatch returns the first descendant matching any pattern in order,
// or fallback when none match.
func firstMatch(n chatlens.Node, fallback chatlens.Node, patterns ...string) chatlens.Node {
	for _, p := range patterns {
		if nodes := n.Find(p); len(nodes) > 0 {
			return nodes[0]
		}
	}
	return fallback
}

// errNoRoot is returned by strategies invoked without a document.
func errNoRoot() error {
	return chatlens.Errorf(chatlens.EINTERNAL, "page structure unavailable")
}
