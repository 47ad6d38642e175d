package match

import "github.com/katalvlaran/cpsel/core"

// Pair is one {function-node, pattern-node} correspondence of a Match.
type Pair struct {
	FunctionNode core.NodeID
	PatternNode  core.NodeID
}

// NodeMatch is the bare node-level mapping VF2 produces: an ordered list
// of pairs such that every pattern node occurs exactly once (spec §4.4's
// "Match (C4)" data shape, before an instruction/pattern ID is attached).
type NodeMatch struct {
	Pairs []Pair
}

// FunctionNodeFor implements constraint.PatternNodeMapper: it maps a
// pattern-local node identifier to the function node this match binds it
// to.
func (m NodeMatch) FunctionNodeFor(patternNode core.NodeID) (core.NodeID, bool) {
	for _, p := range m.Pairs {
		if p.PatternNode == patternNode {
			return p.FunctionNode, true
		}
	}
	return 0, false
}

// FunctionNodeSet returns the distinct function-node IDs covered by m, as
// a set, for duplicate-match comparison and the cyclic-dependency
// post-filter.
func (m NodeMatch) FunctionNodeSet() map[core.NodeID]struct{} {
	out := make(map[core.NodeID]struct{}, len(m.Pairs))
	for _, p := range m.Pairs {
		out[p.FunctionNode] = struct{}{}
	}
	return out
}

// PatternMatch is the matcher's final output element (spec §4.4): a
// node-level match bound to the instruction and pattern it matched,
// plus its densely assigned match ID.
type PatternMatch struct {
	InstrID   core.InstrID
	PatternID core.PatternID
	MatchID   core.MatchID
	NodeMatch NodeMatch
}
