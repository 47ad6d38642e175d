package match

import "github.com/katalvlaran/cpsel/core"

// DuplicateAmbiguousBlocks implements spec §4.4's duplication pre-pass.
//
// A definition-placement edge between a block and an operation node runs
// operation-to-block (the operation is placed in that block); a
// definition-placement edge between a block and a value/state node runs
// block-to-entity (the value's definition is placed in that block) — the
// two orientations the glossary's "vice-versa, with endpoint orientation
// determined by the node kinds" allows for. A block with both kinds of
// edge therefore plays two roles the VF2 search cannot assign to one
// function-graph node instance, since a function node is used by at most
// one pattern node per match: it is replicated into two instances
// sharing its public ID, one keeping the incoming (operation-side)
// edges, the other the outgoing (entity-side) ones, with every other
// incident edge mirrored onto both so either instance still matches a
// pattern block the way the undivided block would have.
//
// Because NodeMatch.Pairs names function nodes by public NodeID, a match
// against either replica already reports the original block's ID — no
// separate "rewrite mappings back to the original" step is needed.
func DuplicateAmbiguousBlocks(g *core.Graph) *core.Graph {
	for _, b := range g.Nodes() {
		if b.Kind != core.KindBlock {
			continue
		}
		if len(g.InEdges(b, core.DefPlacement)) == 0 || len(g.OutEdges(b, core.DefPlacement)) == 0 {
			continue
		}
		var dup core.Node
		dup, g = g.DuplicateNode(b)
		g = mirrorNonDefPlacementEdges(g, b, dup)
		g = g.RedirectOutEdges(b, dup, core.DefPlacement)
	}
	return g
}

func mirrorNonDefPlacementEdges(g *core.Graph, b, dup core.Node) *core.Graph {
	for _, kind := range [...]core.EdgeKind{core.DataFlow, core.ControlFlow, core.StateFlow, core.EdgeReuse} {
		for _, e := range g.OutEdges(b, kind) {
			_, g = g.AddEdge(kind, dup, e.Dst)
		}
		for _, e := range g.InEdges(b, kind) {
			_, g = g.AddEdge(kind, e.Src, dup)
		}
	}
	return g
}
