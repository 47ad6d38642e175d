package match

import "github.com/katalvlaran/cpsel/core"

// vf2State holds the current partial mapping of a VF2 search: the
// ordered pair list, both instance-key-indexed directions of the
// mapping, and a per-side lookup from instance key back to Node, all keyed
// by Node.InstanceKey (Node itself is not comparable: NodeLabel.Origin is
// a slice).
type vf2State struct {
	fg, pg *core.Graph

	pairs []Pair

	f2p map[uint64]uint64
	p2f map[uint64]uint64

	fNodeByKey map[uint64]core.Node
	pNodeByKey map[uint64]core.Node
}

func newVF2State(fg, pg *core.Graph) *vf2State {
	st := &vf2State{
		fg: fg, pg: pg,
		f2p:        map[uint64]uint64{},
		p2f:        map[uint64]uint64{},
		fNodeByKey: map[uint64]core.Node{},
		pNodeByKey: map[uint64]core.Node{},
	}
	for _, n := range fg.Nodes() {
		st.fNodeByKey[n.InstanceKey()] = n
	}
	for _, n := range pg.Nodes() {
		st.pNodeByKey[n.InstanceKey()] = n
	}
	return st
}

func (st *vf2State) push(fn, pn core.Node) {
	st.pairs = append(st.pairs, Pair{FunctionNode: fn.ID, PatternNode: pn.ID})
	st.f2p[fn.InstanceKey()] = pn.InstanceKey()
	st.p2f[pn.InstanceKey()] = fn.InstanceKey()
}

func (st *vf2State) pop(fn, pn core.Node) {
	st.pairs = st.pairs[:len(st.pairs)-1]
	delete(st.f2p, fn.InstanceKey())
	delete(st.p2f, pn.InstanceKey())
}

func (st *vf2State) isPatternMapped(n core.Node) bool {
	_, ok := st.p2f[n.InstanceKey()]
	return ok
}

func (st *vf2State) isFunctionMapped(n core.Node) bool {
	_, ok := st.f2p[n.InstanceKey()]
	return ok
}

func (st *vf2State) functionImageOf(pn core.Node) (core.Node, bool) {
	fk, ok := st.p2f[pn.InstanceKey()]
	if !ok {
		return core.Node{}, false
	}
	return st.fNodeByKey[fk], true
}

func (st *vf2State) toMatch() NodeMatch {
	return NodeMatch{Pairs: append([]Pair(nil), st.pairs...)}
}

// FindMatches enumerates every node-level subgraph-isomorphic embedding
// of pg into fg (spec §4.4's VF2 core, before the duplication pre-pass,
// cyclic-dependency post-filter, and duplicate removal that package-level
// FindPatternMatches layers on top).
func FindMatches(fg, pg *core.Graph) []NodeMatch {
	patternNodes := pg.Nodes()
	if len(patternNodes) == 0 {
		return nil
	}
	st := newVF2State(fg, pg)
	var results []NodeMatch
	vf2Search(st, &results)
	return results
}

func vf2Search(st *vf2State, out *[]NodeMatch) {
	if len(st.pairs) == len(st.pg.Nodes()) {
		*out = append(*out, st.toMatch())
		return
	}
	pn, ok := nextPatternCandidate(st)
	if !ok {
		return
	}
	for _, fn := range candidateFunctionNodes(st, pn) {
		if st.isFunctionMapped(fn) {
			continue
		}
		if !feasible(st, fn, pn) {
			continue
		}
		st.push(fn, pn)
		vf2Search(st, out)
		st.pop(fn, pn)
	}
}

// nextPatternCandidate picks the next pattern node to extend the mapping
// with: one adjacent (by any edge kind, either direction) to the current
// frontier if one exists, else any remaining unmapped operation or block
// node (spec §4.4's P_D filter), else — only to guarantee the search
// still terminates over a pattern with isolated value/state components —
// any remaining unmapped node at all.
func nextPatternCandidate(st *vf2State) (core.Node, bool) {
	var adjacent, operationOrBlock, any core.Node
	haveAdjacent, haveOpBlock, haveAny := false, false, false

	for _, pn := range st.pg.Nodes() {
		if st.isPatternMapped(pn) {
			continue
		}
		if !haveAny {
			any = pn
			haveAny = true
		}
		if !haveOpBlock && (pn.Kind.IsOperation() || pn.Kind == core.KindBlock) {
			operationOrBlock = pn
			haveOpBlock = true
		}
		if !haveAdjacent && isAdjacentToMapped(st, pn) {
			adjacent = pn
			haveAdjacent = true
		}
	}
	switch {
	case haveAdjacent:
		return adjacent, true
	case haveOpBlock:
		return operationOrBlock, true
	case haveAny:
		return any, true
	default:
		return core.Node{}, false
	}
}

func isAdjacentToMapped(st *vf2State, pn core.Node) bool {
	for _, nb := range st.pg.BothNeighbours(pn) {
		if st.isPatternMapped(nb) {
			return true
		}
	}
	return false
}

// candidateFunctionNodes lists the function nodes a search should try for
// pn: if pn has a mapped pattern-side neighbor, the function images of
// that neighbor's function-side neighbors (restricting the branching
// factor to structurally plausible candidates); otherwise every function
// node. Kind compatibility is left to feasible.
func candidateFunctionNodes(st *vf2State, pn core.Node) []core.Node {
	for _, pnb := range st.pg.BothNeighbours(pn) {
		if !st.isPatternMapped(pnb) {
			continue
		}
		fImage, ok := st.functionImageOf(pnb)
		if !ok {
			continue
		}
		return st.fg.BothNeighbours(fImage)
	}
	return st.fg.Nodes()
}

// feasible implements the combined node-compatibility, edge-ordering, and
// partial-mapping-consistency test of spec §4.4. The "pred"/"succ"
// consistency check is pattern-side only, per the spec's explicit
// departure from the VF2 paper (the function graph may carry extra edges
// absent from the pattern).
func feasible(st *vf2State, fn, pn core.Node) bool {
	if !doNodesMatch(st.fg, st.pg, fn, pn) {
		return false
	}
	if !doEdgesMatch(st.fg, st.pg, fn, pn) {
		return false
	}
	return consistentWithMappedNeighbors(st, fn, pn)
}

// consistentWithMappedNeighbors checks pn's already-mapped pattern-side
// neighbors against fn: an edge must exist on the function side to the
// mapped neighbor's function image, and where edgeOrderMatters says
// order matters for (pn's kind, this edge kind, direction), or for the
// neighbor's kind at the other end of the edge, the specific edge number
// at that end must agree too — otherwise the swapped-operand case
// compat.go's do_edges_match is meant to reject (e.g. a non-commutative
// operator's two operands) would slip through once both operands are
// individually mapped.
func consistentWithMappedNeighbors(st *vf2State, fn, pn core.Node) bool {
	pIsIntermediate := isIntermediateBlock(st.pg, pn)
	for _, kind := range [...]core.EdgeKind{core.DataFlow, core.ControlFlow, core.StateFlow, core.DefPlacement, core.EdgeReuse} {
		outOrders := edgeOrderMatters(pn, pIsIntermediate, kind, true)
		inOrders := edgeOrderMatters(pn, pIsIntermediate, kind, false)
		for _, e := range st.pg.OutEdges(pn, kind) {
			fImage, ok := st.functionImageOf(e.Dst)
			if !ok {
				continue
			}
			if outOrders {
				if !hasEdgeWithOutNumber(st.fg, fn, fImage, kind, e.OutNumber) {
					return false
				}
			} else if !hasEdge(st.fg, fn, fImage, kind) {
				return false
			}
			if edgeOrderMatters(e.Dst, isIntermediateBlock(st.pg, e.Dst), kind, false) &&
				!hasEdgeWithInNumber(st.fg, fn, fImage, kind, e.InNumber) {
				return false
			}
		}
		for _, e := range st.pg.InEdges(pn, kind) {
			fImage, ok := st.functionImageOf(e.Src)
			if !ok {
				continue
			}
			if inOrders {
				if !hasEdgeWithInNumber(st.fg, fImage, fn, kind, e.InNumber) {
					return false
				}
			} else if !hasEdge(st.fg, fImage, fn, kind) {
				return false
			}
			if edgeOrderMatters(e.Src, isIntermediateBlock(st.pg, e.Src), kind, true) &&
				!hasEdgeWithOutNumber(st.fg, fImage, fn, kind, e.OutNumber) {
				return false
			}
		}
	}
	return true
}

func hasEdge(g *core.Graph, src, dst core.Node, kind core.EdgeKind) bool {
	for _, e := range g.OutEdges(src, kind) {
		if e.Dst.InstanceKey() == dst.InstanceKey() {
			return true
		}
	}
	return false
}

func hasEdgeWithOutNumber(g *core.Graph, src, dst core.Node, kind core.EdgeKind, outNumber int) bool {
	for _, e := range g.OutEdges(src, kind) {
		if e.Dst.InstanceKey() == dst.InstanceKey() && e.OutNumber == outNumber {
			return true
		}
	}
	return false
}

func hasEdgeWithInNumber(g *core.Graph, src, dst core.Node, kind core.EdgeKind, inNumber int) bool {
	for _, e := range g.OutEdges(src, kind) {
		if e.Dst.InstanceKey() == dst.InstanceKey() && e.InNumber == inNumber {
			return true
		}
	}
	return false
}
