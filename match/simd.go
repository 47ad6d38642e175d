package match

import "github.com/katalvlaran/cpsel/core"

// findSIMDMatches implements spec §4.4's SIMD pattern composition: pg's
// weakly connected components are each a copy of one scalar pattern.
// The first component (by lowest pattern node ID) is matched against fg
// as an ordinary pattern, yielding scalar matches S; a structural
// correspondence from the first component's pattern node IDs to every
// other component's is obtained by reusing FindMatches itself, treating
// one component as the "function" graph and the first as the "pattern"
// graph (the components are copies of one another, so this is itself a
// subgraph-isomorphism problem). Every k-combination of S with no two
// members cyclically data-dependent becomes one SIMD match, each
// member's pattern-side IDs translated into its assigned component.
func findSIMDMatches(fg, pg *core.Graph) []NodeMatch {
	components := sortedComponentsByMinNodeID(pg.WeaklyConnectedComponents(pg.Nodes()))
	k := len(components)
	if k <= 1 {
		return FindMatches(fg, pg)
	}

	pg0 := pg.ExtractSubgraph(components[0])
	scalarMatches := FindMatches(fg, pg0)
	if len(scalarMatches) == 0 {
		return nil
	}

	correspondences := make([]map[core.NodeID]core.NodeID, k)
	for i := 1; i < k; i++ {
		compGraph := pg.ExtractSubgraph(components[i])
		local := FindMatches(compGraph, pg0)
		if len(local) == 0 {
			// Components aren't actually structural copies of each
			// other; the instruction's pattern is malformed for SIMD
			// composition, so no match can be composed.
			return nil
		}
		corr := make(map[core.NodeID]core.NodeID, len(local[0].Pairs))
		for _, p := range local[0].Pairs {
			corr[p.PatternNode] = p.FunctionNode
		}
		correspondences[i] = corr
	}

	fullSSA := core.ExtractSSA(fg)
	var out []NodeMatch
	forEachCombination(scalarMatches, k, func(combo []NodeMatch) {
		if anyPairCyclicallyDependent(fullSSA, combo) {
			return
		}
		var pairs []Pair
		for i, s := range combo {
			for _, p := range s.Pairs {
				pn := p.PatternNode
				if i > 0 {
					pn = correspondences[i][pn]
				}
				pairs = append(pairs, Pair{FunctionNode: p.FunctionNode, PatternNode: pn})
			}
		}
		out = append(out, NodeMatch{Pairs: pairs})
	})
	return out
}

func sortedComponentsByMinNodeID(components [][]core.Node) [][]core.Node {
	minID := func(comp []core.Node) core.NodeID {
		m := comp[0].ID
		for _, n := range comp[1:] {
			if n.ID < m {
				m = n.ID
			}
		}
		return m
	}
	sorted := append([][]core.Node(nil), components...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && minID(sorted[j-1]) > minID(sorted[j]); j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return sorted
}

// forEachCombination calls visit once for every k-element combination of
// items, in index order.
func forEachCombination(items []NodeMatch, k int, visit func([]NodeMatch)) {
	if k > len(items) {
		return
	}
	chosen := make([]NodeMatch, 0, k)
	var rec func(start int)
	rec = func(start int) {
		if len(chosen) == k {
			visit(chosen)
			return
		}
		for i := start; i < len(items); i++ {
			chosen = append(chosen, items[i])
			rec(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	rec(0)
}

func anyPairCyclicallyDependent(fullSSA *core.Graph, combo []NodeMatch) bool {
	for i := 0; i < len(combo); i++ {
		for j := i + 1; j < len(combo); j++ {
			if pairwiseCyclicallyDependent(fullSSA, combo[i], combo[j]) {
				return true
			}
		}
	}
	return false
}

// pairwiseCyclicallyDependent reports whether a and b's function-node
// sets reach each other in fullSSA (a genuine cycle between the two
// scalar matches). SIMD k-combinations are filtered by this relation; it
// is computed on demand for each pair, not precomputed.
func pairwiseCyclicallyDependent(fullSSA *core.Graph, a, b NodeMatch) bool {
	aIDs := a.FunctionNodeSet()
	bIDs := b.FunctionNodeSet()
	return setReaches(fullSSA, aIDs, bIDs) && setReaches(fullSSA, bIDs, aIDs)
}

func setReaches(fullSSA *core.Graph, from, to map[core.NodeID]struct{}) bool {
	visited := map[core.NodeID]bool{}
	var stack []core.Node
	for _, n := range fullSSA.Nodes() {
		if _, ok := from[n.ID]; ok {
			stack = append(stack, n)
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n.ID] {
			continue
		}
		visited[n.ID] = true
		if _, ok := to[n.ID]; ok {
			if _, inFrom := from[n.ID]; !inFrom {
				return true
			}
		}
		for _, succ := range fullSSA.OutNeighbours(n) {
			if !visited[succ.ID] {
				stack = append(stack, succ)
			}
		}
	}
	return false
}

// simdSelectable implements spec §4.4's SIMD selectability filter. For
// each operation m covers (per pg's node kinds), it computes a legal
// block set by intersecting the dominators of the blocks defining the
// operation's inputs with the dominatees of the blocks that use its
// output, then intersects those sets across every operation in the
// match. Input-side recursion looks through Phi operations to their own
// inputs ("skipping phi barriers"); output-side consumers are taken at
// face value, a narrower reading of "upward through the SSA graph" that
// stays correct (it can only shrink the legal set, never wrongly grow
// it) while avoiding unbounded recursion through phi fan-out.
func simdSelectable(fg, pg *core.Graph, m NodeMatch) bool {
	cfg := core.ExtractCFG(fg)
	dom := core.DomSets(cfg)
	domtees := dominateeSets(dom)

	var perOperation []map[core.NodeID]struct{}
	for _, p := range m.Pairs {
		pn, ok := findNodeByID(pg, p.PatternNode)
		if !ok || !pn.Kind.IsOperation() {
			continue
		}
		fn, ok := findNodeByID(fg, p.FunctionNode)
		if !ok {
			continue
		}
		legal := legalBlocksForOperation(fg, dom, domtees, fn)
		if legal == nil {
			continue
		}
		perOperation = append(perOperation, legal)
	}
	if len(perOperation) == 0 {
		return true
	}
	inter := perOperation[0]
	for _, s := range perOperation[1:] {
		inter = intersectNodeIDSets(inter, s)
		if len(inter) == 0 {
			return false
		}
	}
	return len(inter) > 0
}

func findNodeByID(g *core.Graph, id core.NodeID) (core.Node, bool) {
	for _, n := range g.Nodes() {
		if n.ID == id {
			return n, true
		}
	}
	return core.Node{}, false
}

func dominateeSets(dom map[core.NodeID]map[core.NodeID]struct{}) map[core.NodeID]map[core.NodeID]struct{} {
	out := make(map[core.NodeID]map[core.NodeID]struct{}, len(dom))
	for b := range dom {
		out[b] = map[core.NodeID]struct{}{}
	}
	for b, doms := range dom {
		for d := range doms {
			out[d][b] = struct{}{}
		}
	}
	return out
}

func intersectNodeIDSets(a, b map[core.NodeID]struct{}) map[core.NodeID]struct{} {
	out := make(map[core.NodeID]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func blockOfOperation(fg *core.Graph, op core.Node) (core.Node, bool) {
	for _, b := range fg.OutNeighbours(op, core.DefPlacement) {
		return b, true
	}
	return core.Node{}, false
}

func definingBlocksOf(fg *core.Graph, op core.Node, seen map[uint64]bool) map[core.NodeID]struct{} {
	if seen[op.InstanceKey()] {
		return map[core.NodeID]struct{}{}
	}
	seen[op.InstanceKey()] = true

	if op.Kind != core.KindPhi {
		out := map[core.NodeID]struct{}{}
		if b, ok := blockOfOperation(fg, op); ok {
			out[b.ID] = struct{}{}
		}
		return out
	}
	out := map[core.NodeID]struct{}{}
	for _, v := range fg.InNeighbours(op, core.DataFlow) {
		for _, definer := range fg.InNeighbours(v, core.DataFlow) {
			for id := range definingBlocksOf(fg, definer, seen) {
				out[id] = struct{}{}
			}
		}
	}
	return out
}

func legalBlocksForOperation(fg *core.Graph, dom, domtees map[core.NodeID]map[core.NodeID]struct{}, op core.Node) map[core.NodeID]struct{} {
	inputBlocks := map[core.NodeID]struct{}{}
	for _, v := range fg.InNeighbours(op, core.DataFlow) {
		for _, definer := range fg.InNeighbours(v, core.DataFlow) {
			for id := range definingBlocksOf(fg, definer, map[uint64]bool{}) {
				inputBlocks[id] = struct{}{}
			}
		}
	}
	useBlocks := map[core.NodeID]struct{}{}
	for _, v := range fg.OutNeighbours(op, core.DataFlow) {
		for _, user := range fg.OutNeighbours(v, core.DataFlow) {
			if b, ok := blockOfOperation(fg, user); ok {
				useBlocks[b.ID] = struct{}{}
			}
		}
	}
	if len(inputBlocks) == 0 && len(useBlocks) == 0 {
		return nil
	}

	domUnion := map[core.NodeID]struct{}{}
	for b := range inputBlocks {
		for d := range dom[b] {
			domUnion[d] = struct{}{}
		}
	}
	domteeUnion := map[core.NodeID]struct{}{}
	for b := range useBlocks {
		for d := range domtees[b] {
			domteeUnion[d] = struct{}{}
		}
	}
	switch {
	case len(inputBlocks) == 0:
		return domteeUnion
	case len(useBlocks) == 0:
		return domUnion
	default:
		return intersectNodeIDSets(domUnion, domteeUnion)
	}
}
