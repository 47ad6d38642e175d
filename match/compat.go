package match

import "github.com/katalvlaran/cpsel/core"

// commutativeOps names computation operators whose two data-flow operands
// may appear in either order. Used by the DF-in edge-ordering table
// (§4.4: "non-commutative only" for Computation's DF-in ordering).
var commutativeOps = map[string]bool{
	"add": true,
	"mul": true,
	"or":  true,
	"and": true,
	"XOr": true,
}

// IsCommutative reports whether op is known to be commutative.
func IsCommutative(op string) bool { return commutativeOps[op] }

// doNodesMatch is do_nodes_match(fg, pg, fn, pn) of spec §4.4: node kinds
// must be pairwise compatible, then edge-count compatibility is checked
// for every edge kind that matters at pn's node kind.
func doNodesMatch(fg, pg *core.Graph, fn, pn core.Node) bool {
	if !kindsCompatible(fn, pn) {
		return false
	}
	return edgeCountsCompatible(fg, pg, fn, pn)
}

func kindsCompatible(fn, pn core.Node) bool {
	switch pn.Kind {
	case core.KindComputation:
		return fn.Kind == core.KindComputation && fn.Label.Op == pn.Label.Op
	case core.KindControl:
		return fn.Kind == core.KindControl && fn.Label.Op == pn.Label.Op
	case core.KindCall:
		return fn.Kind == core.KindCall
	case core.KindValue:
		return fn.Kind == core.KindValue && pn.Label.DataType.CompatibleWith(fn.Label.DataType)
	case core.KindBlock:
		return fn.Kind == core.KindBlock
	default:
		// Phi, IndirCall, State, Copy, Reuse: match only their own kind.
		return fn.Kind == pn.Kind
	}
}

// edgeCountMatters reports whether edge-count compatibility is checked
// for (node kind, edge kind, direction) on the pattern side, per the
// table in spec §4.4.
func edgeCountMatters(kind core.NodeKind, isIntermediateBlock bool, edgeKind core.EdgeKind, out bool) bool {
	switch kind {
	case core.KindComputation:
		return true
	case core.KindControl:
		switch edgeKind {
		case core.ControlFlow:
			return true
		case core.DataFlow:
			return !out
		default:
			return false
		}
	case core.KindBlock:
		return isIntermediateBlock && edgeKind == core.ControlFlow
	default:
		return false
	}
}

func isIntermediateBlock(g *core.Graph, n core.Node) bool {
	if n.Kind != core.KindBlock {
		return false
	}
	hasControlIn := false
	for _, pred := range g.InNeighbours(n, core.ControlFlow) {
		if pred.Kind == core.KindControl {
			hasControlIn = true
			break
		}
	}
	hasControlOut := false
	for _, succ := range g.OutNeighbours(n, core.ControlFlow) {
		if succ.Kind == core.KindControl {
			hasControlOut = true
			break
		}
	}
	return hasControlIn && hasControlOut
}

func distinctEdgeNumbers(edges []core.Edge, out bool) int {
	seen := make(map[int]struct{}, len(edges))
	for _, e := range edges {
		if out {
			seen[e.OutNumber] = struct{}{}
		} else {
			seen[e.InNumber] = struct{}{}
		}
	}
	return len(seen)
}

func edgeCountsCompatible(fg, pg *core.Graph, fn, pn core.Node) bool {
	pIsIntermediate := isIntermediateBlock(pg, pn)
	for _, ek := range [...]core.EdgeKind{core.DataFlow, core.ControlFlow, core.StateFlow} {
		if edgeCountMatters(pn.Kind, pIsIntermediate, ek, true) {
			if distinctEdgeNumbers(pg.OutEdges(pn, ek), true) != distinctEdgeNumbers(fg.OutEdges(fn, ek), true) {
				return false
			}
		}
		if edgeCountMatters(pn.Kind, pIsIntermediate, ek, false) {
			if distinctEdgeNumbers(pg.InEdges(pn, ek), false) != distinctEdgeNumbers(fg.InEdges(fn, ek), false) {
				return false
			}
		}
	}
	return true
}

// edgeOrderMatters reports whether the sorted edge-number multiset must
// match exactly (as opposed to merely the count), per the ordering table
// in spec §4.4.
func edgeOrderMatters(pn core.Node, isIntermediate bool, edgeKind core.EdgeKind, out bool) bool {
	switch pn.Kind {
	case core.KindBlock:
		return isIntermediate && edgeKind == core.ControlFlow && !out
	case core.KindControl:
		return edgeKind == core.ControlFlow && out || edgeKind == core.DataFlow && !out
	case core.KindComputation:
		if edgeKind != core.DataFlow {
			return false
		}
		if out {
			return true
		}
		return !IsCommutative(pn.Label.Op)
	case core.KindPhi:
		return edgeKind == core.DataFlow && !out
	default:
		return false
	}
}

func sortedNumbers(edges []core.Edge, out bool) []int {
	nums := make([]int, len(edges))
	for i, e := range edges {
		if out {
			nums[i] = e.OutNumber
		} else {
			nums[i] = e.InNumber
		}
	}
	for i := 1; i < len(nums); i++ {
		for j := i; j > 0 && nums[j-1] > nums[j]; j-- {
			nums[j-1], nums[j] = nums[j], nums[j-1]
		}
	}
	return nums
}

func intSlicesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// doEdgesMatch is do_edges_match of spec §4.4, checked for a candidate
// pair once both fn and pn are already known node-compatible: for every
// (edge kind, direction) where order matters at pn's kind, the sorted
// edge-number lists on both sides must be equal, not just equinumerous.
func doEdgesMatch(fg, pg *core.Graph, fn, pn core.Node) bool {
	pIsIntermediate := isIntermediateBlock(pg, pn)
	for _, ek := range [...]core.EdgeKind{core.DataFlow, core.ControlFlow, core.StateFlow} {
		if edgeOrderMatters(pn, pIsIntermediate, ek, true) {
			if !intSlicesEqual(sortedNumbers(pg.OutEdges(pn, ek), true), sortedNumbers(fg.OutEdges(fn, ek), true)) {
				return false
			}
		}
		if edgeOrderMatters(pn, pIsIntermediate, ek, false) {
			if !intSlicesEqual(sortedNumbers(pg.InEdges(pn, ek), false), sortedNumbers(fg.InEdges(fn, ek), false)) {
				return false
			}
		}
	}
	return true
}
