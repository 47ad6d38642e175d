package core

import "sort"

// ExtractCFG returns the projection of g to its block and control nodes,
// with every control node collapsed into its unique predecessor block via
// DeleteNodeKeepEdges (spec §4.1). The result's only surviving edges are
// ControlFlow edges between Block nodes.
func ExtractCFG(g *Graph) *Graph {
	var keep []Node
	for _, n := range g.Nodes() {
		if n.Kind == KindBlock || n.Kind == KindControl {
			keep = append(keep, n)
		}
	}
	proj := g.ExtractSubgraph(keep)

	var controls []Node
	for _, n := range proj.Nodes() {
		if n.Kind == KindControl {
			controls = append(controls, n)
		}
	}
	for _, n := range controls {
		proj = proj.DeleteNodeKeepEdges(n)
	}
	validateReachableControlFlow(proj)
	return proj
}

// ExtractSSA returns the projection of g to its operation and value nodes
// (spec §4.1): every node whose Kind.IsOperation() holds, plus every Value
// node. State and Block nodes, and any edge touching one, are dropped.
func ExtractSSA(g *Graph) *Graph {
	var keep []Node
	for _, n := range g.Nodes() {
		if n.Kind.IsOperation() || n.Kind == KindValue {
			keep = append(keep, n)
		}
	}
	return g.ExtractSubgraph(keep)
}

// RootOfCFG returns the unique block node of g (expected to already be a
// CFG projection, e.g. the result of ExtractCFG) that has no ControlFlow
// predecessor. Panics if zero or more than one such block exists.
func RootOfCFG(g *Graph) Node {
	var roots []Node
	for _, n := range g.Nodes() {
		if n.Kind != KindBlock {
			continue
		}
		if len(g.InNeighbours(n, ControlFlow)) == 0 {
			roots = append(roots, n)
		}
	}
	if len(roots) != 1 {
		preconditionf("RootOfCFG", "found %d root blocks, need exactly 1", len(roots))
	}
	return roots[0]
}

// DomSets computes, for a CFG-shaped graph g (as returned by ExtractCFG),
// the dominator set of every block: DomSets(g)[b] is the set of NodeIDs of
// blocks that dominate b (b always dominates itself). Computed by the
// classical iterative fixed-point algorithm over reverse postorder.
func DomSets(g *Graph) map[NodeID]map[NodeID]struct{} {
	var blocks []Node
	for _, n := range g.Nodes() {
		if n.Kind == KindBlock {
			blocks = append(blocks, n)
		}
	}
	if len(blocks) == 0 {
		return map[NodeID]map[NodeID]struct{}{}
	}
	root := RootOfCFG(g)

	order := reversePostorder(g, root, blocks)
	all := make(map[NodeID]struct{}, len(blocks))
	for _, b := range blocks {
		all[b.ID] = struct{}{}
	}

	dom := make(map[NodeID]map[NodeID]struct{}, len(blocks))
	dom[root.ID] = map[NodeID]struct{}{root.ID: {}}
	for _, b := range blocks {
		if b.ID == root.ID {
			continue
		}
		dom[b.ID] = cloneIDSet(all)
	}

	changed := true
	for changed {
		changed = false
		for _, b := range order {
			if b.ID == root.ID {
				continue
			}
			preds := g.InNeighbours(b, ControlFlow)
			if len(preds) == 0 {
				continue
			}
			var next map[NodeID]struct{}
			for i, p := range preds {
				if i == 0 {
					next = cloneIDSet(dom[p.ID])
					continue
				}
				next = intersectIDSets(next, dom[p.ID])
			}
			next[b.ID] = struct{}{}
			if !idSetsEqual(next, dom[b.ID]) {
				dom[b.ID] = next
				changed = true
			}
		}
	}
	return dom
}

// IDomSets derives each block's immediate dominator from DomSets(g): for
// each non-root block b, IDomSets(g)[b] is the dominator of b (other than
// b itself) that dominates every other dominator of b. The root has no
// entry.
func IDomSets(g *Graph) map[NodeID]NodeID {
	dom := DomSets(g)
	idom := make(map[NodeID]NodeID, len(dom))
	domSize := make(map[NodeID]int, len(dom))
	for id, set := range dom {
		domSize[id] = len(set)
	}
	for b, set := range dom {
		var best NodeID
		bestSize := -1
		for d := range set {
			if d == b {
				continue
			}
			if sz := domSize[d]; sz > bestSize {
				bestSize = sz
				best = d
			}
		}
		if bestSize >= 0 {
			idom[b] = best
		}
	}
	return idom
}

// ClosestCommonDominator returns the block that dominates every block in
// ids and is dominated by every other common dominator of ids (used by
// transform's phi-invariant enforcement, spec §4.8). Panics if ids is
// empty or no common dominator exists (cannot happen in a well-formed
// single-entry CFG).
func ClosestCommonDominator(g *Graph, ids []NodeID) NodeID {
	if len(ids) == 0 {
		preconditionf("ClosestCommonDominator", "no blocks given")
	}
	dom := DomSets(g)
	domSize := make(map[NodeID]int, len(dom))
	for id, set := range dom {
		domSize[id] = len(set)
	}
	var common map[NodeID]struct{}
	for i, id := range ids {
		if i == 0 {
			common = cloneIDSet(dom[id])
			continue
		}
		common = intersectIDSets(common, dom[id])
	}
	best := NodeID(-1)
	bestSize := -1
	for d := range common {
		if sz := domSize[d]; sz > bestSize {
			bestSize = sz
			best = d
		}
	}
	if bestSize < 0 {
		preconditionf("ClosestCommonDominator", "no common dominator for %v", ids)
	}
	return best
}

func cloneIDSet(s map[NodeID]struct{}) map[NodeID]struct{} {
	out := make(map[NodeID]struct{}, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func intersectIDSets(a, b map[NodeID]struct{}) map[NodeID]struct{} {
	out := make(map[NodeID]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func idSetsEqual(a, b map[NodeID]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// reversePostorder returns blocks ordered by reverse postorder of a
// depth-first traversal from root over ControlFlow edges, falling back to
// appending any block unreachable from root (in ID order) at the end so
// every block in blocks is present exactly once.
func reversePostorder(g *Graph, root Node, blocks []Node) []Node {
	visited := make(map[nodeSeq]struct{}, len(blocks))
	var postorder []Node
	var visit func(Node)
	visit = func(n Node) {
		if _, ok := visited[n.seq]; ok {
			return
		}
		visited[n.seq] = struct{}{}
		succs := g.OutNeighbours(n, ControlFlow)
		sort.Slice(succs, func(i, j int) bool { return succs[i].ID < succs[j].ID })
		for _, s := range succs {
			visit(s)
		}
		postorder = append(postorder, n)
	}
	visit(root)

	out := make([]Node, 0, len(blocks))
	for i := len(postorder) - 1; i >= 0; i-- {
		out = append(out, postorder[i])
	}
	for _, b := range blocks {
		if _, ok := visited[b.seq]; !ok {
			out = append(out, b)
		}
	}
	return out
}
