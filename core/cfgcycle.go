package core

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// validateReachableControlFlow panics if proj (a CFG projection, as
// returned by ExtractCFG) contains a ControlFlow cycle entirely among
// blocks unreachable from every zero-in-degree block. A normal loop
// reachable from the function's entry is expected and left alone; only a
// cycle confined to dead, unreachable blocks indicates a malformed
// function graph (one with no way to ever enter that cycle), which
// DomSets and RootOfCFG are not equipped to diagnose on their own since
// they only ever look at reachable structure.
//
// Reachability itself is computed by plain graph traversal; gonum's
// graph/topo.Sort is reserved for the actual cycle test, run only over
// the (typically empty, small when not) unreached subgraph, so the cost
// of cross-checking is paid only on a graph that already looks
// suspicious.
func validateReachableControlFlow(proj *Graph) {
	var blocks []Node
	for _, n := range proj.Nodes() {
		if n.Kind == KindBlock {
			blocks = append(blocks, n)
		}
	}
	if len(blocks) == 0 {
		return
	}

	var roots []Node
	for _, b := range blocks {
		if len(proj.InNeighbours(b, ControlFlow)) == 0 {
			roots = append(roots, b)
		}
	}

	reached := make(map[nodeSeq]struct{}, len(blocks))
	var stack []Node
	for _, r := range roots {
		if _, ok := reached[r.seq]; !ok {
			reached[r.seq] = struct{}{}
			stack = append(stack, r)
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, succ := range proj.OutNeighbours(n, ControlFlow) {
			if _, ok := reached[succ.seq]; !ok {
				reached[succ.seq] = struct{}{}
				stack = append(stack, succ)
			}
		}
	}

	var unreached []Node
	for _, b := range blocks {
		if _, ok := reached[b.seq]; !ok {
			unreached = append(unreached, b)
		}
	}
	if len(unreached) == 0 {
		return
	}

	if hasControlFlowCycle(proj, unreached) {
		preconditionf("ExtractCFG", "control-flow cycle among %d block(s) unreachable from any entry", len(unreached))
	}
}

// hasControlFlowCycle reports whether the ControlFlow edges induced
// among blocks form a cycle, via gonum's topological sort.
func hasControlFlowCycle(proj *Graph, blocks []Node) bool {
	gg := simple.NewDirectedGraph()
	idOf := make(map[nodeSeq]int64, len(blocks))
	for i, b := range blocks {
		idOf[b.seq] = int64(i)
		gg.AddNode(simple.Node(int64(i)))
	}
	for _, b := range blocks {
		for _, succ := range proj.OutNeighbours(b, ControlFlow) {
			to, ok := idOf[succ.seq]
			if !ok {
				continue
			}
			gg.SetEdge(simple.Edge{F: simple.Node(idOf[b.seq]), T: simple.Node(to)})
		}
	}
	_, err := topo.Sort(gg)
	return err != nil
}
