package match

import "github.com/katalvlaran/cpsel/core"

// HasCyclicDataDependency implements spec §4.4's cyclic-data-dependency
// post-filter: extract the subgraph induced by m's function-side nodes on
// the function's SSA view, drop value nodes acting as inputs (no
// predecessors within that induced subgraph), and split what remains into
// weakly connected components. Matches whose components are genuinely
// independent are fine; a match is rejected when one component can in
// fact reach another — not within the match itself, but by routing
// through the rest of the function's SSA graph (already state-flow-free,
// since core.ExtractSSA drops State nodes and everything touching them).
// That external path is the "cyclic data dependency" spec §4.4 flags:
// selecting this match would force an ordering between two parts of it
// that look independent only because the rest of the function is absent
// from the induced view.
func HasCyclicDataDependency(fullSSA *core.Graph, m NodeMatch) bool {
	nodeSet := m.FunctionNodeSet()

	var induced []core.Node
	for _, n := range fullSSA.Nodes() {
		if _, ok := nodeSet[n.ID]; ok {
			induced = append(induced, n)
		}
	}
	sub := fullSSA.ExtractSubgraph(induced)

	var inputless []core.Node
	for _, n := range sub.Nodes() {
		if n.Kind == core.KindValue && len(sub.InNeighbours(n)) == 0 {
			inputless = append(inputless, n)
		}
	}
	for _, n := range inputless {
		sub = sub.DeleteNode(n)
	}

	remaining := sub.Nodes()
	if len(remaining) == 0 {
		return false
	}
	components := sub.WeaklyConnectedComponents(remaining)
	if len(components) <= 1 {
		return false
	}

	reach := componentReachability(fullSSA, components)
	for i := range components {
		for j := range components {
			if i != j && reach[i][j] {
				return true
			}
		}
	}
	return false
}

// componentReachability returns, for each component index i, the set of
// component indices reachable from i by following directed edges in
// fullSSA (which may pass through nodes outside every component).
func componentReachability(fullSSA *core.Graph, components [][]core.Node) []map[int]bool {
	compOf := make(map[core.NodeID]int)
	for i, comp := range components {
		for _, n := range comp {
			compOf[n.ID] = i
		}
	}

	result := make([]map[int]bool, len(components))
	for i, comp := range components {
		visited := map[core.NodeID]bool{}
		reached := map[int]bool{}
		stack := append([]core.Node(nil), comp...)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			for _, succ := range fullSSA.OutNeighbours(n) {
				if j, ok := compOf[succ.ID]; ok && j != i {
					reached[j] = true
				}
				if !visited[succ.ID] {
					stack = append(stack, succ)
				}
			}
		}
		result[i] = reached
	}
	return result
}
