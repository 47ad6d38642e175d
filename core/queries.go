package core

import "sort"

// Nodes returns every node in g, ordered by public ID then internal
// instance (stable and deterministic across calls on the same value).
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Edges returns every edge in g, ordered by kind then source ID then
// OutNumber.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if out[i].Src.ID != out[j].Src.ID {
			return out[i].Src.ID < out[j].Src.ID
		}
		return out[i].OutNumber < out[j].OutNumber
	})
	return out
}

// kindsOrAll returns kinds if non-empty, else every edge kind.
func kindsOrAll(kinds []EdgeKind) []EdgeKind {
	if len(kinds) == 0 {
		return allEdgeKinds[:]
	}
	return kinds
}

// OutEdges returns n's out-edges restricted to kinds (every kind if none
// given), ordered by OutNumber within each kind, kinds in declaration
// order.
func (g *Graph) OutEdges(n Node, kinds ...EdgeKind) []Edge {
	var out []Edge
	for _, kind := range kindsOrAll(kinds) {
		for _, es := range g.out[n.seq][kind] {
			out = append(out, g.edges[es])
		}
	}
	return out
}

// InEdges mirrors OutEdges for n's in-edges.
func (g *Graph) InEdges(n Node, kinds ...EdgeKind) []Edge {
	var out []Edge
	for _, kind := range kindsOrAll(kinds) {
		for _, es := range g.in[n.seq][kind] {
			out = append(out, g.edges[es])
		}
	}
	return out
}

func dedupNodes(ns []Node) []Node {
	seen := make(map[nodeSeq]struct{}, len(ns))
	out := ns[:0:0]
	for _, n := range ns {
		if _, ok := seen[n.seq]; ok {
			continue
		}
		seen[n.seq] = struct{}{}
		out = append(out, n)
	}
	return out
}

// OutNeighbours returns the distinct target nodes of n's out-edges,
// restricted to kinds (every kind if none given).
func (g *Graph) OutNeighbours(n Node, kinds ...EdgeKind) []Node {
	var ns []Node
	for _, e := range g.OutEdges(n, kinds...) {
		ns = append(ns, e.Dst)
	}
	return dedupNodes(ns)
}

// InNeighbours returns the distinct source nodes of n's in-edges,
// restricted to kinds (every kind if none given).
func (g *Graph) InNeighbours(n Node, kinds ...EdgeKind) []Node {
	var ns []Node
	for _, e := range g.InEdges(n, kinds...) {
		ns = append(ns, e.Src)
	}
	return dedupNodes(ns)
}

// BothNeighbours returns the union of InNeighbours and OutNeighbours.
func (g *Graph) BothNeighbours(n Node, kinds ...EdgeKind) []Node {
	return dedupNodes(append(g.InNeighbours(n, kinds...), g.OutNeighbours(n, kinds...)...))
}

// EdgesBetween returns every edge (of any kind) whose source is a and
// whose destination is b.
func (g *Graph) EdgesBetween(a, b Node) []Edge {
	var out []Edge
	for _, e := range g.OutEdges(a) {
		if e.Dst.seq == b.seq {
			out = append(out, e)
		}
	}
	return out
}

// SortByOutNumber sorts a slice of edges (typically sharing one source
// and kind) by ascending OutNumber, in place, and also returns it.
func SortByOutNumber(edges []Edge) []Edge {
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].OutNumber < edges[j].OutNumber })
	return edges
}

// SortByInNumber sorts a slice of edges by ascending InNumber, in place,
// and also returns it.
func SortByInNumber(edges []Edge) []Edge {
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].InNumber < edges[j].InNumber })
	return edges
}

// ExtractSubgraph returns the subgraph of g induced by nodes: every listed
// node, plus every edge whose two endpoints are both listed. Public IDs,
// instance identity, and existing edge numbers are preserved verbatim (the
// result is an analysis view, not a graph meant to satisfy the contiguity
// invariant on its own).
func (g *Graph) ExtractSubgraph(nodes []Node) *Graph {
	keep := make(map[nodeSeq]struct{}, len(nodes))
	for _, n := range nodes {
		keep[n.seq] = struct{}{}
	}
	ng := &Graph{
		nodes:        make(map[nodeSeq]Node, len(nodes)),
		edges:        make(map[edgeSeq]Edge),
		out:          make(map[nodeSeq]map[EdgeKind][]edgeSeq, len(nodes)),
		in:           make(map[nodeSeq]map[EdgeKind][]edgeSeq, len(nodes)),
		nextNodeSeq:  g.nextNodeSeq,
		nextEdgeSeq:  g.nextEdgeSeq,
		nextPublicID: g.nextPublicID,
	}
	for _, n := range nodes {
		ng.nodes[n.seq] = n
		ng.out[n.seq] = map[EdgeKind][]edgeSeq{}
		ng.in[n.seq] = map[EdgeKind][]edgeSeq{}
	}
	for seq, e := range g.edges {
		if _, ok := keep[e.Src.seq]; !ok {
			continue
		}
		if _, ok := keep[e.Dst.seq]; !ok {
			continue
		}
		ng.edges[seq] = e
		ng.out[e.Src.seq][e.Kind] = append(ng.out[e.Src.seq][e.Kind], seq)
		ng.in[e.Dst.seq][e.Kind] = append(ng.in[e.Dst.seq][e.Kind], seq)
	}
	return ng
}

// WeaklyConnectedComponents partitions nodes into groups connected when
// edges are treated as undirected, restricted to edge kinds (every kind if
// none given). Used by the matcher's cyclic-data-dependency filter and
// SIMD pattern composition (spec §4.4).
func (g *Graph) WeaklyConnectedComponents(nodes []Node, kinds ...EdgeKind) [][]Node {
	keep := make(map[nodeSeq]struct{}, len(nodes))
	order := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := keep[n.seq]; ok {
			continue
		}
		keep[n.seq] = struct{}{}
		order = append(order, n)
	}
	visited := make(map[nodeSeq]struct{}, len(order))
	var comps [][]Node
	for _, start := range order {
		if _, ok := visited[start.seq]; ok {
			continue
		}
		stack := []Node{start}
		visited[start.seq] = struct{}{}
		var comp []Node
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, nb := range g.BothNeighbours(cur, kinds...) {
				if _, ok := keep[nb.seq]; !ok {
					continue
				}
				if _, ok := visited[nb.seq]; ok {
					continue
				}
				visited[nb.seq] = struct{}{}
				stack = append(stack, nb)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
