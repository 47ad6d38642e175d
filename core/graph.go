// Package core: Graph construction and mutation.
//
// Invariant maintained by every operation in this file except
// UpdateEdgeSource/UpdateEdgeTarget (see their doc comments): for every
// node instance n, edge kind k, and direction d (in/out), the sorted list
// of edge numbers at (n, k, d) is contiguous starting at 0.
package core

import "sort"

// Graph is an immutable function/pattern graph. The zero value is not
// usable; construct one with NewGraph.
//
// sortSeqsByOutNumber and sortSeqsByInNumber are defined alongside Repack,
// below.
type Graph struct {
	nodes map[nodeSeq]Node
	edges map[edgeSeq]Edge
	out   map[nodeSeq]map[EdgeKind][]edgeSeq
	in    map[nodeSeq]map[EdgeKind][]edgeSeq

	nextNodeSeq  nodeSeq
	nextEdgeSeq  edgeSeq
	nextPublicID NodeID
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:       make(map[nodeSeq]Node),
		edges:       make(map[edgeSeq]Edge),
		out:         make(map[nodeSeq]map[EdgeKind][]edgeSeq),
		in:          make(map[nodeSeq]map[EdgeKind][]edgeSeq),
		nextNodeSeq: 1,
	}
}

// shallowClone copies the top-level maps of g so that a mutation can be
// applied to the copy without disturbing g. Node and Edge values, and the
// per-node edge-number slices that are not touched by the mutation, are
// reused by value rather than deep-copied again downstream; no persistent
// (structure-sharing) map is available anywhere in the dependency set this
// module draws on, so this copy-on-write scheme is the closest approximation
// of spec §5's "share immutable substructure where the implementation
// language allows" available with what lvlath and the rest of the pack use.
func (g *Graph) shallowClone() *Graph {
	ng := &Graph{
		nodes:        make(map[nodeSeq]Node, len(g.nodes)+1),
		edges:        make(map[edgeSeq]Edge, len(g.edges)+1),
		out:          make(map[nodeSeq]map[EdgeKind][]edgeSeq, len(g.out)+1),
		in:           make(map[nodeSeq]map[EdgeKind][]edgeSeq, len(g.in)+1),
		nextNodeSeq:  g.nextNodeSeq,
		nextEdgeSeq:  g.nextEdgeSeq,
		nextPublicID: g.nextPublicID,
	}
	for k, v := range g.nodes {
		ng.nodes[k] = v
	}
	for k, v := range g.edges {
		ng.edges[k] = v
	}
	for k, m := range g.out {
		nm := make(map[EdgeKind][]edgeSeq, len(m))
		for ek, sl := range m {
			nm[ek] = append([]edgeSeq(nil), sl...)
		}
		ng.out[k] = nm
	}
	for k, m := range g.in {
		nm := make(map[EdgeKind][]edgeSeq, len(m))
		for ek, sl := range m {
			nm[ek] = append([]edgeSeq(nil), sl...)
		}
		ng.in[k] = nm
	}
	return ng
}

func (g *Graph) hasInstance(n Node) bool {
	_, ok := g.nodes[n.seq]
	return ok
}

// IsInGraph reports whether n (this exact instance) is present in g.
func (g *Graph) IsInGraph(n Node) bool { return g.hasInstance(n) }

// AddNode appends a node of the given kind and label, assigning it a fresh
// public ID equal to max(existing)+1 (0 if g is empty). Returns the new
// node and the graph that contains it.
func (g *Graph) AddNode(kind NodeKind, label NodeLabel) (Node, *Graph) {
	id := NodeID(0)
	for _, m := range g.nodes {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	n := Node{seq: g.nextNodeSeq, ID: id, Kind: kind, Label: label}
	ng := g.shallowClone()
	ng.nodes[n.seq] = n
	ng.out[n.seq] = map[EdgeKind][]edgeSeq{}
	ng.in[n.seq] = map[EdgeKind][]edgeSeq{}
	ng.nextNodeSeq = g.nextNodeSeq + 1
	ng.nextPublicID = n.ID + 1
	return n, ng
}

// duplicateNode creates a second node instance sharing src's public ID and
// label, used by the match package's block-duplication pre-pass (spec
// §4.4). It does not advance nextPublicID.
func (g *Graph) duplicateNode(src Node) (Node, *Graph) {
	n := Node{seq: g.nextNodeSeq, ID: src.ID, Kind: src.Kind, Label: src.Label}
	ng := g.shallowClone()
	ng.nodes[n.seq] = n
	ng.out[n.seq] = map[EdgeKind][]edgeSeq{}
	ng.in[n.seq] = map[EdgeKind][]edgeSeq{}
	ng.nextNodeSeq = g.nextNodeSeq + 1
	return n, ng
}

// DuplicateNode is the exported form of duplicateNode, used by package
// match's duplication pre-pass (spec §4.4) to replicate block nodes that
// have both incoming and outgoing definition-placement edges. The
// returned node shares src's public ID but is a distinct instance.
func (g *Graph) DuplicateNode(src Node) (Node, *Graph) { return g.duplicateNode(src) }

// AddEdge appends an edge of the given kind from src to dst, assigning it
// the next unused out-number at src and in-number at dst for that kind.
// Panics if either endpoint is not in g.
func (g *Graph) AddEdge(kind EdgeKind, src, dst Node) (Edge, *Graph) {
	if !g.hasInstance(src) {
		preconditionf("AddEdge", "source node %d is not in the graph", src.ID)
	}
	if !g.hasInstance(dst) {
		preconditionf("AddEdge", "target node %d is not in the graph", dst.ID)
	}
	outNum := len(g.out[src.seq][kind])
	inNum := len(g.in[dst.seq][kind])
	e := Edge{seq: g.nextEdgeSeq, Kind: kind, Src: src, Dst: dst, OutNumber: outNum, InNumber: inNum}
	ng := g.shallowClone()
	ng.edges[e.seq] = e
	ng.out[src.seq][kind] = append(ng.out[src.seq][kind], e.seq)
	ng.in[dst.seq][kind] = append(ng.in[dst.seq][kind], e.seq)
	ng.nextEdgeSeq = g.nextEdgeSeq + 1
	return e, ng
}

func removeSeqEdge(sl []edgeSeq, target edgeSeq) []edgeSeq {
	out := make([]edgeSeq, 0, len(sl))
	for _, s := range sl {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

// removeEdgeAndRepack deletes e from ng (which must already be a private
// clone) and renumbers the remaining edges at e's two endpoints so the
// contiguity invariant holds immediately.
func (ng *Graph) removeEdgeAndRepack(e Edge) {
	delete(ng.edges, e.seq)
	ng.out[e.Src.seq][e.Kind] = removeSeqEdge(ng.out[e.Src.seq][e.Kind], e.seq)
	ng.in[e.Dst.seq][e.Kind] = removeSeqEdge(ng.in[e.Dst.seq][e.Kind], e.seq)
	ng.repackOut(e.Src.seq, e.Kind)
	ng.repackIn(e.Dst.seq, e.Kind)
}

func (ng *Graph) repackOut(seq nodeSeq, kind EdgeKind) {
	for i, es := range ng.out[seq][kind] {
		e := ng.edges[es]
		e.OutNumber = i
		ng.edges[es] = e
	}
}

func (ng *Graph) repackIn(seq nodeSeq, kind EdgeKind) {
	for i, es := range ng.in[seq][kind] {
		e := ng.edges[es]
		e.InNumber = i
		ng.edges[es] = e
	}
}

// DeleteEdge removes e from g, repacking the edge numbers at its two
// endpoints so the contiguity invariant holds in the result.
func (g *Graph) DeleteEdge(e Edge) *Graph {
	ng := g.shallowClone()
	ng.removeEdgeAndRepack(e)
	return ng
}

// incidentEdgeSeqs returns every edge seq incident on n (as source or
// target, any kind), deduplicated.
func (g *Graph) incidentEdgeSeqs(n Node) []edgeSeq {
	seen := make(map[edgeSeq]struct{})
	var out []edgeSeq
	for _, kind := range allEdgeKinds {
		for _, es := range g.out[n.seq][kind] {
			if _, ok := seen[es]; !ok {
				seen[es] = struct{}{}
				out = append(out, es)
			}
		}
		for _, es := range g.in[n.seq][kind] {
			if _, ok := seen[es]; !ok {
				seen[es] = struct{}{}
				out = append(out, es)
			}
		}
	}
	return out
}

// DeleteNode removes n and every edge incident on it.
func (g *Graph) DeleteNode(n Node) *Graph {
	ng := g.shallowClone()
	for _, es := range g.incidentEdgeSeqs(n) {
		ng.removeEdgeAndRepack(ng.edges[es])
	}
	delete(ng.nodes, n.seq)
	delete(ng.out, n.seq)
	delete(ng.in, n.seq)
	return ng
}

// DeleteNodeKeepEdges removes n, redirecting every edge incident on it to
// n's unique predecessor (the single distinct source node across all of
// n's in-edges, of any kind). Panics if n has zero or more than one
// distinct predecessor.
func (g *Graph) DeleteNodeKeepEdges(n Node) *Graph {
	preds := map[nodeSeq]Node{}
	for _, kind := range allEdgeKinds {
		for _, es := range g.in[n.seq][kind] {
			src := g.edges[es].Src
			preds[src.seq] = src
		}
	}
	if len(preds) != 1 {
		preconditionf("DeleteNodeKeepEdges", "node %d has %d distinct predecessors, need exactly 1", n.ID, len(preds))
	}
	var pred Node
	for _, p := range preds {
		pred = p
	}

	ng := g.shallowClone()
	// Redirect every in-edge of n (X --k--> n) to become X --k--> pred,
	// and every out-edge of n (n --k--> Y) to become pred --k--> Y. Skip
	// edges that would become a pred-pred self loop.
	for _, kind := range allEdgeKinds {
		for _, es := range append([]edgeSeq(nil), ng.in[n.seq][kind]...) {
			e := ng.edges[es]
			if e.Src.seq == pred.seq {
				continue
			}
			ng.retargetEdge(es, pred)
		}
		for _, es := range append([]edgeSeq(nil), ng.out[n.seq][kind]...) {
			e := ng.edges[es]
			if e.Dst.seq == pred.seq {
				continue
			}
			ng.resourceEdge(es, pred)
		}
	}
	for _, kind := range allEdgeKinds {
		ng.repackOut(pred.seq, kind)
		ng.repackIn(pred.seq, kind)
	}
	for _, es := range g.incidentEdgeSeqs(n) {
		if _, ok := ng.edges[es]; ok {
			// Any edge still incident on n at this point is a genuine
			// n-n self loop or one we intentionally skipped; drop it.
			if e := ng.edges[es]; e.Src.seq == n.seq || e.Dst.seq == n.seq {
				ng.removeEdgeAndRepack(e)
			}
		}
	}
	delete(ng.nodes, n.seq)
	delete(ng.out, n.seq)
	delete(ng.in, n.seq)
	return ng
}

// retargetEdge rewrites es's Dst to newDst without renumbering (internal
// helper for DeleteNodeKeepEdges, which repacks in bulk afterward).
func (ng *Graph) retargetEdge(es edgeSeq, newDst Node) {
	e := ng.edges[es]
	ng.in[e.Dst.seq][e.Kind] = removeSeqEdge(ng.in[e.Dst.seq][e.Kind], es)
	e.Dst = newDst
	ng.edges[es] = e
	ng.in[newDst.seq][e.Kind] = append(ng.in[newDst.seq][e.Kind], es)
}

// resourceEdge rewrites es's Src to newSrc (named distinctly from
// retargetEdge only to keep the two directions visually distinct at call
// sites; internal helper for DeleteNodeKeepEdges).
func (ng *Graph) resourceEdge(es edgeSeq, newSrc Node) {
	e := ng.edges[es]
	ng.out[e.Src.seq][e.Kind] = removeSeqEdge(ng.out[e.Src.seq][e.Kind], es)
	e.Src = newSrc
	ng.edges[es] = e
	ng.out[newSrc.seq][e.Kind] = append(ng.out[newSrc.seq][e.Kind], es)
}

func maxOutNumber(ng *Graph, seq nodeSeq, kind EdgeKind) int {
	max := -1
	for _, es := range ng.out[seq][kind] {
		if n := ng.edges[es].OutNumber; n > max {
			max = n
		}
	}
	return max
}

func maxInNumber(ng *Graph, seq nodeSeq, kind EdgeKind) int {
	max := -1
	for _, es := range ng.in[seq][kind] {
		if n := ng.edges[es].InNumber; n > max {
			max = n
		}
	}
	return max
}

// UpdateEdgeSource reassigns e's source to newSrc, rewriting its
// out-number to the next unused value on newSrc for e's kind. The slot
// vacated at the old source is NOT backfilled or repacked: callers that
// batch many updates against one node must call Repack on it afterward
// (spec §9 design notes). This is the one pair of operations in this file
// that does not keep the contiguity invariant immediately.
func (g *Graph) UpdateEdgeSource(e Edge, newSrc Node) (Edge, *Graph) {
	if !g.hasInstance(newSrc) {
		preconditionf("UpdateEdgeSource", "new source node %d is not in the graph", newSrc.ID)
	}
	ng := g.shallowClone()
	ng.out[e.Src.seq][e.Kind] = removeSeqEdge(ng.out[e.Src.seq][e.Kind], e.seq)
	ne := e
	ne.Src = newSrc
	ne.OutNumber = maxOutNumber(ng, newSrc.seq, e.Kind) + 1
	ng.out[newSrc.seq][e.Kind] = append(ng.out[newSrc.seq][e.Kind], e.seq)
	ng.edges[e.seq] = ne
	return ne, ng
}

// UpdateEdgeTarget is UpdateEdgeSource's mirror image for the destination
// endpoint. Same non-backfilling contract.
func (g *Graph) UpdateEdgeTarget(e Edge, newDst Node) (Edge, *Graph) {
	if !g.hasInstance(newDst) {
		preconditionf("UpdateEdgeTarget", "new target node %d is not in the graph", newDst.ID)
	}
	ng := g.shallowClone()
	ng.in[e.Dst.seq][e.Kind] = removeSeqEdge(ng.in[e.Dst.seq][e.Kind], e.seq)
	ne := e
	ne.Dst = newDst
	ne.InNumber = maxInNumber(ng, newDst.seq, e.Kind) + 1
	ng.in[newDst.seq][e.Kind] = append(ng.in[newDst.seq][e.Kind], e.seq)
	ng.edges[e.seq] = ne
	return ne, ng
}

// sortSeqsByOutNumber sorts sl (a node's per-kind out-edge seq list) in
// place by each edge's current OutNumber, ascending.
func sortSeqsByOutNumber(ng *Graph, sl []edgeSeq) {
	sort.SliceStable(sl, func(i, j int) bool {
		return ng.edges[sl[i]].OutNumber < ng.edges[sl[j]].OutNumber
	})
}

// sortSeqsByInNumber is sortSeqsByOutNumber's mirror for InNumber.
func sortSeqsByInNumber(ng *Graph, sl []edgeSeq) {
	sort.SliceStable(sl, func(i, j int) bool {
		return ng.edges[sl[i]].InNumber < ng.edges[sl[j]].InNumber
	})
}

// Repack renumbers every edge kind's in- and out-numbers at n back to a
// contiguous range starting at 0, preserving relative order by current
// number. Use after a batch of UpdateEdgeSource/UpdateEdgeTarget calls
// against n.
func (g *Graph) Repack(n Node) *Graph {
	ng := g.shallowClone()
	for _, kind := range allEdgeKinds {
		sortSeqsByOutNumber(ng, ng.out[n.seq][kind])
		sortSeqsByInNumber(ng, ng.in[n.seq][kind])
		ng.repackOut(n.seq, kind)
		ng.repackIn(n.seq, kind)
	}
	return ng
}

// RedirectOutEdges retargets every out-edge of n (of the given kind, or
// every kind if kinds is empty) so its source becomes newSrc, then repacks
// both n and newSrc. Bulk form of UpdateEdgeSource.
func (g *Graph) RedirectOutEdges(n, newSrc Node, kinds ...EdgeKind) *Graph {
	if len(kinds) == 0 {
		kinds = allEdgeKinds[:]
	}
	ng := g
	for _, kind := range kinds {
		for _, es := range append([]edgeSeq(nil), ng.out[n.seq][kind]...) {
			_, ng = ng.UpdateEdgeSource(ng.edges[es], newSrc)
		}
	}
	ng = ng.Repack(n)
	return ng.Repack(newSrc)
}

// RedirectInEdges retargets every in-edge of n so its destination becomes
// newDst, then repacks both n and newDst. Bulk form of UpdateEdgeTarget.
func (g *Graph) RedirectInEdges(n, newDst Node, kinds ...EdgeKind) *Graph {
	if len(kinds) == 0 {
		kinds = allEdgeKinds[:]
	}
	ng := g
	for _, kind := range kinds {
		for _, es := range append([]edgeSeq(nil), ng.in[n.seq][kind]...) {
			_, ng = ng.UpdateEdgeTarget(ng.edges[es], newDst)
		}
	}
	ng = ng.Repack(n)
	return ng.Repack(newDst)
}

// ReplaceNodeLabel swaps n's kind/label for a fresh node instance sharing
// n's public ID, redirecting every edge incident on n onto the
// replacement and then deleting n. Used by transform's rewrites (e.g.
// retyping a pointer value node to an integer one) that need to change a
// node's payload while keeping every external reference to its public ID
// valid, since Node itself is immutable and carries no setter.
func (g *Graph) ReplaceNodeLabel(n Node, kind NodeKind, label NodeLabel) (Node, *Graph) {
	replacement := Node{seq: g.nextNodeSeq, ID: n.ID, Kind: kind, Label: label}
	ng := g.shallowClone()
	ng.nodes[replacement.seq] = replacement
	ng.out[replacement.seq] = map[EdgeKind][]edgeSeq{}
	ng.in[replacement.seq] = map[EdgeKind][]edgeSeq{}
	ng.nextNodeSeq = g.nextNodeSeq + 1

	ng = ng.RedirectOutEdges(n, replacement)
	ng = ng.RedirectInEdges(n, replacement)
	ng = ng.DeleteNode(n)
	return replacement, ng
}

// MergeNodes redirects every edge incident on discard to keep, then
// deletes discard. Edges directly between keep and discard (in either
// direction) are removed first so the merge cannot create a self-loop.
func (g *Graph) MergeNodes(keep, discard Node) *Graph {
	ng := g.shallowClone()
	for _, es := range g.incidentEdgeSeqs(discard) {
		e := ng.edges[es]
		if (e.Src.seq == keep.seq && e.Dst.seq == discard.seq) ||
			(e.Src.seq == discard.seq && e.Dst.seq == keep.seq) {
			ng.removeEdgeAndRepack(e)
		}
	}
	ng = ng.RedirectOutEdges(discard, keep)
	ng = ng.RedirectInEdges(discard, keep)
	return ng.DeleteNode(discard)
}
