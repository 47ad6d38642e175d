package transform

import (
	"sort"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
)

// EnforcePhiNodeInvariants applies the two phi-shape invariants of spec
// §4.8: (a) a phi that consumes the same value through more than one
// data-flow in-edge is collapsed to a single edge, with the replaced
// definition-placement edges merged into one from the closest common
// dominator of the replaced blocks; (b) a phi with more than one
// definition-placement in-edge from the same block keeps only one
// (dropping its paired data-flow edge along with it).
//
// Data-flow and definition-placement in-edges of a phi are paired by
// ascending in-number: the i-th data-flow in-edge and the i-th
// definition-placement in-edge name the same incoming branch.
func EnforcePhiNodeInvariants(o *opstruct.OpStruct) *opstruct.OpStruct {
	g := o.Graph
	cfg := core.ExtractCFG(g)

	for _, n := range g.Nodes() {
		if n.Kind != core.KindPhi {
			continue
		}
		g = collapseDuplicateValueBranches(g, cfg, n)
		g = dropDuplicateBlockBranches(g, n)
	}
	return o.WithGraph(g)
}

func sortedInEdges(g *core.Graph, n core.Node, kind core.EdgeKind) []core.Edge {
	es := g.InEdges(n, kind)
	sort.Slice(es, func(i, j int) bool { return es[i].InNumber < es[j].InNumber })
	return es
}

func collapseDuplicateValueBranches(g, cfg *core.Graph, phi core.Node) *core.Graph {
	dfIns := sortedInEdges(g, phi, core.DataFlow)
	dpIns := sortedInEdges(g, phi, core.DefPlacement)

	byValue := make(map[core.NodeID][]int)
	for i, e := range dfIns {
		byValue[e.Src.ID] = append(byValue[e.Src.ID], i)
	}

	for _, idxs := range byValue {
		if len(idxs) < 2 {
			continue
		}
		var blocks []core.NodeID
		for _, i := range idxs {
			if i < len(dpIns) {
				blocks = append(blocks, dpIns[i].Src.ID)
			}
		}
		for _, i := range idxs[1:] {
			g = g.DeleteEdge(dfIns[i])
		}
		if len(blocks) == 0 {
			continue
		}
		for _, i := range idxs {
			if i < len(dpIns) {
				g = g.DeleteEdge(dpIns[i])
			}
		}
		ccd := core.ClosestCommonDominator(cfg, blocks)
		ccdNode := nodeByID(g, ccd)
		_, g = g.AddEdge(core.DefPlacement, ccdNode, phi)
	}
	return g
}

func dropDuplicateBlockBranches(g *core.Graph, phi core.Node) *core.Graph {
	dfIns := sortedInEdges(g, phi, core.DataFlow)
	dpIns := sortedInEdges(g, phi, core.DefPlacement)

	byBlock := make(map[core.NodeID][]int)
	for i, e := range dpIns {
		byBlock[e.Src.ID] = append(byBlock[e.Src.ID], i)
	}
	for _, idxs := range byBlock {
		if len(idxs) < 2 {
			continue
		}
		for _, i := range idxs[1:] {
			g = g.DeleteEdge(dpIns[i])
			if i < len(dfIns) {
				g = g.DeleteEdge(dfIns[i])
			}
		}
	}
	return g
}

func nodeByID(g *core.Graph, id core.NodeID) core.Node {
	for _, n := range g.Nodes() {
		if n.ID == id {
			return n
		}
	}
	panic(&core.PreconditionError{Op: "transform", Detail: "no node with that ID in graph"})
}

// RemoveRedundantPhiNodes deletes every phi with a single data-flow input,
// merging the phi's sole input value and its defined output value (every
// reference to the output value's ID, in the graph and in the
// Op-Structure's constraints/locations/same-location pairs, is rewritten
// to the input value's ID).
func RemoveRedundantPhiNodes(o *opstruct.OpStruct) *opstruct.OpStruct {
	g := o.Graph
	for _, n := range g.Nodes() {
		if n.Kind != core.KindPhi {
			continue
		}
		dfIns := g.InEdges(n, core.DataFlow)
		dfOuts := g.OutEdges(n, core.DataFlow)
		if len(dfIns) != 1 || len(dfOuts) != 1 {
			continue
		}
		in, out := dfIns[0].Src, dfOuts[0].Dst
		g = g.DeleteNode(n)
		g = g.MergeNodes(in, out)
		o = replaceNodeIDEverywhere(o.WithGraph(g), out.ID, in.ID)
		g = o.Graph
	}
	return o
}
