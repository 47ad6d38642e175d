package transform

import (
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
)

// DeadCodeElimination iteratively deletes value nodes with no data-flow
// consumers that are not the result of a Call (a call's result is kept
// even if unused, since the call itself may have side effects), deleting
// each value's defining operation and definition edges along with it.
// A value with no data-flow definer (a function input or a constant) is
// kept even if unused. Runs to a fixed point, since removing one dead value can make its own
// operand values dead in turn.
func DeadCodeElimination(o *opstruct.OpStruct) *opstruct.OpStruct {
	g := o.Graph
	for {
		changed := false
		for _, v := range g.Nodes() {
			if v.Kind != core.KindValue {
				continue
			}
			if !g.IsInGraph(v) {
				continue
			}
			if len(g.OutNeighbours(v, core.DataFlow)) > 0 {
				continue
			}
			defs := g.InNeighbours(v, core.DataFlow)
			if len(defs) == 0 {
				continue
			}
			definer := defs[0]
			if definer.Kind == core.KindCall {
				continue
			}
			g = g.DeleteNode(v)
			if g.IsInGraph(definer) {
				g = g.DeleteNode(definer)
			}
			changed = true
		}
		if !changed {
			break
		}
	}
	return o.WithGraph(g)
}
