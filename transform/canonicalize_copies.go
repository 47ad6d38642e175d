package transform

import (
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
)

// identityOperands maps a computation operator to the integer value that
// makes it a no-op on the other operand (spec §4.8).
var identityOperands = map[string]int64{
	"add": 0,
	"mul": 1,
	"or":  0,
	"and": -1,
}

// CanonicalizeCopies finds Computation nodes of shape add/mul/or/and with
// one operand equal to that operator's identity constant and rewrites the
// computation into a Copy of the other operand, eliding the constant
// operand. The elided constant value node is left in place;
// DeadCodeElimination removes it only if it has a defining operation.
func CanonicalizeCopies(o *opstruct.OpStruct) *opstruct.OpStruct {
	g := o.Graph
	for _, n := range g.Nodes() {
		if n.Kind != core.KindComputation {
			continue
		}
		identity, isCandidateOp := identityOperands[n.Label.Op]
		if !isCandidateOp {
			continue
		}
		ins := g.InEdges(n, core.DataFlow)
		if len(ins) != 2 {
			continue
		}
		var keep core.Node
		var found bool
		for _, e := range ins {
			if isIdentityConstant(e.Src, identity) {
				found = true
				continue
			}
			keep = e.Src
		}
		if !found {
			continue
		}

		var cp core.Node
		cp, g = g.AddNode(core.KindCopy, core.NodeLabel{})
		_, g = g.AddEdge(core.DataFlow, keep, cp)
		g = g.RedirectOutEdges(n, cp)
		g = g.DeleteNode(n)
	}
	return o.WithGraph(g)
}

func isIdentityConstant(n core.Node, identity int64) bool {
	if n.Kind != core.KindValue {
		return false
	}
	dt := n.Label.DataType
	return dt.Kind == core.DTIntConst && dt.Range.Lo == identity && dt.Range.Hi == identity
}
