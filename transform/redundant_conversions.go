package transform

import (
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
)

// RemoveRedundantConversions finds an And/XOr whose operands are the
// result of a ZExt/SExt and a mask constant of (1<<original_bits)-1, and
// replaces that And/XOr with a Copy of the extension's result (spec §4.8).
// The extension node itself is kept.
func RemoveRedundantConversions(o *opstruct.OpStruct) *opstruct.OpStruct {
	g := o.Graph
	for _, ext := range g.Nodes() {
		if ext.Kind != core.KindComputation {
			continue
		}
		if ext.Label.Op != "ZExt" && ext.Label.Op != "SExt" {
			continue
		}
		ins := g.InEdges(ext, core.DataFlow)
		outs := g.OutEdges(ext, core.DataFlow)
		if len(ins) != 1 || len(outs) != 1 {
			continue
		}
		origBits := ins[0].Src.Label.DataType.Bits
		extValue := outs[0].Dst

		for _, userEdge := range g.OutEdges(extValue, core.DataFlow) {
			user := userEdge.Dst
			if user.Kind != core.KindComputation {
				continue
			}
			if user.Label.Op != "And" && user.Label.Op != "XOr" {
				continue
			}
			userIns := g.InEdges(user, core.DataFlow)
			if len(userIns) != 2 {
				continue
			}
			var mask core.Node
			var found bool
			for _, e := range userIns {
				if e.Src.ID == extValue.ID {
					continue
				}
				mask = e.Src
				found = true
			}
			if !found || !isMaskConstant(mask, origBits) {
				continue
			}

			var cp core.Node
			cp, g = g.AddNode(core.KindCopy, core.NodeLabel{})
			_, g = g.AddEdge(core.DataFlow, extValue, cp)
			g = g.RedirectOutEdges(user, cp)
			g = g.DeleteNode(user)
		}
	}
	return o.WithGraph(g)
}

func isMaskConstant(n core.Node, origBits int) bool {
	if n.Kind != core.KindValue {
		return false
	}
	dt := n.Label.DataType
	if dt.Kind != core.DTIntConst {
		return false
	}
	want := (int64(1) << uint(origBits)) - 1
	return dt.Range.Lo == want && dt.Range.Hi == want
}
