package transform

import (
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
)

// PointerSizing names the two architectural constants LowerPointers needs
// from the target machine. It is its own struct, so package transform does
// not import package machine.
type PointerSizing struct {
	PointerBits      int
	NullPointerValue int64
}

// LowerPointers rewrites every Pointer-typed value node into an
// integer-typed value node of the target's pointer size (spec §4.8):
// Pointer-temp becomes IntTemp{bits}, Pointer-null and Pointer-const-range
// become IntConst{range, bits}. It then removes pointer-to-pointer casts
// of equal width by merging the cast's input and output value nodes, and
// rewrites surviving IntToPtr/PtrToInt computations into ZExt or Trunc
// depending on whether the integer side is wider or narrower than the
// pointer side.
func LowerPointers(o *opstruct.OpStruct, sizing PointerSizing) *opstruct.OpStruct {
	g := o.Graph

	for _, n := range g.Nodes() {
		if n.Kind != core.KindValue || n.Label.DataType.Kind != core.DTPointer {
			continue
		}
		label := n.Label
		label.DataType = lowerPointerType(n.Label.DataType, sizing)
		_, g = g.ReplaceNodeLabel(n, n.Kind, label)
	}
	o = o.WithGraph(g)

	for _, n := range o.Graph.Nodes() {
		if n.Kind != core.KindComputation {
			continue
		}
		if n.Label.Op != "IntToPtr" && n.Label.Op != "PtrToInt" {
			continue
		}
		g = o.Graph
		ins := g.InEdges(n, core.DataFlow)
		outs := g.OutEdges(n, core.DataFlow)
		if len(ins) != 1 || len(outs) != 1 {
			panic(&core.PreconditionError{Op: "LowerPointers", Detail: "IntToPtr/PtrToInt must have exactly one data input and one data output"})
		}
		in, out := ins[0].Src, outs[0].Dst
		inBits, outBits := in.Label.DataType.Bits, out.Label.DataType.Bits

		if inBits == outBits {
			g = g.DeleteNode(n)
			g = g.MergeNodes(in, out)
			o = replaceNodeIDEverywhere(o.WithGraph(g), out.ID, in.ID)
			continue
		}

		newOp := "ZExt"
		if outBits < inBits {
			newOp = "Trunc"
		}
		label := n.Label
		label.Op = newOp
		_, g = g.ReplaceNodeLabel(n, n.Kind, label)
		o = o.WithGraph(g)
	}

	return o
}

func lowerPointerType(dt core.DataType, sizing PointerSizing) core.DataType {
	switch dt.PointerVariant {
	case core.PointerTemp:
		return core.IntTemp(sizing.PointerBits)
	case core.PointerNull:
		return core.IntConstBits(core.IntRange{Lo: sizing.NullPointerValue, Hi: sizing.NullPointerValue}, sizing.PointerBits)
	case core.PointerConstRange:
		return core.IntConstBits(dt.Range, sizing.PointerBits)
	default:
		panic(&core.PreconditionError{Op: "LowerPointers", Detail: "unrecognized pointer variant"})
	}
}
