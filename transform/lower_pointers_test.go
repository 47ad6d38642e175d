package transform_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
	"github.com/katalvlaran/cpsel/transform"
	"github.com/stretchr/testify/require"
)

// TestLowerPointersScenario mirrors spec §8 scenario 3: one Pointer-temp
// value, one Pointer-null value, one IntToPtr computation between them,
// target pointer_size=64, null_pointer_value=0. After LowerPointers the
// two value nodes become IntTemp{64} and IntConst{[0,0],64}, and the
// IntToPtr node is gone (equal widths) with its endpoints merged.
func TestLowerPointersScenario(t *testing.T) {
	g := core.NewGraph()
	var ptrTemp, ptrNull, cast core.Node
	ptrTemp, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.PointerTempType(64)})
	ptrNull, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.PointerNullType()})
	cast, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "IntToPtr"})
	_, g = g.AddEdge(core.DataFlow, ptrNull, cast)
	_, g = g.AddEdge(core.DataFlow, cast, ptrTemp)

	o := opstruct.New(g)
	sizing := transform.PointerSizing{PointerBits: 64, NullPointerValue: 0}
	out := transform.LowerPointers(o, sizing)

	require.False(t, out.Graph.IsInGraph(cast))

	var survivors []core.Node
	for _, n := range out.Graph.Nodes() {
		if n.Kind == core.KindValue {
			survivors = append(survivors, n)
		}
	}
	require.Len(t, survivors, 1)
	require.Equal(t, core.IntConstBits(core.IntRange{Lo: 0, Hi: 0}, 64), survivors[0].Label.DataType)
}
