package transform_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
	"github.com/katalvlaran/cpsel/transform"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeCopiesRewritesAddZeroToCopy(t *testing.T) {
	g := core.NewGraph()
	var v, zero, add core.Node
	v, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	zero, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntConst(core.IntRange{Lo: 0, Hi: 0})})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, v, add)
	_, g = g.AddEdge(core.DataFlow, zero, add)

	o := opstruct.New(g)
	out := transform.CanonicalizeCopies(o)

	var copies []core.Node
	for _, n := range out.Graph.Nodes() {
		if n.Kind == core.KindCopy {
			copies = append(copies, n)
		}
	}
	require.Len(t, copies, 1)
	ins := out.Graph.InEdges(copies[0], core.DataFlow)
	require.Len(t, ins, 1)
	require.Equal(t, v.ID, ins[0].Src.ID)
	require.False(t, out.Graph.IsInGraph(add))
}

func TestCanonicalizeCopiesLeavesNonIdentityAddAlone(t *testing.T) {
	g := core.NewGraph()
	var a, b, add core.Node
	a, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	b, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, a, add)
	_, g = g.AddEdge(core.DataFlow, b, add)

	out := transform.CanonicalizeCopies(opstruct.New(g))

	require.True(t, out.Graph.IsInGraph(add))
	for _, n := range out.Graph.Nodes() {
		require.NotEqual(t, core.KindCopy, n.Kind)
	}
}
