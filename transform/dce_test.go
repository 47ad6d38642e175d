package transform_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
	"github.com/katalvlaran/cpsel/transform"
	"github.com/stretchr/testify/require"
)

func TestDeadCodeEliminationRemovesUnusedChain(t *testing.T) {
	g := core.NewGraph()
	var a, addOut, mulOut, add, mul core.Node
	a, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	addOut, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	mul, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "mul"})
	mulOut, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	_, g = g.AddEdge(core.DataFlow, a, add)
	_, g = g.AddEdge(core.DataFlow, add, addOut)
	_, g = g.AddEdge(core.DataFlow, addOut, mul)
	_, g = g.AddEdge(core.DataFlow, mul, mulOut)

	out := transform.DeadCodeElimination(opstruct.New(g))

	require.False(t, out.Graph.IsInGraph(mulOut))
	require.False(t, out.Graph.IsInGraph(mul))
	require.False(t, out.Graph.IsInGraph(addOut))
	require.False(t, out.Graph.IsInGraph(add))
	require.True(t, out.Graph.IsInGraph(a), "an unconsumed function input with no definer is not deleted")
}

func TestDeadCodeEliminationKeepsUnusedCallResult(t *testing.T) {
	g := core.NewGraph()
	var call, result core.Node
	call, g = g.AddNode(core.KindCall, core.NodeLabel{Fn: "f"})
	result, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	_, g = g.AddEdge(core.DataFlow, call, result)

	out := transform.DeadCodeElimination(opstruct.New(g))

	require.True(t, out.Graph.IsInGraph(call))
	require.True(t, out.Graph.IsInGraph(result))
}
