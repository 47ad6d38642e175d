package core_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/stretchr/testify/require"
)

func outNumbers(g *core.Graph, n core.Node, kind core.EdgeKind) []int {
	var nums []int
	for _, e := range g.OutEdges(n, kind) {
		nums = append(nums, e.OutNumber)
	}
	return nums
}

func inNumbers(g *core.Graph, n core.Node, kind core.EdgeKind) []int {
	var nums []int
	for _, e := range g.InEdges(n, kind) {
		nums = append(nums, e.InNumber)
	}
	return nums
}

func isContiguousFromZero(nums []int) bool {
	seen := make(map[int]bool, len(nums))
	for _, n := range nums {
		seen[n] = true
	}
	for i := 0; i < len(nums); i++ {
		if !seen[i] {
			return false
		}
	}
	return true
}

func TestAddNodeAssignsSequentialPublicIDs(t *testing.T) {
	g := core.NewGraph()
	var a, b, c core.Node
	a, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	b, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	c, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})

	require.Equal(t, core.NodeID(0), a.ID)
	require.Equal(t, core.NodeID(1), b.ID)
	require.Equal(t, core.NodeID(2), c.ID)
	require.Len(t, g.Nodes(), 3)
}

func TestAddEdgeNumbersAreContiguousPerEndpointAndKind(t *testing.T) {
	g := core.NewGraph()
	var v1, v2, v3, add core.Node
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})

	_, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DataFlow, v2, add)
	_, g = g.AddEdge(core.DataFlow, add, v3)

	require.True(t, isContiguousFromZero(inNumbers(g, add, core.DataFlow)))
	require.True(t, isContiguousFromZero(outNumbers(g, add, core.DataFlow)))
}

func TestDeleteEdgeRepacksRemainingNumbers(t *testing.T) {
	g := core.NewGraph()
	var v1, v2, v3, add core.Node
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})

	var e1 core.Edge
	e1, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DataFlow, v2, add)
	_, g = g.AddEdge(core.DataFlow, v3, add)

	g = g.DeleteEdge(e1)

	nums := inNumbers(g, add, core.DataFlow)
	require.ElementsMatch(t, []int{0, 1}, nums)
}

func TestDeleteNodeRemovesIncidentEdges(t *testing.T) {
	g := core.NewGraph()
	var v1, add core.Node
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, v1, add)

	g = g.DeleteNode(v1)

	require.Len(t, g.Nodes(), 1)
	require.Empty(t, g.InEdges(add, core.DataFlow))
}

func TestMergeNodesRedirectsAndDropsSelfLoops(t *testing.T) {
	g := core.NewGraph()
	var keep, discard, other core.Node
	keep, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	discard, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	other, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, discard, other)
	_, g = g.AddEdge(core.DataFlow, keep, discard)

	g = g.MergeNodes(keep, discard)

	require.Len(t, g.Nodes(), 2)
	for _, e := range g.Edges() {
		require.False(t, e.Src.SameInstance(discard))
		require.False(t, e.Dst.SameInstance(discard))
	}
	require.Empty(t, g.EdgesBetween(keep, keep))
}

func TestUpdateEdgeSourceLeavesGapUntilRepack(t *testing.T) {
	g := core.NewGraph()
	var a, b, c, op core.Node
	a, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	b, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	c, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	op, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})

	var e0, e1 core.Edge
	e0, g = g.AddEdge(core.DataFlow, a, op)
	e1, g = g.AddEdge(core.DataFlow, a, b)
	_ = e1

	var moved core.Edge
	moved, g = g.UpdateEdgeSource(e0, c)
	require.Equal(t, 0, moved.OutNumber)

	// a's remaining edge kept its original out-number: a gap remains at a.
	require.ElementsMatch(t, []int{1}, outNumbers(g, a, core.DataFlow))

	g = g.Repack(a)
	require.True(t, isContiguousFromZero(outNumbers(g, a, core.DataFlow)))
}

func TestReplaceNodeLabelPreservesPublicIDAndIncidentEdges(t *testing.T) {
	g := core.NewGraph()
	var v, user core.Node
	v, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.PointerTempType(64)})
	user, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "store"})
	_, g = g.AddEdge(core.DataFlow, v, user)

	var replacement core.Node
	replacement, g = g.ReplaceNodeLabel(v, core.KindValue, core.NodeLabel{DataType: core.IntTemp(64)})

	require.Equal(t, v.ID, replacement.ID)
	require.False(t, replacement.SameInstance(v))
	require.Equal(t, core.IntTemp(64), replacement.Label.DataType)
	require.ElementsMatch(t, []core.Node{user}, g.OutNeighbours(replacement, core.DataFlow))
	require.False(t, g.IsInGraph(v))
}

func TestDataTypeCompatibility(t *testing.T) {
	require.True(t, core.AnyType().CompatibleWith(core.IntTemp(32)))
	require.True(t, core.IntTemp(32).CompatibleWith(core.IntTemp(32)))
	require.False(t, core.IntTemp(32).CompatibleWith(core.IntTemp(64)))

	wide := core.IntConst(core.IntRange{Lo: -128, Hi: 127})
	narrow := core.IntConst(core.IntRange{Lo: 0, Hi: 10})
	require.True(t, wide.CompatibleWith(narrow))
	require.False(t, narrow.CompatibleWith(wide))
}
