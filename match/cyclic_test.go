package match_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/match"
	"github.com/stretchr/testify/require"
)

// buildTwoBranchFunction builds: v1 -> o1 -> v2; v3 -> o2 -> v4; v2,v4 -> o3
// -> v5. o1, o2 are candidate match operations; o3 is outside the match.
// When link is true, v5 feeds back into o2, giving component {o1,v2} an
// external path into component {o2,v4}.
func buildTwoBranchFunction(link bool) (*core.Graph, core.Node, core.Node, core.Node, core.Node) {
	g := core.NewGraph()
	var v1, v2, v3, v4, v5, o1, o2, o3 core.Node
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v4, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v5, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	o1, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	o2, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	o3, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, v1, o1)
	_, g = g.AddEdge(core.DataFlow, o1, v2)
	_, g = g.AddEdge(core.DataFlow, v3, o2)
	_, g = g.AddEdge(core.DataFlow, o2, v4)
	_, g = g.AddEdge(core.DataFlow, v2, o3)
	_, g = g.AddEdge(core.DataFlow, v4, o3)
	_, g = g.AddEdge(core.DataFlow, o3, v5)
	if link {
		_, g = g.AddEdge(core.DataFlow, v5, o2)
	}
	return g, o1, v2, o2, v4
}

func TestHasCyclicDataDependencyRejectsExternallyLinkedComponents(t *testing.T) {
	g, o1, v2, o2, v4 := buildTwoBranchFunction(true)
	fullSSA := core.ExtractSSA(g)
	m := match.NodeMatch{Pairs: []match.Pair{
		{FunctionNode: o1.ID, PatternNode: 100},
		{FunctionNode: v2.ID, PatternNode: 101},
		{FunctionNode: o2.ID, PatternNode: 102},
		{FunctionNode: v4.ID, PatternNode: 103},
	}}
	require.True(t, match.HasCyclicDataDependency(fullSSA, m))
}

func TestHasCyclicDataDependencyAcceptsIndependentComponents(t *testing.T) {
	g, o1, v2, o2, v4 := buildTwoBranchFunction(false)
	fullSSA := core.ExtractSSA(g)
	m := match.NodeMatch{Pairs: []match.Pair{
		{FunctionNode: o1.ID, PatternNode: 100},
		{FunctionNode: v2.ID, PatternNode: 101},
		{FunctionNode: o2.ID, PatternNode: 102},
		{FunctionNode: v4.ID, PatternNode: 103},
	}}
	require.False(t, match.HasCyclicDataDependency(fullSSA, m))
}
