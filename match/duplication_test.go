package match_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/match"
	"github.com/stretchr/testify/require"
)

func TestDuplicateAmbiguousBlocksSplitsDefPlacementEdges(t *testing.T) {
	g := core.NewGraph()
	var block, op, val core.Node
	block, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "bb0"})
	op, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	val, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	_, g = g.AddEdge(core.DefPlacement, op, block)
	_, g = g.AddEdge(core.DefPlacement, block, val)

	out := match.DuplicateAmbiguousBlocks(g)

	var instances []core.Node
	for _, n := range out.Nodes() {
		if n.ID == block.ID {
			instances = append(instances, n)
		}
	}
	require.Len(t, instances, 2)

	var withIn, withOut int
	for _, b := range instances {
		if len(out.InEdges(b, core.DefPlacement)) > 0 {
			withIn++
			require.Empty(t, out.OutEdges(b, core.DefPlacement))
		}
		if len(out.OutEdges(b, core.DefPlacement)) > 0 {
			withOut++
			require.Empty(t, out.InEdges(b, core.DefPlacement))
		}
	}
	require.Equal(t, 1, withIn)
	require.Equal(t, 1, withOut)
}

func TestDuplicateAmbiguousBlocksLeavesUnambiguousBlocksAlone(t *testing.T) {
	g := core.NewGraph()
	var block, val core.Node
	block, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "bb0"})
	val, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	_, g = g.AddEdge(core.DefPlacement, block, val)

	out := match.DuplicateAmbiguousBlocks(g)

	var instances int
	for _, n := range out.Nodes() {
		if n.ID == block.ID {
			instances++
		}
	}
	require.Equal(t, 1, instances)
}
