package lowering_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/constraint"
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/lowering"
	"github.com/katalvlaran/cpsel/model"
	"github.com/stretchr/testify/require"
)

// buildSmallFunction builds one Block(b1) and three IntTemp(32) values
// v1, v2, v3, with no edges between them.
func buildSmallFunction() (*core.Graph, core.Node, core.Node, core.Node, core.Node) {
	g := core.NewGraph()
	var b1, v1, v2, v3 core.Node
	b1, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "entry"})
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	return g, b1, v1, v2, v3
}

func TestBuildArrayIndexMaplistsSortsAscendingPerNamespace(t *testing.T) {
	g, _, _, _, _ := buildSmallFunction()
	maps := lowering.BuildArrayIndexMaplists(g, []core.MatchID{5, 2}, []core.LocationID{9, 1}, []core.InstrID{3, 0})

	require.Equal(t, []core.MatchID{2, 5}, maps.Matches)
	require.Equal(t, []core.LocationID{1, 9}, maps.Locations)
	require.Equal(t, []core.InstrID{0, 3}, maps.Instructions)
	require.Len(t, maps.Entities, 3)
	require.Len(t, maps.Blocks, 1)
}

func TestLowerAndRaiseRoundTripBlockOrder(t *testing.T) {
	g, b1, v1, v2, v3 := buildSmallFunction()

	hlm := &model.HighLevelModel{
		FunctionParams: model.FunctionParams{
			BlockNodes:   []core.NodeID{b1.ID},
			DataNodes:    []core.NodeID{v1.ID, v2.ID, v3.ID},
			EntryBlock:   b1.ID,
			BlockDomSets: map[core.NodeID][]core.NodeID{b1.ID: {b1.ID}},
			BlockParams:  []model.BlockParam{{Name: "entry", Node: b1.ID, ExecFreq: 1.0}},
			Constraints: []constraint.BoolExpr{
				constraint.EqLocation(constraint.LocationOf(constraint.ANodeID(v1.ID)), constraint.ALocationID(1)),
			},
		},
		MachineParams: model.MachineParams{Locations: []core.LocationID{1, 2}},
	}

	maps := lowering.BuildArrayIndexMaplists(g, nil, []core.LocationID{1, 2}, nil)
	llm := lowering.Lower(maps, hlm)

	require.Equal(t, 3, llm.FunNumData)
	require.Equal(t, 1, llm.FunNumBlocks)
	require.Equal(t, 0, llm.FunEntryBlock)
	require.Equal(t, [][]int{{0}}, llm.FunBlockDomSets)
	require.Len(t, llm.FunConstraints, 1)

	sol := &lowering.LowLevelSolution{
		OrderOfBBs:      []int{0},
		IsMatchSelected: nil,
		HasDataLoc:      []bool{true, false, false},
		LocSelectedForData: []int{0, 0, 0},
	}
	hls := lowering.Raise(maps, sol)
	require.Equal(t, []core.NodeID{b1.ID}, hls.OrderOfBBs)
	require.Equal(t, core.LocationID(1), hls.LocsOfDataNodes[v1.ID])
	require.NotContains(t, hls.LocsOfDataNodes, v2.ID)
}
