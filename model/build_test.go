package model_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/machine"
	"github.com/katalvlaran/cpsel/match"
	"github.com/katalvlaran/cpsel/model"
	"github.com/katalvlaran/cpsel/opstruct"
	"github.com/stretchr/testify/require"
)

// buildAddFunction builds a one-block function: Block(entry) -> Value(v1),
// Value(v2) feed Computation(add) -> Value(v3); add is placed in the
// entry block.
func buildAddFunction() (*core.Graph, core.Node, core.Node, core.Node, core.Node, core.Node) {
	g := core.NewGraph()
	var b1, v1, v2, v3, add core.Node
	b1, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "entry"})
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DataFlow, v2, add)
	_, g = g.AddEdge(core.DataFlow, add, v3)
	_, g = g.AddEdge(core.DefPlacement, add, b1)
	return g, b1, v1, v2, v3, add
}

func buildAddPatternWithNodes(op string) (*core.Graph, core.Node, core.Node, core.Node, core.Node) {
	g := core.NewGraph()
	var v1, v2, v3, add core.Node
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: op})
	_, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DataFlow, v2, add)
	_, g = g.AddEdge(core.DataFlow, add, v3)
	return g, v1, v2, v3, add
}

func buildTestMachine(pg *core.Graph, v1, v2, v3, add core.Node) *machine.TargetMachine {
	tmpl := machine.EmitStringTemplate{
		Lines: []machine.EmitLine{
			{Parts: []machine.EmitPart{
				machine.Verbatim("add "),
				machine.LocationOf(v3.ID),
				machine.Verbatim(", "),
				machine.LocationOf(v1.ID),
				machine.Verbatim(", "),
				machine.LocationOf(v2.ID),
			}},
		},
	}
	return &machine.TargetMachine{
		ID: "test-machine",
		Instructions: map[core.InstrID]machine.Instruction{
			1: {
				ID: 1,
				Patterns: []machine.InstrPattern{
					{
						ID:              1,
						OpStruct:        opstruct.New(pg),
						InputDataNodes:  []core.NodeID{v1.ID, v2.ID},
						OutputDataNodes: []core.NodeID{v3.ID},
						EmitTemplate:    tmpl,
					},
				},
				Properties: machine.InstructionProperties{CodeSize: 4, Latency: 1},
			},
		},
		Locations: map[core.LocationID]machine.Location{1: {ID: 1, Name: "r0"}, 2: {ID: 2, Name: "r1"}},
	}
}

func TestBuildAssemblesFunctionAndMatchParams(t *testing.T) {
	fg, b1, v1In, v2In, _, _ := buildAddFunction()
	pg, pv1, pv2, pv3, padd := buildAddPatternWithNodes("add")
	tm := buildTestMachine(pg, pv1, pv2, pv3, padd)

	fn := &model.Function{
		OpStruct:      opstruct.New(fg).WithEntryBlock(b1),
		BlockExecFreq: map[core.NodeID]float64{b1.ID: 1.0},
		InputValues:   []core.NodeID{v1In.ID, v2In.ID},
	}

	matches, stats := match.FindPatternMatches(fg, tm)
	require.Equal(t, 1, stats.Found)
	require.Len(t, matches, 1)

	hlm, err := model.Build(fn, tm, matches)
	require.NoError(t, err)

	require.Equal(t, b1.ID, hlm.FunctionParams.EntryBlock)
	require.Len(t, hlm.FunctionParams.BlockNodes, 1)
	require.Len(t, hlm.FunctionParams.DataNodes, 3)
	require.Len(t, hlm.FunctionParams.OperationNodes, 1)
	require.Contains(t, hlm.FunctionParams.BlockDomSets, b1.ID)
	require.Equal(t, machine.TargetMachineID("test-machine"), hlm.MachineParams.TargetMachineID)
	require.ElementsMatch(t, []core.LocationID{1, 2}, hlm.MachineParams.Locations)

	require.Len(t, hlm.MatchParams, 1)
	mp := hlm.MatchParams[0]
	require.Equal(t, core.InstrID(1), mp.InstrID)
	require.Equal(t, core.PatternID(1), mp.PatternID)
	require.Len(t, mp.OperationsCovered, 1)
	require.Len(t, mp.DataUsed, 2)
	require.Len(t, mp.DataDefined, 1)
	require.True(t, mp.ApplyDefDomUseConstraint)
	require.True(t, mp.IsNonCopyInstruction)
	require.False(t, mp.HasControlFlow)
	require.Equal(t, 4, mp.CodeSize)
	require.Equal(t, 1, mp.Latency)
	require.Len(t, mp.AsmStrNodeMaps, 6)
	require.True(t, mp.AsmStrNodeMaps[1].HasFunctionNode)
	require.False(t, mp.AsmStrNodeMaps[0].HasFunctionNode)
}

func TestBuildReportsMissingEntryBlock(t *testing.T) {
	fg, _, _, _, _, _ := buildAddFunction()
	fn := &model.Function{OpStruct: opstruct.New(fg)}
	tm := &machine.TargetMachine{ID: "test-machine"}

	_, err := model.Build(fn, tm, nil)
	require.ErrorIs(t, err, model.ErrMissingEntryBlock)
}
