package main

import (
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/machine"
	"github.com/katalvlaran/cpsel/model"
	"github.com/katalvlaran/cpsel/opstruct"
)

// demoMatchFunction builds a one-block function computing v3 = add(v1, v2)
// in its single block, matching the shape of the demo machine's sole
// instruction. It is the fallback fixture make/plot/check run against
// when invoked with no -in flag; scenario.go's loader is the real path.
func demoMatchFunction() (*model.Function, core.Node, core.Node, core.Node) {
	g := core.NewGraph()
	var entry, v1, v2, v3, add core.Node
	entry, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "entry"})
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DataFlow, v2, add)
	_, g = g.AddEdge(core.DataFlow, add, v3)
	_, g = g.AddEdge(core.DefPlacement, add, entry)

	fn := &model.Function{
		OpStruct:      opstruct.New(g).WithEntryBlock(entry),
		BlockExecFreq: map[core.NodeID]float64{entry.ID: 1.0},
		InputValues:   []core.NodeID{v1.ID, v2.ID},
	}
	return fn, v1, v2, v3
}

// demoMachine builds a one-instruction, two-location target machine whose
// single pattern matches v3 = add(v1, v2), with an emit template that
// resolves every operand's location. It is the fallback target machine
// for make/plot/check when invoked with no -in flag.
func demoMachine() *machine.TargetMachine {
	pg := core.NewGraph()
	var pv1, pv2, pv3, padd core.Node
	pv1, pg = pg.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	pv2, pg = pg.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	pv3, pg = pg.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	padd, pg = pg.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, pg = pg.AddEdge(core.DataFlow, pv1, padd)
	_, pg = pg.AddEdge(core.DataFlow, pv2, padd)
	_, pg = pg.AddEdge(core.DataFlow, padd, pv3)

	tmpl := machine.EmitStringTemplate{
		Lines: []machine.EmitLine{
			{Parts: []machine.EmitPart{
				machine.Verbatim("add "),
				machine.LocationOf(pv3.ID),
				machine.Verbatim(", "),
				machine.LocationOf(pv1.ID),
				machine.Verbatim(", "),
				machine.LocationOf(pv2.ID),
			}},
		},
	}

	return &machine.TargetMachine{
		ID: "demo-rr32",
		Instructions: map[core.InstrID]machine.Instruction{
			1: {
				ID: 1,
				Patterns: []machine.InstrPattern{{
					ID:              1,
					OpStruct:        opstruct.New(pg),
					InputDataNodes:  []core.NodeID{pv1.ID, pv2.ID},
					OutputDataNodes: []core.NodeID{pv3.ID},
					EmitTemplate:    tmpl,
				}},
				Properties: machine.InstructionProperties{CodeSize: 4, Latency: 1},
			},
		},
		Locations: map[core.LocationID]machine.Location{
			1: {ID: 1, Name: "r0"},
			2: {ID: 2, Name: "r1"},
		},
	}
}

// demoTransformFunction builds a two-block function in which entry
// computes v3 = add(v1, zero) and branches to exit. CanonicalizeCopies
// rewrites the add into a copy of v1 (zero being add's identity
// constant), and DeadCodeElimination then removes the unused v3 with its
// copy; the other DefaultPipeline steps find nothing to rewrite. It is
// the fallback fixture runTransform uses when invoked with no -in flag.
func demoTransformFunction() *opstruct.OpStruct {
	g := core.NewGraph()
	var entry, exit, ctrl, v1, vzero, v3 core.Node
	entry, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "entry"})
	exit, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "exit"})
	ctrl, g = g.AddNode(core.KindControl, core.NodeLabel{Op: "br"})
	_, g = g.AddEdge(core.ControlFlow, entry, ctrl)
	_, g = g.AddEdge(core.ControlFlow, ctrl, exit)

	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	vzero, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntConst(core.IntRange{Lo: 0, Hi: 0})})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	var add core.Node
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DataFlow, vzero, add)
	_, g = g.AddEdge(core.DataFlow, add, v3)
	_, g = g.AddEdge(core.DefPlacement, add, entry)

	return opstruct.New(g).WithEntryBlock(entry)
}
