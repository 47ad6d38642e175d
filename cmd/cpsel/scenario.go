package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/machine"
	"github.com/katalvlaran/cpsel/model"
	"github.com/katalvlaran/cpsel/opstruct"
)

// scenarioFile is the reference driver's own -in file format: a flat,
// string-keyed description of one function and the target machine(s) it
// may be matched against. Spec §6 fixes exact wire keys for the
// model/lowering stages persisted between core stages (model/types.go,
// lowering/lowmodel.go, lowering/solution.go); it leaves the CLI's own
// on-disk input format unconstrained ("any equivalent tagged tree format
// is acceptable"), so this type exists only to let make/transform/plot/
// check drive a real file instead of only the built-in demo fixture.
type scenarioFile struct {
	Blocks        []blockSpec        `json:"blocks"`
	Values        []valueSpec        `json:"values"`
	Computations  []computationSpec  `json:"computations"`
	EntryBlock    string             `json:"entry-block"`
	InputValues   []string           `json:"input-values"`
	BlockExecFreq map[string]float64 `json:"block-exec-freq"`
	Machines      []machineSpec      `json:"machines"`
}

type blockSpec struct {
	ID   string   `json:"id"`
	Next []string `json:"next"`
}

type valueSpec struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "int-temp" or "int-const"
	Bits int    `json:"bits"`
	Lo   int64  `json:"lo"`
	Hi   int64  `json:"hi"`
}

type computationSpec struct {
	ID     string   `json:"id"`
	Op     string   `json:"op"`
	Inputs []string `json:"inputs"`
	Output string   `json:"output"`
	Block  string   `json:"block,omitempty"`
}

type machineSpec struct {
	ID           string            `json:"id"`
	Locations    []locationSpec    `json:"locations"`
	Instructions []instructionSpec `json:"instructions"`
}

type locationSpec struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type instructionSpec struct {
	ID       int64         `json:"id"`
	CodeSize int           `json:"code-size"`
	Latency  int           `json:"latency"`
	IsCopy   bool          `json:"is-copy"`
	Patterns []patternSpec `json:"patterns"`
}

type patternSpec struct {
	ID           int64             `json:"id"`
	Values       []valueSpec       `json:"values"`
	Computations []computationSpec `json:"computations"`
	Inputs       []string          `json:"inputs"`
	Outputs      []string          `json:"outputs"`
	Emit         [][]emitPartSpec  `json:"emit"`
}

type emitPartSpec struct {
	Kind string `json:"kind"` // verbatim, location-of, int-const-of, name-of-block, block-of, local-temp, func-of-call
	Text string `json:"text,omitempty"`
	Node string `json:"node,omitempty"`
	Temp int    `json:"temp,omitempty"`
}

// parseScenarioFile reads and decodes a scenarioFile from path.
func parseScenarioFile(path string) (*scenarioFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cpsel: read scenario %s: %w", path, err)
	}
	var sf scenarioFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("cpsel: parse scenario %s: %w", path, err)
	}
	return &sf, nil
}

// buildGraphFromSpec builds a core.Graph plus its string-id -> core.Node
// index from values, computations, and (optionally, nil for a pattern
// graph) blocks. Every computation's block, if set, gets an
// Operation->Block DefPlacement edge; every block's Next entries get a
// Control node mirroring the convention demoTransformFunction already
// uses for branches.
func buildGraphFromSpec(values []valueSpec, comps []computationSpec, blocks []blockSpec) (*core.Graph, map[string]core.Node, error) {
	g := core.NewGraph()
	nodes := make(map[string]core.Node, len(values)+len(comps)+len(blocks))

	for _, b := range blocks {
		var n core.Node
		n, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: b.ID})
		nodes[b.ID] = n
	}
	for _, v := range values {
		dt, err := valueDataType(v)
		if err != nil {
			return nil, nil, err
		}
		var n core.Node
		n, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: dt})
		nodes[v.ID] = n
	}
	for _, c := range comps {
		var n core.Node
		n, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: c.Op})
		nodes[c.ID] = n
		for _, in := range c.Inputs {
			src, ok := nodes[in]
			if !ok {
				return nil, nil, fmt.Errorf("cpsel: computation %s: unknown input %q", c.ID, in)
			}
			_, g = g.AddEdge(core.DataFlow, src, n)
		}
		dst, ok := nodes[c.Output]
		if !ok {
			return nil, nil, fmt.Errorf("cpsel: computation %s: unknown output %q", c.ID, c.Output)
		}
		_, g = g.AddEdge(core.DataFlow, n, dst)
		if c.Block != "" {
			blk, ok := nodes[c.Block]
			if !ok {
				return nil, nil, fmt.Errorf("cpsel: computation %s: unknown block %q", c.ID, c.Block)
			}
			_, g = g.AddEdge(core.DefPlacement, n, blk)
		}
	}
	for _, b := range blocks {
		from := nodes[b.ID]
		for _, next := range b.Next {
			to, ok := nodes[next]
			if !ok {
				return nil, nil, fmt.Errorf("cpsel: block %s: unknown successor %q", b.ID, next)
			}
			var ctrl core.Node
			ctrl, g = g.AddNode(core.KindControl, core.NodeLabel{Op: "br"})
			_, g = g.AddEdge(core.ControlFlow, from, ctrl)
			_, g = g.AddEdge(core.ControlFlow, ctrl, to)
		}
	}
	return g, nodes, nil
}

func valueDataType(v valueSpec) (core.DataType, error) {
	switch v.Type {
	case "int-temp":
		return core.IntTemp(v.Bits), nil
	case "int-const":
		return core.IntConst(core.IntRange{Lo: v.Lo, Hi: v.Hi}), nil
	default:
		return core.DataType{}, fmt.Errorf("cpsel: value %s: unknown type %q", v.ID, v.Type)
	}
}

// buildFunction assembles a model.Function from a scenarioFile.
func buildFunction(sf *scenarioFile) (*model.Function, error) {
	g, nodes, err := buildGraphFromSpec(sf.Values, sf.Computations, sf.Blocks)
	if err != nil {
		return nil, err
	}
	entry, ok := nodes[sf.EntryBlock]
	if !ok {
		return nil, fmt.Errorf("cpsel: unknown entry block %q", sf.EntryBlock)
	}
	inputValues := make([]core.NodeID, 0, len(sf.InputValues))
	for _, id := range sf.InputValues {
		n, ok := nodes[id]
		if !ok {
			return nil, fmt.Errorf("cpsel: unknown input value %q", id)
		}
		inputValues = append(inputValues, n.ID)
	}
	execFreq := make(map[core.NodeID]float64, len(sf.BlockExecFreq))
	for id, freq := range sf.BlockExecFreq {
		n, ok := nodes[id]
		if !ok {
			return nil, fmt.Errorf("cpsel: unknown block %q in block-exec-freq", id)
		}
		execFreq[n.ID] = freq
	}

	return &model.Function{
		OpStruct:      opstruct.New(g).WithEntryBlock(entry),
		BlockExecFreq: execFreq,
		InputValues:   inputValues,
	}, nil
}

// buildMachine assembles a machine.TargetMachine from a machineSpec.
func buildMachine(ms machineSpec) (*machine.TargetMachine, error) {
	instructions := make(map[core.InstrID]machine.Instruction, len(ms.Instructions))
	for _, is := range ms.Instructions {
		patterns := make([]machine.InstrPattern, 0, len(is.Patterns))
		for _, ps := range is.Patterns {
			pg, nodes, err := buildGraphFromSpec(ps.Values, ps.Computations, nil)
			if err != nil {
				return nil, err
			}
			inputs, err := lookupNodeIDs(nodes, ps.Inputs)
			if err != nil {
				return nil, err
			}
			outputs, err := lookupNodeIDs(nodes, ps.Outputs)
			if err != nil {
				return nil, err
			}
			tmpl, err := buildEmitTemplate(ps.Emit, nodes)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, machine.InstrPattern{
				ID:              core.PatternID(ps.ID),
				OpStruct:        opstruct.New(pg),
				InputDataNodes:  inputs,
				OutputDataNodes: outputs,
				EmitTemplate:    tmpl,
			})
		}
		instructions[core.InstrID(is.ID)] = machine.Instruction{
			ID:       core.InstrID(is.ID),
			Patterns: patterns,
			Properties: machine.InstructionProperties{
				CodeSize: is.CodeSize,
				Latency:  is.Latency,
				IsCopy:   is.IsCopy,
			},
		}
	}

	locations := make(map[core.LocationID]machine.Location, len(ms.Locations))
	for _, ls := range ms.Locations {
		locations[core.LocationID(ls.ID)] = machine.Location{ID: core.LocationID(ls.ID), Name: ls.Name}
	}

	return &machine.TargetMachine{
		ID:           machine.TargetMachineID(ms.ID),
		Instructions: instructions,
		Locations:    locations,
	}, nil
}

func lookupNodeIDs(nodes map[string]core.Node, ids []string) ([]core.NodeID, error) {
	out := make([]core.NodeID, 0, len(ids))
	for _, id := range ids {
		n, ok := nodes[id]
		if !ok {
			return nil, fmt.Errorf("cpsel: unknown node %q", id)
		}
		out = append(out, n.ID)
	}
	return out, nil
}

func buildEmitTemplate(lines [][]emitPartSpec, nodes map[string]core.Node) (machine.EmitStringTemplate, error) {
	tmpl := machine.EmitStringTemplate{Lines: make([]machine.EmitLine, 0, len(lines))}
	for _, line := range lines {
		parts := make([]machine.EmitPart, 0, len(line))
		for _, p := range line {
			part, err := buildEmitPart(p, nodes)
			if err != nil {
				return machine.EmitStringTemplate{}, err
			}
			parts = append(parts, part)
		}
		tmpl.Lines = append(tmpl.Lines, machine.EmitLine{Parts: parts})
	}
	return tmpl, nil
}

func buildEmitPart(p emitPartSpec, nodes map[string]core.Node) (machine.EmitPart, error) {
	nodeID := func() (core.NodeID, error) {
		n, ok := nodes[p.Node]
		if !ok {
			return 0, fmt.Errorf("cpsel: emit part references unknown node %q", p.Node)
		}
		return n.ID, nil
	}
	switch p.Kind {
	case "verbatim":
		return machine.Verbatim(p.Text), nil
	case "int-const-of":
		id, err := nodeID()
		return machine.IntConstOf(id), err
	case "location-of":
		id, err := nodeID()
		return machine.LocationOf(id), err
	case "name-of-block":
		id, err := nodeID()
		return machine.NameOfBlock(id), err
	case "block-of":
		id, err := nodeID()
		return machine.BlockOf(id), err
	case "local-temp":
		return machine.LocalTemporary(p.Temp), nil
	case "func-of-call":
		id, err := nodeID()
		return machine.FuncOfCall(id), err
	default:
		return machine.EmitPart{}, fmt.Errorf("cpsel: unknown emit part kind %q", p.Kind)
	}
}

// machineByTarget selects the machine named target from sf, or sf's only
// machine if target is "".
func machineByTarget(sf *scenarioFile, target string) (*machine.TargetMachine, error) {
	if target == "" && len(sf.Machines) == 1 {
		return buildMachine(sf.Machines[0])
	}
	for _, ms := range sf.Machines {
		if ms.ID == target {
			return buildMachine(ms)
		}
	}
	return nil, fmt.Errorf("cpsel: scenario has no machine named %q", target)
}
