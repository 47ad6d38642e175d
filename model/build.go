package model

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cpsel/constraint"
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/machine"
	"github.com/katalvlaran/cpsel/match"
)

// Build assembles a HighLevelModel from fn, tm, and matches, per spec
// §4.5/§6.
func Build(fn *Function, tm *machine.TargetMachine, matches []match.PatternMatch) (*HighLevelModel, error) {
	fp, err := buildFunctionParams(fn)
	if err != nil {
		return nil, err
	}

	mp := MachineParams{
		TargetMachineID: tm.ID,
		Locations:       sortedLocationIDs(tm.LocationIDs()),
	}

	matchParams := make([]MatchParams, 0, len(matches))
	for _, pm := range matches {
		built, err := buildMatchParams(fn.OpStruct.Graph, tm, pm)
		if err != nil {
			return nil, err
		}
		matchParams = append(matchParams, built)
	}

	return &HighLevelModel{
		FunctionParams: fp,
		MachineParams:  mp,
		MatchParams:    matchParams,
	}, nil
}

func buildFunctionParams(fn *Function) (FunctionParams, error) {
	g := fn.OpStruct.Graph
	if !fn.OpStruct.HasEntryBlock {
		return FunctionParams{}, ErrMissingEntryBlock
	}

	var ops, data, states, blocks []core.NodeID
	for _, n := range g.Nodes() {
		switch {
		case n.Kind.IsOperation():
			ops = append(ops, n.ID)
		case n.Kind == core.KindValue:
			data = append(data, n.ID)
		case n.Kind == core.KindState:
			states = append(states, n.ID)
		case n.Kind == core.KindBlock:
			blocks = append(blocks, n.ID)
		}
	}

	cfg := core.ExtractCFG(g)
	domSets := core.DomSets(cfg)
	blockDomSets := make(map[core.NodeID][]core.NodeID, len(domSets))
	for b, set := range domSets {
		blockDomSets[b] = sortedNodeIDSet(set)
	}

	defEdges := collectDefEdges(g)

	blockParams := make([]BlockParam, 0, len(blocks))
	for _, id := range blocks {
		n, _ := findNodeByID(g, id)
		blockParams = append(blockParams, BlockParam{
			Name:     n.Label.Name,
			Node:     id,
			ExecFreq: fn.BlockExecFreq[id],
		})
	}

	var intConstData []IntConstBinding
	for _, id := range data {
		n, _ := findNodeByID(g, id)
		if n.Label.DataType.Kind == core.DTIntConst {
			intConstData = append(intConstData, IntConstBinding{Node: id, Range: n.Label.DataType.Range})
		}
	}

	return FunctionParams{
		OperationNodes: ops,
		DataNodes:      data,
		StateNodes:     states,
		BlockNodes:     blocks,
		EntryBlock:     fn.OpStruct.EntryBlock.ID,
		BlockDomSets:   blockDomSets,
		DefEdges:       defEdges,
		BlockParams:    blockParams,
		IntConstData:   intConstData,
		Constraints:    fn.OpStruct.Constraints,
	}, nil
}

// collectDefEdges gathers every DefPlacement edge directly connecting a
// Block node to a Value or State node, normalizing orientation so the
// block is always reported first regardless of which endpoint the edge
// was actually stored Src/Dst (the glossary allows either, by node kind).
func collectDefEdges(g *core.Graph) []DefEdge {
	var out []DefEdge
	for _, e := range g.Edges() {
		if e.Kind != core.DefPlacement {
			continue
		}
		var block, entity core.Node
		switch {
		case e.Src.Kind == core.KindBlock && isEntityKind(e.Dst.Kind):
			block, entity = e.Src, e.Dst
		case e.Dst.Kind == core.KindBlock && isEntityKind(e.Src.Kind):
			block, entity = e.Dst, e.Src
		default:
			continue
		}
		out = append(out, DefEdge{Block: block.ID, Entity: entity.ID})
	}
	return out
}

func isEntityKind(k core.NodeKind) bool {
	return k == core.KindValue || k == core.KindState
}

func buildMatchParams(fg *core.Graph, tm *machine.TargetMachine, pm match.PatternMatch) (MatchParams, error) {
	instr, err := tm.Instruction(pm.InstrID)
	if err != nil {
		return MatchParams{}, fmt.Errorf("model: match %d: %w: %v", pm.MatchID, ErrUnmatchedInstruction, err)
	}
	pat, err := instr.Pattern(pm.PatternID)
	if err != nil {
		return MatchParams{}, fmt.Errorf("model: match %d: %w: %v", pm.MatchID, ErrUnmatchedInstruction, err)
	}
	pg := pat.OpStruct.Graph

	var opsCovered, spanned []core.NodeID
	for _, pair := range pm.NodeMatch.Pairs {
		pn, ok := findNodeByID(pg, pair.PatternNode)
		if !ok {
			continue
		}
		switch {
		case pn.Kind.IsOperation():
			opsCovered = append(opsCovered, pair.FunctionNode)
		case pn.Kind == core.KindBlock:
			spanned = append(spanned, pair.FunctionNode)
		}
	}
	sort.Slice(opsCovered, func(i, j int) bool { return opsCovered[i] < opsCovered[j] })
	spanned = dedupSortedNodeIDs(spanned)

	dataDefined := mapPatternIDs(pm.NodeMatch, pat.OutputDataNodes)
	dataUsed := mapPatternIDs(pm.NodeMatch, pat.InputDataNodes)

	var entryBlock core.NodeID
	hasEntryBlock := false
	if pat.OpStruct.HasEntryBlock {
		if fb, ok := pm.NodeMatch.FunctionNodeFor(pat.OpStruct.EntryBlock.ID); ok {
			entryBlock, hasEntryBlock = fb, true
		}
	}

	constraints := make([]constraint.BoolExpr, 0, len(pat.OpStruct.Constraints))
	for _, c := range pat.OpStruct.Constraints {
		c = constraint.ReplaceThisMatchWith(c, pm.MatchID)
		c = constraint.ReplacePatternNodeIDsWithFunctionNodeIDs(c, pm.NodeMatch)
		constraints = append(constraints, c)
	}

	hasControlFlow := false
	for _, n := range pg.Nodes() {
		if n.Kind == core.KindControl {
			hasControlFlow = true
			break
		}
	}

	dataUsedByPhis := dataUsedByCoveredPhis(fg, pg, pm.NodeMatch)

	asmMaps := buildAsmNodeMaps(pat.EmitTemplate, pm.NodeMatch)

	mpOut := MatchParams{
		InstrID:                  pm.InstrID,
		PatternID:                pm.PatternID,
		MatchID:                  pm.MatchID,
		OperationsCovered:        opsCovered,
		DataDefined:              dataDefined,
		DataUsed:                 dataUsed,
		HasEntryBlock:            hasEntryBlock,
		SpannedBlocks:            spanned,
		CodeSize:                 instr.Properties.CodeSize,
		Latency:                  instr.Properties.Latency,
		ApplyDefDomUseConstraint: !instr.Properties.IsPhi,
		IsNonCopyInstruction:     !instr.Properties.IsCopy,
		HasControlFlow:           hasControlFlow,
		DataUsedByPhis:           dataUsedByPhis,
		AsmStrNodeMaps:           asmMaps,
		Constraints:              constraints,
	}
	if hasEntryBlock {
		mpOut.EntryBlock = entryBlock
	}
	return mpOut, nil
}

func mapPatternIDs(m match.NodeMatch, patternIDs []core.NodeID) []core.NodeID {
	out := make([]core.NodeID, 0, len(patternIDs))
	for _, pid := range patternIDs {
		if fn, ok := m.FunctionNodeFor(pid); ok {
			out = append(out, fn)
		}
	}
	return out
}

func dataUsedByCoveredPhis(fg, pg *core.Graph, m match.NodeMatch) []core.NodeID {
	seen := make(map[core.NodeID]struct{})
	var out []core.NodeID
	for _, pair := range m.Pairs {
		pn, ok := findNodeByID(pg, pair.PatternNode)
		if !ok || pn.Kind != core.KindPhi {
			continue
		}
		fn, ok := findNodeByID(fg, pair.FunctionNode)
		if !ok {
			continue
		}
		for _, v := range fg.InNeighbours(fn, core.DataFlow) {
			if _, dup := seen[v.ID]; dup {
				continue
			}
			seen[v.ID] = struct{}{}
			out = append(out, v.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func buildAsmNodeMaps(tmpl machine.EmitStringTemplate, m match.NodeMatch) []AsmNodeMap {
	var out []AsmNodeMap
	for _, line := range tmpl.Lines {
		for _, part := range line.Parts {
			switch part.Kind {
			case machine.EmitIntConstOf, machine.EmitLocationOf, machine.EmitNameOfBlock, machine.EmitBlockOf, machine.EmitFuncOfCall:
				if fn, ok := m.FunctionNodeFor(part.Node); ok {
					out = append(out, AsmNodeMap{HasFunctionNode: true, FunctionNode: fn})
					continue
				}
			}
			out = append(out, AsmNodeMap{HasFunctionNode: false})
		}
	}
	return out
}

func findNodeByID(g *core.Graph, id core.NodeID) (core.Node, bool) {
	for _, n := range g.Nodes() {
		if n.ID == id {
			return n, true
		}
	}
	return core.Node{}, false
}

func sortedNodeIDSet(set map[core.NodeID]struct{}) []core.NodeID {
	out := make([]core.NodeID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func dedupSortedNodeIDs(ids []core.NodeID) []core.NodeID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:0:0]
	var last core.NodeID
	first := true
	for _, id := range ids {
		if !first && id == last {
			continue
		}
		out = append(out, id)
		last = id
		first = false
	}
	return out
}

func sortedLocationIDs(ids []core.LocationID) []core.LocationID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
