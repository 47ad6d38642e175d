package lowering

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/cpsel/constraint"
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/model"
)

// Lower builds the dense array-indexed LowLevelModel for hlm using maps,
// per spec §4.6. It panics if hlm references a node, match, or location
// identifier absent from maps — a precondition violation, matching the
// panic-on-malformed-input convention package constraint's own lowering
// rewrites already use.
func Lower(maps *ArrayIndexMaplists, hlm *model.HighLevelModel) *LowLevelModel {
	fp := hlm.FunctionParams

	var states []int
	for _, id := range fp.StateNodes {
		states = append(states, mustEntityIndex(maps, id))
	}
	sort.Ints(states)

	domSets := make([][]int, len(maps.Blocks))
	for blockID, doms := range fp.BlockDomSets {
		bi := mustBlockIndex(maps, blockID)
		idxs := make([]int, 0, len(doms))
		for _, d := range doms {
			idxs = append(idxs, mustBlockIndex(maps, d))
		}
		sort.Ints(idxs)
		domSets[bi] = idxs
	}

	defEdges := make([]DefEdgeIndices, 0, len(fp.DefEdges))
	for _, de := range fp.DefEdges {
		defEdges = append(defEdges, DefEdgeIndices{
			Block:  mustBlockIndex(maps, de.Block),
			Entity: mustEntityIndex(maps, de.Entity),
		})
	}

	execFreqs := make([]float64, len(maps.Blocks))
	for _, bp := range fp.BlockParams {
		execFreqs[mustBlockIndex(maps, bp.Node)] = bp.ExecFreq
	}

	funConstraints := make([]constraint.BoolExpr, 0, len(fp.Constraints))
	for _, c := range fp.Constraints {
		funConstraints = append(funConstraints, constraint.LowerIDsToArrayIndices(c, maps))
	}

	llm := &LowLevelModel{
		FunNumOperations: len(maps.Operations),
		FunNumData:       len(maps.Entities),
		FunNumBlocks:     len(maps.Blocks),
		FunStates:        states,
		FunEntryBlock:    mustBlockIndex(maps, fp.EntryBlock),
		FunBlockDomSets:  domSets,
		FunDefEdges:      defEdges,
		FunBBExecFreqs:   execFreqs,
		FunConstraints:   funConstraints,
		NumLocations:     len(maps.Locations),
		NumMatches:       len(hlm.MatchParams),
	}

	llm.MatchOperationsCovered = make([][]int, len(hlm.MatchParams))
	llm.MatchDataDefined = make([][]int, len(hlm.MatchParams))
	llm.MatchDataUsed = make([][]int, len(hlm.MatchParams))
	llm.MatchEntryBlocks = make([]OptionalInt, len(hlm.MatchParams))
	llm.MatchSpannedBlocks = make([][]int, len(hlm.MatchParams))
	llm.MatchCodeSizes = make([]int, len(hlm.MatchParams))
	llm.MatchLatencies = make([]int, len(hlm.MatchParams))
	llm.MatchADDUCSettings = make([]bool, len(hlm.MatchParams))
	llm.MatchNonCopyInstructions = make([]bool, len(hlm.MatchParams))
	llm.MatchConstraints = make([][]constraint.BoolExpr, len(hlm.MatchParams))

	for _, mp := range hlm.MatchParams {
		mi := mustMatchIndex(maps, mp.MatchID)

		ops := make([]int, 0, len(mp.OperationsCovered))
		for _, id := range mp.OperationsCovered {
			ops = append(ops, mustOperationIndex(maps, id))
		}
		sort.Ints(ops)
		llm.MatchOperationsCovered[mi] = ops

		defined := make([]int, 0, len(mp.DataDefined))
		for _, id := range mp.DataDefined {
			defined = append(defined, mustEntityIndex(maps, id))
		}
		sort.Ints(defined)
		llm.MatchDataDefined[mi] = defined

		used := make([]int, 0, len(mp.DataUsed))
		for _, id := range mp.DataUsed {
			used = append(used, mustEntityIndex(maps, id))
		}
		sort.Ints(used)
		llm.MatchDataUsed[mi] = used

		if mp.HasEntryBlock {
			llm.MatchEntryBlocks[mi] = OptionalInt{Has: true, Value: mustBlockIndex(maps, mp.EntryBlock)}
		}

		spanned := make([]int, 0, len(mp.SpannedBlocks))
		for _, id := range mp.SpannedBlocks {
			spanned = append(spanned, mustBlockIndex(maps, id))
		}
		sort.Ints(spanned)
		llm.MatchSpannedBlocks[mi] = spanned

		llm.MatchCodeSizes[mi] = mp.CodeSize
		llm.MatchLatencies[mi] = mp.Latency
		llm.MatchADDUCSettings[mi] = mp.ApplyDefDomUseConstraint
		llm.MatchNonCopyInstructions[mi] = mp.IsNonCopyInstruction

		cs := make([]constraint.BoolExpr, 0, len(mp.Constraints))
		for _, c := range mp.Constraints {
			cs = append(cs, constraint.LowerIDsToArrayIndices(c, maps))
		}
		llm.MatchConstraints[mi] = cs
	}

	return llm
}

func mustOperationIndex(maps *ArrayIndexMaplists, id core.NodeID) int {
	i, ok := maps.OperationLocalIndex(id)
	if !ok {
		preconditionf("Lower", "operation node %d has no array index", id)
	}
	return i
}

func mustEntityIndex(maps *ArrayIndexMaplists, id core.NodeID) int {
	i, ok := maps.EntityLocalIndex(id)
	if !ok {
		preconditionf("Lower", "entity node %d has no array index", id)
	}
	return i
}

func mustBlockIndex(maps *ArrayIndexMaplists, id core.NodeID) int {
	i, ok := maps.BlockLocalIndex(id)
	if !ok {
		preconditionf("Lower", "block node %d has no array index", id)
	}
	return i
}

func mustMatchIndex(maps *ArrayIndexMaplists, id core.MatchID) int {
	i, ok := maps.MatchLocalIndex(id)
	if !ok {
		preconditionf("Lower", "match %d has no array index", id)
	}
	return i
}

func preconditionf(op, format string, args ...interface{}) {
	panic(&core.PreconditionError{Op: "lowering." + op, Detail: fmt.Sprintf(format, args...)})
}
