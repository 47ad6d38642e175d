package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/machine"
)

// Stats counts a FindPatternMatches run's outcomes: how many matches
// survived, and how many were pruned at each filter, for diagnostics and
// tuning (SPEC_FULL.md's supplemental observability surface).
type Stats struct {
	Found           int
	PrunedCyclic    int
	PrunedSIMD      int
	PrunedDuplicate int
}

// FindPatternMatches runs the full matcher pipeline of spec §4.4 for
// every pattern of every instruction in tm against fg: the block-
// duplication pre-pass, the VF2 search (plain or SIMD composition per
// pattern), the cyclic-data-dependency post-filter, the SIMD
// selectability filter, and duplicate-match removal, returning the
// surviving matches with densely assigned match IDs. Ordering is
// deterministic: by instruction ID, then pattern ID, then each match's
// canonical serialization, per spec §5's stability requirement.
func FindPatternMatches(fg *core.Graph, tm *machine.TargetMachine) ([]PatternMatch, Stats) {
	dupFG := DuplicateAmbiguousBlocks(fg)
	fullSSA := core.ExtractSSA(fg)

	var stats Stats
	var all []PatternMatch

	for _, instrID := range sortedInstrIDs(tm) {
		instr := tm.Instructions[instrID]
		for _, pat := range instr.Patterns {
			pg := pat.OpStruct.Graph
			var candidates []NodeMatch
			if instr.Properties.IsSIMD {
				candidates = findSIMDMatches(dupFG, pg)
			} else {
				candidates = FindMatches(dupFG, pg)
			}

			kept := filterAndDedup(fullSSA, dupFG, pg, instr.Properties.IsSIMD, candidates, &stats)
			for _, m := range kept {
				all = append(all, PatternMatch{InstrID: instrID, PatternID: pat.ID, NodeMatch: m})
				stats.Found++
			}
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].InstrID != all[j].InstrID {
			return all[i].InstrID < all[j].InstrID
		}
		if all[i].PatternID != all[j].PatternID {
			return all[i].PatternID < all[j].PatternID
		}
		return canonicalMatchKey(all[i].NodeMatch) < canonicalMatchKey(all[j].NodeMatch)
	})
	for i := range all {
		all[i].MatchID = core.MatchID(i)
	}
	return all, stats
}

func filterAndDedup(fullSSA, fg, pg *core.Graph, isSIMD bool, candidates []NodeMatch, stats *Stats) []NodeMatch {
	kept := make([]NodeMatch, 0, len(candidates))
	seen := map[string]bool{}
	for _, m := range candidates {
		if HasCyclicDataDependency(fullSSA, m) {
			stats.PrunedCyclic++
			continue
		}
		if isSIMD && !simdSelectable(fg, pg, m) {
			stats.PrunedSIMD++
			continue
		}
		key := dedupKey(m)
		if seen[key] {
			stats.PrunedDuplicate++
			continue
		}
		seen[key] = true
		kept = append(kept, m)
	}
	sort.Slice(kept, func(i, j int) bool {
		return canonicalMatchKey(kept[i]) < canonicalMatchKey(kept[j])
	})
	return kept
}

func sortedInstrIDs(tm *machine.TargetMachine) []core.InstrID {
	ids := make([]core.InstrID, 0, len(tm.Instructions))
	for id := range tm.Instructions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// dedupKey serializes m's function-node set (spec §4.4's duplicate-match
// removal: two matches covering the identical set of function nodes are
// duplicates regardless of how they pair those nodes with pattern nodes).
func dedupKey(m NodeMatch) string {
	set := m.FunctionNodeSet()
	ids := make([]core.NodeID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%d|", id)
	}
	return b.String()
}

// canonicalMatchKey serializes m's full pair list, sorted by pattern node
// ID, giving FindPatternMatches' output a stable total order among
// matches that share instruction and pattern IDs (spec §5's
// "canonical match serialization" tie-break).
func canonicalMatchKey(m NodeMatch) string {
	pairs := append([]Pair(nil), m.Pairs...)
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].PatternNode < pairs[j].PatternNode })
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%d:%d|", p.PatternNode, p.FunctionNode)
	}
	return b.String()
}
