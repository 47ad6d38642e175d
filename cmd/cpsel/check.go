package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/match"
)

// checkReport is the "check-report" output: the violations found (if
// any) against a function and its matches, plus the counts checked.
type checkReport struct {
	NodeCount  int      `json:"node-count"`
	MatchCount int      `json:"match-count"`
	Violations []string `json:"violations,omitempty"`
}

// runCheck re-verifies, against a function and its matches, the
// universal invariants spec §8 states for every graph and every match:
// edge numbers at each (node, kind) are contiguous from 0, and every
// match covers its pattern exactly once per pattern node. With no -in
// flag it falls back to the built-in demo function and machine.
func runCheck(args []string) error {
	f, err := parseIOFlags("check", args)
	if err != nil {
		return err
	}
	fn, tm, err := loadFunctionAndMachine(f)
	if err != nil {
		return err
	}

	violations := checkEdgeNumbering(fn.OpStruct.Graph)
	matches, _ := match.FindPatternMatches(fn.OpStruct.Graph, tm)
	for _, pm := range matches {
		instr, err := tm.Instruction(pm.InstrID)
		if err != nil {
			violations = append(violations, fmt.Sprintf("match %d: %v", pm.MatchID, err))
			continue
		}
		pat, err := instr.Pattern(pm.PatternID)
		if err != nil {
			violations = append(violations, fmt.Sprintf("match %d: %v", pm.MatchID, err))
			continue
		}
		violations = append(violations, checkMatchExactness(pm, pat.OpStruct.Graph)...)
	}

	report := checkReport{
		NodeCount:  len(fn.OpStruct.Graph.Nodes()),
		MatchCount: len(matches),
		Violations: violations,
	}
	path, werr := writeJSONFile(f.out, "check-report", report)
	if werr != nil {
		return werr
	}

	if len(violations) == 0 {
		log.Printf("check: no violations found (%d node(s), %d match(es)); wrote %s", report.NodeCount, report.MatchCount, path)
		return nil
	}
	for _, v := range violations {
		log.Printf("check: VIOLATION: %s", v)
	}
	return fmt.Errorf("%d violation(s) found, see %s", len(violations), path)
}

// checkEdgeNumbering verifies that, for every node and edge kind, the
// sorted out-numbers and in-numbers are exactly the contiguous range
// [0, count-1] (spec §8's first universal invariant).
func checkEdgeNumbering(g *core.Graph) []string {
	var violations []string
	kinds := []core.EdgeKind{core.DataFlow, core.ControlFlow, core.StateFlow, core.DefPlacement, core.EdgeReuse}
	for _, n := range g.Nodes() {
		for _, k := range kinds {
			if v := contiguousFrom0(g.OutEdges(n, k), func(e core.Edge) int { return e.OutNumber }); v != "" {
				violations = append(violations, fmt.Sprintf("node %d out-edges kind %s: %s", n.ID, k, v))
			}
			if v := contiguousFrom0(g.InEdges(n, k), func(e core.Edge) int { return e.InNumber }); v != "" {
				violations = append(violations, fmt.Sprintf("node %d in-edges kind %s: %s", n.ID, k, v))
			}
		}
	}
	return violations
}

func contiguousFrom0(edges []core.Edge, numberOf func(core.Edge) int) string {
	if len(edges) == 0 {
		return ""
	}
	nums := make([]int, len(edges))
	for i, e := range edges {
		nums[i] = numberOf(e)
	}
	sort.Ints(nums)
	for i, n := range nums {
		if n != i {
			return fmt.Sprintf("numbers %v are not contiguous from 0", nums)
		}
	}
	return ""
}

// checkMatchExactness verifies a match's node count equals its pattern's
// node count and that no pattern node occurs twice (spec §8's third
// universal invariant, the parts independent of node-compatibility rules
// already enforced by the matcher during search).
func checkMatchExactness(pm match.PatternMatch, pg *core.Graph) []string {
	var violations []string
	want := len(pg.Nodes())
	got := len(pm.NodeMatch.Pairs)
	if got != want {
		violations = append(violations, fmt.Sprintf("match %d: has %d pair(s), pattern has %d node(s)", pm.MatchID, got, want))
	}
	seen := make(map[core.NodeID]bool, got)
	for _, p := range pm.NodeMatch.Pairs {
		if seen[p.PatternNode] {
			violations = append(violations, fmt.Sprintf("match %d: pattern node %d mapped more than once", pm.MatchID, p.PatternNode))
		}
		seen[p.PatternNode] = true
	}
	return violations
}
