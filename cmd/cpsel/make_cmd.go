package main

import (
	"log"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/lowering"
	"github.com/katalvlaran/cpsel/machine"
	"github.com/katalvlaran/cpsel/match"
	"github.com/katalvlaran/cpsel/model"
)

// runMake matches a function against a target machine, builds its
// HighLevelModel, lowers it to array-index form, and writes both as JSON
// files suffixed with their own output IDs ("high-level-model",
// "low-level-model"). With no -in flag it falls back to the built-in
// demo function and machine.
func runMake(args []string) error {
	f, err := parseIOFlags("make", args)
	if err != nil {
		return err
	}
	fn, tm, err := loadFunctionAndMachine(f)
	if err != nil {
		return err
	}

	matches, stats := match.FindPatternMatches(fn.OpStruct.Graph, tm)
	log.Printf("make: %d match(es) found (pruned: %d cyclic, %d non-SIMD-selectable, %d duplicate)",
		stats.Found, stats.PrunedCyclic, stats.PrunedSIMD, stats.PrunedDuplicate)

	hlm, err := model.Build(fn, tm, matches)
	if err != nil {
		return err
	}
	path, err := writeJSONFile(f.out, "high-level-model", hlm)
	if err != nil {
		return err
	}
	log.Printf("make: wrote %s", path)

	matchIDs := make([]core.MatchID, 0, len(hlm.MatchParams))
	for _, mp := range hlm.MatchParams {
		matchIDs = append(matchIDs, mp.MatchID)
	}
	maps := lowering.BuildArrayIndexMaplists(fn.OpStruct.Graph, matchIDs, tm.LocationIDs(), instrIDsOf(tm))
	llm := lowering.Lower(maps, hlm)
	path, err = writeJSONFile(f.out, "low-level-model", llm)
	if err != nil {
		return err
	}
	log.Printf("make: wrote %s", path)
	return nil
}

// instrIDsOf collects every instruction ID a target machine registers.
func instrIDsOf(tm *machine.TargetMachine) []core.InstrID {
	ids := make([]core.InstrID, 0, len(tm.Instructions))
	for id := range tm.Instructions {
		ids = append(ids, id)
	}
	return ids
}
