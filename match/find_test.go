package match_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/machine"
	"github.com/katalvlaran/cpsel/match"
	"github.com/katalvlaran/cpsel/opstruct"
	"github.com/stretchr/testify/require"
)

func TestFindPatternMatchesAssignsDenseMatchIDs(t *testing.T) {
	pg, _ := buildAddPattern("add")
	fg, _ := buildAddPattern("add")

	tm := &machine.TargetMachine{
		ID: "test",
		Instructions: map[core.InstrID]machine.Instruction{
			1: {
				ID: 1,
				Patterns: []machine.InstrPattern{
					{ID: 1, OpStruct: opstruct.New(pg)},
				},
			},
		},
	}

	matches, stats := match.FindPatternMatches(fg, tm)
	require.Len(t, matches, 1)
	require.Equal(t, core.MatchID(0), matches[0].MatchID)
	require.Equal(t, core.InstrID(1), matches[0].InstrID)
	require.Equal(t, core.PatternID(1), matches[0].PatternID)
	require.Equal(t, 1, stats.Found)
}

func TestFindPatternMatchesFindsNothingForUnmatchedPattern(t *testing.T) {
	pg, _ := buildAddPattern("add")
	fg, _ := buildAddPattern("sub")

	tm := &machine.TargetMachine{
		ID: "test",
		Instructions: map[core.InstrID]machine.Instruction{
			1: {ID: 1, Patterns: []machine.InstrPattern{{ID: 1, OpStruct: opstruct.New(pg)}}},
		},
	}

	matches, stats := match.FindPatternMatches(fg, tm)
	require.Empty(t, matches)
	require.Equal(t, 0, stats.Found)
}
