package machine_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/machine"
	"github.com/stretchr/testify/require"
)

func TestInstructionLookupError(t *testing.T) {
	tm := &machine.TargetMachine{Instructions: map[core.InstrID]machine.Instruction{}}

	_, err := tm.Instruction(core.InstrID(42))
	require.ErrorIs(t, err, machine.ErrUnknownInstruction)
}

func TestLocationLookup(t *testing.T) {
	tm := &machine.TargetMachine{
		Locations: map[core.LocationID]machine.Location{
			1: {ID: 1, Name: "r0"},
		},
	}

	loc, err := tm.LocationByID(1)
	require.NoError(t, err)
	require.Equal(t, "r0", loc.Name)

	_, err = tm.LocationByID(2)
	require.ErrorIs(t, err, machine.ErrUnknownLocation)
}

func TestNullLocation(t *testing.T) {
	tm := &machine.TargetMachine{
		NullPointerValue: 0,
		Locations: map[core.LocationID]machine.Location{
			1: {ID: 1, Name: "r0"},
			2: {ID: 2, Name: "null", HasFixedValue: true, FixedValue: 0},
		},
	}

	id, ok := tm.NullLocation()
	require.True(t, ok)
	require.Equal(t, core.LocationID(2), id)
}

func TestInstructionPatternLookup(t *testing.T) {
	instr := machine.Instruction{
		ID: 7,
		Patterns: []machine.InstrPattern{
			{ID: 1}, {ID: 2},
		},
	}

	p, err := instr.Pattern(2)
	require.NoError(t, err)
	require.Equal(t, core.PatternID(2), p.ID)

	_, err = instr.Pattern(99)
	require.ErrorIs(t, err, machine.ErrUnknownPattern)
}
