package machine

import (
	"fmt"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
)

// TargetMachineID names a target description.
type TargetMachineID string

// TargetMachine is the C7 target description: the instructions it
// offers, the locations it exposes, and the two architectural constants
// (pointer_size, null_pointer_value) C8's pointer-lowering rewrite needs.
type TargetMachine struct {
	ID               TargetMachineID
	Instructions     map[core.InstrID]Instruction
	Locations        map[core.LocationID]Location
	PointerSize      int
	NullPointerValue int64
}

// Instruction looks up an instruction by ID.
func (tm *TargetMachine) Instruction(id core.InstrID) (Instruction, error) {
	instr, ok := tm.Instructions[id]
	if !ok {
		return Instruction{}, fmt.Errorf("machine: Instruction(%d): %w", id, ErrUnknownInstruction)
	}
	return instr, nil
}

// LocationByID looks up a location by ID.
func (tm *TargetMachine) LocationByID(id core.LocationID) (Location, error) {
	loc, ok := tm.Locations[id]
	if !ok {
		return Location{}, fmt.Errorf("machine: LocationByID(%d): %w", id, ErrUnknownLocation)
	}
	return loc, nil
}

// LocationIDs returns every registered location ID, for the machine-level
// parameters of a high-level model (spec §4.5's machine_params).
func (tm *TargetMachine) LocationIDs() []core.LocationID {
	ids := make([]core.LocationID, 0, len(tm.Locations))
	for id := range tm.Locations {
		ids = append(ids, id)
	}
	return ids
}

// NullLocation returns a location whose HasFixedValue is set and whose
// FixedValue equals the machine's null pointer value, and false if no
// location qualifies.
func (tm *TargetMachine) NullLocation() (core.LocationID, bool) {
	for id, loc := range tm.Locations {
		if loc.HasFixedValue && loc.FixedValue == tm.NullPointerValue {
			return id, true
		}
	}
	return 0, false
}

// InstructionProperties are the per-instruction flags and costs of spec
// §4.7.
type InstructionProperties struct {
	CodeSize   int
	Latency    int
	IsCopy     bool
	IsInactive bool
	IsNull     bool
	IsPhi      bool
	IsSIMD     bool
}

// Instruction is one target instruction: an ID, its ordered candidate
// patterns, and its shared properties.
type Instruction struct {
	ID         core.InstrID
	Patterns   []InstrPattern
	Properties InstructionProperties
}

// Pattern looks up one of the instruction's own patterns by ID.
func (i Instruction) Pattern(id core.PatternID) (InstrPattern, error) {
	for _, p := range i.Patterns {
		if p.ID == id {
			return p, nil
		}
	}
	return InstrPattern{}, fmt.Errorf("machine: Instruction(%d).Pattern(%d): %w", i.ID, id, ErrUnknownPattern)
}

// InstrPattern is one candidate pattern graph for an instruction: its
// op-structure (the pattern graph plus its own constraints), the pattern
// node IDs that are its inputs/outputs, and its emit template.
type InstrPattern struct {
	ID              core.PatternID
	OpStruct        *opstruct.OpStruct
	InputDataNodes  []core.NodeID
	OutputDataNodes []core.NodeID
	EmitTemplate    EmitStringTemplate
}

// EmitStringTemplate is an ordered list of emit lines, each built from
// EmitPart pieces (spec §4.7).
type EmitStringTemplate struct {
	Lines []EmitLine
}

// EmitLine is one line of assembly text, as an ordered sequence of parts.
type EmitLine struct {
	Parts []EmitPart
}

// EmitPartKind tags the variant of an EmitPart.
type EmitPartKind int

const (
	EmitVerbatim EmitPartKind = iota
	EmitIntConstOf
	EmitLocationOf
	EmitNameOfBlock
	EmitBlockOf
	EmitLocalTemporary
	EmitFuncOfCall
)

// EmitPart is one piece of one emit line. Exactly the fields relevant to
// Kind are meaningful:
//   - EmitVerbatim: Text
//   - EmitIntConstOf, EmitLocationOf, EmitNameOfBlock, EmitBlockOf,
//     EmitFuncOfCall: Node (a pattern-local node ID)
//   - EmitLocalTemporary: TempIndex — temporaries sharing one TempIndex
//     within one template resolve to the same freshly-uniqued name at
//     emission time.
type EmitPart struct {
	Kind      EmitPartKind
	Text      string
	Node      core.NodeID
	TempIndex int
}

// Verbatim, IntConstOf, LocationOf, NameOfBlock, BlockOf, LocalTemporary,
// FuncOfCall build the seven EmitPart variants.
func Verbatim(s string) EmitPart             { return EmitPart{Kind: EmitVerbatim, Text: s} }
func IntConstOf(n core.NodeID) EmitPart       { return EmitPart{Kind: EmitIntConstOf, Node: n} }
func LocationOf(n core.NodeID) EmitPart       { return EmitPart{Kind: EmitLocationOf, Node: n} }
func NameOfBlock(n core.NodeID) EmitPart      { return EmitPart{Kind: EmitNameOfBlock, Node: n} }
func BlockOf(n core.NodeID) EmitPart          { return EmitPart{Kind: EmitBlockOf, Node: n} }
func LocalTemporary(i int) EmitPart           { return EmitPart{Kind: EmitLocalTemporary, TempIndex: i} }
func FuncOfCall(n core.NodeID) EmitPart       { return EmitPart{Kind: EmitFuncOfCall, Node: n} }

// Location is one addressable target location: a register, a stack slot,
// or similar, optionally bound to a fixed value (e.g. the null pointer
// location).
type Location struct {
	ID            core.LocationID
	Name          string
	HasFixedValue bool
	FixedValue    int64
}
