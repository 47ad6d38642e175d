package machine

import "errors"

// ErrUnknownInstruction is returned when an InstrID is not registered on
// a TargetMachine.
var ErrUnknownInstruction = errors.New("machine: unknown instruction ID")

// ErrUnknownLocation is returned when a LocationID is not registered on a
// TargetMachine.
var ErrUnknownLocation = errors.New("machine: unknown location ID")

// ErrUnknownPattern is returned when a PatternID is not found among an
// instruction's patterns.
var ErrUnknownPattern = errors.New("machine: unknown pattern ID")
