package core

// MatchID, LocationID, InstrID, and PatternID are small opaque identifier
// types shared by the constraint AST (package constraint), the matcher
// (package match), the target-machine model (package machine), and the
// model builder (package model). They live here, next to NodeID, so that
// none of those packages need to import one another just to talk about
// each other's identifiers.
type (
	MatchID    int64
	LocationID int64
	InstrID    int64
	PatternID  int64
)
