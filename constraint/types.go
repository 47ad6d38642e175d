package constraint

import "github.com/katalvlaran/cpsel/core"

// Expr is implemented by every node of the constraint AST, across every
// sort (BoolExpr, NumExpr, NodeExpr, MatchExpr, LocationExpr, InstrExpr).
// It carries no methods of its own; it exists so generic helpers (like the
// set-membership builder) can hold "some expression" without committing to
// a sort.
type Expr interface {
	isExpr()
}

// NodeExpr is the sort of expressions that denote a node identifier
// (public NodeID or array index).
type NodeExpr interface {
	Expr
	isNodeExpr()
}

// MatchExpr is the sort of expressions that denote a match identifier.
type MatchExpr interface {
	Expr
	isMatchExpr()
}

// LocationExpr is the sort of expressions that denote a location
// identifier.
type LocationExpr interface {
	Expr
	isLocationExpr()
}

// InstrExpr is the sort of expressions that denote an instruction
// identifier.
type InstrExpr interface {
	Expr
	isInstrExpr()
}

// NumExpr is the sort of integer-valued arithmetic expressions, built from
// integer literals and lifted identifier casts.
type NumExpr interface {
	Expr
	isNumExpr()
}

// BoolExpr is the sort of boolean-valued predicate expressions.
type BoolExpr interface {
	Expr
	isBoolExpr()
}

// --- Node sort -------------------------------------------------------

// ANodeIDExpr names a node by its original public core.NodeID. Used only
// in high-level (pre-lowering) models.
type ANodeIDExpr struct{ ID core.NodeID }

// ANodeArrayIndexExpr names a node by its dense array index. Used only in
// low-level (post-lowering) models.
type ANodeArrayIndexExpr struct{ Index int }

// BlockOfBlockNodeExpr asserts that its argument already denotes a block
// node and yields that same node identifier; it exists so constraints can
// name "the block" explicitly at a point where a plain NodeExpr would be
// ambiguous about what kind of node is meant.
type BlockOfBlockNodeExpr struct{ Node NodeExpr }

// BlockWhereinMatchIsPlacedExpr denotes the block node in which a match is
// placed (its pattern's entry block, mapped through the match).
type BlockWhereinMatchIsPlacedExpr struct{ Match MatchExpr }

func (ANodeIDExpr) isExpr()                    {}
func (ANodeIDExpr) isNodeExpr()                 {}
func (ANodeArrayIndexExpr) isExpr()             {}
func (ANodeArrayIndexExpr) isNodeExpr()          {}
func (BlockOfBlockNodeExpr) isExpr()            {}
func (BlockOfBlockNodeExpr) isNodeExpr()         {}
func (BlockWhereinMatchIsPlacedExpr) isExpr()    {}
func (BlockWhereinMatchIsPlacedExpr) isNodeExpr() {}

// --- Match sort --------------------------------------------------------

// AMatchIDExpr names a match by its original public core.MatchID.
type AMatchIDExpr struct{ ID core.MatchID }

// AMatchArrayIndexExpr names a match by its dense array index.
type AMatchArrayIndexExpr struct{ Index int }

// ThisMatchExpr refers to "the match this constraint is attached to". It
// must be rewritten away (see ReplaceThisMatchWith) before a constraint
// leaves its originating per-match context; a ThisMatchExpr surviving into
// a function-level constraint list is a bug in the caller.
type ThisMatchExpr struct{}

func (AMatchIDExpr) isExpr()          {}
func (AMatchIDExpr) isMatchExpr()      {}
func (AMatchArrayIndexExpr) isExpr()   {}
func (AMatchArrayIndexExpr) isMatchExpr() {}
func (ThisMatchExpr) isExpr()          {}
func (ThisMatchExpr) isMatchExpr()     {}

// --- Location sort -------------------------------------------------------

// ALocationIDExpr names a location by its original public core.LocationID.
type ALocationIDExpr struct{ ID core.LocationID }

// ALocationArrayIndexExpr names a location by its dense array index.
type ALocationArrayIndexExpr struct{ Index int }

// LocationOfValueNodeExpr denotes the location the solver assigns to a
// given value node.
type LocationOfValueNodeExpr struct{ Node NodeExpr }

func (ALocationIDExpr) isExpr()             {}
func (ALocationIDExpr) isLocationExpr()      {}
func (ALocationArrayIndexExpr) isExpr()      {}
func (ALocationArrayIndexExpr) isLocationExpr() {}
func (LocationOfValueNodeExpr) isExpr()      {}
func (LocationOfValueNodeExpr) isLocationExpr() {}

// --- Instruction sort ----------------------------------------------------

// AnInstructionIDExpr names an instruction by its original public
// core.InstrID.
type AnInstructionIDExpr struct{ ID core.InstrID }

// AnInstructionArrayIndexExpr names an instruction by its dense array
// index.
type AnInstructionArrayIndexExpr struct{ Index int }

func (AnInstructionIDExpr) isExpr()           {}
func (AnInstructionIDExpr) isInstrExpr()       {}
func (AnInstructionArrayIndexExpr) isExpr()    {}
func (AnInstructionArrayIndexExpr) isInstrExpr() {}

// --- Num sort ------------------------------------------------------------

// IntLiteralExpr is a constant integer.
type IntLiteralExpr struct{ Value int64 }

// NodeIDToNumExpr lifts a NodeExpr to an integer (its underlying ID or
// array index).
type NodeIDToNumExpr struct{ Node NodeExpr }

// MatchIDToNumExpr lifts a MatchExpr to an integer.
type MatchIDToNumExpr struct{ Match MatchExpr }

// LocationIDToNumExpr lifts a LocationExpr to an integer.
type LocationIDToNumExpr struct{ Location LocationExpr }

// InstrIDToNumExpr lifts an InstrExpr to an integer.
type InstrIDToNumExpr struct{ Instr InstrExpr }

// PlusExpr, MinusExpr, MulExpr are binary integer arithmetic.
type PlusExpr struct{ A, B NumExpr }
type MinusExpr struct{ A, B NumExpr }
type MulExpr struct{ A, B NumExpr }

func (IntLiteralExpr) isExpr()       {}
func (IntLiteralExpr) isNumExpr()     {}
func (NodeIDToNumExpr) isExpr()       {}
func (NodeIDToNumExpr) isNumExpr()    {}
func (MatchIDToNumExpr) isExpr()      {}
func (MatchIDToNumExpr) isNumExpr()   {}
func (LocationIDToNumExpr) isExpr()   {}
func (LocationIDToNumExpr) isNumExpr() {}
func (InstrIDToNumExpr) isExpr()      {}
func (InstrIDToNumExpr) isNumExpr()   {}
func (PlusExpr) isExpr()             {}
func (PlusExpr) isNumExpr()           {}
func (MinusExpr) isExpr()            {}
func (MinusExpr) isNumExpr()          {}
func (MulExpr) isExpr()              {}
func (MulExpr) isNumExpr()            {}

// --- Bool sort -----------------------------------------------------------

// EqExpr, LtExpr, LeExpr, GtExpr, GeExpr compare two expressions of the
// same sort (enforced by the constructor helpers in builders.go, not by
// the Go type system — see the package doc comment).
type EqExpr struct{ A, B Expr }
type LtExpr struct{ A, B NumExpr }
type LeExpr struct{ A, B NumExpr }
type GtExpr struct{ A, B NumExpr }
type GeExpr struct{ A, B NumExpr }

// InSetExpr is set-membership: Elem is a member of Set.
type InSetExpr struct {
	Elem Expr
	Set  []Expr
}

// AndExpr, OrExpr are n-ary conjunction/disjunction.
type AndExpr struct{ Operands []BoolExpr }
type OrExpr struct{ Operands []BoolExpr }

// ImpliesExpr is logical implication: Ante implies Cons.
type ImpliesExpr struct{ Ante, Cons BoolExpr }

// NotExpr is logical negation.
type NotExpr struct{ Operand BoolExpr }

// FallThroughExpr is the fall-through predicate: Match's code falls
// through directly into Block with no intervening control transfer.
type FallThroughExpr struct {
	Match MatchExpr
	Block NodeExpr
}

// DistanceExpr is the distance predicate: the control-flow distance from
// Match's placement to Block is at most Max.
type DistanceExpr struct {
	Match MatchExpr
	Block NodeExpr
	Max   NumExpr
}

func (EqExpr) isExpr()          {}
func (EqExpr) isBoolExpr()       {}
func (LtExpr) isExpr()          {}
func (LtExpr) isBoolExpr()       {}
func (LeExpr) isExpr()          {}
func (LeExpr) isBoolExpr()       {}
func (GtExpr) isExpr()          {}
func (GtExpr) isBoolExpr()       {}
func (GeExpr) isExpr()          {}
func (GeExpr) isBoolExpr()       {}
func (InSetExpr) isExpr()       {}
func (InSetExpr) isBoolExpr()    {}
func (AndExpr) isExpr()         {}
func (AndExpr) isBoolExpr()      {}
func (OrExpr) isExpr()          {}
func (OrExpr) isBoolExpr()       {}
func (ImpliesExpr) isExpr()     {}
func (ImpliesExpr) isBoolExpr()  {}
func (NotExpr) isExpr()         {}
func (NotExpr) isBoolExpr()      {}
func (FallThroughExpr) isExpr() {}
func (FallThroughExpr) isBoolExpr() {}
func (DistanceExpr) isExpr()    {}
func (DistanceExpr) isBoolExpr() {}
