package constraint

import "github.com/katalvlaran/cpsel/core"

// ReplaceThisMatchWith rewrites every ThisMatchExpr in c to AMatchID(m),
// binding a per-match constraint template to the concrete match it was
// instantiated for. Constraints attached to a match (e.g. via an
// opstruct builder's match-placement helper) are written against
// ThisMatchExpr and bound when the model builder assembles that match's
// own constraint list.
func ReplaceThisMatchWith(c BoolExpr, m core.MatchID) BoolExpr {
	r := Reconstructor{
		MkMatch: func(e MatchExpr) MatchExpr {
			if _, ok := e.(ThisMatchExpr); ok {
				return AMatchIDExpr{ID: m}
			}
			return e
		},
	}
	return r.RewriteBool(c)
}

// PatternNodeMapper maps a pattern-local node identifier (as it appears in
// an instruction pattern's op-structure) to the function node identifier a
// particular match binds it to. match.NodeMatch implements this without
// constraint needing to import package match.
type PatternNodeMapper interface {
	FunctionNodeFor(patternNode core.NodeID) (core.NodeID, bool)
}

// ReplacePatternNodeIDsWithFunctionNodeIDs rewrites every ANodeIDExpr in c
// — understood as a pattern-local node identifier — to the function node
// identifier m maps it to. It panics if m has no mapping for some node
// identifier that appears in c, since that indicates c references a
// pattern node absent from the match that's being bound (a precondition
// violation, not a recoverable condition).
func ReplacePatternNodeIDsWithFunctionNodeIDs(c BoolExpr, m PatternNodeMapper) BoolExpr {
	r := Reconstructor{
		MkNode: func(e NodeExpr) NodeExpr {
			id, ok := e.(ANodeIDExpr)
			if !ok {
				return e
			}
			fn, found := m.FunctionNodeFor(id.ID)
			if !found {
				panic(&core.PreconditionError{Op: "ReplacePatternNodeIDsWithFunctionNodeIDs", Detail: "pattern node has no function-node binding in this match"})
			}
			return ANodeIDExpr{ID: fn}
		},
	}
	return r.RewriteBool(c)
}

// IndexMaps supplies the dense array-index lowering for every identifier
// sort, as produced by package lowering's ArrayIndexMaplists. constraint
// depends only on this interface, not on lowering, to avoid an import
// cycle (lowering necessarily imports constraint to build the low-level
// model it lowers into).
type IndexMaps interface {
	NodeArrayIndex(core.NodeID) (int, bool)
	MatchArrayIndex(core.MatchID) (int, bool)
	LocationArrayIndex(core.LocationID) (int, bool)
	InstrArrayIndex(core.InstrID) (int, bool)
}

// LowerIDsToArrayIndices rewrites every original-ID leaf in c (ANodeIDExpr,
// AMatchIDExpr, ALocationIDExpr, AnInstructionIDExpr) to its dense
// array-index counterpart via m, per spec C6. c must not contain a
// ThisMatchExpr when this is called — that rewrite is ReplaceThisMatchWith's
// job and must run first. It panics if m has no index for some identifier
// appearing in c.
func LowerIDsToArrayIndices(c BoolExpr, m IndexMaps) BoolExpr {
	r := Reconstructor{
		MkNode: func(e NodeExpr) NodeExpr {
			id, ok := e.(ANodeIDExpr)
			if !ok {
				return e
			}
			idx, found := m.NodeArrayIndex(id.ID)
			if !found {
				panic(&core.PreconditionError{Op: "LowerIDsToArrayIndices", Detail: "node identifier has no array index"})
			}
			return ANodeArrayIndexExpr{Index: idx}
		},
		MkMatch: func(e MatchExpr) MatchExpr {
			id, ok := e.(AMatchIDExpr)
			if !ok {
				return e
			}
			idx, found := m.MatchArrayIndex(id.ID)
			if !found {
				panic(&core.PreconditionError{Op: "LowerIDsToArrayIndices", Detail: "match identifier has no array index"})
			}
			return AMatchArrayIndexExpr{Index: idx}
		},
		MkLocation: func(e LocationExpr) LocationExpr {
			id, ok := e.(ALocationIDExpr)
			if !ok {
				return e
			}
			idx, found := m.LocationArrayIndex(id.ID)
			if !found {
				panic(&core.PreconditionError{Op: "LowerIDsToArrayIndices", Detail: "location identifier has no array index"})
			}
			return ALocationArrayIndexExpr{Index: idx}
		},
		MkInstr: func(e InstrExpr) InstrExpr {
			id, ok := e.(AnInstructionIDExpr)
			if !ok {
				return e
			}
			idx, found := m.InstrArrayIndex(id.ID)
			if !found {
				panic(&core.PreconditionError{Op: "LowerIDsToArrayIndices", Detail: "instruction identifier has no array index"})
			}
			return AnInstructionArrayIndexExpr{Index: idx}
		},
	}
	return r.RewriteBool(c)
}

// RaiseArrayIndicesToIDs is the inverse of LowerIDsToArrayIndices, used by
// package lowering's Raise to translate a solver's array-index-indexed
// solution back into the function's original identifier space.
func RaiseArrayIndicesToIDs(c BoolExpr, m ReverseIndexMaps) BoolExpr {
	r := Reconstructor{
		MkNode: func(e NodeExpr) NodeExpr {
			idx, ok := e.(ANodeArrayIndexExpr)
			if !ok {
				return e
			}
			return ANodeIDExpr{ID: m.NodeIDAt(idx.Index)}
		},
		MkMatch: func(e MatchExpr) MatchExpr {
			idx, ok := e.(AMatchArrayIndexExpr)
			if !ok {
				return e
			}
			return AMatchIDExpr{ID: m.MatchIDAt(idx.Index)}
		},
		MkLocation: func(e LocationExpr) LocationExpr {
			idx, ok := e.(ALocationArrayIndexExpr)
			if !ok {
				return e
			}
			return ALocationIDExpr{ID: m.LocationIDAt(idx.Index)}
		},
		MkInstr: func(e InstrExpr) InstrExpr {
			idx, ok := e.(AnInstructionArrayIndexExpr)
			if !ok {
				return e
			}
			return AnInstructionIDExpr{ID: m.InstrIDAt(idx.Index)}
		},
	}
	return r.RewriteBool(c)
}

// ReverseIndexMaps supplies the inverse lookup of IndexMaps: dense array
// index back to original identifier. ArrayIndexMaplists implements both.
type ReverseIndexMaps interface {
	NodeIDAt(index int) core.NodeID
	MatchIDAt(index int) core.MatchID
	LocationIDAt(index int) core.LocationID
	InstrIDAt(index int) core.InstrID
}
