package constraint

import "github.com/katalvlaran/cpsel/core"

// ANodeID, AMatchID, ALocationID, AnInstructionID build the public-ID leaf
// of each identifier sort.
func ANodeID(id core.NodeID) NodeExpr             { return ANodeIDExpr{ID: id} }
func AMatchID(id core.MatchID) MatchExpr          { return AMatchIDExpr{ID: id} }
func ALocationID(id core.LocationID) LocationExpr { return ALocationIDExpr{ID: id} }
func AnInstructionID(id core.InstrID) InstrExpr   { return AnInstructionIDExpr{ID: id} }

// EqNode, EqMatch, EqLocation, EqInstr, EqNum build a same-sort equality.
// These are the sort-safe entry points into EqExpr: callers outside this
// package should prefer them over constructing EqExpr directly.
func EqNode(a, b NodeExpr) BoolExpr         { return EqExpr{A: a, B: b} }
func EqMatch(a, b MatchExpr) BoolExpr       { return EqExpr{A: a, B: b} }
func EqLocation(a, b LocationExpr) BoolExpr { return EqExpr{A: a, B: b} }
func EqInstr(a, b InstrExpr) BoolExpr       { return EqExpr{A: a, B: b} }
func EqNum(a, b NumExpr) BoolExpr           { return EqExpr{A: a, B: b} }

// Lt, Le, Gt, Ge build numeric ordering predicates.
func Lt(a, b NumExpr) BoolExpr { return LtExpr{A: a, B: b} }
func Le(a, b NumExpr) BoolExpr { return LeExpr{A: a, B: b} }
func Gt(a, b NumExpr) BoolExpr { return GtExpr{A: a, B: b} }
func Ge(a, b NumExpr) BoolExpr { return GeExpr{A: a, B: b} }

// InNodeSet builds a set-membership predicate over node-sort expressions.
func InNodeSet(elem NodeExpr, set []NodeExpr) BoolExpr {
	members := make([]Expr, len(set))
	for i, s := range set {
		members[i] = s
	}
	return InSetExpr{Elem: elem, Set: members}
}

// InLocationSet builds a set-membership predicate over location-sort
// expressions.
func InLocationSet(elem LocationExpr, set []LocationExpr) BoolExpr {
	members := make([]Expr, len(set))
	for i, s := range set {
		members[i] = s
	}
	return InSetExpr{Elem: elem, Set: members}
}

// And, Or build n-ary conjunction/disjunction, flattening any operand that
// is already an And/Or of the same kind so repeated use doesn't nest
// needlessly deep.
func And(operands ...BoolExpr) BoolExpr {
	var flat []BoolExpr
	for _, o := range operands {
		if a, ok := o.(AndExpr); ok {
			flat = append(flat, a.Operands...)
			continue
		}
		flat = append(flat, o)
	}
	return AndExpr{Operands: flat}
}

func Or(operands ...BoolExpr) BoolExpr {
	var flat []BoolExpr
	for _, o := range operands {
		if a, ok := o.(OrExpr); ok {
			flat = append(flat, a.Operands...)
			continue
		}
		flat = append(flat, o)
	}
	return OrExpr{Operands: flat}
}

// Implies, Not build implication and negation.
func Implies(ante, cons BoolExpr) BoolExpr { return ImpliesExpr{Ante: ante, Cons: cons} }
func Not(e BoolExpr) BoolExpr              { return NotExpr{Operand: e} }

// Int builds an integer literal NumExpr.
func Int(v int64) NumExpr { return IntLiteralExpr{Value: v} }

// NumOfNode, NumOfMatch, NumOfLocation, NumOfInstr lift an identifier-sort
// expression to NumExpr for arithmetic.
func NumOfNode(n NodeExpr) NumExpr         { return NodeIDToNumExpr{Node: n} }
func NumOfMatch(m MatchExpr) NumExpr       { return MatchIDToNumExpr{Match: m} }
func NumOfLocation(l LocationExpr) NumExpr { return LocationIDToNumExpr{Location: l} }
func NumOfInstr(i InstrExpr) NumExpr       { return InstrIDToNumExpr{Instr: i} }

// Plus, Minus, Mul build binary arithmetic.
func Plus(a, b NumExpr) NumExpr  { return PlusExpr{A: a, B: b} }
func Minus(a, b NumExpr) NumExpr { return MinusExpr{A: a, B: b} }
func Mul(a, b NumExpr) NumExpr   { return MulExpr{A: a, B: b} }

// LocationOf, BlockWhereinMatchIsPlaced, FallThrough, Distance build the
// remaining structural accessors and predicates.
func LocationOf(n NodeExpr) LocationExpr                { return LocationOfValueNodeExpr{Node: n} }
func BlockWhereinMatchIsPlaced(m MatchExpr) NodeExpr     { return BlockWhereinMatchIsPlacedExpr{Match: m} }
func FallThrough(m MatchExpr, block NodeExpr) BoolExpr   { return FallThroughExpr{Match: m, Block: block} }
func Distance(m MatchExpr, block NodeExpr, max NumExpr) BoolExpr {
	return DistanceExpr{Match: m, Block: block, Max: max}
}
