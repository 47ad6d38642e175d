package constraint

// Reconstructor is the generic rebuild pass of spec §4.3: a family of
// mk<Sort>Expr hooks, one per identifier sort, each defaulting to identity.
// A caller overrides exactly one hook to perform a targeted rewrite (e.g.
// "replace every ThisMatchExpr with AMatchIDExpr(m)"); every other sort,
// and every Bool/Num node, is rebuilt unchanged around the rewritten
// subtree. Children are always visited before a hook runs, so an override
// sees already-rewritten subtrees — rewriting NodeExpr first and then
// wrapping it in, say, LocationOfValueNodeExpr is safe to do incrementally
// across the whole tree in one pass.
type Reconstructor struct {
	MkNode     func(NodeExpr) NodeExpr
	MkMatch    func(MatchExpr) MatchExpr
	MkLocation func(LocationExpr) LocationExpr
	MkInstr    func(InstrExpr) InstrExpr
}

func (r Reconstructor) mkNode(n NodeExpr) NodeExpr {
	if r.MkNode != nil {
		return r.MkNode(n)
	}
	return n
}

func (r Reconstructor) mkMatch(m MatchExpr) MatchExpr {
	if r.MkMatch != nil {
		return r.MkMatch(m)
	}
	return m
}

func (r Reconstructor) mkLocation(l LocationExpr) LocationExpr {
	if r.MkLocation != nil {
		return r.MkLocation(l)
	}
	return l
}

func (r Reconstructor) mkInstr(i InstrExpr) InstrExpr {
	if r.MkInstr != nil {
		return r.MkInstr(i)
	}
	return i
}

// RewriteNode rewrites a NodeExpr bottom-up, then applies MkNode.
func (r Reconstructor) RewriteNode(e NodeExpr) NodeExpr {
	switch v := e.(type) {
	case ANodeIDExpr:
		return r.mkNode(v)
	case ANodeArrayIndexExpr:
		return r.mkNode(v)
	case BlockOfBlockNodeExpr:
		return r.mkNode(BlockOfBlockNodeExpr{Node: r.RewriteNode(v.Node)})
	case BlockWhereinMatchIsPlacedExpr:
		return r.mkNode(BlockWhereinMatchIsPlacedExpr{Match: r.RewriteMatch(v.Match)})
	default:
		panic("constraint: Reconstructor.RewriteNode: unhandled NodeExpr type")
	}
}

// RewriteMatch rewrites a MatchExpr bottom-up, then applies MkMatch.
func (r Reconstructor) RewriteMatch(e MatchExpr) MatchExpr {
	switch v := e.(type) {
	case AMatchIDExpr:
		return r.mkMatch(v)
	case AMatchArrayIndexExpr:
		return r.mkMatch(v)
	case ThisMatchExpr:
		return r.mkMatch(v)
	default:
		panic("constraint: Reconstructor.RewriteMatch: unhandled MatchExpr type")
	}
}

// RewriteLocation rewrites a LocationExpr bottom-up, then applies
// MkLocation.
func (r Reconstructor) RewriteLocation(e LocationExpr) LocationExpr {
	switch v := e.(type) {
	case ALocationIDExpr:
		return r.mkLocation(v)
	case ALocationArrayIndexExpr:
		return r.mkLocation(v)
	case LocationOfValueNodeExpr:
		return r.mkLocation(LocationOfValueNodeExpr{Node: r.RewriteNode(v.Node)})
	default:
		panic("constraint: Reconstructor.RewriteLocation: unhandled LocationExpr type")
	}
}

// RewriteInstr rewrites an InstrExpr bottom-up, then applies MkInstr.
func (r Reconstructor) RewriteInstr(e InstrExpr) InstrExpr {
	switch v := e.(type) {
	case AnInstructionIDExpr:
		return r.mkInstr(v)
	case AnInstructionArrayIndexExpr:
		return r.mkInstr(v)
	default:
		panic("constraint: Reconstructor.RewriteInstr: unhandled InstrExpr type")
	}
}

// RewriteNum rewrites a NumExpr bottom-up. NumExpr has no hook of its own;
// rewriting happens entirely through the identifier sorts it casts.
func (r Reconstructor) RewriteNum(e NumExpr) NumExpr {
	switch v := e.(type) {
	case IntLiteralExpr:
		return v
	case NodeIDToNumExpr:
		return NodeIDToNumExpr{Node: r.RewriteNode(v.Node)}
	case MatchIDToNumExpr:
		return MatchIDToNumExpr{Match: r.RewriteMatch(v.Match)}
	case LocationIDToNumExpr:
		return LocationIDToNumExpr{Location: r.RewriteLocation(v.Location)}
	case InstrIDToNumExpr:
		return InstrIDToNumExpr{Instr: r.RewriteInstr(v.Instr)}
	case PlusExpr:
		return PlusExpr{A: r.RewriteNum(v.A), B: r.RewriteNum(v.B)}
	case MinusExpr:
		return MinusExpr{A: r.RewriteNum(v.A), B: r.RewriteNum(v.B)}
	case MulExpr:
		return MulExpr{A: r.RewriteNum(v.A), B: r.RewriteNum(v.B)}
	default:
		panic("constraint: Reconstructor.RewriteNum: unhandled NumExpr type")
	}
}

// rewriteExpr rewrites a bare Expr by dispatching to the sort-specific
// rewriter for its dynamic type. EqExpr and InSetExpr hold untyped Expr
// children (their sort-safety is a constructor-time contract, not a
// Go-type-system one — see the package doc comment), so this is needed to
// recurse into them generically.
func (r Reconstructor) rewriteExpr(e Expr) Expr {
	switch v := e.(type) {
	case NodeExpr:
		return r.RewriteNode(v)
	case MatchExpr:
		return r.RewriteMatch(v)
	case LocationExpr:
		return r.RewriteLocation(v)
	case InstrExpr:
		return r.RewriteInstr(v)
	case NumExpr:
		return r.RewriteNum(v)
	case BoolExpr:
		return r.RewriteBool(v)
	default:
		panic("constraint: Reconstructor.rewriteExpr: unhandled Expr type")
	}
}

// RewriteBool rewrites a BoolExpr bottom-up. BoolExpr has no hook of its
// own; rewriting happens entirely through the sorts it contains.
func (r Reconstructor) RewriteBool(e BoolExpr) BoolExpr {
	switch v := e.(type) {
	case EqExpr:
		return EqExpr{A: r.rewriteExpr(v.A), B: r.rewriteExpr(v.B)}
	case LtExpr:
		return LtExpr{A: r.RewriteNum(v.A), B: r.RewriteNum(v.B)}
	case LeExpr:
		return LeExpr{A: r.RewriteNum(v.A), B: r.RewriteNum(v.B)}
	case GtExpr:
		return GtExpr{A: r.RewriteNum(v.A), B: r.RewriteNum(v.B)}
	case GeExpr:
		return GeExpr{A: r.RewriteNum(v.A), B: r.RewriteNum(v.B)}
	case InSetExpr:
		set := make([]Expr, len(v.Set))
		for i, m := range v.Set {
			set[i] = r.rewriteExpr(m)
		}
		return InSetExpr{Elem: r.rewriteExpr(v.Elem), Set: set}
	case AndExpr:
		ops := make([]BoolExpr, len(v.Operands))
		for i, o := range v.Operands {
			ops[i] = r.RewriteBool(o)
		}
		return AndExpr{Operands: ops}
	case OrExpr:
		ops := make([]BoolExpr, len(v.Operands))
		for i, o := range v.Operands {
			ops[i] = r.RewriteBool(o)
		}
		return OrExpr{Operands: ops}
	case ImpliesExpr:
		return ImpliesExpr{Ante: r.RewriteBool(v.Ante), Cons: r.RewriteBool(v.Cons)}
	case NotExpr:
		return NotExpr{Operand: r.RewriteBool(v.Operand)}
	case FallThroughExpr:
		return FallThroughExpr{Match: r.RewriteMatch(v.Match), Block: r.RewriteNode(v.Block)}
	case DistanceExpr:
		return DistanceExpr{Match: r.RewriteMatch(v.Match), Block: r.RewriteNode(v.Block), Max: r.RewriteNum(v.Max)}
	default:
		panic("constraint: Reconstructor.RewriteBool: unhandled BoolExpr type")
	}
}
