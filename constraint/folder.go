package constraint

// Folder is the generic read-only analysis pass of spec §4.3, the
// counterpart to Reconstructor: instead of rebuilding the tree it reduces
// it to a single value of type T, using Combine to merge the values
// produced by sibling subtrees and Zero as the identity element for nodes
// with no children (and as the default when a per-sort hook is left nil).
//
// The collect-free-identifiers analysis quoted in spec §8 scenario 5 is a
// Folder[[]core.NodeID] with Combine as slice-append and FoldNode
// returning a one-element slice for ANodeIDExpr and nil for everything
// else.
type Folder[T any] struct {
	Zero     T
	Combine  func(a, b T) T
	FoldNode func(NodeExpr) T
	FoldMatch func(MatchExpr) T
	FoldLocation func(LocationExpr) T
	FoldInstr func(InstrExpr) T
}

func (f Folder[T]) combine(vs ...T) T {
	if len(vs) == 0 {
		return f.Zero
	}
	acc := vs[0]
	for _, v := range vs[1:] {
		acc = f.Combine(acc, v)
	}
	return acc
}

// FoldNodeExpr folds a NodeExpr, recursing into its structural children before
// combining with the node's own contribution (if FoldNode is set).
func (f Folder[T]) FoldNodeExpr(e NodeExpr) T {
	own := f.Zero
	if f.FoldNode != nil {
		own = f.FoldNode(e)
	}
	switch v := e.(type) {
	case ANodeIDExpr, ANodeArrayIndexExpr:
		return own
	case BlockOfBlockNodeExpr:
		return f.combine(own, f.FoldNodeExpr(v.Node))
	case BlockWhereinMatchIsPlacedExpr:
		return f.combine(own, f.FoldMatchExpr(v.Match))
	default:
		panic("constraint: Folder.FoldNodeExpr: unhandled NodeExpr type")
	}
}

// FoldMatchExpr folds a MatchExpr.
func (f Folder[T]) FoldMatchExpr(e MatchExpr) T {
	if f.FoldMatch != nil {
		return f.FoldMatch(e)
	}
	return f.Zero
}

// FoldLocationExpr folds a LocationExpr, recursing into structural
// children.
func (f Folder[T]) FoldLocationExpr(e LocationExpr) T {
	own := f.Zero
	if f.FoldLocation != nil {
		own = f.FoldLocation(e)
	}
	switch v := e.(type) {
	case ALocationIDExpr, ALocationArrayIndexExpr:
		return own
	case LocationOfValueNodeExpr:
		return f.combine(own, f.FoldNodeExpr(v.Node))
	default:
		panic("constraint: Folder.FoldLocationExpr: unhandled LocationExpr type")
	}
}

// FoldInstrExpr folds an InstrExpr.
func (f Folder[T]) FoldInstrExpr(e InstrExpr) T {
	if f.FoldInstr != nil {
		return f.FoldInstr(e)
	}
	return f.Zero
}

// FoldNum folds a NumExpr.
func (f Folder[T]) FoldNum(e NumExpr) T {
	switch v := e.(type) {
	case IntLiteralExpr:
		return f.Zero
	case NodeIDToNumExpr:
		return f.FoldNodeExpr(v.Node)
	case MatchIDToNumExpr:
		return f.FoldMatchExpr(v.Match)
	case LocationIDToNumExpr:
		return f.FoldLocationExpr(v.Location)
	case InstrIDToNumExpr:
		return f.FoldInstrExpr(v.Instr)
	case PlusExpr:
		return f.combine(f.FoldNum(v.A), f.FoldNum(v.B))
	case MinusExpr:
		return f.combine(f.FoldNum(v.A), f.FoldNum(v.B))
	case MulExpr:
		return f.combine(f.FoldNum(v.A), f.FoldNum(v.B))
	default:
		panic("constraint: Folder.FoldNum: unhandled NumExpr type")
	}
}

func (f Folder[T]) foldExpr(e Expr) T {
	switch v := e.(type) {
	case NodeExpr:
		return f.FoldNodeExpr(v)
	case MatchExpr:
		return f.FoldMatchExpr(v)
	case LocationExpr:
		return f.FoldLocationExpr(v)
	case InstrExpr:
		return f.FoldInstrExpr(v)
	case NumExpr:
		return f.FoldNum(v)
	case BoolExpr:
		return f.FoldBool(v)
	default:
		panic("constraint: Folder.foldExpr: unhandled Expr type")
	}
}

// FoldBool folds a BoolExpr.
func (f Folder[T]) FoldBool(e BoolExpr) T {
	switch v := e.(type) {
	case EqExpr:
		return f.combine(f.foldExpr(v.A), f.foldExpr(v.B))
	case LtExpr:
		return f.combine(f.FoldNum(v.A), f.FoldNum(v.B))
	case LeExpr:
		return f.combine(f.FoldNum(v.A), f.FoldNum(v.B))
	case GtExpr:
		return f.combine(f.FoldNum(v.A), f.FoldNum(v.B))
	case GeExpr:
		return f.combine(f.FoldNum(v.A), f.FoldNum(v.B))
	case InSetExpr:
		vs := []T{f.foldExpr(v.Elem)}
		for _, m := range v.Set {
			vs = append(vs, f.foldExpr(m))
		}
		return f.combine(vs...)
	case AndExpr:
		vs := make([]T, len(v.Operands))
		for i, o := range v.Operands {
			vs[i] = f.FoldBool(o)
		}
		return f.combine(vs...)
	case OrExpr:
		vs := make([]T, len(v.Operands))
		for i, o := range v.Operands {
			vs[i] = f.FoldBool(o)
		}
		return f.combine(vs...)
	case ImpliesExpr:
		return f.combine(f.FoldBool(v.Ante), f.FoldBool(v.Cons))
	case NotExpr:
		return f.FoldBool(v.Operand)
	case FallThroughExpr:
		return f.combine(f.FoldMatchExpr(v.Match), f.FoldNodeExpr(v.Block))
	case DistanceExpr:
		return f.combine(f.FoldMatchExpr(v.Match), f.combine(f.FoldNodeExpr(v.Block), f.FoldNum(v.Max)))
	default:
		panic("constraint: Folder.FoldBool: unhandled BoolExpr type")
	}
}
