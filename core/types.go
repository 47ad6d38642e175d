package core

import "fmt"

// NodeID is the stable public identifier of a node, assigned by AddNode as
// max(existing)+1 (0 if the graph is empty). IDs need not be contiguous,
// and two distinct node instances may share one (see Node.SameInstance).
type NodeID int64

// nodeSeq is the internal instance identity of a node: unique per node
// object ever created in a given graph lineage, even across nodes that
// share a public NodeID. It never appears in any exported API.
type nodeSeq uint64

// edgeSeq is the internal identity of an edge, analogous to nodeSeq.
type edgeSeq uint64

// NodeKind tags the sum type described in spec §3: operations (the
// Computation/Control/Call/IndirCall/Phi/Copy/Reuse variants), entities
// (Value/State), and Block.
type NodeKind int

const (
	KindComputation NodeKind = iota
	KindControl
	KindCall
	KindIndirCall
	KindPhi
	KindCopy
	KindReuse
	KindValue
	KindState
	KindBlock
)

func (k NodeKind) String() string {
	switch k {
	case KindComputation:
		return "Computation"
	case KindControl:
		return "Control"
	case KindCall:
		return "Call"
	case KindIndirCall:
		return "IndirCall"
	case KindPhi:
		return "Phi"
	case KindCopy:
		return "Copy"
	case KindReuse:
		return "Reuse"
	case KindValue:
		return "Value"
	case KindState:
		return "State"
	case KindBlock:
		return "Block"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// IsOperation reports whether k belongs to the Operation branch of the
// node-kind sum type (as opposed to Entity or Block).
func (k NodeKind) IsOperation() bool {
	switch k {
	case KindComputation, KindControl, KindCall, KindIndirCall, KindPhi, KindCopy, KindReuse:
		return true
	default:
		return false
	}
}

// NodeLabel carries the kind-specific payload of a node. Only the fields
// relevant to Kind are meaningful, mirroring lvlath's Edge struct (whose
// Directed field is only meaningful in mixed-mode graphs).
type NodeLabel struct {
	// Op names the operator for Computation and Control nodes (e.g. "add",
	// "mul", "br", "ret").
	Op string

	// Fn names the callee for Call nodes.
	Fn string

	// DataType describes a Value node's type.
	DataType DataType

	// Origin optionally names the source-level origin(s) of a Value node.
	Origin []string

	// Name labels a Block node.
	Name string
}

// DataTypeKind distinguishes the five value-type shapes of spec §3.
type DataTypeKind int

const (
	DTIntTemp DataTypeKind = iota
	DTIntConst
	DTPointer
	DTAny
	DTVoid
)

// PointerVariant distinguishes the three Pointer sub-shapes: a null
// pointer, a pointer held in a temporary, or a pointer restricted to a
// constant range.
type PointerVariant int

const (
	PointerNull PointerVariant = iota
	PointerTemp
	PointerConstRange
)

// IntRange is an inclusive [Lo, Hi] integer range.
type IntRange struct {
	Lo, Hi int64
}

// Contains reports whether r fully contains o.
func (r IntRange) Contains(o IntRange) bool {
	return r.Lo <= o.Lo && o.Hi <= r.Hi
}

// DataType models IntTemp{bits}, IntConst{range, optional bits},
// Pointer{null|temp|const-range}, Any, and Void (spec §3).
type DataType struct {
	Kind           DataTypeKind
	Bits           int
	HasBits        bool // IntConst's optional bits, present iff true
	Range          IntRange
	PointerVariant PointerVariant
}

// IntTemp builds an IntTemp{bits} data type.
func IntTemp(bits int) DataType { return DataType{Kind: DTIntTemp, Bits: bits} }

// IntConst builds an IntConst{range} data type with no bit width recorded.
func IntConst(r IntRange) DataType { return DataType{Kind: DTIntConst, Range: r} }

// IntConstBits builds an IntConst{range, bits} data type.
func IntConstBits(r IntRange, bits int) DataType {
	return DataType{Kind: DTIntConst, Range: r, HasBits: true, Bits: bits}
}

// PointerTempType builds a Pointer{temp} data type of the given width.
func PointerTempType(bits int) DataType {
	return DataType{Kind: DTPointer, PointerVariant: PointerTemp, Bits: bits}
}

// PointerNullType builds a Pointer{null} data type.
func PointerNullType() DataType { return DataType{Kind: DTPointer, PointerVariant: PointerNull} }

// PointerConstType builds a Pointer{const-range} data type.
func PointerConstType(r IntRange) DataType {
	return DataType{Kind: DTPointer, PointerVariant: PointerConstRange, Range: r}
}

// AnyType is the wildcard data type: it is compatible with anything.
func AnyType() DataType { return DataType{Kind: DTAny} }

// VoidType is the data type of State and control-only values.
func VoidType() DataType { return DataType{Kind: DTVoid} }

// CompatibleWith reports whether dt matches other per spec §3's
// non-commutative compatibility relation: dt is conventionally the
// pattern-side type, other the function-side type being tested against
// it. Any matches anything; IntTemp{n} matches only IntTemp{n}; IntConst{r1}
// matches IntConst{r2} iff r1 contains r2 (and, if dt declares bits, iff
// other declares the same bits); Pointer variants match like-for-like,
// with ConstRange additionally requiring range containment.
func (dt DataType) CompatibleWith(other DataType) bool {
	if dt.Kind == DTAny {
		return true
	}
	if dt.Kind != other.Kind {
		return false
	}
	switch dt.Kind {
	case DTIntTemp:
		return dt.Bits == other.Bits
	case DTIntConst:
		if !dt.Range.Contains(other.Range) {
			return false
		}
		if dt.HasBits {
			return other.HasBits && dt.Bits == other.Bits
		}
		return true
	case DTPointer:
		if dt.PointerVariant != other.PointerVariant {
			return false
		}
		if dt.PointerVariant == PointerConstRange {
			return dt.Range.Contains(other.Range)
		}
		return true
	case DTVoid, DTAny:
		return true
	default:
		return false
	}
}

// Node is a graph node: its public ID, its kind, and its kind-specific
// label. The zero Node is never valid (its seq is 0, which NewGraph never
// assigns).
type Node struct {
	seq   nodeSeq
	ID    NodeID
	Kind  NodeKind
	Label NodeLabel
}

// InstanceKey returns an opaque, comparable value identifying n's
// instance, distinct from its public ID. NodeLabel.Origin is a slice, so
// Node itself is not usable as a map key; callers that need to key a map
// by node identity (the matcher's VF2 state chief among them) use this
// instead of n directly.
func (n Node) InstanceKey() uint64 { return uint64(n.seq) }

// SameInstance reports whether n and o are literally the same node
// instance (not merely nodes that happen to share a public ID, as
// duplicated block nodes do during matching).
func (n Node) SameInstance(o Node) bool { return n.seq == o.seq }

// Edge is a labeled, numbered connection between two node instances.
// OutNumber is n's position among same-kind out-edges of Src; InNumber is
// its position among same-kind in-edges of Dst. Both are scoped per
// (endpoint, kind): see the package-level invariant in graph.go.
type Edge struct {
	seq       edgeSeq
	Kind      EdgeKind
	Src       Node
	Dst       Node
	OutNumber int
	InNumber  int
}

// SameInstance reports whether e and o are the same edge instance.
func (e Edge) SameInstance(o Edge) bool { return e.seq == o.seq }

// EdgeKind enumerates the four primary edge kinds plus Reuse (spec §3,
// GLOSSARY). Named EdgeReuse to avoid colliding with the Reuse node kind.
type EdgeKind int

const (
	DataFlow EdgeKind = iota
	ControlFlow
	StateFlow
	DefPlacement
	EdgeReuse
)

func (k EdgeKind) String() string {
	switch k {
	case DataFlow:
		return "DataFlow"
	case ControlFlow:
		return "ControlFlow"
	case StateFlow:
		return "StateFlow"
	case DefPlacement:
		return "DefPlacement"
	case EdgeReuse:
		return "Reuse"
	default:
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
}

// allEdgeKinds lists every edge kind, used by operations that must touch
// "every kind" at a node (delete, merge, projection).
var allEdgeKinds = [...]EdgeKind{DataFlow, ControlFlow, StateFlow, DefPlacement, EdgeReuse}

// PreconditionError reports a violated operation precondition (spec §7
// category 1): an operation that is documented as panicking on malformed
// input panics with one of these, naming the operation and offending ID.
type PreconditionError struct {
	Op     string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("core: %s: %s", e.Op, e.Detail)
}

func preconditionf(op, format string, args ...interface{}) {
	panic(&PreconditionError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
