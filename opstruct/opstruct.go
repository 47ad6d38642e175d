package opstruct

import (
	"fmt"

	"github.com/katalvlaran/cpsel/constraint"
	"github.com/katalvlaran/cpsel/core"
)

// SameLocationPair names two value nodes that must resolve to the same
// location (spec C2's "same-location equivalence pairs").
type SameLocationPair struct {
	A, B core.NodeID
}

// OpStruct is the Op-Structure of spec §3/§4.2: a graph, an optional
// entry block, a map from value-node ID to its set of permitted location
// IDs, a list of constraint roots, and optional same-location pairs.
//
// Invariant: every node ID referenced by Constraints must name a node
// present in Graph. AddConstraint checks this by folding over each new
// constraint tree and panics on a node ID that Graph does not contain.
type OpStruct struct {
	Graph            *core.Graph
	EntryBlock       core.Node
	HasEntryBlock    bool
	ValidLocations   map[core.NodeID][]core.LocationID
	Constraints      []constraint.BoolExpr
	SameLocationSets []SameLocationPair
}

// New returns an Op-Structure over g with no entry block, no location
// hints, and no constraints.
func New(g *core.Graph) *OpStruct {
	return &OpStruct{
		Graph:          g,
		ValidLocations: make(map[core.NodeID][]core.LocationID),
	}
}

// WithEntryBlock returns a copy of o with its entry block set to b.
func (o *OpStruct) WithEntryBlock(b core.Node) *OpStruct {
	n := o.clone()
	n.EntryBlock = b
	n.HasEntryBlock = true
	return n
}

// WithGraph returns a copy of o with its graph replaced by g, every other
// field carried over unchanged. Package transform's rewrites use this to
// thread a new graph value back into an Op-Structure after mutating it.
func (o *OpStruct) WithGraph(g *core.Graph) *OpStruct {
	n := o.clone()
	n.Graph = g
	return n
}

func (o *OpStruct) clone() *OpStruct {
	locs := make(map[core.NodeID][]core.LocationID, len(o.ValidLocations))
	for k, v := range o.ValidLocations {
		locs[k] = append([]core.LocationID(nil), v...)
	}
	return &OpStruct{
		Graph:            o.Graph,
		EntryBlock:       o.EntryBlock,
		HasEntryBlock:    o.HasEntryBlock,
		ValidLocations:   locs,
		Constraints:      append([]constraint.BoolExpr(nil), o.Constraints...),
		SameLocationSets: append([]SameLocationPair(nil), o.SameLocationSets...),
	}
}

// AddConstraint returns a copy of o with c appended to its constraint
// list. It panics if c, or any node ID it mentions, is not reachable from
// o.Graph — this is checked with a Folder over c rather than re-walking
// the graph, per spec §4.2's "every ID mentioned inside the constraint
// list refers to a node present in the graph" invariant.
func (o *OpStruct) AddConstraint(c constraint.BoolExpr) *OpStruct {
	o.requireNodesInGraph(c)
	n := o.clone()
	n.Constraints = append(n.Constraints, c)
	return n
}

// AddConstraints appends every constraint in cs, in order.
func (o *OpStruct) AddConstraints(cs ...constraint.BoolExpr) *OpStruct {
	n := o
	for _, c := range cs {
		n = n.AddConstraint(c)
	}
	return n
}

func (o *OpStruct) requireNodesInGraph(c constraint.BoolExpr) {
	folder := constraint.Folder[[]core.NodeID]{
		Combine: func(a, b []core.NodeID) []core.NodeID {
			return append(append([]core.NodeID(nil), a...), b...)
		},
		FoldNode: func(e constraint.NodeExpr) []core.NodeID {
			if n, ok := e.(constraint.ANodeIDExpr); ok {
				return []core.NodeID{n.ID}
			}
			return nil
		},
	}
	byID := make(map[core.NodeID]bool, len(o.Graph.Nodes()))
	for _, n := range o.Graph.Nodes() {
		byID[n.ID] = true
	}
	for _, id := range folder.FoldBool(c) {
		if !byID[id] {
			panic(&core.PreconditionError{Op: "opstruct.AddConstraint", Detail: fmt.Sprintf("constraint references node %d not present in graph", id)})
		}
	}
}

// WithValidLocations returns a copy of o recording that value node n may
// be assigned any location in locs.
func (o *OpStruct) WithValidLocations(n core.NodeID, locs []core.LocationID) *OpStruct {
	out := o.clone()
	out.ValidLocations[n] = append([]core.LocationID(nil), locs...)
	return out
}

// WithSameLocation returns a copy of o recording that a and b must
// resolve to the same location.
func (o *OpStruct) WithSameLocation(a, b core.NodeID) *OpStruct {
	out := o.clone()
	out.SameLocationSets = append(out.SameLocationSets, SameLocationPair{A: a, B: b})
	return out
}

// MatchPlacementConstraint builds the canned constraint "this match is
// placed in its pattern's entry block", for patterns that have one.
func MatchPlacementConstraint(entryBlock core.Node) constraint.BoolExpr {
	return constraint.EqNode(
		constraint.BlockWhereinMatchIsPlaced(constraint.ThisMatchExpr{}),
		constraint.ANodeID(entryBlock.ID),
	)
}

// FallThroughFromMatchConstraint builds the canned constraint "this
// match's code falls through directly into block".
func FallThroughFromMatchConstraint(block core.Node) constraint.BoolExpr {
	return constraint.FallThrough(constraint.ThisMatchExpr{}, constraint.ANodeID(block.ID))
}

// ValueLocationInSetConstraint builds the canned constraint "value's
// assigned location is a member of locs".
func ValueLocationInSetConstraint(value core.Node, locs []core.LocationID) constraint.BoolExpr {
	set := make([]constraint.LocationExpr, len(locs))
	for i, l := range locs {
		set[i] = constraint.ALocationID(l)
	}
	return constraint.InLocationSet(constraint.LocationOf(constraint.ANodeID(value.ID)), set)
}

// NoReuseConstraint builds the canned constraint pinning value to the
// target machine's null location, forbidding the solver from reusing any
// other location for it.
func NoReuseConstraint(value core.Node, nullLocation core.LocationID) constraint.BoolExpr {
	return constraint.EqLocation(
		constraint.LocationOf(constraint.ANodeID(value.ID)),
		constraint.ALocationID(nullLocation),
	)
}

// SameLocationEquivalenceConstraint builds the canned constraint "a and b
// resolve to the same location", the constraint-expression form of a
// SameLocationPair (some callers want it expressed directly in the
// constraint list rather than via the side-table).
func SameLocationEquivalenceConstraint(a, b core.Node) constraint.BoolExpr {
	return constraint.EqLocation(
		constraint.LocationOf(constraint.ANodeID(a.ID)),
		constraint.LocationOf(constraint.ANodeID(b.ID)),
	)
}
