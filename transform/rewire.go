package transform

import (
	"github.com/katalvlaran/cpsel/constraint"
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
)

// replaceNodeIDEverywhere rewrites every occurrence of from to to across
// o's constraint list, valid-location map, and same-location pairs. Used
// whenever a rewrite merges two value nodes into one surviving public ID
// (spec §4.8's "remove pointer-to-pointer casts" and "remove redundant
// phi nodes", both of which call for updating every reference, not just
// the graph).
func replaceNodeIDEverywhere(o *opstruct.OpStruct, from, to core.NodeID) *opstruct.OpStruct {
	rc := constraint.Reconstructor{
		MkNode: func(e constraint.NodeExpr) constraint.NodeExpr {
			if id, ok := e.(constraint.ANodeIDExpr); ok && id.ID == from {
				return constraint.ANodeIDExpr{ID: to}
			}
			return e
		},
	}

	newConstraints := make([]constraint.BoolExpr, len(o.Constraints))
	for i, c := range o.Constraints {
		newConstraints[i] = rc.RewriteBool(c)
	}

	newLocs := make(map[core.NodeID][]core.LocationID, len(o.ValidLocations))
	for id, locs := range o.ValidLocations {
		key := id
		if key == from {
			key = to
		}
		newLocs[key] = append(newLocs[key], locs...)
	}

	newPairs := make([]opstruct.SameLocationPair, len(o.SameLocationSets))
	for i, p := range o.SameLocationSets {
		if p.A == from {
			p.A = to
		}
		if p.B == from {
			p.B = to
		}
		newPairs[i] = p
	}

	out := o.WithGraph(o.Graph)
	out.Constraints = newConstraints
	out.ValidLocations = newLocs
	out.SameLocationSets = newPairs
	return out
}
