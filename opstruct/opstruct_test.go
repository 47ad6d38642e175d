package opstruct_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/constraint"
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
	"github.com/stretchr/testify/require"
)

func TestAddConstraintAcceptsNodeInGraph(t *testing.T) {
	g := core.NewGraph()
	v, g := g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	o := opstruct.New(g)

	c := opstruct.ValueLocationInSetConstraint(v, []core.LocationID{1, 2})
	o2 := o.AddConstraint(c)

	require.Len(t, o2.Constraints, 1)
	require.Empty(t, o.Constraints, "AddConstraint must not mutate the receiver")
}

func TestAddConstraintPanicsOnNodeOutsideGraph(t *testing.T) {
	g := core.NewGraph()
	o := opstruct.New(g)

	other := core.NewGraph()
	v, _ := other.AddNode(core.KindValue, core.NodeLabel{})

	require.Panics(t, func() {
		o.AddConstraint(opstruct.NoReuseConstraint(v, core.LocationID(0)))
	})
}

func TestWithValidLocationsDoesNotAliasAcrossCopies(t *testing.T) {
	g := core.NewGraph()
	v, g := g.AddNode(core.KindValue, core.NodeLabel{})
	o := opstruct.New(g)

	o2 := o.WithValidLocations(v.ID, []core.LocationID{1, 2, 3})
	o3 := o2.WithValidLocations(v.ID, []core.LocationID{9})

	require.Equal(t, []core.LocationID{1, 2, 3}, o2.ValidLocations[v.ID])
	require.Equal(t, []core.LocationID{9}, o3.ValidLocations[v.ID])
}

func TestMatchPlacementConstraintShape(t *testing.T) {
	g := core.NewGraph()
	b, _ := g.AddNode(core.KindBlock, core.NodeLabel{Name: "entry"})

	c := opstruct.MatchPlacementConstraint(b)

	eq, ok := c.(constraint.EqExpr)
	require.True(t, ok)
	block, ok := eq.B.(constraint.ANodeIDExpr)
	require.True(t, ok)
	require.Equal(t, b.ID, block.ID)
}
