package constraint_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/constraint"
	"github.com/katalvlaran/cpsel/core"
	"github.com/stretchr/testify/require"
)

func TestReplaceThisMatchWithBindsToConcreteMatch(t *testing.T) {
	c := constraint.FallThrough(constraint.ThisMatchExpr{}, constraint.ANodeID(core.NodeID(7)))
	bound := constraint.ReplaceThisMatchWith(c, core.MatchID(3))

	ft, ok := bound.(constraint.FallThroughExpr)
	require.True(t, ok)
	mid, ok := ft.Match.(constraint.AMatchIDExpr)
	require.True(t, ok)
	require.Equal(t, core.MatchID(3), mid.ID)
}

func TestReplaceThisMatchWithLeavesOtherMatchesAlone(t *testing.T) {
	c := constraint.EqMatch(constraint.AMatchID(core.MatchID(1)), constraint.ThisMatchExpr{})
	bound := constraint.ReplaceThisMatchWith(c, core.MatchID(9))

	eq, ok := bound.(constraint.EqExpr)
	require.True(t, ok)
	a, ok := eq.A.(constraint.AMatchIDExpr)
	require.True(t, ok)
	require.Equal(t, core.MatchID(1), a.ID)
	b, ok := eq.B.(constraint.AMatchIDExpr)
	require.True(t, ok)
	require.Equal(t, core.MatchID(9), b.ID)
}

type fakePatternNodeMapper map[core.NodeID]core.NodeID

func (m fakePatternNodeMapper) FunctionNodeFor(p core.NodeID) (core.NodeID, bool) {
	fn, ok := m[p]
	return fn, ok
}

func TestReplacePatternNodeIDsWithFunctionNodeIDs(t *testing.T) {
	c := constraint.EqNode(constraint.ANodeID(core.NodeID(1)), constraint.ANodeID(core.NodeID(2)))
	mapper := fakePatternNodeMapper{core.NodeID(1): core.NodeID(101), core.NodeID(2): core.NodeID(102)}

	bound := constraint.ReplacePatternNodeIDsWithFunctionNodeIDs(c, mapper)

	eq, ok := bound.(constraint.EqExpr)
	require.True(t, ok)
	a, ok := eq.A.(constraint.ANodeIDExpr)
	require.True(t, ok)
	require.Equal(t, core.NodeID(101), a.ID)
	b, ok := eq.B.(constraint.ANodeIDExpr)
	require.True(t, ok)
	require.Equal(t, core.NodeID(102), b.ID)
}

func TestReplacePatternNodeIDsWithFunctionNodeIDsPanicsOnUnmappedNode(t *testing.T) {
	c := constraint.EqNode(constraint.ANodeID(core.NodeID(1)), constraint.ANodeID(core.NodeID(99)))
	mapper := fakePatternNodeMapper{core.NodeID(1): core.NodeID(101)}

	require.Panics(t, func() {
		constraint.ReplacePatternNodeIDsWithFunctionNodeIDs(c, mapper)
	})
}

type fakeIndexMaps struct {
	nodes map[core.NodeID]int
	nodesRev []core.NodeID
}

func (m fakeIndexMaps) NodeArrayIndex(id core.NodeID) (int, bool) {
	i, ok := m.nodes[id]
	return i, ok
}
func (m fakeIndexMaps) MatchArrayIndex(core.MatchID) (int, bool)       { return 0, false }
func (m fakeIndexMaps) LocationArrayIndex(core.LocationID) (int, bool) { return 0, false }
func (m fakeIndexMaps) InstrArrayIndex(core.InstrID) (int, bool)       { return 0, false }

func (m fakeIndexMaps) NodeIDAt(i int) core.NodeID          { return m.nodesRev[i] }
func (m fakeIndexMaps) MatchIDAt(int) core.MatchID          { return 0 }
func (m fakeIndexMaps) LocationIDAt(int) core.LocationID    { return 0 }
func (m fakeIndexMaps) InstrIDAt(int) core.InstrID          { return 0 }

func TestLowerThenRaiseArrayIndicesRoundTrips(t *testing.T) {
	maps := fakeIndexMaps{
		nodes:    map[core.NodeID]int{core.NodeID(5): 0, core.NodeID(6): 1},
		nodesRev: []core.NodeID{core.NodeID(5), core.NodeID(6)},
	}
	c := constraint.EqNode(constraint.ANodeID(core.NodeID(5)), constraint.ANodeID(core.NodeID(6)))

	lowered := constraint.LowerIDsToArrayIndices(c, maps)
	eq, ok := lowered.(constraint.EqExpr)
	require.True(t, ok)
	a, ok := eq.A.(constraint.ANodeArrayIndexExpr)
	require.True(t, ok)
	require.Equal(t, 0, a.Index)

	raised := constraint.RaiseArrayIndicesToIDs(lowered, maps)
	require.Equal(t, c, raised)
}

func TestLowerIDsToArrayIndicesPanicsOnMissingIndex(t *testing.T) {
	maps := fakeIndexMaps{nodes: map[core.NodeID]int{}}
	c := constraint.EqNode(constraint.ANodeID(core.NodeID(5)), constraint.ANodeID(core.NodeID(6)))

	require.Panics(t, func() {
		constraint.LowerIDsToArrayIndices(c, maps)
	})
}

// TestFreeNodeIdentifiersFold mirrors the free-identifiers analysis named in
// spec §8 scenario 5: a Folder that collects every ANodeIDExpr reachable in
// a constraint tree.
func TestFreeNodeIdentifiersFold(t *testing.T) {
	c := constraint.And(
		constraint.EqNode(constraint.ANodeID(core.NodeID(1)), constraint.ANodeID(core.NodeID(2))),
		constraint.FallThrough(constraint.AMatchID(core.MatchID(1)), constraint.ANodeID(core.NodeID(3))),
	)

	folder := constraint.Folder[[]core.NodeID]{
		Combine: func(a, b []core.NodeID) []core.NodeID { return append(append([]core.NodeID{}, a...), b...) },
		FoldNode: func(e constraint.NodeExpr) []core.NodeID {
			if n, ok := e.(constraint.ANodeIDExpr); ok {
				return []core.NodeID{n.ID}
			}
			return nil
		},
	}

	ids := folder.FoldBool(c)
	require.ElementsMatch(t, []core.NodeID{1, 2, 3}, ids)
}
