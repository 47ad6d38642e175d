package match_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/match"
	"github.com/stretchr/testify/require"
)

// buildAddPattern builds Computation(op) <- V1(in0), V2(in1); -> V3(out0).
func buildAddPattern(op string) (*core.Graph, core.Node) {
	g := core.NewGraph()
	var v1, v2, v3, add core.Node
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: op})
	_, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DataFlow, v2, add)
	_, g = g.AddEdge(core.DataFlow, add, v3)
	_ = v3
	return g, add
}

func TestFindMatchesCommutativeDedupsToOneMatch(t *testing.T) {
	pg, _ := buildAddPattern("add")
	fg, _ := buildAddPattern("add")

	raw := match.FindMatches(fg, pg)
	require.GreaterOrEqual(t, len(raw), 1)

	seen := map[string]bool{}
	kept := 0
	for _, m := range raw {
		ids := make([]int, 0, len(m.FunctionNodeSet()))
		for id := range m.FunctionNodeSet() {
			ids = append(ids, int(id))
		}
		sort.Ints(ids)
		key := fmt.Sprint(ids)
		if !seen[key] {
			seen[key] = true
			kept++
		}
	}
	require.Equal(t, 1, kept)
}

func TestFindMatchesEveryMatchCoversWholePattern(t *testing.T) {
	pg, _ := buildAddPattern("sub")
	fg, _ := buildAddPattern("sub")

	matches := match.FindMatches(fg, pg)
	require.NotEmpty(t, matches)
	for _, m := range matches {
		require.Len(t, m.Pairs, len(pg.Nodes()))
		seenPattern := map[core.NodeID]bool{}
		for _, p := range m.Pairs {
			require.False(t, seenPattern[p.PatternNode])
			seenPattern[p.PatternNode] = true
		}
	}
}

func TestFindMatchesRejectsIncompatibleOperator(t *testing.T) {
	pg, _ := buildAddPattern("add")
	fg, _ := buildAddPattern("sub")

	require.Empty(t, match.FindMatches(fg, pg))
}

func TestFindMatchesRejectsIncompatibleDataType(t *testing.T) {
	g := core.NewGraph()
	var v1, v2, v3, add core.Node
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(64)})
	v2, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	v3, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	_, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DataFlow, v2, add)
	_, g = g.AddEdge(core.DataFlow, add, v3)

	pg, _ := buildAddPattern("add")
	require.Empty(t, match.FindMatches(g, pg))
}
