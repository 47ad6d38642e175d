package core_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/stretchr/testify/require"
)

// buildDiamondCFG builds A->B, A->C, B->D, C->D (spec §8 scenario 4),
// with each block gated by a Control node so ExtractCFG has something to
// collapse.
func buildDiamondCFG(t *testing.T) (*core.Graph, map[string]core.Node) {
	t.Helper()
	g := core.NewGraph()
	blocks := map[string]core.Node{}
	for _, name := range []string{"A", "B", "C", "D"} {
		var n core.Node
		n, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: name})
		blocks[name] = n
	}
	link := func(from, to string) {
		var ctrl core.Node
		ctrl, g = g.AddNode(core.KindControl, core.NodeLabel{Op: "br"})
		_, g = g.AddEdge(core.ControlFlow, blocks[from], ctrl)
		_, g = g.AddEdge(core.ControlFlow, ctrl, blocks[to])
	}
	link("A", "B")
	link("A", "C")
	link("B", "D")
	link("C", "D")
	return g, blocks
}

func TestDomSetsDiamond(t *testing.T) {
	g, blocks := buildDiamondCFG(t)
	cfg := core.ExtractCFG(g)

	dom := core.DomSets(cfg)

	expect := map[string][]string{
		"A": {"A"},
		"B": {"A", "B"},
		"C": {"A", "C"},
		"D": {"A", "D"},
	}
	for name, want := range expect {
		got := dom[blocks[name].ID]
		require.Len(t, got, len(want))
		for _, w := range want {
			_, ok := got[blocks[w].ID]
			require.Truef(t, ok, "Dom(%s) should contain %s", name, w)
		}
	}
}

func TestRootOfCFGUniqueRoot(t *testing.T) {
	g, blocks := buildDiamondCFG(t)
	cfg := core.ExtractCFG(g)
	root := core.RootOfCFG(cfg)
	require.True(t, root.SameInstance(blocks["A"]))
}

func TestRootOfCFGPanicsOnMultipleRoots(t *testing.T) {
	g := core.NewGraph()
	var a, b core.Node
	a, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "A"})
	b, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "B"})
	_ = a
	_ = b
	cfg := core.ExtractCFG(g)
	require.Panics(t, func() { core.RootOfCFG(cfg) })
}

func TestClosestCommonDominator(t *testing.T) {
	g, blocks := buildDiamondCFG(t)
	cfg := core.ExtractCFG(g)
	best := core.ClosestCommonDominator(cfg, []core.NodeID{blocks["B"].ID, blocks["C"].ID})
	require.Equal(t, blocks["A"].ID, best)
}

func TestExtractCFGPanicsOnUnreachableControlFlowCycle(t *testing.T) {
	g := core.NewGraph()
	var entry, dead1, dead2 core.Node
	entry, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "entry"})
	dead1, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "dead1"})
	dead2, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "dead2"})

	link := func(from, to core.Node) {
		var ctrl core.Node
		ctrl, g = g.AddNode(core.KindControl, core.NodeLabel{Op: "br"})
		_, g = g.AddEdge(core.ControlFlow, from, ctrl)
		_, g = g.AddEdge(core.ControlFlow, ctrl, to)
	}
	_ = entry
	// dead1 and dead2 form a cycle that nothing reaches from entry.
	link(dead1, dead2)
	link(dead2, dead1)

	require.Panics(t, func() { core.ExtractCFG(g) })
}

func TestExtractCFGAllowsReachableLoop(t *testing.T) {
	g := core.NewGraph()
	var entry, loop core.Node
	entry, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "entry"})
	loop, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "loop"})

	link := func(from, to core.Node) {
		var ctrl core.Node
		ctrl, g = g.AddNode(core.KindControl, core.NodeLabel{Op: "br"})
		_, g = g.AddEdge(core.ControlFlow, from, ctrl)
		_, g = g.AddEdge(core.ControlFlow, ctrl, to)
	}
	link(entry, loop)
	link(loop, loop)

	require.NotPanics(t, func() { core.ExtractCFG(g) })
}

func TestExtractSSAKeepsOperationsAndValuesOnly(t *testing.T) {
	g := core.NewGraph()
	var v1, add, blk core.Node
	v1, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	add, g = g.AddNode(core.KindComputation, core.NodeLabel{Op: "add"})
	blk, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "entry"})
	_, g = g.AddEdge(core.DataFlow, v1, add)
	_, g = g.AddEdge(core.DefPlacement, blk, v1)

	ssa := core.ExtractSSA(g)
	require.Len(t, ssa.Nodes(), 2)
	require.Empty(t, ssa.InEdges(v1, core.DefPlacement))
	require.Len(t, ssa.InEdges(add, core.DataFlow), 1)
}
