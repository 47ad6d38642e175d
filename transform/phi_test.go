package transform_test

import (
	"testing"

	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/opstruct"
	"github.com/katalvlaran/cpsel/transform"
	"github.com/stretchr/testify/require"
)

// buildDiamondWithPhi builds A->B, A->C, B->D, C->D (root A) plus a phi
// in D fed twice by the same value, once via B and once via C, mirroring
// spec §8 scenario 2 (closest common dominator of B,C is A).
func buildDiamondWithPhi(t *testing.T) (*core.Graph, core.Node, core.Node) {
	t.Helper()
	g := core.NewGraph()
	var a, b, c, d, v, phi core.Node
	a, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "A"})
	b, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "B"})
	c, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "C"})
	d, g = g.AddNode(core.KindBlock, core.NodeLabel{Name: "D"})
	_, g = g.AddEdge(core.ControlFlow, a, b)
	_, g = g.AddEdge(core.ControlFlow, a, c)
	_, g = g.AddEdge(core.ControlFlow, b, d)
	_, g = g.AddEdge(core.ControlFlow, c, d)

	v, g = g.AddNode(core.KindValue, core.NodeLabel{DataType: core.IntTemp(32)})
	phi, g = g.AddNode(core.KindPhi, core.NodeLabel{})
	_, g = g.AddEdge(core.DataFlow, v, phi)
	_, g = g.AddEdge(core.DataFlow, v, phi)
	_, g = g.AddEdge(core.DefPlacement, b, phi)
	_, g = g.AddEdge(core.DefPlacement, c, phi)
	return g, d, phi
}

func TestEnforcePhiNodeInvariantsCollapsesDuplicateValueToCommonDominator(t *testing.T) {
	g, _, phi := buildDiamondWithPhi(t)

	out := transform.EnforcePhiNodeInvariants(opstruct.New(g))

	dfIns := out.Graph.InEdges(phi, core.DataFlow)
	require.Len(t, dfIns, 1)

	dpIns := out.Graph.InEdges(phi, core.DefPlacement)
	require.Len(t, dpIns, 1)
	require.Equal(t, "A", dpIns[0].Src.Label.Name)
}
