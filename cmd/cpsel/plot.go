package main

import (
	"fmt"
	"os"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/katalvlaran/cpsel/core"
)

// plotVertex is the dominikbraun/graph vertex value mirroring one
// core.Graph node: its stable ID (the graph's hash key) and a
// human-readable label for the rendered DOT node.
type plotVertex struct {
	ID    int64
	Label string
}

func plotVertexHash(v plotVertex) int64 { return v.ID }

// renderGraphFile builds a dominikbraun/graph directed mirror of g
// restricted to the given edge kind and writes it as Graphviz DOT to
// path, via draw.DOT. Parallel edges of other kinds between the same two
// nodes are not mirrored — one plot shows one relation at a time.
func renderGraphFile(g *core.Graph, kind core.EdgeKind, nodeLabel func(core.Node) string, path string) error {
	dg := graph.New(plotVertexHash, graph.Directed())

	for _, n := range g.Nodes() {
		v := plotVertex{ID: int64(n.ID), Label: nodeLabel(n)}
		if err := dg.AddVertex(v); err != nil {
			return fmt.Errorf("plot: add vertex %d: %w", n.ID, err)
		}
	}
	for _, e := range g.Edges() {
		if e.Kind != kind {
			continue
		}
		if err := dg.AddEdge(int64(e.Src.ID), int64(e.Dst.ID)); err != nil {
			// Two blocks joined by more than one control edge, or two
			// values feeding the same operation twice: draw.DOT only
			// needs one edge to show the relation exists.
			continue
		}
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: create %s: %w", path, err)
	}
	defer w.Close()
	return draw.DOT(dg, w)
}

func operationLabel(n core.Node) string {
	if n.Kind == core.KindBlock {
		return n.Label.Name
	}
	if n.Label.Op != "" {
		return fmt.Sprintf("%s(%s)", n.Kind, n.Label.Op)
	}
	return n.Kind.String()
}

// runPlot renders a function's CFG and the first pattern graph of its
// target machine's lowest-ID instruction that has patterns to Graphviz
// DOT files suffixed with their own output
// IDs ("cfg", "pattern"). With no -in flag it falls back to the
// built-in demo function and machine.
func runPlot(args []string) error {
	f, err := parseIOFlags("plot", args)
	if err != nil {
		return err
	}
	fn, tm, err := loadFunctionAndMachine(f)
	if err != nil {
		return err
	}

	cfg := core.ExtractCFG(fn.OpStruct.Graph)
	cfgPath := f.out + ".cfg.dot"
	if err := renderGraphFile(cfg, core.ControlFlow, operationLabel, cfgPath); err != nil {
		return err
	}

	var pat *core.Graph
	var patInstr core.InstrID
	for id, instr := range tm.Instructions {
		if len(instr.Patterns) == 0 {
			continue
		}
		if pat == nil || id < patInstr {
			pat = instr.Patterns[0].OpStruct.Graph
			patInstr = id
		}
	}
	if pat == nil {
		return fmt.Errorf("plot: target machine %s has no patterns to plot", tm.ID)
	}
	patternPath := f.out + ".pattern.dot"
	if err := renderGraphFile(pat, core.DataFlow, operationLabel, patternPath); err != nil {
		return err
	}
	return nil
}
