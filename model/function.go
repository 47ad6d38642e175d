package model

import "github.com/katalvlaran/cpsel/opstruct"
import "github.com/katalvlaran/cpsel/core"

// Function is the front-end's contract of spec §6: an already-transformed
// op-structure, one execution-frequency estimate per block, and the list
// of value nodes that are the function's own inputs (as opposed to
// values defined inside it).
type Function struct {
	OpStruct      *opstruct.OpStruct
	BlockExecFreq map[core.NodeID]float64
	InputValues   []core.NodeID
}
