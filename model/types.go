package model

import (
	"github.com/katalvlaran/cpsel/constraint"
	"github.com/katalvlaran/cpsel/core"
	"github.com/katalvlaran/cpsel/machine"
)

// DefEdge is one (block, entity) definition-placement pair, orientation
// normalized so the block always comes first (spec §4.5).
type DefEdge struct {
	Block  core.NodeID `json:"block"`
	Entity core.NodeID `json:"entity"`
}

// BlockParam is one block's per-block parameters: its display name, its
// own node ID, and its estimated execution frequency.
type BlockParam struct {
	Name     string      `json:"name"`
	Node     core.NodeID `json:"node"`
	ExecFreq float64     `json:"exec-freq"`
}

// IntConstBinding pins a value node to the integer-constant data it was
// given at function-construction time.
type IntConstBinding struct {
	Node  core.NodeID   `json:"node"`
	Range core.IntRange `json:"range"`
}

// FunctionParams is the function_params section of a HighLevelModel (spec
// §4.5/§6).
type FunctionParams struct {
	OperationNodes []core.NodeID               `json:"operation-nodes"`
	DataNodes      []core.NodeID               `json:"data-nodes"`
	StateNodes     []core.NodeID               `json:"state-nodes"`
	BlockNodes     []core.NodeID               `json:"block-nodes"`
	EntryBlock     core.NodeID                 `json:"entry-block"`
	BlockDomSets   map[core.NodeID][]core.NodeID `json:"block-dom-sets"`
	DefEdges       []DefEdge                   `json:"def-edges"`
	BlockParams    []BlockParam                `json:"block-params"`
	IntConstData   []IntConstBinding           `json:"int-const-data"`
	Constraints    []constraint.BoolExpr       `json:"constraints"`
}

// MachineParams is the machine_params section of a HighLevelModel.
type MachineParams struct {
	TargetMachineID machine.TargetMachineID `json:"target-machine-id"`
	Locations       []core.LocationID       `json:"locations"`
}

// AsmNodeMap is one emit-string part's resolved node binding: if
// HasFunctionNode is false, the part is verbatim or a local temporary and
// carries no node binding under this match.
type AsmNodeMap struct {
	HasFunctionNode bool        `json:"has-function-node"`
	FunctionNode    core.NodeID `json:"function-node,omitempty"`
}

// MatchParams is one match's contribution to a HighLevelModel (spec
// §4.5/§6).
type MatchParams struct {
	InstrID                  core.InstrID     `json:"instruction-id"`
	PatternID                core.PatternID   `json:"pattern-id"`
	MatchID                  core.MatchID     `json:"match-id"`
	OperationsCovered        []core.NodeID    `json:"operations-covered"`
	DataDefined              []core.NodeID    `json:"data-defined"`
	DataUsed                 []core.NodeID    `json:"data-used"`
	HasEntryBlock            bool             `json:"-"`
	EntryBlock               core.NodeID      `json:"entry-block,omitempty"`
	SpannedBlocks             []core.NodeID    `json:"spanned-blocks"`
	CodeSize                  int              `json:"code-size"`
	Latency                   int              `json:"latency"`
	ApplyDefDomUseConstraint bool             `json:"apply-def-dom-use-constraint"`
	IsNonCopyInstruction      bool             `json:"is-non-copy-instruction"`
	HasControlFlow            bool             `json:"has-control-flow"`
	DataUsedByPhis            []core.NodeID    `json:"data-used-by-phis"`
	AsmStrNodeMaps            []AsmNodeMap     `json:"asm-str-node-maps"`
	Constraints               []constraint.BoolExpr `json:"constraints"`
}

// HighLevelModel is the assembled constraint-programming model of spec
// C5, ready for C6's index lowering.
type HighLevelModel struct {
	FunctionParams FunctionParams `json:"function-params"`
	MachineParams  MachineParams  `json:"machine-params"`
	MatchParams    []MatchParams  `json:"match-params"`
}
