package lowering

import "github.com/katalvlaran/cpsel/constraint"

// OptionalInt is a present-or-absent dense index, used wherever spec
// §4.6 calls for "optional, none if absent" rather than a sentinel value.
type OptionalInt struct {
	Has   bool `json:"has"`
	Value int  `json:"value,omitempty"`
}

// DefEdgeIndices is one lowered (block, entity) definition-placement
// pair, as block-local and entity-local array indices.
type DefEdgeIndices struct {
	Block  int `json:"block"`
	Entity int `json:"entity"`
}

// LowLevelModel is the dense array-indexed constraint model of spec
// §4.6/§6, built from a model.HighLevelModel by Lower.
type LowLevelModel struct {
	FunNumOperations int                    `json:"fun-num-operations"`
	FunNumData       int                    `json:"fun-num-data"`
	FunNumBlocks     int                    `json:"fun-num-blocks"`
	FunStates        []int                  `json:"fun-states"` // entity-local indices that are State nodes
	FunEntryBlock    int                    `json:"fun-entry-block"` // block-local index
	FunBlockDomSets  [][]int                `json:"fun-block-dom-sets"`
	FunDefEdges      []DefEdgeIndices       `json:"fun-def-edges"`
	FunBBExecFreqs   []float64              `json:"fun-bb-exec-freqs"`
	FunConstraints   []constraint.BoolExpr  `json:"fun-constraints"`

	NumLocations int `json:"num-locations"`
	NumMatches   int `json:"num-matches"`

	MatchOperationsCovered   [][]int                 `json:"match-operations-covered"`
	MatchDataDefined         [][]int                 `json:"match-data-defined"`
	MatchDataUsed            [][]int                 `json:"match-data-used"`
	MatchEntryBlocks         []OptionalInt           `json:"match-entry-blocks"`
	MatchSpannedBlocks       [][]int                 `json:"match-spanned-blocks"`
	MatchCodeSizes           []int                   `json:"match-code-sizes"`
	MatchLatencies           []int                   `json:"match-latencies"`
	MatchADDUCSettings       []bool                  `json:"match-adduc-settings"`
	MatchNonCopyInstructions []bool                  `json:"match-non-copy-instructions"`
	MatchConstraints         [][]constraint.BoolExpr `json:"match-constraints"`
}
