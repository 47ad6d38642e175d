package transform

import "github.com/katalvlaran/cpsel/opstruct"

// Step is one rewrite of the pipeline.
type Step func(*opstruct.OpStruct) *opstruct.OpStruct

// Pipeline runs an ordered sequence of Op-Structure rewrites, feeding
// each step's output to the next.
type Pipeline struct {
	Steps []Step
}

// Run applies every step in order and returns the final Op-Structure.
func (p Pipeline) Run(o *opstruct.OpStruct) *opstruct.OpStruct {
	for _, step := range p.Steps {
		o = step(o)
	}
	return o
}

// DefaultPipeline assembles the six rewrites of spec §4.8 in the order
// the reference CLI's "transform" sub-action runs them: copy
// canonicalization first (it only ever simplifies), then pointer
// lowering (needs the target's pointer sizing), then the two phi
// clean-ups, then dead-code elimination, then redundant-conversion
// removal (which benefits from running after DCE has removed any dead
// extension it would otherwise also need to consider).
func DefaultPipeline(sizing PointerSizing) Pipeline {
	return Pipeline{Steps: []Step{
		CanonicalizeCopies,
		func(o *opstruct.OpStruct) *opstruct.OpStruct { return LowerPointers(o, sizing) },
		EnforcePhiNodeInvariants,
		RemoveRedundantPhiNodes,
		DeadCodeElimination,
		RemoveRedundantConversions,
	}}
}
