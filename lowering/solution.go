package lowering

import "github.com/katalvlaran/cpsel/core"

// LowLevelSolution is an external CP solver's dense array-indexed
// solution, per spec §4.6/§6.
type LowLevelSolution struct {
	OrderOfBBs          []int     `json:"order-of-bbs"` // block-local indices, in chosen order
	IsMatchSelected     []bool    `json:"is-match-selected"`
	BBAllocatedForMatch []int     `json:"bb-allocated-for-match"` // block-local index per match-local index
	HasDataLoc          []bool    `json:"has-data-loc"`
	LocSelectedForData  []int     `json:"loc-selected-for-data"` // location-local index per entity-local index
	HasDataImmValue     []bool    `json:"has-data-imm-value"`
	ImmValueOfData      []int64   `json:"imm-value-of-data"`
	Cost                float64   `json:"cost"`
}

// BlockAlloc is one (match, block) allocation pair, for selected matches
// only.
type BlockAlloc struct {
	MatchID core.MatchID `json:"match-id"`
	Block   core.NodeID  `json:"block"`
}

// HighLevelSolution is a LowLevelSolution raised back into original
// identifiers, per spec §4.6/§6.
type HighLevelSolution struct {
	OrderOfBBs               []core.NodeID                   `json:"order-of-bbs"`
	SelectedMatches          []core.MatchID                  `json:"selected-matches"`
	BlockAllocsForSelMatches []BlockAlloc                     `json:"bbs-allocated-for-sel-matches"`
	LocsOfDataNodes          map[core.NodeID]core.LocationID `json:"locs-of-data-nodes"`
	ImmValuesOfDataNodes     map[core.NodeID]int64           `json:"imm-values-of-data-nodes"`
	Cost                     float64                         `json:"cost"`
}

// Raise translates sol's array indices back into original node, match,
// and location identifiers via maps, per spec §4.6. A missing entry in
// LocsOfDataNodes or ImmValuesOfDataNodes means no assignment was made —
// Raise never invents a zero-value assignment for an index whose
// corresponding Has* flag is false.
func Raise(maps *ArrayIndexMaplists, sol *LowLevelSolution) *HighLevelSolution {
	orderOfBBs := make([]core.NodeID, 0, len(sol.OrderOfBBs))
	for _, bi := range sol.OrderOfBBs {
		orderOfBBs = append(orderOfBBs, maps.BlockIDAt(bi))
	}

	var selected []core.MatchID
	for mi, isSel := range sol.IsMatchSelected {
		if isSel {
			selected = append(selected, maps.Matches[mi])
		}
	}

	var allocs []BlockAlloc
	for mi, isSel := range sol.IsMatchSelected {
		if !isSel {
			continue
		}
		if mi >= len(sol.BBAllocatedForMatch) {
			continue
		}
		allocs = append(allocs, BlockAlloc{
			MatchID: maps.Matches[mi],
			Block:   maps.BlockIDAt(sol.BBAllocatedForMatch[mi]),
		})
	}

	locs := make(map[core.NodeID]core.LocationID)
	for ei, has := range sol.HasDataLoc {
		if !has {
			continue
		}
		locs[maps.EntityIDAt(ei)] = maps.Locations[sol.LocSelectedForData[ei]]
	}

	imms := make(map[core.NodeID]int64)
	for ei, has := range sol.HasDataImmValue {
		if !has {
			continue
		}
		imms[maps.EntityIDAt(ei)] = sol.ImmValueOfData[ei]
	}

	return &HighLevelSolution{
		OrderOfBBs:               orderOfBBs,
		SelectedMatches:          selected,
		BlockAllocsForSelMatches: allocs,
		LocsOfDataNodes:          locs,
		ImmValuesOfDataNodes:     imms,
		Cost:                     sol.Cost,
	}
}
