package lowering

import (
	"sort"

	"github.com/katalvlaran/cpsel/core"
)

// ArrayIndexMaplists is the six-namespace array-index map list of spec §3:
// one ascending-by-ID sequence per namespace (operation nodes, entity
// nodes, block nodes, match identifiers, location identifiers,
// instruction identifiers). Position in a sequence is that namespace's
// dense array index.
type ArrayIndexMaplists struct {
	Operations   []core.NodeID
	Entities     []core.NodeID
	Blocks       []core.NodeID
	Matches      []core.MatchID
	Locations    []core.LocationID
	Instructions []core.InstrID

	opIndex    map[core.NodeID]int
	entIndex   map[core.NodeID]int
	blockIndex map[core.NodeID]int
	matchIndex map[core.MatchID]int
	locIndex   map[core.LocationID]int
	instrIndex map[core.InstrID]int

	nodeIndex map[core.NodeID]int // global: operations, then entities, then blocks
	nodeAt    []core.NodeID
}

// BuildArrayIndexMaplists constructs the maplists for g's nodes plus the
// given match, location, and instruction identifiers, sorting ascending
// within each namespace (spec §4.6's stability/reproducibility
// requirement).
func BuildArrayIndexMaplists(g *core.Graph, matches []core.MatchID, locations []core.LocationID, instructions []core.InstrID) *ArrayIndexMaplists {
	var ops, ents, blocks []core.NodeID
	for _, n := range g.Nodes() {
		switch {
		case n.Kind.IsOperation():
			ops = append(ops, n.ID)
		case n.Kind == core.KindValue || n.Kind == core.KindState:
			ents = append(ents, n.ID)
		case n.Kind == core.KindBlock:
			blocks = append(blocks, n.ID)
		}
	}
	ops = dedupSortNodeIDs(ops)
	ents = dedupSortNodeIDs(ents)
	blocks = dedupSortNodeIDs(blocks)

	ms := append([]core.MatchID(nil), matches...)
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })
	ls := append([]core.LocationID(nil), locations...)
	sort.Slice(ls, func(i, j int) bool { return ls[i] < ls[j] })
	is := append([]core.InstrID(nil), instructions...)
	sort.Slice(is, func(i, j int) bool { return is[i] < is[j] })

	m := &ArrayIndexMaplists{
		Operations:   ops,
		Entities:     ents,
		Blocks:       blocks,
		Matches:      ms,
		Locations:    ls,
		Instructions: is,
		opIndex:      make(map[core.NodeID]int, len(ops)),
		entIndex:     make(map[core.NodeID]int, len(ents)),
		blockIndex:   make(map[core.NodeID]int, len(blocks)),
		matchIndex:   make(map[core.MatchID]int, len(ms)),
		locIndex:     make(map[core.LocationID]int, len(ls)),
		instrIndex:   make(map[core.InstrID]int, len(is)),
		nodeIndex:    make(map[core.NodeID]int, len(ops)+len(ents)+len(blocks)),
	}
	for i, id := range ops {
		m.opIndex[id] = i
	}
	for i, id := range ents {
		m.entIndex[id] = i
	}
	for i, id := range blocks {
		m.blockIndex[id] = i
	}
	for i, id := range ms {
		m.matchIndex[id] = i
	}
	for i, id := range ls {
		m.locIndex[id] = i
	}
	for i, id := range is {
		m.instrIndex[id] = i
	}

	offset := 0
	for _, id := range ops {
		m.nodeIndex[id] = offset
		m.nodeAt = append(m.nodeAt, id)
		offset++
	}
	for _, id := range ents {
		m.nodeIndex[id] = offset
		m.nodeAt = append(m.nodeAt, id)
		offset++
	}
	for _, id := range blocks {
		m.nodeIndex[id] = offset
		m.nodeAt = append(m.nodeAt, id)
		offset++
	}
	return m
}

func dedupSortNodeIDs(ids []core.NodeID) []core.NodeID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:0:0]
	seen := false
	var last core.NodeID
	for _, id := range ids {
		if seen && id == last {
			continue
		}
		out = append(out, id)
		last, seen = id, true
	}
	return out
}

// NodeArrayIndex implements constraint.IndexMaps: the global node index
// (operations, then entities, then blocks, concatenated).
func (m *ArrayIndexMaplists) NodeArrayIndex(id core.NodeID) (int, bool) {
	i, ok := m.nodeIndex[id]
	return i, ok
}

// MatchArrayIndex implements constraint.IndexMaps.
func (m *ArrayIndexMaplists) MatchArrayIndex(id core.MatchID) (int, bool) {
	i, ok := m.matchIndex[id]
	return i, ok
}

// LocationArrayIndex implements constraint.IndexMaps.
func (m *ArrayIndexMaplists) LocationArrayIndex(id core.LocationID) (int, bool) {
	i, ok := m.locIndex[id]
	return i, ok
}

// InstrArrayIndex implements constraint.IndexMaps.
func (m *ArrayIndexMaplists) InstrArrayIndex(id core.InstrID) (int, bool) {
	i, ok := m.instrIndex[id]
	return i, ok
}

// NodeIDAt implements constraint.ReverseIndexMaps: inverse of the global
// node index.
func (m *ArrayIndexMaplists) NodeIDAt(index int) core.NodeID { return m.nodeAt[index] }

// MatchIDAt implements constraint.ReverseIndexMaps.
func (m *ArrayIndexMaplists) MatchIDAt(index int) core.MatchID { return m.Matches[index] }

// LocationIDAt implements constraint.ReverseIndexMaps.
func (m *ArrayIndexMaplists) LocationIDAt(index int) core.LocationID { return m.Locations[index] }

// InstrIDAt implements constraint.ReverseIndexMaps.
func (m *ArrayIndexMaplists) InstrIDAt(index int) core.InstrID { return m.Instructions[index] }

// OperationLocalIndex returns an operation node's position within the
// operation namespace alone, for building operation-indexed dense arrays.
func (m *ArrayIndexMaplists) OperationLocalIndex(id core.NodeID) (int, bool) {
	i, ok := m.opIndex[id]
	return i, ok
}

// EntityLocalIndex returns an entity (value or state) node's position
// within the entity namespace alone.
func (m *ArrayIndexMaplists) EntityLocalIndex(id core.NodeID) (int, bool) {
	i, ok := m.entIndex[id]
	return i, ok
}

// BlockLocalIndex returns a block node's position within the block
// namespace alone.
func (m *ArrayIndexMaplists) BlockLocalIndex(id core.NodeID) (int, bool) {
	i, ok := m.blockIndex[id]
	return i, ok
}

// MatchLocalIndex returns a match's position within the match namespace.
func (m *ArrayIndexMaplists) MatchLocalIndex(id core.MatchID) (int, bool) {
	i, ok := m.matchIndex[id]
	return i, ok
}

// LocationLocalIndex returns a location's position within the location
// namespace (identical to LocationArrayIndex; locations have no other
// namespace to collide with, unlike nodes).
func (m *ArrayIndexMaplists) LocationLocalIndex(id core.LocationID) (int, bool) {
	i, ok := m.locIndex[id]
	return i, ok
}

// BlockIDAt, EntityIDAt are the inverses of BlockLocalIndex/EntityLocalIndex,
// used by Raise to translate a block/entity array index back to a node ID.
func (m *ArrayIndexMaplists) BlockIDAt(index int) core.NodeID  { return m.Blocks[index] }
func (m *ArrayIndexMaplists) EntityIDAt(index int) core.NodeID { return m.Entities[index] }
