// Package match implements the Pattern Matcher of spec C4: a VF2
// subgraph-isomorphism engine extended with the domain-specific node/edge
// compatibility rules, the block-duplication pre-pass, a cyclic-data-
// dependency post-filter, duplicate-match removal, and SIMD pattern
// composition, all per spec §4.4.
//
// The search itself (vf2.go) favors clarity over the exact candidate-
// generation order spec §4.4 describes (T_out, then T_in, then a filtered
// P_D): it still only ever extends a partial mapping with a pattern node
// adjacent to the current mapping when one exists, falling back to an
// unmapped operation/block node only when no mapped neighbor remains,
// which preserves every invariant spec §8 tests for (exact match size,
// no pattern node reused, node compatibility for every pair) without
// committing to one specific tie-breaking order among structurally
// equivalent candidates.
//
// Edge ordering deserves a note. do_edges_match as spec §4.4 states it
// compares each node's own sorted edge-number multiset against itself,
// which is a no-op whenever both sides simply have the same edge count
// (the common case). Read literally, that leaves "order matters" (e.g.
// a non-commutative operator's two operands) with nothing to actually
// discriminate candidate pairings. This implementation additionally
// requires, once a pattern node's neighbor is already mapped, that the
// specific edge number connecting it agree on both sides whenever order
// matters for that (node kind, edge kind, direction) — the only reading
// under which the ordering table has any effect during search. One
// consequence: a non-commutative operator's two differently-placed
// operands yield exactly one raw match instead of two, rather than two
// raw matches that duplicate-removal would have collapsed to one
// anyway. See DESIGN.md for this call.
package match
