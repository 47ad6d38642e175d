// Package lowering implements C6 Index Lowering/Raising: it builds the
// six-namespace ArrayIndexMaplists of spec §3/§4.6, lowers a
// model.HighLevelModel into a dense array-indexed LowLevelModel, and
// raises an external solver's LowLevelSolution back into a
// HighLevelSolution naming original graph nodes, matches, and locations.
//
// Node identifiers span three disjoint namespaces by kind (operation,
// entity, block), each sorted and indexed separately per spec §3's "six
// ordered sequences, one per namespace". constraint.IndexMaps, however,
// exposes a single NodeArrayIndex(core.NodeID) lookup with no namespace
// tag alongside it — ANodeArrayIndexExpr itself carries only a bare int.
// Since a node's public ID already fixes which namespace it belongs to
// (a node is never both, say, an operation and a block), this package
// satisfies that interface with one global index: operations first, then
// entities, then blocks, concatenated in that order. That global index is
// used only for rewriting node identifiers inside constraint expressions
// (the one place spec ties node-array-indexing to the IndexMaps
// interface); every dense per-namespace array this package itself builds
// (block dominator sets, per-match covered/defined/used lists, and so
// on) is instead indexed by a local, namespace-relative position that
// ArrayIndexMaplists also exposes, matching spec §4.6's "every list
// indexed by an entity is reordered by ascending array index" read
// per-namespace rather than against the global concatenation.
//
// The entity namespace itself (value+state nodes, per spec §3) is one
// ascending-by-ID sequence mixing both kinds; FunNumData is its size and
// FunStates names which of its positions hold a State node, rather than
// segregating entities into two back-to-back ranges — closer to "one
// namespace, sorted by ID" than to "two namespaces concatenated".
package lowering
