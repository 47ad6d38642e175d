// Package core defines the function/pattern graph model shared by every
// later stage of the selector: a typed, labeled multidigraph with ordered
// edges, plus the handful of structural queries (neighbours, dominator
// sets, CFG/SSA projections) the matcher and model builder need.
//
// Unlike a general-purpose graph library, core.Graph is immutable: every
// mutating operation (AddNode, AddEdge, DeleteNode, MergeNodes, ...) takes
// a *Graph and returns a new one built from a copy of the input's node,
// edge and adjacency maps, leaving the input untouched. There are no
// locks and no observable mutation: the whole package is pure, matching
// the single-threaded, purely functional core the selector is built from.
//
// Two nodes may carry the same public NodeID to denote "the same logical
// node" (see the block-duplication pre-pass in package match). Graph
// disambiguates such nodes with an internal instance identity that never
// leaves this package's public surface: callers compare nodes with
// Node.SameInstance, never with Go's ==, because a Node's Label embeds a
// slice (Origin) and is therefore unsafe to compare with ==.
package core
