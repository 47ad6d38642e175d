// Package model implements the Model Builder of spec C5: it assembles a
// HighLevelModel from a Function, a machine.TargetMachine, and the
// match.PatternMatch list produced by package match, per spec §4.5's
// field list and §6's exact wire-format key names (carried here as Go
// struct field names and JSON tags, since the high-level model is the
// thing persisted at this core-stage boundary).
//
// Definition-placement edges connect a Block node to the Value/State
// node it defines, but — as package match's duplication pre-pass and
// SIMD selectability filter already rely on a second, distinct use of
// the same edge kind (an operation's own placement edge to its block,
// oriented Operation->Block) — this package does not assume a fixed
// Src/Dst orientation when collecting def-edges for function_params.
// collectDefEdges inspects both endpoints' kinds and reports whichever
// one is the Block first, which is exactly what spec §4.5's "(block,
// entity) pairs, orientation normalized" asks for, and is robust to
// either edge convention already present in a graph.
package model
