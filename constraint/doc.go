// Package constraint implements the symbolic constraint-expression tree of
// spec §3/§4.3: a small recursive AST over node, match, location, and
// instruction identifiers, layered into BoolExpr and NumExpr sorts on top.
//
// Every identifier sort (NodeExpr, MatchExpr, LocationExpr, InstrExpr) has
// two leaf shapes — a named identifier in its original public form (e.g.
// ANodeIDExpr) or its dense array-index form (e.g. ANodeArrayIndexExpr) —
// plus zero or more structural accessors (LocationOfValueNodeExpr,
// BlockWhereinMatchIsPlacedExpr, ThisMatchExpr, ...). No single expression
// ever mixes the two forms; which form is in play is a property of
// whether the surrounding model is the high-level (original-ID) model or
// the low-level (array-index) model, not something the Go type system
// enforces here — Go has no sort-indexed GADTs, so that invariant is
// maintained by construction (see Reconstructor.RewriteNode and friends)
// rather than by the compiler, the same tradeoff any Go AST (go/ast,
// text/template/parse) makes in exchange for a much smaller type zoo.
//
// Two generic traversals cover every rewrite and analysis this package or
// its callers need: Reconstructor (a rebuild pass with one override hook
// per identifier sort) and Folder (a read-only fold with a caller-supplied
// combine operator), per spec §4.3.
package constraint
