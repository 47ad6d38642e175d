// Package transform implements the Op-Structure Transformations of spec
// C8: a small pipeline of pure graph rewrites, each taking an
// *opstruct.OpStruct and returning a new one. Every rewrite either
// succeeds or panics on an input violating its documented precondition —
// none of them reports a recoverable error, per spec §4.8 and the
// category-1 taxonomy of §7.
package transform
