// Package machine models the target machine description of spec C7:
// instructions, their patterns, locations, and emit templates. It is pure
// data plus ID-keyed lookups — no algorithm lives here, matching the
// spec's framing of the target description as an external collaborator
// the core merely consumes.
//
// Lookups are by ID and are errors (not panics) when missing, per spec §7
// category 3 ("missing external entity") — a target machine is typically
// loaded once from an external description and a caller working
// interactively (the reference CLI's "check" sub-action in particular)
// wants a reportable error rather than a crash when an ID typos.
package machine
