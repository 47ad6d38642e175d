// Package opstruct implements the Op-Structure of spec C2: a thin
// container pairing a core.Graph with an optional entry block, a
// value-node-to-permitted-locations map, a list of constraint-expression
// roots, and optional same-location equivalence pairs.
//
// Op-Structure itself carries no algorithm; it is the shape that C4's
// matches, C5's model builder, and C8's transformation pipeline all read
// and write. Its builder methods follow the functional-options-adjacent
// idiom lvlath uses for its own graph builders: every mutator returns a
// new value rather than mutating in place, consistent with the rest of
// this module's purely functional core.
package opstruct
