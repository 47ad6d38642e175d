// Command cpsel is a reference driver over the selector pipeline. Each
// sub-action accepts a scenario file path, a target machine name, and an
// output path prefix, and emits output files suffixed with a per-output
// ID; with no -in flag it falls back to a small built-in demo fixture
// instead of a file.
//
//	cpsel make      -in path -out prefix -target name
//	                 match a function against a target machine, build a
//	                 HighLevelModel, lower it, and write both as
//	                 prefix.high-level-model.json and
//	                 prefix.low-level-model.json.
//	cpsel transform -in path -out prefix
//	                 run the default Op-Structure transformation
//	                 pipeline over a function and write a before/after
//	                 node inventory to prefix.transform-report.json.
//	cpsel plot      -in path -out prefix -target name
//	                 render a function's CFG and its target machine's
//	                 first pattern graph to prefix.cfg.dot and
//	                 prefix.pattern.dot.
//	cpsel check     -in path -out prefix -target name
//	                 re-verify the universal invariants of spec §8
//	                 against a function and its matches, writing
//	                 prefix.check-report.json; a nonzero exit signals a
//	                 violation.
//
// -in reads a scenario JSON file (see scenario.go for its schema); -target
// selects a named machine within that file when it declares more than
// one. A zero exit code means success; a nonzero exit code indicates the
// sub-action's first failing action.
package main
