package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/cpsel/machine"
	"github.com/katalvlaran/cpsel/model"
	"github.com/katalvlaran/cpsel/opstruct"
)

// ioFlags are the flags every sub-action accepts per the reference
// driver's CLI contract: a path to read a function/machine scenario
// from, a target machine name, and an output path prefix that each
// emitted file is suffixed against with its own output ID.
type ioFlags struct {
	in     string
	out    string
	target string
}

func parseIOFlags(sub string, args []string) (ioFlags, error) {
	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	var f ioFlags
	fs.StringVar(&f.in, "in", "", "path to a scenario JSON file (defaults to the built-in demo fixture)")
	fs.StringVar(&f.out, "out", "cpsel-"+sub, "output path prefix; each emitted file is suffixed with its own output ID")
	fs.StringVar(&f.target, "target", "", "target machine name within the scenario file (defaults to its only machine)")
	if err := fs.Parse(args); err != nil {
		return ioFlags{}, err
	}
	return f, nil
}

// loadFunctionAndMachine resolves f.in/f.target into a function and
// target machine, falling back to the built-in demo fixture when f.in
// is empty.
func loadFunctionAndMachine(f ioFlags) (*model.Function, *machine.TargetMachine, error) {
	if f.in == "" {
		fn, _, _, _ := demoMatchFunction()
		return fn, demoMachine(), nil
	}
	sf, err := parseScenarioFile(f.in)
	if err != nil {
		return nil, nil, err
	}
	fn, err := buildFunction(sf)
	if err != nil {
		return nil, nil, err
	}
	tm, err := machineByTarget(sf, f.target)
	if err != nil {
		return nil, nil, err
	}
	return fn, tm, nil
}

// loadFunction resolves f.in into a function alone, for sub-actions
// that need no target machine, falling back to the demo transform
// fixture when f.in is empty.
func loadFunction(f ioFlags) (*opstruct.OpStruct, error) {
	if f.in == "" {
		return demoTransformFunction(), nil
	}
	sf, err := parseScenarioFile(f.in)
	if err != nil {
		return nil, err
	}
	fn, err := buildFunction(sf)
	if err != nil {
		return nil, err
	}
	return fn.OpStruct, nil
}

// writeJSONFile marshals v as indented JSON to out+"."+outputID, the
// per-output-ID-suffixed file the CLI contract requires, and reports the
// path it wrote.
func writeJSONFile(out, outputID string, v interface{}) (string, error) {
	path := out + "." + outputID + ".json"
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", outputID, err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outputID, err)
	}
	return path, nil
}
