package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	sub := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch sub {
	case "make":
		err = runMake(args)
	case "transform":
		err = runTransform(args)
	case "plot":
		err = runPlot(args)
	case "check":
		err = runCheck(args)
	default:
		fmt.Fprintf(os.Stderr, "cpsel: unknown sub-action %q\n", sub)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Printf("cpsel %s: %v", sub, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cpsel <make|transform|plot|check> [-in path] [-out path-prefix] [-target name]")
}
