// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --no-color, --silent, --beep, --verbose, --version

package main

import "flag"

type cliArgs struct {
	noColor bool
	silent  bool
	beep    bool
	verbose bool
	version bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.BoolVar(&args.noColor, "no-color", false, "Strip color escape sequences from output")
	flag.BoolVar(&args.silent, "silent", false, "Suppress the audible bell")
	flag.BoolVar(&args.beep, "beep", false, "Ring the bell at the end of the demo")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}
