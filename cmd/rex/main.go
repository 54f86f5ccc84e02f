package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/gologger"

	"github.com/coregx/rex"
	"github.com/coregx/rex/internal/runner"
)

func main() {
	opts := runner.ParseFlags(os.Args[1:])

	config := rex.DefaultConfig()
	if opts.MaxDFAStates > 0 {
		config.MaxDFAStates = opts.MaxDFAStates
	}

	re, err := rex.CompileWithConfig(opts.Pattern, config)
	if err != nil {
		gologger.Fatal().Msgf("unable to compile the regular expression: %s", err)
	}

	if opts.Verbose {
		stats := re.Stats()
		gologger.Verbose().Msgf("compiled %q: %d ε-NFA states, %d NFA states, %d DFA states, %d minimized",
			re.String(), stats.EpsilonNFAStates, stats.NFAStates, stats.DFAStates, stats.MinimizedDFAStates)
	}

	matches, err := re.MatchString(opts.Input)
	if err != nil {
		gologger.Fatal().Msgf("unable to match the input: %s", err)
	}

	if len(matches) == 0 {
		fmt.Println("no")
		return
	}
	for i, m := range matches {
		fmt.Printf("#%d: %q [%d, %d]\n", i+1, m.Value(), m.RangeBegin(), m.RangeEnd())
	}
}
