// Package runner handles flag parsing and logger setup for the rex
// binary.
package runner

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// Options are the command line options of the rex binary.
type Options struct {
	Pattern      string
	Input        string
	MaxDFAStates int
	Verbose      bool
	Silent       bool
}

// ParseFlags parses the command line. The binary accepts its pattern and
// input either as the two positional arguments or through the -pattern
// and -input flags.
func ParseFlags(args []string) *Options {
	opts := &Options{}

	// The documented surface is two bare positional arguments; flags
	// come into play for everything beyond that.
	if len(args) == 2 && !isFlag(args[0]) && !isFlag(args[1]) {
		opts.Pattern = args[0]
		opts.Input = args[1]
		opts.MaxDFAStates = 10000
		return opts
	}

	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Deterministic-automaton regular expression matcher for ASCII input.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Pattern, "pattern", "p", "", "regular expression to compile"),
		flagSet.StringVarP(&opts.Input, "input", "i", "", "input string to match against"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.IntVar(&opts.MaxDFAStates, "max-states", 10000, "maximum number of DFA states"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if opts.Pattern == "" && opts.Input == "" {
		gologger.Fatal().Msgf("usage: rex <pattern> <input>")
	}

	return opts
}

func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}
