// Package rex is a regular expression library over 7-bit ASCII built on
// fully determinized automata.
//
// A pattern is compiled through a strictly forward pipeline: a Mealy
// lexer classifies the pattern characters in context, an LL(1) parser
// builds a concrete syntax tree, the semantic analyzer lowers it into an
// abstract syntax tree, and a Thompson construction produces an
// epsilon-NFA that is collapsed into an NFA, determinized by subset
// construction and minimized. Matching threads the minimized DFA over
// the input wrapped in sentinel anchors and returns all non-overlapping
// matches with their byte ranges.
//
// Basic usage:
//
//	re, err := rex.Compile("ab*c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	matches, err := re.MatchString("ac abc abbbc")
//	for _, m := range matches {
//	    fmt.Printf("%q [%d, %d]\n", m.Value(), m.RangeBegin(), m.RangeEnd())
//	}
//
// Supported syntax: literals, "." (any character), alternation "|",
// concatenation, the greedy quantifiers "*", "+" and "?", grouping
// "(...)" for precedence, bracket expressions "[...]" with "A-Z", "a-z"
// and "0-9" ranges, the "^" and "$" anchors, and "\X" escapes of the
// metacharacters. Capturing groups, backreferences, lookaround, counted
// repetition and non-greedy quantifiers are not supported.
package rex

import (
	"github.com/coregx/rex/ast"
	"github.com/coregx/rex/automata"
	"github.com/coregx/rex/literal"
	"github.com/coregx/rex/prefilter"
	"github.com/coregx/rex/syntax"
)

// CompileStats records the state counts of each compilation stage. They
// are useful for debugging and for tuning MaxDFAStates.
type CompileStats struct {
	EpsilonNFAStates   int
	NFAStates          int
	DFAStates          int
	MinimizedDFAStates int
}

// Regex is a compiled regular expression. The compiled automaton is
// immutable: a Regex may be compiled once and matched many times, safely
// from multiple goroutines.
type Regex struct {
	pattern string
	dfa     *automata.DFA
	pf      prefilter.Prefilter
	stats   CompileStats
}

// Compile compiles a pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails. This is useful
// for patterns known to be valid at compile time.
//
//	var wordRegex = rex.MustCompile("[a-z]+")
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with a custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tokens, err := syntax.Tokenize([]byte(pattern))
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	cst, err := syntax.Parse(tokens)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	root, err := ast.Analyze(cst)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	enfa := automata.BuildEpsilonNFA(root)
	stats := CompileStats{EpsilonNFAStates: enfa.Len()}

	nfa := enfa.ComputeEpsilonClosures()
	stats.NFAStates = nfa.Len()

	dfa, err := nfa.ConstructSubset(config.MaxDFAStates)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	stats.DFAStates = dfa.Len()

	dfa.Minimize()
	stats.MinimizedDFAStates = dfa.Len()

	return &Regex{
		pattern: pattern,
		dfa:     dfa,
		pf:      buildPrefilter(root, config),
		stats:   stats,
	}, nil
}

// buildPrefilter wires a literal prefilter when it is provably safe:
// the pattern must be unanchored at its start, must not match the empty
// string, and prefix extraction must be complete.
func buildPrefilter(root ast.Node, config Config) prefilter.Prefilter {
	if !config.EnablePrefilter {
		return nil
	}
	anchor, ok := root.(*ast.Anchor)
	if !ok || anchor.StartType == ast.Anchored {
		return nil
	}
	if literal.MatchesEmpty(root) {
		return nil
	}

	prefixes := literal.Extract(root, config.MaxLiterals)
	if !prefixes.Complete {
		return nil
	}
	for _, lit := range prefixes.Literals {
		if len(lit) < config.MinLiteralLen {
			return nil
		}
	}
	return prefilter.ForLiterals(prefixes.Literals)
}

// Match returns all non-overlapping matches of the pattern in the input,
// in discovery order. The input must be non-nil ASCII.
func (r *Regex) Match(input []byte) ([]Match, error) {
	if r == nil || r.dfa == nil {
		return nil, ErrNotCompiled
	}
	if input == nil {
		return nil, ErrNilInput
	}
	for _, c := range input {
		if c >= 0x80 {
			return nil, ErrInputNotASCII
		}
	}

	m := &matcher{dfa: r.dfa, pf: r.pf}
	return m.run(input), nil
}

// MatchString is Match for a string input.
func (r *Regex) MatchString(input string) ([]Match, error) {
	return r.Match([]byte(input))
}

// IsMatch reports whether the input contains at least one match.
func (r *Regex) IsMatch(input []byte) (bool, error) {
	matches, err := r.Match(input)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Stats returns the state counts recorded during compilation.
func (r *Regex) Stats() CompileStats {
	return r.stats
}
