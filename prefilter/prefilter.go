// Package prefilter provides literal-based candidate finding for the
// matcher. A prefilter answers one question: at or after a given
// position, where is the next place a match could possibly start? The
// matcher confirms (or rejects) every candidate with the DFA, so a
// prefilter only ever has to be conservative, never exact.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
)

// Prefilter finds candidate match start positions.
type Prefilter interface {
	// NextCandidate returns the smallest position >= at where a match
	// could start, or -1 when no further candidate exists.
	NextCandidate(haystack []byte, at int) int
}

// Literal is a single-literal prefilter backed by substring search.
type Literal struct {
	needle []byte
}

// NewLiteral creates a prefilter for one required literal.
func NewLiteral(needle []byte) *Literal {
	return &Literal{needle: append([]byte(nil), needle...)}
}

// NextCandidate implements Prefilter.
func (l *Literal) NextCandidate(haystack []byte, at int) int {
	if at > len(haystack) {
		return -1
	}
	i := bytes.Index(haystack[at:], l.needle)
	if i < 0 {
		return -1
	}
	return at + i
}

// MultiLiteral is an Aho-Corasick backed prefilter over a set of
// required literals.
type MultiLiteral struct {
	automaton *ahocorasick.Automaton
}

// NewMultiLiteral builds the Aho-Corasick automaton for the literal set.
// It returns nil when the automaton cannot be built; the caller then
// simply runs unfiltered.
func NewMultiLiteral(literals [][]byte) *MultiLiteral {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil
	}
	return &MultiLiteral{automaton: automaton}
}

// NextCandidate implements Prefilter.
func (m *MultiLiteral) NextCandidate(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	match := m.automaton.Find(haystack, at)
	if match == nil {
		return -1
	}
	return match.Start
}

// ForLiterals selects the cheapest prefilter for a literal set: direct
// substring search for a single literal, Aho-Corasick for several.
// Returns nil for an empty set.
func ForLiterals(literals [][]byte) Prefilter {
	switch len(literals) {
	case 0:
		return nil
	case 1:
		return NewLiteral(literals[0])
	default:
		if m := NewMultiLiteral(literals); m != nil {
			return m
		}
		return nil
	}
}
