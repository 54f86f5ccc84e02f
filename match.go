package rex

// Match is one non-overlapping match: the matched text and its inclusive
// byte range in the original input. A zero-width match has
// RangeBegin == RangeEnd at the position the empty match sits before.
type Match struct {
	value      string
	rangeBegin uint32
	rangeEnd   uint32
}

func newMatch(value string, begin, end int) Match {
	return Match{
		value:      value,
		rangeBegin: uint32(begin),
		rangeEnd:   uint32(end),
	}
}

// Value returns the matched text.
func (m Match) Value() string { return m.value }

// RangeBegin returns the inclusive start index of the match in the
// original input.
func (m Match) RangeBegin() uint32 { return m.rangeBegin }

// RangeEnd returns the inclusive end index of the match in the original
// input.
func (m Match) RangeEnd() uint32 { return m.rangeEnd }

// IsEmpty reports whether the match is zero-width.
func (m Match) IsEmpty() bool { return m.value == "" }
