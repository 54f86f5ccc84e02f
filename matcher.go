package rex

import (
	"github.com/coregx/rex/automata"
	"github.com/coregx/rex/prefilter"
	"github.com/coregx/rex/syntax"
)

// matcher threads the minimized DFA over a sentinel-adjusted input. The
// compiled DFA is immutable; all cursor state lives here, one value per
// call, so concurrent matching on a shared Regex is safe.
type matcher struct {
	dfa *automata.DFA
	pf  prefilter.Prefilter
}

// run returns all non-overlapping matches in discovery order.
//
// The begin and end cursors index the adjusted input (the original input
// wrapped between the start and end sentinels). Positions reported in a
// Match are indices into the original input; sentinel bytes consumed by
// anchored transitions are trimmed from the reported value and range.
func (m *matcher) run(input []byte) []Match {
	adjusted := make([]byte, 0, len(input)+2)
	adjusted = append(adjusted, syntax.StartSentinel)
	adjusted = append(adjusted, input...)
	adjusted = append(adjusted, syntax.EndSentinel)

	var matches []Match
	begin, end := 0, 0
	current := m.dfa.Start()
	start := m.dfa.Start()

	// Runs of adjacent zero-width matches collapse to their first
	// position, so the empty pattern reports a single match.
	lastZeroWidth := -2

	for end <= len(adjusted) {
		exhausted := end == len(adjusted)

		// A fresh run in the start state may fast-forward to the next
		// position where a match could possibly begin.
		if m.pf != nil && !exhausted && current == start && end == begin && end >= 1 {
			candidate := m.pf.NextCandidate(input, end-1)
			if candidate < 0 {
				break
			}
			if adjustedPos := candidate + 1; adjustedPos > end {
				begin, end = adjustedPos, adjustedPos
			}
		}

		var c byte
		if !exhausted {
			c = adjusted[end]
		}
		currentIsFinal := m.dfa.IsFinal(current)
		currentIsStart := current == start

		var next automata.StateID
		isDead := true
		if !exhausted {
			next, isDead = m.dfa.Step(current, c)
		}

		if isDead {
			// A zero-width match is emitted when the DFA idles in a
			// final state and cannot extend the run, except at
			// positions that correspond to the sentinel bytes
			// themselves.
			if end == begin && currentIsFinal &&
				c != syntax.StartSentinel && (end == 0 || adjusted[end-1] != syntax.EndSentinel) {
				pos := end - 1
				if pos != lastZeroWidth+1 {
					matches = append(matches, newMatch("", pos, pos))
				}
				lastZeroWidth = pos
			}

			// A run that dies out of a final state after consuming
			// input is a match.
			if end > begin && currentIsFinal {
				value, rb, re := trimSentinels(adjusted, begin, end)
				if len(value) == 0 {
					if rb != lastZeroWidth+1 {
						matches = append(matches, newMatch("", rb, rb))
					}
					lastZeroWidth = rb
				} else {
					matches = append(matches, newMatch(string(value), rb, re))
				}
			}

			// Force progress when the dead state was reached straight
			// from the start state without consuming a character.
			if currentIsStart && end == begin {
				end++
			}

			begin = end
			current = start

			if exhausted {
				break
			}
			continue
		}

		current = next
		end++
	}

	return matches
}

// trimSentinels strips the sentinel bytes an anchored run consumed and
// maps the adjusted span [begin, end) to the matched value and its
// inclusive range in the original input.
func trimSentinels(adjusted []byte, begin, end int) (value []byte, rangeBegin, rangeEnd int) {
	ts, te := begin, end
	if ts < te && adjusted[ts] == syntax.StartSentinel {
		ts++
	}
	if te > ts && adjusted[te-1] == syntax.EndSentinel {
		te--
	}
	if te <= ts {
		// The run consumed sentinels only: a zero-width match.
		return nil, ts - 1, ts - 1
	}
	return adjusted[ts:te], ts - 1, te - 2
}
