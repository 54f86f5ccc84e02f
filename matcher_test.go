package rex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchAnchoredEdges(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    []Match
	}{
		{"empty pattern on empty input", "", "", []Match{newMatch("", 0, 0)}},
		{"both anchors on empty input", "^$", "", []Match{newMatch("", 0, 0)}},
		{"both anchors reject non-empty", "^$", "x", nil},
		{"start anchor alone", "^", "xyz", []Match{newMatch("", 0, 0)}},
		{"start anchored prefix", "^ab", "abab", []Match{newMatch("ab", 0, 1)}},
		{"end anchored suffix", "ab$", "abab", []Match{newMatch("ab", 2, 3)}},
		{"end anchored suffix reject", "ab$", "abba", nil},
		{"anchored alternation", "^(ab|ba)$", "ba", []Match{newMatch("ba", 0, 1)}},
		{"group quantification", "(ab)+", "ababxab", []Match{newMatch("abab", 0, 3), newMatch("ab", 5, 6)}},
		{"question mark", "ab?", "a ab", []Match{newMatch("a", 0, 0), newMatch("ab", 2, 3)}},
		{"escaped metacharacter", `\.`, "a.b.c", []Match{newMatch(".", 1, 1), newMatch(".", 3, 3)}},
		{"literal dot in brackets", "[.]", "a.b", []Match{newMatch(".", 1, 1)}},
		{"no match", "xyz", "abc", nil},
		{"empty input no match", "a", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, mustMatch(t, tt.pattern, tt.input))
		})
	}
}

func TestMatchGreediness(t *testing.T) {
	// The matcher extends a match as far as the DFA stays alive.
	matches := mustMatch(t, "[0-9]+", "a123b45")
	require.Equal(t, []Match{newMatch("123", 1, 3), newMatch("45", 5, 6)}, matches)

	matches = mustMatch(t, "a*", "aaa")
	require.Equal(t, "aaa", matches[0].Value())
}

func TestMatchInputUnchanged(t *testing.T) {
	input := []byte("banana")
	re := MustCompile("an")
	_, err := re.Match(input)
	require.NoError(t, err)
	require.Equal(t, []byte("banana"), input)
}

func TestPrefilterEquivalence(t *testing.T) {
	patterns := []string{"a", "ab*c", "abc|xyz", "[A-C]+", "ab$", "a.c"}
	inputs := []string{"", "a", "abc", "xyzabc", "ac abc abbbc", "ABXCAAZB", "mississippi"}

	off := DefaultConfig()
	off.EnablePrefilter = false

	for _, pattern := range patterns {
		withPF, err := Compile(pattern)
		require.NoError(t, err)
		withoutPF, err := CompileWithConfig(pattern, off)
		require.NoError(t, err)

		for _, input := range inputs {
			a, err := withPF.MatchString(input)
			require.NoError(t, err)
			b, err := withoutPF.MatchString(input)
			require.NoError(t, err)
			require.Equal(t, b, a, "prefilter changed results for %q on %q", pattern, input)
		}
	}
}

func TestPrefilterSelection(t *testing.T) {
	// A start-anchored pattern never gets a prefilter.
	re, err := Compile("^abc")
	require.NoError(t, err)
	require.Nil(t, re.pf)

	// Neither does one that can match the empty string.
	re, err = Compile("a*")
	require.NoError(t, err)
	require.Nil(t, re.pf)

	// A concrete literal pattern does.
	re, err = Compile("abc")
	require.NoError(t, err)
	require.NotNil(t, re.pf)
}

func TestConcurrentMatching(t *testing.T) {
	// The compiled DFA is immutable and cursor state is per call, so a
	// single Regex is safe to share.
	re := MustCompile("[a-z]+")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				matches, err := re.MatchString("some lower case words")
				if err != nil || len(matches) != 4 {
					t.Errorf("unexpected result: %v, %v", matches, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
