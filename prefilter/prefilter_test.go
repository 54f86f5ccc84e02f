package prefilter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiteralCandidates(t *testing.T) {
	pf := NewLiteral([]byte("ab"))
	haystack := []byte("xxabyyab")

	require.Equal(t, 2, pf.NextCandidate(haystack, 0))
	require.Equal(t, 2, pf.NextCandidate(haystack, 2))
	require.Equal(t, 6, pf.NextCandidate(haystack, 3))
	require.Equal(t, -1, pf.NextCandidate(haystack, 7))
	require.Equal(t, -1, pf.NextCandidate(haystack, len(haystack)+1))
}

func TestMultiLiteralCandidates(t *testing.T) {
	pf := NewMultiLiteral([][]byte{[]byte("foo"), []byte("ba")})
	require.NotNil(t, pf)

	haystack := []byte("xbazfoo")
	require.Equal(t, 1, pf.NextCandidate(haystack, 0))
	require.Equal(t, 4, pf.NextCandidate(haystack, 2))
	require.Equal(t, -1, pf.NextCandidate(haystack, 5))
	require.Equal(t, -1, pf.NextCandidate(haystack, len(haystack)))
}

func TestForLiterals(t *testing.T) {
	require.Nil(t, ForLiterals(nil))
	require.IsType(t, &Literal{}, ForLiterals([][]byte{[]byte("a")}))
	require.IsType(t, &MultiLiteral{}, ForLiterals([][]byte{[]byte("a"), []byte("b")}))
}
