package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/rex/syntax"
)

func analyze(t *testing.T, pattern string) (Node, error) {
	t.Helper()
	tokens, err := syntax.Tokenize([]byte(pattern))
	require.NoError(t, err)
	cst, err := syntax.Parse(tokens)
	require.NoError(t, err)
	return Analyze(cst)
}

// unwrap strips the outermost anchor so the shape assertions can look at
// the expression itself.
func unwrap(t *testing.T, n Node) Node {
	t.Helper()
	anchor, ok := n.(*Anchor)
	require.True(t, ok, "root is always an anchor, got %T", n)
	return anchor.Inner
}

func TestAnalyzeConstant(t *testing.T) {
	root, err := analyze(t, "a")
	require.NoError(t, err)

	anchor := root.(*Anchor)
	require.Equal(t, Unanchored, anchor.StartType)
	require.Equal(t, Unanchored, anchor.EndType)

	constant, ok := anchor.Inner.(*Constant)
	require.True(t, ok)
	require.Equal(t, byte('a'), constant.Value)
	require.Equal(t, 1, constant.Position)
}

func TestAnalyzeAnchors(t *testing.T) {
	tests := []struct {
		pattern string
		start   AnchorType
		end     AnchorType
	}{
		{"a", Unanchored, Unanchored},
		{"^a", Anchored, Unanchored},
		{"a$", Unanchored, Anchored},
		{"^a$", Anchored, Anchored},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			root, err := analyze(t, tt.pattern)
			require.NoError(t, err)

			anchor := root.(*Anchor)
			require.Equal(t, tt.start, anchor.StartType)
			require.Equal(t, tt.end, anchor.EndType)
		})
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	root, err := analyze(t, "")
	require.NoError(t, err)
	require.IsType(t, &Empty{}, unwrap(t, root))

	root, err = analyze(t, "^$")
	require.NoError(t, err)
	anchor := root.(*Anchor)
	require.Equal(t, Anchored, anchor.StartType)
	require.Equal(t, Anchored, anchor.EndType)
	require.IsType(t, &Empty{}, anchor.Inner)
}

func TestAnalyzeAnyCharacter(t *testing.T) {
	root, err := analyze(t, ".")
	require.NoError(t, err)

	constant := unwrap(t, root).(*Constant)
	require.Equal(t, syntax.AnyByte, constant.Value)
}

func TestAnalyzeEscapes(t *testing.T) {
	root, err := analyze(t, `\*`)
	require.NoError(t, err)
	constant := unwrap(t, root).(*Constant)
	require.Equal(t, byte('*'), constant.Value)

	root, err = analyze(t, `\\`)
	require.NoError(t, err)
	constant = unwrap(t, root).(*Constant)
	require.Equal(t, byte('\\'), constant.Value)
}

func TestAnalyzeOperators(t *testing.T) {
	root, err := analyze(t, "a|b")
	require.NoError(t, err)
	alt := unwrap(t, root).(*BinaryOperator)
	require.Equal(t, Alternation, alt.Kind)
	require.Equal(t, byte('a'), alt.Left.(*Constant).Value)
	require.Equal(t, byte('b'), alt.Right.(*Constant).Value)

	root, err = analyze(t, "ab")
	require.NoError(t, err)
	concat := unwrap(t, root).(*BinaryOperator)
	require.Equal(t, Concatenation, concat.Kind)

	root, err = analyze(t, "a*")
	require.NoError(t, err)
	star := unwrap(t, root).(*UnaryOperator)
	require.Equal(t, Star, star.Kind)
	require.Equal(t, byte('a'), star.Operand.(*Constant).Value)

	root, err = analyze(t, "a+")
	require.NoError(t, err)
	require.Equal(t, Plus, unwrap(t, root).(*UnaryOperator).Kind)

	root, err = analyze(t, "a?")
	require.NoError(t, err)
	require.Equal(t, Question, unwrap(t, root).(*UnaryOperator).Kind)
}

func TestAnalyzeGroupIsPrecedenceOnly(t *testing.T) {
	// "(ab)*" quantifies the whole group; the group itself shows up as
	// an unanchored anchor wrapper around the concatenation.
	root, err := analyze(t, "(ab)*")
	require.NoError(t, err)

	star := unwrap(t, root).(*UnaryOperator)
	require.Equal(t, Star, star.Kind)

	group := star.Operand.(*Anchor)
	require.Equal(t, Unanchored, group.StartType)
	require.Equal(t, Unanchored, group.EndType)
	require.Equal(t, Concatenation, group.Inner.(*BinaryOperator).Kind)
}

func TestAnalyzeBracketExpressions(t *testing.T) {
	// A bracket range lowers to the range operator over two constants.
	root, err := analyze(t, "[a-z]")
	require.NoError(t, err)
	rng := unwrap(t, root).(*BinaryOperator)
	require.Equal(t, Range, rng.Kind)
	require.Equal(t, byte('a'), rng.Left.(*Constant).Value)
	require.Equal(t, byte('z'), rng.Right.(*Constant).Value)

	// Items alternate.
	root, err = analyze(t, "[ab]")
	require.NoError(t, err)
	alt := unwrap(t, root).(*BinaryOperator)
	require.Equal(t, Alternation, alt.Kind)

	// A dot inside brackets is a literal dot.
	root, err = analyze(t, "[.]")
	require.NoError(t, err)
	constant := unwrap(t, root).(*Constant)
	require.Equal(t, byte('.'), constant.Value)
}

func TestAnalyzeRangeErrors(t *testing.T) {
	tests := []struct {
		pattern  string
		position int
	}{
		{"[z-a]", 3},
		{"[5-5]", 3},
		{"[Z-A]", 3},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := analyze(t, tt.pattern)
			require.Error(t, err)

			var re *RangeError
			require.True(t, errors.As(err, &re))
			require.Equal(t, tt.position, re.Position)
		})
	}
}
