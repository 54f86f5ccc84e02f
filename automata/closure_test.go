package automata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/rex/ast"
	"github.com/coregx/rex/syntax"
)

func buildAST(t *testing.T, pattern string) ast.Node {
	t.Helper()
	tokens, err := syntax.Tokenize([]byte(pattern))
	require.NoError(t, err)
	cst, err := syntax.Parse(tokens)
	require.NoError(t, err)
	root, err := ast.Analyze(cst)
	require.NoError(t, err)
	return root
}

func buildNFA(t *testing.T, pattern string) *NFA {
	t.Helper()
	return BuildEpsilonNFA(buildAST(t, pattern)).ComputeEpsilonClosures()
}

func hasEpsilon(states []*State) bool {
	for _, s := range states {
		for _, tr := range s.transitions {
			if tr.IsEpsilon() {
				return true
			}
		}
	}
	return false
}

func TestClosureErasesEpsilonTransitions(t *testing.T) {
	for _, pattern := range []string{"a", "a|b", "a*", "(ab)+c?", "^a$", ""} {
		t.Run(pattern, func(t *testing.T) {
			nfa := buildNFA(t, pattern)
			require.False(t, hasEpsilon(nfa.states))
		})
	}
}

func TestClosurePropagatesFinality(t *testing.T) {
	// In "a*" the start of the quantification fragment reaches the
	// final state by epsilon alone, so after collapse it must accept.
	nfa := buildNFA(t, "a*")
	require.True(t, nfa.states[nfa.start].IsFinal())

	// In "a" it does not.
	nfa = buildNFA(t, "a")
	require.False(t, nfa.states[nfa.start].IsFinal())
}

func TestClosureTransitionsReachFinals(t *testing.T) {
	// For "a|b" the collapsed start state must step on both characters
	// straight into accepting states.
	nfa := buildNFA(t, "a|b")
	start := nfa.states[nfa.start]

	for _, c := range []byte{'a', 'b'} {
		found := false
		for _, tr := range start.transitions {
			if !tr.AllowedOn(c) {
				continue
			}
			found = true
			accepting := false
			for _, target := range tr.Targets() {
				if nfa.states[target].IsFinal() {
					accepting = true
				}
			}
			require.True(t, accepting, "step on %q should reach an accepting state", c)
		}
		require.True(t, found, "missing transition on %q", c)
	}
}

func TestClosureWithoutEpsilonReusesStates(t *testing.T) {
	// A bare range fragment has no epsilon transitions at all.
	e := BuildEpsilonNFA(&ast.BinaryOperator{
		Kind:  ast.Range,
		Left:  &ast.Constant{Value: '0'},
		Right: &ast.Constant{Value: '9'},
	})
	nfa := e.ComputeEpsilonClosures()

	require.Equal(t, e.Len(), nfa.Len())
	require.Len(t, nfa.states[nfa.start].transitions, 10)
}
