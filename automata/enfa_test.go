package automata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/rex/ast"
	"github.com/coregx/rex/syntax"
)

func flagCount(e *EpsilonNFA, flag StateFlags) int {
	count := 0
	for _, s := range e.states {
		if s.flags&flag != 0 {
			count++
		}
	}
	return count
}

func TestBuildConstantFragment(t *testing.T) {
	e := BuildEpsilonNFA(&ast.Constant{Value: 'a'})

	require.Equal(t, 2, e.Len())
	require.Equal(t, 1, flagCount(e, FlagStart))
	require.Equal(t, 1, flagCount(e, FlagFinal))

	start := e.State(e.Start())
	require.Len(t, start.Transitions(), 1)
	tr := start.Transitions()[0]
	require.Equal(t, byte('a'), tr.Expected)
	require.Equal(t, CondEqual, tr.Cond)
	require.True(t, tr.IsDeterministic())
	require.Equal(t, e.Final(), tr.Target())
}

func TestBuildAnyCharacterFragment(t *testing.T) {
	e := BuildEpsilonNFA(&ast.Constant{Value: syntax.AnyByte})

	tr := e.State(e.Start()).Transitions()[0]
	require.Equal(t, syntax.AnyByte, tr.Expected)
	require.Equal(t, CondAny, tr.Cond)
	require.True(t, tr.AllowedOn('x'))
	require.False(t, tr.AllowedOn(syntax.StartSentinel))
	require.False(t, tr.AllowedOn(syntax.EndSentinel))
}

func TestBuildEmptyFragment(t *testing.T) {
	e := BuildEpsilonNFA(&ast.Empty{})

	require.Equal(t, 2, e.Len())
	// The single start state is also the final state; everything else
	// drains into the dead state.
	require.Equal(t, e.Start(), e.Final())
	require.True(t, e.State(e.Start()).IsFinal())

	tr := e.State(e.Start()).Transitions()[0]
	dead := e.State(tr.Target())
	require.True(t, dead.IsDead())
	require.Len(t, dead.Transitions(), 1)
	require.Equal(t, tr.Target(), dead.Transitions()[0].Target())
}

func TestBuildRangeFragment(t *testing.T) {
	e := BuildEpsilonNFA(&ast.BinaryOperator{
		Kind:  ast.Range,
		Left:  &ast.Constant{Value: 'a'},
		Right: &ast.Constant{Value: 'c'},
	})

	require.Equal(t, 2, e.Len())
	transitions := e.State(e.Start()).Transitions()
	require.Len(t, transitions, 3)
	var bytes []byte
	for _, tr := range transitions {
		bytes = append(bytes, tr.Expected)
		require.Equal(t, e.Final(), tr.Target())
	}
	require.Equal(t, []byte{'a', 'b', 'c'}, bytes)
}

func TestBuildAlternationFragment(t *testing.T) {
	e := BuildEpsilonNFA(&ast.BinaryOperator{
		Kind:  ast.Alternation,
		Left:  &ast.Constant{Value: 'a'},
		Right: &ast.Constant{Value: 'b'},
	})

	require.Equal(t, 6, e.Len())
	require.Equal(t, 1, flagCount(e, FlagStart))
	require.Equal(t, 1, flagCount(e, FlagFinal))

	start := e.State(e.Start())
	require.Len(t, start.Transitions(), 1)
	tr := start.Transitions()[0]
	require.True(t, tr.IsEpsilon())
	require.False(t, tr.IsDeterministic())
	require.Len(t, tr.Targets(), 2)
}

func TestBuildConcatenationFragment(t *testing.T) {
	e := BuildEpsilonNFA(&ast.BinaryOperator{
		Kind:  ast.Concatenation,
		Left:  &ast.Constant{Value: 'a'},
		Right: &ast.Constant{Value: 'b'},
	})

	// Concatenation introduces no new states: the operand fragments are
	// merged through a single epsilon transition.
	require.Equal(t, 4, e.Len())
	require.Equal(t, 1, flagCount(e, FlagStart))
	require.Equal(t, 1, flagCount(e, FlagFinal))
}

func TestBuildQuantificationFragments(t *testing.T) {
	tests := []struct {
		name          string
		kind          ast.UnaryKind
		startTargets  int
		finalLoopBack bool
	}{
		{"star", ast.Star, 2, true},
		{"plus", ast.Plus, 1, true},
		{"question", ast.Question, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := BuildEpsilonNFA(&ast.UnaryOperator{
				Kind:    tt.kind,
				Operand: &ast.Constant{Value: 'a'},
			})

			require.Equal(t, 4, e.Len())
			start := e.State(e.Start())
			require.Len(t, start.Transitions(), 1)
			require.True(t, start.Transitions()[0].IsEpsilon())
			require.Len(t, start.Transitions()[0].Targets(), tt.startTargets)

			// The operand constant is built first: its start is state 0
			// and its final is state 1.
			loops := false
			for _, tr := range e.State(1).Transitions() {
				for _, target := range tr.Targets() {
					if target == 0 {
						loops = true
					}
				}
			}
			require.Equal(t, tt.finalLoopBack, loops)
		})
	}
}

func TestBuildAnchorFragment(t *testing.T) {
	e := BuildEpsilonNFA(&ast.Anchor{
		StartType: ast.Anchored,
		EndType:   ast.Anchored,
		Inner:     &ast.Constant{Value: 'a'},
	})

	require.Equal(t, 4, e.Len())
	start := e.State(e.Start())
	require.Len(t, start.Transitions(), 1)
	require.Equal(t, syntax.StartSentinel, start.Transitions()[0].Expected)
	require.False(t, start.Transitions()[0].IsEpsilon())
}

func TestEpsilonIdentity(t *testing.T) {
	eps := NewEpsilon(0)
	require.True(t, eps.IsEpsilon())
	require.False(t, eps.AllowedOn('a'))
	require.False(t, eps.PossibleOn(syntax.Epsilon))

	// An equal-condition transition on the NUL byte is not epsilon.
	nul := &Transition{Expected: syntax.Epsilon, Cond: CondEqual, RequiresInput: true, targets: []StateID{0}}
	require.False(t, nul.IsEpsilon())

	// The not-equal condition accepts everything but the expected byte.
	notEqual := &Transition{Expected: 'a', Cond: CondNotEqual, RequiresInput: true, targets: []StateID{0}}
	require.True(t, notEqual.AllowedOn('b'))
	require.False(t, notEqual.AllowedOn('a'))
}
