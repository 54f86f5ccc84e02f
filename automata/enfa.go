package automata

import (
	"fmt"

	"github.com/coregx/rex/ast"
	"github.com/coregx/rex/syntax"
)

// EpsilonNFA is the Thompson-constructed automaton: one arena holds every
// fragment, and the root fragment's endpoints are the sole start and
// final states.
type EpsilonNFA struct {
	automaton
	final StateID
}

// fragment is a Thompson building block with exactly one start and one
// final state. Fragments compose by wiring epsilon transitions between
// their endpoints and demoting the absorbed flags.
type fragment struct {
	start StateID
	final StateID
}

// BuildEpsilonNFA constructs the epsilon-NFA for an abstract syntax tree
// using the Thompson patterns of each node variant.
func BuildEpsilonNFA(root ast.Node) *EpsilonNFA {
	e := &EpsilonNFA{}
	frag := e.build(root)
	e.start = frag.start
	e.final = frag.final
	return e
}

// Final returns the epsilon-NFA's sole final state.
func (e *EpsilonNFA) Final() StateID { return e.final }

func (e *EpsilonNFA) build(n ast.Node) fragment {
	switch node := n.(type) {
	case *ast.Empty:
		return e.buildEmpty()
	case *ast.Constant:
		return e.buildConstant(node.Value)
	case *ast.Anchor:
		return e.buildAnchor(node)
	case *ast.UnaryOperator:
		return e.buildQuantification(node)
	case *ast.BinaryOperator:
		switch node.Kind {
		case ast.Alternation:
			return e.buildAlternation(node)
		case ast.Concatenation:
			return e.buildConcatenation(node)
		case ast.Range:
			return e.buildRange(node)
		}
	}
	panic(fmt.Sprintf("automata: unexpected AST node %T", n))
}

// buildEmpty accepts only the empty string: the single start-and-final
// state routes every actual input into a dead state.
func (e *EpsilonNFA) buildEmpty() fragment {
	empty := e.addState(&State{flags: FlagStart | FlagFinal})
	dead := e.addDeadState()
	e.states[empty].setTransitions([]*Transition{
		NewDeterministic(syntax.AnyByte, dead),
	})
	return fragment{start: empty, final: empty}
}

func (e *EpsilonNFA) buildConstant(value byte) fragment {
	start := e.addState(&State{flags: FlagStart})
	final := e.addState(&State{flags: FlagFinal})
	e.states[start].setTransitions([]*Transition{
		NewDeterministic(value, final),
	})
	return fragment{start: start, final: final}
}

// buildRange connects start to final with one deterministic transition
// per byte in the closed interval.
func (e *EpsilonNFA) buildRange(node *ast.BinaryOperator) fragment {
	lo := node.Left.(*ast.Constant).Value
	hi := node.Right.(*ast.Constant).Value

	start := e.addState(&State{flags: FlagStart})
	final := e.addState(&State{flags: FlagFinal})

	transitions := make([]*Transition, 0, int(hi)-int(lo)+1)
	for c := int(lo); c <= int(hi); c++ {
		transitions = append(transitions, NewDeterministic(byte(c), final))
	}
	e.states[start].setTransitions(transitions)

	return fragment{start: start, final: final}
}

func (e *EpsilonNFA) buildAlternation(node *ast.BinaryOperator) fragment {
	left := e.build(node.Left)
	right := e.build(node.Right)

	start := e.addState(&State{flags: FlagStart})
	final := e.addState(&State{flags: FlagFinal})

	e.states[start].setTransitions([]*Transition{
		NewNondeterministicEpsilon([]StateID{left.start, right.start}),
	})
	e.states[left.final].setTransitions([]*Transition{NewEpsilon(final)})
	e.states[right.final].setTransitions([]*Transition{NewEpsilon(final)})

	e.states[left.start].demote()
	e.states[right.start].demote()
	e.states[left.final].demote()
	e.states[right.final].demote()

	return fragment{start: start, final: final}
}

// buildConcatenation merges the operand fragments through a single
// epsilon transition; no new states are required.
func (e *EpsilonNFA) buildConcatenation(node *ast.BinaryOperator) fragment {
	left := e.build(node.Left)
	right := e.build(node.Right)

	e.states[left.final].setTransitions([]*Transition{NewEpsilon(right.start)})
	e.states[left.final].demote()
	e.states[right.start].demote()

	return fragment{start: left.start, final: right.final}
}

// buildQuantification realizes the star, plus and question quantifiers
// from their repetition bounds: a lower bound of zero makes the operand
// skippable, an unbounded upper bound loops the operand's final state
// back to its start.
func (e *EpsilonNFA) buildQuantification(node *ast.UnaryOperator) fragment {
	operand := e.build(node.Operand)

	start := e.addState(&State{flags: FlagStart})
	final := e.addState(&State{flags: FlagFinal})

	switch node.Kind {
	case ast.Star, ast.Question:
		// Lower bound zero.
		e.states[start].setTransitions([]*Transition{
			NewNondeterministicEpsilon([]StateID{operand.start, final}),
		})
	case ast.Plus:
		// Lower bound one.
		e.states[start].setTransitions([]*Transition{NewEpsilon(operand.start)})
	}

	switch node.Kind {
	case ast.Star, ast.Plus:
		// Unbounded upper bound.
		e.states[operand.final].setTransitions([]*Transition{
			NewNondeterministicEpsilon([]StateID{operand.start, final}),
		})
	case ast.Question:
		// Upper bound one.
		e.states[operand.final].setTransitions([]*Transition{NewEpsilon(final)})
	}

	e.states[operand.start].demote()
	e.states[operand.final].demote()

	return fragment{start: start, final: final}
}

// buildAnchor wraps the inner fragment between a start state that
// consumes the start-of-text sentinel (or epsilon when unanchored) and a
// final state reached by the end-of-text sentinel (or epsilon).
func (e *EpsilonNFA) buildAnchor(node *ast.Anchor) fragment {
	inner := e.build(node.Inner)

	start := e.addState(&State{flags: FlagStart})
	final := e.addState(&State{flags: FlagFinal})

	startExpected := syntax.Epsilon
	if node.StartType == ast.Anchored {
		startExpected = syntax.StartSentinel
	}
	endExpected := syntax.Epsilon
	if node.EndType == ast.Anchored {
		endExpected = syntax.EndSentinel
	}

	e.states[start].setTransitions([]*Transition{
		NewDeterministic(startExpected, inner.start),
	})
	e.states[inner.final].setTransitions([]*Transition{
		NewDeterministic(endExpected, final),
	})

	e.states[inner.start].demote()
	e.states[inner.final].demote()

	return fragment{start: start, final: final}
}

// addDeadState creates a dead state with its self-loop wired.
func (e *EpsilonNFA) addDeadState() StateID {
	id := e.addState(newDeadState())
	e.states[id].setTransitions([]*Transition{
		NewDeterministic(syntax.AnyByte, id),
	})
	return id
}

// ConstructSubset collapses the epsilon transitions first and then
// determinizes the result.
func (e *EpsilonNFA) ConstructSubset(maxStates int) (*DFA, error) {
	return e.ComputeEpsilonClosures().ConstructSubset(maxStates)
}
