// Package automata implements the finite state machines of the regex
// engine: the Thompson-constructed epsilon-NFA, the NFA obtained by
// epsilon-closure collapse, and the DFA produced by subset construction
// and minimized by equivalence-class partitioning.
//
// Each automaton owns its states in a single arena slice; transitions
// refer to their targets by StateID index. Index references are weak by
// construction, which sidesteps the reference cycles an automaton's back
// edges would otherwise create.
package automata

import (
	"sort"

	"github.com/coregx/rex/syntax"
)

// Condition is the equality condition a transition evaluates against its
// expected character.
type Condition uint8

const (
	// CondAny accepts every input except the text sentinels.
	CondAny Condition = iota + 1

	// CondEqual accepts exactly the expected character.
	CondEqual

	// CondNotEqual accepts everything but the expected character.
	CondNotEqual
)

// Transition moves an automaton between states. A deterministic
// transition has a single target; a nondeterministic one has a set of
// targets. A transition is epsilon when it expects the reserved epsilon
// byte, requires no input and carries the any condition.
type Transition struct {
	Expected      byte
	Cond          Condition
	RequiresInput bool

	targets []StateID
}

// conditionFor infers the equality condition from the expected character:
// the reserved epsilon and any bytes both use the any condition, every
// other byte is matched exactly.
func conditionFor(expected byte) Condition {
	if expected == syntax.Epsilon || expected == syntax.AnyByte {
		return CondAny
	}
	return CondEqual
}

// NewDeterministic creates a single-target transition on the expected
// character.
func NewDeterministic(expected byte, target StateID) *Transition {
	return &Transition{
		Expected:      expected,
		Cond:          conditionFor(expected),
		RequiresInput: expected != syntax.Epsilon,
		targets:       []StateID{target},
	}
}

// NewNondeterministic creates a multi-target transition on the expected
// character.
func NewNondeterministic(expected byte, targets []StateID) *Transition {
	return &Transition{
		Expected:      expected,
		Cond:          conditionFor(expected),
		RequiresInput: expected != syntax.Epsilon,
		targets:       append([]StateID(nil), targets...),
	}
}

// NewEpsilon creates a deterministic epsilon transition.
func NewEpsilon(target StateID) *Transition {
	return NewDeterministic(syntax.Epsilon, target)
}

// NewNondeterministicEpsilon creates a nondeterministic epsilon
// transition.
func NewNondeterministicEpsilon(targets []StateID) *Transition {
	return NewNondeterministic(syntax.Epsilon, targets)
}

// IsEpsilon reports whether the transition consumes no input.
func (t *Transition) IsEpsilon() bool {
	return t.Expected == syntax.Epsilon && !t.RequiresInput && t.Cond == CondAny
}

// IsDeterministic reports whether the transition has a single target.
func (t *Transition) IsDeterministic() bool {
	return len(t.targets) == 1
}

// Target returns the sole target of a deterministic transition.
func (t *Transition) Target() StateID {
	return t.targets[0]
}

// Targets returns the transition's target states.
func (t *Transition) Targets() []StateID {
	return t.targets
}

// PossibleOn evaluates the transition's equality function against the
// input character. Epsilon transitions are never possible on input.
func (t *Transition) PossibleOn(input byte) bool {
	if t.IsEpsilon() {
		return false
	}
	switch t.Cond {
	case CondAny:
		return true
	case CondEqual:
		return t.Expected == input
	case CondNotEqual:
		return t.Expected != input
	default:
		return false
	}
}

// AllowedOn reports whether the transition may fire on the input
// character. The text sentinels are excluded from the any condition: they
// must only be consumed by transitions that expect them explicitly.
func (t *Transition) AllowedOn(input byte) bool {
	if !t.PossibleOn(input) {
		return false
	}
	if t.Cond == CondAny {
		if input == syntax.StartSentinel || input == syntax.EndSentinel {
			return false
		}
	}
	return true
}

// sortTransitions orders a transition list by descending condition type,
// so that not-equal and equal conditions take precedence over the any
// condition when a state's transitions are scanned in order.
func sortTransitions(transitions []*Transition) {
	sort.SliceStable(transitions, func(i, j int) bool {
		return transitions[i].Cond > transitions[j].Cond
	})
}
