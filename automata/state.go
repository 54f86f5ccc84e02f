package automata

import "github.com/bits-and-blooms/bitset"

// StateID indexes a state within its automaton's arena.
type StateID uint32

// InvalidState is the zero-like sentinel for an absent state reference.
const InvalidState StateID = 0xFFFFFFFF

// StateFlags describe the purpose of a state within its automaton. A
// state carries at most one of the start/default flags; exactly one state
// per automaton is flagged start and at least one is flagged final.
type StateFlags uint8

const (
	FlagDefault StateFlags = 1 << iota
	FlagStart
	FlagFinal
)

// State is a node of an automaton: type flags, an ordered transition
// list (sorted by equality-condition type) and the dead marker. A
// composite state additionally records the set of constituent states it
// was fused from.
type State struct {
	flags       StateFlags
	dead        bool
	transitions []*Transition

	// composedOf is nil for scalar states. Two composite states are
	// equal exactly when their constituent sets are equal.
	composedOf *bitset.BitSet
}

// IsStart reports whether the state is its automaton's start state.
func (s *State) IsStart() bool { return s.flags&FlagStart != 0 }

// IsFinal reports whether the state accepts.
func (s *State) IsFinal() bool { return s.flags&FlagFinal != 0 }

// IsDead reports whether the state is the absorbing dead state.
func (s *State) IsDead() bool { return s.dead }

// Flags returns the state's type flags.
func (s *State) Flags() StateFlags { return s.flags }

// Transitions returns the state's outgoing transitions.
func (s *State) Transitions() []*Transition { return s.transitions }

// setTransitions replaces the state's transitions, keeping them ordered
// by condition type.
func (s *State) setTransitions(transitions []*Transition) {
	sortTransitions(transitions)
	s.transitions = transitions
}

// demote strips the start/final flags, leaving a default state. Fragment
// composition uses this when endpoints are absorbed into a larger
// construct.
func (s *State) demote() {
	s.flags = FlagDefault
}

// markFinal promotes the state to an accepting state.
func (s *State) markFinal() {
	s.flags |= FlagFinal
	s.flags &^= FlagDefault
}

// ComposedOf returns the constituent set of a composite state, nil for
// scalar states.
func (s *State) ComposedOf() *bitset.BitSet { return s.composedOf }

// IsComposedFrom reports whether the state is a composite fused from
// exactly the given constituent set.
func (s *State) IsComposedFrom(members *bitset.BitSet) bool {
	return s.composedOf != nil && s.composedOf.Equal(members)
}

// resolveFlags modes for composite construction.
type resolveFlags uint8

const (
	resolveFinal resolveFlags = 1 << iota
	resolveStart

	resolveAll = resolveFinal | resolveStart
)

// newCompositeState fuses member states into a composite whose flags are
// resolved from the members according to the mode: a composite may
// inherit the final (and, during minimization, the start) flag when any
// member carries it.
func newCompositeState(arena []*State, members *bitset.BitSet, mode resolveFlags) *State {
	composite := &State{composedOf: members}

	for i, ok := members.NextSet(0); ok; i, ok = members.NextSet(i + 1) {
		member := arena[i]
		if mode&resolveStart != 0 && member.IsStart() {
			composite.flags |= FlagStart
		}
		if mode&resolveFinal != 0 && member.IsFinal() {
			composite.flags |= FlagFinal
		}
	}
	if composite.flags == 0 {
		composite.flags = FlagDefault
	}

	return composite
}

// newDeadState creates the absorbing dead state: a single self-loop that
// accepts every input. The caller wires the self-loop once the state has
// an identity in the arena.
func newDeadState() *State {
	return &State{flags: FlagDefault, dead: true}
}
