package automata

import (
	"github.com/coregx/rex/internal/sparse"
)

// Epsilon-closure collapse: every epsilon transition is replaced with
// equivalent direct transitions so that the resulting automaton is
// epsilon-free yet, in general, still nondeterministic.
//
// For each state s and each character c of the alphabet the pass computes
// closure(step(closure(s), c)): the epsilon closure of s, the union of
// targets allowed on c from that closure, and the epsilon closure of the
// result. Before the epsilon transitions are erased, any state whose
// closure contains a final state is itself marked final; this is the
// central correctness move that propagates acceptance through epsilon
// paths.

// NFA is the epsilon-free, possibly nondeterministic automaton.
type NFA struct {
	automaton
}

// ComputeEpsilonClosures is a no-op on an NFA: the automaton is already
// epsilon-free.
func (n *NFA) ComputeEpsilonClosures() *NFA { return n }

var (
	_ Convertible = (*EpsilonNFA)(nil)
	_ Convertible = (*NFA)(nil)
	_ Modifiable  = (*DFA)(nil)
)

// ComputeEpsilonClosures collapses the epsilon transitions and promotes
// the automaton to an NFA. When the automaton contains no epsilon
// transition the states are reused as they are.
func (e *EpsilonNFA) ComputeEpsilonClosures() *NFA {
	nfa := &NFA{automaton: e.automaton}
	if !e.hasEpsilonTransitions() {
		return nfa
	}

	closures := e.computeClosures()
	e.propagateFinality(closures)

	alphabet := e.Alphabet()
	universe := uint32(len(e.states))
	step := sparse.NewSet(universe)
	closed := sparse.NewSet(universe)

	for id, state := range e.states {
		closure := closures[id]
		var collapsed []*Transition

		for _, c := range alphabet {
			step.Clear()
			closed.Clear()

			// Step on c from every state of the initial closure.
			for _, member := range closure {
				for _, t := range e.states[member].transitions {
					if t.IsEpsilon() || !t.AllowedOn(c) {
						continue
					}
					for _, target := range t.targets {
						step.Insert(uint32(target))
					}
				}
			}

			// Subsequent epsilon closure of the stepped set.
			for _, target := range step.Values() {
				for _, member := range closures[target] {
					closed.Insert(uint32(member))
				}
			}

			outputs := closed.Values()
			switch {
			case len(outputs) == 1:
				collapsed = append(collapsed, NewDeterministic(c, StateID(outputs[0])))
			case len(outputs) > 1:
				targets := make([]StateID, len(outputs))
				for i, o := range outputs {
					targets[i] = StateID(o)
				}
				collapsed = append(collapsed, NewNondeterministic(c, targets))
			}
		}

		state.setTransitions(collapsed)
	}

	return nfa
}

func (e *EpsilonNFA) hasEpsilonTransitions() bool {
	for _, s := range e.states {
		for _, t := range s.transitions {
			if t.IsEpsilon() {
				return true
			}
		}
	}
	return false
}

// computeClosures memoizes the transitive epsilon closure of every state.
// Every state reaches itself by definition; a visited set breaks epsilon
// cycles.
func (e *EpsilonNFA) computeClosures() [][]StateID {
	closures := make([][]StateID, len(e.states))
	visited := sparse.NewSet(uint32(len(e.states)))

	for id := range e.states {
		visited.Clear()
		e.closeOver(StateID(id), visited)

		members := make([]StateID, visited.Size())
		for i, v := range visited.Values() {
			members[i] = StateID(v)
		}
		closures[id] = members
	}

	return closures
}

func (e *EpsilonNFA) closeOver(id StateID, visited *sparse.Set) {
	if visited.Contains(uint32(id)) {
		return
	}
	visited.Insert(uint32(id))

	for _, t := range e.states[id].transitions {
		if !t.IsEpsilon() {
			continue
		}
		for _, target := range t.targets {
			e.closeOver(target, visited)
		}
	}
}

// propagateFinality marks every state whose epsilon closure contains a
// final state as final itself.
func (e *EpsilonNFA) propagateFinality(closures [][]StateID) {
	for id, state := range e.states {
		if state.IsFinal() {
			continue
		}
		for _, member := range closures[id] {
			if e.states[member].IsFinal() {
				state.markFinal()
				break
			}
		}
	}
}
