package automata

import "github.com/coregx/rex/syntax"

// DFA is the deterministic automaton driven by the matcher. Every
// non-dead state has exactly one outgoing transition per alphabet
// character; anything else routes into the canonical dead state.
type DFA struct {
	automaton
	dead StateID
}

// deadState returns the canonical dead state, creating it on first need.
func (d *DFA) deadState() StateID {
	if d.dead != InvalidState {
		return d.dead
	}
	id := d.addState(newDeadState())
	d.states[id].setTransitions([]*Transition{
		NewDeterministic(syntax.AnyByte, id),
	})
	d.dead = id
	return id
}

// Dead returns the identity of the dead state, or InvalidState when the
// automaton never needed one.
func (d *DFA) Dead() StateID { return d.dead }

// Step drives the DFA by one input character. The second return value
// reports whether the move landed in the dead state, either through an
// explicit transition or because no transition accepts the character.
func (d *DFA) Step(from StateID, input byte) (StateID, bool) {
	for _, t := range d.states[from].transitions {
		if !t.AllowedOn(input) {
			continue
		}
		target := t.Target()
		return target, d.states[target].IsDead()
	}
	return InvalidState, true
}

// IsFinal reports whether the state with the given identity accepts.
func (d *DFA) IsFinal(id StateID) bool {
	return d.states[id].IsFinal()
}
