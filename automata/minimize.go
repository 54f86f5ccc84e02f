package automata

import (
	"github.com/bits-and-blooms/bitset"
)

// Minimization proceeds in two phases: unreachable states are removed
// and the arena re-indexed, then the remaining states are partitioned
// into equivalence classes (seeded with the final and non-final states)
// that are split until no class distinguishes two of its members on any
// alphabet character. Each multi-member class is fused into a composite
// state; singleton classes keep their original state.

// Minimize restructures the DFA in place.
func (d *DFA) Minimize() {
	d.removeUnreachable()
	d.composeEquivalent()
}

// removeUnreachable drops every state that is not a transition target and
// not the start state, then re-indexes the arena.
func (d *DFA) removeUnreachable() {
	targeted := bitset.New(uint(len(d.states)))
	for _, s := range d.states {
		for _, t := range s.transitions {
			for _, target := range t.targets {
				targeted.Set(uint(target))
			}
		}
	}

	keep := make([]bool, len(d.states))
	removed := 0
	for id := range d.states {
		if StateID(id) == d.start || targeted.Test(uint(id)) {
			keep[id] = true
		} else {
			removed++
		}
	}
	if removed == 0 {
		return
	}

	d.reindex(keep)
}

// reindex compacts the arena to the kept states and rewrites every
// transition target and the start/dead identities.
func (d *DFA) reindex(keep []bool) {
	remap := make([]StateID, len(d.states))
	var kept []*State
	for id, s := range d.states {
		if !keep[id] {
			remap[id] = InvalidState
			continue
		}
		remap[id] = StateID(len(kept))
		kept = append(kept, s)
	}

	for _, s := range kept {
		for _, t := range s.transitions {
			for i, target := range t.targets {
				t.targets[i] = remap[target]
			}
		}
	}

	d.states = kept
	d.start = remap[d.start]
	if d.dead != InvalidState && remap[d.dead] != InvalidState {
		d.dead = remap[d.dead]
	} else if d.dead != InvalidState && remap[d.dead] == InvalidState {
		d.dead = InvalidState
	}
}

// composeEquivalent partitions the states into equivalence classes and
// rebuilds the automaton with one state per class.
func (d *DFA) composeEquivalent() {
	alphabet := d.Alphabet()
	classes := d.seedClasses()
	classOf := make([]int, len(d.states))

	for {
		for idx, class := range classes {
			for _, member := range class {
				classOf[member] = idx
			}
		}

		var next [][]StateID
		for _, class := range classes {
			if len(class) == 1 {
				next = append(next, class)
				continue
			}
			next = append(next, splitClass(d, class, alphabet, classOf)...)
		}
		if len(next) == len(classes) {
			break
		}
		classes = next
	}

	// Avoid composing new states when every class is a singleton: the
	// DFA is already minimal.
	needsComposition := false
	for _, class := range classes {
		if len(class) > 1 {
			needsComposition = true
			break
		}
	}
	if !needsComposition {
		return
	}

	d.rebuildFromClasses(classes, alphabet, classOf)
}

// seedClasses builds the initial partition: final states, non-final
// states, and the dead state kept apart so that its identity (and the
// matcher semantics that depend on it) survives minimization.
func (d *DFA) seedClasses() [][]StateID {
	var finals, nonFinals, dead []StateID
	for id, s := range d.states {
		switch {
		case s.IsDead():
			dead = append(dead, StateID(id))
		case s.IsFinal():
			finals = append(finals, StateID(id))
		default:
			nonFinals = append(nonFinals, StateID(id))
		}
	}

	var classes [][]StateID
	for _, class := range [][]StateID{finals, nonFinals, dead} {
		if len(class) > 0 {
			classes = append(classes, class)
		}
	}
	return classes
}

// splitClass groups the members of one class by the classes their
// transitions lead into, one signature entry per alphabet character.
func splitClass(d *DFA, class []StateID, alphabet []byte, classOf []int) [][]StateID {
	type groupKey string
	groups := make(map[groupKey][]StateID)
	var order []groupKey

	for _, member := range class {
		signature := make([]byte, 0, len(alphabet)*4)
		for _, c := range alphabet {
			target := d.targetClass(member, c, classOf)
			signature = append(signature,
				byte(target), byte(target>>8), byte(target>>16), byte(target>>24))
		}
		key := groupKey(signature)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], member)
	}

	result := make([][]StateID, 0, len(order))
	for _, key := range order {
		result = append(result, groups[key])
	}
	return result
}

// targetClass resolves the equivalence class a state transitions into on
// the given character. A missing transition behaves like the dead state.
func (d *DFA) targetClass(from StateID, c byte, classOf []int) int {
	target, isDead := d.Step(from, c)
	if isDead || target == InvalidState {
		if d.dead != InvalidState {
			return classOf[d.dead]
		}
		return -1
	}
	return classOf[target]
}

// rebuildFromClasses replaces the arena with one state per equivalence
// class. Classes with more than one member become composite states with
// all flags resolved from their members; singleton classes keep their
// original state. Transitions are rewired by locating, per class and per
// character, the class containing the members' outputs, with the dead
// state sorted last so that live transitions are never routed into the
// dead class by mistake.
func (d *DFA) rebuildFromClasses(classes [][]StateID, alphabet []byte, classOf []int) {
	old := d.states
	oldDead := d.dead

	newStates := make([]*State, len(classes))
	for idx, class := range classes {
		if len(class) == 1 {
			newStates[idx] = old[class[0]]
			continue
		}
		members := bitset.New(uint(len(old)))
		for _, member := range class {
			members.Set(uint(member))
		}
		newStates[idx] = newCompositeState(old, members, resolveAll)
	}

	// All class transitions are resolved against the old arena before
	// any state is rewired: singleton classes reuse their original state
	// object, so an eager rewrite would corrupt later lookups.
	rewired := make([][]*Transition, len(classes))
	for idx, class := range classes {
		var transitions []*Transition
		for _, c := range alphabet {
			outputs := classOutputs(d, class, c)
			if len(outputs) == 0 {
				continue
			}
			sortDeadLast(d, outputs)
			transitions = append(transitions, NewDeterministic(c, StateID(classOf[outputs[0]])))
		}
		rewired[idx] = transitions
	}
	for idx := range classes {
		newStates[idx].setTransitions(rewired[idx])
	}

	d.states = newStates
	d.start = StateID(classOf[d.start])
	if oldDead != InvalidState {
		d.dead = StateID(classOf[oldDead])
	}
}

// classOutputs unions, over the class members, the states reached on the
// given character.
func classOutputs(d *DFA, class []StateID, c byte) []StateID {
	var outputs []StateID
	seen := make(map[StateID]struct{})
	for _, member := range class {
		target, isDead := d.Step(member, c)
		if target == InvalidState {
			if isDead && d.dead != InvalidState {
				target = d.dead
			} else {
				continue
			}
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		outputs = append(outputs, target)
	}
	return outputs
}

// sortDeadLast forces dead states to the end of the output list; live
// states take precedence over the dead state.
func sortDeadLast(d *DFA, outputs []StateID) {
	live := outputs[:0]
	var dead []StateID
	for _, o := range outputs {
		if d.states[o].IsDead() {
			dead = append(dead, o)
		} else {
			live = append(live, o)
		}
	}
	copy(outputs[len(live):], dead)
}
