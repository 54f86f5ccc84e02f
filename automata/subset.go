package automata

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/rex/internal/sparse"
)

// Subset construction: starting from the NFA start state as a scalar,
// one DFA state is constructed per reachable subset of NFA states. A
// one-element subset gets a DFA state of its own that copies the NFA
// state's flags; the NFA state itself is not reused. A larger subset
// becomes a composite state keyed by its constituent set; an empty
// subset routes into the canonical dead state, created on first need.

// ConstructSubset determinizes the NFA. maxStates caps the number of DFA
// states; exceeding it fails with ErrTooManyStates rather than letting a
// pathological pattern blow up exponentially.
func (n *NFA) ConstructSubset(maxStates int) (*DFA, error) {
	d := &DFA{dead: InvalidState}
	alphabet := n.Alphabet()
	universe := uint32(len(n.states))

	// scalars maps an NFA state to its DFA incarnation; composites are
	// resolved by their constituent sets.
	scalars := make(map[StateID]StateID)
	composites := make(map[string]StateID)

	type workItem struct {
		id      StateID
		members []StateID
	}

	nfaStart := n.states[n.start]
	startID := d.addState(&State{flags: nfaStart.flags})
	scalars[n.start] = startID

	work := []workItem{{id: startID, members: []StateID{n.start}}}
	union := sparse.NewSet(universe)

	for len(work) > 0 {
		item := work[0]
		work = work[1:]

		var transitions []*Transition

		for _, c := range alphabet {
			union.Clear()
			for _, member := range item.members {
				for _, t := range n.states[member].transitions {
					if !t.AllowedOn(c) {
						continue
					}
					for _, target := range t.targets {
						union.Insert(uint32(target))
					}
				}
			}

			outputs := union.Values()
			switch {
			case len(outputs) == 0:
				transitions = append(transitions, NewDeterministic(c, d.deadState()))
			case len(outputs) == 1:
				target := StateID(outputs[0])
				dfaID, known := scalars[target]
				if !known {
					dfaID = d.addState(&State{flags: n.states[target].flags})
					scalars[target] = dfaID
					work = append(work, workItem{id: dfaID, members: []StateID{target}})
				}
				transitions = append(transitions, NewDeterministic(c, dfaID))
			default:
				members := bitset.New(uint(universe))
				for _, o := range outputs {
					members.Set(uint(o))
				}
				key := members.String()
				dfaID, known := composites[key]
				if !known {
					// The start flag is never inherited here: only
					// acceptance carries over from the constituents.
					composite := newCompositeStateFromNFA(n, members)
					dfaID = d.addState(composite)
					composites[key] = dfaID

					sorted := make([]StateID, 0, members.Count())
					for i, ok := members.NextSet(0); ok; i, ok = members.NextSet(i + 1) {
						sorted = append(sorted, StateID(i))
					}
					work = append(work, workItem{id: dfaID, members: sorted})
				}
				transitions = append(transitions, NewDeterministic(c, dfaID))
			}

			if maxStates > 0 && len(d.states) > maxStates {
				return nil, ErrTooManyStates
			}
		}

		d.states[item.id].setTransitions(transitions)
	}

	d.start = startID
	return d, nil
}

// newCompositeStateFromNFA fuses NFA states into a DFA composite,
// resolving only the final flag from the members.
func newCompositeStateFromNFA(n *NFA, members *bitset.BitSet) *State {
	return newCompositeState(n.states, members, resolveFinal)
}
