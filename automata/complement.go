package automata

// Complement flips the automaton's accepting states: every non-final
// state (including the start and dead states) becomes final and every
// final state reverts to a non-final one. Only flags change; no
// transitions are added. A character for which a state has no
// transition still leads nowhere, so acceptance is inverted only for
// inputs on which every step follows an existing transition.
func (d *DFA) Complement() {
	for _, s := range d.states {
		flags := s.flags

		if flags&(FlagDefault|FlagStart) != 0 && flags&FlagFinal == 0 {
			flags &^= FlagDefault
			flags |= FlagFinal
		} else if flags&FlagFinal != 0 {
			flags &^= FlagFinal
			// The start state stays a plain non-final state; everything
			// else becomes default.
			if flags&FlagStart == 0 {
				flags |= FlagDefault
			}
		}

		s.flags = flags
	}
}
