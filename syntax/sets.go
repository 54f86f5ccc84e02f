package syntax

// FIRST and FOLLOW set computation. Both sets hold terminals; epsilon
// membership in a FIRST set marks the rule (or production) as
// transparent.

// terminalSet is an insertion-ordered set of terminals.
type terminalSet struct {
	members []*Terminal
	index   map[*Terminal]struct{}
}

func newTerminalSet() *terminalSet {
	return &terminalSet{index: make(map[*Terminal]struct{})}
}

func (s *terminalSet) add(t *Terminal) {
	if _, ok := s.index[t]; ok {
		return
	}
	s.index[t] = struct{}{}
	s.members = append(s.members, t)
}

func (s *terminalSet) addAll(other *terminalSet, includeEpsilon bool) {
	for _, t := range other.members {
		if !includeEpsilon && t.IsEpsilon() {
			continue
		}
		s.add(t)
	}
}

func (s *terminalSet) containsEpsilon() bool {
	for _, t := range s.members {
		if t.IsEpsilon() {
			return true
		}
	}
	return false
}

// ruleFirst computes the rule's first set: walk the symbols, adding a
// terminal and stopping, or adding a non-terminal's first set (minus
// epsilon) and continuing only while the walked symbols stay transparent.
// If every symbol is transparent the rule itself derives epsilon.
func (g *Grammar) ruleFirst(r *Rule) *terminalSet {
	if r.firstSet != nil {
		return r.firstSet
	}

	set := newTerminalSet()
	transparentPrefix := true

	for _, symbol := range r.Symbols {
		switch sym := symbol.(type) {
		case *Terminal:
			set.add(sym)
			if sym.IsEpsilon() {
				r.derivesEpsilon = true
			}
			transparentPrefix = false
		case *NonTerminal:
			memberFirst := g.productionFirst(sym.Production)
			set.addAll(memberFirst, false)
			if !memberFirst.containsEpsilon() {
				transparentPrefix = false
			}
		}
		if !transparentPrefix {
			break
		}
	}

	if transparentPrefix {
		set.add(g.Epsilon())
		r.derivesEpsilon = true
	}

	r.firstSet = set
	return set
}

// productionFirst computes the production's first set as the union of its
// rules' first sets.
func (g *Grammar) productionFirst(p *Production) *terminalSet {
	if p.firstSet != nil {
		return p.firstSet
	}

	// Install the set before recursing: the grammar has no left
	// recursion, but sharing the instance keeps accidental cycles from
	// looping forever.
	set := newTerminalSet()
	p.firstSet = set

	for _, rule := range p.Rules {
		set.addAll(g.ruleFirst(rule), true)
	}

	return set
}

// productionFollow computes the production's follow set by walking every
// occurrence of the production inside some rule: the first set (minus
// epsilon) of the immediate right neighbor is unioned in, transitively
// across transparent neighbors, and when no non-transparent neighbor
// remains the follow set of the enclosing left-hand side is unioned in as
// well.
func (g *Grammar) productionFollow(p *Production) *terminalSet {
	return g.followWithGuard(p, make(map[*Production]struct{}))
}

func (g *Grammar) followWithGuard(p *Production, inProgress map[*Production]struct{}) *terminalSet {
	if p.followSet != nil {
		return p.followSet
	}
	if _, ok := inProgress[p]; ok {
		// Follow-set cycle (mutually recursive primes): the union is
		// already being accumulated higher up the stack.
		return newTerminalSet()
	}
	inProgress[p] = struct{}{}
	defer delete(inProgress, p)

	set := newTerminalSet()

	for _, occ := range p.occurrences {
		exhausted := true
		for i := occ.index + 1; i < len(occ.rule.Symbols); i++ {
			switch sym := occ.rule.Symbols[i].(type) {
			case *Terminal:
				set.add(sym)
				exhausted = false
			case *NonTerminal:
				neighborFirst := g.productionFirst(sym.Production)
				set.addAll(neighborFirst, false)
				if !neighborFirst.containsEpsilon() {
					exhausted = false
				}
			}
			if !exhausted {
				break
			}
		}
		if exhausted {
			set.addAll(g.followWithGuard(occ.owner, inProgress), false)
		}
	}

	// Only cycle-free results are memoized; a partial union computed
	// under an active guard would be incomplete.
	if len(inProgress) == 1 {
		p.followSet = set
	}
	return set
}
