package syntax

import "fmt"

// buildParsingTable fills the LL(1) table. For every rule, the terminals
// of the rule's first set (minus epsilon) key the rule directly; if the
// rule can derive epsilon, the terminals of the production's follow set
// key it as well. Inserting a key that already exists is an LL(1)
// conflict and a build-time invariant violation.
func (g *Grammar) buildParsingTable() {
	for _, p := range g.Productions {
		g.productionFirst(p)

		for _, rule := range p.Rules {
			first := g.ruleFirst(rule)
			g.insertEntries(p, first, rule)

			// The production's follow set only matters for rules that
			// can derive epsilon.
			if rule.derivesEpsilon {
				g.insertEntries(p, g.productionFollow(p), rule)
			}
		}
	}
}

func (g *Grammar) insertEntries(p *Production, terminals *terminalSet, rule *Rule) {
	for _, t := range terminals.members {
		// Epsilon never appears as the second dimension of a parsing
		// table entry.
		if t.IsEpsilon() {
			continue
		}

		key := tableKey{production: p, terminal: t}
		if _, exists := g.table[key]; exists {
			panic(fmt.Sprintf("syntax: LL(1) conflict at (%s, %q)", p.Caption, t.Value()))
		}
		g.table[key] = rule
	}
}
