package syntax

import "strings"

// wholePatternRules rewrite patterns that are, in their entirety, one of
// the empty constructs. They keep the grammar LL(1) without dedicated
// zero productions: the reserved EmptyMark byte stands in for the empty
// expression.
var wholePatternRules = [][2]string{
	{"", string(EmptyMark)},
	{"^", "^" + string(EmptyMark)},
	{"$", string(EmptyMark) + "$"},
}

// substringRules rewrite embedded empty constructs. They are applied
// repeatedly because a substitution can expose a new occurrence of a
// later rule.
var substringRules = [][2]string{
	{"^$", "^" + string(EmptyMark) + "$"},
	{"()", "(" + string(EmptyMark) + ")"},
	{"(^)", "(^" + string(EmptyMark) + ")"},
	{"($)", "(" + string(EmptyMark) + "$)"},
}

// Normalize expands the empty constructs of a pattern into their
// EmptyMark-carrying equivalents. Normalization is idempotent.
func Normalize(pattern string) string {
	for _, rule := range wholePatternRules {
		if pattern == rule[0] {
			return rule[1]
		}
	}

	normalized := pattern
	for _, rule := range substringRules {
		for {
			at := strings.LastIndex(normalized, rule[0])
			if at < 0 {
				break
			}
			normalized = normalized[:at] + rule[1] + normalized[at+len(rule[0]):]
		}
	}

	return normalized
}
