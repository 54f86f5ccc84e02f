// Package literal extracts required literal prefixes from an abstract
// syntax tree. A prefix set is "complete" when every match of the
// expression is guaranteed to start with one of the literals; only
// complete sets are safe to use as a prefilter.
package literal

import (
	"github.com/coregx/rex/ast"
	"github.com/coregx/rex/syntax"
)

// Prefixes is the result of prefix extraction.
type Prefixes struct {
	// Literals are the candidate starting byte strings.
	Literals [][]byte

	// Complete reports that every non-empty match starts with one of
	// the literals. Callers gate separately on MatchesEmpty; an
	// incomplete set must not be used for filtering.
	Complete bool

	// Exact reports that the literals are, verbatim, the full set of
	// strings the expression matches. Exact sets can be extended by
	// concatenation.
	Exact bool
}

// none is the empty, incomplete extraction.
var none = Prefixes{}

// Extract computes the required prefixes of an expression. maxLiterals
// bounds the set size; extraction degrades to incomplete instead of
// growing past it.
func Extract(n ast.Node, maxLiterals int) Prefixes {
	p := extract(n, maxLiterals)
	if len(p.Literals) == 0 || len(p.Literals) > maxLiterals || !p.Complete {
		return none
	}
	return p
}

func extract(n ast.Node, maxLiterals int) Prefixes {
	switch node := n.(type) {
	case *ast.Empty:
		return none
	case *ast.Constant:
		if node.Value == syntax.AnyByte {
			// "." contributes no usable literal.
			return none
		}
		return Prefixes{
			Literals: [][]byte{{node.Value}},
			Complete: true,
			Exact:    true,
		}
	case *ast.Anchor:
		if node.StartType == ast.Anchored {
			// Anchored expressions are positioned by the sentinel, not
			// by a literal occurrence.
			return none
		}
		inner := extract(node.Inner, maxLiterals)
		// The epsilon wrapping preserves prefixes but the trailing
		// anchor may cut matches short, so exactness is dropped.
		inner.Exact = false
		return inner
	case *ast.UnaryOperator:
		operand := extract(node.Operand, maxLiterals)
		operand.Exact = false
		return operand
	case *ast.BinaryOperator:
		switch node.Kind {
		case ast.Range:
			return extractRange(node, maxLiterals)
		case ast.Alternation:
			left := extract(node.Left, maxLiterals)
			right := extract(node.Right, maxLiterals)
			return Prefixes{
				Literals: append(left.Literals, right.Literals...),
				Complete: left.Complete && right.Complete,
				Exact:    left.Exact && right.Exact,
			}
		case ast.Concatenation:
			return extractConcat(node, maxLiterals)
		}
	}
	return none
}

func extractRange(node *ast.BinaryOperator, maxLiterals int) Prefixes {
	lo := node.Left.(*ast.Constant).Value
	hi := node.Right.(*ast.Constant).Value
	if int(hi)-int(lo)+1 > maxLiterals {
		return none
	}
	literals := make([][]byte, 0, int(hi)-int(lo)+1)
	for c := int(lo); c <= int(hi); c++ {
		literals = append(literals, []byte{byte(c)})
	}
	return Prefixes{Literals: literals, Complete: true, Exact: true}
}

func extractConcat(node *ast.BinaryOperator, maxLiterals int) Prefixes {
	left := extract(node.Left, maxLiterals)

	if MatchesEmpty(node.Left) {
		// The left side may vanish, so a match can also start with the
		// right side's prefixes.
		right := extract(node.Right, maxLiterals)
		return Prefixes{
			Literals: append(left.Literals, right.Literals...),
			Complete: left.Complete && right.Complete,
			Exact:    false,
		}
	}

	if left.Exact && left.Complete && !MatchesEmpty(node.Right) {
		// The left literals are the whole left language and the right
		// side cannot vanish: extend them with the right side's prefixes.
		right := extract(node.Right, maxLiterals)
		if right.Complete && len(left.Literals)*len(right.Literals) <= maxLiterals {
			var crossed [][]byte
			for _, l := range left.Literals {
				for _, r := range right.Literals {
					combined := make([]byte, 0, len(l)+len(r))
					combined = append(combined, l...)
					combined = append(combined, r...)
					crossed = append(crossed, combined)
				}
			}
			return Prefixes{
				Literals: crossed,
				Complete: true,
				Exact:    left.Exact && right.Exact,
			}
		}
	}

	left.Exact = false
	return left
}

// MatchesEmpty reports whether the expression can match the empty
// string.
func MatchesEmpty(n ast.Node) bool {
	switch node := n.(type) {
	case *ast.Empty:
		return true
	case *ast.Constant:
		return false
	case *ast.Anchor:
		return MatchesEmpty(node.Inner)
	case *ast.UnaryOperator:
		if node.Kind == ast.Plus {
			return MatchesEmpty(node.Operand)
		}
		return true
	case *ast.BinaryOperator:
		switch node.Kind {
		case ast.Alternation:
			return MatchesEmpty(node.Left) || MatchesEmpty(node.Right)
		case ast.Concatenation:
			return MatchesEmpty(node.Left) && MatchesEmpty(node.Right)
		case ast.Range:
			return false
		}
	}
	return false
}
