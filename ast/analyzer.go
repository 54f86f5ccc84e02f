package ast

import (
	"github.com/coregx/rex/syntax"
)

// The semantic analyzer rewrites the concrete syntax tree by structural
// recognition rather than by per-production dispatch: a node is lowered
// as a constant, an anchor, a unary operator or a binary operator if its
// shape matches, and the analysis descends into the first non-terminal
// child otherwise.

// constantCaptions are the productions whose single token child lowers to
// a Constant (or to Empty for the empty-expression production).
var constantCaptions = captionSet(
	syntax.CaptionUpperCaseLetter,
	syntax.CaptionLowerCaseLetter,
	syntax.CaptionDigit,
	syntax.CaptionSpecialCharacter,
	syntax.CaptionRegularMetacharacter,
	syntax.CaptionBracketExpressionMetacharacter,
	syntax.CaptionAnyCharacter,
	syntax.CaptionMetacharacterEscape,
	syntax.CaptionEmptyExpression,
)

var binaryCaptions = captionSet(
	syntax.CaptionExpression,
	syntax.CaptionAlternation,
	syntax.CaptionSimpleExpression,
	syntax.CaptionConcatenation,
	syntax.CaptionBracketExpressionItems,
	syntax.CaptionBracketExpressionItem,
)

var quantifierCaptions = map[string]UnaryKind{
	syntax.CaptionStarQuantification:         Star,
	syntax.CaptionPlusQuantification:         Plus,
	syntax.CaptionQuestionMarkQuantification: Question,
}

// operatorKinds maps the prime-sibling caption that discerns a binary
// operator to its kind. Bracket expression items behave exactly like
// alternation does, just without an explicit "|" operator.
var operatorKinds = map[string]BinaryKind{
	syntax.CaptionExpressionPrime:             Alternation,
	syntax.CaptionAlternationPrime:            Alternation,
	syntax.CaptionBracketExpressionItemsPrime: Alternation,
	syntax.CaptionSimpleExpressionPrime:       Concatenation,
	syntax.CaptionConcatenationPrime:          Concatenation,
	syntax.CaptionUpperCaseLetterRange:        Range,
	syntax.CaptionLowerCaseLetterRange:        Range,
	syntax.CaptionDigitRange:                  Range,
}

func captionSet(captions ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(captions))
	for _, c := range captions {
		set[c] = struct{}{}
	}
	return set
}

// Analyze lowers the concrete syntax tree into an abstract syntax tree
// and checks its validity. The CST is consumed and should be discarded
// afterwards.
func Analyze(cst *syntax.CSTNode) (Node, error) {
	node := lower(cst)
	if err := validate(node); err != nil {
		return nil, err
	}
	return node, nil
}

func lower(cst *syntax.CSTNode) Node {
	if tokenChild, ok := matchConstant(cst); ok {
		return lowerConstant(tokenChild)
	}
	if inner, ok := matchAnchor(cst); ok {
		children := cst.NonTerminalChildren()
		return &Anchor{
			StartType: anchorType(children[0]),
			EndType:   anchorType(children[2]),
			Inner:     lower(inner),
		}
	}
	if operand, kind, ok := matchUnary(cst); ok {
		return &UnaryOperator{Kind: kind, Operand: lower(operand)}
	}
	if left, right, kind, ok := matchBinary(cst); ok {
		return &BinaryOperator{Kind: kind, Left: lower(left), Right: lower(right)}
	}

	// Continuing the analysis with the current root node's first (and
	// only relevant) non-terminal child.
	children := cst.NonTerminalChildren()
	return lower(children[0])
}

// matchConstant recognizes a non-terminal with a constant caption and a
// single token child.
func matchConstant(cst *syntax.CSTNode) (*syntax.CSTNode, bool) {
	if _, ok := constantCaptions[cst.Caption()]; !ok {
		return nil, false
	}
	tokens := cst.TokenChildren()
	if len(tokens) != 1 {
		return nil, false
	}
	return tokens[0], true
}

func lowerConstant(leaf *syntax.CSTNode) Node {
	token := leaf.Token
	switch token.Category {
	case syntax.TokenEmptyExpressionMarker:
		return &Empty{}
	case syntax.TokenAnyCharacter:
		return &Constant{Value: syntax.AnyByte, Position: token.Lexeme.Position()}
	default:
		return &Constant{Value: token.Lexeme.Content[0], Position: token.Lexeme.Position()}
	}
}

// matchAnchor recognizes the anchored-expression node: three non-terminal
// children whose middle child is the wrapped expression.
func matchAnchor(cst *syntax.CSTNode) (*syntax.CSTNode, bool) {
	if cst.Caption() != syntax.CaptionAnchoredExpression {
		return nil, false
	}
	children := cst.NonTerminalChildren()
	if len(children) != 3 {
		return nil, false
	}
	return children[1], true
}

// anchorType discerns whether a flanking start-anchor/end-anchor child
// took its explicit alternative or its epsilon alternative.
func anchorType(flank *syntax.CSTNode) AnchorType {
	if flank.HasOnlyEpsilonChild() {
		return Unanchored
	}
	return Anchored
}

// matchUnary recognizes a basic expression whose primed sibling holds a
// quantification.
func matchUnary(cst *syntax.CSTNode) (*syntax.CSTNode, UnaryKind, bool) {
	if cst.Caption() != syntax.CaptionBasicExpression {
		return nil, 0, false
	}
	children := cst.NonTerminalChildren()
	for _, child := range children {
		if child.Caption() != syntax.CaptionBasicExpressionPrime || child.HasOnlyEpsilonChild() {
			continue
		}
		grandchildren := child.NonTerminalChildren()
		if len(grandchildren) == 0 {
			continue
		}
		if kind, ok := quantifierCaptions[grandchildren[0].Caption()]; ok {
			return children[0], kind, true
		}
	}
	return nil, 0, false
}

// matchBinary recognizes a node whose primed sibling has non-epsilon
// children; the sibling's caption determines the operator kind, its last
// non-terminal child becomes the right operand.
func matchBinary(cst *syntax.CSTNode) (left, right *syntax.CSTNode, kind BinaryKind, ok bool) {
	if _, match := binaryCaptions[cst.Caption()]; !match {
		return nil, nil, 0, false
	}
	children := cst.NonTerminalChildren()
	for _, child := range children {
		k, isPrime := operatorKinds[child.Caption()]
		if !isPrime || child.HasOnlyEpsilonChild() {
			continue
		}
		grandchildren := child.NonTerminalChildren()
		if len(grandchildren) == 0 {
			continue
		}
		return children[0], grandchildren[len(grandchildren)-1], k, true
	}
	return nil, nil, 0, false
}
