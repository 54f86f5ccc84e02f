package syntax

// Parser error discrimination. When no parsing-table entry exists, the
// prediction queue is exhausted, or the input ran out without being
// accepted, the token stream is scanned backwards for the construct that
// best explains the failure: depending on the failing token's category,
// a fixed list of candidate categories (brackets, parentheses, operators,
// escapes, anchors) is tried in order, and the nearest preceding token of
// the first category found is reported. Brackets and parentheses are not
// checked for balance. Without a candidate, the failing token itself is
// reported.

func (p *parser) reportError(position int, tokens []*Token, entryFound bool, head Symbol) error {
	isLastToken := position == len(tokens)
	if entryFound && head != nil && !isLastToken {
		return nil
	}

	starting := position
	if isLastToken {
		starting--
	}
	current := tokens[starting]

	var invalid *Token
	code := ParseErrUndefined

	var additional []TokenCategory
	switch current.Category {
	case TokenEndOfInputMarker:
		additional = []TokenCategory{
			TokenOpenParenthesis,
			TokenCloseParenthesis,
			TokenOpenBracket,
			TokenAlternationOperator,
			TokenMetacharacterEscape,
			TokenEndAnchor,
		}
	case TokenCloseParenthesis:
		additional = []TokenCategory{TokenAlternationOperator}
	case TokenCloseBracket:
		if found, foundPos, ok := findBackwards(tokens, TokenOpenBracket, starting); ok {
			if position-foundPos == 1 {
				invalid = found
				code = ParseErrEmptyBracketExpression
			}
		}
		if invalid == nil {
			additional = []TokenCategory{TokenRangeOperator}
		}
	case TokenOrdinaryCharacter:
		additional = []TokenCategory{TokenCloseParenthesis, TokenEndAnchor}
	}

	if invalid == nil {
		for _, category := range additional {
			found, _, ok := findBackwards(tokens, category, starting)
			if !ok {
				continue
			}
			invalid = found
			code = categoryError(category)
			break
		}
	}

	if invalid == nil {
		invalid = current
		code = categoryError(current.Category)
	}

	return &ParseError{Code: code, Position: invalid.Lexeme.Position()}
}

// categoryError maps a token category to the parser error it indicates.
func categoryError(category TokenCategory) ParseErrorCode {
	switch category {
	case TokenAlternationOperator:
		return ParseErrDanglingAlternationOperator
	case TokenRangeOperator:
		return ParseErrDanglingRangeOperator
	case TokenMetacharacterEscape:
		return ParseErrDanglingMetacharacterEscape
	case TokenOpenParenthesis:
		return ParseErrUnmatchedOpenParenthesis
	case TokenCloseParenthesis:
		return ParseErrUnmatchedCloseParenthesis
	case TokenOpenBracket:
		return ParseErrUnmatchedOpenBracket
	case TokenEndAnchor:
		return ParseErrUnexpectedEndAnchor
	case TokenStartAnchor:
		return ParseErrUnexpectedStartAnchor
	case TokenEmptyExpressionMarker:
		return ParseErrUnexpectedEmptyExpression
	case TokenStarQuantifier, TokenPlusQuantifier, TokenQuestionMarkQuantifier:
		return ParseErrDanglingQuantificationOperator
	default:
		return ParseErrUnexpectedCharacter
	}
}

// findBackwards scans the token stream backwards from the starting
// position for the first token of the given category.
func findBackwards(tokens []*Token, category TokenCategory, starting int) (*Token, int, bool) {
	for i := starting; i >= 0; i-- {
		if tokens[i].Category == category {
			return tokens[i], i, true
		}
	}
	return nil, 0, false
}
