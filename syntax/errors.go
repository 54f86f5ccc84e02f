package syntax

import (
	"errors"
	"fmt"
)

// Common lexer errors.
var (
	// ErrNilPattern indicates a nil pattern was handed to the lexer.
	ErrNilPattern = errors.New("pattern must not be nil")

	// ErrPatternNotASCII indicates the pattern contains a byte outside
	// the 7-bit ASCII range.
	ErrPatternNotASCII = errors.New("pattern must be an ASCII string")
)

// ParseErrorCode discriminates the syntax errors the parser reports.
type ParseErrorCode uint8

const (
	ParseErrUndefined ParseErrorCode = iota
	ParseErrUnexpectedCharacter
	ParseErrDanglingAlternationOperator
	ParseErrDanglingQuantificationOperator
	ParseErrDanglingRangeOperator
	ParseErrDanglingMetacharacterEscape
	ParseErrUnmatchedOpenParenthesis
	ParseErrUnmatchedCloseParenthesis
	ParseErrUnmatchedOpenBracket
	ParseErrEmptyBracketExpression
	ParseErrUnexpectedStartAnchor
	ParseErrUnexpectedEndAnchor
	ParseErrUnexpectedEmptyExpression
)

var parseErrorReasons = map[ParseErrorCode]string{
	ParseErrUnexpectedCharacter:            "unexpected character",
	ParseErrDanglingAlternationOperator:    "dangling alternation operator",
	ParseErrDanglingQuantificationOperator: "dangling quantification operator",
	ParseErrDanglingRangeOperator:          "dangling range operator",
	ParseErrDanglingMetacharacterEscape:    "dangling escape character",
	ParseErrUnmatchedOpenParenthesis:       "unmatched open parenthesis",
	ParseErrUnmatchedCloseParenthesis:      "unmatched close parenthesis",
	ParseErrUnmatchedOpenBracket:           "unmatched open bracket",
	ParseErrEmptyBracketExpression:         "empty bracket expressions are not allowed",
	ParseErrUnexpectedStartAnchor:          "unexpected start anchor",
	ParseErrUnexpectedEndAnchor:            "unexpected end anchor",
	ParseErrUnexpectedEmptyExpression:      "unexpected empty expression",
}

// ParseError is a syntax error located at a pattern position. Position is
// the midpoint of the offending lexeme's range, 1-based against the
// normalized pattern.
type ParseError struct {
	Code     ParseErrorCode
	Position int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	reason, ok := parseErrorReasons[e.Code]
	if !ok {
		reason = "syntax error"
	}
	return fmt.Sprintf("%s (position - %d)", reason, e.Position)
}

// Is reports code equality so callers can match with errors.Is against a
// bare &ParseError{Code: ...}.
func (e *ParseError) Is(target error) bool {
	var pe *ParseError
	if !errors.As(target, &pe) {
		return false
	}
	return pe.Code == e.Code
}
