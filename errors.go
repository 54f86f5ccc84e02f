package rex

import (
	"errors"
	"fmt"

	"github.com/coregx/rex/automata"
)

// Core errors.
var (
	// ErrNotCompiled indicates a match was attempted before a
	// successful compile.
	ErrNotCompiled = errors.New("rex: regular expression not compiled")

	// ErrNilInput indicates a nil input was handed to the matcher.
	ErrNilInput = errors.New("rex: input must not be nil")

	// ErrInputNotASCII indicates the input contains a byte outside the
	// 7-bit ASCII range.
	ErrInputNotASCII = errors.New("rex: input must be an ASCII string")

	// ErrTooManyStates indicates subset construction hit the configured
	// state ceiling.
	ErrTooManyStates = automata.ErrTooManyStates
)

// CompileError wraps a compilation failure with the pattern it occurred
// in.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("rex: compiling %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
