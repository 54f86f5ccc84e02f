package rex

import "fmt"

// Config controls compilation behavior.
//
// Example:
//
//	config := rex.DefaultConfig()
//	config.MaxDFAStates = 50000
//	re, err := rex.CompileWithConfig("(a|b)*c", config)
type Config struct {
	// MaxDFAStates caps the number of states subset construction may
	// create. Construction is worst-case exponential in NFA states;
	// exceeding the cap fails compilation with ErrTooManyStates instead
	// of hanging.
	// Default: 10000
	MaxDFAStates int

	// EnablePrefilter enables literal-based candidate skipping in the
	// matcher. Prefiltering never changes the match list; it is applied
	// only when provably safe (unanchored start, no empty match, complete
	// prefix extraction).
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the minimum length of an extracted literal for
	// the prefilter to be worth using. Shorter literals have too many
	// false candidates.
	// Default: 1
	MinLiteralLen int

	// MaxLiterals limits the number of literals extracted for
	// prefiltering.
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates:    10000,
		EnablePrefilter: true,
		MinLiteralLen:   1,
		MaxLiterals:     64,
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.MaxDFAStates < 1 || c.MaxDFAStates > 1_000_000 {
		return fmt.Errorf("rex: MaxDFAStates must be in [1, 1000000], got %d", c.MaxDFAStates)
	}
	if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
		return fmt.Errorf("rex: MinLiteralLen must be in [1, 64], got %d", c.MinLiteralLen)
	}
	if c.MaxLiterals < 1 || c.MaxLiterals > 1024 {
		return fmt.Errorf("rex: MaxLiterals must be in [1, 1024], got %d", c.MaxLiterals)
	}
	return nil
}
