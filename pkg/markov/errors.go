package markov

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned when a model name cannot be found in a store
// or library.
var ErrModelNotFound = errors.New("model not found")

// ConfigurationError describes why a model definition was rejected at
// construction time. Table names the offending probability table ("initial",
// "transition" or "emission"). Row and Col locate the violation when it is
// tied to a specific row or cell; -1 means not applicable (the initial vector
// reports its cells by Col only). Value carries the offending probability or
// the computed row sum, nil for pure dimension mismatches.
type ConfigurationError struct {
	Table  string
	Row    int
	Col    int
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	loc := e.Table
	switch {
	case e.Row >= 0 && e.Col >= 0:
		loc = fmt.Sprintf("%s[%d][%d]", e.Table, e.Row, e.Col)
	case e.Row < 0 && e.Col >= 0:
		loc = fmt.Sprintf("%s[%d]", e.Table, e.Col)
	case e.Row >= 0:
		loc = fmt.Sprintf("%s row %d", e.Table, e.Row)
	}
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", loc, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %v)", loc, e.Reason, e.Value)
}

// DecodeError reports an observation symbol outside the model's alphabet.
// Symbol is the offending value, Position its index within the observation
// sequence, and Symbols the alphabet size M of the model it was checked
// against.
type DecodeError struct {
	Position int
	Symbol   int
	Symbols  int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("symbol %d at position %d is outside the alphabet [0, %d)", e.Symbol, e.Position, e.Symbols)
}
