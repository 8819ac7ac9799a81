package runner

import "context"

// Record is one observation sequence queued for decoding. Either Tokens or
// Observations is set: Tokens carry raw symbols still to be encoded through
// the model's alphabet, Observations carry ready integer symbols.
type Record struct {
	ID           string
	Tokens       []string
	Observations []int
}

// Result is the decoded outcome for one record. States carries the path as
// labels when the model declares them.
type Result struct {
	ID     string   `json:"id,omitempty"`
	Path   []int    `json:"path"`
	States []string `json:"states,omitempty"`
}

// IOHandler defines the framing strategy for a batch: how records are read
// and how results are written. This allows switching between Text (CLI) and
// JSON (structured) modes.
type IOHandler interface {
	// Next returns the next record, or io.EOF when the input is drained.
	Next(ctx context.Context) (*Record, error)

	// Write emits one decode result.
	Write(ctx context.Context, res *Result) error
}
