package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// JSONHandler exchanges line-delimited JSON: one record object in, one
// result object out. A record carries either "sequence" (tokens, or one
// compact string) or "observations" (integer symbols).
type JSONHandler struct {
	Writer  io.Writer
	Decoder *json.Decoder
	Encoder *json.Encoder

	line int
}

type jsonRecord struct {
	ID           string          `json:"id,omitempty"`
	Sequence     json.RawMessage `json:"sequence,omitempty"`
	Observations []int           `json:"observations,omitempty"`
}

// NewJSONHandler creates a handler for JSON-lines IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Decoder: json.NewDecoder(r),
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Next(ctx context.Context) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw jsonRecord
	if err := h.Decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("record %d: %w", h.line+1, err)
	}
	h.line++

	rec := &Record{ID: raw.ID, Observations: raw.Observations}
	if len(raw.Sequence) > 0 {
		tokens, err := decodeSequenceField(raw.Sequence)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", h.line, err)
		}
		rec.Tokens = tokens
	}
	return rec, nil
}

func (h *JSONHandler) Write(ctx context.Context, res *Result) error {
	return h.Encoder.Encode(res)
}

// decodeSequenceField accepts both ["A","T"] and "AT HT"-style values for
// the sequence field.
func decodeSequenceField(raw json.RawMessage) ([]string, error) {
	var tokens []string
	if err := json.Unmarshal(raw, &tokens); err == nil {
		return tokens, nil
	}

	var compact string
	if err := json.Unmarshal(raw, &compact); err == nil {
		fields := strings.Fields(compact)
		if len(fields) == 0 {
			return nil, fmt.Errorf("sequence is empty")
		}
		return fields, nil
	}

	return nil, fmt.Errorf("sequence must be a string or an array of strings")
}
