package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/lattice/internal/sequence"
)

// TextHandler reads sequences as plain lines or FASTA records and writes
// one result line per sequence. Named records are echoed back with their
// name as a prefix.
type TextHandler struct {
	Reader io.Reader
	Writer io.Writer

	parseOnce sync.Once
	parseErr  error
	records   []sequence.Record
	next      int
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{Reader: r, Writer: w}
}

func (h *TextHandler) Next(ctx context.Context) (*Record, error) {
	// Input is a complete batch, not a stream; parse it once up front so
	// framing errors surface before any sequence is decoded.
	h.parseOnce.Do(func() {
		h.records, h.parseErr = sequence.Parse(h.Reader)
	})
	if h.parseErr != nil {
		return nil, h.parseErr
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.next >= len(h.records) {
		return nil, io.EOF
	}

	rec := h.records[h.next]
	h.next++
	return &Record{ID: rec.ID, Tokens: rec.Tokens}, nil
}

func (h *TextHandler) Write(ctx context.Context, res *Result) error {
	fields := res.States
	if fields == nil {
		fields = make([]string, len(res.Path))
		for i, s := range res.Path {
			fields[i] = strconv.Itoa(s)
		}
	}

	line := strings.Join(fields, " ")
	if res.ID != "" {
		line = res.ID + "\t" + line
	}
	_, err := fmt.Fprintln(h.Writer, line)
	return err
}
