package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/pkg/alphabet"
	"github.com/aretw0/lattice/pkg/observability"
)

// Runner drains an IOHandler through a decoder. Each record is one complete
// observation sequence; decode failures are logged and counted but do not
// abort the batch.
type Runner struct {
	decoder *lattice.Decoder
	handler IOHandler
	symbols *alphabet.Alphabet
	states  *alphabet.Alphabet
	logger  *slog.Logger
	stats   *observability.PathStats
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithHandler sets the IO framing. Defaults to text on stdin/stdout.
func WithHandler(h IOHandler) Option {
	return func(r *Runner) {
		r.handler = h
	}
}

// WithSymbols sets the alphabet used to encode record tokens into
// observation symbols. Without it, tokens must be integers.
func WithSymbols(a *alphabet.Alphabet) Option {
	return func(r *Runner) {
		r.symbols = a
	}
}

// WithStates sets the alphabet used to label decoded paths in results.
func WithStates(a *alphabet.Alphabet) Option {
	return func(r *Runner) {
		r.states = a
	}
}

// WithLogger sets a custom structured logger for the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithStats folds every decoded path into the given accumulator, for
// occupancy reports after the batch.
func WithStats(stats *observability.PathStats) Option {
	return func(r *Runner) {
		r.stats = stats
	}
}

// New creates a runner around a configured decoder.
func New(decoder *lattice.Decoder, opts ...Option) (*Runner, error) {
	if decoder == nil {
		return nil, fmt.Errorf("decoder is required")
	}

	r := &Runner{decoder: decoder}
	for _, opt := range opts {
		opt(r)
	}

	if r.handler == nil {
		r.handler = NewTextHandler(nil, nil)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return r, nil
}

// Run decodes every record the handler yields. It returns the first input
// or output error, or a summary error when one or more records failed to
// decode; a fully clean batch returns nil.
func (r *Runner) Run(ctx context.Context) error {
	total := 0
	failed := 0

	for {
		rec, err := r.handler.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		total++

		path, states, err := r.decodeRecord(rec)
		if err != nil {
			failed++
			r.logger.Warn("sequence skipped", "id", rec.ID, "index", total-1, "error", err)
			continue
		}

		if r.stats != nil {
			r.stats.Observe(path)
		}
		if err := r.handler.Write(ctx, &Result{ID: rec.ID, Path: path, States: states}); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	r.logger.Info("batch finished", "sequences", total, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d sequences failed to decode", failed, total)
	}
	return nil
}

func (r *Runner) decodeRecord(rec *Record) ([]int, []string, error) {
	obs, err := r.observations(rec)
	if err != nil {
		return nil, nil, err
	}

	path, err := r.decoder.Decode(obs)
	if err != nil {
		return nil, nil, err
	}

	var states []string
	if r.states != nil {
		if labels, err := r.states.Decode(path); err == nil {
			states = labels
		}
	}
	return path, states, nil
}

// observations turns a record into integer symbols. Ready-made observations
// pass through; tokens go through the symbol alphabet, with a single token
// retried as a run of one-character symbols so DNA-style input can arrive
// as one compact string. Without an alphabet, tokens must be integers.
func (r *Runner) observations(rec *Record) ([]int, error) {
	if rec.Observations != nil {
		return rec.Observations, nil
	}

	if r.symbols == nil {
		obs := make([]int, len(rec.Tokens))
		for i, tok := range rec.Tokens {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("token %q at position %d is not an observation symbol", tok, i)
			}
			obs[i] = v
		}
		return obs, nil
	}

	obs, err := r.symbols.Encode(rec.Tokens)
	if err == nil {
		return obs, nil
	}
	if len(rec.Tokens) == 1 {
		if runes, runErr := r.symbols.EncodeRunes(rec.Tokens[0]); runErr == nil {
			return runes, nil
		}
	}
	return nil, err
}
