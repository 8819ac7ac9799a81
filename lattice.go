package lattice

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/lattice/internal/viterbi"
	"github.com/aretw0/lattice/pkg/markov"
	"github.com/aretw0/lattice/pkg/observability"
	"github.com/aretw0/lattice/pkg/schema"
)

// Aliases for the core types, so casual users can import the root package
// alone.
type (
	Model              = markov.Model
	Document           = schema.Document
	ConfigurationError = markov.ConfigurationError
	DecodeError        = markov.DecodeError
)

// ErrModelNotFound is returned when a model name cannot be found in a store
// or library. Alias of markov.ErrModelNotFound.
var ErrModelNotFound = markov.ErrModelNotFound

// New builds a validated hidden Markov model from the three probability
// tables. It is the root-level alias for markov.New so small programs can
// depend on a single package.
func New(initial []float64, transition, emission [][]float64) (*markov.Model, error) {
	return markov.New(initial, transition, emission)
}

// Decode returns the most probable hidden-state path for the observation
// sequence under the model. See Decoder for an instrumented variant.
func Decode(model *markov.Model, observations []int) ([]int, error) {
	return viterbi.Decode(model, observations)
}

// Decoder is the high-level entry point for repeated decoding against one
// model. It wraps the decoding core and carries a structured logger and
// optional Prometheus instruments. Safe for concurrent use.
type Decoder struct {
	model   *markov.Model
	logger  *slog.Logger
	metrics *observability.Metrics
	name    string
}

// Option defines a functional option for configuring the Decoder.
type Option func(*Decoder)

// WithLogger sets a custom structured logger for the decoder.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithMetrics records decode counts, durations and sequence lengths on the
// given instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Decoder) {
		d.metrics = m
	}
}

// WithName labels log records and metrics with a model name.
func WithName(name string) Option {
	return func(d *Decoder) {
		d.name = name
	}
}

// NewDecoder binds a model into a reusable decoder.
func NewDecoder(model *markov.Model, opts ...Option) (*Decoder, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}

	d := &Decoder{model: model}
	for _, opt := range opts {
		opt(d)
	}

	// Ensure logger is initialized so instrumented paths never see nil.
	if d.logger == nil {
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if d.name != "" {
		d.logger = d.logger.With("model", d.name)
	}

	return d, nil
}

// Decode runs the decoder on one observation sequence.
func (d *Decoder) Decode(observations []int) ([]int, error) {
	start := time.Now()

	path, err := viterbi.Decode(d.model, observations)
	if err != nil {
		d.metrics.ObserveDecode(d.name, "error", time.Since(start), len(observations))
		d.logger.Warn("decode failed", "error", err)
		return nil, err
	}

	d.metrics.ObserveDecode(d.name, "ok", time.Since(start), len(observations))
	d.logger.Debug("sequence decoded", "length", len(observations))
	return path, nil
}

// Model returns the underlying immutable model.
func (d *Decoder) Model() *markov.Model {
	return d.model
}
