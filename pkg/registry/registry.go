// Package registry manages a named catalog of compiled models. It keeps an
// in-process cache of immutable models in front of a pluggable document
// store, so services can decode by model name without recompiling tables on
// every request.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/pkg/adapters/memory"
	"github.com/aretw0/lattice/pkg/alphabet"
	"github.com/aretw0/lattice/pkg/markov"
	"github.com/aretw0/lattice/pkg/observability"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/aretw0/lattice/pkg/schema"
)

// DecodeResult is the outcome of decoding one observation sequence.
type DecodeResult struct {
	Model string `json:"model"`
	Path  []int  `json:"path"`

	// States carries the path as human-readable labels when the model
	// declares them.
	States []string `json:"states,omitempty"`
}

// entry pairs a compiled model with its definition and label alphabets.
type entry struct {
	model   *markov.Model
	doc     *schema.Document
	states  *alphabet.Alphabet
	symbols *alphabet.Alphabet
}

func newEntry(doc *schema.Document) (entry, error) {
	model, err := doc.Compile()
	if err != nil {
		return entry{}, err
	}

	// Compile validated the labels, so the alphabets build cleanly.
	states, _ := doc.StateAlphabet()
	symbols, _ := doc.SymbolAlphabet()

	return entry{model: model, doc: doc, states: states, symbols: symbols}, nil
}

// Registry manages the available models.
// Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	models map[string]entry

	store   ports.ModelStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option defines a functional option for configuring the Registry.
type Option func(*Registry)

// WithStore sets the backing document store. Defaults to an in-memory
// store.
func WithStore(store ports.ModelStore) Option {
	return func(r *Registry) {
		r.store = store
	}
}

// WithLogger sets a custom structured logger for the registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics records decode counts, durations and sequence lengths on the
// given instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// New creates a new registry. Without options it caches over an in-memory
// store and logs nowhere.
func New(opts ...Option) *Registry {
	r := &Registry{
		models: make(map[string]entry),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.store == nil {
		r.store = memory.NewStore()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return r
}

// Register validates the document, compiles it and makes the model
// available under its name. The document is written through to the store,
// replacing any previous version.
func (r *Registry) Register(ctx context.Context, doc *schema.Document) error {
	if doc == nil {
		return fmt.Errorf("document is required")
	}

	e, err := newEntry(doc.Clone())
	if err != nil {
		return fmt.Errorf("model %q: %w", doc.Name, err)
	}

	if err := r.store.Save(ctx, e.doc); err != nil {
		return fmt.Errorf("failed to persist model %q: %w", doc.Name, err)
	}

	r.mu.Lock()
	r.models[e.doc.Name] = e
	r.mu.Unlock()

	r.logger.Info("model registered",
		"model", e.doc.Name,
		"states", e.model.NumStates(),
		"symbols", e.model.NumSymbols(),
	)
	return nil
}

// Preload registers every document a library provides. It fails on the
// first document that does not load or compile, leaving earlier models
// registered.
func (r *Registry) Preload(ctx context.Context, lib ports.Library) error {
	names, err := lib.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list library: %w", err)
	}

	for _, name := range names {
		doc, err := lib.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to load model %q: %w", name, err)
		}
		if err := r.Register(ctx, doc); err != nil {
			return err
		}
	}

	r.logger.Info("library preloaded", "models", len(names))
	return nil
}

// Document returns a copy of the stored definition for name.
func (r *Registry) Document(ctx context.Context, name string) (*schema.Document, error) {
	e, err := r.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.doc.Clone(), nil
}

// Model returns the compiled model for name. The model is immutable and may
// be shared freely.
func (r *Registry) Model(ctx context.Context, name string) (*markov.Model, error) {
	e, err := r.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.model, nil
}

// List returns the names of all registered models.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	return r.store.List(ctx)
}

// Remove deletes a model from the registry and its store.
func (r *Registry) Remove(ctx context.Context, name string) error {
	if err := r.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete model %q: %w", name, err)
	}

	r.mu.Lock()
	delete(r.models, name)
	r.mu.Unlock()

	r.logger.Info("model removed", "model", name)
	return nil
}

// Decode runs the named model over an observation sequence.
// Returns markov.ErrModelNotFound if no model has that name.
func (r *Registry) Decode(ctx context.Context, name string, observations []int) (*DecodeResult, error) {
	start := time.Now()

	e, err := r.resolve(ctx, name)
	if err != nil {
		r.metrics.ObserveDecode(name, "error", time.Since(start), len(observations))
		return nil, err
	}

	path, err := lattice.Decode(e.model, observations)
	if err != nil {
		r.metrics.ObserveDecode(name, "error", time.Since(start), len(observations))
		r.logger.Warn("decode failed", "model", name, "error", err)
		return nil, err
	}

	r.metrics.ObserveDecode(name, "ok", time.Since(start), len(observations))
	r.logger.Debug("sequence decoded", "model", name, "length", len(observations))

	result := &DecodeResult{Model: name, Path: path}
	if e.states != nil {
		if labels, err := e.states.Decode(path); err == nil {
			result.States = labels
		}
	}
	return result, nil
}

// DecodeTokens encodes raw tokens through the model's symbol labels and
// decodes the result. A single token that fails the lookup is retried as a
// run of one-character symbols, which lets DNA-style input arrive as one
// compact string.
func (r *Registry) DecodeTokens(ctx context.Context, name string, tokens []string) (*DecodeResult, error) {
	e, err := r.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if e.symbols == nil {
		return nil, fmt.Errorf("model %q has no symbol labels; submit numeric observations instead", name)
	}

	observations, err := encodeTokens(e.symbols, tokens)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", name, err)
	}

	return r.Decode(ctx, name, observations)
}

func encodeTokens(symbols *alphabet.Alphabet, tokens []string) ([]int, error) {
	observations, err := symbols.Encode(tokens)
	if err == nil {
		return observations, nil
	}
	if len(tokens) == 1 {
		if runes, runErr := symbols.EncodeRunes(tokens[0]); runErr == nil {
			return runes, nil
		}
	}
	return nil, err
}

// resolve returns the cached entry for name, hydrating it from the store on
// a miss.
func (r *Registry) resolve(ctx context.Context, name string) (entry, error) {
	r.mu.RLock()
	e, ok := r.models[name]
	r.mu.RUnlock()
	if ok {
		return e, nil
	}

	doc, err := r.store.Load(ctx, name)
	if err != nil {
		return entry{}, err
	}

	e, err = newEntry(doc)
	if err != nil {
		return entry{}, fmt.Errorf("stored model %q is invalid: %w", name, err)
	}

	r.mu.Lock()
	r.models[name] = e
	r.mu.Unlock()

	r.logger.Debug("model hydrated from store", "model", name)
	return e, nil
}
