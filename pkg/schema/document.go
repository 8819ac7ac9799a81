package schema

import (
	"fmt"

	"github.com/aretw0/lattice/pkg/alphabet"
	"github.com/aretw0/lattice/pkg/markov"
)

// Document is the portable definition of a hidden Markov model. It carries
// the probability tables together with optional human-readable labels for
// states and observation symbols, and round-trips through YAML and JSON.
//
// A Document is plain data: mutate it freely, then Compile it into an
// immutable markov.Model once it is final.
type Document struct {
	// Name identifies the model in stores and libraries.
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// States and Symbols label the rows and columns of the tables below.
	// Both are optional; when present their length must match the table
	// dimensions. Symbol labels let raw token input be encoded without a
	// separate mapping step.
	States  []string `json:"states,omitempty" yaml:"states,omitempty"`
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`

	Initial    []float64   `json:"initial" yaml:"initial"`
	Transition [][]float64 `json:"transition" yaml:"transition"`
	Emission   [][]float64 `json:"emission" yaml:"emission"`

	// Metadata allows for extensible key-value pairs.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks the document's structure: required fields, label counts
// against table dimensions, and label uniqueness. It does not check the
// probability values themselves; Compile does that through the model
// constructor. All failures are collected into an *AggregateError.
func (d *Document) Validate() error {
	var errs []error

	if d.Name == "" {
		errs = append(errs, &ValidationError{Key: "name", Reason: "required"})
	}
	if len(d.Initial) == 0 {
		errs = append(errs, &ValidationError{Key: "initial", Reason: "required"})
	}
	if len(d.Transition) == 0 {
		errs = append(errs, &ValidationError{Key: "transition", Reason: "required"})
	}
	if len(d.Emission) == 0 {
		errs = append(errs, &ValidationError{Key: "emission", Reason: "required"})
	}

	if len(d.States) > 0 {
		if len(d.Initial) > 0 && len(d.States) != len(d.Initial) {
			errs = append(errs, &ValidationError{
				Key:    "states",
				Reason: fmt.Sprintf("%d labels for %d states", len(d.States), len(d.Initial)),
				Value:  d.States,
			})
		}
		if _, err := alphabet.New(d.States...); err != nil {
			errs = append(errs, &ValidationError{Key: "states", Reason: err.Error(), Value: d.States})
		}
	}
	if len(d.Symbols) > 0 {
		if len(d.Emission) > 0 && len(d.Symbols) != len(d.Emission[0]) {
			errs = append(errs, &ValidationError{
				Key:    "symbols",
				Reason: fmt.Sprintf("%d labels for %d observation symbols", len(d.Symbols), len(d.Emission[0])),
				Value:  d.Symbols,
			})
		}
		if _, err := alphabet.New(d.Symbols...); err != nil {
			errs = append(errs, &ValidationError{Key: "symbols", Reason: err.Error(), Value: d.Symbols})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Compile validates the document and builds the immutable model from its
// probability tables. Table-level violations surface as a
// *markov.ConfigurationError.
func (d *Document) Compile() (*markov.Model, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return markov.New(d.Initial, d.Transition, d.Emission)
}

// StateAlphabet returns the state labels as an Alphabet, or nil when the
// document does not label its states.
func (d *Document) StateAlphabet() (*alphabet.Alphabet, error) {
	if len(d.States) == 0 {
		return nil, nil
	}
	return alphabet.New(d.States...)
}

// SymbolAlphabet returns the symbol labels as an Alphabet, or nil when the
// document does not label its symbols.
func (d *Document) SymbolAlphabet() (*alphabet.Alphabet, error) {
	if len(d.Symbols) == 0 {
		return nil, nil
	}
	return alphabet.New(d.Symbols...)
}

// FromModel builds a Document from a compiled model, attaching optional
// state and symbol labels. This is the export direction: Compile and
// FromModel round-trip a definition through its immutable form.
func FromModel(name string, model *markov.Model, states, symbols []string) *Document {
	return &Document{
		Name:       name,
		States:     append([]string(nil), states...),
		Symbols:    append([]string(nil), symbols...),
		Initial:    model.InitialVector(),
		Transition: model.TransitionMatrix(),
		Emission:   model.EmissionMatrix(),
	}
}

// Clone returns a deep copy of the document. Metadata values are copied by
// reference.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.States = append([]string(nil), d.States...)
	out.Symbols = append([]string(nil), d.Symbols...)
	out.Initial = append([]float64(nil), d.Initial...)
	out.Transition = cloneMatrix(d.Transition)
	out.Emission = cloneMatrix(d.Emission)
	if d.Metadata != nil {
		out.Metadata = make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			out.Metadata[k] = v
		}
	}
	return &out
}

func cloneMatrix(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
