// Package validator performs deep checks on model definitions, beyond what
// compilation enforces: structural soundness, metadata shape, and warnings
// about degenerate topologies such as absorbing or unreachable states.
package validator

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/lattice/pkg/ports"
	"github.com/aretw0/lattice/pkg/schema"
)

// Report collects the findings for one document. Errors make the model
// unusable; warnings flag topologies that decode but rarely make sense.
type Report struct {
	Name     string
	Errors   []string
	Warnings []string
}

// OK reports whether the document passed without errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Option configures a validation run.
type Option func(*options)

type options struct {
	metadataSchema schema.Schema
}

// WithMetadataSchema additionally checks the document's metadata against the
// given schema.
func WithMetadataSchema(s schema.Schema) Option {
	return func(o *options) {
		o.metadataSchema = s
	}
}

// ValidateDocument runs every check against one document.
func ValidateDocument(doc *schema.Document, opts ...Option) *Report {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	report := &Report{Name: doc.Name}

	if err := doc.Validate(); err != nil {
		report.Errors = append(report.Errors, flatten(err)...)
	}
	if _, err := doc.Compile(); err != nil {
		// Validate already reported structural failures; only table-level
		// rejections add information here.
		if msgs := flatten(err); len(report.Errors) == 0 {
			report.Errors = append(report.Errors, msgs...)
		}
	}

	if o.metadataSchema != nil {
		if err := doc.ValidateMetadata(o.metadataSchema); err != nil {
			report.Errors = append(report.Errors, flatten(err)...)
		}
	}

	if report.OK() {
		report.Warnings = append(report.Warnings, absorbingStates(doc)...)
		report.Warnings = append(report.Warnings, unreachableStates(doc)...)
	}

	return report
}

// ValidateLibrary validates every document a library provides, in name
// order. Documents that fail to load get a single-error report.
func ValidateLibrary(ctx context.Context, lib ports.Library, opts ...Option) ([]*Report, error) {
	names, err := lib.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	sort.Strings(names)

	reports := make([]*Report, 0, len(names))
	for _, name := range names {
		doc, err := lib.Get(ctx, name)
		if err != nil {
			reports = append(reports, &Report{
				Name:   name,
				Errors: []string{fmt.Sprintf("failed to load: %v", err)},
			})
			continue
		}
		reports = append(reports, ValidateDocument(doc, opts...))
	}
	return reports, nil
}

// flatten expands an aggregate into its member messages so reports read one
// finding per line.
func flatten(err error) []string {
	if agg, ok := err.(*schema.AggregateError); ok {
		msgs := make([]string, len(agg.Errors))
		for i, e := range agg.Errors {
			msgs[i] = e.Error()
		}
		return msgs
	}
	return []string{err.Error()}
}

// absorbingStates warns about states with a probability-1 self-loop: once
// entered, the decoder can never leave them. A single-state model is
// trivially absorbing and not worth flagging.
func absorbingStates(doc *schema.Document) []string {
	if len(doc.Transition) <= 1 {
		return nil
	}
	var warnings []string
	for i, row := range doc.Transition {
		if i < len(row) && row[i] == 1 {
			warnings = append(warnings, fmt.Sprintf("state %s is absorbing: its self-transition probability is 1", stateLabel(doc, i)))
		}
	}
	return warnings
}

// unreachableStates warns about states the decoder can never visit: not
// startable (zero initial probability) and not reachable from any startable
// state through positive transitions.
func unreachableStates(doc *schema.Document) []string {
	n := len(doc.Initial)
	if n <= 1 {
		return nil
	}

	reachable := make([]bool, n)
	var queue []int
	for i, p := range doc.Initial {
		if p > 0 {
			reachable[i] = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]
		for to, p := range doc.Transition[from] {
			if p > 0 && !reachable[to] {
				reachable[to] = true
				queue = append(queue, to)
			}
		}
	}

	var warnings []string
	for i, ok := range reachable {
		if !ok {
			warnings = append(warnings, fmt.Sprintf("state %s is unreachable: zero initial probability and no positive transition leads to it", stateLabel(doc, i)))
		}
	}
	return warnings
}

func stateLabel(doc *schema.Document, i int) string {
	if i < len(doc.States) {
		return fmt.Sprintf("%q", doc.States[i])
	}
	return fmt.Sprintf("#%d", i)
}
