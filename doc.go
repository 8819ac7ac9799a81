/*
Package lattice is a hidden Markov model toolkit built around a single job: given a sequence of discrete observations, recover the most probable sequence of hidden states.

It separates the model definition (probability tables, validated once at construction) from decoding (a pure maximum a posteriori search) and from the surrounding infrastructure (stores, servers, batch pipelines).

# Concept

A hidden Markov model explains a visible sequence through states you never observe directly. You describe the model with three tables: where chains start (initial), how states follow each other (transition), and what each state tends to emit (emission). The decoder then answers, for any observation sequence, which state path explains it best.

Models are immutable after construction and decoding is deterministic, so any number of goroutines can share one model. The heavier machinery (model registry, HTTP and MCP servers, Redis-backed catalogs) lives in subpackages and is entirely optional: the core never depends on it.

# Key Features

  - Validating Constructor: Dimensions, probability ranges and row sums are checked once; a model that exists is a model that is well-formed.
  - Deterministic Decoding: Log-space scoring with a fixed tie-break makes results reproducible across runs and platforms.
  - Hexagonal Architecture: Storage, transport and presentation are adapters around a dependency-free core.
  - Batch Pipelines: The runner subpackage streams sequences through a decoder with pluggable text and JSON framing.

# Usage

Build a model from its tables and decode a sequence:

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/lattice"
	)

	func main() {
		// Two hidden states, two observable symbols.
		model, err := lattice.New(
			[]float64{0.5, 0.5},
			[][]float64{
				{0.75, 0.25},
				{0.25, 0.75},
			},
			[][]float64{
				{0.5, 0.5},
				{0.25, 0.75},
			},
		)
		if err != nil {
			log.Fatal(err)
		}

		path, err := lattice.Decode(model, []int{0, 0, 1, 1, 1})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(path)
	}

For long-lived services, wrap the model in a Decoder to attach a structured
logger and Prometheus metrics, or use pkg/registry to manage a named catalog
of models behind a store.
*/
package lattice
