// Package schema defines the portable document format for model definitions.
//
// A Document carries the three probability tables of a hidden Markov model
// plus optional state and symbol labels, and serializes to YAML or JSON. It
// is the unit that stores persist, libraries list, and the CLI and servers
// exchange.
//
// Basic usage:
//
//	doc, err := schema.Load("weather.yaml")
//	if err != nil {
//	    // Handle read/parse errors
//	}
//
//	model, err := doc.Compile()
//	if err != nil {
//	    // Handle validation errors
//	}
//
// Validation happens in two layers. Document.Validate checks structure:
// required fields, label counts against table dimensions, label uniqueness.
// Compile additionally runs the model constructor, which enforces the
// probability invariants and reports violations as *markov.ConfigurationError.
// Structural failures are collected into an *AggregateError so a caller can
// present every problem at once:
//
//	if errs := schema.ValidationErrors(err); errs != nil {
//	    for _, e := range errs {
//	        fmt.Println(e)
//	    }
//	}
//
// Labeled documents also expose their labels as alphabets for encoding raw
// token input, see Document.SymbolAlphabet.
package schema
