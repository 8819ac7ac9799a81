package schema

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aretw0/lattice/pkg/markov"
)

func weatherDoc() *Document {
	return &Document{
		Name:        "weather",
		Description: "Two hidden weather states observed through activities.",
		States:      []string{"Sunny", "Rainy"},
		Symbols:     []string{"walk", "shop"},
		Initial:     []float64{0.6, 0.4},
		Transition:  [][]float64{{0.7, 0.3}, {0.4, 0.6}},
		Emission:    [][]float64{{0.8, 0.2}, {0.3, 0.7}},
	}
}

func TestDocumentValidate_Success(t *testing.T) {
	if err := weatherDoc().Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestDocumentValidate_MissingFields(t *testing.T) {
	doc := &Document{}

	err := doc.Validate()
	if err == nil {
		t.Fatal("Validate() should return error for empty document")
	}

	aggr, ok := err.(*AggregateError)
	if !ok {
		t.Fatalf("error should be *AggregateError, got %T", err)
	}
	if len(aggr.Errors) != 4 {
		t.Errorf("Validate() = %d errors, want 4", len(aggr.Errors))
	}

	validErr, ok := aggr.Errors[0].(*ValidationError)
	if !ok {
		t.Fatalf("error should be *ValidationError, got %T", aggr.Errors[0])
	}
	if validErr.Key != "name" {
		t.Errorf("error Key = %q, want name", validErr.Key)
	}
}

func TestDocumentValidate_LabelCountMismatch(t *testing.T) {
	doc := weatherDoc()
	doc.States = []string{"Sunny", "Rainy", "Foggy"}

	err := doc.Validate()
	if err == nil {
		t.Fatal("Validate() should reject 3 labels for 2 states")
	}

	errs := ValidationErrors(err)
	if len(errs) != 1 {
		t.Fatalf("Validate() = %d errors, want 1", len(errs))
	}
	validErr := errs[0].(*ValidationError)
	if validErr.Key != "states" {
		t.Errorf("error Key = %q, want states", validErr.Key)
	}
}

func TestDocumentValidate_DuplicateSymbols(t *testing.T) {
	doc := weatherDoc()
	doc.Symbols = []string{"walk", "walk"}

	err := doc.Validate()
	if err == nil {
		t.Fatal("Validate() should reject duplicate symbol labels")
	}
	validErr := ValidationErrors(err)[0].(*ValidationError)
	if validErr.Key != "symbols" {
		t.Errorf("error Key = %q, want symbols", validErr.Key)
	}
}

func TestDocumentCompile(t *testing.T) {
	model, err := weatherDoc().Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v, want nil", err)
	}
	if model.NumStates() != 2 || model.NumSymbols() != 2 {
		t.Errorf("Compile() = %dx%d model, want 2x2", model.NumStates(), model.NumSymbols())
	}
}

func TestDocumentCompile_BadProbabilities(t *testing.T) {
	doc := weatherDoc()
	doc.Initial = []float64{0.3, 0.3}

	_, err := doc.Compile()
	if err == nil {
		t.Fatal("Compile() should reject an initial vector that sums to 0.6")
	}

	var confErr *markov.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("error should be *markov.ConfigurationError, got %T", err)
	}
	if confErr.Table != "initial" {
		t.Errorf("error Table = %q, want initial", confErr.Table)
	}
}

func TestDocumentAlphabets(t *testing.T) {
	doc := weatherDoc()

	symbols, err := doc.SymbolAlphabet()
	if err != nil {
		t.Fatalf("SymbolAlphabet() error = %v", err)
	}
	if got := symbols.Tokens(); !reflect.DeepEqual(got, []string{"walk", "shop"}) {
		t.Errorf("SymbolAlphabet() tokens = %v", got)
	}

	doc.States = nil
	states, err := doc.StateAlphabet()
	if err != nil {
		t.Fatalf("StateAlphabet() error = %v", err)
	}
	if states != nil {
		t.Errorf("StateAlphabet() = %v, want nil for unlabeled document", states)
	}
}

func TestFromModel_RoundTrip(t *testing.T) {
	doc := weatherDoc()
	model, err := doc.Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	out := FromModel(doc.Name, model, doc.States, doc.Symbols)
	if !reflect.DeepEqual(out.Initial, doc.Initial) ||
		!reflect.DeepEqual(out.Transition, doc.Transition) ||
		!reflect.DeepEqual(out.Emission, doc.Emission) {
		t.Errorf("FromModel() tables = %+v, want the compiled document's", out)
	}
	if _, err := out.Compile(); err != nil {
		t.Errorf("FromModel() output should compile, got %v", err)
	}
}

func TestDecodeMetadata(t *testing.T) {
	doc := weatherDoc()
	doc.Metadata = map[string]any{
		"source":  "field-study",
		"samples": 1200,
		"tags":    []any{"demo", "weather"},
	}

	var meta struct {
		Source  string   `mapstructure:"source"`
		Samples int      `mapstructure:"samples"`
		Tags    []string `mapstructure:"tags"`
	}
	if err := doc.DecodeMetadata(&meta); err != nil {
		t.Fatalf("DecodeMetadata() error = %v", err)
	}
	if meta.Source != "field-study" || meta.Samples != 1200 {
		t.Errorf("DecodeMetadata() = %+v, want source and samples filled", meta)
	}
	if !reflect.DeepEqual(meta.Tags, []string{"demo", "weather"}) {
		t.Errorf("DecodeMetadata() tags = %v", meta.Tags)
	}

	// A document without metadata leaves the target untouched.
	if err := weatherDoc().DecodeMetadata(&meta); err != nil {
		t.Errorf("DecodeMetadata() on empty metadata error = %v", err)
	}
	if meta.Source != "field-study" {
		t.Error("DecodeMetadata() on empty metadata should not zero the target")
	}
}

func TestDecodeMetadata_TypeMismatch(t *testing.T) {
	doc := weatherDoc()
	doc.Metadata = map[string]any{"samples": []any{"not", "a", "number"}}

	var meta struct {
		Samples int `mapstructure:"samples"`
	}
	if err := doc.DecodeMetadata(&meta); err == nil {
		t.Error("DecodeMetadata() should reject a slice where an int is expected")
	}
}

func TestDocumentClone(t *testing.T) {
	doc := weatherDoc()
	clone := doc.Clone()

	clone.Initial[0] = 0.99
	clone.Transition[1][1] = 0.99
	clone.States[0] = "mutated"

	if doc.Initial[0] != 0.6 || doc.Transition[1][1] != 0.6 || doc.States[0] != "Sunny" {
		t.Error("Clone() must not share backing arrays with the original")
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc := weatherDoc()

	for _, name := range []string{"weather.yaml", "weather.json"} {
		path := filepath.Join(dir, name)
		if err := Save(doc, path); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}

		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		if !reflect.DeepEqual(doc, loaded) {
			t.Errorf("Load(%s) = %+v, want %+v", name, loaded, doc)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("initial: [not: valid")); err == nil {
		t.Error("Parse() should fail on malformed YAML")
	}
	if _, err := ParseJSON([]byte("{")); err == nil {
		t.Error("ParseJSON() should fail on malformed JSON")
	}
}
