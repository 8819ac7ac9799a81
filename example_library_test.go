package lattice_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aretw0/lattice/pkg/registry"
	"github.com/aretw0/lattice/pkg/schema"
)

// Register a labeled model and decode raw tokens by name: the registry
// encodes the symbols and labels the resulting path.
func Example_registry() {
	ctx := context.Background()

	reg := registry.New()
	err := reg.Register(ctx, &schema.Document{
		Name:       "coins",
		States:     []string{"Fair", "Loaded"},
		Symbols:    []string{"H", "T"},
		Initial:    []float64{0.5, 0.5},
		Transition: [][]float64{{0.75, 0.25}, {0.25, 0.75}},
		Emission:   [][]float64{{0.5, 0.5}, {0.25, 0.75}},
	})
	if err != nil {
		log.Fatal(err)
	}

	result, err := reg.DecodeTokens(ctx, "coins", []string{"H", "H", "T", "T", "T"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(strings.Join(result.States, " "))
	// Output: Fair Fair Loaded Loaded Loaded
}
