package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
	"github.com/aretw0/lattice/pkg/schema"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold a model library with example definitions",
	Long:  `Creates a model library directory seeded with two working examples: the classic occasionally dishonest casino and a small DNA region model. Both decode out of the box.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "models"
		if len(args) > 0 {
			dir = args[0]
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create %q: %w", dir, err)
		}

		for _, doc := range exampleDocuments() {
			path := filepath.Join(dir, doc.Name+".yaml")
			if _, err := os.Stat(path); err == nil {
				cli.PrintSystemMessage("Skipping %s (already exists).", path)
				continue
			}
			if err := schema.Save(doc, path); err != nil {
				return err
			}
			cli.PrintSystemMessage("Created %s.", path)
		}

		cli.PrintSystemMessage("Try: lattice decode --models %s --model coins H H T T T", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func exampleDocuments() []*schema.Document {
	return []*schema.Document{
		{
			Name:        "coins",
			Description: "Occasionally dishonest casino: a fair coin that sometimes swaps for a tails-heavy one.",
			States:      []string{"Fair", "Loaded"},
			Symbols:     []string{"H", "T"},
			Initial:     []float64{0.5, 0.5},
			Transition:  [][]float64{{0.75, 0.25}, {0.25, 0.75}},
			Emission:    [][]float64{{0.5, 0.5}, {0.25, 0.75}},
		},
		{
			Name:        "dna",
			Description: "Two-state genomic model separating GC-rich regions from AT-rich background.",
			States:      []string{"GC-rich", "AT-rich"},
			Symbols:     []string{"A", "C", "G", "T"},
			Initial:     []float64{0.5, 0.5},
			Transition:  [][]float64{{0.9, 0.1}, {0.1, 0.9}},
			Emission: [][]float64{
				{0.1, 0.4, 0.4, 0.1},
				{0.4, 0.1, 0.1, 0.4},
			},
		},
	}
}
