package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/internal/cli"
	"github.com/aretw0/lattice/pkg/observability"
	"github.com/aretw0/lattice/pkg/runner"
	"github.com/aretw0/lattice/pkg/schema"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [sequence...]",
	Short: "Decode observation sequences into hidden state paths",
	Long: `Decodes observation sequences with a hidden Markov model and prints the
most likely hidden state path for each.

A sequence can be passed inline as arguments, read from a file with --input,
or piped on stdin. Input may be plain lines of tokens or FASTA-style records;
with --format json, one JSON object per line.`,
	Example: `  lattice decode --model coins.yaml H H T T T
  lattice decode --model dna.yaml --input reads.fa --stats
  cat sequences.jsonl | lattice decode --model coins.yaml --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		modelRef, _ := cmd.Flags().GetString("model")
		libraryDir, _ := cmd.Flags().GetString("models")
		format, _ := cmd.Flags().GetString("format")
		inputPath, _ := cmd.Flags().GetString("input")
		withStats, _ := cmd.Flags().GetBool("stats")

		logger := cli.CreateLogger(debug)

		doc, err := resolveDocument(cmd.Context(), modelRef, libraryDir)
		if err != nil {
			return err
		}

		model, err := doc.Compile()
		if err != nil {
			return fmt.Errorf("model %q: %w", doc.Name, err)
		}

		decoder, err := lattice.NewDecoder(model,
			lattice.WithLogger(logger),
			lattice.WithName(doc.Name),
		)
		if err != nil {
			return err
		}

		input, cleanup, err := openInput(args, inputPath)
		if err != nil {
			return err
		}
		defer cleanup()

		var handler runner.IOHandler
		switch format {
		case "text":
			handler = runner.NewTextHandler(input, os.Stdout)
		case "json":
			handler = runner.NewJSONHandler(input, os.Stdout)
		default:
			return fmt.Errorf("unknown format %q (supported: text, json)", format)
		}

		opts := []runner.Option{
			runner.WithHandler(handler),
			runner.WithLogger(logger),
		}
		if symbols, err := doc.SymbolAlphabet(); err == nil && symbols != nil {
			opts = append(opts, runner.WithSymbols(symbols))
		}
		if states, err := doc.StateAlphabet(); err == nil && states != nil {
			opts = append(opts, runner.WithStates(states))
		}

		var stats *observability.PathStats
		if withStats {
			stats = observability.NewPathStats(model.NumStates())
			opts = append(opts, runner.WithStats(stats))
		}

		r, err := runner.New(decoder, opts...)
		if err != nil {
			return err
		}

		runErr := r.Run(cmd.Context())
		if stats != nil {
			printStats(doc, stats)
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("model", "m", "", "Model definition file, or model name when --models is set")
	decodeCmd.Flags().String("models", "", "Model library directory to resolve --model against")
	decodeCmd.Flags().StringP("input", "i", "", "Read sequences from this file instead of stdin")
	decodeCmd.Flags().StringP("format", "f", "text", "Input/output framing: 'text' or 'json'")
	decodeCmd.Flags().Bool("stats", false, "Print state occupancy statistics after the batch")
	_ = decodeCmd.MarkFlagRequired("model")
}

// resolveDocument loads the model definition either from a library directory
// or directly from a file.
func resolveDocument(ctx context.Context, modelRef, libraryDir string) (*schema.Document, error) {
	if libraryDir != "" {
		lib, err := cli.OpenLibrary(libraryDir)
		if err != nil {
			return nil, err
		}
		doc, err := lib.Get(ctx, modelRef)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", modelRef, err)
		}
		return doc, nil
	}
	return cli.LoadDocument(modelRef)
}

func openInput(args []string, inputPath string) (io.Reader, func(), error) {
	if len(args) > 0 {
		return strings.NewReader(strings.Join(args, " ")), func() {}, nil
	}
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open input: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	return os.Stdin, func() {}, nil
}

// printStats reports occupancy to stderr so the decoded paths on stdout stay
// pipeable.
func printStats(doc *schema.Document, stats *observability.PathStats) {
	fmt.Fprintf(os.Stderr, "sequences: %d, steps: %d, switches: %d\n",
		stats.Sequences, stats.Length, stats.Switches)
	for i, count := range stats.Counts {
		label := fmt.Sprintf("state %d", i)
		if i < len(doc.States) {
			label = doc.States[i]
		}
		fmt.Fprintf(os.Stderr, "  %s: %d (%.1f%%)\n", label, count, stats.Fraction(i)*100)
	}
}
