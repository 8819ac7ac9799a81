package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
	"github.com/aretw0/lattice/internal/validator"
	"github.com/aretw0/lattice/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check model definitions for consistency",
	Long: `Validates model definitions: structure, probability tables, optional
metadata requirements, and warns about degenerate topologies such as
absorbing or unreachable states.`,
	Example: `  lattice validate coins.yaml dna.yaml
  lattice validate --models ./models --metadata source=string --metadata samples=int`,
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryDir, _ := cmd.Flags().GetString("models")
		metaFlags, _ := cmd.Flags().GetStringSlice("metadata")

		if libraryDir == "" && len(args) == 0 {
			return fmt.Errorf("nothing to validate: pass definition files or --models")
		}

		var opts []validator.Option
		if len(metaFlags) > 0 {
			metaSchema, err := parseMetadataFlags(metaFlags)
			if err != nil {
				return err
			}
			opts = append(opts, validator.WithMetadataSchema(metaSchema))
		}

		var reports []*validator.Report
		for _, path := range args {
			doc, err := cli.LoadDocument(path)
			if err != nil {
				reports = append(reports, &validator.Report{
					Name:   path,
					Errors: []string{err.Error()},
				})
				continue
			}
			reports = append(reports, validator.ValidateDocument(doc, opts...))
		}

		if libraryDir != "" {
			lib, err := cli.OpenLibrary(libraryDir)
			if err != nil {
				return err
			}
			libReports, err := validator.ValidateLibrary(cmd.Context(), lib, opts...)
			if err != nil {
				return err
			}
			reports = append(reports, libReports...)
		}

		failed := 0
		for _, report := range reports {
			printReport(report)
			if !report.OK() {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d models failed validation", failed, len(reports))
		}
		cli.PrintSystemMessage("All %d models are valid.", len(reports))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().String("models", "", "Model library directory to validate")
	validateCmd.Flags().StringSlice("metadata", nil, "Required metadata field as key=type (string, int, float, bool, [string], ...)")
}

// parseMetadataFlags turns repeated key=type flags into a metadata schema.
func parseMetadataFlags(flags []string) (schema.Schema, error) {
	typeMap := make(map[string]string, len(flags))
	for _, flag := range flags {
		key, typeStr, ok := strings.Cut(flag, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata requirement %q, want key=type", flag)
		}
		typeMap[key] = typeStr
	}
	return schema.ParseTypeMap(typeMap)
}

func printReport(report *validator.Report) {
	switch {
	case !report.OK():
		fmt.Printf("✗ %s\n", report.Name)
		for _, msg := range report.Errors {
			fmt.Printf("    error: %s\n", msg)
		}
	case len(report.Warnings) > 0:
		fmt.Printf("! %s\n", report.Name)
	default:
		fmt.Printf("✓ %s\n", report.Name)
	}
	for _, msg := range report.Warnings {
		fmt.Fprintf(os.Stderr, "    warning: %s\n", msg)
	}
}
