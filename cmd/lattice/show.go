package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
	"github.com/aretw0/lattice/internal/presentation/tui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <model-file>",
	Short: "Pretty-print a model definition",
	Long:  `Renders a model definition as a formatted card: labels, probability tables and metadata.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := cli.LoadDocument(args[0])
		if err != nil {
			return err
		}

		cli.MaybePrintBanner()

		card := tui.ModelCard(doc)
		render := tui.NewRenderer()
		out, err := render(card)
		if err != nil {
			// Fall back to the raw markdown rather than failing the command.
			out = card
		}
		fmt.Print(out)
		return nil
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(showCmd)
}
