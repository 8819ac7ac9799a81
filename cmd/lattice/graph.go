package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
	"github.com/aretw0/lattice/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <model-file>",
	Short: "Export the state graph visualization",
	Long:  `Reads a model definition and outputs a Mermaid diagram (graph TD) of its state topology, with transition probabilities on the edges.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minProb, _ := cmd.Flags().GetFloat64("min-prob")

		doc, err := cli.LoadDocument(args[0])
		if err != nil {
			return err
		}

		fmt.Print(graph.GenerateMermaid(doc, minProb))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Float64("min-prob", 0, "Hide edges below this probability")
}
