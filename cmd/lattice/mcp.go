package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
	"github.com/aretw0/lattice/pkg/adapters/mcp"
	"github.com/aretw0/lattice/pkg/registry"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the model registry as an MCP Server over stdio.
This allows AI agents (like Claude Desktop) to decode sequences and inspect
registered models as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storeSpec, _ := cmd.Flags().GetString("store")
		libraryDir, _ := cmd.Flags().GetString("models")

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		store, err := cli.OpenStore(storeSpec)
		if err != nil {
			return err
		}

		reg := registry.New(
			registry.WithStore(store),
			registry.WithLogger(logger),
		)

		if libraryDir != "" {
			lib, err := cli.OpenLibrary(libraryDir)
			if err != nil {
				return err
			}
			if err := reg.Preload(cmd.Context(), lib); err != nil {
				return fmt.Errorf("failed to preload models: %w", err)
			}
		}

		logger.Info("Starting Lattice MCP Server (Stdio)...")
		return mcp.NewServer(reg).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("store", "memory", "Model store: 'memory', 'redis://host:port' or a directory")
	mcpCmd.Flags().String("models", "", "Model library directory to preload at startup")
}
