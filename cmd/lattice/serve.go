package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
	httpadapter "github.com/aretw0/lattice/pkg/adapters/http"
	"github.com/aretw0/lattice/pkg/observability"
	"github.com/aretw0/lattice/pkg/persistence/middleware"
	"github.com/aretw0/lattice/pkg/registry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the decode HTTP server",
	Long: `Starts the model registry in server mode, exposing decode requests and
model management as a JSON API over HTTP.

Models persist in the configured store; a library directory can preload the
registry at startup. Setting LATTICE_ENCRYPTION_KEY (base64, 32 bytes)
encrypts stored models at rest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		addr, _ := cmd.Flags().GetString("addr")
		storeSpec, _ := cmd.Flags().GetString("store")
		libraryDir, _ := cmd.Flags().GetString("models")

		logger := cli.CreateLogger(debug)

		store, err := cli.OpenStore(storeSpec)
		if err != nil {
			return err
		}

		promReg := prometheus.NewRegistry()
		decodeMetrics := observability.NewMetrics(promReg)
		storeMetrics := observability.NewStoreMetrics(promReg)

		middlewares := []middleware.Middleware{
			middleware.NewInstrumentation(storeMetrics, logger),
		}
		if encoded := os.Getenv("LATTICE_ENCRYPTION_KEY"); encoded != "" {
			key, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil || len(key) != 32 {
				return fmt.Errorf("LATTICE_ENCRYPTION_KEY must be 32 bytes, base64-encoded")
			}
			middlewares = append(middlewares, middleware.NewEncryption(middleware.EncryptionConfig{ActiveKey: key}))
		}

		reg := registry.New(
			registry.WithStore(middleware.Chain(store, middlewares...)),
			registry.WithLogger(logger),
			registry.WithMetrics(decodeMetrics),
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

		handler := httpadapter.NewHandler(reg,
			httpadapter.WithLogger(logger),
			httpadapter.WithMetrics(promReg),
		)

		srv := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Lattice Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Println("Lattice Server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("store", "memory", "Model store: 'memory', 'redis://host:port' or a directory")
	serveCmd.Flags().String("models", "", "Model library directory to preload at startup")
}
