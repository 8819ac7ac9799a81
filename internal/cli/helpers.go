// Package cli carries the shared plumbing of the command-line interface:
// logger setup, terminal detection and the adapter factories commands use to
// open stores and libraries.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/internal/presentation/tui"
)

// CreateLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout output).
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// MaybePrintBanner prints the banner when stdout is an interactive terminal.
// Piped output stays machine-readable.
func MaybePrintBanner() {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		tui.PrintBanner()
	}
}

// PrintSystemMessage prints a standardized system message to stdout.
func PrintSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}
