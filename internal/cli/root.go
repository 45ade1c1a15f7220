// Package cli wires the extraction pipeline behind a cobra command tree.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-extractor/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "statement-parser",
	Short: "Extract structured fields from credit card statement text",
	Long: `Identifies the issuing bank of dumped statement text, extracts the
canonical statement fields, and parses the transaction table. Accepts one or
more text files and writes JSON, CSV, or XLSX output.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
