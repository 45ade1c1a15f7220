package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-extractor/internal/domain/issuer"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
	"github.com/FACorreiaa/statement-extractor/internal/export"
	"github.com/FACorreiaa/statement-extractor/pkg/config"
)

var (
	parseFormat    string
	parseOutput    string
	parseProfiles  string
	parseWorkers   int
	parseMinScore  int
	parseTxnOutput string
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse statement text files",
	Long: `Runs the full pipeline over each input file: issuer detection, field
extraction, and transaction parsing. Each file is one document; a document
that fails outright is reported and skipped without affecting the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "output format: json, csv, or xlsx")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "output file (default stdout)")
	parseCmd.Flags().StringVar(&parseProfiles, "profiles", "", "TOML file with extra issuer profiles")
	parseCmd.Flags().IntVar(&parseWorkers, "workers", 0, "concurrent documents (default from BATCH_WORKERS)")
	parseCmd.Flags().IntVar(&parseMinScore, "min-score", 0, "issuer detection threshold (default built-in)")
	parseCmd.Flags().StringVar(&parseTxnOutput, "transactions-output", "", "also write a transactions CSV to this file")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging)

	profilesPath := parseProfiles
	if profilesPath == "" {
		profilesPath = cfg.Profiles.Path
	}
	registry, err := buildRegistry(profilesPath)
	if err != nil {
		return err
	}

	minScore := parseMinScore
	if minScore == 0 {
		minScore = cfg.Detection.MinScore
	}
	pipeline, err := statement.NewPipeline(registry,
		statement.WithLogger(logger),
		statement.WithMinScore(minScore),
	)
	if err != nil {
		return err
	}

	inputs := make([]statement.Input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		inputs = append(inputs, statement.Input{ID: filepath.Base(path), Text: string(data)})
	}

	workers := parseWorkers
	if workers == 0 {
		workers = cfg.Batch.Workers
	}
	batch := statement.NewBatch(pipeline, workers, logger)
	outcomes := batch.Process(cmd.Context(), inputs)

	results := make([]*statement.StatementResult, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			logger.Error("document rejected", "document_id", o.DocumentID, "error", o.Err)
			continue
		}
		results = append(results, o.Result)
	}
	if failed == len(outcomes) {
		return errors.New("every document was rejected")
	}

	if err := writeResults(results); err != nil {
		return err
	}
	if parseTxnOutput != "" {
		if err := writeToFile(parseTxnOutput, func(w io.Writer) error {
			return export.WriteTransactionsCSV(w, results)
		}); err != nil {
			return err
		}
	}
	return nil
}

// buildRegistry seals the built-in profiles together with any TOML-defined
// extras into one registry.
func buildRegistry(profilesPath string) (*issuer.Registry, error) {
	if profilesPath == "" {
		return issuer.NewDefaultRegistry(), nil
	}

	extras, err := issuer.LoadProfilesFile(profilesPath)
	if err != nil {
		return nil, err
	}

	registry := issuer.NewRegistry()
	for _, p := range issuer.BuiltinProfiles() {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	for _, p := range extras {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("profile %s: %w", profilesPath, err)
		}
	}
	if err := registry.Build(); err != nil {
		return nil, err
	}
	return registry, nil
}

func writeResults(results []*statement.StatementResult) error {
	write := func(w io.Writer) error {
		switch parseFormat {
		case "json":
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		case "csv":
			return export.WriteStatementsCSV(w, results)
		case "xlsx":
			return export.WriteXLSX(w, results)
		default:
			return fmt.Errorf("unknown format %q, want json, csv, or xlsx", parseFormat)
		}
	}

	if parseOutput == "" {
		return write(os.Stdout)
	}
	return writeToFile(parseOutput, write)
}

func writeToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
