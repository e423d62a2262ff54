// Package main provides the CLI entry point for finsum.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/config"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/output"
)

// errIssuesFound makes the process exit with status 1 without printing anything more.
var errIssuesFound = errors.New("issues found")

var (
	configPath  string
	verbose     bool
	backend     string
	sheetName   string
	scope       string
	credentials string

	cfg    config.Config
	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errIssuesFound) {
			output.NewPrinter(os.Stderr, 0).Error(err.Error())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "finsum",
		Short: "Check and restore the Financial Summary ledger sheet",
		Long: `finsum validates the structure and presentation of the Financial Summary
ledger (groups, sub-items, subtotals and the TOTAL row) in an .xlsx file or a
Google Sheets spreadsheet, and restores its canonical formatting.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: "+config.DefaultFile+" if present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	flags.StringVar(&backend, "backend", "", "Grid backend: xlsx, gsheets")
	flags.StringVar(&sheetName, "sheet", "", "Ledger sheet name (default: Financial Summary)")
	flags.StringVar(&scope, "scope", "", "Coverage: ledger, full")
	flags.StringVar(&credentials, "credentials", "", "Google service account key file")

	rootCmd.AddCommand(
		newCheckCmd(),
		newRestoreCmd(),
		newTreeCmd(),
		newInitCmd(),
		newSchemaCmd(),
	)
	return rootCmd
}

// setup loads the configuration; flags given on the command line win.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		loaded.Backend = backend
	}
	if flags.Changed("sheet") {
		loaded.Sheet = sheetName
	}
	if flags.Changed("scope") {
		loaded.Scope = scope
	}
	if flags.Changed("credentials") {
		loaded.Google.Credentials = credentials
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("configuration loaded", "backend", cfg.BackendName(), "sheet", cfg.Sheet, "scope", cfg.Scope)
	return nil
}

func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be text or json)", format)
	}
}
