package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/config"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/output"
)

var (
	checkFormat string
	checkPretty bool
	checkWatch  bool
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file.xlsx | spreadsheet-id]",
		Short: "Validate the ledger structure and presentation",
		Long: `check reports every structural and style issue of the ledger sheet.
The exit status is 1 when any issue is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&checkPretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-check whenever the .xlsx file changes")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := validateFormat(checkFormat); err != nil {
		return err
	}
	target, err := resolveTarget(args)
	if err != nil {
		return err
	}

	if !checkWatch {
		res, err := checkOnce(cmd.Context(), target, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !res.OK {
			return errIssuesFound
		}
		return nil
	}

	if cfg.BackendName() != config.BackendXLSX {
		return errors.New("--watch needs the xlsx backend")
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	pass := func() {
		if _, err := checkOnce(ctx, target, cmd.OutOrStdout()); err != nil {
			output.NewPrinter(cmd.ErrOrStderr(), 0).Error(err.Error())
		}
	}
	pass()
	return watchFile(ctx, target, watchDelay, pass)
}

// checkOnce opens the workbook, checks it and prints the report.
func checkOnce(ctx context.Context, target string, w io.Writer) (finsum.Result, error) {
	wb, err := openWorkbook(ctx, target)
	if err != nil {
		return finsum.Result{}, err
	}
	defer wb.Close()

	res := finsum.CheckStructure(ctx, wb, cfg.Options(logger))
	if checkFormat == "json" {
		data, err := output.ToJSON(res, checkPretty)
		if err != nil {
			return res, fmt.Errorf("serialization failed: %w", err)
		}
		_, _ = fmt.Fprintln(w, string(data))
		return res, nil
	}
	output.NewPrinter(w, terminalWidth(w)).Result(res)
	return res, nil
}

// terminalWidth returns the width of w when it is a terminal, zero otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
