package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/output"
)

var (
	restoreYes        bool
	restoreKeepSheets bool
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [file.xlsx | spreadsheet-id]",
		Short: "Rewrite the canonical ledger formatting",
		Long: `restore re-applies the canonical styles of every ledger row, cleans the area
below the TOTAL row and, with full scope, the sheet layout and sheet set.
Values and formulas of ledger rows are never changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRestore,
	}
	cmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&restoreKeepSheets, "keep-sheets", false, "Do not delete sheets outside the allowed set")
	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(args)
	if err != nil {
		return err
	}

	if !restoreYes {
		ok, err := promptYesNo(fmt.Sprintf("Restore the ledger formatting of %s?", target))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("restore cancelled (use --yes on non-interactive terminals)")
		}
	}

	ctx := cmd.Context()
	wb, err := openWorkbook(ctx, target)
	if err != nil {
		return err
	}
	defer wb.Close()

	opts := cfg.Options(logger)
	if restoreKeepSheets {
		keep := false
		opts.PruneSheets = &keep
	}
	if err := finsum.RestoreStructure(ctx, wb, opts); err != nil {
		return err
	}
	output.NewPrinter(cmd.OutOrStdout(), 0).Success(fmt.Sprintf("Restored %q in %s", opts.SheetName(), target))
	return nil
}

// promptYesNo prompts the user with a yes/no question.
// Returns false if stdin is not a terminal.
func promptYesNo(question string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, nil
	}

	var confirm bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}
