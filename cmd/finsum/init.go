package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid/xlsx"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/output"
)

var initForce bool

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <file.xlsx>",
		Short: "Write a new workbook with the example ledger",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("file already exists: %s (use --force to overwrite)", path)
	}

	ctx := cmd.Context()
	wb := xlsx.Create(path)
	defer wb.Close()

	if err := wb.AddSheet(ctx, contract.SummarySheet); err != nil {
		return err
	}
	sheet, err := wb.Sheet(ctx, contract.SummarySheet)
	if err != nil {
		return err
	}
	if err := finsum.Seed(ctx, sheet); err != nil {
		return err
	}

	opts := finsum.DefaultOptions()
	opts.Logger = logger
	if err := finsum.RestoreStructure(ctx, wb, opts); err != nil {
		return err
	}
	output.NewPrinter(cmd.OutOrStdout(), 0).Success(fmt.Sprintf("Wrote example ledger to %s", path))
	return nil
}
