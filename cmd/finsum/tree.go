package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/output"
)

var (
	treeFormat string
	treePretty bool
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file.xlsx | spreadsheet-id]",
		Short: "Print the parsed ledger groups with their sums",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTree,
	}
	cmd.Flags().StringVarP(&treeFormat, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&treePretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	if err := validateFormat(treeFormat); err != nil {
		return err
	}
	target, err := resolveTarget(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	wb, err := openWorkbook(ctx, target)
	if err != nil {
		return err
	}
	defer wb.Close()

	tree, err := finsum.ParseTree(ctx, wb, cfg.Options(logger))
	if err != nil {
		return err
	}

	if treeFormat == "json" {
		data, err := output.ToJSON(tree, treePretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	output.NewPrinter(cmd.OutOrStdout(), terminalWidth(cmd.OutOrStdout())).Tree(tree)
	return nil
}
