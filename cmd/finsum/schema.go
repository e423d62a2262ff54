package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/output"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the check report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := output.Schema()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
