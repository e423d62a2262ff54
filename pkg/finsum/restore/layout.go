package restore

import (
	"context"
	"fmt"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// Layout restores the title row, the action panel, the separator column and the column widths.
// The separator is restored down to the dead region end, within the sheet's grid.
func (r *Restorer) Layout(ctx context.Context, sheet grid.Writer, snap *grid.Snapshot) error {
	labels := make([]grid.Value, len(contract.HeaderLabels))
	for i, label := range contract.HeaderLabels {
		labels[i] = grid.Text(label)
	}
	if err := sheet.SetValues(ctx, contract.HeaderRow, 1, [][]grid.Value{labels}); err != nil {
		return fmt.Errorf("header labels: %w", err)
	}
	for _, header := range []grid.Rect{contract.MainHeader, contract.ActionHeader} {
		if err := sheet.SetStyle(ctx, header, contract.HeaderStyle()); err != nil {
			return fmt.Errorf("header %s: %w", header, err)
		}
	}

	panel := contract.ActionPanel
	buttons := make([][]grid.Value, len(contract.ActionButtons))
	for i, b := range contract.ActionButtons {
		buttons[i] = []grid.Value{grid.Text(b.Label), grid.Text(b.Description)}
	}
	if err := sheet.SetValues(ctx, panel.Row, panel.Col, buttons); err != nil {
		return fmt.Errorf("action panel: %w", err)
	}
	for col := panel.Col; col <= panel.LastCol(); col++ {
		column := grid.Rect{Row: panel.Row, Col: col, Rows: panel.Rows, Cols: 1}
		if err := sheet.SetStyle(ctx, column, contract.ActionStyle(col)); err != nil {
			return fmt.Errorf("action panel %s: %w", column, err)
		}
	}
	checkboxes := grid.Rect{Row: panel.Row, Col: panel.LastCol(), Rows: panel.Rows, Cols: 1}
	if err := sheet.SetValidation(ctx, checkboxes, contract.CheckboxValidation()); err != nil {
		return fmt.Errorf("checkboxes %s: %w", checkboxes, err)
	}

	separator := contract.SeparatorArea
	separator.Rows = min(r.DeadRegionEnd(snap), snap.GridRows)
	if err := sheet.Clear(ctx, separator); err != nil {
		return fmt.Errorf("separator: %w", err)
	}
	if err := sheet.SetStyle(ctx, separator, contract.SeparatorStyle()); err != nil {
		return fmt.Errorf("separator: %w", err)
	}
	if err := sheet.RemoveDrawings(ctx, separator); err != nil {
		return fmt.Errorf("separator drawings: %w", err)
	}

	for col := 1; col <= contract.SnapshotColumns; col++ {
		if err := sheet.SetColumnWidth(ctx, col, contract.ColumnWidths[col]); err != nil {
			return fmt.Errorf("column %s width: %w", grid.ColumnName(col), err)
		}
	}

	r.logger.Info("layout restored")
	return nil
}
