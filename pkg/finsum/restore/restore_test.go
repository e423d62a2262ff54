package restore

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/structure"
)

func ledgerSheet() *grid.MemorySheet {
	sheet := grid.NewMemorySheet(contract.SummarySheet, 1000, 26)
	sheet.SetCell(2, 1, grid.Text("Bank Accounts"), "")
	sheet.SetCell(3, 1, grid.Text("- Bank 1"), "")
	sheet.SetCell(3, 2, grid.Number(1111), "")
	sheet.SetCell(3, 3, grid.Text("RUB"), "")
	sheet.SetCell(4, 1, grid.Text("Subtotal:"), "")
	sheet.SetCell(4, 2, grid.Value{Kind: grid.ValuePending}, "=SUM(E3)")
	sheet.SetCell(4, 3, grid.Text("USD"), "")
	sheet.SetCell(5, 1, grid.Text("TOTAL:"), "")
	sheet.SetCell(5, 2, grid.Value{Kind: grid.ValuePending}, "=SUM(E3)")
	sheet.SetCell(5, 3, grid.Text("USD"), "")
	return sheet
}

func restoreAll(t *testing.T, sheet *grid.MemorySheet) {
	t.Helper()
	ctx := context.Background()
	snap, err := grid.TakeSnapshot(ctx, sheet, contract.DeadRegionEnd, contract.SnapshotColumns)
	assert.NoError(t, err)
	total, err := structure.FindTotalRow(snap)
	assert.NoError(t, err)

	r := New(nil, 0)
	assert.NoError(t, r.Layout(ctx, sheet, snap))
	assert.NoError(t, r.Ledger(ctx, sheet, structure.Parse(snap, total), snap))
}

func snapshot(t *testing.T, sheet *grid.MemorySheet) *grid.Snapshot {
	t.Helper()
	snap, err := grid.TakeSnapshot(context.Background(), sheet, contract.DeadRegionEnd, contract.SnapshotColumns)
	assert.NoError(t, err)
	return snap
}

func TestLedgerStyles(t *testing.T) {
	sheet := ledgerSheet()
	sheet.UpdateStyle(3, 1, func(s *grid.Style) {
		s.Bold = true
		s.FontFamily = "Calibri"
	})
	sheet.UpdateStyle(4, 2, func(s *grid.Style) { s.NumberFormat = "General" })
	sheet.SetNote(2, 4, "stale")
	sheet.SetHyperlink(5, 6, "https://example.com")
	restoreAll(t, sheet)

	snap := snapshot(t, sheet)
	assert.Equal(t, contract.CanonicalStyle(models.RoleSubItem, 1, true), snap.Cell(3, 1).Style)
	assert.Equal(t, contract.CanonicalNumberFormat, snap.Cell(4, 2).Style.NumberFormat)
	assert.True(t, snap.Cell(4, 2).Style.Italic)
	assert.True(t, snap.Cell(5, 1).Style.Bold)
	assert.Equal(t, "", snap.Cell(2, 4).Note)
	assert.Equal(t, "", snap.Cell(5, 6).Hyperlink)
}

func TestLedgerKeepsValues(t *testing.T) {
	sheet := ledgerSheet()
	sheet.SetNote(3, 6, "keep me")
	restoreAll(t, sheet)

	snap := snapshot(t, sheet)
	assert.Equal(t, "- Bank 1", snap.Text(3, 1))
	assert.Equal(t, grid.Number(1111), snap.Cell(3, 2).Value)
	assert.Equal(t, "=SUM(E3)", snap.Cell(4, 2).Formula)
	assert.Equal(t, "keep me", snap.Cell(3, 6).Note)
}

func TestLedgerDeadRegion(t *testing.T) {
	sheet := ledgerSheet()
	sheet.SetCell(20, 1, grid.Text("leftover"), "")
	sheet.SetNote(30, 2, "note")
	sheet.AddConditionalFormat(grid.Rect{Row: 1, Col: 1, Rows: 1000, Cols: 6})
	sheet.AddConditionalFormat(grid.Rect{Row: 1, Col: 12, Rows: 10, Cols: 1})
	sheet.AddDrawing(grid.Anchor{Row: 40, Col: 3})
	sheet.AddDrawing(grid.Anchor{Row: 40, Col: 15})
	restoreAll(t, sheet)

	snap := snapshot(t, sheet)
	assert.False(t, snap.Cell(20, 1).HasContent())
	assert.Equal(t, "", snap.Cell(30, 2).Note)
	assert.Equal(t, contract.PristineStyle(), snap.Cell(999, 6).Style)
	assert.Equal(t, []grid.Rect{{Row: 1, Col: 12, Rows: 10, Cols: 1}}, snap.ConditionalFormats)
	assert.Equal(t, []grid.Anchor{{Row: 40, Col: 15}}, snap.Drawings)
}

func TestLedgerBeyondDeadRegionEnd(t *testing.T) {
	sheet := grid.NewMemorySheet(contract.SummarySheet, 2000, 26)
	sheet.SetCell(2, 1, grid.Text("TOTAL:"), "")
	sheet.SetCell(1500, 3, grid.Text("far away"), "")
	restoreAll(t, sheet)

	snap, err := grid.TakeSnapshot(context.Background(), sheet, 2000, contract.SnapshotColumns)
	assert.NoError(t, err)
	assert.False(t, snap.Cell(1500, 3).HasContent())
	assert.Equal(t, contract.PristineStyle(), snap.Cell(1500, 3).Style)
}

func TestLayout(t *testing.T) {
	sheet := ledgerSheet()
	sheet.SetCell(5, 7, grid.Text("stray"), "")
	restoreAll(t, sheet)

	snap := snapshot(t, sheet)
	for i, label := range contract.HeaderLabels {
		assert.Equal(t, label, snap.Text(1, i+1))
	}
	assert.Equal(t, "Convert to Main Currency", snap.Text(6, 8))
	assert.Equal(t, "Save a copy with UTC timestamp", snap.Text(4, 9))
	assert.Equal(t, grid.ValidationCheckbox, snap.Cell(2, 10).Validation.Kind)
	assert.Equal(t, contract.HeaderStyle(), snap.Cell(1, 9).Style)
	assert.Equal(t, contract.SeparatorStyle(), snap.Cell(5, 7).Style)
	assert.False(t, snap.Cell(5, 7).HasContent())
	assert.Equal(t, 220.0, snap.ColumnWidths[1])
	assert.Equal(t, 20.0, snap.ColumnWidths[7])
}

func TestRestoreIdempotent(t *testing.T) {
	sheet := ledgerSheet()
	sheet.UpdateStyle(4, 1, func(s *grid.Style) { s.Background = "#00ff00" })
	sheet.SetNote(50, 1, "note")

	restoreAll(t, sheet)
	once := snapshot(t, sheet)
	restoreAll(t, sheet)
	twice := snapshot(t, sheet)

	assert.Equal(t, once, twice)
}

func TestSheets(t *testing.T) {
	ctx := context.Background()
	wb := grid.NewMemoryWorkbook("Sheet1", "Debug Logs", "Snapshot_20240101T000000")
	r := New(nil, 0)

	changes, err := r.Sheets(ctx, wb, true)
	assert.NoError(t, err)
	assert.Equal(t, []string{`Created "Financial Summary" sheet`, `Removed invalid sheet: "Sheet1"`}, changes)

	names, err := wb.SheetNames(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Debug Logs", "Snapshot_20240101T000000", "Financial Summary"}, names)

	changes, err = r.Sheets(ctx, wb, true)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(changes))
}

func TestSheetsWithoutPrune(t *testing.T) {
	ctx := context.Background()
	wb := grid.NewMemoryWorkbook("Financial Summary", "Scratch")

	changes, err := New(nil, 0).Sheets(ctx, wb, false)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(changes))

	names, err := wb.SheetNames(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Financial Summary", "Scratch"}, names)
}
