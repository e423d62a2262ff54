package validate

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/restore"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/structure"
)

// bankLedger occupies rows 2–6.
var bankLedger = [][6]string{
	{"Bank Accounts", "", "", "", "", ""},
	{"- Bank 1", "1111", "RUB", "87,03", "=B3/D3", "Active funds"},
	{"- Bank 2", "11", "RUB", "87,03", "=B4/D4", ""},
	{"Subtotal:", "=SUM(E3:E4)", "USD", "", "", ""},
	{"TOTAL:", "=SUM(E3:E4)", "USD", "", "", ""},
}

func writeLedger(sheet *grid.MemorySheet, lines [][6]string) {
	for i, line := range lines {
		for j, raw := range line {
			row, col := contract.FirstDataRow+i, j+1
			switch {
			case raw == "":
			case strings.HasPrefix(raw, "="):
				sheet.SetCell(row, col, grid.Value{Kind: grid.ValuePending}, raw)
			default:
				if f, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64); err == nil {
					sheet.SetCell(row, col, grid.Number(f), "")
				} else {
					sheet.SetCell(row, col, grid.Text(raw), "")
				}
			}
		}
	}
}

// restored returns a sheet holding lines with the canonical presentation applied.
func restored(t *testing.T, lines [][6]string) *grid.MemorySheet {
	t.Helper()
	ctx := context.Background()
	sheet := grid.NewMemorySheet(contract.SummarySheet, 1000, 26)
	writeLedger(sheet, lines)

	snap, err := grid.TakeSnapshot(ctx, sheet, contract.DeadRegionEnd, contract.SnapshotColumns)
	assert.NoError(t, err)
	r := restore.New(nil, 0)
	assert.NoError(t, r.Layout(ctx, sheet, snap))
	total, err := structure.FindTotalRow(snap)
	assert.NoError(t, err)
	assert.NoError(t, r.Ledger(ctx, sheet, structure.Parse(snap, total), snap))
	return sheet
}

// inspect snapshots and parses sheet.
func inspect(t *testing.T, sheet *grid.MemorySheet) (*models.LedgerTree, *grid.Snapshot) {
	t.Helper()
	snap, err := grid.TakeSnapshot(context.Background(), sheet, contract.DeadRegionEnd, contract.SnapshotColumns)
	assert.NoError(t, err)
	total, err := structure.FindTotalRow(snap)
	assert.NoError(t, err)
	return structure.Parse(snap, total), snap
}

func messages(issues []models.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}

func codes(issues []models.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code
	}
	return out
}
