package structure

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// snapshotOf builds a snapshot whose column A holds texts from row 2 on.
func snapshotOf(t *testing.T, texts ...string) *grid.Snapshot {
	t.Helper()
	sheet := grid.NewMemorySheet("Financial Summary", 1000, 26)
	sheet.SetCell(1, 1, grid.Text("Category"), "")
	for i, text := range texts {
		sheet.SetCell(i+2, 1, grid.Text(text), "")
	}
	snap, err := grid.TakeSnapshot(context.Background(), sheet, 1000, 10)
	assert.NoError(t, err)
	return snap
}

func TestFindTotalRow(t *testing.T) {
	snap := snapshotOf(t, "Bank Accounts", "- Bank 1", "Subtotal:", "TOTAL:")
	row, err := FindTotalRow(snap)
	assert.NoError(t, err)
	assert.Equal(t, 5, row)
}

func TestFindTotalRowMissing(t *testing.T) {
	snap := snapshotOf(t, "Bank Accounts", "- Bank 1", "Subtotal:", "Total:")
	_, err := FindTotalRow(snap)
	assert.True(t, errors.Is(err, ErrMissingTotal))
	assert.Equal(t, `Missing "TOTAL:" row`, err.Error())
}

func TestFindTotalRowMultiple(t *testing.T) {
	snap := snapshotOf(t, "TOTAL:", "", "TOTAL:")
	_, err := FindTotalRow(snap)
	assert.True(t, errors.Is(err, ErrMultipleTotals))

	var totalErr *TotalError
	assert.True(t, errors.As(err, &totalErr))
	assert.Equal(t, []int{2, 4}, totalErr.Rows)
	assert.Equal(t, `Multiple "TOTAL:" rows found (rows 2, 4). Only one is allowed.`, err.Error())
}

func TestFindTotalRowIgnoresTitleRow(t *testing.T) {
	sheet := grid.NewMemorySheet("Financial Summary", 1000, 26)
	sheet.SetCell(1, 1, grid.Text("TOTAL:"), "")
	sheet.SetCell(2, 1, grid.Text("TOTAL:"), "")
	snap, err := grid.TakeSnapshot(context.Background(), sheet, 1000, 10)
	assert.NoError(t, err)

	row, err := FindTotalRow(snap)
	assert.NoError(t, err)
	assert.Equal(t, 2, row)
}

func TestParseWellFormed(t *testing.T) {
	snap := snapshotOf(t,
		"Bank Accounts", // 2
		"- Bank 1",      // 3
		"- Bank 2",      // 4
		"Subtotal:",     // 5
		"",              // 6
		"Crypto",        // 7
		"- BTC",         // 8
		"Subtotal:",     // 9
		"TOTAL:",        // 10
	)
	tree := Parse(snap, 10)

	assert.Equal(t, 2, tree.FirstRow)
	assert.Equal(t, 10, tree.TotalRow)
	assert.Equal(t, 0, len(tree.Strays))
	assert.Equal(t, 2, len(tree.Groups))

	bank := tree.Groups[0]
	assert.Equal(t, "Bank Accounts", bank.Name)
	assert.Equal(t, 2, bank.StartRow)
	assert.Equal(t, 5, bank.SubtotalRow)
	assert.Equal(t, 5, bank.EndRow)
	assert.Equal(t, 2, len(bank.SubItems))
	assert.Equal(t, 3, bank.SubItems[0].Row)
	assert.Equal(t, "- Bank 2", bank.SubItems[1].Name)

	crypto := tree.Groups[1]
	assert.Equal(t, 7, crypto.StartRow)
	assert.Equal(t, 9, crypto.SubtotalRow)
}

func TestParseMissingSubtotal(t *testing.T) {
	snap := snapshotOf(t,
		"Bank Accounts", // 2
		"- Bank 1",      // 3
		"- Bank 2",      // 4
		"Crypto",        // 5
		"- BTC",         // 6
		"Subtotal:",     // 7
		"TOTAL:",        // 8
	)
	tree := Parse(snap, 8)

	assert.Equal(t, 2, len(tree.Groups))
	bank := tree.Groups[0]
	assert.False(t, bank.HasSubtotal())
	assert.Equal(t, 4, bank.EndRow)
	assert.Equal(t, 2, len(bank.SubItems))

	crypto := tree.Groups[1]
	assert.Equal(t, "Crypto", crypto.Name)
	assert.Equal(t, 5, crypto.StartRow)
	assert.Equal(t, 7, crypto.SubtotalRow)
}

func TestParseUnclosedGroupAtTotal(t *testing.T) {
	snap := snapshotOf(t, "Bank Accounts", "- Bank 1", "", "TOTAL:")
	tree := Parse(snap, 5)

	assert.Equal(t, 1, len(tree.Groups))
	assert.False(t, tree.Groups[0].HasSubtotal())
	assert.Equal(t, 3, tree.Groups[0].EndRow)
}

func TestParseBlankInsideGroup(t *testing.T) {
	snap := snapshotOf(t,
		"Bank Accounts", // 2
		"- Bank 1",      // 3
		"- Bank 2",      // 4
		"",              // 5
		"- Bank 3",      // 6
		"Subtotal:",     // 7
		"TOTAL:",        // 8
	)
	tree := Parse(snap, 8)

	assert.Equal(t, 1, len(tree.Groups))
	rows := []int{}
	for _, item := range tree.Groups[0].SubItems {
		rows = append(rows, item.Row)
	}
	assert.Equal(t, []int{3, 4, 6}, rows)
	assert.Equal(t, 7, tree.Groups[0].SubtotalRow)
}

func TestParseStrays(t *testing.T) {
	snap := snapshotOf(t,
		"- Orphan",     // 2
		"Subtotal:",    // 3
		"Assets",       // 4
		"- Bank 1",     // 5
		"Total assets", // 6
		"TOTAL",        // 7
		"TOTAL:",       // 8
	)
	tree := Parse(snap, 8)

	assert.Equal(t, []models.StrayRow{
		{Row: 2, Role: models.RoleSubItem, Text: "- Orphan"},
		{Row: 3, Role: models.RoleSubtotal, Text: "Subtotal:"},
		{Row: 7, Role: models.RoleOther, Anomaly: models.AnomalyTotalNearMiss, Text: "TOTAL"},
	}, tree.Strays)

	assert.Equal(t, 2, len(tree.Groups))
	assert.Equal(t, "Assets", tree.Groups[0].Name)
	assert.Equal(t, 5, tree.Groups[0].EndRow)
	assert.Equal(t, "Total assets", tree.Groups[1].Name)
	assert.Equal(t, 0, len(tree.Groups[1].SubItems))
}

func TestParseEmptyLedger(t *testing.T) {
	snap := snapshotOf(t, "TOTAL:")
	tree := Parse(snap, 2)
	assert.Equal(t, 0, len(tree.Groups))
	assert.Equal(t, map[int]models.Role{2: models.RoleTotal}, tree.Rows())
}

func TestParseSubItemAmounts(t *testing.T) {
	sheet := grid.NewMemorySheet("Financial Summary", 1000, 26)
	sheet.SetCell(2, 1, grid.Text("Bank Accounts"), "")
	sheet.SetCell(3, 1, grid.Text("- Bank 1"), "")
	sheet.SetCell(3, 2, grid.Number(1111), "")
	sheet.SetCell(3, 3, grid.Text("RUB"), "")
	sheet.SetCell(3, 4, grid.Text("87,03"), "")
	sheet.SetCell(3, 5, grid.Number(12.5), "=B3/D3")
	sheet.SetCell(3, 6, grid.Text("Active funds"), "")
	sheet.SetCell(4, 1, grid.Text("Subtotal:"), "")
	sheet.SetCell(5, 1, grid.Text("TOTAL:"), "")
	snap, err := grid.TakeSnapshot(context.Background(), sheet, 1000, 10)
	assert.NoError(t, err)

	tree := Parse(snap, 5)
	item := tree.Groups[0].SubItems[0]
	assert.True(t, item.Amount.Valid)
	assert.Equal(t, "1111", item.Amount.Decimal.String())
	assert.Equal(t, "RUB", item.Currency)
	assert.False(t, item.ExchangeRate.Valid)
	assert.Equal(t, "12.5", tree.Groups[0].Sum().String())
	assert.Equal(t, "Active funds", item.Note)
}

func TestParseNumberInColumnA(t *testing.T) {
	sheet := grid.NewMemorySheet("Financial Summary", 1000, 26)
	sheet.SetCell(2, 1, grid.Text("Bank Accounts"), "")
	sheet.SetCell(3, 1, grid.Text("- Bank 1"), "")
	sheet.SetCell(4, 1, grid.Number(-5), "")
	sheet.SetCell(5, 1, grid.Text("Subtotal:"), "")
	sheet.SetCell(6, 1, grid.Text("TOTAL:"), "")
	snap, err := grid.TakeSnapshot(context.Background(), sheet, 1000, 10)
	assert.NoError(t, err)

	tree := Parse(snap, 6)
	assert.Equal(t, 2, len(tree.Groups))
	assert.Equal(t, 1, len(tree.Groups[0].SubItems))
	assert.False(t, tree.Groups[0].HasSubtotal())
	assert.Equal(t, "-5", tree.Groups[1].Name)
	assert.Equal(t, 4, tree.Groups[1].StartRow)
	assert.Equal(t, 5, tree.Groups[1].SubtotalRow)
	assert.Equal(t, 0, len(tree.Strays))
}
