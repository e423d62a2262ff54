package validate

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

func TestDeadRegionClean(t *testing.T) {
	tree, snap := inspect(t, restored(t, bankLedger))
	assert.Equal(t, []models.Issue{}, DeadRegion(tree, snap, 1000))
}

func TestDeadRegionReportsOnlyDirtyCells(t *testing.T) {
	sheet := restored(t, bankLedger)
	sheet.SetCell(30, 1, grid.Text("leftover"), "")
	sheet.UpdateStyle(30, 1, func(st *grid.Style) { st.Bold = true })
	sheet.UpdateStyle(40, 2, func(st *grid.Style) {
		st.Bold = true
		st.Italic = true
	})
	sheet.SetNote(500, 3, "old note")
	sheet.AddConditionalFormat(grid.Rect{Row: 700, Col: 4, Rows: 1, Cols: 1})
	sheet.AddDrawing(grid.Anchor{Row: 800, Col: 5, Name: "Picture 1", Kind: "picture"})
	sheet.SetHyperlink(999, 6, "https://example.com")
	tree, snap := inspect(t, sheet)

	issues := DeadRegion(tree, snap, 1000)
	assert.Equal(t, []string{
		"A30: Cell contains value or formula",
		"B40: Cell has bold formatting",
		"B40: Cell has italic formatting",
		"C500: Cell contains note",
		"D700: Cell has conditional formatting",
		"E800: Cell contains drawing or image",
		"F999: Cell contains hyperlink",
	}, messages(issues))
	assert.Equal(t, models.CategoryStructural, issues[0].Category)
	assert.Equal(t, models.CategoryStyle, issues[1].Category)
}

func TestDeadRegionStartsBelowTotal(t *testing.T) {
	sheet := restored(t, bankLedger)
	sheet.UpdateStyle(6, 4, func(st *grid.Style) { st.Bold = true })
	sheet.UpdateStyle(7, 4, func(st *grid.Style) { st.Bold = true })
	tree, snap := inspect(t, sheet)

	assert.Equal(t, []string{"D7: Cell has bold formatting"}, messages(DeadRegion(tree, snap, 1000)))
}

func TestDeadRegionEnd(t *testing.T) {
	sheet := restored(t, bankLedger)
	sheet.SetNote(20, 1, "inside")
	sheet.SetNote(21, 1, "outside")
	tree, snap := inspect(t, sheet)

	assert.Equal(t, []string{"A20: Cell contains note"}, messages(DeadRegion(tree, snap, 20)))
}
