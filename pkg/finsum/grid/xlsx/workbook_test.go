package xlsx

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/xuri/excelize/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

func newSheet(t *testing.T) (*Workbook, grid.Sheet) {
	t.Helper()
	wb := Create(filepath.Join(t.TempDir(), "ledger.xlsx"))
	t.Cleanup(func() { _ = wb.Close() })
	sheet, err := wb.Sheet(context.Background(), "Sheet1")
	assert.NoError(t, err)
	return wb, sheet
}

func TestValuesRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, sheet := newSheet(t)

	assert.NoError(t, sheet.SetValues(ctx, 2, 1, [][]grid.Value{
		{grid.Text("Bank"), grid.Number(12.5), grid.Bool(true), grid.Bool(false)},
	}))
	assert.NoError(t, sheet.SetFormula(ctx, 3, 5, "=SUM(B2:B2)"))

	block, err := sheet.Range(ctx, grid.Rect{Row: 2, Col: 1, Rows: 2, Cols: 5})
	assert.NoError(t, err)

	tests := []struct {
		row, col int
		kind     grid.ValueKind
		text     string
	}{
		{2, 1, grid.ValueText, "Bank"},
		{2, 2, grid.ValueNumber, "12.5"},
		{2, 3, grid.ValueBool, "TRUE"},
		{2, 4, grid.ValueBool, "FALSE"},
		{2, 5, grid.ValueEmpty, ""},
		{3, 5, grid.ValuePending, ""},
	}
	for _, tt := range tests {
		c := block.Cell(tt.row, tt.col)
		if c.Value.Kind != tt.kind || c.Value.String() != tt.text {
			t.Errorf("%s = %s %q, expected %s %q", c.Address(), c.Value.Kind, c.Value.String(), tt.kind, tt.text)
		}
	}
	assert.Equal(t, "=SUM(B2:B2)", block.Cell(3, 5).Formula)

	last, err := sheet.LastRow(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, last)
}

func TestStyleRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, sheet := newSheet(t)

	want := grid.Style{
		FontFamily:   "Arial",
		FontSize:     10,
		Bold:         true,
		Italic:       true,
		HAlign:       grid.AlignRight,
		VAlign:       grid.AlignMiddle,
		FontColor:    "#000000",
		Background:   "#ff0000",
		Borders:      grid.AllSides(grid.Border{Style: grid.BorderSolid, Color: "#000000"}),
		NumberFormat: "0.0000",
	}
	r := grid.Rect{Row: 2, Col: 2, Rows: 3, Cols: 2}
	assert.NoError(t, sheet.SetStyle(ctx, r, want))

	block, err := sheet.Range(ctx, r)
	assert.NoError(t, err)
	for _, row := range block.Cells {
		for _, c := range row {
			assert.Equal(t, want, c.Style, "%s", c.Address())
		}
	}
}

func TestAnnotations(t *testing.T) {
	ctx := context.Background()
	wb, sheet := newSheet(t)
	f := wb.File()

	assert.NoError(t, f.AddComment("Sheet1", excelize.Comment{Cell: "B3", Author: "x", Text: "check"}))
	assert.NoError(t, f.SetCellHyperLink("Sheet1", "C3", "https://example.com", "External"))
	assert.NoError(t, sheet.SetValidation(ctx, grid.Rect{Row: 2, Col: 10, Rows: 5, Cols: 1},
		&grid.Validation{Kind: grid.ValidationCheckbox}))

	block, err := sheet.Range(ctx, grid.Rect{Row: 2, Col: 1, Rows: 5, Cols: 10})
	assert.NoError(t, err)
	assert.Equal(t, "check", block.Cell(3, 2).Note)
	assert.Equal(t, "https://example.com", block.Cell(3, 3).Hyperlink)
	assert.Equal(t, grid.ValidationCheckbox, block.Cell(6, 10).Validation.Kind)
	assert.True(t, block.Cell(3, 4).Validation == nil)

	assert.NoError(t, sheet.ClearAnnotations(ctx, grid.Rect{Row: 1, Col: 1, Rows: 10, Cols: 9}))
	block, err = sheet.Range(ctx, grid.Rect{Row: 2, Col: 1, Rows: 5, Cols: 10})
	assert.NoError(t, err)
	assert.Equal(t, "", block.Cell(3, 2).Note)
	assert.Equal(t, "", block.Cell(3, 3).Hyperlink)
	assert.Equal(t, grid.ValidationCheckbox, block.Cell(2, 10).Validation.Kind)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	_, sheet := newSheet(t)

	assert.NoError(t, sheet.SetValues(ctx, 30, 1, [][]grid.Value{{grid.Text("leftover"), grid.Number(1)}}))
	assert.NoError(t, sheet.SetFormula(ctx, 31, 1, "=A30"))
	assert.NoError(t, sheet.SetValues(ctx, 40, 1, [][]grid.Value{{grid.Text("outside")}}))

	assert.NoError(t, sheet.Clear(ctx, grid.Rect{Row: 25, Col: 1, Rows: 10, Cols: 6}))

	block, err := sheet.Range(ctx, grid.Rect{Row: 30, Col: 1, Rows: 2, Cols: 2})
	assert.NoError(t, err)
	for _, row := range block.Cells {
		for _, c := range row {
			assert.False(t, c.HasContent(), "%s", c.Address())
		}
	}
	last, err := sheet.LastRow(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 40, last)
}

func TestConditionalFormats(t *testing.T) {
	ctx := context.Background()
	wb, sheet := newSheet(t)
	f := wb.File()

	format, err := f.NewConditionalStyle(&excelize.Style{Font: &excelize.Font{Color: "9A0511"}})
	assert.NoError(t, err)
	rule := []excelize.ConditionalFormatOptions{{Type: "cell", Criteria: ">", Format: &format, Value: "6"}}
	assert.NoError(t, f.SetConditionalFormat("Sheet1", "B2:B5", rule))
	assert.NoError(t, f.SetConditionalFormat("Sheet1", "M2:M5", rule))

	rects, err := sheet.ConditionalFormatRanges(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(rects))

	assert.NoError(t, sheet.RemoveConditionalFormats(ctx, grid.Rect{Row: 1, Col: 1, Rows: 1000, Cols: 6}))
	rects, err = sheet.ConditionalFormatRanges(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []grid.Rect{{Row: 2, Col: 13, Rows: 4, Cols: 1}}, rects)
}

func TestDrawingAnchors(t *testing.T) {
	ctx := context.Background()
	wb, sheet := newSheet(t)

	assert.NoError(t, wb.File().AddShape("Sheet1", &excelize.Shape{Cell: "G3", Type: "rect"}))
	anchors, err := sheet.DrawingAnchors(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(anchors))

	assert.NoError(t, wb.Save(ctx))
	anchors, err = sheet.DrawingAnchors(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(anchors))
	assert.Equal(t, 3, anchors[0].Row)
	assert.Equal(t, 7, anchors[0].Col)
	assert.Equal(t, "shape", anchors[0].Kind)
}

func TestRemoveDrawings(t *testing.T) {
	ctx := context.Background()
	wb, sheet := newSheet(t)
	f := wb.File()

	assert.NoError(t, f.AddShape("Sheet1", &excelize.Shape{Cell: "G3", Type: "rect"}))
	assert.NoError(t, f.AddChart("Sheet1", "H5", &excelize.Chart{
		Type:   excelize.Col,
		Series: []excelize.ChartSeries{{Name: "Sheet1!$A$1", Categories: "Sheet1!$A$2:$A$3", Values: "Sheet1!$B$2:$B$3"}},
	}))
	assert.NoError(t, wb.Save(ctx))

	kinds := func() []string {
		t.Helper()
		anchors, err := sheet.DrawingAnchors(ctx)
		assert.NoError(t, err)
		var kinds []string
		for _, a := range anchors {
			kinds = append(kinds, a.Kind)
		}
		slices.Sort(kinds)
		return kinds
	}
	assert.Equal(t, []string{"chart", "shape"}, kinds())

	assert.NoError(t, sheet.RemoveDrawings(ctx, grid.RectFromCorners(1, 1, 10, 10)))
	assert.Equal(t, []string{"shape"}, kinds())

	assert.NoError(t, wb.Save(ctx))
	assert.Equal(t, []string{"shape"}, kinds())
}

// Reading anchors and the last row between writes must not disturb styles on empty cells.
func TestReadsBetweenWritesKeepStyles(t *testing.T) {
	ctx := context.Background()
	_, sheet := newSheet(t)

	separator := grid.DefaultStyle()
	separator.Background = "#cccccc"
	panel := grid.DefaultStyle()
	panel.Borders = grid.AllSides(grid.Border{Style: grid.BorderSolid, Color: grid.Black})

	assert.NoError(t, sheet.SetStyle(ctx, grid.RectFromCorners(1, 7, 1000, 7), separator))
	_, err := sheet.DrawingAnchors(ctx)
	assert.NoError(t, err)
	_, err = sheet.LastRow(ctx)
	assert.NoError(t, err)
	assert.NoError(t, sheet.SetStyle(ctx, grid.RectFromCorners(2, 8, 2, 10), panel))
	_, err = sheet.LastRow(ctx)
	assert.NoError(t, err)

	block, err := sheet.Range(ctx, grid.RectFromCorners(1, 7, 10, 10))
	assert.NoError(t, err)
	for _, ref := range [][2]int{{1, 7}, {2, 7}, {8, 7}} {
		assert.Equal(t, separator, block.Cell(ref[0], ref[1]).Style, "%s", block.Cell(ref[0], ref[1]).Address())
	}
	for col := 8; col <= 10; col++ {
		assert.Equal(t, panel, block.Cell(2, col).Style, "%s", block.Cell(2, col).Address())
	}
}

func TestColumnWidth(t *testing.T) {
	ctx := context.Background()
	_, sheet := newSheet(t)

	assert.NoError(t, sheet.SetColumnWidth(ctx, 1, 220))
	got, err := sheet.ColumnWidth(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 220.0, got)
}

func TestSheets(t *testing.T) {
	ctx := context.Background()
	wb, _ := newSheet(t)

	assert.NoError(t, wb.AddSheet(ctx, "Financial Summary"))
	assert.Error(t, wb.AddSheet(ctx, "Financial Summary"))
	assert.NoError(t, wb.DeleteSheet(ctx, "Sheet1"))

	names, err := wb.SheetNames(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Financial Summary"}, names)

	_, err = wb.Sheet(ctx, "Sheet1")
	assert.IsError(t, err, grid.ErrSheetNotFound)
	assert.Error(t, wb.DeleteSheet(ctx, "Financial Summary"))
}

func TestSaveAndReopen(t *testing.T) {
	ctx := context.Background()
	wb, sheet := newSheet(t)

	assert.NoError(t, sheet.SetValues(ctx, 2, 1, [][]grid.Value{{grid.Text("TOTAL:"), grid.Number(87.03)}}))
	assert.NoError(t, wb.Save(ctx))

	reopened, err := Open(wb.Path())
	assert.NoError(t, err)
	defer reopened.Close()

	s, err := reopened.Sheet(ctx, "Sheet1")
	assert.NoError(t, err)
	row, err := grid.ReadRow(ctx, s, 2)
	assert.NoError(t, err)
	assert.Equal(t, "TOTAL:", row.Cells[0].Value.Text)
	assert.Equal(t, 87.03, row.Cells[1].Value.Number)
}
