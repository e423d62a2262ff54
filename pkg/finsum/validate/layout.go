package validate

import (
	"strconv"
	"strings"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// Layout checks the fixed parts of the sheet: the title row, the action panel, the bordered
// regions, the separator column and the column widths.
func Layout(snap *grid.Snapshot) []models.Issue {
	r := newReport()

	checkHeaderLabels(r, snap)
	checkRegion(r, snap, contract.LedgerArea)
	checkRegion(r, snap, contract.ActionArea)
	checkSeparator(r, snap)
	checkWidths(r, snap)
	checkHeaderStyle(r, snap, contract.MainHeader)
	checkHeaderStyle(r, snap, contract.ActionHeader)
	checkActionPanel(r, snap)

	return r.issues
}

func checkHeaderLabels(r *report, snap *grid.Snapshot) {
	for i, want := range contract.HeaderLabels {
		col := i + 1
		if want != "" && snap.Text(contract.HeaderRow, col) != want {
			r.cell(contract.HeaderRow, col, models.CategoryStructural, models.CodeHeaderText, "Should contain %q", want)
		}
	}
}

func checkHeaderStyle(r *report, snap *grid.Snapshot, area grid.Rect) {
	for col := area.Col; col <= area.LastCol(); col++ {
		c := cellAt(snap, area.Row, col)
		s := c.Style
		if s.FontSize != contract.HeaderText.FontSize {
			r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeFont, "Wrong font size (should be %s)", formatSize(contract.HeaderText.FontSize))
		}
		if !s.Bold {
			r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeTextStyle, "Should be bold")
		}
		if unwanted := unwantedStyles(s, false, false); len(unwanted) > 0 {
			r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeTextStyle, "Found unwanted styles (%s)", strings.Join(unwanted, ", "))
		}
		if s.HAlign != grid.AlignCenter {
			r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeAlignment, "Should be center-aligned horizontally")
		}
		if s.VAlign != grid.AlignMiddle {
			r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeAlignment, "Should be center-aligned vertically")
		}
	}
}

// unwantedStyles lists the text decorations a cell carries but should not.
func unwantedStyles(s grid.Style, italicAllowed, boldUnwanted bool) []string {
	var unwanted []string
	if s.Italic && !italicAllowed {
		unwanted = append(unwanted, "italic")
	}
	if s.Bold && boldUnwanted {
		unwanted = append(unwanted, "bold")
	}
	if s.Strikethrough {
		unwanted = append(unwanted, "strikethrough")
	}
	if s.Underline {
		unwanted = append(unwanted, "underline")
	}
	return unwanted
}

func checkActionPanel(r *report, snap *grid.Snapshot) {
	panel := contract.ActionPanel
	for i, button := range contract.ActionButtons {
		row := panel.Row + i
		labels := map[int]string{8: button.Label, 9: button.Description}
		for col := panel.Col; col <= panel.LastCol(); col++ {
			c := cellAt(snap, row, col)
			if want := labels[col]; want != "" && snap.Text(row, col) != want {
				r.cell(row, col, models.CategoryStructural, models.CodeButtonText, "Should contain %q", want)
			}
			if col == panel.LastCol() && (c.Validation == nil || c.Validation.Kind != grid.ValidationCheckbox) {
				r.cell(row, col, models.CategoryStructural, models.CodeCheckbox, "Should be a checkbox")
			}
			checkButtonStyle(r, c, contract.ActionText(col))
		}
	}
}

func checkButtonStyle(r *report, c *grid.Cell, want contract.TextStyle) {
	s := c.Style
	if s.HAlign != want.HAlign {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeAlignment, "Wrong horizontal alignment (should be %s)", want.HAlign)
	}
	if s.VAlign != want.VAlign {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeAlignment, "Wrong vertical alignment (should be %s)", want.VAlign)
	}
	if s.FontSize != want.FontSize {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeFont, "Wrong font size (should be %s)", formatSize(want.FontSize))
	}
	if want.Italic && !s.Italic {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeTextStyle, "Missing italic style")
	}
	if unwanted := unwantedStyles(s, want.Italic, true); len(unwanted) > 0 {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeTextStyle, "Found unwanted styles (%s)", strings.Join(unwanted, ", "))
	}
}

// checkRegion checks background, font, colour and borders of every cell of a bordered region.
// The region actually present in the sheet must have the expected shape; a truncated sheet is
// reported instead of checked.
func checkRegion(r *report, snap *grid.Snapshot, area grid.Rect) {
	region := snap.Region(area)
	if region.Rect.Rows < area.Rows {
		r.at(area.String(), 0, models.CategoryStyle, models.CodeRangeShape,
			"Missing rows. Expected %d rows, got %d", area.Rows, max(region.Rect.Rows, 0))
		return
	}
	if region.Rect.Cols < area.Cols {
		r.at(area.String(), 0, models.CategoryStyle, models.CodeRangeShape,
			"Missing columns. Expected %d columns, got %d", area.Cols, max(region.Rect.Cols, 0))
		return
	}

	for i := range region.Cells {
		for j := range region.Cells[i] {
			c := &region.Cells[i][j]
			s := c.Style
			if s.Background != grid.DefaultBackground {
				r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeBackground, "Should have no background color")
			}
			if s.FontFamily != grid.DefaultFontFamily {
				r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeFont, "Wrong font family (should be %s)", grid.DefaultFontFamily)
			}
			if s.FontColor != grid.Black {
				r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeColor, "Wrong text color (should be black)")
			}
			checkBorders(r, c)
		}
	}
}

func checkBorders(r *report, c *grid.Cell) {
	b := c.Style.Borders
	if b == (grid.Borders{}) {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeBorder, "No borders defined")
		return
	}
	for _, side := range grid.Sides {
		if !b.Side(side).Present() {
			r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeBorder, "Missing %s border", side)
		}
	}
	for _, side := range grid.Sides {
		border := b.Side(side)
		if !border.Present() {
			continue
		}
		if border.Style != grid.BorderSolid {
			r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeBorder, "%s border should be solid", side)
		}
		if border.Color != "" && border.Color != grid.Black {
			r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeBorder, "%s border should be black", side)
		}
	}
}

func checkSeparator(r *report, snap *grid.Snapshot) {
	col := contract.SeparatorColumn
	area := snap.Region(contract.SeparatorArea)
	for i := range area.Cells {
		c := &area.Cells[i][0]
		s := c.Style
		if c.HasContent() {
			r.cell(c.Row, col, models.CategoryStructural, models.CodeValueOrFormula, "Should be empty")
		}
		if c.Validation != nil {
			r.cell(c.Row, col, models.CategoryStyle, models.CodeValidation, "Should not have data validation")
		}
		if c.Note != "" {
			r.cell(c.Row, col, models.CategoryStyle, models.CodeNote, "Should not have notes")
		}
		if s.FontFamily != grid.DefaultFontFamily {
			r.cell(c.Row, col, models.CategoryStyle, models.CodeFont, "Should have default font (Arial)")
		}
		if s.FontColor != grid.Black {
			r.cell(c.Row, col, models.CategoryStyle, models.CodeColor, "Should have default text color (black)")
		}
		if s.Background != grid.DefaultBackground {
			r.cell(c.Row, col, models.CategoryStyle, models.CodeBackground, "Should have no background color")
		}
		if s.Bold || s.Italic || s.Underline || s.Strikethrough {
			r.cell(c.Row, col, models.CategoryStyle, models.CodeTextStyle, "Should not have any text styling")
		}
		if s.Borders.Top.Present() {
			r.cell(c.Row, col, models.CategoryStyle, models.CodeBorder, "Should not have top border")
		}
		if s.Borders.Bottom.Present() {
			r.cell(c.Row, col, models.CategoryStyle, models.CodeBorder, "Should not have bottom border")
		}
	}

	for _, a := range snap.Drawings {
		if a.Col == col {
			r.at("Column "+grid.ColumnName(col), 0, models.CategoryStyle, models.CodeDrawing,
				"Should not contain any drawings or objects")
			break
		}
	}
}

func checkWidths(r *report, snap *grid.Snapshot) {
	for col := 1; col <= contract.SnapshotColumns; col++ {
		want := contract.ColumnWidths[col]
		got, ok := snap.ColumnWidths[col]
		if !ok {
			continue
		}
		if got < want-contract.WidthTolerance || got > want+contract.WidthTolerance {
			r.at("Column "+grid.ColumnName(col), 0, models.CategoryStyle, models.CodeColumnWidth,
				"Wrong width (current: %spx, expected: %spx)", formatPixels(got), formatPixels(want))
		}
	}
}

func formatPixels(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64)
}
