package validate

import (
	"sort"
	"strconv"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// Style checks the presentation of every row of the tree against the per-role style contracts.
// Columns contracted only when valued are skipped while empty.
func Style(tree *models.LedgerTree, snap *grid.Snapshot) []models.Issue {
	r := newReport()

	roles := tree.Rows()
	rows := make([]int, 0, len(roles))
	for row := range roles {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	for _, row := range rows {
		role := roles[row]
		for col := 1; col <= contract.LedgerColumns; col++ {
			want, ok := contract.StyleContract(role, col)
			if !ok {
				continue
			}
			c := cellAt(snap, row, col)
			if want.WhenValued && !c.HasContent() {
				continue
			}
			checkTextStyle(r, c, want.TextStyle)
		}
	}

	return r.issues
}

func checkTextStyle(r *report, c *grid.Cell, want contract.TextStyle) {
	s := c.Style
	if s.FontFamily != want.FontFamily {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeFont, "Wrong font family (should be %s)", want.FontFamily)
	}
	if s.FontSize != want.FontSize {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeFont, "Wrong font size (should be %s)", formatSize(want.FontSize))
	}
	if s.Bold != want.Bold {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeTextStyle, "%s", should(want.Bold, "bold"))
	}
	if s.Italic != want.Italic {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeTextStyle, "%s", should(want.Italic, "italic"))
	}
	if s.Underline != want.Underline {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeTextStyle, "%s", should(want.Underline, "underlined"))
	}
	if s.Strikethrough != want.Strikethrough {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeTextStyle, "%s", should(want.Strikethrough, "strikethrough"))
	}
	if s.HAlign != want.HAlign {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeAlignment, "Wrong horizontal alignment (should be %s)", want.HAlign)
	}
	if s.VAlign != want.VAlign {
		r.cell(c.Row, c.Col, models.CategoryStyle, models.CodeAlignment, "Wrong vertical alignment (should be %s)", want.VAlign)
	}
}

func should(want bool, what string) string {
	if want {
		return "Should be " + what
	}
	return "Should not be " + what
}

func formatSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}
