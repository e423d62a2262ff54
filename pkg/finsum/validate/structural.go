package validate

import (
	"strings"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// Structure checks every row of the tree against the row grammar, the contiguity of each group
// and the presence of its subtotal, and reports the rows the parser left outside any group.
func Structure(tree *models.LedgerTree, snap *grid.Snapshot) []models.Issue {
	r := newReport()

	checkRow(r, snap, tree.TotalRow, models.RoleTotal)

	for _, g := range tree.Groups {
		checkGroup(r, snap, g)
	}

	for _, s := range tree.Strays {
		checkStray(r, s)
	}

	return r.issues
}

func checkGroup(r *report, snap *grid.Snapshot, g models.Group) {
	checkRow(r, snap, g.StartRow, models.RoleGroupHeader)

	last := g.StartRow
	for _, item := range g.SubItems {
		if item.Row != last+1 {
			r.at("", last+1, models.CategoryStructural, models.CodeSubItemGap,
				"Empty line detected between sub-items at row %d", last+1)
		}
		checkRow(r, snap, item.Row, models.RoleSubItem)
		last = item.Row
	}

	if !g.HasSubtotal() {
		r.at("", g.StartRow, models.CategoryStructural, models.CodeMissingSubtotal,
			"Missing Subtotal for group %q", g.Name)
		return
	}
	if g.SubtotalRow != last+1 {
		r.at("", last+1, models.CategoryStructural, models.CodeSubtotalGap,
			"Empty line detected before Subtotal at row %d", last+1)
	}
	checkRow(r, snap, g.SubtotalRow, models.RoleSubtotal)
}

func checkStray(r *report, s models.StrayRow) {
	switch s.Role {
	case models.RoleSubItem:
		r.row(s.Row, models.CategoryStructural, models.CodeStraySubItem, "Sub-item outside of any group")
	case models.RoleSubtotal:
		r.row(s.Row, models.CategoryStructural, models.CodeStraySubtotal, "Subtotal without a group")
	default:
		r.row(s.Row, models.CategoryStructural, models.CodeTotalNearMiss,
			"Expected %q, got %q", models.TotalSentinel, s.Text)
	}
}

// checkRow validates one row against the grammar of its role. A failed exact match or prefix
// skips the column checks of the row.
func checkRow(r *report, snap *grid.Snapshot, row int, role models.Role) {
	rule, ok := contract.RuleFor(role)
	if !ok {
		return
	}
	text := snap.Text(row, 1)

	if rule.ExactMatch != "" && text != rule.ExactMatch {
		r.row(row, models.CategoryStructural, models.CodeExactMatch, "Expected %q, got %q", rule.ExactMatch, text)
		return
	}
	if rule.Prefix != "" && !strings.HasPrefix(text, rule.Prefix) {
		if strings.HasPrefix(text, "-") {
			r.row(row, models.CategoryStructural, models.CodeMissingSpace,
				"Should start with %q (missing space after dash)", rule.Prefix)
			return
		}
		r.row(row, models.CategoryStructural, models.CodePrefix, "Should start with %q", rule.Prefix)
		return
	}

	for i, colRule := range rule.Columns {
		checkColumn(r, snap, cellAt(snap, row, i+1), colRule)
	}
}

func checkColumn(r *report, snap *grid.Snapshot, c *grid.Cell, rule contract.ColumnRule) {
	if rule.Type == contract.TypeEmpty {
		if findings := Pristine(snap, c); len(findings) > 0 {
			f := findings[0]
			r.cell(c.Row, c.Col, f.Category(), f.Code, "%s", f.Message)
		}
		return
	}

	if !c.HasContent() {
		if rule.Required {
			r.cell(c.Row, c.Col, models.CategoryStructural, models.CodeRequired, "Required value missing")
		}
		return
	}

	pending := c.Value.Kind == grid.ValuePending
	switch rule.Type {
	case contract.TypeNumber:
		if c.Value.Kind != grid.ValueNumber && !pending {
			r.cell(c.Row, c.Col, models.CategoryStructural, models.CodeNotNumber, "Should be a number")
		}
		if !contract.IsAcceptedNumberFormat(c.Style.NumberFormat) {
			r.cell(c.Row, c.Col, models.CategoryStructural, models.CodeNumberFormat,
				"Wrong number format (should be one of: %s)", strings.Join(contract.NumberFormats(), ", "))
		}
	case contract.TypeString:
		if c.Value.Kind != grid.ValueText && !pending {
			r.cell(c.Row, c.Col, models.CategoryStructural, models.CodeNotText, "Should be text")
		}
	}
}
