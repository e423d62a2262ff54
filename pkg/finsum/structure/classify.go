// Package structure reconstructs the group/sub-item/subtotal/total tree of the ledger from the
// flat grid rows.
package structure

import (
	"strings"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// Classification is the role of a row plus any near-miss anomaly of its column-A text.
type Classification struct {
	Role    models.Role
	Anomaly models.Anomaly
}

// Classify decides the role of a row from its column-A text and the column-A text of the next
// row whose column A is not empty.
//
// Sentinels match exactly and case-sensitively. Text that looks like a sentinel but is not one
// is flagged, never silently promoted: a near-miss subtotal keeps the subtotal role so the row
// grammar reports the wrong text, a near-miss total stays ordinary text. A dash not followed by
// a space is a sub-item with an anomaly.
func Classify(text, next string) Classification {
	switch {
	case text == models.TotalSentinel:
		return Classification{Role: models.RoleTotal}
	case text == models.SubtotalSentinel:
		return Classification{Role: models.RoleSubtotal}
	case strings.HasPrefix(text, models.SubItemPrefix):
		return Classification{Role: models.RoleSubItem}
	case strings.HasPrefix(text, "-"):
		return Classification{Role: models.RoleSubItem, Anomaly: models.AnomalyDashWithoutSpace}
	case strings.TrimSpace(text) == "":
		return Classification{Role: models.RoleBlank}
	case isSubtotalNearMiss(text):
		return Classification{Role: models.RoleSubtotal, Anomaly: models.AnomalySubtotalNearMiss}
	case isTotalNearMiss(text):
		return Classification{Role: models.RoleOther, Anomaly: models.AnomalyTotalNearMiss}
	}

	if strings.HasPrefix(next, "-") {
		return Classification{Role: models.RoleGroupHeader}
	}
	return Classification{Role: models.RoleOther}
}

// ClassifyCell classifies a column-A cell. Only text takes part in the sentinel and prefix
// rules: a number or boolean is ordinary content whatever it displays as, so a row holding -5
// reads as a group header or other text and the row grammar reports its type.
func ClassifyCell(c *grid.Cell, next string) Classification {
	if c == nil {
		return Classify("", next)
	}
	switch c.Value.Kind {
	case grid.ValueNumber, grid.ValueBool:
		if strings.HasPrefix(next, "-") {
			return Classification{Role: models.RoleGroupHeader}
		}
		return Classification{Role: models.RoleOther}
	}
	return Classify(c.Value.String(), next)
}

func isSubtotalNearMiss(text string) bool {
	return strings.Contains(strings.ToLower(text), "subtotal")
}

func isTotalNearMiss(text string) bool {
	if strings.Contains(text, "TOTAL") {
		return true
	}
	trimmed := strings.TrimSpace(text)
	return strings.EqualFold(trimmed, "total") || strings.EqualFold(trimmed, "total:")
}

// opensGroup reports whether a classified row starts a new group: any non-blank text that is
// neither a sub-item nor a subtotal nor a near-miss total.
func opensGroup(c Classification) bool {
	switch c.Role {
	case models.RoleGroupHeader:
		return true
	case models.RoleOther:
		return c.Anomaly != models.AnomalyTotalNearMiss
	}
	return false
}
