package contract

import (
	"strings"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// Sheet names of the workbook.
const (
	SummarySheet   = "Financial Summary"
	DebugLogSheet  = "Debug Logs"
	SnapshotPrefix = "Snapshot_"
)

// IsAllowedSheet reports whether a sheet may exist next to the summary sheet.
func IsAllowedSheet(name string) bool {
	return name == SummarySheet || name == DebugLogSheet || strings.HasPrefix(name, SnapshotPrefix)
}

const (
	// HeaderRow is the title row holding the column labels.
	HeaderRow = 1
	// FirstDataRow is where the ledger starts.
	FirstDataRow = 2
	// DeadRegionEnd bounds the scan for leftovers after the total row.
	DeadRegionEnd = 1000
	// SnapshotColumns covers the ledger (A–F), the separator (G) and the action panel (H–J).
	SnapshotColumns = 10
	// SeparatorColumn is column G.
	SeparatorColumn = 7
	// WidthTolerance is the accepted deviation of a column width in pixels.
	WidthTolerance = 5
)

// HeaderLabels are the row-1 labels of columns A–J. Column G has none.
var HeaderLabels = [SnapshotColumns]string{
	"Category", "Amount", "Currency", "Exchange Rate", "To Main Currency", "Notes",
	"",
	"Action", "Description", "Button",
}

// ColumnWidths are the expected widths in pixels of columns A–J.
var ColumnWidths = map[int]float64{
	1:  220,
	2:  100,
	3:  100,
	4:  150,
	5:  150,
	6:  180,
	7:  20,
	8:  180,
	9:  240,
	10: 80,
}

// ActionButton is one row of the action panel.
type ActionButton struct {
	Label       string
	Description string
}

// ActionButtons fill H2:J6; column J holds the checkbox.
var ActionButtons = []ActionButton{
	{Label: "Clear Data", Description: "Remove all data but keep headers"},
	{Label: "Fill Example Data", Description: "Insert sample financial data"},
	{Label: "Save Snapshot", Description: "Save a copy with UTC timestamp"},
	{Label: "Load Last Snapshot", Description: "Restore the last saved snapshot"},
	{Label: "Convert to Main Currency", Description: "Fetch exchange rates and recalculate"},
}

// Fixed regions of the layout.
var (
	MainHeader   = grid.Rect{Row: 1, Col: 1, Rows: 1, Cols: 6}
	ActionHeader = grid.Rect{Row: 1, Col: 8, Rows: 1, Cols: 3}
	ActionPanel  = grid.Rect{Row: 2, Col: 8, Rows: len(ActionButtons), Cols: 3}
	// LedgerArea is every bordered ledger cell, header included.
	LedgerArea = grid.Rect{Row: 1, Col: 1, Rows: DeadRegionEnd, Cols: LedgerColumns}
	// ActionArea is the bordered action panel, header included.
	ActionArea = grid.Rect{Row: 1, Col: 8, Rows: len(ActionButtons) + 1, Cols: 3}
	// SeparatorArea is column G down to the dead region end.
	SeparatorArea = grid.Rect{Row: 1, Col: SeparatorColumn, Rows: DeadRegionEnd, Cols: 1}
)

// HeaderText is the text style of the title cells.
var HeaderText = TextStyle{
	FontFamily: grid.DefaultFontFamily,
	FontSize:   12,
	Bold:       true,
	HAlign:     grid.AlignCenter,
	VAlign:     grid.AlignMiddle,
}

// Text styles of the action panel columns H, I and J.
var (
	ActionLabelText       = text(false, false, grid.AlignLeft)
	ActionDescriptionText = text(false, true, grid.AlignLeft)
	ActionCheckboxText    = text(false, false, grid.AlignCenter)
)

// ActionText returns the text style of an action panel column.
func ActionText(col int) TextStyle {
	switch col {
	case 8:
		return ActionLabelText
	case 9:
		return ActionDescriptionText
	default:
		return ActionCheckboxText
	}
}

// CheckboxValidation is the rule attached to the action checkboxes.
func CheckboxValidation() *grid.Validation {
	return &grid.Validation{Kind: grid.ValidationCheckbox}
}

// HeaderStyle is the full presentation of a title cell.
func HeaderStyle() grid.Style {
	return Apply(PristineStyle(), HeaderText)
}

// ActionStyle is the full presentation of an action panel cell.
func ActionStyle(col int) grid.Style {
	return Apply(PristineStyle(), ActionText(col))
}

// SeparatorStyle is the full presentation of a column G cell: no borders, no styling.
func SeparatorStyle() grid.Style {
	s := PristineStyle()
	s.Borders = grid.Borders{}
	return s
}
