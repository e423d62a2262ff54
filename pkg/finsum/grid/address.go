package grid

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Rect is a rectangular cell range with a 1-based top-left corner.
type Rect struct {
	Row  int
	Col  int
	Rows int
	Cols int
}

// RectFromCorners builds a Rect from inclusive corner coordinates.
func RectFromCorners(row1, col1, row2, col2 int) Rect {
	if row2 < row1 {
		row1, row2 = row2, row1
	}
	if col2 < col1 {
		col1, col2 = col2, col1
	}
	return Rect{Row: row1, Col: col1, Rows: row2 - row1 + 1, Cols: col2 - col1 + 1}
}

// LastRow is the bottom row, inclusive.
func (r Rect) LastRow() int {
	return r.Row + r.Rows - 1
}

// LastCol is the right-most column, inclusive.
func (r Rect) LastCol() int {
	return r.Col + r.Cols - 1
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Rows <= 0 || r.Cols <= 0
}

// Contains reports whether the cell at row, col lies inside the rect.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Row && row <= r.LastRow() && col >= r.Col && col <= r.LastCol()
}

// Intersect returns the overlap of two rects; the result is Empty when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	row1, col1 := max(r.Row, o.Row), max(r.Col, o.Col)
	row2, col2 := min(r.LastRow(), o.LastRow()), min(r.LastCol(), o.LastCol())
	if row2 < row1 || col2 < col1 {
		return Rect{Row: row1, Col: col1}
	}
	return Rect{Row: row1, Col: col1, Rows: row2 - row1 + 1, Cols: col2 - col1 + 1}
}

// Intersects reports whether two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// String renders the rect in A1 notation, e.g. "A1:F1000".
func (r Rect) String() string {
	if r.Empty() {
		return ""
	}
	start := CellName(r.Col, r.Row)
	if r.Rows == 1 && r.Cols == 1 {
		return start
	}
	return start + ":" + CellName(r.LastCol(), r.LastRow())
}

// CellName converts 1-based coordinates to an A1 cell name.
func CellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row, col)
	}
	return name
}

// ColumnName converts a 1-based column number to its letter(s).
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return fmt.Sprintf("C%d", col)
	}
	return name
}

// ParseRect parses a range like "$A$1:$D$10", "Sheet1!A1:B2" or a single cell "C3".
func ParseRect(ref string) (Rect, error) {
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return Rect{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Rect{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	if len(parts) == 1 {
		return Rect{Row: startRow, Col: startCol, Rows: 1, Cols: 1}, nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Rect{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	return RectFromCorners(startRow, startCol, endRow, endCol), nil
}

// ParseSqref parses a space or comma separated list of ranges, skipping malformed entries.
func ParseSqref(sqref string) []Rect {
	var rects []Rect
	for _, part := range strings.FieldsFunc(sqref, func(r rune) bool { return r == ' ' || r == ',' }) {
		if rect, err := ParseRect(part); err == nil {
			rects = append(rects, rect)
		}
	}
	return rects
}
