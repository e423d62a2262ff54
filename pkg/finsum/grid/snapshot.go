package grid

import (
	"context"
	"fmt"
)

// Snapshot is an immutable bulk read of the part of a sheet one check or restore pass needs.
// Taking all reads together keeps the window for concurrent user edits small.
type Snapshot struct {
	Sheet   string
	Block   *Block
	LastRow int
	// GridRows and GridCols are the sheet's dimensions at read time.
	GridRows           int
	GridCols           int
	ConditionalFormats []Rect
	Drawings           []Anchor
	ColumnWidths       map[int]float64
}

// TakeSnapshot reads rows 1..rows and columns 1..cols of r, plus the sheet-level overlays and
// column widths of those columns.
func TakeSnapshot(ctx context.Context, r Reader, rows, cols int) (*Snapshot, error) {
	lastRow, err := r.LastRow(ctx)
	if err != nil {
		return nil, fmt.Errorf("last row: %w", err)
	}
	if lastRow > rows {
		rows = lastRow
	}

	gridRows, gridCols, err := r.Bounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("bounds: %w", err)
	}

	block, err := r.Range(ctx, Rect{Row: 1, Col: 1, Rows: rows, Cols: cols})
	if err != nil {
		return nil, fmt.Errorf("range: %w", err)
	}

	cf, err := r.ConditionalFormatRanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("conditional formats: %w", err)
	}

	drawings, err := r.DrawingAnchors(ctx)
	if err != nil {
		return nil, fmt.Errorf("drawings: %w", err)
	}

	widths := make(map[int]float64, cols)
	for col := 1; col <= cols; col++ {
		w, err := r.ColumnWidth(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("column %s width: %w", ColumnName(col), err)
		}
		widths[col] = w
	}

	return &Snapshot{
		Sheet:              r.Name(),
		Block:              block,
		LastRow:            lastRow,
		GridRows:           gridRows,
		GridCols:           gridCols,
		ConditionalFormats: cf,
		Drawings:           drawings,
		ColumnWidths:       widths,
	}, nil
}

// Cell returns the cell at row, col or nil when it was not read.
func (s *Snapshot) Cell(row, col int) *Cell {
	return s.Block.Cell(row, col)
}

// Text returns the displayed text of a cell, "" when it was not read.
func (s *Snapshot) Text(row, col int) string {
	if c := s.Cell(row, col); c != nil {
		return c.Value.String()
	}
	return ""
}

// Rows returns the number of rows read.
func (s *Snapshot) Rows() int {
	return s.Block.Rect.LastRow()
}

// Region returns the cells of r that were read. The region's Rect is clipped to what the
// sheet actually has, so callers can detect truncated ranges.
func (s *Snapshot) Region(r Rect) *Block {
	return s.Block.Sub(r)
}

// InConditionalFormat reports whether any conditional-format rule covers the cell.
func (s *Snapshot) InConditionalFormat(row, col int) bool {
	for _, r := range s.ConditionalFormats {
		if r.Contains(row, col) {
			return true
		}
	}
	return false
}

// HasDrawing reports whether a drawing is anchored at the cell.
func (s *Snapshot) HasDrawing(row, col int) bool {
	for _, a := range s.Drawings {
		if a.Row == row && a.Col == col {
			return true
		}
	}
	return false
}
