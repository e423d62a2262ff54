package grid

import (
	"context"
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates the requested sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// AccessError represents a failure while reading or writing the grid.
type AccessError struct {
	Sheet string
	Op    string // "read", "write", "open", "save"
	Err   error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("grid %s error in sheet %q: %v", e.Op, e.Sheet, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// NewAccessError creates a new AccessError.
func NewAccessError(sheet, op string, err error) *AccessError {
	return &AccessError{
		Sheet: sheet,
		Op:    op,
		Err:   err,
	}
}

// Reader is the read side of a sheet. The ledger validators only ever see a Reader
// (through a Snapshot).
type Reader interface {
	// Name returns the sheet name.
	Name() string
	// Bounds returns the sheet's grid dimensions (row and column count).
	Bounds(ctx context.Context) (rows, cols int, err error)
	// LastRow returns the last row holding a value or formula, 0 for an empty sheet.
	LastRow(ctx context.Context) (int, error)
	// Range reads values, formulas, styles, notes, validations and hyperlinks in bulk.
	// The returned block is clipped to Bounds.
	Range(ctx context.Context, r Rect) (*Block, error)
	// ConditionalFormatRanges lists the ranges of every conditional-format rule.
	ConditionalFormatRanges(ctx context.Context) ([]Rect, error)
	// DrawingAnchors lists pictures, shapes and charts by their anchor cell.
	DrawingAnchors(ctx context.Context) ([]Anchor, error)
	// ColumnWidth returns a column's width in pixels.
	ColumnWidth(ctx context.Context, col int) (float64, error)
}

// Writer is the write side of a sheet, used by the restorer only.
type Writer interface {
	// SetValues writes a rectangle of values with its top-left corner at row, col.
	SetValues(ctx context.Context, row, col int, values [][]Value) error
	// SetFormula writes a formula to one cell. Its result is left to the grid.
	SetFormula(ctx context.Context, row, col int, formula string) error
	// SetStyle overwrites the full presentation profile of every cell in r.
	SetStyle(ctx context.Context, r Rect, s Style) error
	// Clear removes values, formulas, notes, validations, hyperlinks and styling from r.
	Clear(ctx context.Context, r Rect) error
	// ClearAnnotations removes notes, validations and hyperlinks from r, keeping values.
	ClearAnnotations(ctx context.Context, r Rect) error
	// SetValidation attaches v to every cell of r; nil removes validation.
	SetValidation(ctx context.Context, r Rect, v *Validation) error
	// RemoveConditionalFormats deletes every conditional-format rule whose range intersects r.
	RemoveConditionalFormats(ctx context.Context, r Rect) error
	// RemoveDrawings deletes every drawing anchored inside r.
	RemoveDrawings(ctx context.Context, r Rect) error
	// SetColumnWidth sets a column's width in pixels.
	SetColumnWidth(ctx context.Context, col int, px float64) error
}

// Sheet is a readable and writable sheet.
type Sheet interface {
	Reader
	Writer
}

// Workbook is a collection of sheets backed by some native storage.
type Workbook interface {
	SheetNames(ctx context.Context) ([]string, error)
	// Sheet returns the named sheet or an error wrapping ErrSheetNotFound.
	Sheet(ctx context.Context, name string) (Sheet, error)
	AddSheet(ctx context.Context, name string) error
	DeleteSheet(ctx context.Context, name string) error
	// Save persists pending writes. Backends writing through immediately return nil.
	Save(ctx context.Context) error
	Close() error
}

// Row is the six leading cells of one grid row.
type Row struct {
	Index int
	Cells [6]Cell
}

// ReadRow reads columns A–F of one row.
func ReadRow(ctx context.Context, r Reader, row int) (Row, error) {
	block, err := r.Range(ctx, Rect{Row: row, Col: 1, Rows: 1, Cols: 6})
	if err != nil {
		return Row{}, err
	}
	out := Row{Index: row}
	for col := 1; col <= 6; col++ {
		if c := block.Cell(row, col); c != nil {
			out.Cells[col-1] = *c
		} else {
			out.Cells[col-1] = Cell{Row: row, Col: col}
		}
	}
	return out, nil
}
