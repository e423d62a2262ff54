package grid

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/tiendc/go-deepcopy"
)

// MemoryWorkbook is an in-memory Workbook, used for tests and as a scratch grid.
type MemoryWorkbook struct {
	mu     sync.Mutex
	order  []string
	sheets map[string]*MemorySheet
}

// NewMemoryWorkbook creates a workbook holding one empty sheet per name.
func NewMemoryWorkbook(names ...string) *MemoryWorkbook {
	wb := &MemoryWorkbook{sheets: make(map[string]*MemorySheet)}
	for _, name := range names {
		_ = wb.AddSheet(context.Background(), name)
	}
	return wb
}

func (wb *MemoryWorkbook) SheetNames(ctx context.Context) ([]string, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return slices.Clone(wb.order), nil
}

func (wb *MemoryWorkbook) Sheet(ctx context.Context, name string) (Sheet, error) {
	s, err := wb.MemorySheet(name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// MemorySheet returns the concrete sheet so tests can seed annotations directly.
func (wb *MemoryWorkbook) MemorySheet(name string) (*MemorySheet, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	s, ok := wb.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrSheetNotFound)
	}
	return s, nil
}

func (wb *MemoryWorkbook) AddSheet(ctx context.Context, name string) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if _, ok := wb.sheets[name]; ok {
		return fmt.Errorf("sheet %q already exists", name)
	}
	wb.sheets[name] = NewMemorySheet(name, 1000, 26)
	wb.order = append(wb.order, name)
	return nil
}

func (wb *MemoryWorkbook) DeleteSheet(ctx context.Context, name string) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if _, ok := wb.sheets[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrSheetNotFound)
	}
	delete(wb.sheets, name)
	wb.order = slices.DeleteFunc(wb.order, func(n string) bool { return n == name })
	return nil
}

func (wb *MemoryWorkbook) Save(ctx context.Context) error { return nil }

func (wb *MemoryWorkbook) Close() error { return nil }

// MemorySheet is an in-memory Sheet with a fixed grid size, like a Google Sheets tab.
type MemorySheet struct {
	mu       sync.Mutex
	name     string
	rows     int
	cols     int
	cells    map[[2]int]*Cell
	cf       []Rect
	drawings []Anchor
	widths   map[int]float64
}

// NewMemorySheet creates an empty sheet with a rows x cols grid.
func NewMemorySheet(name string, rows, cols int) *MemorySheet {
	return &MemorySheet{
		name:   name,
		rows:   rows,
		cols:   cols,
		cells:  make(map[[2]int]*Cell),
		widths: make(map[int]float64),
	}
}

// DefaultColumnWidth is the width of a column nobody resized.
const DefaultColumnWidth = 100

func (s *MemorySheet) Name() string { return s.name }

func (s *MemorySheet) Bounds(ctx context.Context) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows, s.cols, nil
}

// Resize changes the grid size, dropping cells that fall outside it.
func (s *MemorySheet) Resize(rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows, s.cols = rows, cols
	for key := range s.cells {
		if key[0] > rows || key[1] > cols {
			delete(s.cells, key)
		}
	}
}

func (s *MemorySheet) LastRow(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := 0
	for key, c := range s.cells {
		if c.HasContent() && key[0] > last {
			last = key[0]
		}
	}
	return last, nil
}

func (s *MemorySheet) Range(ctx context.Context, r Rect) (*Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clip := r.Intersect(Rect{Row: 1, Col: 1, Rows: s.rows, Cols: s.cols})
	block := NewBlock(clip)
	for i := 0; i < clip.Rows; i++ {
		for j := 0; j < clip.Cols; j++ {
			row, col := clip.Row+i, clip.Col+j
			src, ok := s.cells[[2]int{row, col}]
			if !ok {
				block.Cells[i][j].Style = DefaultStyle()
				continue
			}
			var dst Cell
			if err := deepcopy.Copy(&dst, *src); err != nil {
				return nil, NewAccessError(s.name, "read", err)
			}
			block.Cells[i][j] = dst
		}
	}
	return block, nil
}

func (s *MemorySheet) ConditionalFormatRanges(ctx context.Context) ([]Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cf), nil
}

func (s *MemorySheet) DrawingAnchors(ctx context.Context) ([]Anchor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.drawings), nil
}

func (s *MemorySheet) ColumnWidth(ctx context.Context, col int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.widths[col]; ok {
		return w, nil
	}
	return DefaultColumnWidth, nil
}

// cell returns the stored cell, creating it with the default style. Callers hold s.mu.
func (s *MemorySheet) cell(row, col int) *Cell {
	key := [2]int{row, col}
	c, ok := s.cells[key]
	if !ok {
		c = &Cell{Row: row, Col: col, Style: DefaultStyle()}
		s.cells[key] = c
	}
	return c
}

func (s *MemorySheet) inBounds(r Rect) error {
	if r.Empty() || r.Row < 1 || r.Col < 1 || r.LastRow() > s.rows || r.LastCol() > s.cols {
		return NewAccessError(s.name, "write", fmt.Errorf("range %s outside %dx%d grid", r, s.rows, s.cols))
	}
	return nil
}

func (s *MemorySheet) each(r Rect, fn func(c *Cell)) error {
	if err := s.inBounds(r); err != nil {
		return err
	}
	for row := r.Row; row <= r.LastRow(); row++ {
		for col := r.Col; col <= r.LastCol(); col++ {
			fn(s.cell(row, col))
		}
	}
	return nil
}

func (s *MemorySheet) SetValues(ctx context.Context, row, col int, values [][]Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, line := range values {
		for j, v := range line {
			if err := s.inBounds(Rect{Row: row + i, Col: col + j, Rows: 1, Cols: 1}); err != nil {
				return err
			}
			c := s.cell(row+i, col+j)
			c.Value = v
			c.Formula = ""
		}
	}
	return nil
}

// SetFormula stores the formula with a pending value; the memory grid does not evaluate.
func (s *MemorySheet) SetFormula(ctx context.Context, row, col int, formula string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inBounds(Rect{Row: row, Col: col, Rows: 1, Cols: 1}); err != nil {
		return err
	}
	c := s.cell(row, col)
	c.Value = Value{Kind: ValuePending}
	c.Formula = formula
	return nil
}

// SetCell stores a value and formula without touching presentation.
func (s *MemorySheet) SetCell(row, col int, v Value, formula string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cell(row, col)
	c.Value = v
	c.Formula = formula
}

// SetNote attaches a note to a cell.
func (s *MemorySheet) SetNote(row, col int, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cell(row, col).Note = note
}

// SetHyperlink attaches a hyperlink to a cell.
func (s *MemorySheet) SetHyperlink(row, col int, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cell(row, col).Hyperlink = target
}

// UpdateStyle applies fn to the style of one cell.
func (s *MemorySheet) UpdateStyle(row, col int, fn func(*Style)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cell(row, col).Style)
}

// AddConditionalFormat registers a conditional-format rule over r.
func (s *MemorySheet) AddConditionalFormat(r Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cf = append(s.cf, r)
}

// AddDrawing anchors a drawing object at a cell.
func (s *MemorySheet) AddDrawing(a Anchor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawings = append(s.drawings, a)
}

func (s *MemorySheet) SetStyle(ctx context.Context, r Rect, style Style) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.each(r, func(c *Cell) { c.Style = style })
}

func (s *MemorySheet) Clear(ctx context.Context, r Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inBounds(r); err != nil {
		return err
	}
	for row := r.Row; row <= r.LastRow(); row++ {
		for col := r.Col; col <= r.LastCol(); col++ {
			delete(s.cells, [2]int{row, col})
		}
	}
	return nil
}

func (s *MemorySheet) ClearAnnotations(ctx context.Context, r Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.each(r, func(c *Cell) {
		c.Note = ""
		c.Validation = nil
		c.Hyperlink = ""
	})
}

func (s *MemorySheet) SetValidation(ctx context.Context, r Rect, v *Validation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.each(r, func(c *Cell) {
		if v == nil {
			c.Validation = nil
			return
		}
		copied := *v
		copied.Values = slices.Clone(v.Values)
		c.Validation = &copied
	})
}

func (s *MemorySheet) RemoveConditionalFormats(ctx context.Context, r Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cf = slices.DeleteFunc(s.cf, func(cf Rect) bool { return cf.Intersects(r) })
	return nil
}

func (s *MemorySheet) RemoveDrawings(ctx context.Context, r Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawings = slices.DeleteFunc(s.drawings, func(a Anchor) bool { return r.Contains(a.Row, a.Col) })
	return nil
}

func (s *MemorySheet) SetColumnWidth(ctx context.Context, col int, px float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widths[col] = px
	return nil
}
