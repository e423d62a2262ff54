package grid

// Block is a bulk read of a rectangular range.
type Block struct {
	// Rect is the range actually read, which may be smaller than the one requested.
	Rect Rect
	// Cells is indexed [row-Rect.Row][col-Rect.Col].
	Cells [][]Cell
}

// NewBlock allocates a block of empty cells covering r.
func NewBlock(r Rect) *Block {
	b := &Block{Rect: r}
	if r.Empty() {
		return b
	}
	b.Cells = make([][]Cell, r.Rows)
	for i := range b.Cells {
		b.Cells[i] = make([]Cell, r.Cols)
		for j := range b.Cells[i] {
			b.Cells[i][j] = Cell{Row: r.Row + i, Col: r.Col + j}
		}
	}
	return b
}

// Cell returns the cell at row, col or nil when it lies outside the block.
func (b *Block) Cell(row, col int) *Cell {
	if b == nil || !b.Rect.Contains(row, col) {
		return nil
	}
	i, j := row-b.Rect.Row, col-b.Rect.Col
	if i >= len(b.Cells) || j >= len(b.Cells[i]) {
		return nil
	}
	return &b.Cells[i][j]
}

// Sub returns the part of the block overlapping r. Cells are shared, not copied.
func (b *Block) Sub(r Rect) *Block {
	clip := b.Rect.Intersect(r)
	sub := &Block{Rect: clip}
	if clip.Empty() {
		return sub
	}
	sub.Cells = make([][]Cell, clip.Rows)
	for i := range sub.Cells {
		row := b.Cells[clip.Row-b.Rect.Row+i]
		start := clip.Col - b.Rect.Col
		sub.Cells[i] = row[start : start+clip.Cols]
	}
	return sub
}
