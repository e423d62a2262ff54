package gsheets

import (
	"context"
	"slices"

	"google.golang.org/api/sheets/v4"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// Field masks of the update requests.
const (
	fieldsValue       = "userEnteredValue"
	fieldsFormat      = "userEnteredFormat"
	fieldsAll         = "*"
	fieldsAnnotations = "note,dataValidation,textFormatRuns,userEnteredFormat.textFormat.link"
)

// SetValues queues one update per run of cells; pending cells are skipped so their
// formulas survive.
func (s *Sheet) SetValues(ctx context.Context, row, col int, values [][]grid.Value) error {
	var reqs []*sheets.Request
	for i, line := range values {
		start := -1
		var cells []*sheets.CellData
		emit := func() {
			if start < 0 {
				return
			}
			reqs = append(reqs, updateCells(s.id, row+i, col+start, cells, fieldsValue))
			start, cells = -1, nil
		}
		for j, v := range line {
			if v.Kind == grid.ValuePending {
				emit()
				continue
			}
			if start < 0 {
				start = j
			}
			cells = append(cells, &sheets.CellData{UserEnteredValue: toValue(v)})
		}
		emit()
	}
	s.wb.queue(reqs...)
	return nil
}

func updateCells(sheetID int64, row, col int, cells []*sheets.CellData, fields string) *sheets.Request {
	return &sheets.Request{UpdateCells: &sheets.UpdateCellsRequest{
		Start: &sheets.GridCoordinate{
			SheetId:     sheetID,
			RowIndex:    int64(row - 1),
			ColumnIndex: int64(col - 1),
		},
		Rows:   []*sheets.RowData{{Values: cells}},
		Fields: fields,
	}}
}

func (s *Sheet) SetFormula(ctx context.Context, row, col int, formula string) error {
	f := formula
	cell := &sheets.CellData{UserEnteredValue: &sheets.ExtendedValue{FormulaValue: &f}}
	s.wb.queue(updateCells(s.id, row, col, []*sheets.CellData{cell}, fieldsValue))
	return nil
}

// SetStyle queues a format request. Consecutive calls with the same style over cells that
// continue the previous range along a row or column extend one request.
func (s *Sheet) SetStyle(ctx context.Context, r grid.Rect, style grid.Style) error {
	s.wb.queueStyle(s.id, r, style)
	return nil
}

// adjoin returns the range covering a and b when b continues a along a row or a column.
func adjoin(a, b grid.Rect) (grid.Rect, bool) {
	switch {
	case a.Row == b.Row && a.Rows == b.Rows && b.Col == a.LastCol()+1:
		return grid.Rect{Row: a.Row, Col: a.Col, Rows: a.Rows, Cols: a.Cols + b.Cols}, true
	case a.Col == b.Col && a.Cols == b.Cols && b.Row == a.LastRow()+1:
		return grid.Rect{Row: a.Row, Col: a.Col, Rows: a.Rows + b.Rows, Cols: a.Cols}, true
	}
	return grid.Rect{}, false
}

func (s *Sheet) clearFields(ctx context.Context, r grid.Rect, fields string) error {
	s.wb.queue(&sheets.Request{UpdateCells: &sheets.UpdateCellsRequest{
		Range:  gridRange(s.id, r),
		Fields: fields,
	}})
	return nil
}

func (s *Sheet) Clear(ctx context.Context, r grid.Rect) error {
	return s.clearFields(ctx, r, fieldsAll)
}

func (s *Sheet) ClearAnnotations(ctx context.Context, r grid.Rect) error {
	return s.clearFields(ctx, r, fieldsAnnotations)
}

func (s *Sheet) SetValidation(ctx context.Context, r grid.Rect, v *grid.Validation) error {
	rule, err := toValidation(v)
	if err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	s.wb.queue(&sheets.Request{SetDataValidation: &sheets.SetDataValidationRequest{
		Range: gridRange(s.id, r),
		Rule:  rule,
	}})
	return nil
}

// RemoveConditionalFormats deletes rules from the highest index down so earlier indexes
// stay valid within the batch.
func (s *Sheet) RemoveConditionalFormats(ctx context.Context, r grid.Rect) error {
	p, err := s.props(ctx)
	if err != nil {
		return err
	}
	rows, cols := gridSize(p)
	var indexes []int
	for i, rule := range p.ConditionalFormats {
		for _, gr := range rule.Ranges {
			if fromGridRange(gr, rows, cols).Intersects(r) {
				indexes = append(indexes, i)
				break
			}
		}
	}
	slices.Reverse(indexes)
	for _, i := range indexes {
		s.wb.queue(&sheets.Request{DeleteConditionalFormatRule: &sheets.DeleteConditionalFormatRuleRequest{
			SheetId: p.Properties.SheetId,
			Index:   int64(i),
		}})
	}
	return nil
}

func (s *Sheet) RemoveDrawings(ctx context.Context, r grid.Rect) error {
	p, err := s.props(ctx)
	if err != nil {
		return err
	}
	for _, chart := range p.Charts {
		a, ok := chartAnchor(chart)
		if !ok || !r.Contains(a.Row, a.Col) {
			continue
		}
		s.wb.queue(&sheets.Request{DeleteEmbeddedObject: &sheets.DeleteEmbeddedObjectRequest{
			ObjectId: chart.ChartId,
		}})
	}
	return nil
}

func (s *Sheet) SetColumnWidth(ctx context.Context, col int, px float64) error {
	s.wb.queue(&sheets.Request{UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
		Range: &sheets.DimensionRange{
			SheetId:    s.id,
			Dimension:  "COLUMNS",
			StartIndex: int64(col - 1),
			EndIndex:   int64(col),
		},
		Properties: &sheets.DimensionProperties{PixelSize: int64(px)},
		Fields:     "pixelSize",
	}})
	return nil
}
