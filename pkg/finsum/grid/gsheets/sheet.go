package gsheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// widthColumns is how many leading columns a width lookup fetches at once.
const widthColumns = 26

// Sheet is one tab of a Workbook.
type Sheet struct {
	wb   *Workbook
	name string
	id   int64

	widths     map[int]float64
	widthsFrom int
}

func (s *Sheet) Name() string { return s.name }

func (s *Sheet) props(ctx context.Context) (*sheets.Sheet, error) {
	return s.wb.sheet(ctx, s.name)
}

func (s *Sheet) Bounds(ctx context.Context) (int, int, error) {
	p, err := s.props(ctx)
	if err != nil {
		return 0, 0, err
	}
	gp := p.Properties.GridProperties
	if gp == nil {
		return 0, 0, grid.NewAccessError(s.name, "read", fmt.Errorf("sheet has no grid"))
	}
	return int(gp.RowCount), int(gp.ColumnCount), nil
}

func (s *Sheet) LastRow(ctx context.Context) (int, error) {
	if err := s.wb.flush(ctx); err != nil {
		return 0, grid.NewAccessError(s.name, "read", err)
	}
	vr, err := s.wb.svc.Spreadsheets.Values.Get(s.wb.id, a1(s.name, grid.Rect{})).
		ValueRenderOption("FORMULA").
		Context(ctx).
		Do()
	if err != nil {
		return 0, grid.NewAccessError(s.name, "read", err)
	}
	for i := len(vr.Values) - 1; i >= 0; i-- {
		for _, v := range vr.Values[i] {
			if fmt.Sprint(v) != "" {
				return i + 1, nil
			}
		}
	}
	return 0, nil
}

// fetch reads r with grid data. Rows and columns the API omits are empty cells.
func (s *Sheet) fetch(ctx context.Context, r grid.Rect) (*sheets.GridData, error) {
	if err := s.wb.flush(ctx); err != nil {
		return nil, err
	}
	resp, err := s.wb.svc.Spreadsheets.Get(s.wb.id).
		Ranges(a1(s.name, r)).
		IncludeGridData(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Sheets) == 0 || len(resp.Sheets[0].Data) == 0 {
		return &sheets.GridData{}, nil
	}
	return resp.Sheets[0].Data[0], nil
}

func (s *Sheet) Range(ctx context.Context, r grid.Rect) (*grid.Block, error) {
	rows, cols, err := s.Bounds(ctx)
	if err != nil {
		return nil, err
	}
	clip := r.Intersect(grid.Rect{Row: 1, Col: 1, Rows: rows, Cols: cols})
	block := grid.NewBlock(clip)
	if clip.Empty() {
		return block, nil
	}

	data, err := s.fetch(ctx, clip)
	if err != nil {
		return nil, grid.NewAccessError(s.name, "read", err)
	}
	for i := range block.Cells {
		for j := range block.Cells[i] {
			c := &block.Cells[i][j]
			c.Style = grid.DefaultStyle()
			if i >= len(data.RowData) || j >= len(data.RowData[i].Values) {
				continue
			}
			cd := data.RowData[i].Values[j]
			c.Value, c.Formula = fromCell(cd)
			c.Style = fromFormat(cd.EffectiveFormat)
			c.Note = cd.Note
			c.Hyperlink = cd.Hyperlink
			c.Validation = fromValidation(cd.DataValidation)
		}
	}
	return block, nil
}

func (s *Sheet) ConditionalFormatRanges(ctx context.Context) ([]grid.Rect, error) {
	p, err := s.props(ctx)
	if err != nil {
		return nil, err
	}
	rows, cols := gridSize(p)
	var rects []grid.Rect
	for _, rule := range p.ConditionalFormats {
		for _, gr := range rule.Ranges {
			rects = append(rects, fromGridRange(gr, rows, cols))
		}
	}
	return rects, nil
}

// DrawingAnchors lists embedded charts. Over-grid images are not exposed by the API.
func (s *Sheet) DrawingAnchors(ctx context.Context) ([]grid.Anchor, error) {
	p, err := s.props(ctx)
	if err != nil {
		return nil, err
	}
	var anchors []grid.Anchor
	for _, chart := range p.Charts {
		if a, ok := chartAnchor(chart); ok {
			anchors = append(anchors, a)
		}
	}
	return anchors, nil
}

func chartAnchor(chart *sheets.EmbeddedChart) (grid.Anchor, bool) {
	pos := chart.Position
	if pos == nil || pos.OverlayPosition == nil || pos.OverlayPosition.AnchorCell == nil {
		return grid.Anchor{}, false
	}
	cell := pos.OverlayPosition.AnchorCell
	a := grid.Anchor{
		Row:  int(cell.RowIndex) + 1,
		Col:  int(cell.ColumnIndex) + 1,
		Kind: "chart",
		Name: fmt.Sprintf("chart %d", chart.ChartId),
	}
	if chart.Spec != nil && chart.Spec.Title != "" {
		a.Name = chart.Spec.Title
	}
	return a, true
}

func (s *Sheet) ColumnWidth(ctx context.Context, col int) (float64, error) {
	gen := s.wb.currentGeneration()
	if s.widths == nil || s.widthsFrom != gen || col > len(s.widths) {
		_, cols, err := s.Bounds(ctx)
		if err != nil {
			return 0, err
		}
		data, err := s.fetch(ctx, grid.Rect{Row: 1, Col: 1, Rows: 1, Cols: min(max(col, widthColumns), cols)})
		if err != nil {
			return 0, grid.NewAccessError(s.name, "read", err)
		}
		s.widths = make(map[int]float64, len(data.ColumnMetadata))
		for i, md := range data.ColumnMetadata {
			s.widths[i+1] = float64(md.PixelSize)
		}
		s.widthsFrom = s.wb.currentGeneration()
	}
	if w, ok := s.widths[col]; ok {
		return w, nil
	}
	return grid.DefaultColumnWidth, nil
}

func gridSize(p *sheets.Sheet) (rows, cols int) {
	if gp := p.Properties.GridProperties; gp != nil {
		return int(gp.RowCount), int(gp.ColumnCount)
	}
	return 0, 0
}
