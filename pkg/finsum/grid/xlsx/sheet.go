package xlsx

import (
	"context"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// Sheet is one worksheet of a Workbook.
type Sheet struct {
	wb   *Workbook
	name string
}

func (s *Sheet) Name() string { return s.name }

// Bounds reports the worksheet limits; an .xlsx sheet has no fixed grid size.
func (s *Sheet) Bounds(ctx context.Context) (int, int, error) {
	return excelize.TotalRows, excelize.MaxColumns, nil
}

func (s *Sheet) LastRow(ctx context.Context) (int, error) {
	// GetRows keeps rows whose only content is a formula without a cached value.
	rows, err := s.wb.f.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, grid.NewAccessError(s.name, "read", err)
	}
	return len(rows), nil
}

func (s *Sheet) Range(ctx context.Context, r grid.Rect) (*grid.Block, error) {
	f := s.wb.f
	clip := r.Intersect(grid.Rect{Row: 1, Col: 1, Rows: excelize.TotalRows, Cols: excelize.MaxColumns})
	block := grid.NewBlock(clip)
	if clip.Empty() {
		return block, nil
	}

	notes, err := s.notes()
	if err != nil {
		return nil, grid.NewAccessError(s.name, "read", err)
	}
	validations, err := s.validations()
	if err != nil {
		return nil, grid.NewAccessError(s.name, "read", err)
	}

	for i := 0; i < clip.Rows; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := 0; j < clip.Cols; j++ {
			c := &block.Cells[i][j]
			ref := c.Address()

			if c.Value, c.Formula, err = s.value(ref); err != nil {
				return nil, grid.NewAccessError(s.name, "read", err)
			}
			id, err := f.GetCellStyle(s.name, ref)
			if err != nil {
				return nil, grid.NewAccessError(s.name, "read", err)
			}
			if c.Style, err = s.wb.style(id); err != nil {
				return nil, grid.NewAccessError(s.name, "read", err)
			}
			if ok, target, err := f.GetCellHyperLink(s.name, ref); err != nil {
				return nil, grid.NewAccessError(s.name, "read", err)
			} else if ok {
				c.Hyperlink = target
			}
			c.Note = notes[ref]
			c.Validation = validations.at(c.Row, c.Col)
		}
	}
	return block, nil
}

// value reads a cell's raw value and formula. A formula without a cached result is pending.
func (s *Sheet) value(ref string) (grid.Value, string, error) {
	f := s.wb.f
	formula, err := f.GetCellFormula(s.name, ref)
	if err != nil {
		return grid.Value{}, "", err
	}
	if formula != "" && !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}
	raw, err := f.GetCellValue(s.name, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return grid.Value{}, "", err
	}
	if raw == "" {
		if formula != "" {
			return grid.Value{Kind: grid.ValuePending}, formula, nil
		}
		return grid.Value{}, "", nil
	}
	typ, err := f.GetCellType(s.name, ref)
	if err != nil {
		return grid.Value{}, "", err
	}
	switch typ {
	case excelize.CellTypeBool:
		return grid.Bool(raw == "1" || strings.EqualFold(raw, "true")), formula, nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return grid.Number(n), formula, nil
		}
	}
	return grid.Text(raw), formula, nil
}

func (s *Sheet) notes() (map[string]string, error) {
	comments, err := s.wb.f.GetComments(s.name)
	if err != nil {
		return nil, err
	}
	notes := make(map[string]string, len(comments))
	for _, c := range comments {
		text := c.Text
		for _, run := range c.Paragraph {
			text += run.Text
		}
		if text == "" {
			text = " "
		}
		notes[c.Cell] = text
	}
	return notes, nil
}

type validationRange struct {
	rects []grid.Rect
	rule  *grid.Validation
}

type validationSet []validationRange

func (vs validationSet) at(row, col int) *grid.Validation {
	for _, v := range vs {
		for _, r := range v.rects {
			if r.Contains(row, col) {
				copied := *v.rule
				return &copied
			}
		}
	}
	return nil
}

func (s *Sheet) validations() (validationSet, error) {
	dvs, err := s.wb.f.GetDataValidations(s.name)
	if err != nil {
		return nil, err
	}
	var set validationSet
	for _, dv := range dvs {
		set = append(set, validationRange{rects: grid.ParseSqref(dv.Sqref), rule: fromDataValidation(dv)})
	}
	return set, nil
}

// fromDataValidation maps an excelize rule. A TRUE/FALSE drop list is how a checkbox is
// stored in a file.
func fromDataValidation(dv *excelize.DataValidation) *grid.Validation {
	if dv.Type != "list" {
		return &grid.Validation{Kind: grid.ValidationOther}
	}
	formula := strings.Trim(dv.Formula1, `"`)
	var values []string
	for _, v := range strings.Split(formula, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 2 && strings.EqualFold(values[0], "TRUE") && strings.EqualFold(values[1], "FALSE") {
		return &grid.Validation{Kind: grid.ValidationCheckbox}
	}
	return &grid.Validation{Kind: grid.ValidationList, Values: values}
}

func (s *Sheet) ConditionalFormatRanges(ctx context.Context) ([]grid.Rect, error) {
	formats, err := s.wb.f.GetConditionalFormats(s.name)
	if err != nil {
		return nil, grid.NewAccessError(s.name, "read", err)
	}
	var rects []grid.Rect
	for sqref := range formats {
		rects = append(rects, grid.ParseSqref(sqref)...)
	}
	return rects, nil
}

func (s *Sheet) DrawingAnchors(ctx context.Context) ([]grid.Anchor, error) {
	anchors, err := s.wb.anchors(s.name)
	if err != nil {
		return nil, grid.NewAccessError(s.name, "read", err)
	}
	return anchors, nil
}

func (s *Sheet) ColumnWidth(ctx context.Context, col int) (float64, error) {
	w, err := s.wb.f.GetColWidth(s.name, grid.ColumnName(col))
	if err != nil {
		return 0, grid.NewAccessError(s.name, "read", err)
	}
	return widthToPixels(w), nil
}
