package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

func (s *Sheet) SetValues(ctx context.Context, row, col int, values [][]grid.Value) error {
	f := s.wb.f
	for i, line := range values {
		for j, v := range line {
			ref := grid.CellName(col+j, row+i)
			var err error
			switch v.Kind {
			case grid.ValueText:
				err = f.SetCellStr(s.name, ref, v.Text)
			case grid.ValueNumber:
				err = f.SetCellFloat(s.name, ref, v.Number, -1, 64)
			case grid.ValueBool:
				err = f.SetCellBool(s.name, ref, v.Bool)
			case grid.ValuePending:
				continue
			default:
				err = s.clearValue(ref)
			}
			if err != nil {
				return grid.NewAccessError(s.name, "write", err)
			}
		}
	}
	return nil
}

func (s *Sheet) SetFormula(ctx context.Context, row, col int, formula string) error {
	ref := grid.CellName(col, row)
	if err := s.wb.f.SetCellFormula(s.name, ref, strings.TrimPrefix(formula, "=")); err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	return nil
}

func (s *Sheet) SetStyle(ctx context.Context, r grid.Rect, style grid.Style) error {
	id, err := s.wb.styleID(style)
	if err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	if err := s.wb.f.SetCellStyle(s.name, grid.CellName(r.Col, r.Row), grid.CellName(r.LastCol(), r.LastRow()), id); err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	return nil
}

func (s *Sheet) Clear(ctx context.Context, r grid.Rect) error {
	if err := s.ClearAnnotations(ctx, r); err != nil {
		return err
	}
	f := s.wb.f
	for row := r.Row; row <= r.LastRow(); row++ {
		for col := r.Col; col <= r.LastCol(); col++ {
			if err := s.clearValue(grid.CellName(col, row)); err != nil {
				return grid.NewAccessError(s.name, "write", err)
			}
		}
	}
	if err := f.SetCellStyle(s.name, grid.CellName(r.Col, r.Row), grid.CellName(r.LastCol(), r.LastRow()), 0); err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	return nil
}

// clearValue empties a cell holding a value or formula. Cells that are already empty are
// left alone so clearing a large range does not materialize them.
func (s *Sheet) clearValue(ref string) error {
	f := s.wb.f
	formula, err := f.GetCellFormula(s.name, ref)
	if err != nil {
		return err
	}
	if formula != "" {
		if err := f.SetCellFormula(s.name, ref, ""); err != nil {
			return err
		}
	}
	raw, err := f.GetCellValue(s.name, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	if raw == "" && formula == "" {
		return nil
	}
	return f.SetCellValue(s.name, ref, nil)
}

func (s *Sheet) ClearAnnotations(ctx context.Context, r grid.Rect) error {
	f := s.wb.f

	comments, err := f.GetComments(s.name)
	if err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	for _, c := range comments {
		col, row, err := excelize.CellNameToCoordinates(c.Cell)
		if err != nil || !r.Contains(row, col) {
			continue
		}
		if err := f.DeleteComment(s.name, c.Cell); err != nil {
			return grid.NewAccessError(s.name, "write", err)
		}
	}

	if err := f.DeleteDataValidation(s.name, r.String()); err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}

	for row := r.Row; row <= r.LastRow(); row++ {
		for col := r.Col; col <= r.LastCol(); col++ {
			ref := grid.CellName(col, row)
			ok, _, err := f.GetCellHyperLink(s.name, ref)
			if err != nil {
				return grid.NewAccessError(s.name, "write", err)
			}
			if !ok {
				continue
			}
			if err := f.SetCellHyperLink(s.name, ref, "", "None"); err != nil {
				return grid.NewAccessError(s.name, "write", err)
			}
		}
	}
	return nil
}

func (s *Sheet) SetValidation(ctx context.Context, r grid.Rect, v *grid.Validation) error {
	f := s.wb.f
	if err := f.DeleteDataValidation(s.name, r.String()); err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	if v == nil {
		return nil
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = r.String()
	var values []string
	switch v.Kind {
	case grid.ValidationCheckbox:
		values = []string{"TRUE", "FALSE"}
	case grid.ValidationList:
		values = v.Values
	default:
		return grid.NewAccessError(s.name, "write", fmt.Errorf("unsupported validation kind %q", v.Kind))
	}
	if err := dv.SetDropList(values); err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	if err := f.AddDataValidation(s.name, dv); err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	return nil
}

func (s *Sheet) RemoveConditionalFormats(ctx context.Context, r grid.Rect) error {
	f := s.wb.f
	formats, err := f.GetConditionalFormats(s.name)
	if err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	for sqref := range formats {
		for _, rect := range grid.ParseSqref(sqref) {
			if !rect.Intersects(r) {
				continue
			}
			if err := f.UnsetConditionalFormat(s.name, sqref); err != nil {
				return grid.NewAccessError(s.name, "write", err)
			}
			break
		}
	}
	return nil
}

// RemoveDrawings deletes pictures and charts anchored inside r. excelize cannot delete
// shapes, which stay in place and keep being reported.
func (s *Sheet) RemoveDrawings(ctx context.Context, r grid.Rect) error {
	anchors, err := s.DrawingAnchors(ctx)
	if err != nil {
		return err
	}
	f := s.wb.f
	for _, a := range anchors {
		if !r.Contains(a.Row, a.Col) {
			continue
		}
		ref := grid.CellName(a.Col, a.Row)
		switch a.Kind {
		case "picture":
			err = f.DeletePicture(s.name, ref)
		case "chart":
			err = f.DeleteChart(s.name, ref)
		default:
			continue
		}
		if err != nil {
			return grid.NewAccessError(s.name, "write", err)
		}
		s.wb.markRemoved(s.name, a)
	}
	return nil
}

func (s *Sheet) SetColumnWidth(ctx context.Context, col int, px float64) error {
	name := grid.ColumnName(col)
	if err := s.wb.f.SetColWidth(s.name, name, name, pixelsToWidth(px)); err != nil {
		return grid.NewAccessError(s.name, "write", err)
	}
	return nil
}
