package gsheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// fromColor converts an API color to "#rrggbb". Omitted components are zero.
func fromColor(c *sheets.Color, fallback string) string {
	if c == nil {
		return fallback
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.Red), channel(c.Green), channel(c.Blue))
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// toColor converts "#rrggbb" to an API color.
func toColor(hex string) *sheets.Color {
	h := strings.TrimPrefix(grid.NormalizeColor(hex, grid.Black), "#")
	if len(h) != 6 {
		return &sheets.Color{}
	}
	parse := func(s string) float64 {
		v, _ := strconv.ParseUint(s, 16, 8)
		return float64(v) / 255
	}
	return &sheets.Color{Red: parse(h[0:2]), Green: parse(h[2:4]), Blue: parse(h[4:6])}
}

func textColor(tf *sheets.TextFormat) *sheets.Color {
	if tf.ForegroundColorStyle != nil && tf.ForegroundColorStyle.RgbColor != nil {
		return tf.ForegroundColorStyle.RgbColor
	}
	return tf.ForegroundColor
}

// fromFormat converts an effective cell format to a presentation profile.
func fromFormat(f *sheets.CellFormat) grid.Style {
	s := grid.DefaultStyle()
	if f == nil {
		return s
	}

	if tf := f.TextFormat; tf != nil {
		if tf.FontFamily != "" {
			s.FontFamily = tf.FontFamily
		}
		if tf.FontSize > 0 {
			s.FontSize = float64(tf.FontSize)
		}
		s.Bold = tf.Bold
		s.Italic = tf.Italic
		s.Underline = tf.Underline
		s.Strikethrough = tf.Strikethrough
		s.FontColor = fromColor(textColor(tf), grid.DefaultFontColor)
	}

	if f.HorizontalAlignment != "" {
		s.HAlign = grid.HAlign(strings.ToLower(f.HorizontalAlignment))
	}
	if f.VerticalAlignment != "" {
		s.VAlign = grid.VAlign(strings.ToLower(f.VerticalAlignment))
	}

	bg := f.BackgroundColor
	if f.BackgroundColorStyle != nil && f.BackgroundColorStyle.RgbColor != nil {
		bg = f.BackgroundColorStyle.RgbColor
	}
	s.Background = fromColor(bg, grid.DefaultBackground)

	if b := f.Borders; b != nil {
		s.Borders = grid.Borders{
			Top:    fromBorder(b.Top),
			Bottom: fromBorder(b.Bottom),
			Left:   fromBorder(b.Left),
			Right:  fromBorder(b.Right),
		}
	}

	if nf := f.NumberFormat; nf != nil && nf.Pattern != "" {
		s.NumberFormat = nf.Pattern
	}
	return s
}

func fromBorder(b *sheets.Border) grid.Border {
	if b == nil || b.Style == "" || b.Style == "NONE" {
		return grid.Border{}
	}
	color := b.Color
	if b.ColorStyle != nil && b.ColorStyle.RgbColor != nil {
		color = b.ColorStyle.RgbColor
	}
	return grid.Border{
		Style: grid.BorderStyle(strings.ToLower(b.Style)),
		Color: fromColor(color, grid.Black),
	}
}

// toFormat converts a presentation profile to a user-entered cell format.
func toFormat(s grid.Style) *sheets.CellFormat {
	f := &sheets.CellFormat{
		TextFormat: &sheets.TextFormat{
			FontFamily:      s.FontFamily,
			FontSize:        int64(math.Round(s.FontSize)),
			Bold:            s.Bold,
			Italic:          s.Italic,
			Underline:       s.Underline,
			Strikethrough:   s.Strikethrough,
			ForegroundColor: toColor(s.FontColor),
		},
		BackgroundColor: toColor(grid.NormalizeColor(s.Background, grid.DefaultBackground)),
		Borders: &sheets.Borders{
			Top:    toBorder(s.Borders.Top),
			Bottom: toBorder(s.Borders.Bottom),
			Left:   toBorder(s.Borders.Left),
			Right:  toBorder(s.Borders.Right),
		},
	}
	if s.HAlign != "" && s.HAlign != grid.AlignGeneral {
		f.HorizontalAlignment = strings.ToUpper(string(s.HAlign))
	}
	if s.VAlign != "" {
		f.VerticalAlignment = strings.ToUpper(string(s.VAlign))
	}
	if s.NumberFormat != "" && s.NumberFormat != grid.DefaultNumberFormat {
		f.NumberFormat = &sheets.NumberFormat{Type: "NUMBER", Pattern: s.NumberFormat}
	}
	return f
}

func toBorder(b grid.Border) *sheets.Border {
	if !b.Present() {
		return nil
	}
	return &sheets.Border{
		Style: strings.ToUpper(string(b.Style)),
		Color: toColor(b.Color),
	}
}

// fromCell converts the value part of an API cell.
func fromCell(cd *sheets.CellData) (grid.Value, string) {
	var formula string
	if uv := cd.UserEnteredValue; uv != nil && uv.FormulaValue != nil {
		formula = *uv.FormulaValue
	}
	ev := cd.EffectiveValue
	switch {
	case ev == nil && formula != "":
		return grid.Value{Kind: grid.ValuePending}, formula
	case ev == nil:
		return grid.Value{}, ""
	case ev.NumberValue != nil:
		return grid.Number(*ev.NumberValue), formula
	case ev.BoolValue != nil:
		return grid.Bool(*ev.BoolValue), formula
	case ev.StringValue != nil:
		return grid.Text(*ev.StringValue), formula
	case ev.ErrorValue != nil:
		return grid.Text(cd.FormattedValue), formula
	}
	return grid.Value{}, formula
}

// toValue converts a grid value to a user-entered value; nil clears the cell.
func toValue(v grid.Value) *sheets.ExtendedValue {
	switch v.Kind {
	case grid.ValueText:
		text := v.Text
		return &sheets.ExtendedValue{StringValue: &text}
	case grid.ValueNumber:
		n := v.Number
		return &sheets.ExtendedValue{NumberValue: &n}
	case grid.ValueBool:
		b := v.Bool
		return &sheets.ExtendedValue{BoolValue: &b}
	default:
		return nil
	}
}

// fromValidation maps an API rule. Checkboxes are BOOLEAN rules.
func fromValidation(rule *sheets.DataValidationRule) *grid.Validation {
	if rule == nil || rule.Condition == nil {
		return nil
	}
	switch rule.Condition.Type {
	case "BOOLEAN":
		return &grid.Validation{Kind: grid.ValidationCheckbox}
	case "ONE_OF_LIST":
		v := &grid.Validation{Kind: grid.ValidationList}
		for _, cv := range rule.Condition.Values {
			v.Values = append(v.Values, cv.UserEnteredValue)
		}
		return v
	default:
		return &grid.Validation{Kind: grid.ValidationOther}
	}
}

func toValidation(v *grid.Validation) (*sheets.DataValidationRule, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind {
	case grid.ValidationCheckbox:
		return &sheets.DataValidationRule{Condition: &sheets.BooleanCondition{Type: "BOOLEAN"}}, nil
	case grid.ValidationList:
		cond := &sheets.BooleanCondition{Type: "ONE_OF_LIST"}
		for _, value := range v.Values {
			cond.Values = append(cond.Values, &sheets.ConditionValue{UserEnteredValue: value})
		}
		return &sheets.DataValidationRule{Condition: cond, ShowCustomUi: true}, nil
	default:
		return nil, fmt.Errorf("unsupported validation kind %q", v.Kind)
	}
}

// gridRange converts a rect to a zero-based, end-exclusive API range.
func gridRange(sheetID int64, r grid.Rect) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(r.Row - 1),
		EndRowIndex:      int64(r.LastRow()),
		StartColumnIndex: int64(r.Col - 1),
		EndColumnIndex:   int64(r.LastCol()),
	}
}

// fromGridRange converts an API range; unbounded ends extend to the grid size.
func fromGridRange(gr *sheets.GridRange, rows, cols int) grid.Rect {
	endRow, endCol := int(gr.EndRowIndex), int(gr.EndColumnIndex)
	if endRow == 0 {
		endRow = rows
	}
	if endCol == 0 {
		endCol = cols
	}
	return grid.RectFromCorners(int(gr.StartRowIndex)+1, int(gr.StartColumnIndex)+1, endRow, endCol)
}

// a1 renders a sheet-qualified A1 range.
func a1(sheet string, r grid.Rect) string {
	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	if r.Empty() {
		return quoted
	}
	return quoted + "!" + grid.CellName(r.Col, r.Row) + ":" + grid.CellName(r.LastCol(), r.LastRow())
}
