package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// Border line styles by excelize index.
var borderStyles = map[int]grid.BorderStyle{
	1:  grid.BorderSolid,
	2:  grid.BorderSolidMedium,
	3:  grid.BorderDashed,
	4:  grid.BorderDotted,
	5:  grid.BorderSolidThick,
	6:  grid.BorderDouble,
	7:  grid.BorderDotted,
	8:  grid.BorderDashed,
	9:  grid.BorderDashed,
	10: grid.BorderDashed,
	11: grid.BorderDashed,
	12: grid.BorderDashed,
	13: grid.BorderDashed,
}

var borderIndexes = map[grid.BorderStyle]int{
	grid.BorderSolid:       1,
	grid.BorderSolidMedium: 2,
	grid.BorderDashed:      3,
	grid.BorderDotted:      4,
	grid.BorderSolidThick:  5,
	grid.BorderDouble:      6,
}

// Built-in number formats that may show up on a ledger.
var builtInFormats = map[int]string{
	0:  grid.DefaultNumberFormat,
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	49: "@",
}

// colorResolver resolves theme and indexed colors to RGB.
type colorResolver interface {
	GetBaseColor(hexColor string, indexedColor int, themeColor *int) string
}

// fromExcelize converts an excelize style definition to a presentation profile.
func fromExcelize(s *excelize.Style, colors colorResolver) grid.Style {
	out := grid.Style{
		FontFamily:   grid.DefaultFontFamily,
		FontSize:     grid.DefaultFontSize,
		HAlign:       grid.AlignGeneral,
		VAlign:       grid.AlignBottom,
		FontColor:    grid.DefaultFontColor,
		Background:   grid.DefaultBackground,
		NumberFormat: numberFormat(s),
	}
	if s == nil {
		return out
	}

	if f := s.Font; f != nil {
		if f.Family != "" {
			out.FontFamily = f.Family
		}
		if f.Size > 0 {
			out.FontSize = f.Size
		}
		out.Bold = f.Bold
		out.Italic = f.Italic
		out.Underline = f.Underline != "" && f.Underline != "none"
		out.Strikethrough = f.Strike
		color := f.Color
		if f.ColorTheme != nil && colors != nil {
			color = colors.GetBaseColor(f.Color, f.ColorIndexed, f.ColorTheme)
		}
		out.FontColor = grid.NormalizeColor(color, grid.DefaultFontColor)
	}

	if a := s.Alignment; a != nil {
		if a.Horizontal != "" {
			out.HAlign = grid.HAlign(a.Horizontal)
		}
		switch a.Vertical {
		case "center":
			out.VAlign = grid.AlignMiddle
		case "top":
			out.VAlign = grid.AlignTop
		}
	}

	// Pattern 1 is a solid fill; anything else keeps the default white background.
	if s.Fill.Type == "pattern" && s.Fill.Pattern == 1 && len(s.Fill.Color) > 0 {
		out.Background = grid.NormalizeColor(s.Fill.Color[0], grid.DefaultBackground)
	}

	for _, b := range s.Border {
		border := grid.Border{
			Style: borderStyles[b.Style],
			Color: grid.NormalizeColor(b.Color, grid.Black),
		}
		if !border.Present() {
			continue
		}
		switch b.Type {
		case "top":
			out.Borders.Top = border
		case "bottom":
			out.Borders.Bottom = border
		case "left":
			out.Borders.Left = border
		case "right":
			out.Borders.Right = border
		}
	}

	return out
}

func numberFormat(s *excelize.Style) string {
	if s == nil {
		return grid.DefaultNumberFormat
	}
	if s.CustomNumFmt != nil {
		return *s.CustomNumFmt
	}
	if f, ok := builtInFormats[s.NumFmt]; ok {
		return f
	}
	return fmt.Sprintf("builtin:%d", s.NumFmt)
}

// toExcelize converts a presentation profile to an excelize style definition.
func toExcelize(s grid.Style) *excelize.Style {
	out := &excelize.Style{
		Font: &excelize.Font{
			Family: s.FontFamily,
			Size:   s.FontSize,
			Bold:   s.Bold,
			Italic: s.Italic,
			Strike: s.Strikethrough,
			Color:  hex(s.FontColor),
		},
		Alignment: &excelize.Alignment{},
	}
	if s.Underline {
		out.Font.Underline = "single"
	}

	if s.HAlign != grid.AlignGeneral {
		out.Alignment.Horizontal = string(s.HAlign)
	}
	switch s.VAlign {
	case grid.AlignMiddle:
		out.Alignment.Vertical = "center"
	case grid.AlignTop:
		out.Alignment.Vertical = "top"
	}

	if bg := grid.NormalizeColor(s.Background, grid.DefaultBackground); bg != grid.DefaultBackground {
		out.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex(bg)}}
	}

	for _, side := range grid.Sides {
		b := s.Borders.Side(side)
		if !b.Present() {
			continue
		}
		out.Border = append(out.Border, excelize.Border{
			Type:  side,
			Color: hex(grid.NormalizeColor(b.Color, grid.Black)),
			Style: borderIndexes[b.Style],
		})
	}

	switch format := s.NumberFormat; format {
	case "", grid.DefaultNumberFormat:
	default:
		for id, builtIn := range builtInFormats {
			if builtIn == format {
				out.NumFmt = id
				return out
			}
		}
		out.CustomNumFmt = &format
	}
	return out
}

// hex strips the leading "#" and uppercases a color for excelize.
func hex(color string) string {
	return strings.ToUpper(strings.TrimPrefix(color, "#"))
}
