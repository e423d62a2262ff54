package grid

import "strings"

// HAlign is a horizontal alignment.
type HAlign string

const (
	AlignGeneral HAlign = "general"
	AlignLeft    HAlign = "left"
	AlignCenter  HAlign = "center"
	AlignRight   HAlign = "right"
)

// VAlign is a vertical alignment.
type VAlign string

const (
	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "middle"
	AlignBottom VAlign = "bottom"
)

// BorderStyle is the line style of one cell border.
type BorderStyle string

const (
	BorderNone        BorderStyle = ""
	BorderSolid       BorderStyle = "solid"
	BorderSolidMedium BorderStyle = "solid_medium"
	BorderSolidThick  BorderStyle = "solid_thick"
	BorderDashed      BorderStyle = "dashed"
	BorderDotted      BorderStyle = "dotted"
	BorderDouble      BorderStyle = "double"
)

// Border is one side of a cell border.
type Border struct {
	Style BorderStyle
	Color string
}

// Present reports whether the border is drawn.
func (b Border) Present() bool {
	return b.Style != BorderNone
}

// Borders holds the four borders of a cell.
type Borders struct {
	Top    Border
	Bottom Border
	Left   Border
	Right  Border
}

// Side names in the order they are reported.
var Sides = []string{"top", "bottom", "left", "right"}

// Side returns the border for a side name from Sides.
func (b Borders) Side(name string) Border {
	switch name {
	case "top":
		return b.Top
	case "bottom":
		return b.Bottom
	case "left":
		return b.Left
	default:
		return b.Right
	}
}

// AllSides returns Borders with the same border on every side.
func AllSides(b Border) Borders {
	return Borders{Top: b, Bottom: b, Left: b, Right: b}
}

// Style is the full presentation profile of a cell.
type Style struct {
	FontFamily    string
	FontSize      float64
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	HAlign        HAlign
	VAlign        VAlign
	// FontColor and Background are lowercase "#rrggbb".
	FontColor    string
	Background   string
	Borders      Borders
	NumberFormat string
}

// Default presentation values of an untouched cell.
const (
	DefaultFontFamily   = "Arial"
	DefaultFontSize     = 10
	DefaultFontColor    = "#000000"
	DefaultBackground   = "#ffffff"
	DefaultNumberFormat = "General"
	Black               = "#000000"
)

// DefaultStyle is the presentation of an untouched cell.
func DefaultStyle() Style {
	return Style{
		FontFamily:   DefaultFontFamily,
		FontSize:     DefaultFontSize,
		HAlign:       AlignGeneral,
		VAlign:       AlignBottom,
		FontColor:    DefaultFontColor,
		Background:   DefaultBackground,
		NumberFormat: DefaultNumberFormat,
	}
}

// NormalizeColor converts "FF00AA", "#00aa" style ARGB/RGB strings to lowercase "#rrggbb".
// An empty string yields fallback.
func NormalizeColor(color, fallback string) string {
	c := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if c == "" {
		return fallback
	}
	if len(c) == 8 {
		c = c[2:]
	}
	return "#" + strings.ToLower(c)
}
