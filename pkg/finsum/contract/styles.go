package contract

import (
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// TextStyle is the checked part of a cell's presentation.
type TextStyle struct {
	FontFamily    string
	FontSize      float64
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	HAlign        grid.HAlign
	VAlign        grid.VAlign
}

// CellContract is the expected presentation of one column of a row role.
type CellContract struct {
	TextStyle
	// WhenValued limits the check to cells holding a value.
	WhenValued bool
}

func text(bold, italic bool, h grid.HAlign) TextStyle {
	return TextStyle{
		FontFamily: grid.DefaultFontFamily,
		FontSize:   grid.DefaultFontSize,
		Bold:       bold,
		Italic:     italic,
		HAlign:     h,
		VAlign:     grid.AlignMiddle,
	}
}

// Columns without an entry are typed empty in the row grammar and checked through the
// pristine predicate instead.
var styleContracts = map[models.Role]map[int]CellContract{
	models.RoleTotal: {
		1: {TextStyle: text(true, false, grid.AlignLeft)},
		2: {TextStyle: text(true, false, grid.AlignRight)},
		3: {TextStyle: text(true, false, grid.AlignCenter)},
	},
	models.RoleGroupHeader: {
		1: {TextStyle: text(true, false, grid.AlignLeft)},
	},
	models.RoleSubItem: {
		1: {TextStyle: text(false, false, grid.AlignLeft)},
		2: {TextStyle: text(false, false, grid.AlignRight)},
		3: {TextStyle: text(false, false, grid.AlignCenter)},
		4: {TextStyle: text(false, false, grid.AlignLeft), WhenValued: true},
		5: {TextStyle: text(false, false, grid.AlignLeft), WhenValued: true},
		6: {TextStyle: text(false, true, grid.AlignLeft), WhenValued: true},
	},
	models.RoleSubtotal: {
		1: {TextStyle: text(false, true, grid.AlignLeft)},
		2: {TextStyle: text(false, true, grid.AlignRight)},
		3: {TextStyle: text(false, true, grid.AlignCenter)},
	},
}

// StyleContract returns the expected presentation of a role's column (1-based).
func StyleContract(role models.Role, col int) (CellContract, bool) {
	c, ok := styleContracts[role][col]
	return c, ok
}

// PristineText is the text style of a pristine cell.
var PristineText = text(false, false, grid.AlignCenter)

// SolidBlack is the border drawn around every ledger cell.
var SolidBlack = grid.Border{Style: grid.BorderSolid, Color: grid.Black}

// PristineStyle is the full presentation of an empty ledger cell.
func PristineStyle() grid.Style {
	return Apply(grid.Style{
		FontColor:    grid.DefaultFontColor,
		Background:   grid.DefaultBackground,
		Borders:      grid.AllSides(SolidBlack),
		NumberFormat: grid.DefaultNumberFormat,
	}, PristineText)
}

// CanonicalStyle is the full presentation the restorer writes to a column of a role.
// valued tells whether the cell holds a value, which matters for the optional sub-item columns.
func CanonicalStyle(role models.Role, col int, valued bool) grid.Style {
	style := PristineStyle()
	rule, hasRule := RuleFor(role)
	c, ok := StyleContract(role, col)
	if !ok {
		return style
	}
	if c.WhenValued && !valued {
		c.Italic = false
	}
	style = Apply(style, c.TextStyle)
	if hasRule && rule.Columns[col-1].Type == TypeNumber {
		style.NumberFormat = CanonicalNumberFormat
	}
	return style
}

// Apply overlays a text style onto a full style.
func Apply(s grid.Style, t TextStyle) grid.Style {
	s.FontFamily = t.FontFamily
	s.FontSize = t.FontSize
	s.Bold = t.Bold
	s.Italic = t.Italic
	s.Underline = t.Underline
	s.Strikethrough = t.Strikethrough
	s.HAlign = t.HAlign
	s.VAlign = t.VAlign
	return s
}
