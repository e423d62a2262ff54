package validate

import (
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// Finding is one reason a cell is not pristine.
type Finding struct {
	Code    string
	Message string
}

// Category is the severity of a finding: content is structural, presentation is style.
func (f Finding) Category() models.Category {
	if f.Code == models.CodeValueOrFormula {
		return models.CategoryStructural
	}
	return models.CategoryStyle
}

// Pristine lists every way c deviates from a pristine cell, in reporting order. A pristine cell
// yields nothing. A cell with a value or formula yields only that finding.
func Pristine(snap *grid.Snapshot, c *grid.Cell) []Finding {
	if c.HasContent() {
		return []Finding{{models.CodeValueOrFormula, "Cell contains value or formula"}}
	}

	var findings []Finding
	add := func(code, message string) {
		findings = append(findings, Finding{code, message})
	}

	s := c.Style
	want := contract.PristineStyle()
	if s.Bold {
		add(models.CodeTextStyle, "Cell has bold formatting")
	}
	if s.Italic {
		add(models.CodeTextStyle, "Cell has italic formatting")
	}
	if s.Underline {
		add(models.CodeTextStyle, "Cell has underline formatting")
	}
	if s.Strikethrough {
		add(models.CodeTextStyle, "Cell has strikethrough formatting")
	}
	if s.FontFamily != want.FontFamily {
		add(models.CodeFont, "Wrong font family (should be Arial)")
	}
	if s.FontSize != want.FontSize {
		add(models.CodeFont, "Wrong font size (should be 10)")
	}
	if s.FontColor != want.FontColor {
		add(models.CodeColor, "Wrong font color (should be #000000)")
	}
	if s.HAlign != want.HAlign {
		add(models.CodeAlignment, "Cell is not center-aligned horizontally")
	}
	if s.VAlign != want.VAlign {
		add(models.CodeAlignment, "Cell is not center-aligned vertically")
	}
	if s.Background != want.Background {
		add(models.CodeBackground, "Wrong background color (should be #ffffff)")
	}
	if c.Note != "" {
		add(models.CodeNote, "Cell contains note")
	}
	if c.Validation != nil {
		add(models.CodeValidation, "Cell contains data validation")
	}
	if snap.InConditionalFormat(c.Row, c.Col) {
		add(models.CodeConditionalFmt, "Cell has conditional formatting")
	}
	if snap.HasDrawing(c.Row, c.Col) {
		add(models.CodeDrawing, "Cell contains drawing or image")
	}
	if c.HasHyperlink() {
		add(models.CodeHyperlink, "Cell contains hyperlink")
	}
	return findings
}

// IsPristine reports whether c satisfies every pristine condition.
func IsPristine(snap *grid.Snapshot, c *grid.Cell) bool {
	return len(Pristine(snap, c)) == 0
}
