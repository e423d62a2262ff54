package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

const (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"
)

// Printer writes styled text. Colours are dropped when w is not a terminal.
type Printer struct {
	w     io.Writer
	width int

	success  lipgloss.Style
	failure  lipgloss.Style
	info     lipgloss.Style
	location lipgloss.Style
	dim      lipgloss.Style
	bold     lipgloss.Style
	category map[models.Category]lipgloss.Style
}

// NewPrinter creates a printer for w. Lines are truncated to width; zero disables truncation.
func NewPrinter(w io.Writer, width int) *Printer {
	r := lipgloss.NewRenderer(w)
	color := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}
	return &Printer{
		w:        w,
		width:    width,
		success:  r.NewStyle().Foreground(color("#00D787")),
		failure:  r.NewStyle().Foreground(color("#FF5F87")),
		info:     r.NewStyle().Foreground(color("#5FAFFF")),
		location: r.NewStyle().Foreground(color("#00D7D7")),
		dim:      r.NewStyle().Foreground(color("#808080")),
		bold:     r.NewStyle().Bold(true),
		category: map[models.Category]lipgloss.Style{
			models.CategoryCritical:   r.NewStyle().Foreground(color("#FF5F87")).Bold(true),
			models.CategoryStructural: r.NewStyle().Foreground(color("#FFAF00")),
			models.CategoryStyle:      r.NewStyle().Foreground(color("#AF87FF")),
		},
	}
}

func (p *Printer) Success(message string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.success.Render(successSymbol), message)
}

func (p *Printer) Error(message string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.failure.Render(errorSymbol), p.failure.Render(message))
}

func (p *Printer) Infof(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.info.Render(infoSymbol), fmt.Sprintf(format, args...))
}

// Result prints one line per issue, locations aligned, followed by a summary line.
func (p *Printer) Result(res finsum.Result) {
	if res.OK {
		p.Success(fmt.Sprintf("%q: no issues found", res.Sheet))
		return
	}

	locWidth, catWidth := 0, 0
	for _, issue := range res.Issues {
		locWidth = max(locWidth, runewidth.StringWidth(issue.Location))
		catWidth = max(catWidth, runewidth.StringWidth(string(issue.Category)))
	}

	for _, issue := range res.Issues {
		loc := runewidth.FillRight(issue.Location, locWidth)
		cat := runewidth.FillRight(string(issue.Category), catWidth)
		message := issue.Message
		if p.width > 0 {
			// two spaces between each of the three columns
			room := p.width - locWidth - catWidth - 4
			if room > 0 {
				message = runewidth.Truncate(message, room, "…")
			}
		}
		_, _ = fmt.Fprintf(p.w, "%s  %s  %s\n",
			p.location.Render(loc),
			p.categoryStyle(issue.Category).Render(cat),
			message,
		)
	}

	p.Error(fmt.Sprintf("%q: %s", res.Sheet, summary(res.Issues)))
}

func (p *Printer) categoryStyle(c models.Category) lipgloss.Style {
	if s, ok := p.category[c]; ok {
		return s
	}
	return p.dim
}

// summary renders "3 issues (1 structural, 2 style)".
func summary(issues []models.Issue) string {
	counts := models.CountByCategory(issues)
	var parts []string
	for _, c := range []models.Category{models.CategoryCritical, models.CategoryStructural, models.CategoryStyle} {
		if n := counts[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, c))
		}
	}
	noun := "issues"
	if len(issues) == 1 {
		noun = "issue"
	}
	return fmt.Sprintf("%d %s (%s)", len(issues), noun, strings.Join(parts, ", "))
}
