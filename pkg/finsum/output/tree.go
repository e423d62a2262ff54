package output

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// sumPlaces is the precision of converted amounts and sums.
const sumPlaces = 2

// Tree prints the groups of a ledger with their sub-items and the sums of the converted amounts.
func (p *Printer) Tree(tree *models.LedgerTree) {
	nameWidth := 0
	for _, g := range tree.Groups {
		for _, item := range g.SubItems {
			nameWidth = max(nameWidth, runewidth.StringWidth(item.Name))
		}
	}

	total := decimal.Zero
	for _, g := range tree.Groups {
		rows := fmt.Sprintf("rows %d-%d", g.StartRow, g.EndRow)
		_, _ = fmt.Fprintf(p.w, "%s %s\n", p.bold.Render(g.Name), p.dim.Render(rows))

		for _, item := range g.SubItems {
			_, _ = fmt.Fprintf(p.w, "  %s  %s %s  %s\n",
				runewidth.FillRight(item.Name, nameWidth),
				amount(item.Amount, -1),
				runewidth.FillRight(item.Currency, 4),
				amount(item.Converted, sumPlaces),
			)
		}

		sum := g.Sum()
		total = total.Add(sum)
		label := "Subtotal"
		if !g.HasSubtotal() {
			label = p.failure.Render("no Subtotal row")
		}
		_, _ = fmt.Fprintf(p.w, "  %s %s\n", label, sum.StringFixed(sumPlaces))
	}

	_, _ = fmt.Fprintf(p.w, "%s %s %s\n",
		p.bold.Render("TOTAL:"),
		total.StringFixed(sumPlaces),
		p.dim.Render(fmt.Sprintf("row %d", tree.TotalRow)),
	)

	for _, stray := range tree.Strays {
		p.Error(fmt.Sprintf("Row %d: %s outside of any group: %q", stray.Row, strings.ReplaceAll(string(stray.Role), "_", " "), stray.Text))
	}
}

// amount renders a nullable decimal, "-" when absent. Negative places keep the exact value.
func amount(d decimal.NullDecimal, places int32) string {
	if !d.Valid {
		return "-"
	}
	if places < 0 {
		return d.Decimal.String()
	}
	return d.Decimal.StringFixed(places)
}
