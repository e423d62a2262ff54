package structure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// ErrMissingTotal indicates the sheet has no "TOTAL:" row.
var ErrMissingTotal = errors.New(`missing "TOTAL:" row`)

// ErrMultipleTotals indicates the sheet has more than one "TOTAL:" row.
var ErrMultipleTotals = errors.New(`multiple "TOTAL:" rows`)

// TotalError reports a violation of the single-total invariant.
type TotalError struct {
	// Rows are the rows holding the sentinel (empty when missing).
	Rows []int
	Err  error
}

func (e *TotalError) Error() string {
	if len(e.Rows) == 0 {
		return `Missing "TOTAL:" row`
	}
	rows := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		rows[i] = strconv.Itoa(r)
	}
	return fmt.Sprintf(`Multiple "TOTAL:" rows found (rows %s). Only one is allowed.`, strings.Join(rows, ", "))
}

func (e *TotalError) Unwrap() error {
	return e.Err
}

// FindTotalRow scans column A below the title row for the exact total sentinel. It runs before
// tree construction so the single-total invariant holds before parsing starts.
func FindTotalRow(snap *grid.Snapshot) (int, error) {
	var rows []int
	for row := contract.FirstDataRow; row <= snap.Rows(); row++ {
		if snap.Text(row, 1) == models.TotalSentinel {
			rows = append(rows, row)
		}
	}
	switch len(rows) {
	case 0:
		return 0, &TotalError{Err: ErrMissingTotal}
	case 1:
		return rows[0], nil
	default:
		return 0, &TotalError{Rows: rows, Err: ErrMultipleTotals}
	}
}

// parseState is where the parser stands relative to the current group.
type parseState int

const (
	stateOutside parseState = iota
	stateInGroupHeader
	stateInSubItems
)

type parser struct {
	snap  *grid.Snapshot
	tree  *models.LedgerTree
	state parseState
	group *models.Group
	// lastRow is the last non-blank row of the open group.
	lastRow int
}

// Parse builds the ledger tree from the first data row up to totalRow (exclusive).
//
// Every row is classified once with a lookahead to the next non-blank column-A text; the parser
// is a state machine over Outside, InGroupHeader and InSubItems and never steps back. A group
// that meets unprefixed text before a subtotal is closed at its last non-blank row and left
// without SubtotalRow; the validator reports it.
func Parse(snap *grid.Snapshot, totalRow int) *models.LedgerTree {
	firstRow := contract.FirstDataRow
	p := &parser{
		snap: snap,
		tree: &models.LedgerTree{FirstRow: firstRow, TotalRow: totalRow, Groups: []models.Group{}},
	}

	texts := make([]string, 0, max(totalRow-firstRow, 0))
	for row := firstRow; row < totalRow; row++ {
		texts = append(texts, snap.Text(row, 1))
	}

	// next is the nearest non-blank column-A text below; a number there is never a sub-item.
	next := ""
	classes := make([]Classification, len(texts))
	for i := len(texts) - 1; i >= 0; i-- {
		c := snap.Cell(firstRow+i, 1)
		classes[i] = ClassifyCell(c, next)
		switch {
		case strings.TrimSpace(texts[i]) == "":
		case c.Value.Kind == grid.ValueText:
			next = texts[i]
		default:
			next = ""
		}
	}

	for i, c := range classes {
		p.step(firstRow+i, texts[i], c)
	}
	p.closeGroup(0)

	return p.tree
}

func (p *parser) step(row int, text string, c Classification) {
	if c.Role == models.RoleBlank {
		return
	}

	if c.Anomaly == models.AnomalyTotalNearMiss {
		p.closeGroup(0)
		p.stray(row, text, c)
		return
	}

	switch p.state {
	case stateOutside:
		switch {
		case opensGroup(c):
			p.openGroup(row, text)
		default:
			p.stray(row, text, c)
		}

	case stateInGroupHeader, stateInSubItems:
		switch {
		case c.Role == models.RoleSubtotal:
			p.closeGroup(row)
		case c.Role == models.RoleSubItem:
			p.group.SubItems = append(p.group.SubItems, p.subItem(row, text))
			p.lastRow = row
			p.state = stateInSubItems
		case opensGroup(c):
			p.closeGroup(0)
			p.openGroup(row, text)
		}
	}
}

func (p *parser) openGroup(row int, name string) {
	p.group = &models.Group{Name: name, StartRow: row, SubItems: []models.SubItem{}}
	p.lastRow = row
	p.state = stateInGroupHeader
}

// closeGroup finishes the open group, with an explicit subtotal row when subtotal > 0.
func (p *parser) closeGroup(subtotal int) {
	if p.group == nil {
		return
	}
	p.group.SubtotalRow = subtotal
	p.group.EndRow = p.lastRow
	if subtotal > 0 {
		p.group.EndRow = subtotal
	}
	p.tree.Groups = append(p.tree.Groups, *p.group)
	p.group = nil
	p.state = stateOutside
}

func (p *parser) stray(row int, text string, c Classification) {
	p.tree.Strays = append(p.tree.Strays, models.StrayRow{
		Row:     row,
		Role:    c.Role,
		Anomaly: c.Anomaly,
		Text:    text,
	})
}

func (p *parser) subItem(row int, name string) models.SubItem {
	return models.SubItem{
		Name:         name,
		Row:          row,
		Amount:       p.number(row, 2),
		Currency:     p.snap.Text(row, 3),
		ExchangeRate: p.number(row, 4),
		Converted:    p.number(row, 5),
		Note:         p.snap.Text(row, 6),
	}
}

func (p *parser) number(row, col int) decimal.NullDecimal {
	c := p.snap.Cell(row, col)
	if c == nil || c.Value.Kind != grid.ValueNumber {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(c.Value.Number))
}
