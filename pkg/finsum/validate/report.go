// Package validate checks a parsed ledger and its sheet against the row grammar, the style
// contracts and the sheet layout. Validators never abort: every finding becomes an Issue.
package validate

import (
	"fmt"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// report accumulates issues in discovery order.
type report struct {
	issues []models.Issue
}

func newReport() *report {
	return &report{issues: []models.Issue{}}
}

func (r *report) add(issue models.Issue) {
	r.issues = append(r.issues, issue)
}

// cell records an issue located at one cell.
func (r *report) cell(row, col int, category models.Category, code, format string, args ...any) {
	r.add(models.Issue{
		Location: grid.CellName(col, row),
		Row:      row,
		Col:      col,
		Category: category,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// row records an issue located at a whole row ("Row N: ...").
func (r *report) row(row int, category models.Category, code, format string, args ...any) {
	r.add(models.Issue{
		Location: fmt.Sprintf("Row %d", row),
		Row:      row,
		Category: category,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// at records an issue whose message carries its own location.
func (r *report) at(location string, row int, category models.Category, code, format string, args ...any) {
	r.add(models.Issue{
		Location: location,
		Row:      row,
		Category: category,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Dedupe drops repeated issues (same location, code and message), keeping the first.
// Overlapping checks, like the dead region and the bordered ledger area, may report the
// same deviation twice.
func Dedupe(issues []models.Issue) []models.Issue {
	type key struct {
		location string
		code     string
		message  string
	}
	seen := make(map[key]bool, len(issues))
	out := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		k := key{issue.Location, issue.Code, issue.Message}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, issue)
	}
	return out
}

// cellAt returns the snapshot cell, or an empty cell when it lies outside the grid.
func cellAt(snap *grid.Snapshot, row, col int) *grid.Cell {
	if c := snap.Cell(row, col); c != nil {
		return c
	}
	return &grid.Cell{Row: row, Col: col}
}
