// Package restore rewrites the presentation of the ledger sheet so that it satisfies the style
// contracts and the sheet layout. Values and formulas of ledger rows are never modified.
//
// Every step is an independent write with no rollback. Running a restore twice leaves the sheet
// as one run does.
package restore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// Restorer writes canonical presentation to a sheet.
type Restorer struct {
	logger *slog.Logger
	// deadRegionEnd is the minimum last row of the dead region.
	deadRegionEnd int
}

// New creates a Restorer. A nil logger discards output; deadRegionEnd <= 0 uses
// contract.DeadRegionEnd.
func New(logger *slog.Logger, deadRegionEnd int) *Restorer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deadRegionEnd <= 0 {
		deadRegionEnd = contract.DeadRegionEnd
	}
	return &Restorer{logger: logger, deadRegionEnd: deadRegionEnd}
}

// DeadRegionEnd returns the last row of the dead region for a snapshot: the configured end, or
// the sheet's last used row when that lies further down.
func (r *Restorer) DeadRegionEnd(snap *grid.Snapshot) int {
	return max(snap.LastRow, r.deadRegionEnd)
}

// Ledger restores the data area, every tree row and the dead region below the total row.
func (r *Restorer) Ledger(ctx context.Context, sheet grid.Writer, tree *models.LedgerTree, snap *grid.Snapshot) error {
	data := grid.RectFromCorners(tree.FirstRow, 1, tree.TotalRow, contract.LedgerColumns)
	r.logger.Debug("restoring data area", "range", data.String())
	if err := sheet.SetStyle(ctx, data, contract.PristineStyle()); err != nil {
		return fmt.Errorf("data area: %w", err)
	}

	if err := r.rows(ctx, sheet, tree, snap); err != nil {
		return err
	}

	end := min(r.DeadRegionEnd(snap), snap.GridRows)
	if end > tree.TotalRow {
		dead := grid.RectFromCorners(tree.TotalRow+1, 1, end, contract.LedgerColumns)
		r.logger.Debug("restoring dead region", "range", dead.String())
		if err := sheet.Clear(ctx, dead); err != nil {
			return fmt.Errorf("clear dead region: %w", err)
		}
		if err := sheet.SetStyle(ctx, dead, contract.PristineStyle()); err != nil {
			return fmt.Errorf("dead region style: %w", err)
		}
	}

	overlays := grid.RectFromCorners(tree.FirstRow, 1, max(end, tree.TotalRow), contract.LedgerColumns)
	if err := sheet.RemoveConditionalFormats(ctx, overlays); err != nil {
		return fmt.Errorf("conditional formats: %w", err)
	}
	if err := sheet.RemoveDrawings(ctx, overlays); err != nil {
		return fmt.Errorf("drawings: %w", err)
	}

	r.logger.Info("ledger restored", "sheet", snap.Sheet, "groups", len(tree.Groups), "total_row", tree.TotalRow)
	return nil
}

// rows writes the canonical style of every column of every tree row and strips annotations
// from the columns that must stay pristine.
func (r *Restorer) rows(ctx context.Context, sheet grid.Writer, tree *models.LedgerTree, snap *grid.Snapshot) error {
	roles := tree.Rows()
	rows := make([]int, 0, len(roles))
	for row := range roles {
		rows = append(rows, row)
	}
	sort.Ints(rows)

	for _, row := range rows {
		role := roles[row]
		rule, _ := contract.RuleFor(role)
		for col := 1; col <= contract.LedgerColumns; col++ {
			cell := grid.Rect{Row: row, Col: col, Rows: 1, Cols: 1}
			valued := false
			if c := snap.Cell(row, col); c != nil {
				valued = c.HasContent()
			}
			if err := sheet.SetStyle(ctx, cell, contract.CanonicalStyle(role, col, valued)); err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
			if rule.Columns[col-1].Type != contract.TypeEmpty {
				continue
			}
			if err := sheet.ClearAnnotations(ctx, cell); err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
		}
	}
	return nil
}
