package restore

import (
	"context"
	"fmt"
	"slices"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// Sheets creates the summary sheet when it is missing and, when prune is set, deletes every
// sheet outside the allowed set. It returns a description of each change.
func (r *Restorer) Sheets(ctx context.Context, wb grid.Workbook, prune bool) ([]string, error) {
	names, err := wb.SheetNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}

	var changes []string
	if !slices.Contains(names, contract.SummarySheet) {
		if err := wb.AddSheet(ctx, contract.SummarySheet); err != nil {
			return changes, fmt.Errorf("create %q: %w", contract.SummarySheet, err)
		}
		changes = append(changes, fmt.Sprintf("Created %q sheet", contract.SummarySheet))
		r.logger.Info("sheet created", "sheet", contract.SummarySheet)
	}

	if !prune {
		return changes, nil
	}
	for _, name := range names {
		if contract.IsAllowedSheet(name) {
			continue
		}
		if err := wb.DeleteSheet(ctx, name); err != nil {
			return changes, fmt.Errorf("delete %q: %w", name, err)
		}
		changes = append(changes, fmt.Sprintf("Removed invalid sheet: %q", name))
		r.logger.Info("sheet removed", "sheet", name)
	}
	return changes, nil
}
