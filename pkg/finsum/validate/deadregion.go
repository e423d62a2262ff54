package validate

import (
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// DeadRegion checks that every ledger cell below the total row, through row end, is pristine.
// The scan works on the snapshot only, so a large region costs no extra reads.
func DeadRegion(tree *models.LedgerTree, snap *grid.Snapshot, end int) []models.Issue {
	r := newReport()

	for row := tree.TotalRow + 1; row <= end; row++ {
		for col := 1; col <= contract.LedgerColumns; col++ {
			c := snap.Cell(row, col)
			if c == nil {
				continue
			}
			for _, f := range Pristine(snap, c) {
				r.cell(row, col, f.Category(), f.Code, "%s", f.Message)
			}
		}
	}

	return r.issues
}
