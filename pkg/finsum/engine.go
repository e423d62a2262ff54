package finsum

import (
	"context"
	"errors"
	"fmt"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/restore"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/structure"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/validate"
)

// Result is the outcome of a check pass.
type Result struct {
	// OK is true when no issue was found.
	OK bool `json:"ok"`
	// Sheet is the checked ledger sheet.
	Sheet string `json:"sheet"`
	// Issues are the findings, ordered by row then column. A critical finding is always alone.
	Issues []models.Issue `json:"issues"`
}

func resultOf(sheet string, issues []models.Issue) Result {
	if issues == nil {
		issues = []models.Issue{}
	}
	return Result{OK: len(issues) == 0, Sheet: sheet, Issues: issues}
}

// CheckStructure validates the ledger sheet of wb. Structural and style findings are
// accumulated; a critical failure yields exactly one issue.
func CheckStructure(ctx context.Context, wb grid.Workbook, opts Options) Result {
	log := opts.logger()
	name := opts.SheetName()

	var issues []models.Issue
	if opts.full() {
		names, err := wb.SheetNames(ctx)
		if err != nil {
			return resultOf(name, []models.Issue{readFailure(err).Issue()})
		}
		for _, issue := range validate.Workbook(names) {
			if issue.IsCritical() {
				return resultOf(name, []models.Issue{issue})
			}
			issues = append(issues, issue)
		}
	}

	snap, err := snapshot(ctx, wb, name, opts)
	if err != nil {
		return resultOf(name, []models.Issue{asCritical(err).Issue()})
	}
	tree, err := parse(snap)
	if err != nil {
		return resultOf(name, []models.Issue{asCritical(err).Issue()})
	}

	end := max(snap.LastRow, opts.DeadRegionRows())
	issues = append(issues, validate.Structure(tree, snap)...)
	issues = append(issues, validate.Style(tree, snap)...)
	issues = append(issues, validate.DeadRegion(tree, snap, end)...)
	if opts.full() {
		issues = append(issues, validate.Layout(snap)...)
	}

	issues = validate.Dedupe(issues)
	models.SortIssues(issues)
	log.Info("check finished", "sheet", name, "groups", len(tree.Groups), "issues", len(issues))
	return resultOf(name, issues)
}

// ParseTree reads the ledger sheet of wb and returns its tree.
func ParseTree(ctx context.Context, wb grid.Workbook, opts Options) (*models.LedgerTree, error) {
	snap, err := snapshot(ctx, wb, opts.SheetName(), opts)
	if err != nil {
		return nil, err
	}
	return parse(snap)
}

// RestoreStructure rewrites the presentation of the ledger sheet of wb, and with full scope the
// sheet set and the layout, then saves the workbook. It raises no issues; the only failures are
// critical ones. Steps already written stay written when a later step fails.
func RestoreStructure(ctx context.Context, wb grid.Workbook, opts Options) error {
	log := opts.logger()
	r := restore.New(log, opts.DeadRegionRows())
	name := opts.SheetName()

	if opts.full() {
		changes, err := r.Sheets(ctx, wb, opts.ShouldPruneSheets())
		if err != nil {
			return writeFailure(err)
		}
		for _, change := range changes {
			log.Info(change)
		}
	}

	sheet, err := openSheet(ctx, wb, name)
	if err != nil {
		return err
	}
	snap, err := grid.TakeSnapshot(ctx, sheet, opts.DeadRegionRows(), contract.SnapshotColumns)
	if err != nil {
		return readFailure(err)
	}

	if opts.full() {
		if err := r.Layout(ctx, sheet, snap); err != nil {
			return writeFailure(err)
		}
	}

	tree, err := parse(snap)
	if err != nil {
		return err
	}
	if err := r.Ledger(ctx, sheet, tree, snap); err != nil {
		return writeFailure(err)
	}

	if err := wb.Save(ctx); err != nil {
		return writeFailure(err)
	}
	log.Info("restore finished", "sheet", name)
	return nil
}

func openSheet(ctx context.Context, wb grid.Workbook, name string) (grid.Sheet, error) {
	sheet, err := wb.Sheet(ctx, name)
	if errors.Is(err, grid.ErrSheetNotFound) {
		return nil, &CriticalError{
			Code:    models.CodeMissingSheet,
			Message: fmt.Sprintf("Missing required sheet: %q", name),
			Err:     err,
		}
	}
	if err != nil {
		return nil, readFailure(err)
	}
	return sheet, nil
}

func snapshot(ctx context.Context, wb grid.Workbook, name string, opts Options) (*grid.Snapshot, error) {
	sheet, err := openSheet(ctx, wb, name)
	if err != nil {
		return nil, err
	}
	snap, err := grid.TakeSnapshot(ctx, sheet, opts.DeadRegionRows(), contract.SnapshotColumns)
	if err != nil {
		return nil, readFailure(err)
	}
	return snap, nil
}

func parse(snap *grid.Snapshot) (*models.LedgerTree, error) {
	total, err := structure.FindTotalRow(snap)
	if errors.Is(err, structure.ErrMultipleTotals) {
		return nil, NewCriticalError(models.CodeMultipleTotals, err)
	}
	if err != nil {
		return nil, NewCriticalError(models.CodeMissingTotal, err)
	}
	return structure.Parse(snap, total), nil
}

func asCritical(err error) *CriticalError {
	var critical *CriticalError
	if errors.As(err, &critical) {
		return critical
	}
	return readFailure(err)
}
