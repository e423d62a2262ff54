// Package finsum checks and restores the structure of the Financial Summary ledger sheet.
package finsum

import (
	"io"
	"log/slog"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
)

// Scope selects how much of the workbook a pass covers.
type Scope string

const (
	// ScopeLedger covers the ledger rows, their styles and the dead region only.
	ScopeLedger Scope = "ledger"
	// ScopeFull additionally covers the sheet set and the sheet layout.
	ScopeFull Scope = "full"
)

// Options configures check and restore passes.
type Options struct {
	// Scope specifies the coverage (ledger, full).
	Scope Scope
	// Sheet is the ledger sheet name. Empty means "Financial Summary".
	Sheet string
	// DeadRegionEnd is the last row scanned below the total row. Zero means 1000.
	DeadRegionEnd int
	// PruneSheets specifies whether a full restore deletes sheets outside the allowed set.
	// If nil, defaults to true.
	PruneSheets *bool
	// Logger receives progress records. If nil, output is discarded.
	Logger *slog.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Scope: ScopeFull,
	}
}

// ShouldPruneSheets returns whether a full restore deletes disallowed sheets.
func (o Options) ShouldPruneSheets() bool {
	if o.PruneSheets != nil {
		return *o.PruneSheets
	}
	return true
}

// SheetName returns the ledger sheet name.
func (o Options) SheetName() string {
	if o.Sheet != "" {
		return o.Sheet
	}
	return contract.SummarySheet
}

// DeadRegionRows returns the configured dead region end.
func (o Options) DeadRegionRows() int {
	if o.DeadRegionEnd > 0 {
		return o.DeadRegionEnd
	}
	return contract.DeadRegionEnd
}

func (o Options) full() bool {
	return o.Scope != ScopeLedger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
