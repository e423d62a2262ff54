package validate

import (
	"strconv"
	"strings"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

// Workbook checks the set of sheets: the summary sheet must exist and nothing outside the
// allowed set may sit next to it. A missing summary sheet is critical.
func Workbook(names []string) []models.Issue {
	r := newReport()

	var invalid []string
	found := false
	for _, name := range names {
		if name == contract.SummarySheet {
			found = true
		}
		if !contract.IsAllowedSheet(name) {
			invalid = append(invalid, strconv.Quote(name))
		}
	}

	if !found {
		r.at("", 0, models.CategoryCritical, models.CodeMissingSheet,
			"Missing required sheet: %q", contract.SummarySheet)
	}
	if len(invalid) > 0 {
		r.at("", 0, models.CategoryStructural, models.CodeInvalidSheets,
			"Invalid sheets detected (%s). Only %q, %q and %s sheets allowed",
			strings.Join(invalid, ", "), contract.SummarySheet, contract.DebugLogSheet, contract.SnapshotPrefix)
	}

	return r.issues
}
