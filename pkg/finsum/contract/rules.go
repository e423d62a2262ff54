// Package contract holds the immutable configuration of the ledger sheet: the per-role row
// grammar, the per-role style contracts, the pristine cell profile and the sheet layout.
package contract

import "github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"

// ColumnType is the expected content type of a column.
type ColumnType int

const (
	// TypeEmpty requires the cell to be pristine.
	TypeEmpty ColumnType = iota
	// TypeString requires a textual value.
	TypeString
	// TypeNumber requires a numeric value with an accepted number format.
	TypeNumber
)

// ColumnRule is the grammar of one column of a row.
type ColumnRule struct {
	Required bool
	Type     ColumnType
}

// LedgerColumns is the number of ledger columns (A–F).
const LedgerColumns = 6

// RowRule is the grammar of one row role.
type RowRule struct {
	Role models.Role
	// ExactMatch, when set, is the only accepted column-A text.
	ExactMatch string
	// Prefix, when set, must start the column-A text.
	Prefix  string
	Columns [LedgerColumns]ColumnRule
}

// numberFormats are the accepted number formats of numeric columns.
var numberFormats = []string{"0.0000", "0,0000", "#,####", "#.####"}

// CanonicalNumberFormat is what the restorer writes to numeric columns.
const CanonicalNumberFormat = "0.0000"

// NumberFormats returns the accepted number formats.
func NumberFormats() []string {
	out := make([]string, len(numberFormats))
	copy(out, numberFormats)
	return out
}

// IsAcceptedNumberFormat reports whether format is one of NumberFormats.
func IsAcceptedNumberFormat(format string) bool {
	for _, f := range numberFormats {
		if f == format {
			return true
		}
	}
	return false
}

var (
	required = func(t ColumnType) ColumnRule { return ColumnRule{Required: true, Type: t} }
	optional = func(t ColumnType) ColumnRule { return ColumnRule{Type: t} }

	rowRules = map[models.Role]RowRule{
		models.RoleGroupHeader: {
			Role: models.RoleGroupHeader,
			Columns: [LedgerColumns]ColumnRule{
				required(TypeString),
				required(TypeEmpty),
				required(TypeEmpty),
				required(TypeEmpty),
				required(TypeEmpty),
				required(TypeEmpty),
			},
		},
		models.RoleSubItem: {
			Role:   models.RoleSubItem,
			Prefix: models.SubItemPrefix,
			Columns: [LedgerColumns]ColumnRule{
				required(TypeString),
				required(TypeNumber),
				required(TypeString),
				optional(TypeNumber),
				optional(TypeNumber),
				optional(TypeString),
			},
		},
		models.RoleSubtotal: {
			Role:       models.RoleSubtotal,
			ExactMatch: models.SubtotalSentinel,
			Columns: [LedgerColumns]ColumnRule{
				required(TypeString),
				required(TypeNumber),
				required(TypeString),
				required(TypeEmpty),
				required(TypeEmpty),
				required(TypeEmpty),
			},
		},
		models.RoleTotal: {
			Role:       models.RoleTotal,
			ExactMatch: models.TotalSentinel,
			Columns: [LedgerColumns]ColumnRule{
				required(TypeString),
				required(TypeNumber),
				required(TypeString),
				required(TypeEmpty),
				required(TypeEmpty),
				required(TypeEmpty),
			},
		},
	}
)

// RuleFor returns the row grammar of a role. Roles without a grammar return ok=false.
// RowRule is returned by value, so callers cannot alter the table.
func RuleFor(role models.Role) (RowRule, bool) {
	rule, ok := rowRules[role]
	return rule, ok
}
