package models

import "github.com/shopspring/decimal"

// SubItem is a line item row inside a Group.
type SubItem struct {
	// Name is the column-A text including the "- " prefix.
	Name string `json:"name"`
	// Row is the 1-based sheet row.
	Row int `json:"row"`
	// Amount is column B when numeric.
	Amount decimal.NullDecimal `json:"amount"`
	// Currency is column C.
	Currency string `json:"currency,omitempty"`
	// ExchangeRate is column D when numeric.
	ExchangeRate decimal.NullDecimal `json:"exchange_rate"`
	// Converted is column E (amount in the main currency) when numeric.
	Converted decimal.NullDecimal `json:"converted"`
	// Note is column F.
	Note string `json:"note,omitempty"`
}

// Group is a named ledger section: a header row, its sub-items and a closing subtotal.
type Group struct {
	// Name is the header row's column-A text.
	Name string `json:"name"`
	// StartRow is the header row.
	StartRow int `json:"start_row"`
	// SubItems are the group's line items in document order.
	SubItems []SubItem `json:"sub_items"`
	// SubtotalRow is the explicit "Subtotal:" row, or 0 when the group has none.
	SubtotalRow int `json:"subtotal_row,omitempty"`
	// EndRow is the last row of the group: the subtotal row, or the inferred boundary.
	EndRow int `json:"end_row"`
}

// HasSubtotal reports whether the group was closed by a subtotal row.
func (g Group) HasSubtotal() bool {
	return g.SubtotalRow > 0
}

// StrayRow is a row the parser could not attach to any group.
type StrayRow struct {
	Row     int     `json:"row"`
	Role    Role    `json:"role"`
	Anomaly Anomaly `json:"anomaly,omitempty"`
	Text    string  `json:"text"`
}

// LedgerTree is the parsed ledger: ordered groups terminated by a single total row.
type LedgerTree struct {
	// FirstRow is the first data row (the row after the title header).
	FirstRow int `json:"first_row"`
	// Groups are the ledger groups in document order.
	Groups []Group `json:"groups"`
	// TotalRow is the single "TOTAL:" row.
	TotalRow int `json:"total_row"`
	// Strays are sub-items, subtotals and near-miss totals found outside any group.
	Strays []StrayRow `json:"strays,omitempty"`
}

// Rows maps every row the tree assigns a role to.
func (t *LedgerTree) Rows() map[int]Role {
	rows := make(map[int]Role)
	for _, g := range t.Groups {
		rows[g.StartRow] = RoleGroupHeader
		for _, item := range g.SubItems {
			rows[item.Row] = RoleSubItem
		}
		if g.HasSubtotal() {
			rows[g.SubtotalRow] = RoleSubtotal
		}
	}
	if t.TotalRow > 0 {
		rows[t.TotalRow] = RoleTotal
	}
	return rows
}

// Sum adds up the converted amounts of the group's sub-items.
func (g Group) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range g.SubItems {
		if item.Converted.Valid {
			sum = sum.Add(item.Converted.Decimal)
		}
	}
	return sum
}
