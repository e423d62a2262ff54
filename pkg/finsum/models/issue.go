// Package models defines data structures shared by the ledger structure engine.
package models

import (
	"fmt"
	"sort"
)

// Category classifies an Issue by severity.
type Category string

const (
	// CategoryCritical means the sheet could not be parsed at all.
	CategoryCritical Category = "critical"
	// CategoryStructural covers sentinel, prefix, value, type and number-format findings.
	CategoryStructural Category = "structural"
	// CategoryStyle covers presentation findings (font, alignment, colour, borders, overlays).
	CategoryStyle Category = "style"
)

// Stable issue codes. Messages may be reworded; codes may not.
const (
	CodeMissingTotal    = "missing-total"
	CodeMultipleTotals  = "multiple-totals"
	CodeMissingSheet    = "missing-sheet"
	CodeReadFailure     = "read-failure"
	CodeWriteFailure    = "write-failure"
	CodeInvalidSheets   = "invalid-sheets"
	CodeExactMatch      = "exact-match"
	CodePrefix          = "prefix"
	CodeMissingSpace    = "missing-space-after-dash"
	CodeRequired        = "required-value"
	CodeNotNumber       = "not-number"
	CodeNumberFormat    = "number-format"
	CodeNotText         = "not-text"
	CodeNotEmpty        = "not-empty"
	CodeMissingSubtotal = "missing-subtotal"
	CodeSubItemGap      = "sub-item-gap"
	CodeSubtotalGap     = "subtotal-gap"
	CodeStraySubItem    = "stray-sub-item"
	CodeStraySubtotal   = "stray-subtotal"
	CodeTotalNearMiss   = "total-near-miss"
	CodeHeaderText      = "header-text"
	CodeButtonText      = "button-text"
	CodeCheckbox        = "checkbox"
	CodeFont            = "font"
	CodeTextStyle       = "text-style"
	CodeAlignment       = "alignment"
	CodeColor           = "color"
	CodeBackground      = "background"
	CodeBorder          = "border"
	CodeRangeShape      = "range-shape"
	CodeColumnWidth     = "column-width"
	CodeNote            = "note"
	CodeValidation      = "validation"
	CodeConditionalFmt  = "conditional-format"
	CodeDrawing         = "drawing"
	CodeHyperlink       = "hyperlink"
	CodeValueOrFormula  = "value-or-formula"
)

// Issue is one validation finding.
type Issue struct {
	// Location is an A1 cell ("B3"), a row ("Row 5"), a column ("Column G"), a range, or empty
	// for sheet-level findings.
	Location string `json:"location,omitempty"`
	// Row is the 1-based row the issue refers to (0 when not row-bound).
	Row int `json:"row,omitempty"`
	// Col is the 1-based column the issue refers to (0 when not cell-bound).
	Col int `json:"col,omitempty"`
	// Category is the severity.
	Category Category `json:"category" jsonschema:"enum=critical,enum=structural,enum=style"`
	// Code is a stable machine-readable identifier.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
}

// String renders the issue the way it is shown to users.
func (i Issue) String() string {
	if i.Location == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Location, i.Message)
}

// IsCritical reports whether the issue aborted the pass.
func (i Issue) IsCritical() bool {
	return i.Category == CategoryCritical
}

// SortIssues orders issues by row, then column, keeping the original order otherwise.
// Sheet-level issues (row 0) come first.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].Row != issues[b].Row {
			return issues[a].Row < issues[b].Row
		}
		return issues[a].Col < issues[b].Col
	})
}

// CountByCategory tallies issues per category.
func CountByCategory(issues []Issue) map[Category]int {
	counts := make(map[Category]int)
	for _, issue := range issues {
		counts[issue.Category]++
	}
	return counts
}
