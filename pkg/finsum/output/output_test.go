package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

func sampleResult() finsum.Result {
	return finsum.Result{
		Sheet: "Financial Summary",
		Issues: []models.Issue{
			{Location: "Row 9", Row: 9, Category: models.CategoryStructural, Code: models.CodeMissingSubtotal, Message: `Missing Subtotal for group "Cash"`},
			{Location: "B12", Row: 12, Col: 2, Category: models.CategoryStyle, Code: models.CodeAlignment, Message: "Horizontal alignment should be right, got left"},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleResult(), false)
	assert.NoError(t, err)

	var decoded finsum.Result
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleResult(), decoded)

	pretty, err := ToJSON(sampleResult(), true)
	assert.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"sheet\": \"Financial Summary\"")
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	assert.NoError(t, err)

	var schema map[string]any
	assert.NoError(t, json.Unmarshal(data, &schema))
	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok, "schema has no properties: %s", data)
	for _, name := range []string{"ok", "sheet", "issues"} {
		if _, ok := props[name]; !ok {
			t.Errorf("schema properties missing %q", name)
		}
	}
	assert.Contains(t, string(data), `"structural"`)
}

func TestPrinterResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 0).Result(sampleResult())
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.Contains(t, lines[0], `Row 9  structural  Missing Subtotal for group "Cash"`)
	// locations are padded to the widest one
	assert.Contains(t, lines[1], "B12    style       Horizontal alignment")
	assert.Contains(t, lines[2], "2 issues (1 structural, 1 style)")
}

func TestPrinterResultOK(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 0).Result(finsum.Result{OK: true, Sheet: "Financial Summary"})
	assert.Contains(t, buf.String(), `"Financial Summary": no issues found`)
}

func TestPrinterTruncates(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, 40).Result(sampleResult())
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")[:2] {
		if w := len([]rune(line)); w > 40 {
			t.Errorf("line %q is %d runes wide, expected at most 40", line, w)
		}
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		issues   []models.Issue
		expected string
	}{
		{[]models.Issue{{Category: models.CategoryCritical}}, "1 issue (1 critical)"},
		{[]models.Issue{{Category: models.CategoryStyle}, {Category: models.CategoryStructural}, {Category: models.CategoryStyle}}, "3 issues (1 structural, 2 style)"},
	}
	for _, tt := range tests {
		got := summary(tt.issues)
		if got != tt.expected {
			t.Errorf("summary(%v) = %q, expected %q", tt.issues, got, tt.expected)
		}
	}
}

func TestPrinterTree(t *testing.T) {
	tree := &models.LedgerTree{
		FirstRow: 2,
		TotalRow: 9,
		Groups: []models.Group{
			{
				Name:     "Bank Accounts",
				StartRow: 2,
				EndRow:   5,
				SubItems: []models.SubItem{
					{Name: "- Bank 1", Row: 3, Amount: nullDecimal("1111"), Currency: "RUB", Converted: nullDecimal("12.765")},
					{Name: "- Bank 4", Row: 4, Amount: nullDecimal("111"), Currency: "EUR", Converted: nullDecimal("119.88")},
				},
				SubtotalRow: 5,
			},
			{
				Name:     "Cash",
				StartRow: 6,
				EndRow:   7,
				SubItems: []models.SubItem{{Name: "- Cash 1", Row: 7, Currency: "EUR"}},
			},
		},
		Strays: []models.StrayRow{{Row: 8, Role: models.RoleSubItem, Text: "- Lost"}},
	}

	var buf bytes.Buffer
	NewPrinter(&buf, 0).Tree(tree)
	out := buf.String()

	assert.Contains(t, out, "Bank Accounts rows 2-5")
	assert.Contains(t, out, "- Bank 1  1111 RUB   12.77")
	assert.Contains(t, out, "Subtotal 132.65")
	assert.Contains(t, out, "- Cash 1  - EUR   -")
	assert.Contains(t, out, "no Subtotal row 0.00")
	assert.Contains(t, out, "TOTAL: 132.65 row 9")
	assert.Contains(t, out, `Row 8: sub item outside of any group: "- Lost"`)
}

func nullDecimal(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}
