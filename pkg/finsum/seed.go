package finsum

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// ExampleLedger is the sample ledger written by Seed, starting at the first data row. Cells
// starting with "=" are formulas; numbers use a decimal comma as typed by users.
var ExampleLedger = [][contract.LedgerColumns]string{
	{"Bank Accounts", "", "", "", "", ""},
	{"- Bank 1", "1111", "RUB", "87,03", "=B3/D3", "Active funds"},
	{"- Bank 2 (Cashback)", "11", "RUB", "87,03", "=B4/D4", "Pending cashback"},
	{"- Bank 3 (Blocked Funds)", "11", "RUB", "87,03", "=B5/D5", "Harder to withdraw"},
	{"- Bank 4", "111", "EUR", "1,08", "=B6*D6", "Active funds"},
	{"- Bank 4 (Cashback)", "11", "EUR", "1,08", "=B7*D7", "Pending cashback"},
	{"Subtotal:", "=SUM(E3:E7)", "USD", "", "", ""},
	{"Cryptocurrency Holdings", "", "", "", "", ""},
	{"- Crypto 1", "111", "USDT", "1,00", "=B10*D10", "Stablecoin (TON Chain)"},
	{"- Crypto 2", "111", "USDC", "1,00", "=B11*D11", "Stablecoin (BSC Chain)"},
	{"- Crypto 3", "1", "BNB", "300", "=B12*D12", "Binance Coin"},
	{"- Crypto 4", "1", "TON", "3", "=B13*D13", "Toncoin"},
	{"- Crypto 5", "1", "ETH", "2000", "=B14*D14", "Ethereum"},
	{"Subtotal:", "=SUM(E10:E14)", "USD", "", "", ""},
	{"Cash Holdings", "", "", "", "", ""},
	{"- Cash 1", "1111", "EUR", "1,08", "=B17*D17", "Cash on hand"},
	{"Subtotal:", "=SUM(E17)", "USD", "", "", ""},
	{"CS:GO Skins", "", "", "", "", ""},
	{"- Sellable Price", "1111", "USD", "1,00", "=B20*D20", "Steam Market Price: $111"},
	{"Subtotal:", "=SUM(E20)", "USD", "", "", ""},
	{"TOTAL:", "=SUM(E3:E20)", "USD", "", "", ""},
}

// Seed clears the ledger area of sheet and writes ExampleLedger below the title row. Run a
// restore afterwards to apply the canonical presentation.
func Seed(ctx context.Context, sheet grid.Writer) error {
	area := grid.RectFromCorners(contract.FirstDataRow, 1, contract.DeadRegionEnd, contract.LedgerColumns)
	if err := sheet.Clear(ctx, area); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}

	values := make([][]grid.Value, len(ExampleLedger))
	for i, line := range ExampleLedger {
		values[i] = make([]grid.Value, len(line))
		for j, raw := range line {
			if !strings.HasPrefix(raw, "=") {
				values[i][j] = parseExample(raw)
			}
		}
	}
	if err := sheet.SetValues(ctx, contract.FirstDataRow, 1, values); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}

	for i, line := range ExampleLedger {
		for j, raw := range line {
			if !strings.HasPrefix(raw, "=") {
				continue
			}
			if err := sheet.SetFormula(ctx, contract.FirstDataRow+i, j+1, raw); err != nil {
				return fmt.Errorf("write formula: %w", err)
			}
		}
	}
	return nil
}

// parseExample turns a typed cell into a value, reading "87,03" as a number.
func parseExample(raw string) grid.Value {
	if f, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64); err == nil {
		return grid.Number(f)
	}
	return grid.Text(raw)
}
