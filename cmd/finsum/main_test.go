package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/contract"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid/xlsx"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"FINSUM_BACKEND", "FINSUM_SHEET", "FINSUM_DEAD_REGION_END", "FINSUM_SPREADSHEET_ID"} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func initLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	out, err := execute(t, "init", path)
	assert.NoError(t, err)
	assert.Contains(t, out, "Wrote example ledger")
	return path
}

func TestInitThenCheck(t *testing.T) {
	clearEnv(t)
	path := initLedger(t)

	out, err := execute(t, "check", path)
	assert.NoError(t, err)
	assert.Contains(t, out, "no issues found")

	_, err = execute(t, "init", path)
	assert.Error(t, err)
}

func TestCheckReportsIssues(t *testing.T) {
	clearEnv(t)
	path := initLedger(t)

	ctx := context.Background()
	wb, err := xlsx.Open(path)
	assert.NoError(t, err)
	sheet, err := wb.Sheet(ctx, contract.SummarySheet)
	assert.NoError(t, err)
	assert.NoError(t, sheet.SetValues(ctx, 8, 1, [][]grid.Value{{grid.Text("subtotal:")}}))
	assert.NoError(t, wb.Save(ctx))
	assert.NoError(t, wb.Close())

	out, err := execute(t, "check", "--format", "json", path)
	assert.IsError(t, err, errIssuesFound)

	var res finsum.Result
	assert.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.OK)
	codes := map[string]bool{}
	for _, issue := range res.Issues {
		codes[issue.Code] = true
	}
	assert.True(t, codes[models.CodeExactMatch], "issues: %v", res.Issues)
}

func TestRestoreFixesStyle(t *testing.T) {
	clearEnv(t)
	path := initLedger(t)

	ctx := context.Background()
	wb, err := xlsx.Open(path)
	assert.NoError(t, err)
	sheet, err := wb.Sheet(ctx, contract.SummarySheet)
	assert.NoError(t, err)
	assert.NoError(t, sheet.SetStyle(ctx, grid.RectFromCorners(3, 1, 3, 6), grid.DefaultStyle()))
	assert.NoError(t, wb.Save(ctx))
	assert.NoError(t, wb.Close())

	_, err = execute(t, "check", path)
	assert.IsError(t, err, errIssuesFound)

	out, err := execute(t, "restore", "--yes", path)
	assert.NoError(t, err)
	assert.Contains(t, out, "Restored")

	_, err = execute(t, "check", path)
	assert.NoError(t, err)
}

func TestTreeJSON(t *testing.T) {
	clearEnv(t)
	path := initLedger(t)

	out, err := execute(t, "tree", "--format", "json", path)
	assert.NoError(t, err)

	var tree models.LedgerTree
	assert.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, 22, tree.TotalRow)
	assert.Equal(t, 4, len(tree.Groups))
	assert.Equal(t, "Bank Accounts", tree.Groups[0].Name)
}

func TestCheckErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"check", filepath.Join(t.TempDir(), "none.xlsx")}, "file not found"},
		{"no target", []string{"check"}, "no workbook given"},
		{"bad format", []string{"check", "--format", "xml", "x.xlsx"}, "invalid format"},
		{"bad backend", []string{"check", "--backend", "csv", "x.xlsx"}, "invalid backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSchemaCommand(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "schema")
	assert.NoError(t, err)
	assert.Contains(t, out, `"issues"`)
}

func TestWatchFile(t *testing.T) {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	assert.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, 10*time.Millisecond, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-changed:
			break wait
		case <-tick.C:
			assert.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}
