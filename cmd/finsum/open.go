package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/config"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid/gsheets"
	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid/xlsx"
)

// resolveTarget returns the file path or spreadsheet id a command works on.
func resolveTarget(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.BackendName() == config.BackendGSheets && cfg.Google.SpreadsheetID != "" {
		return cfg.Google.SpreadsheetID, nil
	}
	return "", errors.New("no workbook given: pass an .xlsx path or a spreadsheet id")
}

func openWorkbook(ctx context.Context, target string) (grid.Workbook, error) {
	switch cfg.BackendName() {
	case config.BackendGSheets:
		svc, err := gsheets.NewService(ctx, cfg.Google.Credentials)
		if err != nil {
			return nil, err
		}
		logger.Debug("opening spreadsheet", "id", target)
		return gsheets.Open(svc, target), nil
	default:
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", target)
		}
		logger.Debug("opening workbook", "path", target)
		wb, err := xlsx.Open(target)
		if err != nil {
			return nil, err
		}
		return wb, nil
	}
}
