// Package gsheets implements the grid accessor over a Google Sheets spreadsheet.
// Cell writes are queued and sent as one batch update on Save; reads flush the queue first.
// Sheet and column operations that need current sheet properties also flush.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// NewService creates a Sheets API service authenticated with a service account key file.
func NewService(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	if credentialsFile == "" {
		return nil, errors.New("no service account key file configured")
	}
	jsonKey, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// Workbook is a grid.Workbook over one spreadsheet.
type Workbook struct {
	svc *sheets.Service
	id  string

	mu      sync.Mutex
	pending []*sheets.Request
	run     *styleRun
	meta    *sheets.Spreadsheet
	// generation counts flushes so sheets can drop cached reads.
	generation int
}

// styleRun is the last queued format request while nothing else has been queued after it.
type styleRun struct {
	sheet int64
	rect  grid.Rect
	style grid.Style
	req   *sheets.Request
}

// Open binds a workbook to the spreadsheet with the given id.
func Open(svc *sheets.Service, spreadsheetID string) *Workbook {
	return &Workbook{svc: svc, id: spreadsheetID}
}

// ID returns the spreadsheet id.
func (wb *Workbook) ID() string {
	return wb.id
}

func (wb *Workbook) SheetNames(ctx context.Context) ([]string, error) {
	meta, err := wb.metadata(ctx)
	if err != nil {
		return nil, grid.NewAccessError("", "read", err)
	}
	names := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		names = append(names, s.Properties.Title)
	}
	return names, nil
}

func (wb *Workbook) Sheet(ctx context.Context, name string) (grid.Sheet, error) {
	p, err := wb.sheet(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Sheet{wb: wb, name: name, id: p.Properties.SheetId}, nil
}

func (wb *Workbook) AddSheet(ctx context.Context, name string) error {
	req := &sheets.Request{AddSheet: &sheets.AddSheetRequest{
		Properties: &sheets.SheetProperties{Title: name},
	}}
	if err := wb.apply(ctx, req); err != nil {
		return grid.NewAccessError(name, "write", err)
	}
	return nil
}

func (wb *Workbook) DeleteSheet(ctx context.Context, name string) error {
	s, err := wb.sheet(ctx, name)
	if err != nil {
		return err
	}
	req := &sheets.Request{DeleteSheet: &sheets.DeleteSheetRequest{SheetId: s.Properties.SheetId}}
	if err := wb.apply(ctx, req); err != nil {
		return grid.NewAccessError(name, "write", err)
	}
	return nil
}

// Save sends the queued writes.
func (wb *Workbook) Save(ctx context.Context) error {
	if err := wb.flush(ctx); err != nil {
		return grid.NewAccessError("", "save", err)
	}
	return nil
}

func (wb *Workbook) Close() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if n := len(wb.pending); n > 0 {
		return fmt.Errorf("%d queued requests were never saved", n)
	}
	return nil
}

// queue appends requests to the next batch update.
func (wb *Workbook) queue(reqs ...*sheets.Request) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.pending = append(wb.pending, reqs...)
	wb.run = nil
}

// queueStyle queues a format request for r, or grows the previous one when it carries the same
// style and r continues its range.
func (wb *Workbook) queueStyle(sheetID int64, r grid.Rect, style grid.Style) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if run := wb.run; run != nil && run.sheet == sheetID && run.style == style {
		if merged, ok := adjoin(run.rect, r); ok {
			run.rect = merged
			run.req.RepeatCell.Range = gridRange(sheetID, merged)
			return
		}
	}
	req := &sheets.Request{RepeatCell: &sheets.RepeatCellRequest{
		Range:  gridRange(sheetID, r),
		Cell:   &sheets.CellData{UserEnteredFormat: toFormat(style)},
		Fields: fieldsFormat,
	}}
	wb.pending = append(wb.pending, req)
	wb.run = &styleRun{sheet: sheetID, rect: r, style: style, req: req}
}

// apply sends reqs together with everything queued before them.
func (wb *Workbook) apply(ctx context.Context, reqs ...*sheets.Request) error {
	wb.queue(reqs...)
	return wb.flush(ctx)
}

func (wb *Workbook) flush(ctx context.Context) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if len(wb.pending) == 0 {
		return nil
	}
	batch := &sheets.BatchUpdateSpreadsheetRequest{Requests: wb.pending}
	if _, err := wb.svc.Spreadsheets.BatchUpdate(wb.id, batch).Context(ctx).Do(); err != nil {
		return err
	}
	wb.pending = nil
	wb.run = nil
	wb.meta = nil
	wb.generation++
	return nil
}

// metadata returns sheet properties, conditional formats and charts without grid data.
func (wb *Workbook) metadata(ctx context.Context) (*sheets.Spreadsheet, error) {
	if err := wb.flush(ctx); err != nil {
		return nil, err
	}
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.meta != nil {
		return wb.meta, nil
	}
	meta, err := wb.svc.Spreadsheets.Get(wb.id).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	wb.meta = meta
	return meta, nil
}

func (wb *Workbook) sheet(ctx context.Context, name string) (*sheets.Sheet, error) {
	meta, err := wb.metadata(ctx)
	if err != nil {
		return nil, grid.NewAccessError(name, "read", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, grid.ErrSheetNotFound)
}

func (wb *Workbook) currentGeneration() int {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.generation
}
