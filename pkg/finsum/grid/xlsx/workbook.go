package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/elstrm2/Financial-Summary-Spreadsheet-Manager/pkg/finsum/grid"
)

// Workbook is a grid.Workbook over an .xlsx file. Writes stay in memory until Save.
type Workbook struct {
	f    *excelize.File
	path string

	mu     sync.Mutex
	styles map[int]grid.Style
	ids    map[grid.Style]int

	// Drawing anchors come from the file last written to disk. Serializing the live file
	// trims its worksheets, so it is only serialized by Save.
	onDisk  bool
	pkg     *packageReader
	created map[string]bool
	removed map[string][]grid.Anchor
}

// Open opens an existing .xlsx file.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, grid.NewAccessError("", "open", err)
	}
	wb := newWorkbook(f, path)
	wb.onDisk = true
	return wb, nil
}

// Create starts a new workbook that Save writes to path.
func Create(path string) *Workbook {
	return newWorkbook(excelize.NewFile(), path)
}

func newWorkbook(f *excelize.File, path string) *Workbook {
	return &Workbook{
		f:      f,
		path:   path,
		styles:  make(map[int]grid.Style),
		ids:     make(map[grid.Style]int),
		created: make(map[string]bool),
		removed: make(map[string][]grid.Anchor),
	}
}

// File exposes the underlying excelize file.
func (wb *Workbook) File() *excelize.File {
	return wb.f
}

// Path returns the file the workbook saves to.
func (wb *Workbook) Path() string {
	return wb.path
}

func (wb *Workbook) SheetNames(ctx context.Context) ([]string, error) {
	return wb.f.GetSheetList(), nil
}

func (wb *Workbook) Sheet(ctx context.Context, name string) (grid.Sheet, error) {
	if !slices.Contains(wb.f.GetSheetList(), name) {
		return nil, fmt.Errorf("%q: %w", name, grid.ErrSheetNotFound)
	}
	return &Sheet{wb: wb, name: name}, nil
}

func (wb *Workbook) AddSheet(ctx context.Context, name string) error {
	if slices.Contains(wb.f.GetSheetList(), name) {
		return fmt.Errorf("sheet %q already exists", name)
	}
	if _, err := wb.f.NewSheet(name); err != nil {
		return grid.NewAccessError(name, "write", err)
	}
	wb.mu.Lock()
	wb.created[name] = true
	wb.mu.Unlock()
	return nil
}

func (wb *Workbook) DeleteSheet(ctx context.Context, name string) error {
	names := wb.f.GetSheetList()
	if !slices.Contains(names, name) {
		return fmt.Errorf("%q: %w", name, grid.ErrSheetNotFound)
	}
	if len(names) == 1 {
		return grid.NewAccessError(name, "write", errors.New("cannot delete the only sheet"))
	}
	if err := wb.f.DeleteSheet(name); err != nil {
		return grid.NewAccessError(name, "write", err)
	}
	wb.mu.Lock()
	delete(wb.removed, name)
	wb.mu.Unlock()
	return nil
}

func (wb *Workbook) Save(ctx context.Context) error {
	if wb.path == "" {
		return grid.NewAccessError("", "save", errors.New("workbook has no path"))
	}
	if err := wb.f.SaveAs(wb.path); err != nil {
		return grid.NewAccessError("", "save", err)
	}
	return wb.reload()
}

// reload reopens the file just saved; the serialized worksheets are no longer safe to edit.
func (wb *Workbook) reload() error {
	f, err := excelize.OpenFile(wb.path)
	if err != nil {
		return grid.NewAccessError("", "open", err)
	}
	_ = wb.f.Close()

	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.f = f
	wb.styles = make(map[int]grid.Style)
	wb.ids = make(map[grid.Style]int)
	wb.onDisk = true
	wb.pkg = nil
	wb.created = make(map[string]bool)
	wb.removed = make(map[string][]grid.Anchor)
	return nil
}

func (wb *Workbook) Close() error {
	return wb.f.Close()
}

// style returns the presentation profile of a style index.
func (wb *Workbook) style(id int) (grid.Style, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if s, ok := wb.styles[id]; ok {
		return s, nil
	}
	def, err := wb.f.GetStyle(id)
	if err != nil {
		return grid.Style{}, err
	}
	s := fromExcelize(def, wb.f)
	wb.styles[id] = s
	return s, nil
}

// styleID returns a style index rendering s, creating it on first use.
func (wb *Workbook) styleID(s grid.Style) (int, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if id, ok := wb.ids[s]; ok {
		return id, nil
	}
	id, err := wb.f.NewStyle(toExcelize(s))
	if err != nil {
		return 0, err
	}
	wb.ids[s] = id
	return id, nil
}

// diskPackage reads the package of the file on disk, once per save.
func (wb *Workbook) diskPackage() (*packageReader, error) {
	if wb.pkg != nil {
		return wb.pkg, nil
	}
	if !wb.onDisk {
		wb.pkg = &packageReader{sheets: make(map[string]string)}
		return wb.pkg, nil
	}
	data, err := os.ReadFile(wb.path)
	if err != nil {
		return nil, err
	}
	pkg, err := readPackage(data)
	if err != nil {
		return nil, err
	}
	wb.pkg = pkg
	return pkg, nil
}

// anchors lists the drawings of a sheet as last saved, less those removed since. Drawings
// added through File are not listed until the workbook is saved.
func (wb *Workbook) anchors(sheet string) ([]grid.Anchor, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.created[sheet] {
		return nil, nil
	}
	pkg, err := wb.diskPackage()
	if err != nil {
		return nil, err
	}
	saved, err := pkg.anchors(sheet)
	if err != nil {
		return nil, err
	}
	var anchors []grid.Anchor
	for _, a := range saved {
		if !slices.Contains(wb.removed[sheet], a) {
			anchors = append(anchors, a)
		}
	}
	return anchors, nil
}

func (wb *Workbook) markRemoved(sheet string, a grid.Anchor) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.removed[sheet] = append(wb.removed[sheet], a)
}
