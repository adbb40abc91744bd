// Package xlsx serves spreadsheet metadata and cell values from a local .xlsx workbook.
package xlsx

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// Workbook is an open workbook. It serves a single file, so the spreadsheet
// id arguments of Metadata and Values are ignored.
type Workbook struct {
	f      *excelize.File
	path   string
	logger *zap.Logger

	mu sync.Mutex // excelize row reads share per-sheet caches
}

// Open opens the workbook at path.
func Open(path string, logger *zap.Logger) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workbook{f: f, path: path, logger: logger}, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Metadata lists the workbook's sheets, defined names and tables.
func (w *Workbook) Metadata(ctx context.Context, _ string) (*models.SpreadsheetMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	meta := &models.SpreadsheetMetadata{
		Title:  filepath.Base(w.path),
		Sheets: w.sheets(),
	}
	meta.NamedRanges = w.namedRanges(meta.Sheets)

	tables, err := w.tables(meta.Sheets)
	if err != nil {
		return nil, err
	}
	meta.Tables = tables

	w.logger.Debug("read workbook metadata",
		zap.String("path", w.path),
		zap.Int("sheets", len(meta.Sheets)),
		zap.Int("named_ranges", len(meta.NamedRanges)),
		zap.Int("tables", len(meta.Tables)))
	return meta, nil
}

// sheets returns the worksheets in tab order with their workbook ids.
func (w *Workbook) sheets() []models.SheetInfo {
	ids := make(map[string]int)
	for id, name := range w.f.GetSheetMap() {
		ids[name] = id
	}

	list := w.f.GetSheetList()
	out := make([]models.SheetInfo, 0, len(list))
	for _, name := range list {
		out = append(out, models.SheetInfo{SheetID: ids[name], Title: name})
	}
	return out
}

func hasSheet(sheets []models.SheetInfo, title string) bool {
	for _, s := range sheets {
		if s.Title == title {
			return true
		}
	}
	return false
}
