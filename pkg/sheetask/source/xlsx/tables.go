package xlsx

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/a1"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// Column types reported for workbook tables.
const (
	ColumnTypeDouble = "DOUBLE"
	ColumnTypeText   = "TEXT"
)

// tables lists every table, reading column names from the header row and
// inferring column types from the first data row.
func (w *Workbook) tables(sheets []models.SheetInfo) ([]models.TableInfo, error) {
	out := []models.TableInfo{}
	for _, s := range sheets {
		tables, err := w.f.GetTables(s.Title)
		if err != nil {
			return nil, fmt.Errorf("read tables of sheet %q: %w", s.Title, err)
		}
		if len(tables) == 0 {
			continue
		}

		rows, err := w.f.GetRows(s.Title)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", s.Title, err)
		}
		for _, t := range tables {
			r, err := a1.ParseRange(a1.QuoteSheetName(s.Title) + "!" + t.Range)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", t.Name, err)
			}
			out = append(out, models.TableInfo{
				Name:    t.Name,
				Range:   r.String(),
				Columns: tableColumns(rows, r),
			})
		}
	}
	return out, nil
}

func tableColumns(rows [][]string, r a1.Range) []models.TableColumnInfo {
	header := rowAt(rows, r.R1)
	first := rowAt(rows, r.R1+1)

	cols := make([]models.TableColumnInfo, 0, r.C2-r.C1+1)
	for c := r.C1; c <= r.C2; c++ {
		cols = append(cols, models.TableColumnInfo{
			ColumnIndex: c - r.C1,
			ColumnName:  cellAt(header, c),
			ColumnType:  inferColumnType(cellAt(first, c)),
		})
	}
	return cols
}

// inferColumnType classifies a sample cell: numerics are DOUBLE, anything
// else (including an empty sample) is TEXT.
func inferColumnType(s string) string {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ColumnTypeDouble
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return ColumnTypeDouble
	}
	return ColumnTypeText
}

// rowAt returns the 1-based row n, or nil when past the data.
func rowAt(rows [][]string, n int) []string {
	if n < 1 || n > len(rows) {
		return nil
	}
	return rows[n-1]
}

// cellAt returns the 1-based column n of row, or "" when past the data.
func cellAt(row []string, n int) string {
	if n < 1 || n > len(row) {
		return ""
	}
	return row[n-1]
}
