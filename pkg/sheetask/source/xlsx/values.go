package xlsx

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/a1"
)

// Values returns the cell values of an A1 range, row-major, shaped like the
// Sheets values API: trailing empty cells and trailing empty rows are dropped.
func (w *Workbook) Values(ctx context.Context, _ string, rng string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := a1.ParseRange(rng)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	rows, err := w.f.GetRows(r.Sheet)
	w.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", r.Sheet, err)
	}

	out := slice(rows, r)
	w.logger.Debug("read range", zap.String("range", rng), zap.Int("rows", len(out)))
	return out, nil
}

// slice cuts r out of rows and trims the result.
func slice(rows [][]string, r a1.Range) [][]string {
	if r.WholeSheet() {
		return trim(rows, 0, -1)
	}
	if r.R1 > len(rows) {
		return [][]string{}
	}
	end := r.R2
	if end > len(rows) {
		end = len(rows)
	}
	return trim(rows[r.R1-1:end], r.C1-1, r.C2)
}

// trim copies rows restricted to columns [from, to) (to < 0 means unbounded),
// dropping trailing empty cells and trailing empty rows.
func trim(rows [][]string, from, to int) [][]string {
	out := make([][]string, 0, len(rows))
	last := -1
	for i, row := range rows {
		var cells []string
		if from < len(row) {
			hi := len(row)
			if to >= 0 && to < hi {
				hi = to
			}
			cells = row[from:hi]
		}
		n := len(cells)
		for n > 0 && cells[n-1] == "" {
			n--
		}
		out = append(out, append([]string{}, cells[:n]...))
		if n > 0 {
			last = i
		}
	}
	return out[:last+1]
}
