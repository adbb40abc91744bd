package a1

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Range is a parsed A1 address with one-based, inclusive bounds.
// A whole-sheet address leaves all bounds zero.
type Range struct {
	// Sheet is the unquoted sheet title.
	Sheet string
	// R1 is the start row (1-based).
	R1 int
	// C1 is the start column (1-based).
	C1 int
	// R2 is the end row (1-based, inclusive).
	R2 int
	// C2 is the end column (1-based, inclusive).
	C2 int
}

// WholeSheet reports whether the range addresses an entire sheet.
func (r Range) WholeSheet() bool {
	return r.R1 == 0 && r.C1 == 0
}

// String renders the range in the same form FromGridRange produces.
func (r Range) String() string {
	sheet := QuoteSheetName(r.Sheet)
	if r.WholeSheet() {
		return sheet
	}
	start := cellName(r.C1-1, r.R1)
	if r.R1 == r.R2 && r.C1 == r.C2 {
		return sheet + "!" + start
	}
	return sheet + "!" + start + ":" + cellName(r.C2-1, r.R2)
}

// ParseRange parses 'Sheet Name'!$A$1:$D$10, Sheet1!B2 or a bare sheet name.
// A leading '=' is ignored. Multi-area references are rejected.
func ParseRange(ref string) (Range, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")
	if ref == "" {
		return Range{}, fmt.Errorf("empty range reference")
	}

	idx, multi := splitPoint(ref)
	if multi {
		return Range{}, fmt.Errorf("multi-area reference %q", ref)
	}
	if idx < 0 {
		return Range{Sheet: UnquoteSheetName(ref)}, nil
	}

	sheet := UnquoteSheetName(ref[:idx])
	cells := strings.ReplaceAll(ref[idx+1:], "$", "")
	if sheet == "" || cells == "" {
		return Range{}, fmt.Errorf("invalid range reference %q", ref)
	}

	parts := strings.Split(cells, ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("invalid range reference %q", ref)
	}
	c1, r1, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("invalid range reference %q: %w", ref, err)
	}
	c2, r2 := c1, r1
	if len(parts) == 2 {
		c2, r2, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return Range{}, fmt.Errorf("invalid range reference %q: %w", ref, err)
		}
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return Range{Sheet: sheet, R1: r1, C1: c1, R2: r2, C2: c2}, nil
}

// splitPoint returns the index of the last '!' outside a quoted sheet name,
// and whether an unquoted ',' separates several areas.
func splitPoint(ref string) (int, bool) {
	idx := -1
	quoted := false
	for i := 0; i < len(ref); i++ {
		switch ref[i] {
		case '\'':
			quoted = !quoted
		case '!':
			if !quoted {
				idx = i
			}
		case ',':
			if !quoted {
				return idx, true
			}
		}
	}
	return idx, false
}
