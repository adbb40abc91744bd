package a1

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// UnknownSheet is substituted when a grid range names a sheet id absent from the metadata.
const UnknownSheet = "Unknown"

// gridShape classifies which corners of a GridRange are present.
type gridShape int

const (
	// shapeSheet has no start corner and addresses the whole sheet.
	shapeSheet gridShape = iota
	// shapeCell has a start corner only.
	shapeCell
	// shapeSpan has both corners.
	shapeSpan
)

func shapeOf(r models.GridRange) gridShape {
	if r.StartRowIndex == nil || r.StartColumnIndex == nil {
		return shapeSheet
	}
	if r.EndRowIndex == nil || r.EndColumnIndex == nil {
		return shapeCell
	}
	return shapeSpan
}

// QuoteSheetName single-quotes a sheet name containing a space or apostrophe,
// doubling embedded apostrophes. Other names are returned unchanged.
func QuoteSheetName(name string) string {
	if !strings.ContainsAny(name, " '") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// UnquoteSheetName reverses QuoteSheetName.
func UnquoteSheetName(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// FromGridRange renders r as an A1 address, resolving the sheet title from sheets.
// It never fails: an unmatched sheet id becomes UnknownSheet, and missing
// corners degrade to a single-cell or whole-sheet address.
func FromGridRange(r models.GridRange, sheets []models.SheetInfo) string {
	title := UnknownSheet
	if r.SheetID != nil {
		for _, s := range sheets {
			if s.SheetID == *r.SheetID {
				title = s.Title
				break
			}
		}
	}
	sheet := QuoteSheetName(title)

	switch shapeOf(r) {
	case shapeCell:
		return sheet + "!" + cellName(*r.StartColumnIndex, *r.StartRowIndex+1)
	case shapeSpan:
		// End indices are exclusive: the end column steps back one, while the
		// exclusive zero-based end row equals the inclusive one-based row.
		return sheet + "!" + cellName(*r.StartColumnIndex, *r.StartRowIndex+1) +
			":" + cellName(*r.EndColumnIndex-1, *r.EndRowIndex)
	default:
		return sheet
	}
}

func cellName(col, row int) string {
	return IndexToLetter(col) + strconv.Itoa(row)
}
