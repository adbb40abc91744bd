package xlsx

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/a1"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// builtinPrefix marks names Excel reserves for itself (print areas, filters).
const builtinPrefix = "_xlnm."

// namedRanges converts defined names into named ranges. Built-in names and
// names that are not a single range on an existing sheet (constants, formulas,
// multi-area references) are skipped.
func (w *Workbook) namedRanges(sheets []models.SheetInfo) []models.NamedRangeInfo {
	var out []models.NamedRangeInfo
	for _, dn := range w.f.GetDefinedName() {
		if strings.HasPrefix(strings.ToLower(dn.Name), builtinPrefix) {
			continue
		}
		r, err := a1.ParseRange(dn.RefersTo)
		if err != nil || !hasSheet(sheets, r.Sheet) {
			w.logger.Debug("skipping defined name",
				zap.String("name", dn.Name),
				zap.String("refers_to", dn.RefersTo))
			continue
		}
		out = append(out, models.NamedRangeInfo{Name: dn.Name, Range: r.String()})
	}
	return out
}
