package models

// SpreadsheetMetadata is the root aggregate describing everything a mention can refer to.
// It is a read-only snapshot; callers refresh it by fetching a new value.
type SpreadsheetMetadata struct {
	// Title is the spreadsheet title.
	Title string `json:"title"`
	// Sheets lists the visible sheet tabs in workbook order.
	Sheets []SheetInfo `json:"sheets"`
	// NamedRanges lists the spreadsheet-scoped named ranges.
	NamedRanges []NamedRangeInfo `json:"namedRanges"`
	// Tables lists the tables across all sheets.
	Tables []TableInfo `json:"tables"`
}

// SheetTitle returns the title of the sheet with the given id.
func (m *SpreadsheetMetadata) SheetTitle(sheetID int) (string, bool) {
	for _, s := range m.Sheets {
		if s.SheetID == sheetID {
			return s.Title, true
		}
	}
	return "", false
}
