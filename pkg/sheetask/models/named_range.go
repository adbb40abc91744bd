package models

// NamedRangeInfo represents a spreadsheet-scoped label bound to a fixed range.
type NamedRangeInfo struct {
	// Name is the label as defined in the spreadsheet.
	Name string `json:"name"`
	// Range is the A1 address the name refers to.
	Range string `json:"range"`
}
