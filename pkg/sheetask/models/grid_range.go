package models

// GridRange is the API-native range descriptor. Indices are zero-based and
// end-exclusive; any field may be absent.
type GridRange struct {
	SheetID          *int `json:"sheetId,omitempty"`
	StartRowIndex    *int `json:"startRowIndex,omitempty"`
	EndRowIndex      *int `json:"endRowIndex,omitempty"`
	StartColumnIndex *int `json:"startColumnIndex,omitempty"`
	EndColumnIndex   *int `json:"endColumnIndex,omitempty"`
}

// Int returns a pointer to v, for building GridRange literals.
func Int(v int) *int {
	return &v
}
