// Package models defines the spreadsheet metadata and mention data structures.
package models

// SheetInfo represents a single visible sheet tab.
type SheetInfo struct {
	// SheetID is the API-assigned sheet identifier.
	SheetID int `json:"sheetId"`
	// Title is the tab title shown to the user.
	Title string `json:"title"`
}
