package gsheets

import "github.com/ukaji3/sheetask-go/pkg/sheetask/models"

// metadataFields limits the spreadsheet GET to what mentions can refer to.
const metadataFields = "properties.title," +
	"sheets.properties(sheetId,title)," +
	"sheets.tables(name,range,columnProperties(columnIndex,columnName,columnType))," +
	"namedRanges(name,range)"

type spreadsheetResponse struct {
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
	Sheets []struct {
		Properties struct {
			SheetID int    `json:"sheetId"`
			Title   string `json:"title"`
		} `json:"properties"`
		Tables []struct {
			Name             string           `json:"name"`
			Range            models.GridRange `json:"range"`
			ColumnProperties []struct {
				ColumnIndex int    `json:"columnIndex"`
				ColumnName  string `json:"columnName"`
				ColumnType  string `json:"columnType"`
			} `json:"columnProperties"`
		} `json:"tables"`
	} `json:"sheets"`
	NamedRanges []struct {
		Name  string           `json:"name"`
		Range models.GridRange `json:"range"`
	} `json:"namedRanges"`
}

type valuesResponse struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}
