package bridge

// Message types accepted by the bridge.
const (
	TypeQueryLLM             = "QUERY_LLM"
	TypeGetRangeData         = "GET_RANGE_DATA"
	TypeGetSheetMetadata     = "GET_SHEET_METADATA"
	TypeGetActiveSpreadsheet = "GET_ACTIVE_SPREADSHEET"
	TypeAsk                  = "ASK"
)

// Request is one client message. Fields not used by a type are ignored.
type Request struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Model         string `json:"model,omitempty"`
	Question      string `json:"question,omitempty"`
	Context       string `json:"context,omitempty"`
	SpreadsheetID string `json:"spreadsheetId,omitempty"`
	Range         string `json:"range,omitempty"`
	URL           string `json:"url,omitempty"`
}

// Response answers the request with the same ID.
type Response struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AskResult is the data of a successful ASK.
type AskResult struct {
	Submission string   `json:"submission"`
	Model      string   `json:"model"`
	Mentions   []string `json:"mentions"`
	Answer     string   `json:"answer"`
}
