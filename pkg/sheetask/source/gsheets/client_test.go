package gsheets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

const metadataJSON = `{
  "properties": {"title": "Budget 2024"},
  "sheets": [
    {"properties": {"sheetId": 0, "title": "Sheet1"}},
    {
      "properties": {"sheetId": 7, "title": "My Sheet"},
      "tables": [{
        "name": "Expenses",
        "range": {"startRowIndex": 0, "endRowIndex": 10, "startColumnIndex": 0, "endColumnIndex": 3},
        "columnProperties": [
          {"columnIndex": 0, "columnName": "Item", "columnType": "TEXT"},
          {"columnIndex": 1, "columnName": "Cost", "columnType": "DOUBLE"}
        ]
      }]
    }
  ],
  "namedRanges": [
    {"name": "Totals", "range": {"sheetId": 0, "startRowIndex": 1, "endRowIndex": 5, "startColumnIndex": 1, "endColumnIndex": 2}},
    {"name": "Orphan", "range": {"sheetId": 99}}
  ]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Client{BaseURL: srv.URL, Token: "tok", HTTPClient: srv.Client()}
}

func TestMetadata(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/abc-123", r.URL.Path)
		assert.Equal(t, metadataFields, r.URL.Query().Get("fields"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		io.WriteString(w, metadataJSON)
	})

	meta, err := c.Metadata(context.Background(), "abc-123")
	require.NoError(t, err)

	assert.Equal(t, "Budget 2024", meta.Title)
	assert.Equal(t, []models.SheetInfo{{SheetID: 0, Title: "Sheet1"}, {SheetID: 7, Title: "My Sheet"}}, meta.Sheets)
	assert.Equal(t, []models.NamedRangeInfo{
		{Name: "Totals", Range: "Sheet1!B2:B5"},
		{Name: "Orphan", Range: "Unknown"},
	}, meta.NamedRanges)
	require.Len(t, meta.Tables, 1)
	assert.Equal(t, "Expenses", meta.Tables[0].Name)
	assert.Equal(t, "'My Sheet'!A1:C10", meta.Tables[0].Range)
	assert.Equal(t, models.TableColumnInfo{ColumnIndex: 1, ColumnName: "Cost", ColumnType: "DOUBLE"}, meta.Tables[0].Columns[1])
}

func TestMetadataWithoutOptionalSections(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"properties":{"title":"T"},"sheets":[{"properties":{"sheetId":1,"title":"A"}}]}`)
	})
	meta, err := c.Metadata(context.Background(), "id")
	require.NoError(t, err)
	assert.Empty(t, meta.NamedRanges)
	assert.Empty(t, meta.Tables)
}

func TestValues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/abc/values/'My Sheet'!A1:C10", r.URL.Path)
		io.WriteString(w, `{"range":"'My Sheet'!A1:C10","values":[["Item","Cost"],["Tea",3.5],["Milk"]]}`)
	})

	values, err := c.Values(context.Background(), "abc", "'My Sheet'!A1:C10")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Item", "Cost"}, {"Tea", "3.5"}, {"Milk"}}, values)
}

func TestValuesEmptyRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"range":"Sheet1!A1:B2"}`)
	})
	values, err := c.Values(context.Background(), "abc", "Sheet1!A1:B2")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, "PERMISSION_DENIED\n")
	})
	_, err := c.Values(context.Background(), "abc", "Sheet1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Sheets API error 403: PERMISSION_DENIED", err.Error())
}

func TestNoToken(t *testing.T) {
	c := &Client{BaseURL: "http://127.0.0.1:0"}
	_, err := c.Metadata(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestSpreadsheetID(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"https://docs.google.com/spreadsheets/d/1AbC_d-9/edit#gid=0", "1AbC_d-9", false},
		{"1AbC_d-9", "1AbC_d-9", false},
		{"https://example.com/other", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := SpreadsheetID(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrNotSpreadsheet, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, got)
	}
}
