// Package gsheets reads spreadsheet metadata and cell values from the Google Sheets API v4.
package gsheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/a1"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// DefaultBaseURL is the Sheets API root.
const DefaultBaseURL = "https://sheets.googleapis.com"

// ErrNoToken indicates the client has no OAuth access token.
var ErrNoToken = errors.New("no access token")

// ErrNotSpreadsheet indicates a URL that does not point at a Google Sheet.
var ErrNotSpreadsheet = errors.New("not on a Google Sheet")

// APIError is a non-2xx Sheets API response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Sheets API error %d: %s", e.Status, e.Body)
}

// Client is a minimal Sheets API reader. Token acquisition is the caller's job.
type Client struct {
	// BaseURL overrides DefaultBaseURL.
	BaseURL string
	// Token is the OAuth bearer token.
	Token string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient returns a Client authorized with token.
func NewClient(token string) *Client {
	return &Client{Token: token}
}

// Metadata fetches the title, sheets, named ranges and tables of a spreadsheet.
// Grid ranges are translated to A1 addresses; tables without a sheet id take
// the id of the sheet that owns them.
func (c *Client) Metadata(ctx context.Context, spreadsheetID string) (*models.SpreadsheetMetadata, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s?fields=%s",
		c.baseURL(), url.PathEscape(spreadsheetID), url.QueryEscape(metadataFields))

	var data spreadsheetResponse
	if err := c.get(ctx, u, &data); err != nil {
		return nil, err
	}

	meta := &models.SpreadsheetMetadata{
		Title:       data.Properties.Title,
		Sheets:      make([]models.SheetInfo, 0, len(data.Sheets)),
		NamedRanges: make([]models.NamedRangeInfo, 0, len(data.NamedRanges)),
		Tables:      []models.TableInfo{},
	}
	for _, s := range data.Sheets {
		meta.Sheets = append(meta.Sheets, models.SheetInfo{SheetID: s.Properties.SheetID, Title: s.Properties.Title})
	}
	for _, nr := range data.NamedRanges {
		meta.NamedRanges = append(meta.NamedRanges, models.NamedRangeInfo{
			Name:  nr.Name,
			Range: a1.FromGridRange(nr.Range, meta.Sheets),
		})
	}
	for _, s := range data.Sheets {
		for _, t := range s.Tables {
			gr := t.Range
			if gr.SheetID == nil {
				gr.SheetID = models.Int(s.Properties.SheetID)
			}
			cols := make([]models.TableColumnInfo, 0, len(t.ColumnProperties))
			for _, cp := range t.ColumnProperties {
				cols = append(cols, models.TableColumnInfo{
					ColumnIndex: cp.ColumnIndex,
					ColumnName:  cp.ColumnName,
					ColumnType:  cp.ColumnType,
				})
			}
			meta.Tables = append(meta.Tables, models.TableInfo{
				Name:    t.Name,
				Range:   a1.FromGridRange(gr, meta.Sheets),
				Columns: cols,
			})
		}
	}

	c.logger().Debug("fetched metadata",
		zap.String("spreadsheet", spreadsheetID),
		zap.Int("sheets", len(meta.Sheets)),
		zap.Int("named_ranges", len(meta.NamedRanges)),
		zap.Int("tables", len(meta.Tables)))
	return meta, nil
}

// Values fetches the formatted cell values of an A1 range, row-major.
// An empty range yields an empty grid.
func (c *Client) Values(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL(), url.PathEscape(spreadsheetID), url.PathEscape(rng))

	var data valuesResponse
	if err := c.get(ctx, u, &data); err != nil {
		return nil, err
	}

	out := make([][]string, len(data.Values))
	for i, row := range data.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		out[i] = cells
	}
	c.logger().Debug("fetched values", zap.String("range", rng), zap.Int("rows", len(out)))
	return out, nil
}

func (c *Client) get(ctx context.Context, u string, out any) error {
	if c.Token == "" {
		return ErrNoToken
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode Sheets API response: %w", err)
	}
	return nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

var spreadsheetURL = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SpreadsheetID extracts the spreadsheet id from a docs.google.com URL.
// Input that already looks like a bare id is returned unchanged.
func SpreadsheetID(s string) (string, error) {
	if m := spreadsheetURL.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	if s != "" && !strings.ContainsAny(s, "/:?#") {
		return s, nil
	}
	return "", ErrNotSpreadsheet
}
