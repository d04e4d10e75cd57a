package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Options configures the HTTP client for the values API.
type Options struct {
	BaseURL       string // e.g. https://sheets.googleapis.com
	SpreadsheetID string
	Token         string         // bearer token; credential acquisition is the caller's problem
	SheetGIDs     map[string]int // sheet name -> numeric gid, needed for row deletion
	Timeout       time.Duration
}

// HTTPClient talks to a Google-Sheets-style values API. Every method is a
// single synchronous request; there is no retry logic, a failed call surfaces
// immediately to the caller.
type HTTPClient struct {
	opts   Options
	client *http.Client
}

// NewHTTPClient builds a client from the given options.
func NewHTTPClient(opts Options) *HTTPClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		opts:   opts,
		client: &http.Client{Timeout: timeout},
	}
}

type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

// ReadAll returns every row of the named sheet.
func (c *HTTPClient) ReadAll(ctx context.Context, sheet string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?majorDimension=ROWS",
		c.opts.BaseURL, c.opts.SpreadsheetID, url.PathEscape(sheet))

	body, status, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", ErrSheetMissing, sheet)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("read %q: unexpected status %d", sheet, status)
	}

	var vr valueRange
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("read %q: decode response: %w", sheet, err)
	}
	return vr.Values, nil
}

// AppendRow appends one row after the last non-empty row of the sheet.
func (c *HTTPClient) AppendRow(ctx context.Context, sheet string, row []string) error {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED&insertDataOption=INSERT_ROWS",
		c.opts.BaseURL, c.opts.SpreadsheetID, url.PathEscape(sheet))

	payload, err := json.Marshal(valueRange{Values: [][]string{row}})
	if err != nil {
		return fmt.Errorf("append to %q: marshal payload: %w", sheet, err)
	}

	_, status, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("append to %q: unexpected status %d", sheet, status)
	}
	return nil
}

// UpdateCell overwrites a single cell addressed by 1-based row and column.
func (c *HTTPClient) UpdateCell(ctx context.Context, sheet string, row, col int, value string) error {
	a1 := fmt.Sprintf("%s!%s%d", sheet, columnLetter(col), row)
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?valueInputOption=USER_ENTERED",
		c.opts.BaseURL, c.opts.SpreadsheetID, url.PathEscape(a1))

	payload, err := json.Marshal(valueRange{Values: [][]string{{value}}})
	if err != nil {
		return fmt.Errorf("update %s: marshal payload: %w", a1, err)
	}

	_, status, err := c.do(ctx, http.MethodPut, endpoint, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("update %s: unexpected status %d", a1, status)
	}
	return nil
}

type dimensionRange struct {
	SheetID    int    `json:"sheetId"`
	Dimension  string `json:"dimension"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

type deleteDimension struct {
	Range dimensionRange `json:"range"`
}

type batchRequest struct {
	DeleteDimension deleteDimension `json:"deleteDimension"`
}

type batchUpdateRequest struct {
	Requests []batchRequest `json:"requests"`
}

// DeleteRow removes the given 1-based row from the sheet. The values API
// addresses rows by zero-based index and numeric sheet id, both of which are
// translated here.
func (c *HTTPClient) DeleteRow(ctx context.Context, sheet string, row int) error {
	gid, ok := c.opts.SheetGIDs[sheet]
	if !ok {
		return fmt.Errorf("delete row in %q: no gid configured for sheet", sheet)
	}

	req := batchUpdateRequest{
		Requests: []batchRequest{
			{DeleteDimension: deleteDimension{Range: dimensionRange{
				SheetID:    gid,
				Dimension:  "ROWS",
				StartIndex: row - 1,
				EndIndex:   row,
			}}},
		},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("delete row in %q: marshal payload: %w", sheet, err)
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s:batchUpdate", c.opts.BaseURL, c.opts.SpreadsheetID)
	_, status, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("delete row %d in %q: unexpected status %d", row, sheet, status)
	}
	return nil
}

// Find scans the sheet for the first cell equal to key and returns its 1-based
// row. The API has no server-side search, so this reads the sheet once.
func (c *HTTPClient) Find(ctx context.Context, sheet string, key string) (int, error) {
	rows, err := c.ReadAll(ctx, sheet)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		for _, cell := range row {
			if cell == key {
				return i + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q in %q", ErrNotFound, key, sheet)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, resp.StatusCode, nil
}

// columnLetter converts a 1-based column number to its A1 letter form.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
