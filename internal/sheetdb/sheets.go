package sheetdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// SheetsBackend talks to a Google-Sheets-v4-style REST API. Credentials come
// from a JSON file carrying the spreadsheet ID and a bearer token (or API
// key); request auth is a static header, token refresh is the deployer's
// problem.
type SheetsBackend struct {
	baseURL       string
	spreadsheetID string
	token         string
	apiKey        string
	httpClient    *http.Client
}

type sheetsCredentials struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Token         string `json:"token"`
	APIKey        string `json:"api_key"`
	BaseURL       string `json:"base_url"`
}

const defaultSheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// connectAttempts and the backoff schedule apply to the initial metadata
// probe only; rate-limit errors there get 10s then 20s waits. Per-call
// operations after connect are never retried.
const connectAttempts = 3

var connectBackoff = []time.Duration{10 * time.Second, 20 * time.Second}

// NewSheetsBackend reads the credentials file and verifies the spreadsheet
// is reachable. Missing or malformed credentials return ErrCredentials;
// reachability failures return the underlying error after the retry loop.
func NewSheetsBackend(credentialsPath string) (*SheetsBackend, error) {
	raw, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCredentials, credentialsPath, err)
	}
	var creds sheetsCredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCredentials, credentialsPath, err)
	}
	if creds.SpreadsheetID == "" || (creds.Token == "" && creds.APIKey == "") {
		return nil, fmt.Errorf("%w: spreadsheet_id and token or api_key required", ErrCredentials)
	}
	base := creds.BaseURL
	if base == "" {
		base = defaultSheetsBaseURL
	}
	b := &SheetsBackend{
		baseURL:       strings.TrimRight(base, "/"),
		spreadsheetID: creds.SpreadsheetID,
		token:         creds.Token,
		apiKey:        creds.APIKey,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
	if err := b.connect(); err != nil {
		return nil, err
	}
	return b, nil
}

// connect probes spreadsheet metadata, retrying only rate-limit responses.
func (b *SheetsBackend) connect() error {
	var lastErr error
	for attempt := 0; attempt < connectAttempts; attempt++ {
		_, err := b.sheetTitles()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRateLimited(err) || attempt == connectAttempts-1 {
			return fmt.Errorf("connect spreadsheet %s: %w", b.spreadsheetID, err)
		}
		time.Sleep(connectBackoff[attempt])
	}
	return fmt.Errorf("connect spreadsheet %s: %w", b.spreadsheetID, lastErr)
}

type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("sheets api error %d: %s", e.status, e.body)
}

func isRateLimited(err error) bool {
	var ae *apiError
	return errors.As(err, &ae) && ae.status == http.StatusTooManyRequests
}

func (b *SheetsBackend) SheetNames() ([]string, error) { return b.sheetTitles() }

func (b *SheetsBackend) sheetTitles() ([]string, error) {
	var meta struct {
		Sheets []struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}
	path := fmt.Sprintf("/%s?fields=sheets.properties.title", b.spreadsheetID)
	if err := b.do(http.MethodGet, path, nil, &meta); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		titles = append(titles, s.Properties.Title)
	}
	return titles, nil
}

func (b *SheetsBackend) CreateSheet(name string) error {
	req := map[string]any{
		"requests": []map[string]any{{
			"addSheet": map[string]any{
				"properties": map[string]any{"title": name},
			},
		}},
	}
	path := fmt.Sprintf("/%s:batchUpdate", b.spreadsheetID)
	return b.do(http.MethodPost, path, req, nil)
}

func (b *SheetsBackend) ReadAll(sheet string) ([][]string, error) {
	var resp struct {
		Values [][]any `json:"values"`
	}
	path := fmt.Sprintf("/%s/values/%s", b.spreadsheetID, url.PathEscape(sheet))
	if err := b.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		out[i] = cells
	}
	return out, nil
}

func (b *SheetsBackend) AppendRow(sheet string, values []string) error {
	req := map[string]any{"values": [][]string{values}}
	path := fmt.Sprintf("/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		b.spreadsheetID, url.PathEscape(sheet))
	return b.do(http.MethodPost, path, req, nil)
}

func (b *SheetsBackend) UpdateCell(sheet string, row, col int, value string) error {
	rangeRef := fmt.Sprintf("%s!%s%d", sheet, columnName(col), row)
	req := map[string]any{"values": [][]string{{value}}}
	path := fmt.Sprintf("/%s/values/%s?valueInputOption=RAW",
		b.spreadsheetID, url.PathEscape(rangeRef))
	return b.do(http.MethodPut, path, req, nil)
}

func (b *SheetsBackend) DeleteRow(sheet string, row int) error {
	id, err := b.sheetID(sheet)
	if err != nil {
		return err
	}
	req := map[string]any{
		"requests": []map[string]any{{
			"deleteDimension": map[string]any{
				"range": map[string]any{
					"sheetId":    id,
					"dimension":  "ROWS",
					"startIndex": row - 1,
					"endIndex":   row,
				},
			},
		}},
	}
	path := fmt.Sprintf("/%s:batchUpdate", b.spreadsheetID)
	return b.do(http.MethodPost, path, req, nil)
}

func (b *SheetsBackend) Close() error { return nil }

func (b *SheetsBackend) sheetID(sheet string) (int, error) {
	var meta struct {
		Sheets []struct {
			Properties struct {
				SheetID int    `json:"sheetId"`
				Title   string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}
	path := fmt.Sprintf("/%s?fields=sheets.properties", b.spreadsheetID)
	if err := b.do(http.MethodGet, path, nil, &meta); err != nil {
		return 0, err
	}
	for _, s := range meta.Sheets {
		if s.Properties.Title == sheet {
			return s.Properties.SheetID, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
}

func (b *SheetsBackend) do(method, path string, body, out any) error {
	u := b.baseURL + path
	if b.apiKey != "" {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + "key=" + url.QueryEscape(b.apiKey)
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &apiError{status: resp.StatusCode, body: strings.TrimSpace(string(raw))}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("sheets decode error: %w", err)
		}
	}
	return nil
}

// columnName converts a 1-based column index to A1 letters.
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
