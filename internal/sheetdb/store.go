package sheetdb

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Row is one record of a sheet: column name to cell text. Cells are always
// strings; numeric and date parsing is the consumer's job.
type Row map[string]string

// Store exposes each sheet as a uniform CRUD surface over a Backend.
//
// The error policy mirrors the application it fronts: reads swallow backend
// errors into empty results, writes report success as a bool. TryGetAll is
// the secondary channel for callers that need to tell "empty" from "failed".
type Store struct {
	b Backend
}

// Open wraps a backend and initializes the required sheets: missing sheets
// are created with their canonical headers, existing sheets gain any
// canonical header they lack at the next free column. Existing columns are
// never reordered or removed.
func Open(b Backend) (*Store, error) {
	s := &Store{b: b}
	if err := s.initSheets(); err != nil {
		return nil, fmt.Errorf("init sheets: %w", err)
	}
	return s, nil
}

// Close releases the underlying backend.
func (s *Store) Close() error { return s.b.Close() }

func (s *Store) initSheets() error {
	names, err := s.b.SheetNames()
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(names))
	for _, n := range names {
		existing[n] = true
	}

	for _, sheet := range RequiredSheets {
		canonical := CanonicalHeaders[sheet]
		if !existing[sheet] {
			if err := s.b.CreateSheet(sheet); err != nil {
				return fmt.Errorf("create %s: %w", sheet, err)
			}
			if err := s.b.AppendRow(sheet, canonical); err != nil {
				return fmt.Errorf("set headers %s: %w", sheet, err)
			}
			continue
		}
		if err := s.ensureHeaders(sheet, canonical); err != nil {
			return fmt.Errorf("reconcile headers %s: %w", sheet, err)
		}
	}
	return nil
}

// ensureHeaders appends missing canonical headers, in canonical order, after
// the last current column. Additive only.
func (s *Store) ensureHeaders(sheet string, canonical []string) error {
	values, err := s.b.ReadAll(sheet)
	if err != nil {
		return err
	}
	var current []string
	if len(values) > 0 {
		current = values[0]
	}
	if len(current) == 0 {
		return s.b.AppendRow(sheet, canonical)
	}

	have := make(map[string]bool, len(current))
	for _, h := range current {
		have[strings.TrimSpace(h)] = true
	}
	next := len(current) + 1
	for _, h := range canonical {
		if have[h] {
			continue
		}
		if err := s.b.UpdateCell(sheet, 1, next, h); err != nil {
			return err
		}
		next++
	}
	return nil
}

// GetAll returns every non-blank record of a sheet. Row 1 is treated as the
// header row (trimmed); cells beyond a row's width default to empty. Rows
// whose every mapped value is empty are dropped. Backend errors are logged
// and swallowed into an empty result so pages keep rendering; callers that
// must distinguish use TryGetAll.
func (s *Store) GetAll(sheet string) []Row {
	rows, err := s.TryGetAll(sheet)
	if err != nil {
		log.Printf("sheetdb: get all %s: %v", sheet, err)
		return nil
	}
	return rows
}

// TryGetAll is GetAll with the backend error surfaced.
func (s *Store) TryGetAll(sheet string) ([]Row, error) {
	values, err := s.b.ReadAll(sheet)
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, nil
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var records []Row
	for _, raw := range values[1:] {
		if allEmpty(raw) {
			continue
		}
		rec := make(Row, len(headers))
		nonEmpty := false
		for i, h := range headers {
			v := ""
			if i < len(raw) {
				v = strings.TrimSpace(raw[i])
			}
			rec[h] = v
			if v != "" {
				nonEmpty = true
			}
		}
		if nonEmpty {
			records = append(records, rec)
		}
	}
	return records, nil
}

// GetByID scans the sheet in row order and returns the first record whose
// key column string-equals keyVal. Duplicate keys resolve first-match-wins.
func (s *Store) GetByID(sheet, keyCol, keyVal string) (Row, bool) {
	for _, rec := range s.GetAll(sheet) {
		if rec[keyCol] == keyVal {
			return rec, true
		}
	}
	return nil, false
}

// Insert appends data as a new row, positionally ordered by the sheet's
// current headers. Headers absent from data are written empty; keys in data
// that match no header are dropped.
func (s *Store) Insert(sheet string, data Row) bool {
	headers, err := s.headerRow(sheet)
	if err != nil {
		log.Printf("sheetdb: insert into %s: %v", sheet, err)
		return false
	}
	values := make([]string, len(headers))
	for i, h := range headers {
		values[i] = data[h]
	}
	if err := s.b.AppendRow(sheet, values); err != nil {
		log.Printf("sheetdb: insert into %s: %v", sheet, err)
		return false
	}
	return true
}

// Update locates the first row whose key column equals keyVal and overwrites
// one cell per patch entry that names an existing header. Patch keys that
// match no header are ignored. Returns false when the key column is not a
// header, the row is not found, or the backend fails.
func (s *Store) Update(sheet, keyCol, keyVal string, patch Row) bool {
	headers, rowIdx, err := s.findRow(sheet, keyCol, keyVal)
	if err != nil {
		log.Printf("sheetdb: update %s: %v", sheet, err)
		return false
	}
	if rowIdx == 0 {
		return false
	}
	for key, value := range patch {
		col := headerIndex(headers, key)
		if col == 0 {
			continue
		}
		if err := s.b.UpdateCell(sheet, rowIdx, col, value); err != nil {
			log.Printf("sheetdb: update %s row %d: %v", sheet, rowIdx, err)
			return false
		}
	}
	return true
}

// Delete physically removes the first row whose key column equals keyVal;
// subsequent rows shift up. Returns false when not found or on backend error.
func (s *Store) Delete(sheet, keyCol, keyVal string) bool {
	_, rowIdx, err := s.findRow(sheet, keyCol, keyVal)
	if err != nil {
		log.Printf("sheetdb: delete from %s: %v", sheet, err)
		return false
	}
	if rowIdx == 0 {
		return false
	}
	if err := s.b.DeleteRow(sheet, rowIdx); err != nil {
		log.Printf("sheetdb: delete %s row %d: %v", sheet, rowIdx, err)
		return false
	}
	return true
}

// NextID returns max(integer IDs)+1 for the sheet's ID column, or 1 when the
// sheet is empty or no ID parses. The value is not reserved: two concurrent
// callers can observe the same ID.
func (s *Store) NextID(sheet string) int { return s.NextIDIn(sheet, "ID") }

// NextIDIn is NextID over an arbitrary integer column.
func (s *Store) NextIDIn(sheet, idCol string) int {
	max := 0
	found := false
	for _, rec := range s.GetAll(sheet) {
		n, err := strconv.Atoi(rec[idCol])
		if err != nil {
			continue
		}
		if !found || n > max {
			max = n
			found = true
		}
	}
	if !found {
		return 1
	}
	return max + 1
}

// findRow returns the trimmed headers and the 1-based index of the first
// data row matching keyCol=keyVal, or index 0 when absent. A keyCol that is
// not a header also yields index 0.
func (s *Store) findRow(sheet, keyCol, keyVal string) ([]string, int, error) {
	values, err := s.b.ReadAll(sheet)
	if err != nil {
		return nil, 0, err
	}
	if len(values) == 0 {
		return nil, 0, nil
	}
	headers := values[0]
	keyIdx := headerIndex(headers, keyCol)
	if keyIdx == 0 {
		return headers, 0, nil
	}
	for i, raw := range values[1:] {
		if keyIdx-1 < len(raw) && strings.TrimSpace(raw[keyIdx-1]) == keyVal {
			return headers, i + 2, nil
		}
	}
	return headers, 0, nil
}

// headerRow returns the sheet's trimmed header row.
func (s *Store) headerRow(sheet string) ([]string, error) {
	values, err := s.b.ReadAll(sheet)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, nil
}

// headerIndex returns the 1-based column of name among headers, 0 if absent.
func headerIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.TrimSpace(h) == name {
			return i + 1
		}
	}
	return 0
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
