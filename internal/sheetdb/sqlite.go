package sheetdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores the sheet collection in a local SQLite file. Each
// sheet row is one DB row holding its cells as a JSON array, keyed by sheet
// name and 1-based row number, so reads and scans behave exactly like the
// spreadsheet model instead of a relational one.
type SQLiteBackend struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteBackend opens or creates the database at path.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is empty", ErrCredentials)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS sheets (
		name TEXT PRIMARY KEY,
		pos  INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS sheet_rows (
		sheet  TEXT NOT NULL,
		rownum INTEGER NOT NULL,
		cells  TEXT NOT NULL,
		PRIMARY KEY (sheet, rownum)
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) SheetNames() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT name FROM sheets ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *SQLiteBackend) CreateSheet(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO sheets (name, pos)
		 VALUES (?, (SELECT COALESCE(MAX(pos), 0) + 1 FROM sheets))`, name)
	return err
}

func (s *SQLiteBackend) ReadAll(sheet string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mustExist(sheet); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY rownum`, sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("decode row in %s: %w", sheet, err)
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}

func (s *SQLiteBackend) AppendRow(sheet string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mustExist(sheet); err != nil {
		return err
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO sheet_rows (sheet, rownum, cells)
		 VALUES (?, (SELECT COALESCE(MAX(rownum), 0) + 1 FROM sheet_rows WHERE sheet = ?), ?)`,
		sheet, sheet, string(raw))
	return err
}

func (s *SQLiteBackend) UpdateCell(sheet string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mustExist(sheet); err != nil {
		return err
	}
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell %d,%d", row, col)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Materialize intermediate rows so row numbers stay dense.
	var max int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(rownum), 0) FROM sheet_rows WHERE sheet = ?`, sheet).Scan(&max); err != nil {
		return err
	}
	for r := max + 1; r <= row; r++ {
		if _, err := tx.Exec(
			`INSERT INTO sheet_rows (sheet, rownum, cells) VALUES (?, ?, '[]')`, sheet, r); err != nil {
			return err
		}
	}

	var raw string
	if err := tx.QueryRow(
		`SELECT cells FROM sheet_rows WHERE sheet = ? AND rownum = ?`, sheet, row).Scan(&raw); err != nil {
		return err
	}
	var cells []string
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return fmt.Errorf("decode row %d in %s: %w", row, sheet, err)
	}
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	enc, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(
		`UPDATE sheet_rows SET cells = ? WHERE sheet = ? AND rownum = ?`,
		string(enc), sheet, row); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteBackend) DeleteRow(sheet string, row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mustExist(sheet); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	res, err := tx.Exec(
		`DELETE FROM sheet_rows WHERE sheet = ? AND rownum = ?`, sheet, row)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("row %d out of range in %s", row, sheet)
	}
	if _, err := tx.Exec(
		`UPDATE sheet_rows SET rownum = rownum - 1 WHERE sheet = ? AND rownum > ?`,
		sheet, row); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteBackend) Close() error { return s.db.Close() }

func (s *SQLiteBackend) mustExist(sheet string) error {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM sheets WHERE name = ?`, sheet).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	return err
}
