package sheetdb

import "errors"

// Backend is the minimal surface the store needs from a tabular storage
// engine. Sheets are named grids of string cells; row/column coordinates
// are 1-based, matching the spreadsheet model. Row 1 is the header row.
type Backend interface {
	// SheetNames returns the names of all existing sheets.
	SheetNames() ([]string, error)
	// CreateSheet adds an empty sheet.
	CreateSheet(name string) error
	// ReadAll returns every populated row of a sheet, header row included.
	// Trailing empty cells may be omitted per row.
	ReadAll(sheet string) ([][]string, error)
	// AppendRow adds values as a new row after the last populated row.
	AppendRow(sheet string, values []string) error
	// UpdateCell overwrites a single cell, extending the row if needed.
	UpdateCell(sheet string, row, col int, value string) error
	// DeleteRow physically removes a row; subsequent rows shift up.
	DeleteRow(sheet string, row int) error
	// Close releases backend resources.
	Close() error
}

// ErrCredentials marks a store that could not be constructed because its
// credentials or configuration are missing or malformed, as opposed to a
// backend that was reachable but failed. Callers distinguish the two when
// reporting the degraded "database not configured" state.
var ErrCredentials = errors.New("sheetdb: missing or invalid credentials")

// ErrSheetNotFound is returned by backends when a named sheet does not exist.
var ErrSheetNotFound = errors.New("sheetdb: sheet not found")
