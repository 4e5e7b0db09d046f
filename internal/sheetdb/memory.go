package sheetdb

import (
	"fmt"
	"sync"
)

// MemoryBackend keeps sheets in process memory. It backs tests and demo
// mode; contents vanish on exit.
type MemoryBackend struct {
	mu     sync.RWMutex
	order  []string
	sheets map[string][][]string
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sheets: make(map[string][][]string)}
}

func (m *MemoryBackend) SheetNames() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.order))
	copy(names, m.order)
	return names, nil
}

func (m *MemoryBackend) CreateSheet(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sheets[name]; ok {
		return fmt.Errorf("sheet %q already exists", name)
	}
	m.sheets[name] = nil
	m.order = append(m.order, name)
	return nil
}

func (m *MemoryBackend) ReadAll(sheet string) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (m *MemoryBackend) AppendRow(sheet string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.sheets[sheet]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	m.sheets[sheet] = append(rows, append([]string(nil), values...))
	return nil
}

func (m *MemoryBackend) UpdateCell(sheet string, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.sheets[sheet]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell %d,%d", row, col)
	}
	for len(rows) < row {
		rows = append(rows, nil)
	}
	for len(rows[row-1]) < col {
		rows[row-1] = append(rows[row-1], "")
	}
	rows[row-1][col-1] = value
	m.sheets[sheet] = rows
	return nil
}

func (m *MemoryBackend) DeleteRow(sheet string, row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.sheets[sheet]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	if row < 1 || row > len(rows) {
		return fmt.Errorf("row %d out of range in %s", row, sheet)
	}
	m.sheets[sheet] = append(rows[:row-1], rows[row:]...)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
