package sheet

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Client used for local development and tests. It
// behaves like a spreadsheet nobody else is editing: the same row operations,
// no transactions.
type Memory struct {
	mu     sync.Mutex
	sheets map[string][][]string
}

// NewMemory returns an empty in-memory spreadsheet.
func NewMemory() *Memory {
	return &Memory{sheets: make(map[string][][]string)}
}

// Seed replaces the contents of a sheet, creating it if needed.
func (m *Memory) Seed(sheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	m.sheets[sheet] = cp
}

func (m *Memory) ReadAll(_ context.Context, sheet string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetMissing, sheet)
	}
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	return cp, nil
}

func (m *Memory) AppendRow(_ context.Context, sheet string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheet] = append(m.sheets[sheet], append([]string(nil), row...))
	return nil
}

func (m *Memory) UpdateCell(_ context.Context, sheet string, row, col int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.sheets[sheet]
	if !ok || row < 1 || row > len(rows) {
		return fmt.Errorf("update cell: row %d out of range in %q", row, sheet)
	}
	r := rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	rows[row-1] = r
	return nil
}

func (m *Memory) DeleteRow(_ context.Context, sheet string, row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.sheets[sheet]
	if !ok || row < 1 || row > len(rows) {
		return fmt.Errorf("delete row: row %d out of range in %q", row, sheet)
	}
	m.sheets[sheet] = append(rows[:row-1], rows[row:]...)
	return nil
}

func (m *Memory) Find(_ context.Context, sheet string, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.sheets[sheet] {
		for _, cell := range row {
			if cell == key {
				return i + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q in %q", ErrNotFound, key, sheet)
}
