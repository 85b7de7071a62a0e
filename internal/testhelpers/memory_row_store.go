package testhelpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/utils"
)

/*
MemoryRowStore is an in-memory RowStore for tests: same header-resolution and
row-numbering semantics as the Sheets implementation, so edit and race
scenarios run deterministically without a spreadsheet.
*/
type MemoryRowStore struct {
	mu     sync.Mutex
	sheets map[string]*memorySheet

	// WriteLog records every mutating call in order, letting tests assert
	// that a rejected edit issued no writes at all.
	WriteLog []string
}

type memorySheet struct {
	header []string
	rows   [][]string
}

func NewMemoryRowStore() *MemoryRowStore {
	return &MemoryRowStore{sheets: map[string]*memorySheet{}}
}

// Seed replaces the named sheet wholesale.
func (m *MemoryRowStore) Seed(sheet string, header []string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string{}, r...)
	}
	m.sheets[sheet] = &memorySheet{header: append([]string{}, header...), rows: cp}
}

// Row returns a copy of the 1-based data row (2 = first data row).
func (m *MemoryRowStore) Row(sheet string, rowNumber int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sheets[sheet]
	if s == nil || rowNumber < 2 || rowNumber-2 >= len(s.rows) {
		return nil
	}
	return append([]string{}, s.rows[rowNumber-2]...)
}

func (m *MemoryRowStore) HeaderRow(_ context.Context, sheet string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sheets[sheet]
	if s == nil {
		return []string{}, nil
	}
	return append([]string{}, s.header...), nil
}

func (m *MemoryRowStore) AllRows(_ context.Context, sheet string) ([]string, [][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sheets[sheet]
	if s == nil {
		return []string{}, nil, nil
	}
	rows := make([][]string, len(s.rows))
	for i, r := range s.rows {
		rows[i] = append([]string{}, r...)
	}
	return append([]string{}, s.header...), rows, nil
}

func (m *MemoryRowStore) WriteHeaderRow(_ context.Context, sheet string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.ensureSheet(sheet)
	s.header = append([]string{}, header...)
	m.WriteLog = append(m.WriteLog, fmt.Sprintf("header:%s", sheet))
	return nil
}

func (m *MemoryRowStore) AppendRow(_ context.Context, sheet string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.ensureSheet(sheet)
	s.rows = append(s.rows, append([]string{}, row...))
	m.WriteLog = append(m.WriteLog, fmt.Sprintf("append:%s", sheet))
	return nil
}

func (m *MemoryRowStore) UpdateRowCells(_ context.Context, sheet string, rowNumber int, updates []repositories.CellUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sheets[sheet]
	if s == nil || rowNumber < 2 || rowNumber-2 >= len(s.rows) {
		return fmt.Errorf("row %d out of range in %s", rowNumber, sheet)
	}

	cols := map[string]int{}
	for i, h := range s.header {
		key := utils.NormalizeHeader(h)
		if _, ok := cols[key]; !ok {
			cols[key] = i
		}
	}

	row := s.rows[rowNumber-2]
	for _, u := range updates {
		idx, ok := cols[utils.NormalizeHeader(u.Header)]
		if !ok {
			return fmt.Errorf("%w: %s", utils.ErrColumnNotFound, u.Header)
		}
		for len(row) <= idx {
			row = append(row, "")
		}
		row[idx] = u.Value
	}
	s.rows[rowNumber-2] = row
	m.WriteLog = append(m.WriteLog, fmt.Sprintf("update:%s:%d", sheet, rowNumber))
	return nil
}

func (m *MemoryRowStore) ensureSheet(sheet string) *memorySheet {
	s := m.sheets[sheet]
	if s == nil {
		s = &memorySheet{}
		m.sheets[sheet] = s
	}
	return s
}
