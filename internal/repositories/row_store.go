package repositories

import (
	"context"
)

/*
CellUpdate addresses a single cell by normalized header name within a known
row. The store resolves the header to its live column index at write time, so
callers never deal in A1 coordinates.
*/
type CellUpdate struct {
	Header string
	Value  string
}

/*
RowStore is the whole-table view of one sheet: a header row plus ordered data
rows, addressed by 1-based row number (row 1 is the header, data starts at 2).

The backing table is shared and has no locking: UpdateRowCells is
last-write-wins per cell range. Adding an optimistic version check means
extending this port with a compare-and-swap variant; nothing above the
repositories would change. Accepted limitation for now.
*/
type RowStore interface {
	// HeaderRow returns the raw header cells of the named sheet.
	HeaderRow(ctx context.Context, sheet string) ([]string, error)

	// AllRows returns header plus data rows in one read.
	AllRows(ctx context.Context, sheet string) (header []string, rows [][]string, err error)

	// WriteHeaderRow replaces row 1 wholesale (additive migrations only).
	WriteHeaderRow(ctx context.Context, sheet string, header []string) error

	// AppendRow writes a full-width row at the first empty row.
	AppendRow(ctx context.Context, sheet string, row []string) error

	// UpdateRowCells applies the batch of per-header updates to one row.
	// All updates land in a single store call; cells whose header does not
	// exist are an error, not a silent skip.
	UpdateRowCells(ctx context.Context, sheet string, rowNumber int, updates []CellUpdate) error
}

// ColToA1 converts a 0-based column index to its A1 letter ("A", "Z", "AA").
func ColToA1(colIndex int) string {
	n := colIndex + 1
	s := ""
	for n > 0 {
		r := (n - 1) % 26
		s = string(rune('A'+r)) + s
		n = (n - 1) / 26
	}
	return s
}
