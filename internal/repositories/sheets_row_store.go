package repositories

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/duozero/intake-service/internal/utils"
)

/*
SheetsRowStore implements RowStore over the Google Sheets values API. Ranges
are deliberately wide (A1:ZZ) so column growth never breaks a read; writes use
RAW input so the sheet never reinterprets dates or ids.
*/
type SheetsRowStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewSheetsRowStore(svc *sheets.Service, spreadsheetID string) *SheetsRowStore {
	return &SheetsRowStore{svc: svc, spreadsheetID: spreadsheetID}
}

func (s *SheetsRowStore) HeaderRow(ctx context.Context, sheet string) ([]string, error) {
	res, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!1:1", sheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read header row of %s: %w", sheet, err)
	}
	if len(res.Values) == 0 {
		return []string{}, nil
	}
	return cellsToStrings(res.Values[0]), nil
}

func (s *SheetsRowStore) AllRows(ctx context.Context, sheet string) ([]string, [][]string, error) {
	res, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!A1:ZZ", sheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(res.Values) == 0 {
		return []string{}, nil, nil
	}
	header := cellsToStrings(res.Values[0])
	rows := make([][]string, 0, len(res.Values)-1)
	for _, r := range res.Values[1:] {
		rows = append(rows, cellsToStrings(r))
	}
	return header, rows, nil
}

func (s *SheetsRowStore) WriteHeaderRow(ctx context.Context, sheet string, header []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{stringsToCells(header)}}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("%s!1:1", sheet), vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header row of %s: %w", sheet, err)
	}
	return nil
}

func (s *SheetsRowStore) AppendRow(ctx context.Context, sheet string, row []string) error {
	// Next empty row is derived from column A so a full-width Update can
	// start at column A regardless of trailing blank cells in earlier rows.
	colA, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("%s!A:A", sheet)).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("find next row of %s: %w", sheet, err)
	}
	nextRow := len(colA.Values) + 1

	endCol := ColToA1(len(row) - 1)
	rangeStr := fmt.Sprintf("%s!A%d:%s%d", sheet, nextRow, endCol, nextRow)
	vr := &sheets.ValueRange{Values: [][]interface{}{stringsToCells(row)}}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, rangeStr, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", sheet, err)
	}
	return nil
}

func (s *SheetsRowStore) UpdateRowCells(ctx context.Context, sheet string, rowNumber int, updates []CellUpdate) error {
	header, err := s.HeaderRow(ctx, sheet)
	if err != nil {
		return err
	}
	cols := headerIndex(header)

	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		idx, ok := cols[utils.NormalizeHeader(u.Header)]
		if !ok {
			return fmt.Errorf("%w: %s", utils.ErrColumnNotFound, u.Header)
		}
		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", sheet, ColToA1(idx), rowNumber),
			Values: [][]interface{}{{u.Value}},
		})
	}
	if len(data) == 0 {
		return nil
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := s.svc.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("batch update %s row %d: %w", sheet, rowNumber, err)
	}
	return nil
}

// headerIndex maps normalized header name to 0-based column index. First
// occurrence wins when a sheet has duplicate headers.
func headerIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, h := range header {
		key := utils.NormalizeHeader(h)
		if _, ok := m[key]; !ok {
			m[key] = i
		}
	}
	return m
}

func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = fmt.Sprintf("%v", c)
	}
	return out
}

func stringsToCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
