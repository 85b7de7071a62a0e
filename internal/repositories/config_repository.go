package repositories

import (
	"context"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/utils"
)

/*
ConfigRepository reads the Config sheet, which operations edit by hand to
control the wizard's dropdowns. One column per option list; rows are sparse
and unaligned across columns, so each list is harvested independently.
*/
type ConfigRepository struct {
	store RowStore
}

func NewConfigRepository(store RowStore) *ConfigRepository {
	return &ConfigRepository{store: store}
}

// ConfigTable is the raw sheet: normalized header → column index, plus rows.
type ConfigTable struct {
	cols map[string]int
	rows [][]string
}

func (r *ConfigRepository) Load(ctx context.Context) (*ConfigTable, error) {
	header, rows, err := r.store.AllRows(ctx, constants.ConfigSheet)
	if err != nil {
		return nil, err
	}
	return &ConfigTable{cols: headerIndex(header), rows: rows}, nil
}

/*
Column returns the raw values of the first header that matches any of the
given names (the sheet has gone through several header spellings; callers list
them newest-first). Missing column yields nil, not an error — dropdowns
degrade to empty lists.
*/
func (t *ConfigTable) Column(names ...string) []string {
	idx := -1
	for _, name := range names {
		if i, ok := t.cols[utils.NormalizeHeader(name)]; ok {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, cellAt(row, idx))
	}
	return out
}

// Rows exposes paired column access for the province→cities grouping.
func (t *ConfigTable) Rows() int { return len(t.rows) }

func (t *ConfigTable) Cell(row int, names ...string) string {
	for _, name := range names {
		if i, ok := t.cols[utils.NormalizeHeader(name)]; ok {
			return cellAt(t.rows[row], i)
		}
	}
	return ""
}
