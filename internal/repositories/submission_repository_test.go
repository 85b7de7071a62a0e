package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/models"
	"github.com/duozero/intake-service/internal/utils"
)

// memStore is a minimal in-memory RowStore for this package's tests
// (internal/testhelpers would import us back).
type memStore struct {
	header []string
	rows   [][]string
	writes int
}

func (m *memStore) HeaderRow(context.Context, string) ([]string, error) {
	return append([]string{}, m.header...), nil
}

func (m *memStore) AllRows(context.Context, string) ([]string, [][]string, error) {
	return append([]string{}, m.header...), m.rows, nil
}

func (m *memStore) WriteHeaderRow(_ context.Context, _ string, header []string) error {
	m.header = append([]string{}, header...)
	m.writes++
	return nil
}

func (m *memStore) AppendRow(_ context.Context, _ string, row []string) error {
	m.rows = append(m.rows, append([]string{}, row...))
	m.writes++
	return nil
}

func (m *memStore) UpdateRowCells(_ context.Context, _ string, rowNumber int, updates []CellUpdate) error {
	cols := headerIndex(m.header)
	row := m.rows[rowNumber-2]
	for _, u := range updates {
		idx, ok := cols[utils.NormalizeHeader(u.Header)]
		if !ok {
			return utils.ErrColumnNotFound
		}
		for len(row) <= idx {
			row = append(row, "")
		}
		row[idx] = u.Value
	}
	m.rows[rowNumber-2] = row
	m.writes++
	return nil
}

func TestColToA1(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
	}
	for idx, want := range cases {
		if got := ColToA1(idx); got != want {
			t.Errorf("ColToA1(%d) = %q, want %q", idx, got, want)
		}
	}
}

func TestEnsureHeadersAppendsMissing(t *testing.T) {
	store := &memStore{header: []string{"Timestamp", "ID", "Email"}}
	repo := NewSubmissionRepository(store)

	header, err := repo.EnsureHeaders(context.Background())
	require.NoError(t, err)

	// Existing columns keep their positions; everything missing lands after.
	assert.Equal(t, []string{"Timestamp", "ID", "Email"}, header[:3])
	assert.Len(t, header, len(constants.RequiredHeaders))
	assert.Equal(t, 1, store.writes)

	// Second call is a no-op.
	_, err = repo.EnsureHeaders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.writes)
}

func TestAppendThenFindByID(t *testing.T) {
	store := &memStore{}
	repo := NewSubmissionRepository(store)

	plan := &models.Plan{
		Id:        "DUO-1",
		Timestamp: "2025-06-01T12:00:00Z",
		FullName:  "Ana Diaz",
		Email:     "ana@example.com",
		Status:    models.PlanStatusActive,
		Terms:     models.PlanTerms{DurationHours: "4", NumberOfCleanings: 2, AutoRenew: "Yes"},
		Schedule: []models.ScheduleSlot{
			{Date: "2030-05-05", Time: "10:00", Extras: []string{"Windows"}},
			{Date: "2030-06-06", Time: "11:00", Extras: []string{}},
		},
		TimeWindow: "Morning",
		Cleanings: []models.CleaningRef{
			{CleaningId: "CLN-a", EventId: "evt-1", DuoId: "duo-9"},
			{CleaningId: "CLN-b"},
		},
	}
	require.NoError(t, repo.Append(context.Background(), plan))

	got, rowNum, err := repo.FindByID(context.Background(), "DUO-1")
	require.NoError(t, err)
	assert.Equal(t, 2, rowNum)

	assert.Equal(t, plan.FullName, got.FullName)
	assert.Equal(t, plan.Terms, got.Terms)
	require.Len(t, got.Schedule, 2)
	assert.Equal(t, plan.Schedule[0], got.Schedule[0])
	assert.Equal(t, plan.Cleanings, got.Cleanings)
	assert.Equal(t, "Morning", got.TimeWindow)

	_, _, err = repo.FindByID(context.Background(), "DUO-missing")
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}

func TestDecodeToleratesLegacyCleaningKeys(t *testing.T) {
	store := &memStore{header: constants.RequiredHeaders}
	repo := NewSubmissionRepository(store)

	row := make([]string, len(constants.RequiredHeaders))
	set := func(name, value string) {
		for i, h := range constants.RequiredHeaders {
			if utils.NormalizeHeader(h) == utils.NormalizeHeader(name) {
				row[i] = value
				return
			}
		}
		t.Fatalf("unknown header %q", name)
	}
	set(constants.HdrID, "DUO-legacy")
	set(constants.HdrNumberOfCleanings, "3")
	set(constants.HdrCleaningsJSON, `[{"cleaningID":"CLN-old"},{"id":"CLN-older"},{"cleaningId":"CLN-new","eventId":"evt-1"}]`)
	store.rows = [][]string{row}

	got, _, err := repo.FindByID(context.Background(), "DUO-legacy")
	require.NoError(t, err)
	require.Len(t, got.Cleanings, 3)
	assert.Equal(t, "CLN-old", got.Cleanings[0].CleaningId)
	assert.Equal(t, "CLN-older", got.Cleanings[1].CleaningId)
	assert.Equal(t, "CLN-new", got.Cleanings[2].CleaningId)
	assert.Equal(t, "evt-1", got.Cleanings[2].EventId)

	// Missing schedule cells pad slots to N.
	assert.Len(t, got.Schedule, 3)
	assert.Equal(t, "", got.Schedule[0].Date)
}

func TestListByEmail(t *testing.T) {
	store := &memStore{}
	repo := NewSubmissionRepository(store)

	mk := func(id, email, status string) *models.Plan {
		return &models.Plan{Id: id, Email: email, Status: models.PlanStatusType(status)}
	}
	require.NoError(t, repo.Append(context.Background(), mk("DUO-1", "ana@example.com", "Active")))
	require.NoError(t, repo.Append(context.Background(), mk("DUO-2", "ANA@example.com", "pending")))
	require.NoError(t, repo.Append(context.Background(), mk("DUO-3", "ana@example.com", "Canceled")))
	require.NoError(t, repo.Append(context.Background(), mk("DUO-4", "other@example.com", "Active")))
	require.NoError(t, repo.Append(context.Background(), mk("DUO-5", "ana@example.com", "Active")))

	plans, err := repo.ListByEmail(context.Background(), " Ana@Example.com ")
	require.NoError(t, err)

	// Case-insensitive match, Active/Pending only, newest first.
	require.Len(t, plans, 3)
	assert.Equal(t, "DUO-5", plans[0].Id)
	assert.Equal(t, "DUO-2", plans[1].Id)
	assert.Equal(t, "DUO-1", plans[2].Id)
}

func TestListByEmailCapsAtMax(t *testing.T) {
	store := &memStore{}
	repo := NewSubmissionRepository(store)

	for i := 0; i < constants.MaxListedPlans+5; i++ {
		p := &models.Plan{
			Id:     "DUO-" + ColToA1(i),
			Email:  "ana@example.com",
			Status: models.PlanStatusActive,
		}
		require.NoError(t, repo.Append(context.Background(), p))
	}

	plans, err := repo.ListByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, plans, constants.MaxListedPlans)
	// Newest (last appended) comes first.
	assert.Equal(t, "DUO-"+ColToA1(constants.MaxListedPlans+4), plans[0].Id)
}
