package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/models"
	"github.com/duozero/intake-service/internal/utils"
)

/*
SubmissionRepository is the typed view of the Submissions sheet. Row⇄Plan
mapping lives here and nowhere else: compound cells (CSV schedule lists, JSON
extras/cleanings maps) are decoded on read and re-encoded on write, so the
services above deal only in models.Plan.
*/
type SubmissionRepository struct {
	store RowStore
}

func NewSubmissionRepository(store RowStore) *SubmissionRepository {
	return &SubmissionRepository{store: store}
}

/*
EnsureHeaders appends any missing required header to row 1 and returns the
resulting header row. Additive only: existing columns are never moved or
dropped, so concurrent readers keep resolving correctly.
*/
func (r *SubmissionRepository) EnsureHeaders(ctx context.Context) ([]string, error) {
	current, err := r.store.HeaderRow(ctx, constants.SubmissionsSheet)
	if err != nil {
		return nil, err
	}

	have := make(map[string]struct{}, len(current))
	for _, h := range current {
		have[utils.NormalizeHeader(h)] = struct{}{}
	}

	missing := []string{}
	for _, h := range constants.RequiredHeaders {
		if _, ok := have[utils.NormalizeHeader(h)]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) == 0 {
		return current, nil
	}

	updated := append(append([]string{}, current...), missing...)
	if err := r.store.WriteHeaderRow(ctx, constants.SubmissionsSheet, updated); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Appended %d missing Submissions headers: %v", len(missing), missing)
	return updated, nil
}

// Append encodes the plan against the live header order and writes it as a
// new row. Headers with no corresponding plan field stay empty.
func (r *SubmissionRepository) Append(ctx context.Context, plan *models.Plan) error {
	header, err := r.EnsureHeaders(ctx)
	if err != nil {
		return err
	}
	cols := headerIndex(header)

	row := make([]string, len(header))
	for name, value := range encodePlan(plan) {
		if idx, ok := cols[utils.NormalizeHeader(name)]; ok {
			row[idx] = value
		}
	}
	return r.store.AppendRow(ctx, constants.SubmissionsSheet, row)
}

/*
FindByID returns the plan plus its 1-based sheet row number (header is row 1,
so the first data row is 2). The row number is what UpdateCells later writes
against — fetch and write within one request, last write wins.
*/
func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*models.Plan, int, error) {
	header, rows, err := r.store.AllRows(ctx, constants.SubmissionsSheet)
	if err != nil {
		return nil, 0, err
	}
	cols := headerIndex(header)
	idCol, ok := cols[utils.NormalizeHeader(constants.HdrID)]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", utils.ErrColumnNotFound, constants.HdrID)
	}

	for i, row := range rows {
		if cellAt(row, idCol) == id {
			return decodePlan(cols, row), i + 2, nil
		}
	}
	return nil, 0, utils.ErrPlanNotFound
}

// ListByEmail returns the requester's Active/Pending plans, most recent
// first, capped at MaxListedPlans.
func (r *SubmissionRepository) ListByEmail(ctx context.Context, email string) ([]*models.Plan, error) {
	header, rows, err := r.store.AllRows(ctx, constants.SubmissionsSheet)
	if err != nil {
		return nil, err
	}
	cols := headerIndex(header)
	want := strings.ToLower(strings.TrimSpace(email))

	matched := []*models.Plan{}
	for _, row := range rows {
		p := decodePlan(cols, row)
		if strings.ToLower(strings.TrimSpace(p.Email)) != want {
			continue
		}
		if !p.IsListable() {
			continue
		}
		matched = append(matched, p)
	}

	// Sheet order is append order, so the tail is the newest.
	if len(matched) > constants.MaxListedPlans {
		matched = matched[len(matched)-constants.MaxListedPlans:]
	}
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return matched, nil
}

// ListAll returns every plan with its row number. Used by the reminder scan.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]*models.Plan, []int, error) {
	header, rows, err := r.store.AllRows(ctx, constants.SubmissionsSheet)
	if err != nil {
		return nil, nil, err
	}
	cols := headerIndex(header)

	plans := make([]*models.Plan, 0, len(rows))
	rowNums := make([]int, 0, len(rows))
	for i, row := range rows {
		plans = append(plans, decodePlan(cols, row))
		rowNums = append(rowNums, i+2)
	}
	return plans, rowNums, nil
}

// UpdateCells applies header-addressed updates to one row in a single batch.
func (r *SubmissionRepository) UpdateCells(ctx context.Context, rowNumber int, updates []CellUpdate) error {
	return r.store.UpdateRowCells(ctx, constants.SubmissionsSheet, rowNumber, updates)
}

// ---------------------------------------------------------------
// row ⇄ Plan mapping
// ---------------------------------------------------------------

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func decodePlan(cols map[string]int, row []string) *models.Plan {
	cell := func(name string) string {
		idx, ok := cols[utils.NormalizeHeader(name)]
		if !ok {
			return ""
		}
		return cellAt(row, idx)
	}

	n, _ := strconv.Atoi(strings.TrimSpace(cell(constants.HdrNumberOfCleanings)))
	if n < 0 {
		n = 0
	}
	dates := utils.SplitCSV(cell(constants.HdrScheduleDate))
	times := utils.SplitCSV(cell(constants.HdrScheduleTime))
	extras := utils.NormalizeExtras(
		utils.ParseJSONOrDefault(cell(constants.HdrExtrasJSON), map[string]any{}),
	)

	slots := make([]models.ScheduleSlot, n)
	for i := 0; i < n; i++ {
		slot := models.ScheduleSlot{Extras: []string{}}
		if i < len(dates) {
			slot.Date = dates[i]
		}
		if i < len(times) {
			slot.Time = times[i]
		}
		if ex, ok := extras[CleaningKey(i)]; ok {
			slot.Extras = ex
		}
		slots[i] = slot
	}

	return &models.Plan{
		Id:         cell(constants.HdrID),
		Timestamp:  cell(constants.HdrTimestamp),
		FullName:   cell(constants.HdrFullName),
		Email:      cell(constants.HdrEmail),
		Phone:      cell(constants.HdrPhone),
		Status:     models.PlanStatusType(cell(constants.HdrStatus)),
		UserType:   cell(constants.HdrUserType),
		FlowAction: cell(constants.HdrFlowAction),
		Address: models.Address{
			Province:     cell(constants.HdrProvince),
			City:         cell(constants.HdrCityTown),
			Street:       cell(constants.HdrStreetNumber),
			Details:      cell(constants.HdrPropertyDetails),
			PropertyType: cell(constants.HdrPropertyType),
		},
		Terms: models.PlanTerms{
			DurationHours:     cell(constants.HdrDurationHours),
			NumberOfCleanings: n,
			AutoRenew:         cell(constants.HdrAutoRenew),
		},
		Schedule:   slots,
		TimeWindow: cell(constants.HdrTimeWindow),
		Additional: models.Additional{
			CleaningInstructions: cell(constants.HdrCleaningInstructions),
			FavoriteDuo:          cell(constants.HdrFavoriteDuo),
			ServiceType:          cell(constants.HdrServiceType),
		},
		Cleanings: decodeCleaningRefs(cell(constants.HdrCleaningsJSON)),
		Emails: models.EmailTracking{
			RequestSent:   cell(constants.HdrEmailSentRequest),
			RequestSentAt: cell(constants.HdrEmailSentAtRequest),
			RequestError:  cell(constants.HdrEmailErrRequest),
			ReminderSent: utils.ParseJSONOrDefault(
				cell(constants.HdrEmailSentReminderJSON), map[string]string{},
			),
			ReminderSentAt: utils.ParseJSONOrDefault(
				cell(constants.HdrEmailSentAtReminderJSON), map[string]string{},
			),
			ReminderError: cell(constants.HdrEmailErrReminder),
		},
		Department:    cell(constants.HdrDepartment),
		Category:      cell(constants.HdrCategory),
		Priority:      cell(constants.HdrPriority),
		Notes:         cell(constants.HdrNotes),
		AttachmentURL: cell(constants.HdrAttachmentURL),
	}
}

/*
decodeCleaningRefs tolerates the historical key spellings for the id field
(cleaningId, cleaningID, id) — older rows were written by earlier form
iterations. eventId/duoId pass through verbatim.
*/
func decodeCleaningRefs(raw string) []models.CleaningRef {
	entries := utils.ParseJSONOrDefault(raw, []map[string]any{})
	out := make([]models.CleaningRef, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.CleaningRef{
			CleaningId: firstString(e, "cleaningId", "cleaningID", "id"),
			EventId:    firstString(e, "eventId"),
			DuoId:      firstString(e, "duoId"),
		})
	}
	return out
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// encodePlan flattens a Plan to header-name → cell text. EncodeScheduleCells
// produces the compound cells shared with the edit path.
func encodePlan(p *models.Plan) map[string]string {
	dateCSV, timeCSV, extrasJSON, cleaningsJSON := EncodeScheduleCells(p.Schedule, p.Cleanings)

	return map[string]string{
		constants.HdrTimestamp:     p.Timestamp,
		constants.HdrID:            p.Id,
		constants.HdrFullName:      p.FullName,
		constants.HdrEmail:         p.Email,
		constants.HdrPhone:         p.Phone,
		constants.HdrDepartment:    p.Department,
		constants.HdrCategory:      p.Category,
		constants.HdrPriority:      p.Priority,
		constants.HdrNotes:         p.Notes,
		constants.HdrStatus:        string(p.Status),
		constants.HdrAttachmentURL: p.AttachmentURL,

		constants.HdrUserType:   p.UserType,
		constants.HdrFlowAction: p.FlowAction,

		constants.HdrProvince:        p.Address.Province,
		constants.HdrCityTown:        p.Address.City,
		constants.HdrStreetNumber:    p.Address.Street,
		constants.HdrPropertyDetails: p.Address.Details,
		constants.HdrPropertyType:    p.Address.PropertyType,

		constants.HdrDurationHours:     p.Terms.DurationHours,
		constants.HdrNumberOfCleanings: encodeN(p.Terms.NumberOfCleanings),
		constants.HdrAutoRenew:         p.Terms.AutoRenew,

		constants.HdrScheduleDate: dateCSV,
		constants.HdrScheduleTime: timeCSV,
		constants.HdrTimeWindow:   p.TimeWindow,
		constants.HdrExtrasJSON:   extrasJSON,

		constants.HdrCleaningInstructions: p.Additional.CleaningInstructions,
		constants.HdrFavoriteDuo:          p.Additional.FavoriteDuo,
		constants.HdrServiceType:          p.Additional.ServiceType,

		constants.HdrCleaningsJSON: cleaningsJSON,

		constants.HdrEmailSentRequest:   p.Emails.RequestSent,
		constants.HdrEmailSentAtRequest: p.Emails.RequestSentAt,
		constants.HdrEmailErrRequest:    p.Emails.RequestError,
	}
}

func encodeN(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// CleaningKey is the extras/reminder map key for slot index i ("Cleaning 1"
// for index 0). Shared by the extras cell, the cleaning-refs array and the
// reminder bookkeeping maps.
func CleaningKey(i int) string {
	return fmt.Sprintf("Cleaning %d", i+1)
}
