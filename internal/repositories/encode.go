package repositories

import (
	"encoding/json"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/models"
	"github.com/duozero/intake-service/internal/utils"
)

/*
PlanFieldUpdates is the typed write-side of an edit: each non-nil group
becomes cell updates, nil groups leave their columns untouched. The
reconciliation engine fills this in; only this package turns it into CSV/JSON
cell text.
*/
type PlanFieldUpdates struct {
	Address    *models.Address
	Terms      *models.PlanTerms
	Schedule   []models.ScheduleSlot
	TimeWindow *string
	Additional *models.Additional
	Cleanings  []models.CleaningRef
}

// CellUpdates flattens the changed groups to header-addressed cell writes.
func (u *PlanFieldUpdates) CellUpdates() []CellUpdate {
	updates := []CellUpdate{}

	if u.Address != nil {
		updates = append(updates,
			CellUpdate{constants.HdrProvince, u.Address.Province},
			CellUpdate{constants.HdrCityTown, u.Address.City},
			CellUpdate{constants.HdrStreetNumber, u.Address.Street},
			CellUpdate{constants.HdrPropertyDetails, u.Address.Details},
			CellUpdate{constants.HdrPropertyType, u.Address.PropertyType},
		)
	}

	if u.Terms != nil {
		updates = append(updates,
			CellUpdate{constants.HdrDurationHours, u.Terms.DurationHours},
			CellUpdate{constants.HdrNumberOfCleanings, encodeN(u.Terms.NumberOfCleanings)},
			CellUpdate{constants.HdrAutoRenew, u.Terms.AutoRenew},
		)
	}

	if u.Schedule != nil {
		dateCSV, timeCSV, extrasJSON, _ := EncodeScheduleCells(u.Schedule, nil)
		updates = append(updates,
			CellUpdate{constants.HdrScheduleDate, dateCSV},
			CellUpdate{constants.HdrScheduleTime, timeCSV},
			CellUpdate{constants.HdrExtrasJSON, extrasJSON},
		)
	}

	if u.TimeWindow != nil {
		updates = append(updates, CellUpdate{constants.HdrTimeWindow, *u.TimeWindow})
	}

	if u.Additional != nil {
		updates = append(updates,
			CellUpdate{constants.HdrCleaningInstructions, u.Additional.CleaningInstructions},
			CellUpdate{constants.HdrFavoriteDuo, u.Additional.FavoriteDuo},
			CellUpdate{constants.HdrServiceType, u.Additional.ServiceType},
		)
	}

	if u.Cleanings != nil {
		updates = append(updates, CellUpdate{
			constants.HdrCleaningsJSON, encodeCleaningRefs(u.Cleanings),
		})
	}

	return updates
}

/*
EncodeScheduleCells turns typed slots (and optionally cleaning refs) back into
the four compound cells: parallel CSV date/time lists, the extras JSON map
keyed "Cleaning <i+1>", and the cleaning-refs JSON array.
*/
func EncodeScheduleCells(slots []models.ScheduleSlot, refs []models.CleaningRef) (dateCSV, timeCSV, extrasJSON, cleaningsJSON string) {
	dates := make([]string, 0, len(slots))
	times := make([]string, 0, len(slots))
	extras := map[string][]string{}
	for i, s := range slots {
		dates = append(dates, s.Date)
		times = append(times, s.Time)
		ex := s.Extras
		if ex == nil {
			ex = []string{}
		}
		extras[CleaningKey(i)] = ex
	}

	dateCSV = utils.JoinCSV(dates)
	timeCSV = utils.JoinCSV(times)
	extrasJSON = mustJSON(extras)
	cleaningsJSON = encodeCleaningRefs(refs)
	return
}

func encodeCleaningRefs(refs []models.CleaningRef) string {
	if refs == nil {
		refs = []models.CleaningRef{}
	}
	return mustJSON(refs)
}

// mustJSON: the inputs are maps/slices of strings, which cannot fail to
// marshal.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to marshal sheet cell JSON")
		return ""
	}
	return string(b)
}
