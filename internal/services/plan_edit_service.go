package services

import (
	"context"

	"github.com/duozero/intake-service/internal/dtos"
	"github.com/duozero/intake-service/internal/models"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/utils"
)

// UpdateMode selects which field groups an edit may touch. Groups outside the
// mode are left untouched even if the payload carries values for them.
type UpdateMode string

const (
	UpdateAddress    UpdateMode = "address"
	UpdatePlan       UpdateMode = "plan"
	UpdateSchedule   UpdateMode = "schedule"
	UpdatePlanFull   UpdateMode = "plan_full"
	UpdateAdditional UpdateMode = "additional"
	UpdateAll        UpdateMode = "all"
)

func (m UpdateMode) touchesAddress() bool {
	return m == UpdateAddress || m == UpdateAll
}

func (m UpdateMode) touchesAdditional() bool {
	return m == UpdateAdditional || m == UpdateAll
}

// Plan and schedule edits share one guarded merge path; see applyPlanSchedule.
func (m UpdateMode) touchesPlanSchedule() bool {
	switch m {
	case UpdatePlan, UpdateSchedule, UpdatePlanFull, UpdateAll:
		return true
	}
	return false
}

// canChangeN: a schedule-only edit reslots existing cleanings but cannot grow
// or shrink the plan.
func (m UpdateMode) canChangeN() bool {
	return m == UpdatePlan || m == UpdatePlanFull || m == UpdateAll
}

/*
PlanEditService is the reconciliation engine behind POST /api/duo/update.

Every edit is validated whole before anything is written: a fully locked plan
rejects all plan/schedule changes, the cleaning count can never drop below
what is persisted, and locked slots keep their stored date/time/extras no
matter what the payload says. All resulting cell updates go out in a single
batch, so there is no partial mutation to roll back.
*/
type PlanEditService struct {
	subRepo  *repositories.SubmissionRepository
	lockRule utils.LockRule

	// injectable clock and id generator; tests pin these
	today func() string
	genID func() string
}

func NewPlanEditService(subRepo *repositories.SubmissionRepository, lockRule utils.LockRule) *PlanEditService {
	return &PlanEditService{
		subRepo:  subRepo,
		lockRule: lockRule,
		today:    utils.TodayISO,
		genID:    NewCleaningID,
	}
}

// ApplyEdit loads the target plan, merges the payload under the mode's rules
// and persists the changed cells. Validation failures leave the row untouched.
func (s *PlanEditService) ApplyEdit(ctx context.Context, id string, mode UpdateMode, payload *dtos.EditPayload) error {
	if id == "" {
		return utils.ErrMissingID
	}
	if payload == nil {
		payload = &dtos.EditPayload{}
	}

	existing, rowNum, err := s.subRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	updates := repositories.PlanFieldUpdates{}

	if mode.touchesAddress() {
		updates.Address = addressFromPayload(payload.Address)
	}
	if mode.touchesAdditional() {
		updates.Additional = additionalFromPayload(payload.Additional)
	}
	if mode.touchesPlanSchedule() {
		if err := s.applyPlanSchedule(existing, mode, payload, &updates); err != nil {
			return err
		}
	}

	cellUpdates := updates.CellUpdates()
	if len(cellUpdates) == 0 {
		return nil
	}
	return s.subRepo.UpdateCells(ctx, rowNum, cellUpdates)
}

/*
applyPlanSchedule is the guarded merge shared by the plan, schedule, plan_full
and all modes (plan_full semantics are authoritative; the older partial modes
run through the same safeguards).
*/
func (s *PlanEditService) applyPlanSchedule(existing *models.Plan, mode UpdateMode, payload *dtos.EditPayload, updates *repositories.PlanFieldUpdates) error {
	today := s.today()
	existingN := existing.Terms.NumberOfCleanings
	existingDates := make([]string, len(existing.Schedule))
	for i, slot := range existing.Schedule {
		existingDates[i] = slot.Date
	}

	if s.lockRule.AllSlotsLockedOn(existingDates, existingN, today) {
		return utils.ErrPlanLocked
	}

	targetN := existingN
	if mode.canChangeN() {
		targetN = 0
		if payload.Plan != nil {
			targetN = payload.Plan.NumberCleanings.Int()
		}
		if existingN > 0 && targetN < existingN {
			return utils.NewReduceBelowMinimumError(existingN)
		}
	}

	merged := s.mergeSchedule(existing.Schedule, payload.Schedule, targetN, today)
	updates.Schedule = merged

	if mode.canChangeN() {
		terms := models.PlanTerms{NumberOfCleanings: targetN}
		if payload.Plan != nil {
			terms.DurationHours = payload.Plan.DurationHours
			terms.AutoRenew = payload.Plan.AutoRenew
		}
		updates.Terms = &terms
	}

	// Time Window belongs to the schedule section; an edit that carries no
	// schedule payload leaves the stored value alone.
	if payload.Schedule != nil {
		timeWindow := payload.Schedule.TimeWindow
		updates.TimeWindow = &timeWindow
	}

	updates.Cleanings = SyncCleaningRefs(existing.Cleanings, targetN, s.genID)
	return nil
}

/*
mergeSchedule builds the post-edit slot list:

  - i < existing and locked: stored date/time/extras verbatim, payload ignored;
  - i < existing and editable: incoming value if provided, else the stored one
    (an edit never blanks an existing slot);
  - i >= existing (new slot): incoming value or empty.

Extras follow the same split, with map presence deciding "provided" so a
deliberate empty selection on an editable slot sticks.
*/
func (s *PlanEditService) mergeSchedule(existing []models.ScheduleSlot, incoming *dtos.SchedulePayload, targetN int, today string) []models.ScheduleSlot {
	var inDates, inTimes []string
	inExtras := map[string][]string{}
	if incoming != nil {
		inDates = utils.SplitCSV(incoming.Date)
		inTimes = utils.SplitCSV(incoming.Time)
		inExtras = utils.NormalizeExtras(incoming.Extras)
	}

	at := func(xs []string, i int) string {
		if i < len(xs) {
			return xs[i]
		}
		return ""
	}

	merged := make([]models.ScheduleSlot, targetN)
	for i := 0; i < targetN; i++ {
		key := repositories.CleaningKey(i)

		if i < len(existing) {
			old := existing[i]
			if s.lockRule.IsLockedOn(old.Date, today) {
				merged[i] = old
				continue
			}

			slot := models.ScheduleSlot{Date: old.Date, Time: old.Time, Extras: old.Extras}
			if d := at(inDates, i); d != "" {
				slot.Date = d
			}
			if t := at(inTimes, i); t != "" {
				slot.Time = t
			}
			if ex, ok := inExtras[key]; ok {
				slot.Extras = ex
			}
			merged[i] = slot
			continue
		}

		merged[i] = models.ScheduleSlot{
			Date:   at(inDates, i),
			Time:   at(inTimes, i),
			Extras: inExtras[key],
		}
	}
	return merged
}

func addressFromPayload(p *dtos.AddressPayload) *models.Address {
	if p == nil {
		p = &dtos.AddressPayload{}
	}
	return &models.Address{
		Province:     p.Province,
		City:         p.City,
		Street:       p.Street,
		Details:      p.Details,
		PropertyType: p.PropertyType,
	}
}

func additionalFromPayload(p *dtos.AdditionalPayload) *models.Additional {
	if p == nil {
		p = &dtos.AdditionalPayload{}
	}
	return &models.Additional{
		CleaningInstructions: p.CleaningInstructions,
		FavoriteDuo:          p.FavoriteDuo,
		ServiceType:          p.ServiceType,
	}
}
