package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/models"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/utils"
)

/*
ReminderService runs the nightly scan that emails requesters the day before
each scheduled cleaning. Sends are idempotent per slot: a "Cleaning <i+1>"
key already present in the sent-at map is never mailed again, so re-running
the scan (or restarting mid-scan) cannot double-send.
*/
type ReminderService struct {
	subRepo *repositories.SubmissionRepository
	mailer  Mailer

	tomorrow func() string
	now      func() time.Time
}

func NewReminderService(subRepo *repositories.SubmissionRepository, mailer Mailer) *ReminderService {
	return &ReminderService{
		subRepo:  subRepo,
		mailer:   mailer,
		tomorrow: utils.TomorrowISO,
		now:      time.Now,
	}
}

// RunDailyScan walks every listable plan and sends reminders for slots
// scheduled tomorrow. Per-plan failures are logged and do not stop the scan.
func (s *ReminderService) RunDailyScan(ctx context.Context) {
	if s.mailer == nil {
		utils.Logger.Debug("Reminder scan skipped, no mailer configured")
		return
	}

	plans, rowNums, err := s.subRepo.ListAll(ctx)
	if err != nil {
		utils.Logger.Errorf("Reminder scan could not list plans: %v", err)
		return
	}

	target := s.tomorrow()
	sent := 0
	for i, plan := range plans {
		if !plan.IsListable() || plan.Email == "" {
			continue
		}
		n, err := s.remindPlan(ctx, plan, rowNums[i], target)
		if err != nil {
			utils.Logger.WithField("planId", plan.Id).Errorf("Reminder update failed: %v", err)
			continue
		}
		sent += n
	}
	utils.Logger.Infof("Reminder scan for %s complete, %d reminder(s) sent", target, sent)
}

// remindPlan sends due reminders for one plan and persists the bookkeeping
// maps in a single cell batch. Returns how many reminders went out.
func (s *ReminderService) remindPlan(ctx context.Context, plan *models.Plan, rowNum int, target string) (int, error) {
	sentMap := copyMap(plan.Emails.ReminderSent)
	sentAtMap := copyMap(plan.Emails.ReminderSentAt)
	lastErr := ""
	sent := 0

	for i, slot := range plan.Schedule {
		if slot.Date != target {
			continue
		}
		key := repositories.CleaningKey(i)
		if sentAtMap[key] != "" {
			continue
		}

		if err := s.mailer.Send(plan.FullName, plan.Email, reminderSubject(slot), reminderPlain(plan, slot), reminderHTML(plan, slot)); err != nil {
			utils.Logger.WithField("planId", plan.Id).Warnf("Reminder email for %s failed: %v", key, err)
			sentMap[key] = "false"
			lastErr = err.Error()
			continue
		}
		sentMap[key] = "true"
		sentAtMap[key] = s.now().UTC().Format(time.RFC3339)
		sent++
	}

	if sent == 0 && lastErr == "" {
		return 0, nil
	}

	updates := []repositories.CellUpdate{
		{Header: constants.HdrEmailSentReminderJSON, Value: mustJSONMap(sentMap)},
		{Header: constants.HdrEmailSentAtReminderJSON, Value: mustJSONMap(sentAtMap)},
		{Header: constants.HdrEmailErrReminder, Value: lastErr},
	}
	return sent, s.subRepo.UpdateCells(ctx, rowNum, updates)
}

func reminderSubject(slot models.ScheduleSlot) string {
	return fmt.Sprintf("Reminder: your cleaning is scheduled for %s", slot.Date)
}

func reminderPlain(plan *models.Plan, slot models.ScheduleSlot) string {
	when := slot.Date
	if slot.Time != "" {
		when = fmt.Sprintf("%s at %s", slot.Date, slot.Time)
	}
	return fmt.Sprintf("Hi %s,\n\nThis is a reminder that your cleaning (%s) is scheduled for %s.", plan.FullName, plan.Id, when)
}

func reminderHTML(plan *models.Plan, slot models.ScheduleSlot) string {
	when := slot.Date
	if slot.Time != "" {
		when = fmt.Sprintf("%s at %s", slot.Date, slot.Time)
	}
	return fmt.Sprintf("<p>Hi %s,</p><p>This is a reminder that your cleaning (<b>%s</b>) is scheduled for <b>%s</b>.</p>", plan.FullName, plan.Id, when)
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mustJSONMap(m map[string]string) string {
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}
