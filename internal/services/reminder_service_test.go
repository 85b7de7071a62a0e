package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/repositories"
)

func newTestReminderService(repo *repositories.SubmissionRepository, mailer Mailer) *ReminderService {
	svc := NewReminderService(repo, mailer)
	svc.tomorrow = func() string { return "2025-06-02" }
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 5, 0, 0, time.UTC) }
	return svc
}

func TestReminderScanSendsForTomorrow(t *testing.T) {
	cells := basePlanCells()
	cells[constants.HdrScheduleDate] = "2025-06-02, 2099-01-01"
	_, repo := seedPlan(t, cells)

	mailer := &fakeMailer{}
	svc := newTestReminderService(repo, mailer)

	svc.RunDailyScan(context.Background())

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@example.com", mailer.sent[0].toEmail)
	assert.Contains(t, mailer.sent[0].subject, "2025-06-02")

	plan, _, err := repo.FindByID(context.Background(), "DUO-test")
	require.NoError(t, err)
	assert.Equal(t, "true", plan.Emails.ReminderSent[repositories.CleaningKey(0)])
	assert.NotEmpty(t, plan.Emails.ReminderSentAt[repositories.CleaningKey(0)])
	assert.Empty(t, plan.Emails.ReminderSent[repositories.CleaningKey(1)])
}

func TestReminderScanIsIdempotent(t *testing.T) {
	cells := basePlanCells()
	cells[constants.HdrScheduleDate] = "2025-06-02, 2099-01-01"
	_, repo := seedPlan(t, cells)

	mailer := &fakeMailer{}
	svc := newTestReminderService(repo, mailer)

	svc.RunDailyScan(context.Background())
	svc.RunDailyScan(context.Background())

	assert.Len(t, mailer.sent, 1, "a re-run must not double-send")
}

func TestReminderScanSkipsUnlistablePlans(t *testing.T) {
	cells := basePlanCells()
	cells[constants.HdrScheduleDate] = "2025-06-02, 2099-01-01"
	cells[constants.HdrStatus] = "Canceled"
	_, repo := seedPlan(t, cells)

	mailer := &fakeMailer{}
	svc := newTestReminderService(repo, mailer)

	svc.RunDailyScan(context.Background())
	assert.Empty(t, mailer.sent)
}

func TestReminderScanRecordsFailure(t *testing.T) {
	cells := basePlanCells()
	cells[constants.HdrScheduleDate] = "2025-06-02, 2099-01-01"
	_, repo := seedPlan(t, cells)

	mailer := &fakeMailer{failWith: assert.AnError}
	svc := newTestReminderService(repo, mailer)

	svc.RunDailyScan(context.Background())

	plan, _, err := repo.FindByID(context.Background(), "DUO-test")
	require.NoError(t, err)
	assert.Equal(t, "false", plan.Emails.ReminderSent[repositories.CleaningKey(0)])
	assert.NotEmpty(t, plan.Emails.ReminderError)
	assert.Empty(t, plan.Emails.ReminderSentAt[repositories.CleaningKey(0)])
}
