package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/dtos"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/testhelpers"
	"github.com/duozero/intake-service/internal/utils"
)

type sentMail struct {
	toEmail string
	subject string
}

type fakeMailer struct {
	sent     []sentMail
	failWith error
}

func (f *fakeMailer) Send(toName, toEmail, subject, plainText, htmlContent string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, sentMail{toEmail: toEmail, subject: subject})
	return nil
}

func newTestSubmissionService(mailer Mailer) (*SubmissionService, *testhelpers.MemoryRowStore, *repositories.SubmissionRepository) {
	store := testhelpers.NewMemoryRowStore()
	repo := repositories.NewSubmissionRepository(store)
	svc := NewSubmissionService(repo, mailer)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc.genID = sequentialIDs("CLN-sub")
	return svc, store, repo
}

func TestCreateSubmission(t *testing.T) {
	mailer := &fakeMailer{}
	svc, _, repo := newTestSubmissionService(mailer)

	id, err := svc.Create(context.Background(), &dtos.IntakeRequest{
		FullName: "Ana Diaz",
		Email:    "ana@example.com",
		Phone:    "+54 11 5555-0000",
		Address:  &dtos.AddressPayload{Province: "Buenos Aires", City: "CABA"},
		Plan:     &dtos.PlanPayload{DurationHours: "4", NumberCleanings: 2, AutoRenew: "Yes"},
		Schedule: &dtos.SchedulePayload{
			Date:       "2030-05-05, 2030-06-06",
			Time:       "10:00, 11:00",
			TimeWindow: "Morning",
			Extras:     map[string]any{"Cleaning 1": []any{"Windows"}},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, constants.PlanIDPrefix))

	plan, _, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Ana Diaz", plan.FullName)
	assert.Equal(t, constants.DefaultStatus, string(plan.Status))
	assert.Equal(t, "2025-06-01T12:00:00Z", plan.Timestamp)
	assert.Equal(t, 2, plan.Terms.NumberOfCleanings)
	require.Len(t, plan.Schedule, 2)
	assert.Equal(t, "2030-05-05", plan.Schedule[0].Date)
	assert.Equal(t, []string{"Windows"}, plan.Schedule[0].Extras)

	require.Len(t, plan.Cleanings, 2)
	assert.Equal(t, "CLN-sub-1", plan.Cleanings[0].CleaningId)
	assert.Empty(t, plan.Cleanings[0].EventId)

	// Request email recorded on the row.
	assert.Equal(t, "true", plan.Emails.RequestSent)
	assert.NotEmpty(t, plan.Emails.RequestSentAt)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@example.com", mailer.sent[0].toEmail)
}

func TestCreateSubmissionClampsCleanings(t *testing.T) {
	svc, _, repo := newTestSubmissionService(nil)

	id, err := svc.Create(context.Background(), &dtos.IntakeRequest{
		Email: "ana@example.com",
		Plan:  &dtos.PlanPayload{NumberCleanings: 50},
	})
	require.NoError(t, err)

	plan, _, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, constants.MaxCleanings, plan.Terms.NumberOfCleanings)
	assert.Len(t, plan.Cleanings, constants.MaxCleanings)
}

func TestCreateSubmissionRequiresEmail(t *testing.T) {
	svc, store, _ := newTestSubmissionService(nil)

	_, err := svc.Create(context.Background(), &dtos.IntakeRequest{FullName: "No Email"})
	assert.ErrorIs(t, err, utils.ErrInvalidPayload)
	assert.Empty(t, store.WriteLog)
}

func TestCreateSubmissionRecordsMailFailure(t *testing.T) {
	mailer := &fakeMailer{failWith: fmt.Errorf("sendgrid returned status 503")}
	svc, _, repo := newTestSubmissionService(mailer)

	id, err := svc.Create(context.Background(), &dtos.IntakeRequest{Email: "ana@example.com"})
	require.NoError(t, err, "a mail failure must not fail the submission")

	plan, _, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "false", plan.Emails.RequestSent)
	assert.Contains(t, plan.Emails.RequestError, "503")
}

func TestCreateSimpleSubmission(t *testing.T) {
	svc, store, _ := newTestSubmissionService(nil)

	err := svc.CreateSimple(context.Background(), &dtos.SimpleIntakeRequest{
		Name:       "Bruno",
		Email:      "bruno@example.com",
		Department: "Maintenance",
		Notes:      "Second floor",
	}, "https://drive.google.com/file/d/abc/view")
	require.NoError(t, err)

	row := store.Row(constants.SubmissionsSheet, 2)
	require.NotNil(t, row)

	repo := repositories.NewSubmissionRepository(store)
	plans, _, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)

	p := plans[0]
	assert.True(t, strings.HasPrefix(p.Id, constants.PlanIDPrefix))
	assert.Equal(t, "Bruno", p.FullName)
	assert.Equal(t, constants.DefaultStatus, string(p.Status))
	assert.Equal(t, "Maintenance", p.Department)
	assert.Equal(t, "https://drive.google.com/file/d/abc/view", p.AttachmentURL)
	assert.Equal(t, 0, p.Terms.NumberOfCleanings)
}

func TestCreateSimpleRequiresEmail(t *testing.T) {
	svc, _, _ := newTestSubmissionService(nil)
	err := svc.CreateSimple(context.Background(), &dtos.SimpleIntakeRequest{Name: "X"}, "")
	assert.True(t, errors.Is(err, utils.ErrInvalidPayload))
}
