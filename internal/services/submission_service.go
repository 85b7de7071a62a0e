package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/dtos"
	"github.com/duozero/intake-service/internal/models"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/utils"
)

// SubmissionService turns intake payloads into Submissions rows. Mailer may
// be nil (no SendGrid key configured); send outcomes are recorded on the row
// either way and never fail the submission.
type SubmissionService struct {
	subRepo *repositories.SubmissionRepository
	mailer  Mailer

	now   func() time.Time
	genID func() string
}

func NewSubmissionService(subRepo *repositories.SubmissionRepository, mailer Mailer) *SubmissionService {
	return &SubmissionService{
		subRepo: subRepo,
		mailer:  mailer,
		now:     time.Now,
		genID:   NewCleaningID,
	}
}

// NewPlanID mints a plan identifier.
func NewPlanID() string {
	return constants.PlanIDPrefix + uuid.NewString()
}

// Create persists a full wizard submission and returns the new plan id.
func (s *SubmissionService) Create(ctx context.Context, req *dtos.IntakeRequest) (string, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" {
		return "", utils.ErrInvalidPayload
	}

	plan := s.planFromIntake(req)
	s.recordRequestEmail(plan)

	if err := s.subRepo.Append(ctx, plan); err != nil {
		return "", err
	}
	utils.Logger.WithField("planId", plan.Id).Info("Created plan submission")
	return plan.Id, nil
}

// CreateSimple persists the legacy flat form. attachmentURL may be empty
// (the first-submit variant has no upload step).
func (s *SubmissionService) CreateSimple(ctx context.Context, req *dtos.SimpleIntakeRequest, attachmentURL string) error {
	if req == nil || strings.TrimSpace(req.Email) == "" {
		return utils.ErrInvalidPayload
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = constants.DefaultStatus
	}

	plan := &models.Plan{
		Id:            NewPlanID(),
		Timestamp:     s.timestamp(),
		FullName:      req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Status:        models.PlanStatusType(status),
		Department:    req.Department,
		Category:      req.Category,
		Priority:      req.Priority,
		Notes:         req.Notes,
		AttachmentURL: attachmentURL,
	}
	if err := s.subRepo.Append(ctx, plan); err != nil {
		return err
	}
	utils.Logger.WithField("planId", plan.Id).Info("Created simple submission")
	return nil
}

func (s *SubmissionService) planFromIntake(req *dtos.IntakeRequest) *models.Plan {
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = constants.DefaultStatus
	}

	n := 0
	terms := models.PlanTerms{}
	if req.Plan != nil {
		n = req.Plan.NumberCleanings.Int()
		terms = models.PlanTerms{
			DurationHours: req.Plan.DurationHours,
			AutoRenew:     req.Plan.AutoRenew,
		}
	}
	if n < 0 {
		n = 0
	}
	if n > constants.MaxCleanings {
		n = constants.MaxCleanings
	}
	terms.NumberOfCleanings = n

	plan := &models.Plan{
		Id:         NewPlanID(),
		Timestamp:  s.timestamp(),
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Status:     models.PlanStatusType(status),
		UserType:   req.UserType,
		FlowAction: req.FlowAction,
		Terms:      terms,
		Schedule:   slotsFromPayload(req.Schedule, n),
		Cleanings:  SyncCleaningRefs(nil, n, s.genID),

		Department:    req.Department,
		Category:      req.Category,
		Priority:      req.Priority,
		Notes:         req.Notes,
		AttachmentURL: req.AttachmentURL,
	}

	if req.Address != nil {
		plan.Address = models.Address{
			Province:     req.Address.Province,
			City:         req.Address.City,
			Street:       req.Address.Street,
			Details:      req.Address.Details,
			PropertyType: req.Address.PropertyType,
		}
	}
	if req.Schedule != nil {
		plan.TimeWindow = req.Schedule.TimeWindow
	}
	if req.Additional != nil {
		plan.Additional = models.Additional{
			CleaningInstructions: req.Additional.CleaningInstructions,
			FavoriteDuo:          req.Additional.FavoriteDuo,
			ServiceType:          req.Additional.ServiceType,
		}
	}
	return plan
}

func slotsFromPayload(p *dtos.SchedulePayload, n int) []models.ScheduleSlot {
	var dates, times []string
	extras := map[string][]string{}
	if p != nil {
		dates = utils.SplitCSV(p.Date)
		times = utils.SplitCSV(p.Time)
		extras = utils.NormalizeExtras(p.Extras)
	}

	slots := make([]models.ScheduleSlot, n)
	for i := 0; i < n; i++ {
		slot := models.ScheduleSlot{Extras: []string{}}
		if i < len(dates) {
			slot.Date = dates[i]
		}
		if i < len(times) {
			slot.Time = times[i]
		}
		if ex, ok := extras[repositories.CleaningKey(i)]; ok {
			slot.Extras = ex
		}
		slots[i] = slot
	}
	return slots
}

// recordRequestEmail sends the "request received" notification and stamps the
// outcome on the plan before it is appended. A send failure is recorded, not
// propagated.
func (s *SubmissionService) recordRequestEmail(plan *models.Plan) {
	if s.mailer == nil {
		return
	}

	subject := "We received your cleaning request"
	plain := fmt.Sprintf("Hi %s,\n\nWe received your request %s and will confirm your schedule shortly.", plan.FullName, plan.Id)
	html := fmt.Sprintf("<p>Hi %s,</p><p>We received your request <b>%s</b> and will confirm your schedule shortly.</p>", plan.FullName, plan.Id)

	if err := s.mailer.Send(plan.FullName, plan.Email, subject, plain, html); err != nil {
		utils.Logger.WithField("planId", plan.Id).Warnf("Request email failed: %v", err)
		plan.Emails.RequestSent = "false"
		plan.Emails.RequestError = err.Error()
		return
	}
	plan.Emails.RequestSent = "true"
	plan.Emails.RequestSentAt = s.timestamp()
}

func (s *SubmissionService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
