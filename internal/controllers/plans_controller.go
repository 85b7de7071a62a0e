package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/duozero/intake-service/internal/dtos"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/services"
	"github.com/duozero/intake-service/internal/utils"
)

type PlansController struct {
	subRepo         *repositories.SubmissionRepository
	planEditService *services.PlanEditService
}

func NewPlansController(subRepo *repositories.SubmissionRepository, pes *services.PlanEditService) *PlansController {
	return &PlansController{subRepo: subRepo, planEditService: pes}
}

// ListPlansHandler => GET /api/duo/plans?email=...
func (c *PlansController) ListPlansHandler(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "email query parameter is required", nil, nil)
		return
	}

	plans, err := c.subRepo.ListByEmail(r.Context(), email)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeUpstream, "Failed to list plans", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListPlansResponse{Ok: true, Plans: plans})
}

// UpdatePlanHandler => POST /api/duo/update
func (c *PlansController) UpdatePlanHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "id and a valid updateMode are required", err.Error(), err)
		return
	}

	err := c.planEditService.ApplyEdit(r.Context(), req.Id, services.UpdateMode(req.UpdateMode), req.Payload)
	if err != nil {
		respondServiceError(w, "Failed to update plan", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.UpdatePlanResponse{Ok: true})
}

/*
respondServiceError maps service-layer failures to the wire. Business
rejections are 400s with their own codes so the wizard can show a precise
banner; everything else (including a stale id, which the form cannot cause)
stays a 500, matching what clients already handle.
*/
func respondServiceError(w http.ResponseWriter, publicMessage string, err error) {
	var belowMin *utils.ReduceBelowMinimumError
	switch {
	case errors.Is(err, utils.ErrPlanLocked):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodePlanLocked, "All cleanings in this plan have passed; it can no longer be edited", nil, err)
	case errors.As(err, &belowMin):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeBelowMinimum, belowMin.Error(), nil, err)
	case errors.Is(err, utils.ErrMissingID), errors.Is(err, utils.ErrInvalidPayload):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
	case errors.Is(err, utils.ErrPlanNotFound):
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeNotFound, "Plan not found", nil, err)
	case errors.Is(err, utils.ErrColumnNotFound):
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeColumnNotFound, "Sheet is missing a required column", nil, err)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, publicMessage, nil, err)
	}
}
