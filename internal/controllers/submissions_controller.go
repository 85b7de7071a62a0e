package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/duozero/intake-service/internal/dtos"
	"github.com/duozero/intake-service/internal/services"
	"github.com/duozero/intake-service/internal/utils"
)

var validate = validator.New()

// 10 MB cap on attachment uploads.
const maxUploadBytes = 10 << 20

type SubmissionsController struct {
	submissionService *services.SubmissionService
	attachmentService *services.AttachmentService
}

func NewSubmissionsController(ss *services.SubmissionService, as *services.AttachmentService) *SubmissionsController {
	return &SubmissionsController{submissionService: ss, attachmentService: as}
}

// SubmitHandler => POST /api/duo/submit
func (c *SubmissionsController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid submission", err.Error(), err)
		return
	}

	id, err := c.submissionService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, "Failed to create submission", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.IntakeResponse{Ok: true, Id: id})
}

/*
UploadSubmitHandler => POST /api/submit

Multipart legacy form: flat text fields plus an optional "attachment" file
that lands in Drive before the row is written.
*/
func (c *SubmissionsController) UploadSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart form", nil, err)
		return
	}

	req := dtos.SimpleIntakeRequest{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Phone:      r.FormValue("phone"),
		Department: r.FormValue("department"),
		Category:   r.FormValue("category"),
		Priority:   r.FormValue("priority"),
		Notes:      r.FormValue("notes"),
		Status:     r.FormValue("status"),
	}
	if err := validate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Name and email are required", err.Error(), err)
		return
	}

	attachmentURL := ""
	file, header, err := r.FormFile("attachment")
	if err == nil {
		defer file.Close()
		if c.attachmentService == nil {
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeUpstream, "Attachment uploads are not configured", nil, nil)
			return
		}
		attachmentURL, err = c.attachmentService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeUpstream, "Attachment upload failed", nil, err)
			return
		}
	}

	if err := c.submissionService.CreateSimple(r.Context(), &req, attachmentURL); err != nil {
		respondServiceError(w, "Failed to create submission", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SimpleSubmitResponse{Ok: true, AttachmentURL: attachmentURL})
}

// FirstSubmitSimpleHandler => POST /api/first-submit-simple
func (c *SubmissionsController) FirstSubmitSimpleHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SimpleIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Name and email are required", err.Error(), err)
		return
	}

	if err := c.submissionService.CreateSimple(r.Context(), &req, ""); err != nil {
		respondServiceError(w, "Failed to create submission", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.SimpleSubmitResponse{Ok: true})
}
