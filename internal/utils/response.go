package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

const (
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeValidation     = "validation_error"
	ErrCodeInternal       = "internal_server_error"
	ErrCodeNotFound       = "not_found"
	ErrCodeColumnNotFound = "column_not_found"
	ErrCodePlanLocked     = "plan_locked"
	ErrCodeBelowMinimum   = "below_minimum"
	ErrCodeUpstream       = "external_service_failure"
)

/*
ErrorResponse is the wire shape for every failed request. `error` carries the
human-readable message the wizard shows in its banner; `code` lets clients
branch without string-matching.
*/
type ErrorResponse struct {
	Ok      bool   `json:"ok"`
	Code    string `json:"code"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondErrorWithCode builds a JSON error response with a standard
// code and message. The optional `details` is included if non-nil.
func RespondErrorWithCode(
	w http.ResponseWriter,
	status int,
	errorCode string,
	publicMessage string,
	details any,
	devErrs ...error,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errBody := ErrorResponse{
		Ok:    false,
		Code:  errorCode,
		Error: publicMessage,
	}
	if details != nil {
		errBody.Details = details
	}
	_ = json.NewEncoder(w).Encode(errBody)

	// devErr is optional; only handle if provided
	if len(devErrs) > 0 && devErrs[0] != nil {
		Logger.WithFields(logrus.Fields{
			"status": status,
			"error":  devErrs[0].Error(),
		}).Error(publicMessage)
	} else {
		Logger.WithFields(logrus.Fields{
			"status": status,
		}).Error(publicMessage)
	}
}

// RespondWithJSON for successful cases
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
