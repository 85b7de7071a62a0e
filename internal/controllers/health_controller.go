package controllers

import (
	"net/http"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/utils"
)

// HealthController checks spreadsheet connectivity.
type HealthController struct {
	store repositories.RowStore
}

func NewHealthController(store repositories.RowStore) *HealthController {
	return &HealthController{store}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := c.store.HeaderRow(r.Context(), constants.SubmissionsSheet); err != nil {
		utils.Logger.WithError(err).Error("intake-service spreadsheet unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeUpstream, "Spreadsheet unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
