package controllers

import (
	"net/http"

	"github.com/duozero/intake-service/internal/services"
	"github.com/duozero/intake-service/internal/utils"
)

type ConfigController struct {
	configService *services.ConfigService
}

func NewConfigController(cs *services.ConfigService) *ConfigController {
	return &ConfigController{configService: cs}
}

// OptionsHandler => GET /api/config and GET /api/duo/config
func (c *ConfigController) OptionsHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.configService.Options(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(
			w,
			http.StatusInternalServerError,
			utils.ErrCodeUpstream,
			"Failed to load form options",
			nil,
			err,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
