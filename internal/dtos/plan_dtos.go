package dtos

import "github.com/duozero/intake-service/internal/models"

/*
EditPayload is the `payload` member of POST /api/duo/update. The updateMode
decides which sections are consulted; the rest are ignored even if present.
*/
type EditPayload struct {
	Address    *AddressPayload    `json:"address"`
	Plan       *PlanPayload       `json:"plan"`
	Schedule   *SchedulePayload   `json:"schedule"`
	Additional *AdditionalPayload `json:"additional"`
}

type UpdatePlanRequest struct {
	Id         string       `json:"id" validate:"required"`
	UpdateMode string       `json:"updateMode" validate:"required,oneof=address plan schedule plan_full additional all"`
	Payload    *EditPayload `json:"payload"`
}

type UpdatePlanResponse struct {
	Ok bool `json:"ok"`
}

type ListPlansResponse struct {
	Ok    bool           `json:"ok"`
	Plans []*models.Plan `json:"plans"`
}
