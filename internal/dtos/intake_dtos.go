package dtos

import (
	"strconv"
	"strings"
)

/*
FlexInt tolerates both JSON numbers and numeric strings — the wizard has sent
"Number of Cleanings" both ways over its iterations. Junk parses to 0, same
as the sheet-side coercion always did.
*/
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) Int() int { return int(f) }

// AddressPayload etc. mirror the nested wizard payload exactly; absent
// sections decode to zero values and write empty cells, as the form always
// has.
type AddressPayload struct {
	Province     string `json:"province"`
	City         string `json:"city"`
	Street       string `json:"street"`
	Details      string `json:"details"`
	PropertyType string `json:"propertyType"`
}

type PlanPayload struct {
	DurationHours   string  `json:"durationHours"`
	NumberCleanings FlexInt `json:"numberCleanings"`
	AutoRenew       string  `json:"autoRenew"`
}

// SchedulePayload carries the per-cleaning values in their wire form:
// parallel CSV strings for date/time, extras keyed "Cleaning <i+1>".
type SchedulePayload struct {
	Date       string         `json:"date"`
	Time       string         `json:"time"`
	TimeWindow string         `json:"timeWindow"`
	Extras     map[string]any `json:"extras"`
}

type AdditionalPayload struct {
	CleaningInstructions string `json:"cleaningInstructions"`
	FavoriteDuo          string `json:"favoriteDuo"`
	ServiceType          string `json:"serviceType"`
}

/*
IntakeRequest is the POST /api/duo/submit body: the full wizard state at the
final step.
*/
type IntakeRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`

	UserType   string `json:"userType"`
	FlowAction string `json:"flowAction"`

	Department    string `json:"department"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
	AttachmentURL string `json:"attachmentUrl"`

	Address    *AddressPayload    `json:"address"`
	Plan       *PlanPayload       `json:"plan"`
	Schedule   *SchedulePayload   `json:"schedule"`
	Additional *AdditionalPayload `json:"additional"`
}

type IntakeResponse struct {
	Ok bool   `json:"ok"`
	Id string `json:"id"`
}

/*
SimpleIntakeRequest is the legacy flat form (POST /api/first-submit-simple and
the non-file fields of POST /api/submit).
*/
type SimpleIntakeRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	Notes      string `json:"notes"`
	Status     string `json:"status"`
}

type SimpleSubmitResponse struct {
	Ok            bool   `json:"ok"`
	AttachmentURL string `json:"attachmentUrl"`
}
