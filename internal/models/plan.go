package models

import "strings"

// PlanStatusType mirrors the Status column of the Submissions sheet. The
// sheet is hand-edited by operations, so parsing is case-insensitive and
// unknown values pass through untouched.
type PlanStatusType string

const (
	PlanStatusPending   PlanStatusType = "Pending"
	PlanStatusActive    PlanStatusType = "Active"
	PlanStatusCompleted PlanStatusType = "Completed"
	PlanStatusCanceled  PlanStatusType = "Canceled"
)

// Address is replaceable wholesale on an "address" edit.
type Address struct {
	Province     string `json:"province"`
	City         string `json:"city"`
	Street       string `json:"street"`
	Details      string `json:"details"`
	PropertyType string `json:"propertyType"`
}

/*
PlanTerms holds the scalar plan fields. NumberOfCleanings is monotonically
non-decreasing once persisted: edits may raise it, never lower it.
*/
type PlanTerms struct {
	DurationHours     string `json:"durationHours"`
	NumberOfCleanings int    `json:"numberCleanings"`
	AutoRenew         string `json:"autoRenew"`
}

// ScheduleSlot is one cleaning occurrence. Slot i is "Cleaning i+1" in the
// sheet's extras map. A slot with a past date is locked: date, time and
// extras are immutable on every subsequent edit.
type ScheduleSlot struct {
	Date   string   `json:"date"`
	Time   string   `json:"time"`
	Extras []string `json:"extras"`
}

/*
CleaningRef is the per-occurrence identity record, index-aligned with the
schedule slots. CleaningId is stable for the life of the slot; EventId and
DuoId are foreign keys populated by the calendar/assignment systems after
creation and must survive edits verbatim.
*/
type CleaningRef struct {
	CleaningId string `json:"cleaningId"`
	EventId    string `json:"eventId"`
	DuoId      string `json:"duoId"`
}

/*
EmailTracking mirrors the notification bookkeeping columns. Request fields
are scalar (one intake email per plan); reminder sends are per-cleaning maps
keyed "Cleaning <i+1>", same keying as the extras cell.
*/
type EmailTracking struct {
	RequestSent    string            `json:"requestSent,omitempty"`
	RequestSentAt  string            `json:"requestSentAt,omitempty"`
	RequestError   string            `json:"requestError,omitempty"`
	ReminderSent   map[string]string `json:"reminderSent,omitempty"`
	ReminderSentAt map[string]string `json:"reminderSentAt,omitempty"`
	ReminderError  string            `json:"reminderError,omitempty"`
}

type Additional struct {
	CleaningInstructions string `json:"cleaningInstructions"`
	FavoriteDuo          string `json:"favoriteDuo"`
	ServiceType          string `json:"serviceType"`
}

/*
Plan is one row of the Submissions sheet as a typed record. Compound cells
(CSV schedule lists, JSON extras/cleanings) are decoded at the repository
boundary; nothing above it touches cell encodings.
*/
type Plan struct {
	Id        string         `json:"id"`
	Timestamp string         `json:"timestamp"`
	FullName  string         `json:"fullName"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Status    PlanStatusType `json:"status"`

	UserType   string `json:"userType"`
	FlowAction string `json:"flowAction"`

	Address    Address        `json:"address"`
	Terms      PlanTerms      `json:"plan"`
	Schedule   []ScheduleSlot `json:"schedule"`
	TimeWindow string         `json:"timeWindow"`
	Additional Additional     `json:"additional"`

	Cleanings []CleaningRef `json:"cleanings"`

	Emails EmailTracking `json:"emails,omitempty"`

	// Legacy simple-intake fields, kept because returning users created
	// through the old form still have them populated.
	Department    string `json:"department,omitempty"`
	Category      string `json:"category,omitempty"`
	Priority      string `json:"priority,omitempty"`
	Notes         string `json:"notes,omitempty"`
	AttachmentURL string `json:"attachmentUrl,omitempty"`
}

// IsListable reports whether the plan shows up for a returning requester.
// Status is hand-edited in the sheet, so compare case-insensitively.
func (p *Plan) IsListable() bool {
	switch strings.ToLower(strings.TrimSpace(string(p.Status))) {
	case "active", "pending":
		return true
	}
	return false
}
