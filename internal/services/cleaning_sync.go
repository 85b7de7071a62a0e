package services

import (
	"github.com/google/uuid"

	"github.com/duozero/intake-service/internal/constants"
	"github.com/duozero/intake-service/internal/models"
)

// NewCleaningID mints a per-occurrence identifier.
func NewCleaningID() string {
	return constants.CleaningIDPrefix + uuid.NewString()
}

/*
SyncCleaningRefs reconciles the cleaning-ref array with a target slot count:

  - index i kept from the existing array preserves its cleaningId (synthesizing
    one only if it was blank) and carries eventId/duoId verbatim — external
    systems key off those;
  - indexes beyond the existing array get a fresh cleaningId with empty
    foreign keys.

targetN is clamped to [0, MaxCleanings] and floored at the existing length so
the array can never shrink — the plan's own no-reduce rule holds here too.
genID is injectable for tests; nil means NewCleaningID.
*/
func SyncCleaningRefs(existing []models.CleaningRef, targetN int, genID func() string) []models.CleaningRef {
	if genID == nil {
		genID = NewCleaningID
	}

	n := targetN
	if n < 0 {
		n = 0
	}
	if n > constants.MaxCleanings {
		n = constants.MaxCleanings
	}
	if len(existing) > n && len(existing) <= constants.MaxCleanings {
		n = len(existing)
	}

	next := make([]models.CleaningRef, 0, n)
	for i := 0; i < n; i++ {
		if i < len(existing) {
			ref := existing[i]
			if ref.CleaningId == "" {
				ref.CleaningId = genID()
			}
			next = append(next, ref)
			continue
		}
		next = append(next, models.CleaningRef{CleaningId: genID()})
	}
	return next
}
