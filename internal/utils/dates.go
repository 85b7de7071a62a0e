package utils

import (
	"strings"
	"time"
)

// ReferenceTimezone is the fixed zone every lock decision is made in. The
// business operates in Argentina; client devices can be anywhere.
const ReferenceTimezone = "America/Argentina/Buenos_Aires"

/*
LockRule selects when a cleaning slot stops being editable. StrictlyPast locks
a slot once its date has passed; OneDayBefore already locks it the day before
it occurs, which blocks same-day reschedules. Resolved once at startup from
config — merge logic never inspects the environment.
*/
type LockRule int

const (
	LockStrictlyPast LockRule = iota
	LockOneDayBefore
)

// referenceLocation falls back to UTC only if tzdata is somehow unavailable
// (main imports time/tzdata, so in practice it never is).
func referenceLocation() *time.Location {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		Logger.WithError(err).Warnf("Failed to load %s, falling back to UTC", ReferenceTimezone)
		return time.UTC
	}
	return loc
}

// TodayISO returns the current calendar date in the reference timezone as
// "YYYY-MM-DD". Fixed-width ISO dates compare correctly as plain strings.
func TodayISO() string {
	return time.Now().In(referenceLocation()).Format("2006-01-02")
}

// TomorrowISO is tomorrow's date in the reference timezone, "YYYY-MM-DD".
func TomorrowISO() string {
	return time.Now().In(referenceLocation()).AddDate(0, 0, 1).Format("2006-01-02")
}

// IsLockedDate reports whether a slot with the given stored date is immutable
// under the rule. Empty dates never lock.
func (r LockRule) IsLockedDate(d string) bool {
	return r.IsLockedOn(d, TodayISO())
}

// IsLockedOn is IsLockedDate against an explicit "today", so callers that
// make several decisions in one request (and tests) share a single snapshot.
func (r LockRule) IsLockedOn(d, today string) bool {
	d = strings.TrimSpace(d)
	if d == "" {
		return false
	}
	if r == LockOneDayBefore {
		cutoff, err := time.Parse("2006-01-02", today)
		if err != nil {
			return d < today
		}
		return d <= cutoff.AddDate(0, 0, 1).Format("2006-01-02")
	}
	return d < today
}

// AllSlotsLocked is true only when the plan has at least n dates and every one
// of the first n is non-empty and locked. A plan with missing dates is never
// considered fully locked.
func (r LockRule) AllSlotsLocked(dates []string, n int) bool {
	return r.AllSlotsLockedOn(dates, n, TodayISO())
}

func (r LockRule) AllSlotsLockedOn(dates []string, n int, today string) bool {
	if n <= 0 || len(dates) < n {
		return false
	}
	for _, d := range dates[:n] {
		if !r.IsLockedOn(d, today) {
			return false
		}
	}
	return true
}
