package utils

import (
	"errors"
	"fmt"
)

/*
   Sentinel errors for the plan-edit domain logic.
   Controllers can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrPlanNotFound   = errors.New("plan_not_found")
	ErrColumnNotFound = errors.New("column_not_found")
	ErrPlanLocked     = errors.New("plan_locked")
	ErrMissingID      = errors.New("missing_id")
	ErrInvalidPayload = errors.New("invalid_payload")
)

/*
ReduceBelowMinimumError is returned when an edit tries to lower the number of
cleanings below what is already persisted. It carries the floor so the
controller can put the exact value in the public message.
*/
type ReduceBelowMinimumError struct {
	Minimum int
}

func (e *ReduceBelowMinimumError) Error() string {
	return fmt.Sprintf("cannot reduce number of cleanings below %d", e.Minimum)
}

func NewReduceBelowMinimumError(minimum int) error {
	return &ReduceBelowMinimumError{Minimum: minimum}
}
