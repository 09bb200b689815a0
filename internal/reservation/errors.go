package reservation

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors returned before the engine runs. The engine itself
// assumes well-formed candidates.
var (
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
	ErrPastDate    = errors.New("cannot reserve a past date")
	ErrEmptySlots  = errors.New("at least one time slot is required")
	ErrInvalidSlot = errors.New("unknown time slot")
	ErrRoomUnknown = errors.New("room not found")
)

// ConflictError rejects an admission because of a slot/exclusivity
// collision. BlockingIDs carries every reservation that blocks the
// candidate so callers can present them to the user.
type ConflictError struct {
	BlockingIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("reservation conflicts with existing bookings: %s", strings.Join(e.BlockingIDs, ", "))
}

// NotFoundError means the cancellation target does not exist. Callers
// may treat it as already-cancelled.
type NotFoundError struct {
	ReservationID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reservation %s not found", e.ReservationID)
}

// ForbiddenError means a non-owner, non-admin attempted a cancellation.
type ForbiddenError struct {
	ReservationID    string
	RequestingUserID string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user %s may not cancel reservation %s", e.RequestingUserID, e.ReservationID)
}
