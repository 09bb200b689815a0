package reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// The conflict engine is pure: it decides over the snapshot handed to
// it, performs no I/O and never mutates its inputs. Rooms are shareable
// by default; a slot collision only blocks when at least one side is
// exclusive. Dates are compared as calendar-date strings, so next-day
// slot labels never collide across adjacent dates.

func sharesSlot(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

func conflictsWith(candidate, existing Reservation) bool {
	if existing.RoomID != candidate.RoomID || existing.Date != candidate.Date {
		return false
	}
	if !candidate.IsExclusive && !existing.IsExclusive {
		return false
	}
	return sharesSlot(candidate.Slots, existing.Slots)
}

// FindFirstConflict returns the id of the first existing reservation
// that blocks the candidate. The second return is false when no
// reservation blocks it.
func FindFirstConflict(candidate Reservation, existing []Reservation) (string, bool) {
	for _, r := range existing {
		if conflictsWith(candidate, r) {
			return r.ID, true
		}
	}
	return "", false
}

// FindAllConflicts returns the ids of every existing reservation that
// blocks the candidate, in input order. It returns nil when the
// candidate is admissible.
func FindAllConflicts(candidate Reservation, existing []Reservation) []string {
	var ids []string
	for _, r := range existing {
		if conflictsWith(candidate, r) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Engine stamps admitted reservations with a fresh identifier and
// creation time. The clock and id source are injected so decisions are
// reproducible in tests.
type Engine struct {
	now   func() time.Time
	newID func() string
}

func NewEngine() *Engine {
	return &Engine{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Admit accepts the candidate against the existing collection and
// returns it with identity assigned, or a ConflictError naming every
// blocking reservation. It never partially applies a booking.
func (e *Engine) Admit(candidate Reservation, existing []Reservation) (Reservation, error) {
	if ids := FindAllConflicts(candidate, existing); len(ids) > 0 {
		return Reservation{}, &ConflictError{BlockingIDs: ids}
	}

	admitted := candidate
	admitted.ID = e.newID()
	admitted.CreatedAt = e.now().UTC()
	admitted.Slots = append(pq.StringArray(nil), candidate.Slots...)
	return admitted, nil
}

// Cancel removes the reservation with the given id and returns the
// remaining collection. Only the owner or an admin may cancel. The
// input collection is left untouched in every outcome.
func (e *Engine) Cancel(reservationID string, existing []Reservation, requestingUserID string, isAdmin bool) ([]Reservation, error) {
	idx := -1
	for i, r := range existing {
		if r.ID == reservationID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, &NotFoundError{ReservationID: reservationID}
	}

	if existing[idx].UserID != requestingUserID && !isAdmin {
		return nil, &ForbiddenError{
			ReservationID:    reservationID,
			RequestingUserID: requestingUserID,
		}
	}

	remaining := make([]Reservation, 0, len(existing)-1)
	remaining = append(remaining, existing[:idx]...)
	remaining = append(remaining, existing[idx+1:]...)
	return remaining, nil
}

// RemoveForUser drops every reservation owned by the user, preserving
// the relative order of the rest. User deletion calls this so the
// cascade stays testable apart from user management.
func RemoveForUser(userID string, existing []Reservation) []Reservation {
	remaining := make([]Reservation, 0, len(existing))
	for _, r := range existing {
		if r.UserID != userID {
			remaining = append(remaining, r)
		}
	}
	return remaining
}
