package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *Engine {
	seq := 0
	return &Engine{
		now: func() time.Time {
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		},
		newID: func() string {
			seq++
			return []string{"res-1", "res-2", "res-3"}[seq-1]
		},
	}
}

func res(id, userID, roomID, date string, exclusive bool, slots ...string) Reservation {
	return Reservation{
		ID:          id,
		UserID:      userID,
		RoomID:      roomID,
		Date:        date,
		Slots:       slots,
		IsExclusive: exclusive,
	}
}

func TestFindFirstConflict(t *testing.T) {
	existing := []Reservation{
		res("a", "u1", "R1", "2024-06-01", true, "09:00"),
		res("b", "u2", "R1", "2024-06-01", true, "10:00"),
	}

	t.Run("Returns first blocking reservation", func(t *testing.T) {
		candidate := res("", "u3", "R1", "2024-06-01", false, "09:00", "10:00")

		id, found := FindFirstConflict(candidate, existing)
		assert.True(t, found)
		assert.Equal(t, "a", id)
	})

	t.Run("No conflict returns not found", func(t *testing.T) {
		candidate := res("", "u3", "R1", "2024-06-01", false, "11:00")

		id, found := FindFirstConflict(candidate, existing)
		assert.False(t, found)
		assert.Empty(t, id)
	})
}

func TestFindAllConflicts(t *testing.T) {
	existing := []Reservation{
		res("a", "u1", "R1", "2024-06-01", true, "09:00"),
		res("b", "u2", "R1", "2024-06-01", false, "09:00", "10:00"),
		res("c", "u3", "R1", "2024-06-01", true, "10:00"),
		res("d", "u4", "R2", "2024-06-01", true, "09:00"),
	}

	candidate := res("", "u5", "R1", "2024-06-01", true, "09:00", "10:00")

	ids := FindAllConflicts(candidate, existing)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestSharedSlotsWithoutExclusivityDoNotConflict(t *testing.T) {
	// Rooms are shareable by default: two non-exclusive reservations
	// may occupy the same room, date and slots.
	existing := []Reservation{
		res("a", "u1", "R1", "2024-06-01", false, "09:00", "10:00"),
	}
	candidate := res("", "u2", "R1", "2024-06-01", false, "09:00")

	ids := FindAllConflicts(candidate, existing)
	assert.Empty(t, ids)
}

func TestExclusivityBlocksSharedSlots(t *testing.T) {
	t.Run("Exclusive candidate against shareable existing", func(t *testing.T) {
		existing := []Reservation{
			res("a", "u1", "R1", "2024-06-01", false, "09:00"),
		}
		candidate := res("", "u2", "R1", "2024-06-01", true, "09:00")

		ids := FindAllConflicts(candidate, existing)
		assert.Equal(t, []string{"a"}, ids)
	})

	t.Run("Shareable candidate against exclusive existing", func(t *testing.T) {
		existing := []Reservation{
			res("a", "u1", "R1", "2024-06-01", true, "09:00"),
		}
		candidate := res("", "u2", "R1", "2024-06-01", false, "09:00")

		ids := FindAllConflicts(candidate, existing)
		assert.Equal(t, []string{"a"}, ids)
	})

	t.Run("Both exclusive", func(t *testing.T) {
		existing := []Reservation{
			res("a", "u1", "R1", "2024-06-01", true, "09:00"),
		}
		candidate := res("", "u2", "R1", "2024-06-01", true, "09:00")

		ids := FindAllConflicts(candidate, existing)
		assert.Equal(t, []string{"a"}, ids)
	})
}

func TestDifferentRoomsNeverConflict(t *testing.T) {
	existing := []Reservation{
		res("a", "u1", "R1", "2024-06-01", true, "09:00"),
	}
	candidate := res("", "u2", "R2", "2024-06-01", true, "09:00")

	assert.Empty(t, FindAllConflicts(candidate, existing))
}

func TestDifferentDatesNeverConflict(t *testing.T) {
	existing := []Reservation{
		res("a", "u1", "R1", "2024-06-01", true, "09:00"),
	}
	candidate := res("", "u2", "R1", "2024-06-02", true, "09:00")

	assert.Empty(t, FindAllConflicts(candidate, existing))
}

func TestNextDaySlotsCompareWithinBookingDateOnly(t *testing.T) {
	// A next-day slot belongs to its booking date. The same label on
	// the following calendar date is a different logical slot.
	existing := []Reservation{
		res("a", "u1", "R1", "2024-06-01", true, "00:00 (next day)"),
	}

	sameDate := res("", "u2", "R1", "2024-06-01", false, "00:00 (next day)")
	assert.Equal(t, []string{"a"}, FindAllConflicts(sameDate, existing))

	nextDate := res("", "u2", "R1", "2024-06-02", true, "00:00 (next day)")
	assert.Empty(t, FindAllConflicts(nextDate, existing))
}

func TestAdmit(t *testing.T) {
	t.Run("Shareable pair is admitted", func(t *testing.T) {
		e := testEngine()
		existing := []Reservation{
			res("a", "u1", "R1", "2024-06-01", false, "09:00"),
		}
		candidate := res("", "u2", "R1", "2024-06-01", false, "09:00")

		admitted, err := e.Admit(candidate, existing)
		require.NoError(t, err)
		assert.Equal(t, "res-1", admitted.ID)
		assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), admitted.CreatedAt)
		assert.Equal(t, candidate.UserID, admitted.UserID)
		assert.Equal(t, []string{"09:00"}, []string(admitted.Slots))
	})

	t.Run("Exclusive candidate over occupied slot is rejected", func(t *testing.T) {
		e := testEngine()
		existing := []Reservation{
			res("a", "u1", "R1", "2024-06-01", false, "09:00"),
		}
		candidate := res("", "u2", "R1", "2024-06-01", true, "09:00")

		_, err := e.Admit(candidate, existing)
		require.Error(t, err)

		conflictErr, ok := err.(*ConflictError)
		require.True(t, ok)
		assert.Equal(t, []string{"a"}, conflictErr.BlockingIDs)
	})

	t.Run("Same slots in another room admit independently", func(t *testing.T) {
		e := testEngine()
		existing := []Reservation{
			res("a", "u1", "R1", "2024-06-01", true, "09:00"),
		}
		candidate := res("", "u2", "R2", "2024-06-01", true, "09:00")

		admitted, err := e.Admit(candidate, existing)
		require.NoError(t, err)
		assert.NotEmpty(t, admitted.ID)
	})

	t.Run("Admit does not alias candidate slots", func(t *testing.T) {
		e := testEngine()
		candidate := res("", "u1", "R1", "2024-06-01", false, "09:00", "10:00")

		admitted, err := e.Admit(candidate, nil)
		require.NoError(t, err)

		admitted.Slots[0] = "mutated"
		assert.Equal(t, "09:00", candidate.Slots[0])
	})
}

func TestCancel(t *testing.T) {
	e := testEngine()
	existing := []Reservation{
		res("d", "u1", "R1", "2024-06-01", false, "09:00"),
		res("e", "u1", "R1", "2024-06-02", false, "10:00"),
		res("f", "u2", "R1", "2024-06-03", false, "11:00"),
	}

	t.Run("Owner cancels own reservation", func(t *testing.T) {
		remaining, err := e.Cancel("d", existing, "u1", false)
		require.NoError(t, err)
		require.Len(t, remaining, 2)
		assert.Equal(t, "e", remaining[0].ID)
		assert.Equal(t, "f", remaining[1].ID)
	})

	t.Run("Admin cancels any reservation", func(t *testing.T) {
		remaining, err := e.Cancel("f", existing, "someone-else", true)
		require.NoError(t, err)
		require.Len(t, remaining, 2)
		assert.Equal(t, "d", remaining[0].ID)
		assert.Equal(t, "e", remaining[1].ID)
	})

	t.Run("Non-owner non-admin is forbidden", func(t *testing.T) {
		remaining, err := e.Cancel("d", existing, "u2", false)
		require.Error(t, err)
		assert.Nil(t, remaining)

		forbiddenErr, ok := err.(*ForbiddenError)
		require.True(t, ok)
		assert.Equal(t, "d", forbiddenErr.ReservationID)
		assert.Equal(t, "u2", forbiddenErr.RequestingUserID)
	})

	t.Run("Unknown id is not found", func(t *testing.T) {
		remaining, err := e.Cancel("unknown_id", existing, "u1", true)
		require.Error(t, err)
		assert.Nil(t, remaining)

		notFoundErr, ok := err.(*NotFoundError)
		require.True(t, ok)
		assert.Equal(t, "unknown_id", notFoundErr.ReservationID)
	})

	t.Run("Input collection is never mutated", func(t *testing.T) {
		_, err := e.Cancel("e", existing, "u1", false)
		require.NoError(t, err)

		require.Len(t, existing, 3)
		assert.Equal(t, "d", existing[0].ID)
		assert.Equal(t, "e", existing[1].ID)
		assert.Equal(t, "f", existing[2].ID)
	})
}

func TestRemoveForUser(t *testing.T) {
	existing := []Reservation{
		res("d", "u1", "R1", "2024-06-01", false, "09:00"),
		res("e", "u1", "R1", "2024-06-02", false, "10:00"),
		res("f", "u2", "R1", "2024-06-03", false, "11:00"),
	}

	t.Run("Removes exactly the user's reservations", func(t *testing.T) {
		remaining := RemoveForUser("u1", existing)
		require.Len(t, remaining, 1)
		assert.Equal(t, "f", remaining[0].ID)
	})

	t.Run("User without reservations leaves collection intact", func(t *testing.T) {
		remaining := RemoveForUser("u3", existing)
		assert.Equal(t, existing, remaining)
	})

	t.Run("Preserves relative order of the rest", func(t *testing.T) {
		remaining := RemoveForUser("u2", existing)
		require.Len(t, remaining, 2)
		assert.Equal(t, "d", remaining[0].ID)
		assert.Equal(t, "e", remaining[1].ID)
	})
}
