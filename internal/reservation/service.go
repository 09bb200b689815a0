package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quincho/internal/metrics"
)

// RoomRegistry resolves room identifiers before admission. The engine
// itself never consults it; it exists so malformed candidates are
// rejected ahead of the conflict check. Implemented by room.Repository.
type RoomRegistry interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Notifier queues simulated admin emails. Implemented by
// notifier.Service; failures are logged there, not surfaced here.
type Notifier interface {
	NotifyAdmin(ctx context.Context, notifType, subject, body string)
}

type Service interface {
	Create(ctx context.Context, userID string, req CreateReservationRequest) (*Reservation, error)
	Cancel(ctx context.Context, reservationID, requestingUserID string, isAdmin bool) error
	ListMine(ctx context.Context, userID string) ([]Reservation, error)
	ListPublic(ctx context.Context) ([]Reservation, error)
	ListDetailed(ctx context.Context, f Filter) ([]ReservationWithDetails, error)
	RemoveForUser(ctx context.Context, userID string) (int64, error)
}

type service struct {
	repo     Repository
	rooms    RoomRegistry
	engine   *Engine
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, rooms RoomRegistry, engine *Engine, notifier Notifier) Service {
	return &service{
		repo:     repo,
		rooms:    rooms,
		engine:   engine,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create validates the candidate, snapshots the current collection,
// runs the conflict engine and persists the admitted reservation. The
// load-check-save sequence relies on single-writer semantics; there is
// no compare-and-swap against concurrent admissions.
func (s *service) Create(ctx context.Context, userID string, req CreateReservationRequest) (*Reservation, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrPastDate
	}

	slots := NormalizeSlots(req.Slots)
	if len(slots) == 0 {
		return nil, ErrEmptySlots
	}
	for _, slot := range slots {
		if !IsValidSlot(slot) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
		}
	}

	exists, err := s.rooms.Exists(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRoomUnknown
	}

	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	candidate := Reservation{
		UserID:      userID,
		RoomID:      req.RoomID,
		Date:        req.Date,
		Slots:       slots,
		IsExclusive: req.IsExclusive,
	}

	admitted, err := s.engine.Admit(candidate, existing)
	if err != nil {
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) {
			metrics.RecordReservation("conflict")
			metrics.RecordConflict()
		}
		return nil, err
	}

	if err := s.repo.Insert(ctx, admitted); err != nil {
		return nil, err
	}

	metrics.RecordReservation("admitted")

	kind := "shareable"
	if admitted.IsExclusive {
		kind = "exclusive"
	}
	s.notifier.NotifyAdmin(ctx, "new_reservation",
		"New reservation created",
		fmt.Sprintf("Reservation %s: room %s on %s, slots %s (%s), by user %s.",
			admitted.ID, admitted.RoomID, admitted.Date,
			strings.Join(admitted.Slots, ", "), kind, admitted.UserID))

	return &admitted, nil
}

// Cancel authorizes through the engine against the current snapshot and
// removes the single entry. A missing target surfaces as NotFoundError,
// which callers may treat as already cancelled.
func (s *service) Cancel(ctx context.Context, reservationID, requestingUserID string, isAdmin bool) error {
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	if _, err := s.engine.Cancel(reservationID, existing, requestingUserID, isAdmin); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, reservationID); err != nil {
		return err
	}

	by := "owner"
	if isAdmin {
		by = "admin"
	}
	metrics.RecordCancellation(by)

	return nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListPublic(ctx context.Context) ([]Reservation, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListDetailed(ctx context.Context, f Filter) ([]ReservationWithDetails, error) {
	return s.repo.ListDetailed(ctx, f)
}

// RemoveForUser is the cascade half of user deletion: every
// reservation owned by the user goes with the account.
func (s *service) RemoveForUser(ctx context.Context, userID string) (int64, error) {
	existing, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	remaining := RemoveForUser(userID, existing)
	if len(remaining) == len(existing) {
		return 0, nil
	}

	return s.repo.DeleteByUser(ctx, userID)
}
