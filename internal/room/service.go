package room

import (
	"context"

	"github.com/google/uuid"
)

// ReservationCounter reports how many reservations reference a room.
// Implemented by reservation.Repository; deleting a room does not
// delete its reservations, so the count is surfaced as a warning.
type ReservationCounter interface {
	CountByRoom(ctx context.Context, roomID string) (int, error)
}

type Service interface {
	Create(ctx context.Context, name string) (*Room, error)
	List(ctx context.Context) ([]Room, error)
	Get(ctx context.Context, id string) (*Room, error)
	Rename(ctx context.Context, id, name string) (*Room, error)
	Delete(ctx context.Context, id string) (linkedReservations int, err error)
}

type service struct {
	repo         Repository
	reservations ReservationCounter
	newID        func() string
}

func NewService(repo Repository, reservations ReservationCounter) Service {
	return &service{
		repo:         repo,
		reservations: reservations,
		newID:        uuid.NewString,
	}
}

func (s *service) Create(ctx context.Context, name string) (*Room, error) {
	return s.repo.Create(ctx, s.newID(), name)
}

func (s *service) List(ctx context.Context) ([]Room, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Rename(ctx context.Context, id, name string) (*Room, error) {
	return s.repo.UpdateName(ctx, id, name)
}

// Delete removes the room and reports how many reservations still
// reference it. Those reservations stay; they only lose the display
// name resolution.
func (s *service) Delete(ctx context.Context, id string) (int, error) {
	linked, err := s.reservations.CountByRoom(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, err
	}

	return linked, nil
}
