package reservation

import "context"

type Repository interface {
	ListAll(ctx context.Context) ([]Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]Reservation, error)
	ListDetailed(ctx context.Context, f Filter) ([]ReservationWithDetails, error)
	Insert(ctx context.Context, r Reservation) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	CountByRoom(ctx context.Context, roomID string) (int, error)
}
