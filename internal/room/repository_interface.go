package room

import "context"

type Repository interface {
	Create(ctx context.Context, id, name string) (*Room, error)
	GetAll(ctx context.Context) ([]Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateName(ctx context.Context, id, name string) (*Room, error)
	Delete(ctx context.Context, id string) error
}
