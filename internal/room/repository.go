package room

import (
	"context"
	"database/sql"
	"errors"

	"quincho/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrRoomNotFound = errors.New("room not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, id, name string) (*Room, error) {
	query := `
		INSERT INTO rooms (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, id, name)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Room, error) {
	query := `
		SELECT id, name, created_at
		FROM rooms
		ORDER BY created_at ASC
	`

	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Room, error) {
	query := `
		SELECT id, name, created_at
		FROM rooms
		WHERE id = $1
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return &room, nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = $1)`
	return db.Exists(ctx, r.db, query, id)
}

func (r *repository) UpdateName(ctx context.Context, id, name string) (*Room, error) {
	query := `
		UPDATE rooms
		SET name = $2
		WHERE id = $1
		RETURNING id, name, created_at
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, id, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return &room, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM rooms WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRoomNotFound
	}

	return nil
}
