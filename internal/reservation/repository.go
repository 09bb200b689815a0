package reservation

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListAll(ctx context.Context) ([]Reservation, error) {
	query := `
		SELECT id, user_id, room_id, date, slots, is_exclusive, created_at
		FROM reservations
		ORDER BY created_at ASC
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Reservation, error) {
	query := `
		SELECT id, user_id, room_id, date, slots, is_exclusive, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY date ASC, created_at ASC
	`

	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, userID)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) ListDetailed(ctx context.Context, f Filter) ([]ReservationWithDetails, error) {
	query := `
		SELECT
			res.id,
			res.user_id,
			res.room_id,
			res.date,
			res.slots,
			res.is_exclusive,
			res.created_at,
			COALESCE(rm.name, '') AS room_name,
			u.name AS user_name,
			u.surname AS user_surname,
			u.department AS user_department,
			u.email AS user_email
		FROM reservations res
		JOIN users u ON res.user_id = u.id
		LEFT JOIN rooms rm ON res.room_id = rm.id
		WHERE ($1 = '' OR res.date = $1)
		  AND ($2 = '' OR res.room_id = $2)
		  AND ($3 = '' OR res.user_id = $3
		       OR u.email ILIKE '%' || $3 || '%'
		       OR u.name ILIKE '%' || $3 || '%'
		       OR u.department ILIKE '%' || $3 || '%')
		ORDER BY res.date ASC, res.created_at ASC
	`

	var reservations []ReservationWithDetails
	err := r.db.SelectContext(ctx, &reservations, query, f.Date, f.RoomID, f.User)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) Insert(ctx context.Context, res Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, room_id, date, slots, is_exclusive, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		res.ID, res.UserID, res.RoomID, res.Date, res.Slots, res.IsExclusive, res.CreatedAt)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return &NotFoundError{ReservationID: id}
	}

	return nil
}

func (r *repository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	query := `DELETE FROM reservations WHERE user_id = $1`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *repository) CountByRoom(ctx context.Context, roomID string) (int, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE room_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, roomID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
