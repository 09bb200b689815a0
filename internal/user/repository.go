package user

import (
	"context"
	"database/sql"
	"errors"

	"quincho/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u User) (*User, error) {
	query := `
		INSERT INTO users (id, email, name, surname, department, pin_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, name, surname, department, pin_hash, role, created_at
	`

	var created User
	err := r.db.GetContext(ctx, &created, query,
		u.ID, u.Email, u.Name, u.Surname, u.Department, u.PINHash, u.Role)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, name, surname, department, pin_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, name, surname, department, pin_hash, role, created_at
		FROM users
		WHERE id = $1
	`

	var u User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	return db.Exists(ctx, r.db, query, email)
}

func (r *repository) GetAll(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, email, name, surname, department, pin_hash, role, created_at
		FROM users
		ORDER BY created_at ASC
	`

	var users []User
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *repository) Update(ctx context.Context, u User) (*User, error) {
	query := `
		UPDATE users
		SET name = $2, surname = $3, department = $4, pin_hash = $5, role = $6
		WHERE id = $1
		RETURNING id, email, name, surname, department, pin_hash, role, created_at
	`

	var updated User
	err := r.db.GetContext(ctx, &updated, query,
		u.ID, u.Name, u.Surname, u.Department, u.PINHash, u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
