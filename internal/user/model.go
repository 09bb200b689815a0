package user

import "time"

type User struct {
	ID         string    `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	Name       string    `db:"name" json:"name"`
	Surname    string    `db:"surname" json:"surname"`
	Department string    `db:"department" json:"department"`
	PINHash    string    `db:"pin_hash" json:"-"`
	Role       string    `db:"role" json:"role"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Surname    string `json:"surname" binding:"required"`
	Department string `json:"department" binding:"required"`
	PIN        string `json:"pin" binding:"required,len=4,numeric"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	PIN   string `json:"pin" binding:"required,len=4,numeric"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// UpdateProfileRequest carries the self-service profile fields. A
// zero-value field is left unchanged; PIN is optional and re-hashed
// when present.
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Department string `json:"department"`
	PIN        string `json:"pin" binding:"omitempty,len=4,numeric"`
}

// AdminUpdateRequest additionally allows changing the role.
type AdminUpdateRequest struct {
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Department string `json:"department"`
	PIN        string `json:"pin" binding:"omitempty,len=4,numeric"`
	Role       string `json:"role" binding:"omitempty,oneof=member admin"`
}

type DeleteUserResponse struct {
	Message             string `json:"message" example:"User deleted"`
	RemovedReservations int64  `json:"removed_reservations" example:"3"`
}
