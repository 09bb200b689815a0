package reservation

import (
	"time"

	"github.com/lib/pq"
)

// Reservation is a booking of one room for a set of hour slots on a
// single calendar date. Reservations are immutable once admitted;
// any change is a cancel-and-recreate.
type Reservation struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"user_id"`
	RoomID      string         `db:"room_id" json:"room_id"`
	Date        string         `db:"date" json:"date" example:"2024-06-01"`
	Slots       pq.StringArray `db:"slots" json:"slots" swaggertype:"array,string"`
	IsExclusive bool           `db:"is_exclusive" json:"is_exclusive"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

type ReservationWithDetails struct {
	Reservation
	RoomName       string `db:"room_name" json:"room_name"`
	UserName       string `db:"user_name" json:"user_name"`
	UserSurname    string `db:"user_surname" json:"user_surname"`
	UserDepartment string `db:"user_department" json:"user_department"`
	UserEmail      string `db:"user_email" json:"user_email"`
}

type CreateReservationRequest struct {
	RoomID      string   `json:"room_id" binding:"required"`
	Date        string   `json:"date" binding:"required" example:"2024-06-01"`
	Slots       []string `json:"slots" binding:"required,min=1"`
	IsExclusive bool     `json:"is_exclusive"`
}

// Filter narrows the admin reservation listing. Empty fields match
// everything. User matches the exact user id or a case-insensitive
// substring of the user's email, name or department.
type Filter struct {
	Date   string
	RoomID string
	User   string
}
