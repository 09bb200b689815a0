package room

import "time"

// Room is an independently schedulable space. Rooms never interact;
// each one is its own scheduling domain.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

type DeleteRoomResponse struct {
	Message            string `json:"message" example:"Room deleted"`
	LinkedReservations int    `json:"linked_reservations" example:"2"`
}
