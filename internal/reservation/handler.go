package reservation

import (
	"errors"
	"net/http"

	"quincho/internal/api"
	"quincho/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
// @Summary      Create reservation
// @Description  Admits a reservation for a room, date and set of time slots.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation data"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ConflictResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /reservations [post]
func (h *Handler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		var conflictErr *ConflictError
		switch {
		case errors.As(err, &conflictErr):
			c.JSON(http.StatusConflict, api.ConflictResponse{
				Error:       "reservation conflicts with existing bookings",
				BlockingIDs: conflictErr.BlockingIDs,
			})
		case errors.Is(err, ErrInvalidDate),
			errors.Is(err, ErrPastDate),
			errors.Is(err, ErrEmptySlots),
			errors.Is(err, ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrRoomUnknown):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create reservation"})
		}
		return
	}

	c.JSON(http.StatusCreated, res)
}

// Cancel godoc
// @Summary      Cancel reservation
// @Description  Cancels a reservation. Owners cancel their own; admins cancel any.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      string  true  "Reservation ID"
// @Success      200            {object}  api.MessageResponse
// @Failure      403            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Failure      500            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	reservationID := c.Param("reservationID")

	err := h.svc.Cancel(c.Request.Context(), reservationID, userID, auth.IsAdmin(c))
	if err != nil {
		var notFoundErr *NotFoundError
		var forbiddenErr *ForbiddenError
		switch {
		case errors.As(err, &notFoundErr):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Reservation not found"})
		case errors.As(err, &forbiddenErr):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own reservations"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation cancelled successfully"})
}

// ListMine godoc
// @Summary      List my reservations
// @Description  Returns reservations owned by the authenticated user.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      500  {object}  api.ErrorResponse
// @Router       /reservations/mine [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	reservations, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListPublic godoc
// @Summary      List all reservations
// @Description  Returns every reservation so users can see room occupancy.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      500  {object}  api.ErrorResponse
// @Router       /reservations [get]
func (h *Handler) ListPublic(c *gin.Context) {
	reservations, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListSlots godoc
// @Summary      List bookable time slots
// @Description  Returns every slot label of the 27-hour logical booking day.
// @Tags         reservations
// @Produce      json
// @Success      200  {array}  string
// @Router       /slots [get]
func (h *Handler) ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, AllSlots())
}

// ListAdmin godoc
// @Summary      List reservations with details
// @Description  Returns reservations joined with user and room details. Admin only.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        date     query     string  false  "Filter by date (YYYY-MM-DD)"
// @Param        room_id  query     string  false  "Filter by room ID"
// @Param        user     query     string  false  "Filter by user id, email, name or department"
// @Success      200      {array}   ReservationWithDetails
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/reservations [get]
func (h *Handler) ListAdmin(c *gin.Context) {
	f := Filter{
		Date:   c.Query("date"),
		RoomID: c.Query("room_id"),
		User:   c.Query("user"),
	}

	reservations, err := h.svc.ListDetailed(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}
