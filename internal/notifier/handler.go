package notifier

import (
	"net/http"

	"quincho/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type StatusResponse struct {
	Enabled     bool  `json:"enabled"`
	QueueLength int64 `json:"queue_length"`
}

type ToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// GetStatus godoc
// @Summary      Notification status
// @Description  Returns whether admin notifications are enabled and the queue length. Admin only.
// @Tags         notifications
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /admin/notifications [get]
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, StatusResponse{
		Enabled:     h.svc.Enabled(ctx),
		QueueLength: h.svc.QueueLength(ctx),
	})
}

// Toggle godoc
// @Summary      Toggle notifications
// @Description  Enables or disables admin notifications. Admin only.
// @Tags         notifications
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ToggleRequest  true  "Desired state"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/notifications [put]
func (h *Handler) Toggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "enabled is required"})
		return
	}

	ctx := c.Request.Context()
	if err := h.svc.SetEnabled(ctx, *req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update notification state"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Enabled:     *req.Enabled,
		QueueLength: h.svc.QueueLength(ctx),
	})
}
