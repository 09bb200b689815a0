package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type ConflictResponse struct {
	Error       string   `json:"error" example:"reservation conflicts with existing bookings"`
	BlockingIDs []string `json:"blocking_ids"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
