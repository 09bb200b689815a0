package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quincho/internal/api"
	"quincho/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID string, req CreateReservationRequest) (*Reservation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockService) Cancel(ctx context.Context, reservationID, requestingUserID string, isAdmin bool) error {
	args := m.Called(ctx, reservationID, requestingUserID, isAdmin)
	return args.Error(0)
}

func (m *MockService) ListMine(ctx context.Context, userID string) ([]Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockService) ListPublic(ctx context.Context) ([]Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockService) ListDetailed(ctx context.Context, f Filter) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

func (m *MockService) RemoveForUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

const handlerTestSecret = "handler-test-secret"

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(svc)

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware(handlerTestSecret))
	{
		protected.POST("/reservations", h.Create)
		protected.POST("/reservations/:reservationID/cancel", h.Cancel)
		protected.GET("/reservations/mine", h.ListMine)
	}

	return router
}

func bearerToken(t *testing.T, userID, role string) string {
	token, err := auth.GenerateAccessToken(userID, "test@example.com", role, handlerTestSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHandlerCreateConflict(t *testing.T) {
	svc := new(MockService)
	router := newTestRouter(svc)

	svc.On("Create", mock.Anything, "u-1", mock.Anything).
		Return(nil, &ConflictError{BlockingIDs: []string{"r1", "r2"}})

	body, _ := json.Marshal(CreateReservationRequest{
		RoomID: "R1",
		Date:   "2030-01-15",
		Slots:  []string{"09:00"},
	})

	req := httptest.NewRequest("POST", "/reservations", bytes.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, "u-1", auth.RoleMember))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp api.ConflictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"r1", "r2"}, resp.BlockingIDs)
}

func TestHandlerCreateSuccess(t *testing.T) {
	svc := new(MockService)
	router := newTestRouter(svc)

	svc.On("Create", mock.Anything, "u-1", mock.Anything).
		Return(&Reservation{ID: "res-1", UserID: "u-1", RoomID: "R1", Date: "2030-01-15"}, nil)

	body, _ := json.Marshal(CreateReservationRequest{
		RoomID: "R1",
		Date:   "2030-01-15",
		Slots:  []string{"09:00"},
	})

	req := httptest.NewRequest("POST", "/reservations", bytes.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, "u-1", auth.RoleMember))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "res-1", created.ID)
}

func TestHandlerCreateMissingFields(t *testing.T) {
	svc := new(MockService)
	router := newTestRouter(svc)

	req := httptest.NewRequest("POST", "/reservations", bytes.NewReader([]byte(`{"room_id":"R1"}`)))
	req.Header.Set("Authorization", bearerToken(t, "u-1", auth.RoleMember))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlerCancelForbidden(t *testing.T) {
	svc := new(MockService)
	router := newTestRouter(svc)

	svc.On("Cancel", mock.Anything, "res-1", "u-2", false).
		Return(&ForbiddenError{ReservationID: "res-1", RequestingUserID: "u-2"})

	req := httptest.NewRequest("POST", "/reservations/res-1/cancel", nil)
	req.Header.Set("Authorization", bearerToken(t, "u-2", auth.RoleMember))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandlerCancelNotFound(t *testing.T) {
	svc := new(MockService)
	router := newTestRouter(svc)

	svc.On("Cancel", mock.Anything, "missing", "u-1", false).
		Return(&NotFoundError{ReservationID: "missing"})

	req := httptest.NewRequest("POST", "/reservations/missing/cancel", nil)
	req.Header.Set("Authorization", bearerToken(t, "u-1", auth.RoleMember))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerCancelAsAdmin(t *testing.T) {
	svc := new(MockService)
	router := newTestRouter(svc)

	svc.On("Cancel", mock.Anything, "res-1", "admin-1", true).Return(nil)

	req := httptest.NewRequest("POST", "/reservations/res-1/cancel", nil)
	req.Header.Set("Authorization", bearerToken(t, "admin-1", auth.RoleAdmin))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandlerListMine(t *testing.T) {
	svc := new(MockService)
	router := newTestRouter(svc)

	svc.On("ListMine", mock.Anything, "u-1").
		Return([]Reservation{{ID: "res-1", UserID: "u-1"}}, nil)

	req := httptest.NewRequest("GET", "/reservations/mine", nil)
	req.Header.Set("Authorization", bearerToken(t, "u-1", auth.RoleMember))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var reservations []Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reservations))
	require.Len(t, reservations, 1)
	assert.Equal(t, "res-1", reservations[0].ID)
}
