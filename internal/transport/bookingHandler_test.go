package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
	"github.com/lerarestechnologies-gif/rafting/internal/service"
)

type stubBookingService struct {
	createResult *service.BookingResult
	createErr    error
	booking      *entity.Booking
	bookingErr   error
	tracked      []*entity.Booking
	trackedErr   error
	recent       []*entity.Booking
	recentLimit  int
}

func (s *stubBookingService) CreateBooking(context.Context, *service.CreateBookingRequest) (*service.BookingResult, error) {
	return s.createResult, s.createErr
}

func (s *stubBookingService) GetBooking(context.Context, int64) (*entity.Booking, error) {
	return s.booking, s.bookingErr
}

func (s *stubBookingService) TrackByContact(context.Context, string, string) ([]*entity.Booking, error) {
	return s.tracked, s.trackedErr
}

func (s *stubBookingService) SlotAvailability(context.Context, string) ([]*entity.SlotAvailability, error) {
	return nil, nil
}

func (s *stubBookingService) BookingWindow(context.Context) (*entity.BookingWindow, error) {
	return &entity.BookingWindow{}, nil
}

func (s *stubBookingService) GetBookingsByStatus(context.Context, entity.BookingStatus) ([]*entity.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) GetAllBookings(context.Context) ([]*entity.Booking, error) {
	return s.tracked, nil
}

func (s *stubBookingService) GetRecentBookings(_ context.Context, limit int) ([]*entity.Booking, error) {
	s.recentLimit = limit
	return s.recent, nil
}

func newTestRouter(svc service.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewBookingHandler(svc)

	router := gin.New()
	router.POST("/api/v1/bookings", handler.CreateBooking)
	router.GET("/api/v1/bookings/:id", handler.GetBooking)
	router.POST("/api/v1/bookings/track", handler.TrackBookings)
	router.GET("/api/v1/admin/bookings/recent", handler.GetRecentBookings)
	return router
}

func TestCreateBookingHandler_Created(t *testing.T) {
	svc := &stubBookingService{
		createResult: &service.BookingResult{
			Booking: &entity.Booking{
				ID:     1,
				Status: entity.BookingStatusConfirmed,
			},
			Message: "Booking confirmed",
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "Alice",
		"email":        "alice@example.com",
		"phone":        "+15550001111",
		"booking_date": "2026-07-15",
		"slot":         "morning",
		"group_size":   4,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Booking confirmed", resp.Message)
}

func TestCreateBookingHandler_MalformedBody(t *testing.T) {
	router := newTestRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte(`{"email":"bad"`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingHandler_ValidationError(t *testing.T) {
	svc := &stubBookingService{createErr: entity.ErrDateOutOfWindow}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"name":         "Alice",
		"email":        "alice@example.com",
		"phone":        "+15550001111",
		"booking_date": "2030-01-01",
		"slot":         "morning",
		"group_size":   4,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "window")
}

func TestGetBookingHandler_NotFound(t *testing.T) {
	svc := &stubBookingService{bookingErr: entity.ErrBookingNotFound}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/42", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookingHandler_InvalidID(t *testing.T) {
	router := newTestRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecentBookingsHandler(t *testing.T) {
	svc := &stubBookingService{
		recent: []*entity.Booking{
			{ID: 3, BookingDate: "2026-07-17"},
			{ID: 2, BookingDate: "2026-07-16"},
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/recent?limit=5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, svc.recentLimit)

	var resp struct {
		Success bool              `json:"success"`
		Data    []*entity.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(3), resp.Data[0].ID)
}

func TestGetRecentBookingsHandler_LimitClamped(t *testing.T) {
	svc := &stubBookingService{}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/recent?limit=500", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, svc.recentLimit)
}

func TestTrackBookingsHandler(t *testing.T) {
	svc := &stubBookingService{
		tracked: []*entity.Booking{
			{ID: 2, BookingDate: "2026-07-16"},
			{ID: 1, BookingDate: "2026-07-15"},
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]string{
		"email": "alice@example.com",
		"phone": "+15550001111",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/track", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    []*entity.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Data[0].ID)
}
