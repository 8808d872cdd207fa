package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
	"github.com/lerarestechnologies-gif/rafting/internal/service"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// SuccessResponse представляет успешный ответ
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// TrackBookingRequest представляет запрос на поиск бронирований
type TrackBookingRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: result.Message,
		Data:    result.Booking,
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid booking ID",
		})
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booking retrieved successfully",
		Data:    booking,
	})
}

// TrackBookings возвращает бронирования контакта, сначала последние
func (h *BookingHandler) TrackBookings(c *gin.Context) {
	var req TrackBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	bookings, err := h.bookingService.TrackByContact(c.Request.Context(), req.Email, req.Phone)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Bookings retrieved successfully",
		Data:    bookings,
		Meta: map[string]interface{}{
			"total": len(bookings),
		},
	})
}

// GetAvailability возвращает доступность слотов на дату
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Query parameter 'date' is required",
		})
		return
	}

	availability, err := h.bookingService.SlotAvailability(c.Request.Context(), date)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	window, err := h.bookingService.BookingWindow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Availability retrieved successfully",
		Data:    availability,
		Meta: map[string]interface{}{
			"date":     date,
			"min_date": window.MinDate.Format(entity.DateLayout),
			"max_date": window.MaxDate.Format(entity.DateLayout),
		},
	})
}

// GetAllBookings возвращает все бронирования
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	// Получаем параметры пагинации
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	status := c.Query("status")

	ctx := c.Request.Context()

	var bookings []*entity.Booking
	if status != "" {
		bookingStatus, err := h.parseBookingStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Success: false,
				Error:   "Invalid booking status",
			})
			return
		}

		bookings, err = h.bookingService.GetBookingsByStatus(ctx, bookingStatus)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Success: false,
				Error:   "Failed to get bookings by status: " + err.Error(),
			})
			return
		}
	} else {
		bookings, err = h.bookingService.GetAllBookings(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Success: false,
				Error:   "Failed to get all bookings: " + err.Error(),
			})
			return
		}
	}

	// Применяем пагинацию
	start := offset
	if start > len(bookings) {
		start = len(bookings)
	}
	end := start + limit
	if end > len(bookings) {
		end = len(bookings)
	}

	paginatedBookings := bookings[start:end]

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Bookings retrieved successfully",
		Data:    paginatedBookings,
		Meta: map[string]interface{}{
			"total":    len(bookings),
			"limit":    limit,
			"offset":   offset,
			"has_more": end < len(bookings),
		},
	})
}

// GetRecentBookings возвращает последние бронирования
func (h *BookingHandler) GetRecentBookings(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	bookings, err := h.bookingService.GetRecentBookings(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Failed to get recent bookings: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Recent bookings retrieved successfully",
		Data:    bookings,
		Meta: map[string]interface{}{
			"limit": limit,
			"total": len(bookings),
		},
	})
}

// parseBookingStatus парсит строку в статус бронирования
func (h *BookingHandler) parseBookingStatus(status string) (entity.BookingStatus, error) {
	switch status {
	case "pending", "Pending":
		return entity.BookingStatusPending, nil
	case "confirmed", "Confirmed":
		return entity.BookingStatusConfirmed, nil
	default:
		return "", fmt.Errorf("invalid booking status: %s", status)
	}
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrMissingContactInfo),
		errors.Is(err, entity.ErrInvalidBookingDate),
		errors.Is(err, entity.ErrDateOutOfWindow),
		errors.Is(err, entity.ErrUnknownSlot),
		errors.Is(err, entity.ErrInvalidGroupSize),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
