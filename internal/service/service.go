package service

import (
	"context"
	"time"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

type SettingsService interface {
	// GetSettings returns the current settings, served from cache when
	// fresh. Falls back to defaults when no settings record exists.
	GetSettings(ctx context.Context) (*entity.Settings, error)
	UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) (*entity.Settings, error)

	// Invalidate drops the cached settings so the next read hits the store.
	Invalidate()
}

type BookingService interface {
	// Основные операции
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResult, error)
	GetBooking(ctx context.Context, id int64) (*entity.Booking, error)
	TrackByContact(ctx context.Context, email, phone string) ([]*entity.Booking, error)

	// Доступность
	SlotAvailability(ctx context.Context, date string) ([]*entity.SlotAvailability, error)
	BookingWindow(ctx context.Context) (*entity.BookingWindow, error)

	// Административные операции
	GetBookingsByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)
	GetAllBookings(ctx context.Context) ([]*entity.Booking, error)
	GetRecentBookings(ctx context.Context, limit int) ([]*entity.Booking, error)
}

// TaskPublisher интерфейс для публикации задач в очередь
type TaskPublisher interface {
	Publish(ctx context.Context, task *Task) error
}

// Task представляет задачу для очереди
type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	ExecuteAt  time.Time              `json:"execute_at"`
	MaxRetries int                    `json:"max_retries"`
	Attempts   int                    `json:"attempts"`
}

// Константы типов задач
const (
	TaskTypePendingFollowup = "pending_booking_followup"
	TaskTypeBookingNotice   = "booking_notice"
)
