package repository

import (
	"context"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

type SettingsRepository interface {
	Load(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}

type RaftRepository interface {
	// EnsureRafts guarantees that exactly raftsPerSlot raft rows exist
	// for the (day, slot) pair. Safe to call repeatedly.
	EnsureRafts(ctx context.Context, day, slot string, raftsPerSlot int) error
	GetForSlot(ctx context.Context, day, slot string) ([]*entity.Raft, error)

	// AllocateSeats atomically assigns groupSize seats across the rafts
	// of (day, slot). Returns entity.ErrSlotCapacityExhausted without
	// mutating occupancy when the slot cannot hold the group.
	AllocateSeats(ctx context.Context, day, slot string, groupSize, capacity int) ([]entity.RaftAllocation, error)

	// OccupancyBySlot sums raft occupancy per slot for one day.
	OccupancyBySlot(ctx context.Context, day string) (map[string]int, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)

	// FindLatestByContact returns the contact's bookings newest first.
	FindLatestByContact(ctx context.Context, email, phone string) ([]*entity.Booking, error)

	GetByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)
	GetAll(ctx context.Context) ([]*entity.Booking, error)
	GetRecent(ctx context.Context, limit int) ([]*entity.Booking, error)
}
