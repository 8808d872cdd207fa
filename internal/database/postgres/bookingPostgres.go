package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, name, email, phone, booking_date, slot, group_size,
       status, raft_allocations, amount_per_person, total_amount, created_at`

// Create inserts a booking record and fills in its generated id and
// creation time. Records never change after insertion.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	allocations, err := json.Marshal(booking.RaftAllocations)
	if err != nil {
		return fmt.Errorf("failed to marshal raft allocations: %w", err)
	}

	query := `
		INSERT INTO bookings (name, email, phone, booking_date, slot, group_size,
		                      status, raft_allocations, amount_per_person, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.BookingDate,
		booking.Slot,
		booking.GroupSize,
		booking.Status,
		allocations,
		booking.AmountPerPerson,
		booking.TotalAmount,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}

	return booking, nil
}

// FindLatestByContact returns the contact's bookings newest first.
func (r *bookingRepository) FindLatestByContact(ctx context.Context, email, phone string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE email = $1 AND phone = $2
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, email, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings by contact: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) GetByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by status: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) GetAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetRecent returns the newest bookings, most recent first.
func (r *bookingRepository) GetRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	var allocations []byte

	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Email,
		&booking.Phone,
		&booking.BookingDate,
		&booking.Slot,
		&booking.GroupSize,
		&booking.Status,
		&allocations,
		&booking.AmountPerPerson,
		&booking.TotalAmount,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(allocations) > 0 {
		if err := json.Unmarshal(allocations, &booking.RaftAllocations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal raft allocations: %w", err)
		}
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
