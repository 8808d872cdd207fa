package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

func newBookingTestDB(t *testing.T) (*bookingRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &bookingRepository{db: db}, mock
}

func bookingRow(id int64, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "booking_date", "slot", "group_size",
		"status", "raft_allocations", "amount_per_person", "total_amount", "created_at",
	}).AddRow(
		id, "Alice", "alice@example.com", "+15550001111", "2026-07-15", "morning", 4,
		string(entity.BookingStatusConfirmed), []byte(`[{"raft_no":1,"seats":4}]`), 120.0, 480.0, createdAt,
	)
}

func TestBookingRepository_Create(t *testing.T) {
	repo, mock := newBookingTestDB(t)
	now := time.Now()

	booking := &entity.Booking{
		Name:            "Alice",
		Email:           "alice@example.com",
		Phone:           "+15550001111",
		BookingDate:     "2026-07-15",
		Slot:            "morning",
		GroupSize:       4,
		Status:          entity.BookingStatusConfirmed,
		RaftAllocations: []entity.RaftAllocation{{RaftNo: 1, Seats: 4}},
		AmountPerPerson: 120,
		TotalAmount:     480,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs(
			"Alice", "alice@example.com", "+15550001111", "2026-07-15", "morning", 4,
			entity.BookingStatusConfirmed, []byte(`[{"raft_no":1,"seats":4}]`), 120.0, 480.0,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	err := repo.Create(context.Background(), booking)
	require.NoError(t, err)
	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, now, booking.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	repo, mock := newBookingTestDB(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(bookingRow(7, now))

	booking, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), booking.ID)
	assert.Equal(t, entity.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, []entity.RaftAllocation{{RaftNo: 1, Seats: 4}}, booking.RaftAllocations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newBookingTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	booking, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	assert.Nil(t, booking)
}

func TestBookingRepository_FindLatestByContact(t *testing.T) {
	repo, mock := newBookingTestDB(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "booking_date", "slot", "group_size",
		"status", "raft_allocations", "amount_per_person", "total_amount", "created_at",
	}).
		AddRow(int64(9), "Alice", "alice@example.com", "+15550001111", "2026-07-20", "afternoon", 2,
			string(entity.BookingStatusPending), []byte(`[]`), 120.0, 240.0, now).
		AddRow(int64(7), "Alice", "alice@example.com", "+15550001111", "2026-07-15", "morning", 4,
			string(entity.BookingStatusConfirmed), []byte(`[{"raft_no":1,"seats":4}]`), 120.0, 480.0, now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1 AND phone = $2`)).
		WithArgs("alice@example.com", "+15550001111").
		WillReturnRows(rows)

	bookings, err := repo.FindLatestByContact(context.Background(), "alice@example.com", "+15550001111")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(9), bookings[0].ID)
	assert.Equal(t, entity.BookingStatusPending, bookings[0].Status)
	assert.Empty(t, bookings[0].RaftAllocations)
	assert.Equal(t, int64(7), bookings[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindLatestByContact_NoMatches(t *testing.T) {
	repo, mock := newBookingTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1 AND phone = $2`)).
		WithArgs("nobody@example.com", "+15550009999").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "booking_date", "slot", "group_size",
			"status", "raft_allocations", "amount_per_person", "total_amount", "created_at",
		}))

	bookings, err := repo.FindLatestByContact(context.Background(), "nobody@example.com", "+15550009999")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingRepository_GetByStatus(t *testing.T) {
	repo, mock := newBookingTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = $1`)).
		WithArgs(entity.BookingStatusPending).
		WillReturnRows(bookingRow(3, time.Now()))

	bookings, err := repo.GetByStatus(context.Background(), entity.BookingStatusPending)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(3), bookings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
