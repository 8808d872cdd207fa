package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

func newSettingsTestDB(t *testing.T) (*settingsRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &settingsRepository{db: db}, mock
}

func TestSettingsRepository_Load(t *testing.T) {
	repo, mock := newSettingsTestDB(t)

	rows := sqlmock.NewRows([]string{
		"rafts_per_slot", "capacity", "time_slots", "start_date", "end_date",
		"days", "base_rate", "weekend_rate", "updated_at",
	}).AddRow(5, 6, "{morning,afternoon}", "", "", 30, 120.0, 150.0, time.Now())

	mock.ExpectQuery(`SELECT rafts_per_slot, capacity, time_slots`).
		WillReturnRows(rows)

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, settings.RaftsPerSlot)
	assert.Equal(t, 6, settings.Capacity)
	assert.Equal(t, []string{"morning", "afternoon"}, settings.TimeSlots)
	assert.Equal(t, 120.0, settings.BaseRate)
	assert.Equal(t, 150.0, settings.WeekendRate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Load_NotFound(t *testing.T) {
	repo, mock := newSettingsTestDB(t)

	mock.ExpectQuery(`SELECT rafts_per_slot, capacity, time_slots`).
		WillReturnRows(sqlmock.NewRows([]string{
			"rafts_per_slot", "capacity", "time_slots", "start_date", "end_date",
			"days", "base_rate", "weekend_rate", "updated_at",
		}))

	_, err := repo.Load(context.Background())
	assert.True(t, errors.Is(err, entity.ErrSettingsNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Save(t *testing.T) {
	repo, mock := newSettingsTestDB(t)

	settings := &entity.Settings{
		RaftsPerSlot: 4,
		Capacity:     8,
		TimeSlots:    []string{"morning", "afternoon", "evening"},
		StartDate:    "2026-07-01",
		EndDate:      "2026-08-31",
		Days:         30,
		BaseRate:     100,
		WeekendRate:  130,
	}

	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs(4, 8, pq.Array(settings.TimeSlots), "2026-07-01", "2026-08-31", 30, 100.0, 130.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), settings)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
