package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Load reads the single settings row. Returns entity.ErrSettingsNotFound
// when the row has never been saved.
func (r *settingsRepository) Load(ctx context.Context) (*entity.Settings, error) {
	query := `
		SELECT rafts_per_slot, capacity, time_slots, start_date, end_date,
		       days, base_rate, weekend_rate, updated_at
		FROM settings
		WHERE id = 1
	`

	var settings entity.Settings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.RaftsPerSlot,
		&settings.Capacity,
		pq.Array(&settings.TimeSlots),
		&settings.StartDate,
		&settings.EndDate,
		&settings.Days,
		&settings.BaseRate,
		&settings.WeekendRate,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &settings, nil
}

// Save upserts the single settings row.
func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	query := `
		INSERT INTO settings (id, rafts_per_slot, capacity, time_slots, start_date,
		                      end_date, days, base_rate, weekend_rate, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			rafts_per_slot = EXCLUDED.rafts_per_slot,
			capacity = EXCLUDED.capacity,
			time_slots = EXCLUDED.time_slots,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			days = EXCLUDED.days,
			base_rate = EXCLUDED.base_rate,
			weekend_rate = EXCLUDED.weekend_rate,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		settings.RaftsPerSlot,
		settings.Capacity,
		pq.Array(settings.TimeSlots),
		settings.StartDate,
		settings.EndDate,
		settings.Days,
		settings.BaseRate,
		settings.WeekendRate,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
