package postgres

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lerarestechnologies-gif/rafting/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY,
			rafts_per_slot INTEGER NOT NULL,
			capacity INTEGER NOT NULL,
			time_slots TEXT[] NOT NULL,
			start_date VARCHAR(10) DEFAULT '',
			end_date VARCHAR(10) DEFAULT '',
			days INTEGER NOT NULL,
			base_rate NUMERIC(10,2) NOT NULL DEFAULT 0,
			weekend_rate NUMERIC(10,2) NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS rafts (
			id SERIAL PRIMARY KEY,
			day VARCHAR(10) NOT NULL,
			slot VARCHAR(50) NOT NULL,
			raft_no INTEGER NOT NULL,
			occupancy INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (day, slot, raft_no)
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			booking_date VARCHAR(10) NOT NULL,
			slot VARCHAR(50) NOT NULL,
			group_size INTEGER NOT NULL,
			status VARCHAR(20) NOT NULL,
			raft_allocations JSONB NOT NULL DEFAULT '[]',
			amount_per_person NUMERIC(10,2) NOT NULL DEFAULT 0,
			total_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_rafts_day_slot ON rafts(day, slot)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_contact ON bookings(email, phone, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_date_slot ON bookings(booking_date, slot)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
