package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

func TestCalculateTotalAmount(t *testing.T) {
	settings := &entity.Settings{
		BaseRate:    120,
		WeekendRate: 150,
	}

	tests := []struct {
		name          string
		date          string
		groupSize     int
		wantPerPerson float64
		wantTotal     float64
	}{
		{
			name:          "weekday uses base rate",
			date:          "2026-07-15", // Wednesday
			groupSize:     4,
			wantPerPerson: 120,
			wantTotal:     480,
		},
		{
			name:          "saturday uses weekend rate",
			date:          "2026-07-18",
			groupSize:     3,
			wantPerPerson: 150,
			wantTotal:     450,
		},
		{
			name:          "sunday uses weekend rate",
			date:          "2026-07-19",
			groupSize:     1,
			wantPerPerson: 150,
			wantTotal:     150,
		},
		{
			name:          "zero group size yields zero total",
			date:          "2026-07-15",
			groupSize:     0,
			wantPerPerson: 120,
			wantTotal:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := CalculateTotalAmount(settings, tt.date, tt.groupSize)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPerPerson, amount.PerPerson)
			assert.Equal(t, tt.wantTotal, amount.Total)
		})
	}
}

func TestCalculateTotalAmount_NoWeekendRate(t *testing.T) {
	settings := &entity.Settings{BaseRate: 100}

	amount, err := CalculateTotalAmount(settings, "2026-07-18", 2)
	require.NoError(t, err)
	assert.Equal(t, 100.0, amount.PerPerson)
	assert.Equal(t, 200.0, amount.Total)
}

func TestCalculateTotalAmount_InvalidDate(t *testing.T) {
	settings := &entity.Settings{BaseRate: 100}

	amount, err := CalculateTotalAmount(settings, "15-07-2026", 2)
	assert.ErrorIs(t, err, entity.ErrInvalidBookingDate)
	assert.Nil(t, amount)
}
