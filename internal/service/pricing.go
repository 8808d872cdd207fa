package service

import (
	"fmt"
	"time"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

// Amount holds the price computed for one booking.
type Amount struct {
	PerPerson float64 `json:"amount_per_person"`
	Total     float64 `json:"total_amount"`
}

// CalculateTotalAmount determines the per-person rate applicable to the
// booking date and multiplies it by the group size. Saturday and Sunday
// trips use the weekend rate when one is configured. Pure function.
func CalculateTotalAmount(settings *entity.Settings, date string, groupSize int) (*Amount, error) {
	day, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidBookingDate, date)
	}

	rate := settings.BaseRate
	if weekday := day.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		if settings.WeekendRate > 0 {
			rate = settings.WeekendRate
		}
	}

	return &Amount{
		PerPerson: rate,
		Total:     rate * float64(groupSize),
	}, nil
}
