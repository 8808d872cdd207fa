package entity

import (
	"time"
)

// DateLayout is the wire format for all booking dates.
const DateLayout = "2006-01-02"

// Defaults applied when the settings document is missing fields,
// so the booking flow keeps working with partial configuration.
const (
	DefaultDays         = 30
	DefaultRaftsPerSlot = 5
	DefaultCapacity     = 6
)

type Settings struct {
	RaftsPerSlot int       `json:"rafts_per_slot" db:"rafts_per_slot"`
	Capacity     int       `json:"capacity" db:"capacity"`
	TimeSlots    []string  `json:"time_slots" db:"time_slots"`
	StartDate    string    `json:"start_date,omitempty" db:"start_date"`
	EndDate      string    `json:"end_date,omitempty" db:"end_date"`
	Days         int       `json:"days" db:"days"`
	BaseRate     float64   `json:"base_rate" db:"base_rate"`
	WeekendRate  float64   `json:"weekend_rate" db:"weekend_rate"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns a usable configuration when no settings
// record exists yet.
func DefaultSettings() *Settings {
	s := &Settings{
		TimeSlots: []string{"morning", "afternoon"},
	}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills in missing numeric fields in place.
func (s *Settings) ApplyDefaults() {
	if s.Days <= 0 {
		s.Days = DefaultDays
	}
	if s.RaftsPerSlot <= 0 {
		s.RaftsPerSlot = DefaultRaftsPerSlot
	}
	if s.Capacity <= 0 {
		s.Capacity = DefaultCapacity
	}
}

// MaxPeoplePerSlot is the hard ceiling for one slot: every raft seats
// Capacity people plus one overflow seat.
func (s *Settings) MaxPeoplePerSlot() int {
	return s.RaftsPerSlot * (s.Capacity + 1)
}

// HasSlot reports whether slot is one of the configured time slots.
func (s *Settings) HasSlot(slot string) bool {
	for _, ts := range s.TimeSlots {
		if ts == slot {
			return true
		}
	}
	return false
}

// BookingWindow is the inclusive date range within which new bookings
// may be placed.
type BookingWindow struct {
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}

// Window computes the allowed booking window for the given day.
// Configured start/end dates win; otherwise the window is
// [today, today+Days]. The lower bound never precedes today.
func (s *Settings) Window(today time.Time) BookingWindow {
	today = truncateToDay(today)

	if s.StartDate != "" && s.EndDate != "" {
		start, errStart := time.Parse(DateLayout, s.StartDate)
		end, errEnd := time.Parse(DateLayout, s.EndDate)
		if errStart == nil && errEnd == nil {
			if start.Before(today) {
				start = today
			}
			return BookingWindow{MinDate: start, MaxDate: end}
		}
	}

	return BookingWindow{
		MinDate: today,
		MaxDate: today.AddDate(0, 0, s.Days),
	}
}

// Contains reports whether d falls inside the window, bounds included.
func (w BookingWindow) Contains(d time.Time) bool {
	d = truncateToDay(d)
	return !d.Before(w.MinDate) && !d.After(w.MaxDate)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
