package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusPending   BookingStatus = "Pending"
)

// RaftAllocation records how many seats of one raft a booking took.
type RaftAllocation struct {
	RaftNo int `json:"raft_no"`
	Seats  int `json:"seats"`
}

// Booking is an immutable record of one submitted booking request.
// It enters its terminal status (Confirmed or Pending) at creation
// time; there is no update or cancel flow.
type Booking struct {
	ID              int64            `json:"id" db:"id"`
	Name            string           `json:"name" db:"name"`
	Email           string           `json:"email" db:"email"`
	Phone           string           `json:"phone" db:"phone"`
	BookingDate     string           `json:"booking_date" db:"booking_date"`
	Slot            string           `json:"slot" db:"slot"`
	GroupSize       int              `json:"group_size" db:"group_size"`
	Status          BookingStatus    `json:"status" db:"status"`
	RaftAllocations []RaftAllocation `json:"raft_allocations" db:"raft_allocations"`
	AmountPerPerson float64          `json:"amount_per_person" db:"amount_per_person"`
	TotalAmount     float64          `json:"total_amount" db:"total_amount"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// SeatsAllocated sums the seats across all raft allocations.
func (b *Booking) SeatsAllocated() int {
	total := 0
	for _, a := range b.RaftAllocations {
		total += a.Seats
	}
	return total
}
