package entity

import (
	"time"
)

// Raft is one physical raft scheduled for a (day, slot) pair.
// Rows are created on demand the first time a slot is requested and
// are never deleted; occupancy grows monotonically as groups are
// allocated, up to capacity plus one overflow seat.
type Raft struct {
	ID        int64     `json:"id" db:"id"`
	Day       string    `json:"day" db:"day"`
	Slot      string    `json:"slot" db:"slot"`
	RaftNo    int       `json:"raft_no" db:"raft_no"`
	Occupancy int       `json:"occupancy" db:"occupancy"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SlotAvailability summarizes remaining standard capacity for one
// time slot on a given day.
type SlotAvailability struct {
	Slot        string  `json:"slot"`
	Available   int     `json:"available"`
	PercentFull float64 `json:"percent_full"`
}
