// Package allocator fits booking groups onto rafts for one (day, slot)
// pair. Every raft seats `capacity` people plus one overflow seat, so a
// slot with R rafts holds at most R*(capacity+1). Overflow seats are
// used strictly as a last resort.
package allocator

import (
	"github.com/lerarestechnologies-gif/rafting/internal/entity"
)

// Plan computes seat assignments for a group without mutating anything.
// Rafts must be ordered by raft number. The policy is deterministic:
//
//  1. the lowest-numbered raft whose standard seats fit the whole group;
//  2. otherwise, the lowest-numbered raft that fits the whole group once
//     its overflow seat is counted, keeping the group on one raft;
//  3. otherwise the group is split: standard seats are filled
//     lowest-number-first, then overflow seats lowest-number-first.
//
// The second return value is false when the slot cannot hold the group;
// in that case the assignments are nil and the caller must not change
// any occupancy.
func Plan(rafts []*entity.Raft, groupSize, capacity int) ([]entity.RaftAllocation, bool) {
	if groupSize < 1 || capacity < 1 || len(rafts) == 0 {
		return nil, false
	}

	// Whole group on one raft, standard seats only.
	for _, r := range rafts {
		if capacity-r.Occupancy >= groupSize {
			return []entity.RaftAllocation{{RaftNo: r.RaftNo, Seats: groupSize}}, true
		}
	}

	// Whole group on one raft using its overflow seat.
	for _, r := range rafts {
		if capacity+1-r.Occupancy >= groupSize {
			return []entity.RaftAllocation{{RaftNo: r.RaftNo, Seats: groupSize}}, true
		}
	}

	// Split across rafts: standard seats first, lowest number first.
	seats := make([]int, len(rafts))
	remaining := groupSize
	for i, r := range rafts {
		free := capacity - r.Occupancy
		if free <= 0 {
			continue
		}
		take := free
		if take > remaining {
			take = remaining
		}
		seats[i] = take
		remaining -= take
		if remaining == 0 {
			break
		}
	}

	// Overflow seats, one per raft, lowest number first.
	if remaining > 0 {
		for i, r := range rafts {
			if remaining == 0 {
				break
			}
			if r.Occupancy+seats[i] <= capacity {
				seats[i]++
				remaining--
			}
		}
	}

	if remaining > 0 {
		return nil, false
	}

	assignments := make([]entity.RaftAllocation, 0, len(rafts))
	for i, n := range seats {
		if n > 0 {
			assignments = append(assignments, entity.RaftAllocation{RaftNo: rafts[i].RaftNo, Seats: n})
		}
	}
	return assignments, true
}

// TotalRemaining reports how many more people the slot can hold,
// overflow seats included.
func TotalRemaining(rafts []*entity.Raft, capacity int) int {
	total := 0
	for _, r := range rafts {
		if free := capacity + 1 - r.Occupancy; free > 0 {
			total += free
		}
	}
	return total
}
