package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lerarestechnologies-gif/rafting/internal/entity"
	"github.com/lerarestechnologies-gif/rafting/internal/pkg/allocator"
)

type raftRepository struct {
	db *sql.DB
}

func NewRaftRepository(db *sql.DB) RaftRepository {
	return &raftRepository{db: db}
}

// EnsureRafts upserts raft rows 1..raftsPerSlot for the (day, slot)
// pair. The unique index on (day, slot, raft_no) makes repeated calls
// a no-op for rows that already exist.
func (r *raftRepository) EnsureRafts(ctx context.Context, day, slot string, raftsPerSlot int) error {
	if raftsPerSlot < 1 {
		return fmt.Errorf("rafts per slot must be positive, got %d", raftsPerSlot)
	}

	query := `
		INSERT INTO rafts (day, slot, raft_no, occupancy)
		SELECT $1, $2, n, 0 FROM generate_series(1, $3) AS n
		ON CONFLICT (day, slot, raft_no) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, day, slot, raftsPerSlot); err != nil {
		return fmt.Errorf("failed to ensure rafts for %s %s: %w", day, slot, err)
	}
	return nil
}

// GetForSlot returns the rafts of one (day, slot) ordered by raft number.
func (r *raftRepository) GetForSlot(ctx context.Context, day, slot string) ([]*entity.Raft, error) {
	query := `
		SELECT id, day, slot, raft_no, occupancy, created_at
		FROM rafts
		WHERE day = $1 AND slot = $2
		ORDER BY raft_no
	`

	rows, err := r.db.QueryContext(ctx, query, day, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to query rafts: %w", err)
	}
	defer rows.Close()

	return scanRafts(rows)
}

// AllocateSeats runs the allocation inside one transaction. The raft
// rows of the slot are locked with FOR UPDATE so concurrent bookings
// for the same (day, slot) serialize instead of overbooking; a plan
// that does not fit rolls back without touching occupancy.
func (r *raftRepository) AllocateSeats(ctx context.Context, day, slot string, groupSize, capacity int) ([]entity.RaftAllocation, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, day, slot, raft_no, occupancy, created_at
		FROM rafts
		WHERE day = $1 AND slot = $2
		ORDER BY raft_no
		FOR UPDATE
	`
	rows, err := tx.QueryContext(ctx, query, day, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to lock rafts: %w", err)
	}
	rafts, err := scanRafts(rows)
	if err != nil {
		return nil, err
	}

	assignments, ok := allocator.Plan(rafts, groupSize, capacity)
	if !ok {
		return nil, entity.ErrSlotCapacityExhausted
	}

	update := `UPDATE rafts SET occupancy = occupancy + $1 WHERE day = $2 AND slot = $3 AND raft_no = $4`
	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx, update, a.Seats, day, slot, a.RaftNo); err != nil {
			return nil, fmt.Errorf("failed to update occupancy of raft %d: %w", a.RaftNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit allocation: %w", err)
	}

	return assignments, nil
}

// OccupancyBySlot sums occupied seats per slot for one day. Slots
// without raft rows are absent from the map.
func (r *raftRepository) OccupancyBySlot(ctx context.Context, day string) (map[string]int, error) {
	query := `
		SELECT slot, COALESCE(SUM(occupancy), 0)
		FROM rafts
		WHERE day = $1
		GROUP BY slot
	`

	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot occupancy: %w", err)
	}
	defer rows.Close()

	occupancy := make(map[string]int)
	for rows.Next() {
		var slot string
		var occupied int
		if err := rows.Scan(&slot, &occupied); err != nil {
			return nil, fmt.Errorf("failed to scan slot occupancy: %w", err)
		}
		occupancy[slot] = occupied
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot occupancy: %w", err)
	}

	return occupancy, nil
}

func scanRafts(rows *sql.Rows) ([]*entity.Raft, error) {
	defer rows.Close()

	var rafts []*entity.Raft
	for rows.Next() {
		var raft entity.Raft
		err := rows.Scan(
			&raft.ID,
			&raft.Day,
			&raft.Slot,
			&raft.RaftNo,
			&raft.Occupancy,
			&raft.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raft: %w", err)
		}
		rafts = append(rafts, &raft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rafts: %w", err)
	}

	return rafts, nil
}
