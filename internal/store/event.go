package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter orders every event the store records, across tables, so
// a session's LLM calls can be read back in the order the tutor made them.
// The global_sequence row is created by migrate.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// Next reserves the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	row := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`)
	if err := row.Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo over the llm_events and session_events
// tables.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

// stamp returns the sequence and creation time for a new event row.
func (r *eventRepo) stamp(ctx context.Context) (int64, int64, error) {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return 0, 0, err
	}
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	return seq, now().UnixMilli(), nil
}
