package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const sessionEventsTable = "session_events"

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, created, err := r.stamp(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(sessionEventsTable).
		Columns("sequence", "created_at", "session_id", "learner_id", "action", "topic", "level",
			"questions_asked", "problems_attempted", "problems_correct", "duration_secs").
		Values(seqNum, created, data.SessionID, data.LearnerID, data.Action, data.Topic, data.Level,
			data.QuestionsAsked, data.ProblemsAttempted, data.ProblemsCorrect, data.DurationSecs).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, learnerID string, limit int) ([]SessionEventRecord, error) {
	b := builder()
	sel := b.Select("id", "sequence", "created_at", "session_id", "learner_id", "action", "topic", "level",
		"questions_asked", "problems_attempted", "problems_correct", "duration_secs").
		From(b.Table(sessionEventsTable))
	if learnerID != "" {
		sel.Where(entsql.EQ("learner_id", learnerID))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var (
			rec     SessionEventRecord
			created int64
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &created, &rec.SessionID, &rec.LearnerID, &rec.Action,
			&rec.Topic, &rec.Level, &rec.QuestionsAsked, &rec.ProblemsAttempted, &rec.ProblemsCorrect,
			&rec.DurationSecs)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(created).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
