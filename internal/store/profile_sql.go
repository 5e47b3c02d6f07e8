package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const profilesTable = "learner_profiles"

// SQLStorage implements Storage on the learner_profiles table.
type SQLStorage struct {
	db *sql.DB
}

func (s *SQLStorage) Save(ctx context.Context, learnerID string, record json.RawMessage) error {
	if err := ValidateLearnerID(learnerID); err != nil {
		return err
	}
	now := time.Now()
	data, err := stampRecord(record, now)
	if err != nil {
		return err
	}

	query, args := builder().Insert(profilesTable).
		Columns("learner_id", "record", "updated_at").
		Values(learnerID, string(data), now.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("learner_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save learner %q: %w", learnerID, err)
	}
	return nil
}

func (s *SQLStorage) Load(ctx context.Context, learnerID string) (json.RawMessage, error) {
	b := builder()
	query, args := b.Select("record").
		From(b.Table(profilesTable)).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()

	var record string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load learner %q: %w", learnerID, err)
	}
	return json.RawMessage(record), nil
}

func (s *SQLStorage) Exists(ctx context.Context, learnerID string) (bool, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(profilesTable)).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check learner %q: %w", learnerID, err)
	}
	return n > 0, nil
}

func (s *SQLStorage) List(ctx context.Context) ([]string, error) {
	b := builder()
	query, args := b.Select("learner_id").
		From(b.Table(profilesTable)).
		OrderBy("learner_id").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan learner id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLStorage) Delete(ctx context.Context, learnerID string) (bool, error) {
	query, args := builder().Delete(profilesTable).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete learner %q: %w", learnerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete learner %q: %w", learnerID, err)
	}
	return n > 0, nil
}
