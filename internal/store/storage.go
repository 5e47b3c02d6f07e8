package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Storage persists one JSON record per learner id. Writes are last-write-wins
// and every saved record is stamped with "updated_at".
type Storage interface {
	// Save writes the record for learnerID.
	Save(ctx context.Context, learnerID string, record json.RawMessage) error

	// Load returns the record, or (nil, nil) if none exists.
	Load(ctx context.Context, learnerID string) (json.RawMessage, error)

	// Exists reports whether a record exists.
	Exists(ctx context.Context, learnerID string) (bool, error)

	// List returns all stored learner ids.
	List(ctx context.Context) ([]string, error)

	// Delete removes the record. It reports whether one was removed.
	Delete(ctx context.Context, learnerID string) (bool, error)
}

// ValidateLearnerID rejects ids that cannot be used as a record key.
func ValidateLearnerID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("learner id is empty")
	case strings.ContainsAny(id, `/\`), strings.Contains(id, ".."), strings.HasPrefix(id, "."):
		return fmt.Errorf("learner id %q contains path characters", id)
	}
	return nil
}

// stampRecord sets updated_at on a JSON object record and re-encodes it
// with two-space indentation.
func stampRecord(record json.RawMessage, now time.Time) (json.RawMessage, error) {
	var obj map[string]any
	if err := json.Unmarshal(record, &obj); err != nil {
		return nil, fmt.Errorf("record is not a JSON object: %w", err)
	}
	if obj == nil {
		obj = map[string]any{}
	}
	obj["updated_at"] = now.Format(time.RFC3339Nano)

	out, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return out, nil
}
