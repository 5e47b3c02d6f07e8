package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// JSONFileStore keeps each learner in <dir>/<learnerID>.json.
type JSONFileStore struct {
	dir string
	now func() time.Time
}

// NewJSONFileStore creates the directory if needed and returns a store
// rooted there.
func NewJSONFileStore(dir string) (*JSONFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create learner dir: %w", err)
	}
	return &JSONFileStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory records are written to.
func (s *JSONFileStore) Dir() string { return s.dir }

func (s *JSONFileStore) path(id string) (string, error) {
	if err := ValidateLearnerID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *JSONFileStore) Save(_ context.Context, learnerID string, record json.RawMessage) error {
	p, err := s.path(learnerID)
	if err != nil {
		return err
	}
	data, err := stampRecord(record, s.now())
	if err != nil {
		return err
	}

	// Write to a temp file and rename so a crash never leaves half a record.
	tmp, err := os.CreateTemp(s.dir, "."+learnerID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write learner %q: %w", learnerID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close learner %q: %w", learnerID, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("save learner %q: %w", learnerID, err)
	}
	return nil
}

func (s *JSONFileStore) Load(_ context.Context, learnerID string) (json.RawMessage, error) {
	p, err := s.path(learnerID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load learner %q: %w", learnerID, err)
	}
	return data, nil
}

func (s *JSONFileStore) Exists(_ context.Context, learnerID string) (bool, error) {
	p, err := s.path(learnerID)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat learner %q: %w", learnerID, err)
	}
}

func (s *JSONFileStore) List(_ context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(filepath.Base(m), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *JSONFileStore) Delete(_ context.Context, learnerID string) (bool, error) {
	p, err := s.path(learnerID)
	if err != nil {
		return false, err
	}
	err = os.Remove(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("delete learner %q: %w", learnerID, err)
	}
}
