package learner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/mentorly/internal/curriculum"
	"github.com/abhisek/mentorly/internal/store"
)

// Manager loads and saves profiles through a Storage.
type Manager struct {
	storage store.Storage
}

// NewManager creates a Manager over storage.
func NewManager(storage store.Storage) *Manager {
	return &Manager{storage: storage}
}

// Create saves and returns a new beginner profile.
func (m *Manager) Create(ctx context.Context, id, name string) (*Profile, error) {
	p := NewProfile(id, name)
	if err := m.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the profile for id, or nil if none exists.
func (m *Manager) Get(ctx context.Context, id string) (*Profile, error) {
	raw, err := m.storage.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode learner %q: %w", id, err)
	}
	if p.Knowledge.TopicsMastered == nil {
		p.Knowledge.TopicsMastered = map[string]int{}
	}
	if !p.CurrentLevel.Valid() {
		p.CurrentLevel = curriculum.LevelBeginner
	}
	if p.Name == "" {
		p.Name = p.LearnerID
	}
	return &p, nil
}

// Save persists p, last write wins.
func (m *Manager) Save(ctx context.Context, p *Profile) error {
	p.UpdatedAt = time.Now()
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode learner %q: %w", p.LearnerID, err)
	}
	if err := m.storage.Save(ctx, p.LearnerID, raw); err != nil {
		return err
	}
	return nil
}

// Exists reports whether a profile is stored for id.
func (m *Manager) Exists(ctx context.Context, id string) (bool, error) {
	return m.storage.Exists(ctx, id)
}

// List returns all learner ids.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.storage.List(ctx)
}

// Delete removes a profile and reports whether it existed.
func (m *Manager) Delete(ctx context.Context, id string) (bool, error) {
	return m.storage.Delete(ctx, id)
}
