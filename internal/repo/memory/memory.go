package memory

import (
	"context"
	"sync"
	"time"

	"tournotify/internal/repo"
)

var _ repo.StateStore = (*Store)(nil)

// Store keeps the last-notified timestamp in process memory. Lost on
// restart; a missed cooldown window after a cold start is acceptable.
type Store struct {
	mu             sync.RWMutex
	lastNotifiedAt *time.Time
}

func New() *Store {
	return &Store{}
}

func (m *Store) LastNotified(ctx context.Context) (*time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lastNotifiedAt == nil {
		return nil, nil
	}
	t := *m.lastNotifiedAt
	return &t, nil
}

func (m *Store) SetLastNotified(ctx context.Context, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := at.UTC()
	m.lastNotifiedAt = &t
	return nil
}
