package preferences

import (
	"context"
	"slices"
	"sync"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	prefs map[string]Preference
	mu    sync.RWMutex
}

// NewMemoryStorage creates a new in-memory preference storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		prefs: make(map[string]Preference),
	}
}

func (s *MemoryStorage) Get(ctx context.Context, userID string) (*Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, exists := s.prefs[userID]
	if !exists {
		return nil, ErrPreferenceNotFound
	}

	// Copy to prevent external mutation of stored data.
	pref.DNDDays = slices.Clone(pref.DNDDays)
	return &pref, nil
}

func (s *MemoryStorage) Upsert(ctx context.Context, pref Preference) error {
	if pref.UserID == "" {
		return ErrUserIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pref.DNDDays = slices.Clone(pref.DNDDays)
	s.prefs[pref.UserID] = pref
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.prefs, userID)
	return nil
}
