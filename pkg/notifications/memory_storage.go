package notifications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	notifications map[string][]Notification // recipientID -> notifications
	mu            sync.RWMutex
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		notifications: make(map[string][]Notification),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, notif Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if notif.ID == "" {
		return ErrMissingField
	}
	if notif.RecipientID == "" {
		return ErrMissingField
	}

	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	s.notifications[notif.RecipientID] = append(s.notifications[notif.RecipientID], notif)
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, recipientID, notifID string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notifications[recipientID] {
		if n.ID == notifID {
			// Return a copy to prevent external mutation of stored data.
			notif := n
			return &notif, nil
		}
	}

	return nil, ErrNotificationNotFound
}

func (s *MemoryStorage) List(ctx context.Context, recipientID string, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications, exists := s.notifications[recipientID]
	if !exists {
		return []Notification{}, nil
	}

	var filtered []Notification
	for _, n := range notifications {
		if opts.OnlyUnread && n.Read {
			continue
		}
		// Since is a strictly-after bound.
		if opts.Since != nil && !n.CreatedAt.After(*opts.Since) {
			continue
		}
		filtered = append(filtered, n)
	}

	// Newest first.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	start := opts.Offset
	if start > len(filtered) {
		return []Notification{}, nil
	}

	end := start + opts.Limit
	if opts.Limit <= 0 || end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, recipientID string, notifIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, exists := s.notifications[recipientID]
	if !exists {
		return nil
	}

	idSet := make(map[string]struct{}, len(notifIDs))
	for _, id := range notifIDs {
		idSet[id] = struct{}{}
	}

	for i := range notifications {
		if _, ok := idSet[notifications[i].ID]; ok {
			notifications[i].MarkAsRead()
		}
	}

	s.notifications[recipientID] = notifications
	return nil
}

func (s *MemoryStorage) Snooze(ctx context.Context, recipientID, notifID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications := s.notifications[recipientID]
	for i := range notifications {
		if notifications[i].ID == notifID {
			notifications[i].SnoozedUntil = &until
			return nil
		}
	}

	return ErrNotificationNotFound
}

func (s *MemoryStorage) Delete(ctx context.Context, recipientID string, notifIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, exists := s.notifications[recipientID]
	if !exists {
		return nil
	}

	idSet := make(map[string]struct{}, len(notifIDs))
	for _, id := range notifIDs {
		idSet[id] = struct{}{}
	}

	var kept []Notification
	for _, n := range notifications {
		if _, ok := idSet[n.ID]; !ok {
			kept = append(kept, n)
		}
	}

	s.notifications[recipientID] = kept
	return nil
}

func (s *MemoryStorage) DeleteAll(ctx context.Context, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notifications, recipientID)
	return nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, recipientID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications[recipientID] {
		if !n.Read {
			count++
		}
	}

	return count, nil
}
