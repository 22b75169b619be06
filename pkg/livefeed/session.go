package livefeed

import "sync"

// Session holds the caller's local dismissals of synthesized items. The
// state is intentionally ephemeral: it lives only as long as the session
// object, so a reload brings dismissed conditions back if they still hold.
// Dismissing a persisted notification goes through the feed service instead
// and deletes the stored row.
type Session struct {
	mu        sync.RWMutex
	dismissed map[string]struct{}
}

// NewSession creates an empty dismissal session.
func NewSession() *Session {
	return &Session{dismissed: make(map[string]struct{})}
}

// Dismiss hides the synthesized item with the given key for the rest of the
// session. Unknown keys are accepted; a key that never resurfaces is simply
// never matched.
func (s *Session) Dismiss(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[key] = struct{}{}
}

// Dismissed reports whether the key was dismissed in this session.
func (s *Session) Dismissed(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dismissed[key]
	return ok
}

// Filter returns the items not dismissed in this session. Persisted items
// pass through untouched; only synthesized keys are matched.
func (s *Session) Filter(items []Item) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Source == SourceSynthesized {
			if _, ok := s.dismissed[item.Key]; ok {
				continue
			}
		}
		kept = append(kept, item)
	}
	return kept
}
