package preferences

import (
	"context"
	"errors"
)

// CachedStorage layers a cache storage over a primary one. Reads hit the
// cache first and fall back to the primary, backfilling on a miss. Writes go
// to the primary and then refresh the cache; cache write failures are
// ignored since the primary already holds the truth and the next read
// repopulates it.
type CachedStorage struct {
	primary Storage
	cache   Storage
}

// NewCachedStorage creates a read-through preference storage, typically a
// PostgresStorage fronted by a RedisStorage.
func NewCachedStorage(primary, cache Storage) *CachedStorage {
	return &CachedStorage{primary: primary, cache: cache}
}

func (s *CachedStorage) Get(ctx context.Context, userID string) (*Preference, error) {
	if pref, err := s.cache.Get(ctx, userID); err == nil {
		return pref, nil
	}

	pref, err := s.primary.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Upsert(ctx, *pref)
	return pref, nil
}

func (s *CachedStorage) Upsert(ctx context.Context, pref Preference) error {
	if err := s.primary.Upsert(ctx, pref); err != nil {
		return err
	}
	_ = s.cache.Upsert(ctx, pref)
	return nil
}

func (s *CachedStorage) Delete(ctx context.Context, userID string) error {
	if err := s.primary.Delete(ctx, userID); err != nil && !errors.Is(err, ErrPreferenceNotFound) {
		return err
	}
	_ = s.cache.Delete(ctx, userID)
	return nil
}
