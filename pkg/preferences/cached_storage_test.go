package preferences_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskops/notifykit/pkg/preferences"
)

func TestCachedStorage_ReadThrough(t *testing.T) {
	t.Parallel()

	primary := preferences.NewMemoryStorage()
	cache := preferences.NewMemoryStorage()
	store := preferences.NewCachedStorage(primary, cache)

	pref := preferences.Default("u1")
	require.NoError(t, primary.Upsert(context.Background(), pref))

	// First read misses the cache, falls back to the primary and backfills.
	got, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	cached, err := cache.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cached.UserID)
}

func TestCachedStorage_CacheWins(t *testing.T) {
	t.Parallel()

	primary := preferences.NewMemoryStorage()
	cache := preferences.NewMemoryStorage()
	store := preferences.NewCachedStorage(primary, cache)

	stale := preferences.Default("u1")
	stale.TicketAssignments = false
	require.NoError(t, cache.Upsert(context.Background(), stale))

	got, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, got.TicketAssignments, "cache hits never touch the primary")
}

func TestCachedStorage_MissEverywhere(t *testing.T) {
	t.Parallel()

	store := preferences.NewCachedStorage(preferences.NewMemoryStorage(), preferences.NewMemoryStorage())

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, preferences.ErrPreferenceNotFound)
}

func TestCachedStorage_UpsertRefreshesBoth(t *testing.T) {
	t.Parallel()

	primary := preferences.NewMemoryStorage()
	cache := preferences.NewMemoryStorage()
	store := preferences.NewCachedStorage(primary, cache)

	pref := preferences.Default("u1")
	pref.DNDEnabled = true
	pref.DNDStart = "22:00"
	pref.DNDEnd = "06:00"
	require.NoError(t, store.Upsert(context.Background(), pref))

	fromPrimary, err := primary.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, fromPrimary.DNDEnabled)

	fromCache, err := cache.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, fromCache.DNDEnabled)
}

func TestCachedStorage_DeleteEvicts(t *testing.T) {
	t.Parallel()

	primary := preferences.NewMemoryStorage()
	cache := preferences.NewMemoryStorage()
	store := preferences.NewCachedStorage(primary, cache)

	require.NoError(t, store.Upsert(context.Background(), preferences.Default("u1")))
	require.NoError(t, store.Delete(context.Background(), "u1"))

	_, err := store.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, preferences.ErrPreferenceNotFound)

	_, err = cache.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, preferences.ErrPreferenceNotFound)
}
