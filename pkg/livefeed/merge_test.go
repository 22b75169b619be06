package livefeed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskops/notifykit/pkg/livefeed"
	"github.com/deskops/notifykit/pkg/notifications"
)

func TestMerge_PrioritySortIsStable(t *testing.T) {
	t.Parallel()

	persisted := []notifications.Notification{
		{ID: "p-low", Priority: notifications.PriorityLow},
		{ID: "p-critical-1", Priority: notifications.PriorityCritical},
		{ID: "p-medium", Priority: notifications.PriorityMedium},
		{ID: "p-high", Priority: notifications.PriorityHigh},
		{ID: "p-critical-2", Priority: notifications.PriorityCritical},
	}

	merged := livefeed.Merge(persisted, nil)
	require.Len(t, merged, 5)

	got := make([]string, len(merged))
	for i, item := range merged {
		got[i] = item.ID
	}
	// Ties keep their incoming relative order: critical-1 stays ahead of
	// critical-2.
	assert.Equal(t, []string{"p-critical-1", "p-critical-2", "p-high", "p-medium", "p-low"}, got)
}

func TestMerge_InterleavesSources(t *testing.T) {
	t.Parallel()

	persisted := []notifications.Notification{
		{ID: "p1", Priority: notifications.PriorityMedium, Title: "stored"},
	}
	synthesized := []livefeed.Item{
		{Source: livefeed.SourceSynthesized, Key: "k1", Priority: notifications.PriorityCritical},
		{Source: livefeed.SourceSynthesized, Key: "k2", Priority: notifications.PriorityInfo},
	}

	merged := livefeed.Merge(persisted, synthesized)
	require.Len(t, merged, 3)

	assert.Equal(t, "k1", merged[0].Key)
	assert.Equal(t, "p1", merged[1].ID)
	assert.Equal(t, livefeed.SourcePersisted, merged[1].Source)
	assert.Equal(t, "k2", merged[2].Key)
}

func TestMerge_SamePriorityPersistedFirst(t *testing.T) {
	t.Parallel()

	persisted := []notifications.Notification{
		{ID: "p1", Priority: notifications.PriorityMedium},
	}
	synthesized := []livefeed.Item{
		{Source: livefeed.SourceSynthesized, Key: "k1", Priority: notifications.PriorityMedium},
	}

	merged := livefeed.Merge(persisted, synthesized)
	require.Len(t, merged, 2)
	assert.Equal(t, livefeed.SourcePersisted, merged[0].Source)
	assert.Equal(t, livefeed.SourceSynthesized, merged[1].Source)
}

func TestMerge_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, livefeed.Merge(nil, nil))
}
