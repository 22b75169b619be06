package livefeed_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskops/notifykit/pkg/livefeed"
	"github.com/deskops/notifykit/pkg/notifications"
)

func TestSynthesizer_EmptySnapshot(t *testing.T) {
	t.Parallel()

	synth := livefeed.NewSynthesizer()
	assert.Empty(t, synth.Synthesize(livefeed.Snapshot{}))
}

func TestSynthesizer_KeysStableAcrossEvaluations(t *testing.T) {
	t.Parallel()

	snap := livefeed.Snapshot{
		AssignedTickets: []livefeed.Ticket{
			{ID: "t1", Title: "Printer offline"},
			{ID: "t2", Title: "VPN broken"},
		},
		PendingApprovals: []livefeed.Approval{
			{ID: "a1", Kind: "upgrade", Title: "RAM upgrade"},
		},
	}

	synth := livefeed.NewSynthesizer()
	first := synth.Synthesize(snap)
	second := synth.Synthesize(snap)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	for i := range first {
		assert.Equal(t, first[i].Key, second[i].Key)
		assert.Equal(t, first[i].Title, second[i].Title)
	}
}

func TestSynthesizer_KeyOrderIndependent(t *testing.T) {
	t.Parallel()

	synth := livefeed.NewSynthesizer()

	forward := synth.Synthesize(livefeed.Snapshot{
		AssignedTickets: []livefeed.Ticket{{ID: "t1"}, {ID: "t2"}},
	})
	reversed := synth.Synthesize(livefeed.Snapshot{
		AssignedTickets: []livefeed.Ticket{{ID: "t2"}, {ID: "t1"}},
	})

	require.Len(t, forward, 1)
	require.Len(t, reversed, 1)
	assert.Equal(t, forward[0].Key, reversed[0].Key,
		"snapshot ordering must not change the identity of the condition")
}

func TestSynthesizer_KeyChangesWithCardinality(t *testing.T) {
	t.Parallel()

	synth := livefeed.NewSynthesizer()

	two := synth.Synthesize(livefeed.Snapshot{
		AssignedTickets: []livefeed.Ticket{{ID: "t1"}, {ID: "t2"}},
	})
	three := synth.Synthesize(livefeed.Snapshot{
		AssignedTickets: []livefeed.Ticket{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}},
	})

	require.Len(t, two, 1)
	require.Len(t, three, 1)
	assert.NotEqual(t, two[0].Key, three[0].Key)
	assert.NotEqual(t, two[0].Title, three[0].Title)
}

func TestSynthesizer_UrgentTicketsEscalate(t *testing.T) {
	t.Parallel()

	synth := livefeed.NewSynthesizer()

	calm := synth.Synthesize(livefeed.Snapshot{
		AssignedTickets: []livefeed.Ticket{{ID: "t1"}},
	})
	require.Len(t, calm, 1)
	assert.Equal(t, notifications.PriorityMedium, calm[0].Priority)

	hot := synth.Synthesize(livefeed.Snapshot{
		AssignedTickets: []livefeed.Ticket{{ID: "t1"}, {ID: "t2", Urgent: true}},
	})
	require.Len(t, hot, 1)
	assert.Equal(t, notifications.PriorityHigh, hot[0].Priority)
	assert.Contains(t, hot[0].Title, "urgent")
}

func TestSynthesizer_MaintenanceEscalatesWhenSoon(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	synth := livefeed.NewSynthesizer(livefeed.WithSynthesizerClock(func() time.Time { return now }))

	distant := synth.Synthesize(livefeed.Snapshot{
		UpcomingMaintenance: []livefeed.Maintenance{
			{AssetID: "as1", AssetName: "rack B", ScheduledFor: now.Add(72 * time.Hour)},
		},
	})
	require.Len(t, distant, 1)
	assert.Equal(t, notifications.PriorityMedium, distant[0].Priority)

	imminent := synth.Synthesize(livefeed.Snapshot{
		UpcomingMaintenance: []livefeed.Maintenance{
			{AssetID: "as1", AssetName: "rack B", ScheduledFor: now.Add(6 * time.Hour)},
		},
	})
	require.Len(t, imminent, 1)
	assert.Equal(t, notifications.PriorityHigh, imminent[0].Priority)
}

func TestSynthesizer_AllRulesFire(t *testing.T) {
	t.Parallel()

	synth := livefeed.NewSynthesizer()
	items := synth.Synthesize(livefeed.Snapshot{
		AssignedTickets:     []livefeed.Ticket{{ID: "t1"}},
		SubmittedTickets:    []livefeed.Ticket{{ID: "t2"}},
		DelegatedTickets:    []livefeed.Ticket{{ID: "t3"}},
		PendingApprovals:    []livefeed.Approval{{ID: "a1"}},
		RecentAssets:        []livefeed.Asset{{ID: "as1", Name: "laptop"}},
		UpcomingMaintenance: []livefeed.Maintenance{{AssetID: "as2"}},
	})

	require.Len(t, items, 6)

	keys := make(map[string]struct{}, len(items))
	for _, item := range items {
		assert.Equal(t, livefeed.SourceSynthesized, item.Source)
		assert.Empty(t, item.ID)
		keys[item.Key] = struct{}{}
	}
	assert.Len(t, keys, 6, "every rule must produce a distinct key")
}
