package livefeed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskops/notifykit/pkg/livefeed"
)

func TestSession_DismissFiltersSynthesized(t *testing.T) {
	t.Parallel()

	items := []livefeed.Item{
		{Source: livefeed.SourceSynthesized, Key: "k1"},
		{Source: livefeed.SourceSynthesized, Key: "k2"},
		{Source: livefeed.SourcePersisted, ID: "p1"},
	}

	session := livefeed.NewSession()
	session.Dismiss("k1")

	visible := session.Filter(items)
	require.Len(t, visible, 2)
	assert.Equal(t, "k2", visible[0].Key)
	assert.Equal(t, "p1", visible[1].ID)
	assert.True(t, session.Dismissed("k1"))
}

func TestSession_DismissalDoesNotTouchPersisted(t *testing.T) {
	t.Parallel()

	// A persisted item whose ID collides with a dismissed key still shows;
	// dismissal matches synthesized keys only.
	items := []livefeed.Item{
		{Source: livefeed.SourcePersisted, ID: "k1"},
	}

	session := livefeed.NewSession()
	session.Dismiss("k1")

	assert.Len(t, session.Filter(items), 1)
}

func TestSession_ResetsWithNewSession(t *testing.T) {
	t.Parallel()

	items := []livefeed.Item{
		{Source: livefeed.SourceSynthesized, Key: "k1"},
	}

	old := livefeed.NewSession()
	old.Dismiss("k1")
	assert.Empty(t, old.Filter(items))

	// A reload builds a fresh session; the condition still holds, so the
	// item comes back.
	fresh := livefeed.NewSession()
	assert.Len(t, fresh.Filter(items), 1)
}
