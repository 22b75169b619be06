package notifications_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskops/notifykit/pkg/notifications"
)

func TestHub_PublishAndSubscribe(t *testing.T) {
	t.Parallel()

	hub := notifications.NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := hub.Subscribe(ctx, "u1")
	require.NoError(t, err)

	notif := notifications.Notification{ID: "n1", RecipientID: "u1", Title: "t", Message: "m"}
	require.NoError(t, hub.Publish(context.Background(), notif))

	select {
	case got := <-stream:
		assert.Equal(t, "n1", got.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestHub_OnlyRecipientReceives(t *testing.T) {
	t.Parallel()

	hub := notifications.NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mine, err := hub.Subscribe(ctx, "u1")
	require.NoError(t, err)
	theirs, err := hub.Subscribe(ctx, "u2")
	require.NoError(t, err)

	require.NoError(t, hub.Publish(context.Background(),
		notifications.Notification{ID: "n1", RecipientID: "u1"}))

	select {
	case <-mine:
	case <-time.After(time.Second):
		t.Fatal("recipient's own stream stayed empty")
	}

	select {
	case got := <-theirs:
		t.Fatalf("notification %s leaked to another recipient", got.ID)
	default:
	}
}

func TestHub_MultipleStreamsPerRecipient(t *testing.T) {
	t.Parallel()

	hub := notifications.NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := hub.Subscribe(ctx, "u1")
	require.NoError(t, err)
	second, err := hub.Subscribe(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, hub.Subscribers("u1"))

	require.NoError(t, hub.Publish(context.Background(),
		notifications.Notification{ID: "n1", RecipientID: "u1"}))

	for _, stream := range []<-chan notifications.Notification{first, second} {
		select {
		case got := <-stream:
			assert.Equal(t, "n1", got.ID)
		case <-time.After(time.Second):
			t.Fatal("one of the recipient's streams missed the notification")
		}
	}
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	t.Parallel()

	hub := notifications.NewHub(notifications.WithHubBuffer(1))
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := hub.Subscribe(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, hub.Publish(context.Background(),
		notifications.Notification{ID: "n1", RecipientID: "u1"}))
	// Buffer is full; this one must be dropped without blocking.
	require.NoError(t, hub.Publish(context.Background(),
		notifications.Notification{ID: "n2", RecipientID: "u1"}))

	got := <-stream
	assert.Equal(t, "n1", got.ID)

	select {
	case unexpected := <-stream:
		t.Fatalf("expected n2 to be dropped, received %s", unexpected.ID)
	default:
	}
}

func TestHub_ContextCancelUnsubscribes(t *testing.T) {
	t.Parallel()

	hub := notifications.NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := hub.Subscribe(ctx, "u1")
	require.NoError(t, err)

	cancel()

	// The cleanup goroutine closes the channel.
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-stream:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	assert.Zero(t, hub.Subscribers("u1"))
}

func TestHub_Close(t *testing.T) {
	t.Parallel()

	hub := notifications.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := hub.Subscribe(ctx, "u1")
	require.NoError(t, err)

	hub.Close()

	_, open := <-stream
	assert.False(t, open, "subscriber channels close with the hub")

	err = hub.Publish(context.Background(), notifications.Notification{ID: "n1", RecipientID: "u1"})
	assert.ErrorIs(t, err, notifications.ErrHubClosed)

	_, err = hub.Subscribe(context.Background(), "u1")
	assert.ErrorIs(t, err, notifications.ErrHubClosed)

	// Closing twice is safe.
	hub.Close()
}
