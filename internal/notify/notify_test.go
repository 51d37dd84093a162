package notify

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TshiamoTodd/live-docs/internal/models"
)

func newTestInbox(t *testing.T) *Inbox {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewInbox(client)
}

func TestAddAndList(t *testing.T) {
	inbox := newTestInbox(t)
	ctx := context.Background()

	require.NoError(t, inbox.Add(ctx, "u2@x.com", models.Notification{
		DocumentID: "room-1",
		Title:      "Q3 Plan",
		Role:       "viewer",
		UpdatedBy:  "u1@x.com",
		Timestamp:  1000,
	}))
	require.NoError(t, inbox.Add(ctx, "u2@x.com", models.Notification{
		DocumentID: "room-2",
		Title:      "Roadmap",
		Role:       "editor",
		UpdatedBy:  "u1@x.com",
		Timestamp:  2000,
	}))

	got, err := inbox.List(ctx, "u2@x.com", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, "room-2", got[0].DocumentID)
	assert.Equal(t, "room-1", got[1].DocumentID)
	assert.NotEmpty(t, got[0].ID)
}

func TestListOtherUserEmpty(t *testing.T) {
	inbox := newTestInbox(t)
	ctx := context.Background()

	require.NoError(t, inbox.Add(ctx, "u2@x.com", models.Notification{DocumentID: "room-1"}))

	got, err := inbox.List(ctx, "u3@x.com", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNilInboxDropsQuietly(t *testing.T) {
	var inbox *Inbox
	ctx := context.Background()

	require.NoError(t, inbox.Add(ctx, "u2@x.com", models.Notification{DocumentID: "room-1"}))
	got, err := inbox.List(ctx, "u2@x.com", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
