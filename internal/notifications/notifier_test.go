package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestParseUserChannel(t *testing.T) {
	tests := []struct {
		channel string
		id      uint
		ok      bool
	}{
		{"feed:user:42", 42, true},
		{UserChannel(7), 7, true},
		{"feed:user:0", 0, false},
		{"feed:user:abc", 0, false},
		{"feed:broadcast", 0, false},
		{"other:user:1", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.channel, func(t *testing.T) {
			id, ok := parseUserChannel(tt.channel)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestNotifier_DisabledIsNoop(t *testing.T) {
	var n *Notifier
	assert.False(t, n.Enabled())
	assert.NoError(t, NewNotifier(nil).PublishBroadcast(context.Background(), "x"))
	assert.NoError(t, NewNotifier(nil).StartSubscriber(context.Background(), func(string, string) {}))
}

func TestHub_StartWiringDeliversThroughRedis(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)
	h := NewHub()
	a, _ := h.Register(1, nil)
	b, _ := h.Register(2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.StartWiring(ctx, n))

	d := NewDispatcher(n, h)
	require.NoError(t, d.SendToUser(ctx, 1, Event{Type: EventProjectUpdated}))

	select {
	case msg := <-a.Send:
		assert.Contains(t, string(msg), EventProjectUpdated)
	case <-time.After(2 * time.Second):
		t.Fatal("user message not delivered")
	}

	require.NoError(t, d.Broadcast(ctx, Event{Type: EventPostPublished}))
	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.Contains(t, string(msg), EventPostPublished)
		case <-time.After(2 * time.Second):
			t.Fatal("broadcast not delivered")
		}
	}
	assert.Len(t, b.Send, 0)
}
