package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterEnforcesPerUserLimit(t *testing.T) {
	h := NewHub()
	for i := 0; i < maxConnsPerUser; i++ {
		_, err := h.Register(1, nil)
		require.NoError(t, err)
	}
	_, err := h.Register(1, nil)
	assert.ErrorIs(t, err, ErrUserLimit)

	_, err = h.Register(2, nil)
	assert.NoError(t, err)
	assert.Equal(t, maxConnsPerUser+1, h.Count())
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	h := NewHub()
	c, err := h.Register(7, nil)
	require.NoError(t, err)

	h.UnregisterClient(c)
	h.UnregisterClient(c)

	assert.Equal(t, 0, h.Count())
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_SendToUserTargetsOnlyThatUser(t *testing.T) {
	h := NewHub()
	a, _ := h.Register(1, nil)
	b, _ := h.Register(2, nil)

	h.SendToUser(1, []byte("hello"))

	assert.Equal(t, "hello", string(<-a.Send))
	assert.Len(t, b.Send, 0)
}

func TestHub_BroadcastAll(t *testing.T) {
	h := NewHub()
	a, _ := h.Register(1, nil)
	b, _ := h.Register(2, nil)

	h.BroadcastAll([]byte("all"))

	assert.Equal(t, "all", string(<-a.Send))
	assert.Equal(t, "all", string(<-b.Send))
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	h := NewHub()
	c, _ := h.Register(1, nil)
	for i := 0; i < sendBufferSize; i++ {
		require.True(t, c.TrySend([]byte("x")))
	}
	assert.False(t, c.TrySend([]byte("overflow")))
	assert.Len(t, c.Send, sendBufferSize)
}

func TestClient_TrySendAfterCloseDoesNotPanic(t *testing.T) {
	h := NewHub()
	c, _ := h.Register(1, nil)
	h.UnregisterClient(c)

	assert.NotPanics(t, func() {
		assert.False(t, c.TrySend([]byte("late")))
	})
}

func TestHub_ShutdownRejectsNewClients(t *testing.T) {
	h := NewHub()
	c, _ := h.Register(1, nil)

	require.NoError(t, h.Shutdown(context.Background()))
	assert.Equal(t, 0, h.Count())
	_, open := <-c.Send
	assert.False(t, open)

	_, err := h.Register(1, nil)
	assert.ErrorIs(t, err, ErrHubShutdown)
}

func TestDispatcher_LocalFallbackWithoutRedis(t *testing.T) {
	h := NewHub()
	c, _ := h.Register(3, nil)
	d := NewDispatcher(NewNotifier(nil), h)

	ev := Event{Type: EventPostPublished, Payload: PostPublishedPayload{ID: 9, Title: "Hello"}}
	require.NoError(t, d.Broadcast(context.Background(), ev))

	var got map[string]any
	require.NoError(t, json.Unmarshal(<-c.Send, &got))
	assert.Equal(t, EventPostPublished, got["type"])
	assert.Equal(t, "Hello", got["payload"].(map[string]any)["title"])

	require.NoError(t, d.SendToUser(context.Background(), 3, Event{Type: EventProfileUpdated}))
	assert.Contains(t, string(<-c.Send), EventProfileUpdated)
}
