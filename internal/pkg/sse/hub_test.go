package sse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyKeySubscribers(t *testing.T) {
	hub := NewHub()
	alice, cleanupAlice := hub.Subscribe("alice")
	defer cleanupAlice()
	_, cleanupBob := hub.Subscribe("bob")
	defer cleanupBob()

	n := hub.Publish("alice", Event{Name: "review_decided", Data: "ok"})
	assert.Equal(t, 1, n)

	select {
	case ev := <-alice:
		assert.Equal(t, "alice", ev.Key)
		assert.Equal(t, "review_decided", ev.Name)
	default:
		t.Fatal("expected an event for alice")
	}
	assert.Equal(t, 2, hub.TotalSubscribers())
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("alice")
	require.Equal(t, 1, hub.SubscriberCount("alice"))

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("alice"))
	assert.Equal(t, 0, hub.Publish("alice", Event{Name: "x"}))
}

func TestHub_FullBufferIsSkipped(t *testing.T) {
	hub := NewHub()
	_, cleanup := hub.Subscribe("alice")
	defer cleanup()

	for i := 0; i < hub.buffer; i++ {
		require.Equal(t, 1, hub.Publish("alice", Event{Name: "x"}))
	}
	assert.Equal(t, 0, hub.Publish("alice", Event{Name: "x"}))
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEvent(&buf, "ping", map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, "event: ping\ndata: {\"n\":1}\n\n", buf.String())
}
