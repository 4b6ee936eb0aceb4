package memory

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger, _ = test.NewNullLogger()

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestBroker_PublishSubscribe(t *testing.T) {
	broker := NewBroker(logger)
	defer broker.Close()
	ctx := context.Background()

	first, err := broker.Subscribe(ctx, "officer:1")
	require.NoError(t, err)
	second, err := broker.Subscribe(ctx, "officer:1")
	require.NoError(t, err)
	other, err := broker.Subscribe(ctx, "officer:2")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(ctx, "officer:1", []byte("hello")))

	assert.Equal(t, []byte("hello"), receive(t, first.Messages()))
	assert.Equal(t, []byte("hello"), receive(t, second.Messages()))
	assert.Empty(t, other.Messages())
}

func TestBroker_CloseSubscription(t *testing.T) {
	broker := NewBroker(logger)
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, "dispatch:broadcast")
	require.NoError(t, err)
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	_, ok := <-sub.Messages()
	assert.False(t, ok)
	require.NoError(t, broker.Publish(ctx, "dispatch:broadcast", []byte("x")))
}

func TestBroker_ContextCancelClosesSubscription(t *testing.T) {
	broker := NewBroker(logger)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := broker.Subscribe(ctx, "reporter:r1")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-sub.Messages():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription was not closed")
	}
}

func TestBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	broker := NewBroker(logger)
	defer broker.Close()
	ctx := context.Background()

	_, err := broker.Subscribe(ctx, "officer:1")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			_ = broker.Publish(ctx, "officer:1", []byte("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestBroker_FullSubscriberDropIsLogged(t *testing.T) {
	nullLogger, hook := test.NewNullLogger()
	broker := NewBroker(nullLogger)
	defer broker.Close()
	ctx := context.Background()

	_, err := broker.Subscribe(ctx, "officer:1")
	require.NoError(t, err)

	for i := 0; i < subscriberBuffer+3; i++ {
		require.NoError(t, broker.Publish(ctx, "officer:1", []byte("x")))
	}

	assert.Equal(t, uint64(3), broker.Dropped())
	require.Len(t, hook.AllEntries(), 3)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "officer:1", entry.Data["topic"])
}

func TestBroker_Closed(t *testing.T) {
	broker := NewBroker(logger)
	sub, err := broker.Subscribe(context.Background(), "officer:1")
	require.NoError(t, err)
	require.NoError(t, broker.Close())

	_, ok := <-sub.Messages()
	assert.False(t, ok)
	assert.ErrorIs(t, broker.Publish(context.Background(), "officer:1", nil), ErrClosed)
	_, err = broker.Subscribe(context.Background(), "officer:1")
	assert.ErrorIs(t, err, ErrClosed)
}
