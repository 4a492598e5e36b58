package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardMessagesRelaysPayloads(t *testing.T) {
	msgs := make(chan *redis.Message, 2)
	readDone := make(chan struct{})

	var got []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		forwardMessages(context.Background(), msgs, readDone, func(b []byte) error {
			got = append(got, string(b))
			return nil
		})
	}()

	msgs <- &redis.Message{Payload: `{"type":"caption","turn":1}`}
	msgs <- &redis.Message{Payload: `{"type":"status","status":"completed"}`}
	close(readDone)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarder did not stop after reader exit")
	}

	require.Len(t, got, 2)
	assert.Equal(t, `{"type":"caption","turn":1}`, got[0])
}

func TestForwardMessagesStopsWithoutTraffic(t *testing.T) {
	// the forwarder must notice the reader exiting even when no message
	// ever arrives on the pub/sub channel
	msgs := make(chan *redis.Message)
	readDone := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		forwardMessages(context.Background(), msgs, readDone, func([]byte) error { return nil })
	}()

	close(readDone)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarder blocked waiting for a message")
	}
}

func TestForwardMessagesStopsOnContextCancel(t *testing.T) {
	msgs := make(chan *redis.Message)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		forwardMessages(ctx, msgs, make(chan struct{}), func([]byte) error { return nil })
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarder ignored context cancellation")
	}
}

func TestForwardMessagesStopsOnWriteError(t *testing.T) {
	msgs := make(chan *redis.Message, 1)
	msgs <- &redis.Message{Payload: "x"}

	done := make(chan struct{})
	go func() {
		defer close(done)
		forwardMessages(context.Background(), msgs, make(chan struct{}), func([]byte) error {
			return assert.AnError
		})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarder kept running after a write failure")
	}
}
