package sse

import (
	"testing"
	"time"
)

func TestHubBroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe()
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe()
	defer cleanup2()

	hub.Broadcast(Event{Event: EventAttendanceSync})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			if event.Event != EventAttendanceSync {
				t.Errorf("got event %q, want %q", event.Event, EventAttendanceSync)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive broadcast")
		}
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe()
	if hub.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", hub.SubscriberCount())
	}

	cleanup()
	if hub.SubscriberCount() != 0 {
		t.Fatalf("SubscriberCount() = %d, want 0", hub.SubscriberCount())
	}

	// Broadcasting after cleanup must not panic on the closed channel
	hub.Broadcast(Event{Event: EventAttendanceSync})
}

func TestHubCleanupIsIdempotent(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe()
	cleanup()
	cleanup()

	if hub.SubscriberCount() != 0 {
		t.Fatalf("SubscriberCount() = %d, want 0", hub.SubscriberCount())
	}
}

func TestHubBroadcastDoesNotBlockOnFullChannel(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe()
	defer cleanup()

	done := make(chan struct{})
	go func() {
		// Channel buffer is 10; anything beyond must be dropped, not block
		for i := 0; i < 50; i++ {
			hub.Broadcast(Event{Event: EventAttendanceSync})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a full subscriber channel")
	}
}
