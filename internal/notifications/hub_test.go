package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestHubPublishSubscribe проверяет доставку событий подписчику.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	hub.Publish(EventStateUpdated, map[string]int{"version": 2})

	select {
	case event := <-ch:
		if event.Type != EventStateUpdated {
			t.Fatalf("expected event type %s, got %s", EventStateUpdated, event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
		if event.ID == uuid.Nil {
			t.Fatal("expected event id to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe()
	unsubscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
	if hub.Subscribers() != 0 {
		t.Fatalf("expected no subscribers, got %d", hub.Subscribers())
	}
}

// TestHubDropsWhenBufferFull проверяет, что публикация не блокируется на медленном подписчике.
func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(EventAIResult, nil)
	}

	if len(ch) != subscriberBuffer {
		t.Fatalf("expected %d buffered events, got %d", subscriberBuffer, len(ch))
	}
}
