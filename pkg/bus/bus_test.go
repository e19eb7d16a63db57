package bus

import (
	"testing"
	"time"
)

func TestBusSubscribeUnsubscribe(t *testing.T) {
	b := New()

	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	if b.Count() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", b.Count())
	}

	b.Unsubscribe(ch1)
	if b.Count() != 1 {
		t.Fatalf("expected 1 subscriber after unsubscribe, got %d", b.Count())
	}

	b.Unsubscribe(ch2)
	if b.Count() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", b.Count())
	}
}

func TestBusPublish(t *testing.T) {
	b := New()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: EventModelSelected, Id: "m1"})

	select {
	case received := <-ch:
		if received.Type != EventModelSelected {
			t.Errorf("expected type %s, got %s", EventModelSelected, received.Type)
		}
		if received.Id != "m1" {
			t.Errorf("expected id m1, got %s", received.Id)
		}
		if received.Timestamp == 0 {
			t.Error("expected non-zero timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBusDropsForSlowConsumer(t *testing.T) {
	b := New()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Fill the buffer without draining; the overflow must not block Publish.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			b.Publish(Event{Type: EventItemsRefreshed})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow consumer")
	}

	if got := len(ch); got > 64 {
		t.Errorf("buffered more than channel capacity: %d", got)
	}
}
