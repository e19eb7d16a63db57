// Package bus provides the in-process pub/sub channel that panels use to
// talk to each other. It replaces ambient cross-component globals: every
// panel gets the bus handed to it at construction.
package bus

import (
	"sync"
	"time"
)

// Well-known event types.
const (
	EventModelSelected  = "model_selected"
	EventImageSelected  = "image_selected"
	EventFileSaved      = "file_saved"
	EventFileDeleted    = "file_deleted"
	EventItemsRefreshed = "items_refreshed"
	EventHostStatus     = "host_status"
)

// Event is a single bus message.
type Event struct {
	Type      string                 `json:"type"`
	Id        string                 `json:"id,omitempty"`
	Path      string                 `json:"path,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Bus manages subscribers and publishes events.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// New creates an event bus.
func New() *Bus {
	return &Bus{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe adds a subscriber and returns its event channel. The caller must
// call Unsubscribe when done.
func (b *Bus) Subscribe() chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	close(ch)
	b.mu.Unlock()
}

// Publish sends an event to all subscribers. Non-blocking: drops events for
// slow consumers.
func (b *Bus) Publish(event Event) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Drop event for slow consumer
		}
	}
}

// Count returns the current number of subscribers.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
