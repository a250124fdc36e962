package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types published by the API.
const (
	AccountCreated = "account.created"
	ProfileCreated = "profile.created"
	ProductCreated = "product.created"
	UploadCreated  = "upload.created"
)

// subscriberBuffer is how many events a subscriber may fall behind before
// new events are dropped for it.
const subscriberBuffer = 32

// Event is a single change notification.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Collection string      `json:"collection"`
	Time       time.Time   `json:"time"`
	Data       interface{} `json:"data,omitempty"`
}

// Hub fans events out to subscribers. All methods are safe for concurrent
// use; Publish never blocks on a slow subscriber.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewHub creates a hub with no subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber. The returned cancel func
// unregisters it and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish stamps and delivers an event to every subscriber and returns it.
func (h *Hub) Publish(eventType, collection string, data interface{}) Event {
	ev := Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Collection: collection,
		Time:       time.Now().UTC(),
		Data:       data,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
