package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBuffer is the per-subscriber channel capacity
const DefaultBuffer = 16

// Hub fans board events out to in-process subscribers. Sends never block:
// a subscriber whose buffer is full misses the event, and since every event
// only says "look at the board again" the next one it receives is enough to
// catch up.
type Hub struct {
	mu      sync.Mutex
	subs    map[int]chan Event
	nextID  int
	closed  bool
	buffer  int
	seq     atomic.Int64
	dropped atomic.Int64
}

// NewHub creates a hub whose subscribers get buffer-sized channels
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[int]chan Event),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned function unsubscribes
// and closes the channel; calling it more than once is safe.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
}

// Publish stamps the event with a sequence number and timestamp and delivers
// it to every subscriber that has room. It returns the sequence number.
func (h *Hub) Publish(event Event) int64 {
	event.SequenceID = h.seq.Add(1)
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return event.SequenceID
	}

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.dropped.Add(1)
			slog.Debug("subscriber buffer full, dropping event",
				"subscriber", id,
				"event_type", event.Type,
				"sequence_id", event.SequenceID)
		}
	}
	return event.SequenceID
}

// Subscribers returns the number of active subscribers
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped because a buffer was full
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Close closes every subscriber channel. Later publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		close(ch)
		delete(h.subs, id)
	}
}
