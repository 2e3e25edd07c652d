package hub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"clipflow/internal/api"
	"clipflow/internal/logging"
)

// Observer is a live push channel admitted to the hub. Events arrive as
// pre-serialized JSON payloads; the channel is closed when the observer is
// dropped.
type Observer struct {
	id     string
	events chan []byte
	closed bool
}

// ID returns the observer's identity handle.
func (o *Observer) ID() string {
	return o.id
}

// Events returns the observer's outbound event channel.
func (o *Observer) Events() <-chan []byte {
	return o.events
}

// Hub multicasts status events to every admitted observer. Broadcasts never
// block on a slow member: an observer whose buffer is full is dropped and its
// channel closed while delivery to the rest continues.
type Hub struct {
	mu      sync.Mutex
	members map[string]*Observer
	buffer  int
	logger  *slog.Logger
}

// New constructs a hub with the given per-observer outbound buffer size.
func New(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		members: make(map[string]*Observer),
		buffer:  buffer,
		logger:  logging.NewComponentLogger(logger, "observer-hub"),
	}
}

// Admit registers a new observer and returns its handle.
func (h *Hub) Admit() *Observer {
	observer := &Observer{
		id:     uuid.NewString(),
		events: make(chan []byte, h.buffer),
	}

	h.mu.Lock()
	h.members[observer.id] = observer
	count := len(h.members)
	h.mu.Unlock()

	h.logger.Info("observer connected", logging.String("observer", observer.id), logging.Int("observers", count))
	return observer
}

// Drop removes an observer and closes its channel. Safe to call repeatedly.
func (h *Hub) Drop(observer *Observer) {
	if observer == nil {
		return
	}

	h.mu.Lock()
	_, present := h.members[observer.id]
	if present {
		delete(h.members, observer.id)
	}
	closed := observer.closed
	observer.closed = true
	count := len(h.members)
	h.mu.Unlock()

	if !closed {
		close(observer.events)
	}
	if present {
		h.logger.Info("observer disconnected", logging.String("observer", observer.id), logging.Int("observers", count))
	}
}

// Broadcast serializes the event once and enqueues it to every current member.
// A member that cannot keep up is dropped; the broadcast continues for the
// others. Per-observer ordering follows hub processing order because enqueues
// happen under the hub lock.
func (h *Hub) Broadcast(event api.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	var stalled []*Observer

	h.mu.Lock()
	for _, observer := range h.members {
		select {
		case observer.events <- payload:
		default:
			stalled = append(stalled, observer)
		}
	}
	for _, observer := range stalled {
		delete(h.members, observer.id)
		observer.closed = true
	}
	h.mu.Unlock()

	for _, observer := range stalled {
		close(observer.events)
		h.logger.Warn("observer dropped: send buffer full",
			logging.String("observer", observer.id),
			logging.String(logging.FieldVideo, event.Filename))
	}
	return nil
}

// Len reports the number of currently admitted observers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.members)
}
