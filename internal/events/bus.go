// Package events provides the typed event bus the engine publishes on.
// The UI subscribes to state changes rather than owning them: every
// household mutation emits an event, and the websocket stream forwards them
// to connected clients.
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType identifies a class of engine event
type EventType string

const (
	HouseholdChanged EventType = "household_changed"
	OwnerCreated     EventType = "owner_created"
	OwnerUpdated     EventType = "owner_updated"
	OwnerDeleted     EventType = "owner_deleted"
	AccountCreated   EventType = "account_created"
	AccountUpdated   EventType = "account_updated"
	AccountDeleted   EventType = "account_deleted"
	FundingChanged   EventType = "funding_changed"
	NavigationMoved  EventType = "navigation_moved"
	SnapshotSaved    EventType = "snapshot_saved"
)

// Event is one published engine event
type Event struct {
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	Module    string      `json:"module"`
	Data      interface{} `json:"data,omitempty"`
}

// Handler receives published events. Handlers must not block: slow
// consumers should buffer on their own channel and drop when full.
type Handler func(event *Event)

// Bus is an in-process publish/subscribe hub for engine events
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	log      zerolog.Logger
}

// NewBus creates an event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
		log:      log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a handler for one event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes an event to all handlers registered for its type. Delivery
// is synchronous and in registration order.
func (b *Bus) Emit(eventType EventType, module string, data interface{}) {
	event := &Event{
		Type:      eventType,
		Module:    module,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	b.mu.RLock()
	handlers := b.handlers[eventType]
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}

	b.log.Debug().
		Str("event_type", string(eventType)).
		Str("module", module).
		Int("handlers", len(handlers)).
		Msg("Event emitted")
}
