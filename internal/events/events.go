// Package events provides an in-process event manager for cross-module
// notifications. Emission is synchronous within the emitting request.
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType identifies a class of event
type EventType string

const (
	// TradeExecuted fires after a trade has been persisted and the portfolio updated
	TradeExecuted EventType = "trade_executed"
	// CatalogRefreshed fires after the price catalog snapshot has been swapped
	CatalogRefreshed EventType = "catalog_refreshed"
	// RecommendationsReady fires after the advisor produced a suggestion list
	RecommendationsReady EventType = "recommendations_ready"
)

// Event is a typed notification with its payload
type Event struct {
	Type       EventType
	Data       EventData
	OccurredAt time.Time
}

// Handler receives emitted events
type Handler func(Event)

// Manager registers handlers by event type and dispatches emitted events to
// them. Handlers run synchronously in emission order; a slow handler delays
// the emitting request.
type Manager struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	log      zerolog.Logger
}

// NewManager creates a new event manager
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		handlers: make(map[EventType][]Handler),
		log:      log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a handler for an event type
func (m *Manager) Subscribe(eventType EventType, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Emit dispatches an event to all handlers registered for its type
func (m *Manager) Emit(data EventData) {
	event := Event{
		Type:       data.EventType(),
		Data:       data,
		OccurredAt: time.Now(),
	}

	m.mu.RLock()
	handlers := m.handlers[event.Type]
	m.mu.RUnlock()

	m.log.Debug().Str("event", string(event.Type)).Int("handlers", len(handlers)).Msg("Emitting event")

	for _, handler := range handlers {
		handler(event)
	}
}
