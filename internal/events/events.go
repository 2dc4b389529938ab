package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types published by the service layer.
const (
	TypeSignSelected    = "profile.sign"
	TypeLangChanged     = "profile.lang"
	TypeReminderChanged = "profile.reminder"
	TypeTarotDrawn      = "tarot.drawn"
	TypePatternCreated  = "pattern.created"
	TypeUserCreated     = "user.created"
)

// Wildcard subscribes a handler to every event type.
const Wildcard = "*"

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	UserID    int64
	Attrs     map[string]string
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	logger      zerolog.Logger
}

// NewEventBus constructs an empty bus. Handler errors are logged on logger.
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventHandler),
		logger:      logger.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers a handler for a given event type, or Wildcard.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type, then wildcard subscribers.
// Handlers run synchronously in the caller's goroutine.
func (b *EventBus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	handlers = append(handlers, b.subscribers[Wildcard]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			b.logger.Warn().Err(err).Str("type", event.Type).Int64("user_id", event.UserID).Msg("event handler failed")
		}
	}
}
