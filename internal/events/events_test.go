package events

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPublishRoutesByType(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var signs, all []Event
	bus.Subscribe(TypeSignSelected, func(e Event) error {
		signs = append(signs, e)
		return nil
	})
	bus.Subscribe(Wildcard, func(e Event) error {
		all = append(all, e)
		return nil
	})

	bus.Publish(Event{Type: TypeSignSelected, UserID: 1, Attrs: map[string]string{"sign": "leo"}})
	bus.Publish(Event{Type: TypeTarotDrawn, UserID: 2})

	if assert.Len(t, signs, 1) {
		assert.Equal(t, "leo", signs[0].Attrs["sign"])
		assert.False(t, signs[0].CreatedAt.IsZero())
	}
	assert.Len(t, all, 2)
}

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	calls := 0
	bus.Subscribe(TypeLangChanged, func(Event) error {
		calls++
		return errors.New("boom")
	})
	bus.Subscribe(TypeLangChanged, func(Event) error {
		calls++
		return nil
	})

	bus.Publish(Event{Type: TypeLangChanged})
	assert.Equal(t, 2, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	assert.NotPanics(t, func() { bus.Publish(Event{Type: TypePatternCreated}) })
}
