// Package metrics exposes the bot's Prometheus counters.
package metrics

import (
	"sync"

	"astrobot/internal/events"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astrobot",
			Name:      "commands_total",
			Help:      "Count of handled bot commands and callbacks.",
		},
		[]string{"command"},
	)

	domainEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astrobot",
			Name:      "events_total",
			Help:      "Count of domain events by type.",
		},
		[]string{"type"},
	)

	signSelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astrobot",
			Name:      "sign_selected_total",
			Help:      "Count of sign selections by sign.",
		},
		[]string{"sign"},
	)

	handlerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astrobot",
			Name:      "handler_errors_total",
			Help:      "Count of update handling errors by kind.",
		},
		[]string{"kind"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(commands, domainEvents, signSelections, handlerErrors)
	})
}

func IncCommand(command string) {
	commands.WithLabelValues(command).Inc()
}

func IncHandlerError(kind string) {
	handlerErrors.WithLabelValues(kind).Inc()
}

// Subscribe counts every event published on bus.
func Subscribe(bus *events.EventBus) {
	bus.Subscribe(events.Wildcard, func(e events.Event) error {
		domainEvents.WithLabelValues(e.Type).Inc()
		if e.Type == events.TypeSignSelected {
			signSelections.WithLabelValues(e.Attrs["sign"]).Inc()
		}
		return nil
	})
}
