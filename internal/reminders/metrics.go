package reminders

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery statuses used as the "status" label.
const (
	StatusSent        = "sent"
	StatusBlocked     = "blocked"
	StatusRateLimited = "rate_limited"
	StatusBadRequest  = "bad_request"
	StatusFailed      = "failed"
	StatusRenderError = "render_error"
)

// Metrics holds Prometheus metrics for the reminder system.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// RemindersSentTotal counts delivery attempts by status.
	RemindersSentTotal *prometheus.CounterVec

	// RemindersDue is the number of users due in the last scan.
	RemindersDue prometheus.Gauge

	// ScanDuration is the time a scan took.
	ScanDuration prometheus.Histogram

	// RateLimitWaits counts deliveries that had to wait for the limiter.
	RateLimitWaits prometheus.Counter
}

// NewMetrics registers the reminder metrics on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RemindersSentTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reminders_sent_total",
				Help:      "Total number of reminder deliveries by status",
			},
			[]string{"status"},
		),

		RemindersDue: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "reminders_due",
				Help:      "Number of users due in the last scan",
			},
		),

		ScanDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reminder_scan_duration_seconds",
				Help:      "Time to run one reminder scan",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5, 15, 30, 60},
			},
		),

		RateLimitWaits: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_waits_total",
				Help:      "Total number of deliveries delayed by the rate limiter",
			},
		),
	}
}

func (m *Metrics) IncSent(status string) {
	if m == nil {
		return
	}
	m.RemindersSentTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) SetDue(n int) {
	if m == nil {
		return
	}
	m.RemindersDue.Set(float64(n))
}

func (m *Metrics) ObserveScan(seconds float64) {
	if m == nil {
		return
	}
	m.ScanDuration.Observe(seconds)
}

func (m *Metrics) IncRateLimitWaits() {
	if m == nil {
		return
	}
	m.RateLimitWaits.Inc()
}
