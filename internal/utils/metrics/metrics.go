package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Webhook outcomes recorded on WebhookEventsTotal.
const (
	OutcomeProcessed        = "processed"
	OutcomeDuplicate        = "duplicate"
	OutcomeInformational    = "informational"
	OutcomeSignatureInvalid = "signature_invalid"
	OutcomeMalformed        = "malformed"
	OutcomeLedgerError      = "ledger_error"
	OutcomeAbsorbedError    = "absorbed_error"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Webhook metrics
	WebhookEventsTotal      *prometheus.CounterVec
	WebhookDuration         prometheus.Histogram
	OrderTransitionsTotal   *prometheus.CounterVec
	NotificationsTotal      *prometheus.CounterVec
	NotificationPushesTotal *prometheus.CounterVec

	// Operator alerts
	AlertsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance registered against reg.
// A nil reg registers against the default Prometheus registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "boostpay"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		WebhookEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "events_total",
				Help:      "Inbound payment webhook deliveries by outcome",
			},
			[]string{"outcome"},
		),
		WebhookDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "handle_duration_seconds",
				Help:      "Time spent handling one webhook delivery",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		OrderTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "order",
				Name:      "transitions_total",
				Help:      "Order state transitions applied by webhooks",
			},
			[]string{"from", "to"},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notification",
				Name:      "created_total",
				Help:      "Notification rows created by audience",
			},
			[]string{"audience", "type"},
		),
		NotificationPushesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "notification",
				Name:      "pushes_total",
				Help:      "Notifications handed to the outbound push queue",
			},
			[]string{"result"}, // result: ok, error, breaker_open
		),

		AlertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ops",
				Name:      "alerts_total",
				Help:      "Operator alerts raised by kind",
			},
			[]string{"kind"},
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := statusCodeToString(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordWebhook records the outcome of one webhook delivery.
func (m *Metrics) RecordWebhook(outcome string, duration time.Duration) {
	m.WebhookEventsTotal.WithLabelValues(outcome).Inc()
	m.WebhookDuration.Observe(duration.Seconds())
}

// RecordTransition records an applied order transition.
func (m *Metrics) RecordTransition(from, to string) {
	if from == "" {
		from = "none"
	}
	m.OrderTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordNotification records a created notification row.
func (m *Metrics) RecordNotification(audience, notificationType string) {
	m.NotificationsTotal.WithLabelValues(audience, notificationType).Inc()
}

// RecordPush records an outbound push attempt.
func (m *Metrics) RecordPush(result string) {
	m.NotificationPushesTotal.WithLabelValues(result).Inc()
}

// RecordAlert records an operator alert.
func (m *Metrics) RecordAlert(kind string) {
	m.AlertsTotal.WithLabelValues(kind).Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
