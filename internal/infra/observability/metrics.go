package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics of the client and the webhook receiver.
type Metrics struct {
	// Registry owns these metrics; the /metrics endpoint serves it.
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	requestsTotal    *prometheus.CounterVec
	webhooksReceived *prometheus.CounterVec
	keyFetches       *prometheus.CounterVec
}

// NewMetrics creates a dedicated registry so repeated construction in tests
// does not hit duplicate collector panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tochka_client_request_duration_seconds",
				Help:    "Duration of API calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tochka_client_requests_total",
				Help: "Total API calls by operation and outcome kind.",
			},
			[]string{"operation", "outcome"},
		),
		webhooksReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tochka_webhooks_received_total",
				Help: "Total webhook deliveries by type and result.",
			},
			[]string{"type", "result"},
		),
		keyFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tochka_signing_key_fetches_total",
				Help: "Total signing key fetch attempts by result.",
			},
			[]string{"result"},
		),
	}
}

// RecordRequest records duration and outcome of one API call.
func (m *Metrics) RecordRequest(operation, outcome string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(operation, outcome).Inc()
}

// IncrWebhook counts a webhook delivery.
func (m *Metrics) IncrWebhook(webhookType, result string) {
	m.webhooksReceived.WithLabelValues(webhookType, result).Inc()
}

// IncrKeyFetch counts a signing key fetch attempt.
func (m *Metrics) IncrKeyFetch(result string) {
	m.keyFetches.WithLabelValues(result).Inc()
}

// RequestCount returns the cumulative number of calls for operation and outcome.
func (m *Metrics) RequestCount(operation, outcome string) float64 {
	return getCounterValue(m.requestsTotal, operation, outcome)
}

// WebhookCount returns the cumulative number of deliveries for type and result.
func (m *Metrics) WebhookCount(webhookType, result string) float64 {
	return getCounterValue(m.webhooksReceived, webhookType, result)
}

// KeyFetchCount returns the cumulative number of key fetches with result.
func (m *Metrics) KeyFetchCount(result string) float64 {
	return getCounterValue(m.keyFetches, result)
}

// getCounterValue extracts the current value of a CounterVec child.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
