package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "texttopay"

var HistogramBuckets = []float64{
	// --- Fast responses (0 - 500ms) ---
	25, 50, 75, 100, 150, 200, 300, 400, 500,

	// --- Provider round trips (500ms - 2s) ---
	750, 1000, 1250, 1500, 1750, 2000,

	// --- Slow provider (2s - 15s) ---
	2500, 3000, 4000, 5000, 7500, 10000, 15000,

	// --- No client timeout is configured, keep a long tail ---
	30000, 60000, 120000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric associates prometheus.Collector based on Metric.Type
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	var metric prometheus.Collector
	switch m.Type {
	case "counter_vec":
		metric = prometheus.NewCounterVec(
			prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description},
			m.Args,
		)
	case "counter":
		metric = prometheus.NewCounter(
			prometheus.CounterOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description},
		)
	case "histogram_vec":
		metric = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description, Buckets: HistogramBuckets},
			m.Args,
		)
	case "summary_vec":
		metric = prometheus.NewSummaryVec(
			prometheus.SummaryOpts{Subsystem: subsystem, Name: m.Name, Help: m.Description},
			m.Args,
		)
	}
	m.MetricCollector = metric
	return metric
}

var providerDur = &Metric{
	ID:          "providerDur",
	Name:        "provider_request_dur_ms",
	Description: "Payment provider request latency in milliseconds, by operation and status code.",
	Type:        "histogram_vec",
	Args:        []string{"op", "code"},
}

var webhookEvents = &Metric{
	ID:          "webhookEvents",
	Name:        "webhook_events_total",
	Description: "Provider webhooks received, partitioned by outcome.",
	Type:        "counter_vec",
	Args:        []string{"result"},
}

var broadcastPublish = &Metric{
	ID:          "broadcastPublish",
	Name:        "broadcast_publish_total",
	Description: "Broadcast publish attempts, partitioned by driver and result.",
	Type:        "counter_vec",
	Args:        []string{"driver", "result"},
}

var domainMetrics = []*Metric{providerDur, webhookEvents, broadcastPublish}

var (
	providerDurVec      = NewMetric(providerDur, subsystem).(*prometheus.HistogramVec)
	webhookEventsVec    = NewMetric(webhookEvents, subsystem).(*prometheus.CounterVec)
	broadcastPublishVec = NewMetric(broadcastPublish, subsystem).(*prometheus.CounterVec)

	registerOnce sync.Once
)

// RegisterDomain registers the domain collectors once per process. Observing
// before registration is harmless; values are simply not exported.
func RegisterDomain(reg prometheus.Registerer, log Logger) {
	registerOnce.Do(func() {
		for _, m := range domainMetrics {
			if err := reg.Register(m.MetricCollector); err != nil && log != nil {
				log.Errorf("%s could not be registered in Prometheus, err=%v", m.Name, err)
			}
		}
	})
}

// ObserveProviderRequest records one outbound provider call. code is 0 when
// no response was received.
func ObserveProviderRequest(op string, code int, start time.Time) {
	providerDurVec.WithLabelValues(op, strconv.Itoa(code)).Observe(MillisecondsSince(start))
}

func IncWebhookEvent(result string) {
	webhookEventsVec.WithLabelValues(result).Inc()
}

func IncBroadcastPublish(driver, result string) {
	broadcastPublishVec.WithLabelValues(driver, result).Inc()
}

// MillisecondsSince returns the elapsed time in float milliseconds.
func MillisecondsSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
