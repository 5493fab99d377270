// Package metrics exposes engine counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"marketbridge/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "marketbridge"

// Recorder implements service.EventRecorder on a private registry.
type Recorder struct {
	registry      *prometheus.Registry
	events        *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
	deliveries    *prometheus.CounterVec
	resetDocs     prometheus.Counter
	resetRuns     *prometheus.CounterVec
}

var _ service.EventRecorder = (*Recorder)(nil)

// NewRecorder registers the engine collectors plus the Go and process collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	recorder := &Recorder{
		registry: registry,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Change events handled, by collection, kind and outcome.",
		}, []string{"collection", "kind", "outcome"}),
		eventDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_duration_seconds",
			Help:      "Time spent handling one change event.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection", "kind"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_deliveries_total",
			Help:      "Notification records handed to the sink, by result.",
		}, []string{"result"}),
		resetDocs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daily_reset_documents_total",
			Help:      "Listings whose daily counters were reset.",
		}),
		resetRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daily_reset_runs_total",
			Help:      "Daily maintenance runs, by result.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		recorder.events,
		recorder.eventDuration,
		recorder.deliveries,
		recorder.resetDocs,
		recorder.resetRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return recorder
}

// RecordEvent implements service.EventRecorder
func (r *Recorder) RecordEvent(collection, kind, outcome string, elapsed time.Duration) {
	r.events.WithLabelValues(collection, kind, outcome).Inc()
	r.eventDuration.WithLabelValues(collection, kind).Observe(elapsed.Seconds())
}

// RecordNotificationDelivery implements service.EventRecorder
func (r *Recorder) RecordNotificationDelivery(err error) {
	r.deliveries.WithLabelValues(result(err)).Inc()
}

// RecordDailyReset implements service.EventRecorder
func (r *Recorder) RecordDailyReset(updated int, err error) {
	r.resetDocs.Add(float64(updated))
	r.resetRuns.WithLabelValues(result(err)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}

// Module provides the recorder both as itself (for the /metrics route) and as the domain port.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewRecorder,
		func(r *Recorder) service.EventRecorder { return r },
	),
)
