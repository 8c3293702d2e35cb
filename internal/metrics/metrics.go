// Package metrics declares the pipeline's Prometheus instrumentation:
// ingest and state-update throughput, failure, and queue-depth gauges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pipeline_events_ingested_total",
		Help: "Total number of raw events persisted by the ingress consumer.",
	})

	EventsIngestDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_events_ingest_dropped_total",
		Help: "Total number of inbound messages dropped by the ingress consumer or the HTTP ingest endpoint, by reason.",
	}, []string{"reason"})

	StateUpdatesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_state_updates_processed_total",
		Help: "Total number of state updates successfully applied, by event type.",
	}, []string{"event_type"})

	StateUpdatesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_state_updates_failed_total",
		Help: "Total number of state updates that errored and were nacked for redelivery, by event type.",
	}, []string{"event_type"})

	StateUpdatesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_state_updates_dropped_total",
		Help: "Total number of state updates dropped without retry (malformed payload or unknown type), by reason.",
	}, []string{"reason"})

	ConsumerQueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pipeline_consumer_in_flight",
		Help: "Number of deliveries currently being processed per consumer.",
	}, []string{"queue"})
)
