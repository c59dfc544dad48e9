// Package metrics defines and registers all custom Prometheus metrics for the
// smart-home API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init (promauto); HTTP request metrics are added separately by the
// echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "smarthome"

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts newly stored records.
// Label:
//   - resource: "user", "house", "room" or "device"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by resource kind.",
	},
	[]string{"resource"},
)

// IdempotentReplaysTotal counts creates answered from the idempotency store.
var IdempotentReplaysTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests replayed via Idempotency-Key.",
	},
	[]string{"resource"},
)

// ── Device metrics ────────────────────────────────────────────────────────────

// DeviceTogglesTotal counts toggle operations.
// Label:
//   - status: the status after the toggle ("ON" or "OFF")
var DeviceTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "device_toggles_total",
		Help:      "Total number of device toggles, by resulting status.",
	},
	[]string{"status"},
)

// ── Event pipeline metrics ────────────────────────────────────────────────────

// DeviceEventsPublishedTotal counts publish attempts.
// Label:
//   - result: "ok" or "error"
var DeviceEventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "device_events_published_total",
		Help:      "Total number of device state events handed to the publisher, by result.",
	},
	[]string{"result"},
)

// DeviceEventsDroppedTotal counts events discarded because a worker queue was full.
var DeviceEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "device_events_dropped_total",
		Help:      "Total number of device state events dropped on a full worker queue.",
	},
)

// DeviceEventsQueueDepth tracks the number of events waiting in each worker channel.
var DeviceEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "device_events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
