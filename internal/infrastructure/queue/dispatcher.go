package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/smarthome-io/smarthome-api/internal/core/ports"
	"github.com/smarthome-io/smarthome-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes device state events to a fixed set of workers using
// consistent hashing on the device id, guaranteeing per-device ordering.
type Dispatcher struct {
	workers   []chan ports.DeviceStateEvent
	publisher ports.DeviceEventPublisher
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.DeviceEventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.DeviceStateEvent, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.DeviceStateEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Wait blocks until they have returned.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker started by Start has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an event to the worker responsible for its device. It never
// blocks: when that worker's queue is full the event is dropped and counted.
func (d *Dispatcher) Enqueue(event ports.DeviceStateEvent) {
	idx := d.shardIndex(event.DeviceID)
	select {
	case d.workers[idx] <- event:
		metrics.DeviceEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.DeviceEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("device_id", event.DeviceID).
			Int("worker_id", idx).
			Msg("device event queue full, event dropped")
	}
}

// shardIndex maps a device id deterministically to a worker index.
func (d *Dispatcher) shardIndex(deviceID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(deviceID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.DeviceStateEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.DeviceEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			if err := d.publisher.PublishDeviceState(ctx, event); err != nil {
				metrics.DeviceEventsPublishedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("device_id", event.DeviceID).
					Int("worker_id", id).
					Msg("device event publish failed")
				continue
			}
			metrics.DeviceEventsPublishedTotal.WithLabelValues("ok").Inc()
		}
	}
}
