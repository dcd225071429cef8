package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitlog/workout-api/internal/api/metrics"
	"github.com/fitlog/workout-api/internal/core/domain"
	"github.com/fitlog/workout-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes workout events to a fixed set of workers using consistent
// hashing on the workout ID, guaranteeing per-workout event ordering.
type Dispatcher struct {
	workers []chan domain.WorkoutEvent
	service ports.EventService
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.WorkoutEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.WorkoutEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit when ctx is cancelled or
// once Close has been called and their queue is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its workout. It never
// blocks: when the worker queue is full the event is dropped and counted.
func (d *Dispatcher) Enqueue(event domain.WorkoutEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	idx := d.shardIndex(event.WorkoutID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EventsDroppedTotal.Inc()
		d.log.Warn().
			Str("workout_id", event.WorkoutID).
			Str("type", string(event.Type)).
			Int("worker_id", idx).
			Msg("event queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queued ones are processed.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a workout ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(workoutID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(workoutID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.WorkoutEvent) {
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
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			err := d.service.Process(ctx, event)
			metrics.EventProcessingDuration.WithLabelValues(string(event.Type)).Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.EventsErrorsTotal.WithLabelValues(string(event.Type)).Inc()
				d.log.Error().Err(err).
					Str("workout_id", event.WorkoutID).
					Int("worker_id", id).
					Msg("event processing failed")
				continue
			}
			metrics.EventsProcessedTotal.WithLabelValues(string(event.Type)).Inc()
		}
	}
}
