package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
	"github.com/sunitahospital/hospital-system/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher delivers notifications off the request path. Notifications are
// sharded by recipient so mail to one address goes out in enqueue order.
type Dispatcher struct {
	workers []chan domain.Notification
	service ports.NotificationService
	log     zerolog.Logger

	// done is closed by Close before the worker channels. It releases an
	// Enqueue waiting on a full buffer.
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		service: service,
		log:     log,
		done:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. A worker runs until Close closes its
// channel. Once ctx is cancelled, queued notifications are drained and
// dropped instead of delivered.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands n to the worker responsible for its recipient. It blocks
// while that worker's buffer is full, but never past Close. Notifications
// enqueued after Close are dropped.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("kind", n.Kind).Str("to", n.To).Msg("dispatcher closed, notification dropped")
		return
	}

	idx := d.shardIndex(n.To)
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()

	select {
	case d.workers[idx] <- n:
	case <-d.done:
		depth.Dec()
		d.log.Warn().Str("kind", n.Kind).Str("to", n.To).Msg("dispatcher closed, notification dropped")
	}
}

// Close stops accepting notifications and waits for the workers to finish
// what is already queued. It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)

		d.mu.Lock()
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
		d.mu.Unlock()
	})

	d.wg.Wait()
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(to)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	defer d.wg.Done()
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))

	for n := range ch {
		depth.Dec()
		if ctx.Err() != nil {
			d.log.Warn().Str("kind", n.Kind).Str("to", n.To).Int("worker_id", id).Msg("shutting down, notification dropped")
			continue
		}
		if err := d.service.Deliver(ctx, n); err != nil {
			d.log.Error().Err(err).
				Str("kind", n.Kind).
				Str("to", n.To).
				Int("worker_id", id).
				Msg("notification delivery failed")
		}
	}
}
