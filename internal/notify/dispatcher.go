// Package notify delivers notifications asynchronously through a bounded
// queue drained by a fixed set of workers.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// sendTimeout bounds a single delivery attempt.
const sendTimeout = 5 * time.Second

// Sender delivers one notification.
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

type dropRecorder interface {
	NotificationDropped()
}

// Config sizes the dispatcher.
type Config struct {
	Workers   int
	QueueSize int
}

// Dispatcher fans notifications out to workers. Enqueue never blocks: when
// the queue is full the notification is dropped and counted.
type Dispatcher struct {
	sender  Sender
	log     *slog.Logger
	metrics dropRecorder
	workers int

	mu     sync.RWMutex
	queue  chan domain.Notification
	closed bool

	sent    atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithDropRecorder reports dropped notifications to m.
func WithDropRecorder(m dropRecorder) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// NewDispatcher creates a dispatcher. Workers do not start until Run.
func NewDispatcher(log *slog.Logger, sender Sender, cfg Config, opts ...Option) *Dispatcher {
	workers := max(cfg.Workers, 1)
	size := max(cfg.QueueSize, 1)

	d := &Dispatcher{
		sender:  sender,
		log:     log.With("component", "notify"),
		workers: workers,
		queue:   make(chan domain.Notification, size),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enqueue schedules n for delivery. It reports false if n was dropped
// because the queue is full or the dispatcher has stopped.
func (d *Dispatcher) Enqueue(n domain.Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(n, "stopped")
		return false
	}

	select {
	case d.queue <- n:
		return true
	default:
		d.drop(n, "queue full")
		return false
	}
}

func (d *Dispatcher) drop(n domain.Notification, reason string) {
	d.dropped.Add(1)
	if d.metrics != nil {
		d.metrics.NotificationDropped()
	}
	d.log.Warn("notification dropped",
		slog.String("reason", reason),
		slog.String("user_id", n.UserID.String()),
		slog.String("kind", n.Kind),
	)
}

// Run starts the workers and blocks until ctx is done. Queued notifications
// are delivered before Run returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	// Deliveries outlive ctx so the queue can drain on shutdown.
	sendCtx := context.WithoutCancel(ctx)

	for range d.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range d.queue {
				d.deliver(sendCtx, n)
			}
		}()
	}

	d.log.Info("notification dispatcher started", slog.Int("workers", d.workers))

	<-ctx.Done()

	d.mu.Lock()
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	wg.Wait()

	d.log.Info("notification dispatcher stopped",
		slog.Int64("sent", d.sent.Load()),
		slog.Int64("failed", d.failed.Load()),
		slog.Int64("dropped", d.dropped.Load()),
	)
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, n domain.Notification) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, n); err != nil {
		d.failed.Add(1)
		d.log.Error("send notification",
			slog.String("user_id", n.UserID.String()),
			slog.String("kind", n.Kind),
			slog.String("error", err.Error()),
		)
		return
	}
	d.sent.Add(1)
}

// Stats holds delivery counters.
type Stats struct {
	Sent    int64
	Failed  int64
	Dropped int64
}

// Stats returns the delivery counters so far.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Sent:    d.sent.Load(),
		Failed:  d.failed.Load(),
		Dropped: d.dropped.Load(),
	}
}
