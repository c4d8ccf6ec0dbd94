package realtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/remeh/sizedwaitgroup"
)

// Notifier is what business handlers use to push a notification without
// waiting for delivery.
type Notifier interface {
	Notify(userID uint, message string)
}

type notification struct {
	userID  uint
	message string
}

// Dispatcher decouples request handlers from socket writes: Notify only
// enqueues, and a fixed pool of workers drains the queue into the Manager.
type Dispatcher struct {
	manager *Manager
	queue   chan notification
	workers int
	wg      sizedwaitgroup.SizedWaitGroup
	done    chan struct{}
	stop    sync.Once
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher with the given pool and queue sizes.
// Call Start before Notify has any effect.
func NewDispatcher(manager *Manager, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		manager: manager,
		queue:   make(chan notification, queueSize),
		workers: workers,
		wg:      sizedwaitgroup.New(workers),
		done:    make(chan struct{}),
		logger:  logger.With("component", "dispatcher"),
	}
}

// Start launches the worker pool. Workers flush the queue and exit when ctx
// is canceled or Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add()
		go d.worker(ctx)
	}
	d.logger.Info("started notification workers", "count", d.workers)
}

// Notify queues message for userID and returns immediately. When the queue
// is full or the dispatcher is stopped, the notification is dropped.
func (d *Dispatcher) Notify(userID uint, message string) {
	select {
	case <-d.done:
		return
	default:
	}

	select {
	case d.queue <- notification{userID: userID, message: message}:
	default:
		d.logger.Warn("notification queue full, dropping", "user_id", userID)
	}
}

// Stop signals workers to flush what is already queued and exit, then
// waits for them. Anything still queued after the workers are gone, for
// example because ctx was canceled first, is delivered before Stop returns.
func (d *Dispatcher) Stop() {
	d.stop.Do(func() { close(d.done) })
	d.wg.Wait()
	d.drain()
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case <-d.done:
			d.drain()
			return
		case n := <-d.queue:
			d.manager.SendToUser(n.userID, n.message)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case n := <-d.queue:
			d.manager.SendToUser(n.userID, n.message)
		default:
			return
		}
	}
}

var _ Notifier = (*Dispatcher)(nil)
