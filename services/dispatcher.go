package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// Dispatcher signals external parties about order lifecycle events.
// Dispatch is fire-and-forget: it never blocks on delivery and never reports
// a delivery failure to the caller.
type Dispatcher interface {
	Dispatch(notification models.Notification)
}

// AsyncDispatcher hands notifications to a background worker through a
// bounded queue. When the queue is full the notification is dropped and
// logged.
type AsyncDispatcher struct {
	notifier Notifier
	timeout  time.Duration
	queue    chan models.Notification
	done     chan struct{}

	mu     sync.RWMutex
	closed bool
}

var dispatcherInstance Dispatcher

// NewAsyncDispatcher starts a dispatcher delivering through notifier.
// Each delivery gets its own timeout context.
func NewAsyncDispatcher(notifier Notifier, queueSize int, timeout time.Duration) *AsyncDispatcher {
	if queueSize < 1 {
		queueSize = 1
	}

	d := &AsyncDispatcher{
		notifier: notifier,
		timeout:  timeout,
		queue:    make(chan models.Notification, queueSize),
		done:     make(chan struct{}),
	}
	go d.run()
	return d
}

// InitDispatcher starts an async dispatcher and registers it as the global instance
func InitDispatcher(notifier Notifier, queueSize int, timeout time.Duration) *AsyncDispatcher {
	d := NewAsyncDispatcher(notifier, queueSize, timeout)
	dispatcherInstance = d
	return d
}

// GetDispatcher returns the initialized dispatcher instance
func GetDispatcher() Dispatcher {
	return dispatcherInstance
}

// SetDispatcher sets the dispatcher instance (primarily for testing)
func SetDispatcher(d Dispatcher) {
	dispatcherInstance = d
}

// Dispatch queues the notification without waiting for delivery
func (d *AsyncDispatcher) Dispatch(n models.Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Printf("Dispatcher closed, dropping notification for order %d (%s)", n.OrderID, n.Event)
		return
	}

	select {
	case d.queue <- n:
	default:
		log.Printf("Notification queue full, dropping notification for order %d (%s)", n.OrderID, n.Event)
	}
}

// Close stops accepting notifications and waits until the queue is drained
// or ctx is done
func (d *AsyncDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *AsyncDispatcher) run() {
	defer close(d.done)

	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *AsyncDispatcher) deliver(n models.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, n); err != nil {
		log.Printf("Failed to deliver notification for order %d (%s): %v", n.OrderID, n.Event, err)
	}
}
