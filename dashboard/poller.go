package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// DefaultPollInterval is how often the order list is refreshed
const DefaultPollInterval = 30 * time.Second

// OrderFetcher loads the driver's orders. *client.Client satisfies it.
type OrderFetcher interface {
	GetOrders(ctx context.Context) ([]models.Order, error)
}

// Poller keeps the most recent successfully fetched order list.
// A failed fetch is reported but never clears the list.
type Poller struct {
	fetcher  OrderFetcher
	interval time.Duration

	mu      sync.RWMutex
	orders  []models.Order
	lastErr error
}

// NewPoller creates a poller. A non-positive interval uses DefaultPollInterval.
func NewPoller(fetcher OrderFetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{fetcher: fetcher, interval: interval}
}

// Interval returns the polling period
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Refresh fetches once and returns the current list along with the fetch error, if any
func (p *Poller) Refresh(ctx context.Context) ([]models.Order, error) {
	orders, err := p.fetcher.GetOrders(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastErr = err
	if err == nil {
		p.orders = orders
	}
	return append([]models.Order(nil), p.orders...), err
}

// Orders returns the last successfully fetched list
func (p *Poller) Orders() []models.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.Order(nil), p.orders...)
}

// Err returns the error from the most recent fetch
func (p *Poller) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// Run fetches immediately and then once per interval until ctx is done.
// onUpdate, if set, is called after every fetch. Run returns ctx.Err().
func (p *Poller) Run(ctx context.Context, onUpdate func(orders []models.Order, err error)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		orders, err := p.Refresh(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if onUpdate != nil {
			onUpdate(orders, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
