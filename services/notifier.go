package services

import (
	"context"
	"errors"
	"log"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// Notifier delivers a notification to one external channel
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

// LogNotifier writes notifications to the process log. It is always enabled
// so every dispatched event leaves a trace even without a real channel.
type LogNotifier struct{}

// Notify logs the notification
func (LogNotifier) Notify(ctx context.Context, n models.Notification) error {
	log.Printf("Webhook triggered: Order %d - %s - Email: %s", n.OrderID, n.Event, n.CustomerEmail)
	return nil
}

// MultiNotifier fans a notification out to several notifiers
type MultiNotifier []Notifier

// Notify calls every notifier, even after a failure, and joins their errors
func (m MultiNotifier) Notify(ctx context.Context, n models.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
