package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// ArchiveNotifier keeps a durable record of every notification by writing it
// to object storage
type ArchiveNotifier struct {
	storage S3Interface
}

// NewArchiveNotifier creates an archive notifier writing through storage
func NewArchiveNotifier(storage S3Interface) *ArchiveNotifier {
	return &ArchiveNotifier{storage: storage}
}

// ArchiveKey returns the object key a notification is stored under. The
// event is path-escaped since webhook triggers may carry arbitrary text.
func ArchiveKey(n models.Notification) string {
	return fmt.Sprintf("notifications/%d/%d_%s.json", n.OrderID, n.Timestamp.UnixNano(), url.PathEscape(n.Event))
}

// Notify stores the notification as JSON
func (a *ArchiveNotifier) Notify(ctx context.Context, n models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if err := a.storage.PutObject(ctx, ArchiveKey(n), body, "application/json"); err != nil {
		return fmt.Errorf("failed to archive notification: %w", err)
	}
	return nil
}
