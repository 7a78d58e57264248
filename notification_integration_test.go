package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kendall-kelly/driver-dashboard-api/client"
	"github.com/kendall-kelly/driver-dashboard-api/models"
	"github.com/kendall-kelly/driver-dashboard-api/services"
	"github.com/kendall-kelly/driver-dashboard-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// webhookRecorder collects webhook deliveries
type webhookRecorder struct {
	mu       sync.Mutex
	received []models.Notification
	status   int
}

func (w *webhookRecorder) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	var n models.Notification
	_ = json.NewDecoder(r.Body).Decode(&n)

	w.mu.Lock()
	w.received = append(w.received, n)
	status := w.status
	w.mu.Unlock()

	rw.WriteHeader(status)
}

func (w *webhookRecorder) notifications() []models.Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Notification(nil), w.received...)
}

// TestNotificationPipeline sends status updates through the real dispatcher
// to a webhook and the S3 archive
func TestNotificationPipeline(t *testing.T) {
	db := testutil.NewSeededDB(t)
	testutil.SetupServices(t, db)

	hook := &webhookRecorder{status: http.StatusOK}
	hookServer := httptest.NewServer(hook)
	defer hookServer.Close()

	archive := services.NewMockS3Service()
	notifier := services.MultiNotifier{
		services.LogNotifier{},
		services.NewWebhookNotifier(hookServer.URL),
		services.NewArchiveNotifier(archive),
	}
	dispatcher := services.InitDispatcher(notifier, 10, 5*time.Second)

	api := httptest.NewServer(setupRouter(testutil.TestConfig()))
	defer api.Close()

	c := client.New(api.URL, client.WithTokenSource(client.StaticToken("demo_token")))
	ctx := context.Background()

	require.NoError(t, c.UpdateOrderStatus(ctx, 2, "Out for Delivery", ""))
	require.NoError(t, c.NotifyCustomer(ctx, 2, "arrived", "jane.smith@example.com"))

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, dispatcher.Close(shutdownCtx))

	received := hook.notifications()
	require.Len(t, received, 2)
	assert.Equal(t, uint(2), received[0].OrderID)
	assert.Equal(t, "out_for_delivery", received[0].Event)
	assert.Equal(t, "jane.smith@example.com", received[0].CustomerEmail)
	assert.Equal(t, "arrived", received[1].Event)
	assert.False(t, received[1].Timestamp.IsZero())

	objects := archive.GetObjects()
	assert.Len(t, objects, 2)
	for _, n := range received {
		assert.True(t, archive.ObjectExists(services.ArchiveKey(n)), "Every notification is archived")
	}
}

// TestNotificationFailureDoesNotFailUpdate checks that a broken webhook never
// surfaces to the driver
func TestNotificationFailureDoesNotFailUpdate(t *testing.T) {
	db := testutil.NewSeededDB(t)
	testutil.SetupServices(t, db)

	hook := &webhookRecorder{status: http.StatusInternalServerError}
	hookServer := httptest.NewServer(hook)
	defer hookServer.Close()

	dispatcher := services.InitDispatcher(services.NewWebhookNotifier(hookServer.URL), 10, time.Second)

	api := httptest.NewServer(setupRouter(testutil.TestConfig()))
	defer api.Close()

	c := client.New(api.URL)
	require.NoError(t, c.UpdateOrderStatus(context.Background(), 1, "Delivered", ""))

	require.NoError(t, dispatcher.Close(context.Background()))
	assert.Len(t, hook.notifications(), 1, "Delivery was attempted once, without retry")

	order, err := c.GetOrderByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Delivered", order.Status)
}
