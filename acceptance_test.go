package main

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kendall-kelly/driver-dashboard-api/client"
	"github.com/kendall-kelly/driver-dashboard-api/dashboard"
	"github.com/kendall-kelly/driver-dashboard-api/services"
	"github.com/kendall-kelly/driver-dashboard-api/session"
	"github.com/kendall-kelly/driver-dashboard-api/testutil"
	"github.com/stretchr/testify/suite"
)

// DriverAcceptanceTestSuite drives a running server the way the dashboard does:
// over HTTP through the client with a persisted session
type DriverAcceptanceTestSuite struct {
	suite.Suite
	server   *httptest.Server
	notifier *services.MockNotifier
	storage  *session.FileStorage
	manager  *session.Manager
	api      *client.Client
}

func (suite *DriverAcceptanceTestSuite) SetupTest() {
	db := testutil.NewSeededDB(suite.T())
	suite.notifier = testutil.SetupServices(suite.T(), db)
	suite.server = httptest.NewServer(setupRouter(testutil.TestConfig()))
	suite.T().Cleanup(suite.server.Close)

	suite.storage = session.NewFileStorage(filepath.Join(suite.T().TempDir(), "session.json"))
	suite.manager = session.NewManager(suite.storage, nil)
	suite.api = client.New(suite.server.URL, client.WithTokenSource(suite.manager))
	suite.manager.SetAuthenticator(suite.api)
}

func (suite *DriverAcceptanceTestSuite) TestLoginPersistsSession() {
	ctx := context.Background()

	suite.False(suite.manager.Login(ctx, "admin", "wrong"))
	suite.False(suite.manager.IsAuthenticated())

	suite.True(suite.manager.Login(ctx, "admin", "admin123"))
	suite.Equal("demo_token", suite.manager.Token())

	// A new dashboard run picks the session up from disk
	restored := session.NewManager(session.NewFileStorage(suite.storage.Path()), nil)
	suite.Require().NoError(restored.Restore())
	suite.True(restored.IsAuthenticated())
	suite.Equal("admin", restored.User().Username)

	suite.Require().NoError(restored.Logout())
	fresh := session.NewManager(suite.storage, nil)
	suite.Require().NoError(fresh.Restore())
	suite.False(fresh.IsAuthenticated())
}

func (suite *DriverAcceptanceTestSuite) TestDeliverAnOrder() {
	ctx := context.Background()
	suite.Require().True(suite.manager.Login(ctx, "admin", "admin123"))

	orders, err := suite.api.GetOrders(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal("John Doe", orders[0].Customer)
	suite.Equal("Jane Smith", orders[1].Customer)

	order, err := suite.api.GetOrderByID(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal("Preparing", order.Status)
	suite.Equal("https://www.google.com/maps/dir/?api=1&destination=40.7128,-74.006",
		dashboard.DirectionsURL(order.Location))

	suite.Require().NoError(suite.api.UpdateOrderStatus(ctx, 1, "Out for Delivery", order.Email))
	suite.Require().NoError(suite.api.SendLocation(ctx, 40.71, -74.0))
	suite.Require().NoError(suite.api.NotifyCustomer(ctx, 1, "arrived", order.Email))
	suite.Require().NoError(suite.api.UpdateOrderStatus(ctx, 1, "Delivered", ""))
	suite.Require().NoError(suite.api.UpdateOrderStatus(ctx, 1, "Delivered", ""), "Repeated updates succeed")

	order, err = suite.api.GetOrderByID(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal("Delivered", order.Status)

	var events []string
	for _, n := range suite.notifier.GetNotifications() {
		suite.Equal(uint(1), n.OrderID)
		suite.Equal("john.doe@example.com", n.CustomerEmail)
		events = append(events, n.Event)
	}
	suite.Equal([]string{"out_for_delivery", "arrived", "delivered", "delivered"}, events)
}

func (suite *DriverAcceptanceTestSuite) TestUnknownOrder() {
	ctx := context.Background()

	_, err := suite.api.GetOrderByID(ctx, 999)
	suite.ErrorIs(err, client.ErrNotFound)

	err = suite.api.UpdateOrderStatus(ctx, 999, "Delivered", "")
	suite.ErrorIs(err, client.ErrNotFound)
	suite.Empty(suite.notifier.GetNotifications())
}

func (suite *DriverAcceptanceTestSuite) TestPollerSeesUpdates() {
	ctx := context.Background()
	poller := dashboard.NewPoller(suite.api, dashboard.DefaultPollInterval)

	orders, err := poller.Refresh(ctx)
	suite.Require().NoError(err)
	suite.Equal("Preparing", orders[0].Status)

	suite.Require().NoError(suite.api.UpdateOrderStatus(ctx, 1, "Ready", ""))

	orders, err = poller.Refresh(ctx)
	suite.Require().NoError(err)
	suite.Equal("Ready", orders[0].Status)

	suite.server.Close()
	orders, err = poller.Refresh(ctx)
	suite.Error(err)
	suite.Len(orders, 2, "The last good list survives a failed poll")
}

func TestDriverAcceptanceTestSuite(t *testing.T) {
	suite.Run(t, new(DriverAcceptanceTestSuite))
}
