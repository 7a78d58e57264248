// Command dashboard is the driver's terminal front end for the order API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/kendall-kelly/driver-dashboard-api/client"
	"github.com/kendall-kelly/driver-dashboard-api/dashboard"
	"github.com/kendall-kelly/driver-dashboard-api/models"
	"github.com/kendall-kelly/driver-dashboard-api/session"
	"github.com/kendall-kelly/driver-dashboard-api/utils"
)

const usage = `Usage: dashboard [flags] <command> [args]

Commands:
  login <username> <password>       log in and save the session
  logout                            forget the saved session
  whoami                            show the logged-in driver
  orders [-lat N -lng N]            list assigned orders
  watch [-interval 30s]             list orders and refresh until interrupted
  order <id> [-lat N -lng N]        show one order with directions
  update [-email E] <id> <status>   change an order's status
  location -lat N -lng N            report your current position
  notify [-email E] <id> <event>    notify the customer (arrived, delivered)

Flags:
`

func main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds everything a command needs
type app struct {
	api     *client.Client
	session *session.Manager
	out     io.Writer
	color   bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	apiURL := fs.String("api", envOr("DASHBOARD_API_URL", "http://localhost:3000"), "base URL of the driver dashboard API")
	sessionPath := fs.String("session", envOr("DASHBOARD_SESSION_FILE", defaultSessionPath()), "file holding the saved session")
	color := fs.Bool("color", false, "colour status badges")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	manager := session.NewManager(session.NewFileStorage(*sessionPath), nil)
	api := client.New(*apiURL, client.WithTokenSource(manager))
	manager.SetAuthenticator(api)

	if err := manager.Restore(); err != nil {
		return err
	}

	a := &app{api: api, session: manager, out: stdout, color: *color}

	command, rest := fs.Arg(0), fs.Args()[1:]
	if command == "login" {
		return a.login(ctx, rest)
	}

	if err := manager.RequireAuthenticated(); err != nil {
		return fmt.Errorf("%w, run 'dashboard login <username> <password>' first", err)
	}

	switch command {
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "orders":
		return a.orders(ctx, rest)
	case "watch":
		return a.watch(ctx, rest)
	case "order":
		return a.order(ctx, rest)
	case "update":
		return a.update(ctx, rest)
	case "location":
		return a.location(ctx, rest)
	case "notify":
		return a.notify(ctx, rest)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: dashboard login <username> <password>")
	}
	if !a.session.Login(ctx, args[0], args[1]) {
		return errors.New("login failed, check your username and password")
	}
	fmt.Fprintf(a.out, "Welcome, %s\n", a.session.User().Username)
	return nil
}

func (a *app) logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) whoami() error {
	username := "Driver"
	if user := a.session.User(); user != nil && user.Username != "" {
		username = user.Username
	}
	fmt.Fprintln(a.out, username)
	return nil
}

func (a *app) orders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	locator := locationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	orders, err := a.api.GetOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	return a.renderDashboard(ctx, orders, locator())
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	interval := fs.Duration("interval", dashboard.DefaultPollInterval, "refresh period")
	locator := locationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	poller := dashboard.NewPoller(a.api, *interval)
	err := poller.Run(ctx, func(orders []models.Order, err error) {
		fmt.Fprintf(a.out, "\n%s\n", time.Now().Format(time.Kitchen))
		if err != nil {
			fmt.Fprintf(a.out, "Failed to load orders. Please try again. (%v)\n", err)
		}
		if renderErr := a.renderDashboard(ctx, orders, locator()); renderErr != nil {
			log.Printf("Failed to render orders: %v", renderErr)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) order(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	locator := locationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: dashboard order <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	order, err := a.api.GetOrderByID(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("order #%d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to load order details: %w", err)
	}

	if err := dashboard.RenderOrderDetail(a.out, *order, dashboard.RenderOptions{Color: a.color}); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return dashboard.RenderMarkers(a.out, dashboard.DetailMarkers(*order, dashboard.LocateOptional(ctx, locator())))
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	email := fs.String("email", "", "customer email to notify instead of the one on the order")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: dashboard update <id> <status>, status is one of: %s", strings.Join(models.KnownStatuses, ", "))
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}
	status := strings.Join(fs.Args()[1:], " ")

	if err := a.api.UpdateOrderStatus(ctx, id, status, *email); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("order #%d not found", id)
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}
	fmt.Fprintf(a.out, "Order status updated to: %s\n", status)
	return nil
}

func (a *app) location(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("location", flag.ContinueOnError)
	locator := locationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	loc, err := locator().CurrentLocation(ctx)
	if err != nil {
		return fmt.Errorf("%w, pass -lat and -lng", err)
	}

	if err := a.api.SendLocation(ctx, loc.Lat, loc.Lng); err != nil {
		return fmt.Errorf("failed to send location: %w", err)
	}
	fmt.Fprintln(a.out, "Location sent successfully!")
	return nil
}

func (a *app) notify(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notify", flag.ContinueOnError)
	email := fs.String("email", "", "customer email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: dashboard notify <id> <event>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := a.api.NotifyCustomer(ctx, id, fs.Arg(1), *email); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	fmt.Fprintln(a.out, "Customer notification sent successfully!")
	return nil
}

// renderDashboard prints the order list and, when the driver's position is
// known, the map markers
func (a *app) renderDashboard(ctx context.Context, orders []models.Order, locator dashboard.Locator) error {
	username := "Driver"
	if user := a.session.User(); user != nil && user.Username != "" {
		username = user.Username
	}
	fmt.Fprintf(a.out, "Welcome, %s\nYour Assigned Orders\n\n", username)

	if err := dashboard.RenderOrderList(a.out, orders, dashboard.RenderOptions{Color: a.color}); err != nil {
		return err
	}

	current := dashboard.LocateOptional(ctx, locator)
	if current == nil {
		return nil
	}
	fmt.Fprintln(a.out)
	return dashboard.RenderMarkers(a.out, dashboard.Markers(current, orders))
}

// locationFlags registers -lat and -lng. The returned func yields a
// StaticLocator when both were given and a NoLocator otherwise.
func locationFlags(fs *flag.FlagSet) func() dashboard.Locator {
	var lat, lng float64
	var latSet, lngSet bool

	fs.Func("lat", "current latitude", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		lat, latSet = f, err == nil
		return err
	})
	fs.Func("lng", "current longitude", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		lng, lngSet = f, err == nil
		return err
	})

	return func() dashboard.Locator {
		if latSet && lngSet {
			return dashboard.StaticLocator{Location: models.Location{Lat: lat, Lng: lng}}
		}
		return dashboard.NoLocator{}
	}
}

// parseID accepts an order id with or without a leading '#'
func parseID(raw string) (uint, error) {
	id, err := utils.ParseOrderID(strings.TrimPrefix(raw, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q", raw)
	}
	return id, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "driver-dashboard", "session.json")
}
