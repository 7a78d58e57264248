package dashboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// EmptyOrdersMessage is shown when the driver has no orders
const EmptyOrdersMessage = "No orders assigned to you at the moment."

// Marker is a titled point on the map
type Marker struct {
	Position models.Location `json:"position"`
	Title    string          `json:"title"`
}

// RenderOptions control terminal output
type RenderOptions struct {
	// Color enables ANSI colour for status badges
	Color bool
	// TimeLocation is used to display creation times; nil means local time
	TimeLocation *time.Location
}

// RenderOrderList writes one card per order
func RenderOrderList(w io.Writer, orders []models.Order, opts RenderOptions) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, EmptyOrdersMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, order := range orders {
		fmt.Fprintf(tw, "Order #%d\t%s\t%s\t%s\n",
			order.ID, Badge(order.Status, opts.Color), order.Customer, addressOrLocation(order))
	}
	return tw.Flush()
}

// RenderOrderDetail writes every field of order followed by a directions link
func RenderOrderDetail(w io.Writer, order models.Order, opts RenderOptions) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Order #%d  %s\n", order.ID, Badge(order.Status, opts.Color))
	if !order.CreatedAt.IsZero() {
		loc := opts.TimeLocation
		if loc == nil {
			loc = time.Local
		}
		fmt.Fprintf(&b, "%s\n", order.CreatedAt.In(loc).Format("Jan 2, 2006 3:04:05 PM"))
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Customer:\t%s\n", order.Customer)
	if order.Phone != "" {
		fmt.Fprintf(tw, "Phone:\t%s\n", order.Phone)
	}
	if order.Email != "" {
		fmt.Fprintf(tw, "Email:\t%s\n", order.Email)
	}
	fmt.Fprintf(tw, "Delivery Address:\t%s\n", addressOrLocation(order))
	if order.Total != nil {
		fmt.Fprintf(tw, "Order Total:\t$%.2f\n", *order.Total)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(order.Items) > 0 {
		b.WriteString("Items:\n")
		for _, item := range order.Items {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
	}

	fmt.Fprintf(&b, "Directions: %s\n", DirectionsURL(order.Location))

	_, err := io.WriteString(w, b.String())
	return err
}

// DirectionsURL links to turn-by-turn directions to loc
func DirectionsURL(loc models.Location) string {
	return "https://www.google.com/maps/dir/?api=1&destination=" + formatCoord(loc.Lat) + "," + formatCoord(loc.Lng)
}

// Markers returns the dashboard map markers: the driver's position, when
// known, followed by one marker per order
func Markers(current *models.Location, orders []models.Order) []Marker {
	markers := make([]Marker, 0, len(orders)+1)
	if current != nil {
		markers = append(markers, Marker{Position: *current, Title: "Your Location"})
	}
	for _, order := range orders {
		markers = append(markers, Marker{
			Position: order.Location,
			Title:    fmt.Sprintf("Order #%d - %s", order.ID, order.Customer),
		})
	}
	return markers
}

// DetailMarkers returns the markers for a single order's map
func DetailMarkers(order models.Order, current *models.Location) []Marker {
	markers := []Marker{{Position: order.Location, Title: "Delivery Location"}}
	if current != nil {
		markers = append(markers, Marker{Position: *current, Title: "Your Location"})
	}
	return markers
}

// RenderMarkers writes markers one per line
func RenderMarkers(w io.Writer, markers []Marker) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range markers {
		fmt.Fprintf(tw, "%s\t%s, %s\n", m.Title, formatCoord(m.Position.Lat), formatCoord(m.Position.Lng))
	}
	return tw.Flush()
}

func addressOrLocation(order models.Order) string {
	if order.Address != "" {
		return order.Address
	}
	return "View location"
}

// formatCoord prints the shortest exact decimal form, e.g. -74.006
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
