// Package dashboard renders orders for drivers and keeps the order list fresh.
package dashboard

import (
	"fmt"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// Color is an RGB colour
type Color struct {
	R, G, B uint8
}

// Status badge colours
var (
	ColorDelivered      = Color{16, 185, 129}
	ColorOutForDelivery = Color{59, 130, 246}
	ColorPreparing      = Color{245, 158, 11}
	ColorDefault        = Color{107, 114, 128}
)

// CSS returns the colour as rgb(r, g, b)
func (c Color) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// CSSAlpha returns the colour as rgba(r, g, b, alpha)
func (c Color) CSSAlpha(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, alpha)
}

// BadgeStyle is the foreground and background of a status badge
type BadgeStyle struct {
	Color      string `json:"color"`
	Background string `json:"backgroundColor"`
}

// StatusColor picks the badge colour for status. Only exact matches are
// coloured; every other status, Ready included, is grey.
func StatusColor(status string) Color {
	switch status {
	case models.StatusDelivered:
		return ColorDelivered
	case models.StatusOutForDelivery:
		return ColorOutForDelivery
	case models.StatusPreparing:
		return ColorPreparing
	default:
		return ColorDefault
	}
}

// StatusStyle returns the badge style for status
func StatusStyle(status string) BadgeStyle {
	c := StatusColor(status)
	return BadgeStyle{
		Color:      c.CSS(),
		Background: c.CSSAlpha(0.1),
	}
}

// Badge renders status for a terminal, using 24-bit ANSI colour when colored is set
func Badge(status string, colored bool) string {
	if !colored {
		return "[" + status + "]"
	}
	c := StatusColor(status)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm[%s]\x1b[0m", c.R, c.G, c.B, status)
}
