package dashboard

import (
	"context"
	"errors"

	"github.com/kendall-kelly/driver-dashboard-api/models"
)

// ErrLocationUnavailable is returned when the driver's position is unknown
var ErrLocationUnavailable = errors.New("current location unavailable")

// Locator reports the driver's current position
type Locator interface {
	CurrentLocation(ctx context.Context) (models.Location, error)
}

// StaticLocator always reports the same position
type StaticLocator struct {
	Location models.Location
}

// CurrentLocation returns the fixed position
func (s StaticLocator) CurrentLocation(ctx context.Context) (models.Location, error) {
	return s.Location, nil
}

// NoLocator never knows the driver's position
type NoLocator struct{}

// CurrentLocation always returns ErrLocationUnavailable
func (NoLocator) CurrentLocation(ctx context.Context) (models.Location, error) {
	return models.Location{}, ErrLocationUnavailable
}

// LocateOptional returns the driver's position or nil when it is unavailable
func LocateOptional(ctx context.Context, l Locator) *models.Location {
	if l == nil {
		return nil
	}
	loc, err := l.CurrentLocation(ctx)
	if err != nil {
		return nil
	}
	return &loc
}
