// ABOUTME: Location provider abstraction and a configuration-backed implementation
// ABOUTME: Supplies the permission answer and the one-shot current position

package location

import (
	"context"
	"errors"

	"github.com/harper/geomark/internal/models"
)

// ErrPositionUnavailable is returned when no position can be determined.
var ErrPositionUnavailable = errors.New("current position unavailable")

// Provider asks for foreground location access and reads the position once.
type Provider interface {
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (models.SelectedLocation, error)
}

// StaticProvider answers from fixed values, typically read from config.
type StaticProvider struct {
	Granted  bool
	Position *models.SelectedLocation
}

// Compile-time check that StaticProvider implements Provider.
var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider. lat and lng must both be set for a
// position to be reported.
func NewStaticProvider(granted bool, lat, lng *float64) *StaticProvider {
	p := &StaticProvider{Granted: granted}
	if lat != nil && lng != nil {
		p.Position = &models.SelectedLocation{Latitude: *lat, Longitude: *lng}
	}
	return p
}

// RequestPermission returns the configured answer.
func (p *StaticProvider) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return p.Granted, nil
}

// CurrentPosition returns the configured position.
func (p *StaticProvider) CurrentPosition(ctx context.Context) (models.SelectedLocation, error) {
	if err := ctx.Err(); err != nil {
		return models.SelectedLocation{}, err
	}
	if p.Position == nil {
		return models.SelectedLocation{}, ErrPositionUnavailable
	}
	if err := models.ValidateCoordinates(p.Position.Latitude, p.Position.Longitude); err != nil {
		return models.SelectedLocation{}, err
	}
	return *p.Position, nil
}
