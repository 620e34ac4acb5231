// ABOUTME: Location request flow and the screen router driven by it
// ABOUTME: Tracks permission status and the last known position

package location

import (
	"context"
	"sync"

	"github.com/harper/geomark/internal/models"
	"github.com/rs/zerolog"
)

// Status is the outcome of the location request flow.
type Status int

const (
	Loading Status = iota
	Denied
	Ready
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Denied:
		return "denied"
	default:
		return "ready"
	}
}

// Screen is a top-level screen of the app.
type Screen int

const (
	ScreenSplash Screen = iota
	ScreenPermissionError
	ScreenMap
)

func (s Screen) String() string {
	switch s {
	case ScreenSplash:
		return "splash"
	case ScreenPermissionError:
		return "permission-error"
	default:
		return "map"
	}
}

// Route picks the screen to show for a status.
func Route(status Status) Screen {
	switch status {
	case Loading:
		return ScreenSplash
	case Denied:
		return ScreenPermissionError
	default:
		return ScreenMap
	}
}

// Tracker runs the permission and position request against a Provider.
type Tracker struct {
	provider Provider
	logger   zerolog.Logger

	mu       sync.RWMutex
	status   Status
	position *models.SelectedLocation
}

// NewTracker creates a tracker in the Loading state.
func NewTracker(provider Provider, logger zerolog.Logger) *Tracker {
	return &Tracker{
		provider: provider,
		logger:   logger.With().Str("component", "location").Logger(),
	}
}

// Request asks for permission and, when granted, reads the position once.
// A permission error counts as a denial. A failed position read is logged
// and leaves the position unset; the map still shows.
func (t *Tracker) Request(ctx context.Context) Status {
	t.set(Loading, nil)

	granted, err := t.provider.RequestPermission(ctx)
	if err != nil {
		t.logger.Error().Err(err).Msg("location permission request failed")
		t.set(Denied, nil)
		return Denied
	}
	if !granted {
		t.logger.Warn().Msg("location permission denied")
		t.set(Denied, nil)
		return Denied
	}

	pos, err := t.provider.CurrentPosition(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("could not read current position")
		t.set(Ready, nil)
		return Ready
	}

	t.logger.Debug().Str("position", pos.String()).Msg("position acquired")
	t.set(Ready, &pos)
	return Ready
}

// Retry re-runs the request flow after a denial, e.g. from the permission
// error screen once the user has changed their settings.
func (t *Tracker) Retry(ctx context.Context) Status {
	t.logger.Info().Str("previous", t.Status().String()).Msg("retrying location request")
	return t.Request(ctx)
}

// Status returns the current status.
func (t *Tracker) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Screen routes the current status.
func (t *Tracker) Screen() Screen {
	return Route(t.Status())
}

// Position returns the last known position.
func (t *Tracker) Position() (models.SelectedLocation, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.position == nil {
		return models.SelectedLocation{}, false
	}
	return *t.position, true
}

func (t *Tracker) set(status Status, pos *models.SelectedLocation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
	t.position = pos
}
