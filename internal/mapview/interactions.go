// ABOUTME: Map gesture handlers wired to the form and the marker collection
// ABOUTME: Taps open the form; drags relocate pins without it

package mapview

import (
	"context"
	"fmt"

	"github.com/harper/geomark/internal/form"
	"github.com/harper/geomark/internal/markers"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/storage"
	"github.com/rs/zerolog"
)

// Interactions translates map gestures into form and collection calls.
type Interactions struct {
	form     *form.Controller
	markers  *markers.Manager
	logger   zerolog.Logger
	dragging string
}

// NewInteractions wires gestures to f and m.
func NewInteractions(f *form.Controller, m *markers.Manager, logger zerolog.Logger) *Interactions {
	return &Interactions{
		form:    f,
		markers: m,
		logger:  logger.With().Str("component", "map").Logger(),
	}
}

// OnPress handles a tap on empty map: open the create form at loc.
func (in *Interactions) OnPress(loc models.SelectedLocation) error {
	return in.form.OpenCreate(loc)
}

// OnMarkerSelect handles a tap on a pin: open the edit form for it.
func (in *Interactions) OnMarkerSelect(id string) error {
	marker, ok := in.markers.Get(id)
	if !ok {
		return fmt.Errorf("marker %s: %w", id, storage.ErrNotFound)
	}
	return in.form.OpenEdit(marker)
}

// OnMarkerDragStart picks up a pin.
func (in *Interactions) OnMarkerDragStart(id string) bool {
	if in.form.IsOpen() {
		return false
	}
	if _, ok := in.markers.Get(id); !ok {
		return false
	}
	in.dragging = id
	return true
}

// OnMarkerDragEnd drops the pin at loc and persists its new coordinates.
// Reports whether a marker was moved.
func (in *Interactions) OnMarkerDragEnd(ctx context.Context, id string, loc models.SelectedLocation) bool {
	in.dragging = ""
	if err := models.ValidateCoordinates(loc.Latitude, loc.Longitude); err != nil {
		in.logger.Warn().Err(err).Str("id", id).Msg("drop outside the map")
		return false
	}
	return in.markers.Relocate(ctx, id, loc.Latitude, loc.Longitude)
}

// CancelDrag puts the dragged pin back without moving it.
func (in *Interactions) CancelDrag() {
	in.dragging = ""
}

// Dragging returns the id of the pin being dragged, or "".
func (in *Interactions) Dragging() string {
	return in.dragging
}
