// ABOUTME: Marker form controller: the create/edit/delete state machine
// ABOUTME: Holds the draft and pending location, committing through the collection manager

package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/geomark/internal/media"
	"github.com/harper/geomark/internal/models"
	"github.com/rs/zerolog"
)

var (
	// ErrAlreadyOpen is returned when opening a form that is already open.
	ErrAlreadyOpen = errors.New("form is already open")
	// ErrClosed is returned by field edits while the form is closed.
	ErrClosed = errors.New("form is closed")
	// ErrNotEditing is returned by Delete outside edit mode.
	ErrNotEditing = errors.New("form is not editing a marker")
	// ErrFieldDisabled is returned for features the variant does not expose.
	ErrFieldDisabled = errors.New("not available in this variant")
)

// State is the form's lifecycle state.
type State int

const (
	Closed State = iota
	Open
)

// Mode tells what an open form will do on save.
type Mode int

const (
	ModeNone Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "none"
	}
}

// Committer applies form results to the marker collection.
type Committer interface {
	Count() int
	Get(id string) (*models.Marker, bool)
	Create(ctx context.Context, loc models.SelectedLocation, draft models.Draft) *models.Marker
	Update(ctx context.Context, id string, patch models.Patch) bool
	Delete(ctx context.Context, id string) bool
}

// Controller is the marker form. Not safe for concurrent use; the owning
// screen drives it from one goroutine.
type Controller struct {
	committer Committer
	features  models.Features
	logger    zerolog.Logger

	mode     Mode
	draft    models.Draft
	location *models.SelectedLocation
	editID   string
}

// NewController creates a closed form committing to c.
func NewController(c Committer, variant models.Variant, logger zerolog.Logger) *Controller {
	return &Controller{
		committer: c,
		features:  variant.Features(),
		logger:    logger.With().Str("component", "form").Logger(),
	}
}

// State reports whether the form is open.
func (f *Controller) State() State {
	if f.mode == ModeNone {
		return Closed
	}
	return Open
}

// IsOpen reports whether the form is open.
func (f *Controller) IsOpen() bool { return f.mode != ModeNone }

// Mode returns the open mode, or ModeNone when closed.
func (f *Controller) Mode() Mode { return f.mode }

// Draft returns the current draft.
func (f *Controller) Draft() models.Draft { return f.draft }

// Features returns the variant features the form exposes.
func (f *Controller) Features() models.Features { return f.features }

// Location returns the pending location, if any.
func (f *Controller) Location() (models.SelectedLocation, bool) {
	if f.location == nil {
		return models.SelectedLocation{}, false
	}
	return *f.location, true
}

// EditingID returns the id of the marker being edited, or "".
func (f *Controller) EditingID() string { return f.editID }

// OpenCreate opens the form to create a marker at loc. The draft title is
// prefilled with the default title the new marker would get.
func (f *Controller) OpenCreate(loc models.SelectedLocation) error {
	if f.IsOpen() {
		return ErrAlreadyOpen
	}
	f.mode = ModeCreate
	f.draft = models.Draft{Title: models.DefaultTitle(f.committer.Count() + 1)}
	f.location = &loc
	f.editID = ""
	f.logger.Debug().Str("location", loc.String()).Msg("form opened for create")
	return nil
}

// OpenEdit opens the form seeded from marker.
func (f *Controller) OpenEdit(marker *models.Marker) error {
	if f.IsOpen() {
		return ErrAlreadyOpen
	}
	if marker == nil {
		return errors.New("no marker to edit")
	}
	loc := marker.Location()
	f.mode = ModeEdit
	f.draft = marker.Draft()
	f.location = &loc
	f.editID = marker.ID
	f.logger.Debug().Str("id", marker.ID).Msg("form opened for edit")
	return nil
}

// SetTitle replaces the draft title.
func (f *Controller) SetTitle(s string) error {
	if !f.IsOpen() {
		return ErrClosed
	}
	f.draft.Title = s
	return nil
}

// SetObservation replaces the draft observation.
func (f *Controller) SetObservation(s string) error {
	if !f.IsOpen() {
		return ErrClosed
	}
	f.draft.Observation = s
	return nil
}

// SetImageURL replaces the draft image URI.
func (f *Controller) SetImageURL(s string) error {
	if !f.IsOpen() {
		return ErrClosed
	}
	f.draft.ImageURL = strings.TrimSpace(s)
	return nil
}

// SetDate parses and stores the draft date. An empty string clears it.
func (f *Controller) SetDate(s string) error {
	if !f.IsOpen() {
		return ErrClosed
	}
	if !f.features.Date {
		return fmt.Errorf("date: %w", ErrFieldDisabled)
	}
	date, err := models.ParseDate(s)
	if err != nil {
		return err
	}
	f.draft.Date = date
	return nil
}

// PickImage asks picker for an image. A chosen URI replaces the draft image;
// cancellation and failures leave it unchanged.
func (f *Controller) PickImage(ctx context.Context, picker media.Picker) error {
	if !f.IsOpen() {
		return ErrClosed
	}
	uri, err := picker.PickImage(ctx)
	if errors.Is(err, media.ErrCancelled) {
		f.logger.Debug().Msg("image selection cancelled")
		return nil
	}
	if err != nil {
		f.logger.Warn().Err(err).Msg("image selection failed")
		return err
	}
	f.draft.ImageURL = uri
	return nil
}

// Save commits the draft and closes the form. It returns the created or
// updated marker; nil when closed or when the edited marker is gone.
func (f *Controller) Save(ctx context.Context) *models.Marker {
	var saved *models.Marker

	switch f.mode {
	case ModeNone:
		return nil
	case ModeCreate:
		if f.location == nil {
			f.logger.Warn().Msg("create form has no location, nothing saved")
			break
		}
		saved = f.committer.Create(ctx, *f.location, f.draft)
	case ModeEdit:
		if f.committer.Update(ctx, f.editID, models.PatchFromDraft(f.draft)) {
			saved, _ = f.committer.Get(f.editID)
		}
	}

	f.reset()
	return saved
}

// Delete removes the marker being edited and closes the form.
func (f *Controller) Delete(ctx context.Context) error {
	if f.mode != ModeEdit {
		return ErrNotEditing
	}
	f.committer.Delete(ctx, f.editID)
	f.reset()
	return nil
}

// Cancel closes the form, discarding the draft.
func (f *Controller) Cancel() {
	if f.IsOpen() {
		f.logger.Debug().Str("mode", f.mode.String()).Msg("form cancelled")
	}
	f.reset()
}

// Share builds the share message for the draft at its pending location.
func (f *Controller) Share() (Message, error) {
	if !f.features.Share {
		return Message{}, fmt.Errorf("share: %w", ErrFieldDisabled)
	}
	if !f.IsOpen() {
		return Message{}, ErrClosed
	}
	loc, _ := f.Location()
	return ShareMessage(f.draft, loc), nil
}

func (f *Controller) reset() {
	f.mode = ModeNone
	f.draft = models.Draft{}
	f.location = nil
	f.editID = ""
}
