// ABOUTME: Core data models for markers and form drafts
// ABOUTME: Provides constructors, validators, and partial-update patches

package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// dateOnlyLayout is accepted by ParseDate alongside RFC3339.
const dateOnlyLayout = "2006-01-02"

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateTitle checks if a title is valid (non-blank, within length limits).
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be empty or whitespace")
	}
	if len(title) > 255 {
		return fmt.Errorf("title too long (max 255 characters)")
	}
	return nil
}

// DefaultTitle returns the placeholder title for the n-th marker.
func DefaultTitle(n int) string {
	return fmt.Sprintf("Point %d", n)
}

// ParseDate normalizes an observation date to RFC3339 in UTC.
// Accepts YYYY-MM-DD or RFC3339; an empty string stays empty.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC3339)", s)
}

// SelectedLocation is a pending coordinate pair: a map tap target or the
// coordinates of the marker being edited.
type SelectedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String formats the location with six decimals.
func (l SelectedLocation) String() string {
	return fmt.Sprintf("%.6f, %.6f", l.Latitude, l.Longitude)
}

// Marker is a persisted point-of-interest record.
// The JSON field names are the on-disk contract of the marker collection.
type Marker struct {
	ID          string    `json:"id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Title       string    `json:"title"`
	Observation string    `json:"observation,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Date        string    `json:"date,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft holds the editable form copies of a marker's fields.
type Draft struct {
	Title       string
	Observation string
	ImageURL    string
	Date        string
}

// Patch is a partial update. Nil fields are left untouched; a present empty
// string clears an optional field.
type Patch struct {
	Title       *string
	Observation *string
	ImageURL    *string
	Date        *string
	Latitude    *float64
	Longitude   *float64
}

// NewID returns a time-ordered unique marker identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewMarker creates a marker at loc from a draft. n is the position the
// marker will take in the collection and only feeds the default title.
func NewMarker(loc SelectedLocation, draft Draft, n int) *Marker {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = DefaultTitle(n)
	}
	return &Marker{
		ID:          NewID(),
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		Title:       title,
		Observation: draft.Observation,
		ImageURL:    draft.ImageURL,
		Date:        draft.Date,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Clone returns a copy of the marker.
func (m *Marker) Clone() *Marker {
	c := *m
	return &c
}

// Location returns the marker's coordinates.
func (m *Marker) Location() SelectedLocation {
	return SelectedLocation{Latitude: m.Latitude, Longitude: m.Longitude}
}

// Draft returns the marker's editable fields.
func (m *Marker) Draft() Draft {
	return Draft{
		Title:       m.Title,
		Observation: m.Observation,
		ImageURL:    m.ImageURL,
		Date:        m.Date,
	}
}

// Apply merges a patch into the marker. A blank title is ignored so the
// title never becomes empty.
func (m *Marker) Apply(p Patch) {
	if p.Title != nil && strings.TrimSpace(*p.Title) != "" {
		m.Title = strings.TrimSpace(*p.Title)
	}
	if p.Observation != nil {
		m.Observation = *p.Observation
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Latitude != nil {
		m.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		m.Longitude = *p.Longitude
	}
}

// PatchFromDraft builds a patch that replaces every editable field with the
// draft's values.
func PatchFromDraft(d Draft) Patch {
	return Patch{
		Title:       &d.Title,
		Observation: &d.Observation,
		ImageURL:    &d.ImageURL,
		Date:        &d.Date,
	}
}

// RelocatePatch builds a patch restricted to coordinates.
func RelocatePatch(lat, lng float64) Patch {
	return Patch{Latitude: &lat, Longitude: &lng}
}
