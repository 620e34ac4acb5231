// ABOUTME: Unit tests for data models
// ABOUTME: Tests constructors, validators, patches, and JSON field names

package models

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewMarker(t *testing.T) {
	loc := SelectedLocation{Latitude: 48.8566, Longitude: 2.3522}
	m := NewMarker(loc, Draft{Title: "Fox den", Observation: "Seen a fox"}, 1)

	if m.Title != "Fox den" {
		t.Errorf("expected title 'Fox den', got %q", m.Title)
	}
	if m.Latitude != 48.8566 || m.Longitude != 2.3522 {
		t.Errorf("unexpected coordinates (%f, %f)", m.Latitude, m.Longitude)
	}
	if m.Observation != "Seen a fox" {
		t.Errorf("expected observation, got %q", m.Observation)
	}
	if _, err := uuid.Parse(m.ID); err != nil {
		t.Errorf("expected a UUID id, got %q: %v", m.ID, err)
	}
	if m.CreatedAt.IsZero() {
		t.Error("expected non-zero CreatedAt")
	}
}

func TestNewMarker_DefaultTitle(t *testing.T) {
	m := NewMarker(SelectedLocation{}, Draft{Title: "   "}, 4)
	if m.Title != "Point 4" {
		t.Errorf("expected default title 'Point 4', got %q", m.Title)
	}
}

func TestNewMarker_UniqueIDs(t *testing.T) {
	m1 := NewMarker(SelectedLocation{}, Draft{}, 1)
	m2 := NewMarker(SelectedLocation{}, Draft{}, 2)

	if m1.ID == m2.ID {
		t.Error("expected unique IDs for different markers")
	}
}

func TestNewMarker_CreatedAtIsUTC(t *testing.T) {
	before := time.Now().Add(-time.Second)
	m := NewMarker(SelectedLocation{}, Draft{}, 1)
	after := time.Now().Add(time.Second)

	if m.CreatedAt.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", m.CreatedAt.Location())
	}
	if m.CreatedAt.Before(before) || m.CreatedAt.After(after) {
		t.Error("CreatedAt should be between before and after test times")
	}
}

func TestMarker_JSONFieldNames(t *testing.T) {
	m := &Marker{
		ID:          "m1",
		Latitude:    1,
		Longitude:   2,
		Title:       "t",
		Observation: "o",
		ImageURL:    "file:///tmp/a.jpg",
		Date:        "2024-05-01T00:00:00Z",
		CreatedAt:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"id"`, `"latitude"`, `"longitude"`, `"title"`, `"observation"`, `"imageUrl"`, `"date"`, `"createdAt"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in %s", field, data)
		}
	}
}

func TestMarker_JSONOmitsEmptyOptionalFields(t *testing.T) {
	m := &Marker{ID: "m1", Title: "t"}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"observation", "imageUrl", "date"} {
		if strings.Contains(string(data), field) {
			t.Errorf("expected %s to be omitted from %s", field, data)
		}
	}
}

func TestMarker_ReadsJavaScriptTimestamps(t *testing.T) {
	raw := `[{"id":"1718000000000","latitude":48.8566,"longitude":2.3522,"title":"Point 1","createdAt":"2024-06-10T06:13:20.000Z"}]`
	var markers []*Marker
	if err := json.Unmarshal([]byte(raw), &markers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(markers))
	}
	want := time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)
	if !markers[0].CreatedAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, markers[0].CreatedAt)
	}
}

func TestMarker_Apply(t *testing.T) {
	base := &Marker{ID: "m1", Title: "Old", Observation: "obs", ImageURL: "img", Date: "d", Latitude: 1, Longitude: 2}

	title := "X"
	m := base.Clone()
	m.Apply(Patch{Title: &title})

	if m.Title != "X" {
		t.Errorf("expected title X, got %q", m.Title)
	}
	if m.Observation != "obs" || m.ImageURL != "img" || m.Date != "d" || m.Latitude != 1 || m.Longitude != 2 {
		t.Errorf("expected other fields unchanged, got %+v", m)
	}
}

func TestMarker_ApplyBlankTitleIgnored(t *testing.T) {
	m := &Marker{Title: "Keep"}
	blank := "  "
	m.Apply(Patch{Title: &blank})
	if m.Title != "Keep" {
		t.Errorf("expected title to stay 'Keep', got %q", m.Title)
	}
}

func TestMarker_ApplyClearsOptionalField(t *testing.T) {
	m := &Marker{Title: "t", Observation: "obs"}
	empty := ""
	m.Apply(Patch{Observation: &empty})
	if m.Observation != "" {
		t.Errorf("expected observation cleared, got %q", m.Observation)
	}
}

func TestRelocatePatch(t *testing.T) {
	m := &Marker{Title: "t", Latitude: 1, Longitude: 1}
	m.Apply(RelocatePatch(2.35, 48.86))
	if m.Latitude != 2.35 || m.Longitude != 48.86 {
		t.Errorf("unexpected coordinates (%f, %f)", m.Latitude, m.Longitude)
	}
	if m.Title != "t" {
		t.Errorf("expected title unchanged, got %q", m.Title)
	}
}

func TestMarker_CloneIsIndependent(t *testing.T) {
	m := &Marker{Title: "a"}
	c := m.Clone()
	c.Title = "b"
	if m.Title != "a" {
		t.Error("clone should not alias the original")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty", "", "", false},
		{"date_only", "2024-05-01", "2024-05-01T00:00:00Z", false},
		{"rfc3339_utc", "2024-05-01T10:30:00Z", "2024-05-01T10:30:00Z", false},
		{"rfc3339_offset", "2024-05-01T12:30:00+02:00", "2024-05-01T10:30:00Z", false},
		{"garbage", "yesterday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid_paris", 48.8566, 2.3522, false},
		{"valid_origin", 0, 0, false},
		{"valid_north_pole", 90, 0, false},
		{"valid_south_pole", -90, 0, false},
		{"valid_antimeridian_east", 0, 180, false},
		{"valid_antimeridian_west", 0, -180, false},
		{"invalid_lat_too_high", 91, 0, true},
		{"invalid_lat_too_low", -91, 0, true},
		{"invalid_lng_too_high", 0, 181, true},
		{"invalid_lng_too_low", 0, -181, true},
		{"invalid_lat_nan", math.NaN(), 0, true},
		{"invalid_lng_nan", 0, math.NaN(), true},
		{"invalid_lat_inf", math.Inf(1), 0, true},
		{"invalid_lng_inf", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates(%f, %f) error = %v, wantErr %v", tt.lat, tt.lng, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid_simple", "Fox den", false},
		{"valid_single_char", "a", false},
		{"invalid_empty", "", true},
		{"invalid_whitespace_only", "   ", true},
		{"valid_max_length", strings.Repeat("a", 255), false},
		{"invalid_too_long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input   string
		want    Variant
		wantErr bool
	}{
		{"", VariantGeoMobile, false},
		{"geomobile", VariantGeoMobile, false},
		{"WildWatch", VariantWildWatch, false},
		{"other", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestVariantFeatures(t *testing.T) {
	if f := VariantGeoMobile.Features(); f.Date || f.Share {
		t.Errorf("geomobile should have no optional features, got %+v", f)
	}
	if f := VariantWildWatch.Features(); !f.Date || !f.Share {
		t.Errorf("wildwatch should enable date and share, got %+v", f)
	}
}
