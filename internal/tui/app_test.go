// ABOUTME: Tests for the root app model
// ABOUTME: Verifies screen routing from location status and key forwarding

package tui

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/geomark/internal/location"
	"github.com/harper/geomark/internal/markers"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/storage"
	"github.com/harper/geomark/internal/tui/screens"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paris = models.SelectedLocation{Latitude: 48.8566, Longitude: 2.3522}

func newApp(t *testing.T, provider *location.StaticProvider) *App {
	t.Helper()
	mgr := markers.NewManager(storage.NewMemoryStore(), zerolog.Nop())
	return NewApp(context.Background(), Options{
		Markers: mgr,
		Tracker: location.NewTracker(provider, zerolog.Nop()),
		Variant: models.VariantWildWatch,
		Logger:  zerolog.Nop(),
	})
}

func TestNewApp_StartsOnSplash(t *testing.T) {
	app := newApp(t, &location.StaticProvider{Granted: true})

	assert.Equal(t, location.ScreenSplash, app.Screen())
	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app := newApp(t, &location.StaticProvider{Granted: true})
	assert.Equal(t, "Loading...", app.View())
}

func TestApp_WindowSizeMsg(t *testing.T) {
	app := newApp(t, &location.StaticProvider{Granted: true})

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	updated := model.(*App)

	assert.Equal(t, 100, updated.width)
	assert.Equal(t, 50, updated.height)
	assert.True(t, updated.ready)
	assert.Contains(t, updated.View(), "Locating you...")
}

func TestApp_GrantedRoutesToMap(t *testing.T) {
	app := newApp(t, &location.StaticProvider{Granted: true, Position: &paris})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	msg := app.requestLocation()()
	require.Equal(t, LocationMsg{Status: location.Ready}, msg)

	model, _ := app.Update(msg)
	updated := model.(*App)
	assert.Equal(t, location.ScreenMap, updated.Screen())
	assert.True(t, updated.mapReady)
	assert.Equal(t, paris, updated.mapModel.Viewport().Center)
	assert.Equal(t, 80, updated.mapModel.Viewport().Width)
	assert.Contains(t, updated.View(), "WildWatch")
}

func TestApp_DeniedRoutesToPermissionError(t *testing.T) {
	app := newApp(t, &location.StaticProvider{Granted: false})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	model, _ := app.Update(app.requestLocation()())
	updated := model.(*App)

	assert.Equal(t, location.ScreenPermissionError, updated.Screen())
	assert.False(t, updated.mapReady)
	assert.Contains(t, updated.View(), "Location permission required")
}

func TestApp_RetryAfterGrant(t *testing.T) {
	provider := &location.StaticProvider{Granted: false}
	app := newApp(t, provider)
	app.Update(app.requestLocation()())
	require.Equal(t, location.ScreenPermissionError, app.Screen())

	_, cmd := app.Update(screens.RetryLocationMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, location.ScreenSplash, app.Screen())

	provider.Granted = true
	app.Update(app.retryLocation()())
	assert.Equal(t, location.ScreenMap, app.Screen())
}

func TestApp_RetryUsesTrackerRetry(t *testing.T) {
	var logs bytes.Buffer
	provider := &location.StaticProvider{Granted: false}
	app := NewApp(context.Background(), Options{
		Markers: markers.NewManager(storage.NewMemoryStore(), zerolog.Nop()),
		Tracker: location.NewTracker(provider, zerolog.New(&logs)),
		Variant: models.VariantGeoMobile,
		Logger:  zerolog.Nop(),
	})
	app.Update(app.requestLocation()())
	require.Equal(t, location.ScreenPermissionError, app.Screen())
	assert.NotContains(t, logs.String(), "retrying location request")

	provider.Granted = true
	app.Update(app.retryLocation()())

	assert.Equal(t, location.ScreenMap, app.Screen())
	assert.Contains(t, logs.String(), "retrying location request")
}

func TestApp_ForwardsKeysToMap(t *testing.T) {
	app := newApp(t, &location.StaticProvider{Granted: true, Position: &paris})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.Update(LocationMsg{Status: location.Ready})

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, app.mapModel.FormOpen())
}
