// ABOUTME: Tests for the location request flow and screen routing
// ABOUTME: Uses fake providers to cover grant, denial, and failure paths

package location

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/geomark/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	granted   bool
	permErr   error
	pos       models.SelectedLocation
	posErr    error
	posCalls  int
	permCalls int
}

func (f *fakeProvider) RequestPermission(context.Context) (bool, error) {
	f.permCalls++
	return f.granted, f.permErr
}

func (f *fakeProvider) CurrentPosition(context.Context) (models.SelectedLocation, error) {
	f.posCalls++
	return f.pos, f.posErr
}

func TestRoute(t *testing.T) {
	tests := []struct {
		status Status
		want   Screen
	}{
		{Loading, ScreenSplash},
		{Denied, ScreenPermissionError},
		{Ready, ScreenMap},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.status))
		})
	}
}

func TestTracker_StartsLoading(t *testing.T) {
	tr := NewTracker(&fakeProvider{}, zerolog.Nop())
	assert.Equal(t, Loading, tr.Status())
	assert.Equal(t, ScreenSplash, tr.Screen())
}

func TestTracker_Granted(t *testing.T) {
	p := &fakeProvider{granted: true, pos: models.SelectedLocation{Latitude: 48.8566, Longitude: 2.3522}}
	tr := NewTracker(p, zerolog.Nop())

	assert.Equal(t, Ready, tr.Request(context.Background()))
	assert.Equal(t, ScreenMap, tr.Screen())

	pos, ok := tr.Position()
	require.True(t, ok)
	assert.Equal(t, p.pos, pos)
}

func TestTracker_Denied(t *testing.T) {
	p := &fakeProvider{granted: false}
	tr := NewTracker(p, zerolog.Nop())

	assert.Equal(t, Denied, tr.Request(context.Background()))
	assert.Equal(t, ScreenPermissionError, tr.Screen())
	assert.Equal(t, 0, p.posCalls, "no position read without permission")
}

func TestTracker_PermissionErrorIsDenial(t *testing.T) {
	tr := NewTracker(&fakeProvider{permErr: errors.New("platform failure")}, zerolog.Nop())

	assert.Equal(t, Denied, tr.Request(context.Background()))
}

func TestTracker_PositionFailureStillReady(t *testing.T) {
	tr := NewTracker(&fakeProvider{granted: true, posErr: ErrPositionUnavailable}, zerolog.Nop())

	assert.Equal(t, Ready, tr.Request(context.Background()))
	_, ok := tr.Position()
	assert.False(t, ok)
}

func TestTracker_Retry(t *testing.T) {
	p := &fakeProvider{granted: false}
	tr := NewTracker(p, zerolog.Nop())
	tr.Request(context.Background())
	require.Equal(t, Denied, tr.Status())

	p.granted = true
	assert.Equal(t, Ready, tr.Retry(context.Background()))
	assert.Equal(t, 2, p.permCalls)
}

func TestStaticProvider(t *testing.T) {
	lat, lng := 45.5, -73.5
	p := NewStaticProvider(true, &lat, &lng)

	granted, err := p.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)

	pos, err := p.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SelectedLocation{Latitude: 45.5, Longitude: -73.5}, pos)
}

func TestStaticProvider_NoPosition(t *testing.T) {
	p := NewStaticProvider(true, nil, nil)

	_, err := p.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func TestStaticProvider_HalfPosition(t *testing.T) {
	lat := 1.0
	p := NewStaticProvider(true, &lat, nil)

	_, err := p.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func TestStaticProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticProvider(true, nil, nil).RequestPermission(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusAndScreenStrings(t *testing.T) {
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "permission-error", ScreenPermissionError.String())
	assert.Equal(t, "map", ScreenMap.String())
}
