// ABOUTME: Root bubbletea model routing between splash, permission, and map screens
// ABOUTME: Runs the location request and follows the status it produces

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/geomark/internal/location"
	"github.com/harper/geomark/internal/markers"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/tui/screens"
	"github.com/rs/zerolog"
)

// Options configure the app.
type Options struct {
	Markers *markers.Manager
	Tracker *location.Tracker
	Variant models.Variant
	Zoom    int
	Logger  zerolog.Logger
}

// LocationMsg carries the outcome of a location request.
type LocationMsg struct {
	Status location.Status
}

// App is the main application model.
type App struct {
	ctx    context.Context
	opts   Options
	screen location.Screen
	width  int
	height int
	ready  bool

	splashModel     screens.SplashModel
	permissionModel screens.PermissionModel
	mapModel        screens.MapModel
	mapReady        bool
}

// NewApp creates the app on the splash screen.
func NewApp(ctx context.Context, opts Options) *App {
	return &App{
		ctx:             ctx,
		opts:            opts,
		screen:          location.ScreenSplash,
		splashModel:     screens.NewSplashModel(opts.Variant.DisplayName()),
		permissionModel: screens.NewPermissionModel(),
	}
}

// Screen returns the screen being shown.
func (a *App) Screen() location.Screen { return a.screen }

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.splashModel.Init(), a.requestLocation())
}

func (a *App) requestLocation() tea.Cmd {
	tracker := a.opts.Tracker
	ctx := a.ctx
	return func() tea.Msg {
		return LocationMsg{Status: tracker.Request(ctx)}
	}
}

func (a *App) retryLocation() tea.Cmd {
	tracker := a.opts.Tracker
	ctx := a.ctx
	return func() tea.Msg {
		return LocationMsg{Status: tracker.Retry(ctx)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.splashModel, _ = a.splashModel.Update(msg)
		a.permissionModel, _ = a.permissionModel.Update(msg)
		if a.mapReady {
			a.mapModel, _ = a.mapModel.Update(msg)
		}
		return a, nil

	case LocationMsg:
		return a, a.route(msg.Status)

	case screens.RetryLocationMsg:
		a.screen = location.ScreenSplash
		return a, tea.Batch(a.splashModel.Init(), a.retryLocation())
	}

	return a, a.forwardToCurrentScreen(msg)
}

// route switches to the screen for status. The map is built on first entry
// so it can center on the position just acquired.
func (a *App) route(status location.Status) tea.Cmd {
	a.screen = location.Route(status)
	a.opts.Logger.Debug().Str("status", status.String()).Str("screen", a.screen.String()).Msg("routed")

	if a.screen != location.ScreenMap || a.mapReady {
		return nil
	}
	a.mapModel = screens.NewMapModel(a.ctx, screens.MapDeps{
		Markers: a.opts.Markers,
		Tracker: a.opts.Tracker,
		Variant: a.opts.Variant,
		Zoom:    a.opts.Zoom,
		Logger:  a.opts.Logger,
	})
	a.mapReady = true
	if a.ready {
		a.mapModel, _ = a.mapModel.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	return a.mapModel.Init()
}

func (a *App) forwardToCurrentScreen(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.screen {
	case location.ScreenSplash:
		a.splashModel, cmd = a.splashModel.Update(msg)
	case location.ScreenPermissionError:
		a.permissionModel, cmd = a.permissionModel.Update(msg)
	case location.ScreenMap:
		a.mapModel, cmd = a.mapModel.Update(msg)
	}

	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.screen {
	case location.ScreenPermissionError:
		return a.permissionModel.View()
	case location.ScreenMap:
		return a.mapModel.View()
	default:
		return a.splashModel.View()
	}
}

// Run starts the interactive map on the alternate screen.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewApp(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
