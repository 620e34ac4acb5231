// ABOUTME: Interactive map screen: cursor, pins, user position, and the form modal
// ABOUTME: Enter drops or edits a pin, m picks one up to move it

package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harper/geomark/internal/form"
	"github.com/harper/geomark/internal/location"
	"github.com/harper/geomark/internal/mapview"
	"github.com/harper/geomark/internal/markers"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/tui/common"
	"github.com/rs/zerolog"
)

// Rows used by the header, status bar, and help line.
const mapChromeRows = 5

// MapDeps are the collaborators of the map screen.
type MapDeps struct {
	Markers *markers.Manager
	Tracker *location.Tracker
	Variant models.Variant
	Zoom    int
	Logger  zerolog.Logger
}

// MapModel is the model for the map screen.
type MapModel struct {
	ctx          context.Context
	markers      *markers.Manager
	tracker      *location.Tracker
	variant      models.Variant
	ctrl         *form.Controller
	interactions *mapview.Interactions
	viewport     *mapview.Viewport
	cursor       mapview.Cell

	form   *FormModel
	keys   common.MapKeyMap
	help   help.Model
	status string
	width  int
	height int
}

// NewMapModel creates the map screen. The camera starts on the user's
// position, else on the first marker, else on 0,0.
func NewMapModel(ctx context.Context, deps MapDeps) MapModel {
	ctrl := form.NewController(deps.Markers, deps.Variant, deps.Logger)

	zoom := deps.Zoom
	if zoom == 0 {
		zoom = mapview.DefaultZoom
	}
	vp := mapview.NewViewport(initialCenter(deps.Tracker, deps.Markers), 80, 20)
	vp.CenterOn(vp.Center, zoom)

	return MapModel{
		ctx:          ctx,
		markers:      deps.Markers,
		tracker:      deps.Tracker,
		variant:      deps.Variant,
		ctrl:         ctrl,
		interactions: mapview.NewInteractions(ctrl, deps.Markers, deps.Logger),
		viewport:     vp,
		cursor:       vp.MiddleCell(),
		keys:         common.DefaultMapKeyMap(),
		help:         help.New(),
	}
}

func initialCenter(tracker *location.Tracker, mgr *markers.Manager) models.SelectedLocation {
	if tracker != nil {
		if pos, ok := tracker.Position(); ok {
			return pos
		}
	}
	if list := mgr.List(); len(list) > 0 {
		return list[0].Location()
	}
	return models.SelectedLocation{}
}

// Init implements the screen contract.
func (m MapModel) Init() tea.Cmd {
	return nil
}

// Cursor returns the cursor cell.
func (m MapModel) Cursor() mapview.Cell { return m.cursor }

// CursorLocation returns the coordinate under the cursor.
func (m MapModel) CursorLocation() models.SelectedLocation {
	return m.viewport.Unproject(m.cursor)
}

// Viewport returns the map camera.
func (m MapModel) Viewport() *mapview.Viewport { return m.viewport }

// FormOpen reports whether the marker form is showing.
func (m MapModel) FormOpen() bool { return m.form != nil }

// Form returns the open form, if any.
func (m MapModel) Form() (FormModel, bool) {
	if m.form == nil {
		return FormModel{}, false
	}
	return *m.form, true
}

// Status returns the status bar message.
func (m MapModel) Status() string { return m.status }

// Dragging returns the id of the pin being moved, or "".
func (m MapModel) Dragging() string { return m.interactions.Dragging() }

// Update handles messages for the map screen.
func (m MapModel) Update(msg tea.Msg) (MapModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Resize(msg.Width, msg.Height-mapChromeRows)
		m.cursor = m.viewport.MiddleCell()
		return m, nil

	case FormDoneMsg:
		m.form = nil
		switch {
		case msg.Deleted:
			m.status = "Marker deleted"
		case msg.Saved != nil:
			m.status = fmt.Sprintf("Saved %q", msg.Saved.Title)
		default:
			m.status = ""
		}
		return m, nil
	}

	if m.form != nil {
		updated, cmd := m.form.Update(msg)
		m.form = &updated
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MapModel) handleKey(msg tea.KeyMsg) (MapModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(-1)
	case key.Matches(msg, m.keys.Center):
		m.recenter()
	case key.Matches(msg, m.keys.Select):
		return m.selectAtCursor()
	case key.Matches(msg, m.keys.Grab):
		m.grab()
	case key.Matches(msg, m.keys.Back):
		if m.interactions.Dragging() != "" {
			m.interactions.CancelDrag()
			m.status = "Move cancelled"
		}
	}
	return m, nil
}

// moveCursor moves within the viewport and pans at its edges.
func (m *MapModel) moveCursor(dc, dr int) {
	next := mapview.Cell{Col: m.cursor.Col + dc, Row: m.cursor.Row + dr}
	if m.viewport.Contains(next) {
		m.cursor = next
		return
	}
	m.viewport.Pan(dc, dr)
}

// zoom keeps the coordinate under the cursor in place.
func (m *MapModel) zoom(delta int) {
	loc := m.viewport.Unproject(m.cursor)
	m.viewport.ZoomBy(delta)
	if cell, ok := m.viewport.Project(loc); ok {
		m.cursor = cell
		return
	}
	m.viewport.CenterOn(loc, m.viewport.Zoom)
	m.cursor = m.viewport.MiddleCell()
}

func (m *MapModel) recenter() {
	if m.tracker == nil {
		m.status = "Position unknown"
		return
	}
	pos, ok := m.tracker.Position()
	if !ok {
		m.status = "Position unknown"
		return
	}
	m.viewport.CenterOn(pos, mapview.RecenterZoom)
	m.cursor = m.viewport.MiddleCell()
	m.status = ""
}

func (m MapModel) selectAtCursor() (MapModel, tea.Cmd) {
	if id := m.interactions.Dragging(); id != "" {
		if m.interactions.OnMarkerDragEnd(m.ctx, id, m.CursorLocation()) {
			m.status = "Marker moved"
		} else {
			m.status = "Could not move marker"
		}
		return m, nil
	}

	var err error
	if pin, ok := m.viewport.PinAt(m.markers.List(), m.cursor); ok {
		err = m.interactions.OnMarkerSelect(pin.ID)
	} else {
		err = m.interactions.OnPress(m.CursorLocation())
	}
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	fm := NewFormModel(m.ctx, m.ctrl)
	m.form = &fm
	m.status = ""
	return m, fm.Init()
}

func (m *MapModel) grab() {
	pin, ok := m.viewport.PinAt(m.markers.List(), m.cursor)
	if !ok {
		m.status = "No pin under the cursor"
		return
	}
	if m.interactions.OnMarkerDragStart(pin.ID) {
		m.status = fmt.Sprintf("Moving %q: enter to drop, esc to cancel", pin.Title)
	}
}

func (m MapModel) userPosition() *models.SelectedLocation {
	if m.tracker == nil {
		return nil
	}
	if pos, ok := m.tracker.Position(); ok {
		return &pos
	}
	return nil
}

// View renders the map screen.
func (m MapModel) View() string {
	var sb strings.Builder

	list := m.markers.List()
	header := common.TitleStyle.UnsetMarginBottom().Render(m.variant.DisplayName()) + "  " +
		common.MutedTextStyle.Render(fmt.Sprintf("%d markers · zoom %d", len(list), m.viewport.Zoom))
	sb.WriteString(header)
	sb.WriteString("\n")

	if m.form != nil {
		sb.WriteString(lipgloss.Place(m.viewport.Width, m.viewport.Height,
			lipgloss.Center, lipgloss.Center, m.form.View()))
		return sb.String()
	}

	lines := m.viewport.Render(mapview.Scene{
		Markers:  list,
		User:     m.userPosition(),
		Cursor:   m.cursor,
		Dragging: m.interactions.Dragging(),
	})
	sb.WriteString(common.ColorizeMap(lines))
	sb.WriteString("\n")

	sb.WriteString(common.StatusBarStyle.Render(m.statusLine(list)))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m MapModel) statusLine(list []*models.Marker) string {
	parts := []string{m.CursorLocation().String()}
	if pin, ok := m.viewport.PinAt(list, m.cursor); ok {
		parts = append(parts, pin.Title)
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, " · ")
}
