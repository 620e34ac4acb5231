// ABOUTME: Terminal map viewport using Web Mercator projection
// ABOUTME: Converts between coordinates and character cells and renders pins

package mapview

import (
	"math"
	"strings"

	"github.com/harper/geomark/internal/models"
	"github.com/wroge/wgs84"
)

// Camera zoom levels.
const (
	DefaultZoom  = 13
	RecenterZoom = 15
	MinZoom      = 1
	MaxZoom      = 19
)

// Web Mercator ground resolution at zoom 0 for 256 pixel tiles, in meters per pixel.
const zoom0Resolution = 156543.03392804097

// A terminal cell is about twice as tall as it is wide.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

// maxMercatorLat is where Web Mercator stops.
const maxMercatorLat = 85.05112878

// Map glyphs.
const (
	GlyphEmpty    = '·'
	GlyphPin      = '●'
	GlyphUser     = '◉'
	GlyphCursor   = '+'
	GlyphSelected = '◆'
	GlyphDragging = '◎'
)

var (
	toMercator = wgs84.EPSG().Transform(4326, 3857)
	toLonLat   = wgs84.EPSG().Transform(3857, 4326)
)

// Cell is a character position, column then row, from the top-left corner.
type Cell struct {
	Col, Row int
}

// Viewport is a rectangle of cells centered on a coordinate.
type Viewport struct {
	Center models.SelectedLocation
	Zoom   int
	Width  int
	Height int
}

// NewViewport creates a viewport at the default zoom.
func NewViewport(center models.SelectedLocation, width, height int) *Viewport {
	return &Viewport{Center: center, Zoom: DefaultZoom, Width: width, Height: height}
}

func (v *Viewport) metersPerCell() (x, y float64) {
	res := zoom0Resolution / math.Exp2(float64(v.Zoom))
	return res * cellWidthPx, res * cellHeightPx
}

func mercator(loc models.SelectedLocation) (x, y float64) {
	lat := math.Max(-maxMercatorLat, math.Min(maxMercatorLat, loc.Latitude))
	x, y, _ = toMercator(loc.Longitude, lat, 0)
	return x, y
}

// MiddleCell is the cell under the center coordinate.
func (v *Viewport) MiddleCell() Cell {
	return Cell{Col: v.Width / 2, Row: v.Height / 2}
}

// Project returns the cell showing loc and whether it is inside the viewport.
func (v *Viewport) Project(loc models.SelectedLocation) (Cell, bool) {
	cx, cy := mercator(v.Center)
	x, y := mercator(loc)
	mx, my := v.metersPerCell()
	mid := v.MiddleCell()

	cell := Cell{
		Col: mid.Col + int(math.Round((x-cx)/mx)),
		Row: mid.Row - int(math.Round((y-cy)/my)),
	}
	return cell, v.Contains(cell)
}

// Unproject returns the coordinate at the center of cell.
func (v *Viewport) Unproject(cell Cell) models.SelectedLocation {
	cx, cy := mercator(v.Center)
	mx, my := v.metersPerCell()
	mid := v.MiddleCell()

	x := cx + float64(cell.Col-mid.Col)*mx
	y := cy - float64(cell.Row-mid.Row)*my
	lng, lat, _ := toLonLat(x, y, 0)
	return models.SelectedLocation{Latitude: lat, Longitude: normalizeLng(lng)}
}

// Contains reports whether cell is inside the viewport.
func (v *Viewport) Contains(cell Cell) bool {
	return cell.Col >= 0 && cell.Col < v.Width && cell.Row >= 0 && cell.Row < v.Height
}

// Pan moves the center by whole cells.
func (v *Viewport) Pan(cols, rows int) {
	mid := v.MiddleCell()
	v.Center = v.Unproject(Cell{Col: mid.Col + cols, Row: mid.Row + rows})
}

// ZoomBy changes the zoom level within bounds.
func (v *Viewport) ZoomBy(delta int) {
	v.Zoom = clampZoom(v.Zoom + delta)
}

// CenterOn moves the camera to loc at zoom.
func (v *Viewport) CenterOn(loc models.SelectedLocation, zoom int) {
	v.Center = loc
	v.Zoom = clampZoom(zoom)
}

// Resize sets the viewport size in cells.
func (v *Viewport) Resize(width, height int) {
	v.Width = max(width, 1)
	v.Height = max(height, 1)
}

// PinAt returns the marker drawn at cell. When pins overlap the one drawn
// last (the newest) wins.
func (v *Viewport) PinAt(markers []*models.Marker, cell Cell) (*models.Marker, bool) {
	for i := len(markers) - 1; i >= 0; i-- {
		if c, ok := v.Project(markers[i].Location()); ok && c == cell {
			return markers[i], true
		}
	}
	return nil, false
}

// Scene is what Render draws.
type Scene struct {
	Markers  []*models.Marker
	User     *models.SelectedLocation
	Cursor   Cell
	Dragging string
}

// Render draws the scene as Height lines of Width glyphs.
func (v *Viewport) Render(s Scene) []string {
	if v.Width <= 0 || v.Height <= 0 {
		return nil
	}
	grid := make([][]rune, v.Height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(GlyphEmpty), v.Width))
	}

	put := func(c Cell, g rune) {
		if v.Contains(c) {
			grid[c.Row][c.Col] = g
		}
	}

	if s.User != nil {
		if c, ok := v.Project(*s.User); ok {
			put(c, GlyphUser)
		}
	}
	for _, m := range s.Markers {
		if m.ID == s.Dragging {
			continue
		}
		if c, ok := v.Project(m.Location()); ok {
			put(c, GlyphPin)
		}
	}

	switch {
	case s.Dragging != "":
		put(s.Cursor, GlyphDragging)
	case grid[clampRow(v, s.Cursor.Row)][clampCol(v, s.Cursor.Col)] == GlyphPin && v.Contains(s.Cursor):
		put(s.Cursor, GlyphSelected)
	default:
		put(s.Cursor, GlyphCursor)
	}

	lines := make([]string, v.Height)
	for r, row := range grid {
		lines[r] = string(row)
	}
	return lines
}

func clampRow(v *Viewport, r int) int { return max(0, min(r, v.Height-1)) }
func clampCol(v *Viewport, c int) int { return max(0, min(c, v.Width-1)) }

func clampZoom(z int) int {
	return max(MinZoom, min(z, MaxZoom))
}

func normalizeLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}
