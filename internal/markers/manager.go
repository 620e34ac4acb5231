// ABOUTME: Marker collection manager owning the in-memory marker list
// ABOUTME: Every mutation is followed by a full-collection write to the store

package markers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/storage"
	"github.com/rs/zerolog"
)

// Manager is the explicit owner of the marker collection. Mutations are
// serialized: each one is applied and persisted before the next starts.
type Manager struct {
	mu      sync.Mutex
	markers []*models.Marker
	store   storage.Store
	key     string
	logger  zerolog.Logger
}

// NewManager creates a manager persisting to store under storage.MarkersKey.
// The collection starts empty until Load is called.
func NewManager(store storage.Store, logger zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		key:    storage.MarkersKey,
		logger: logger.With().Str("component", "markers").Logger(),
	}
}

// Load replaces the in-memory collection with the stored one. A missing,
// unreadable, or corrupt blob leaves the collection empty; failures are
// logged and never returned. Of markers sharing an id, the first is kept.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.markers = nil

	blob, err := m.store.Get(ctx, m.key)
	if errors.Is(err, storage.ErrNotFound) {
		m.logger.Debug().Msg("no saved markers")
		return
	}
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to load markers")
		return
	}

	var loaded []*models.Marker
	if err := json.Unmarshal([]byte(blob), &loaded); err != nil {
		m.logger.Error().Err(err).Msg("saved markers are corrupt, starting empty")
		return
	}

	seen := make(map[string]bool, len(loaded))
	for _, marker := range loaded {
		if marker == nil {
			continue
		}
		if seen[marker.ID] {
			m.logger.Warn().Str("id", marker.ID).Str("title", marker.Title).Msg("dropping saved marker with duplicate id")
			continue
		}
		seen[marker.ID] = true
		m.markers = append(m.markers, marker)
	}
	m.logger.Debug().Int("count", len(m.markers)).Msg("markers loaded")
}

// Create appends a new marker at loc and persists the collection. A blank
// draft title becomes "Point {N}" with N the new collection size.
func (m *Manager) Create(ctx context.Context, loc models.SelectedLocation, draft models.Draft) *models.Marker {
	m.mu.Lock()
	defer m.mu.Unlock()

	marker := models.NewMarker(loc, draft, len(m.markers)+1)
	m.markers = append(m.markers, marker)
	m.logger.Info().Str("id", marker.ID).Str("title", marker.Title).Msg("marker created")
	m.persistLocked(ctx)
	return marker.Clone()
}

// Update applies the non-nil fields of patch to the marker with id. An
// unknown id leaves the collection unchanged but is still persisted.
// Reports whether the id was found.
func (m *Manager) Update(ctx context.Context, id string, patch models.Patch) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	if marker := m.findLocked(id); marker != nil {
		marker.Apply(patch)
		found = true
		m.logger.Info().Str("id", id).Msg("marker updated")
	} else {
		m.logger.Warn().Str("id", id).Msg("update for unknown marker")
	}
	m.persistLocked(ctx)
	return found
}

// Relocate moves the marker with id to new coordinates.
func (m *Manager) Relocate(ctx context.Context, id string, lat, lng float64) bool {
	return m.Update(ctx, id, models.RelocatePatch(lat, lng))
}

// Delete removes the marker with id. Deleting an unknown id is a no-op.
func (m *Manager) Delete(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.markers[:0]
	found := false
	for _, marker := range m.markers {
		if marker.ID == id {
			found = true
			continue
		}
		kept = append(kept, marker)
	}
	for i := len(kept); i < len(m.markers); i++ {
		m.markers[i] = nil
	}
	m.markers = kept

	if found {
		m.logger.Info().Str("id", id).Msg("marker deleted")
	}
	m.persistLocked(ctx)
	return found
}

// Replace swaps in a whole new collection and persists it.
func (m *Manager) Replace(ctx context.Context, markers []*models.Marker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.markers = make([]*models.Marker, 0, len(markers))
	for _, marker := range markers {
		m.markers = append(m.markers, marker.Clone())
	}
	m.persistLocked(ctx)
}

func (m *Manager) persistLocked(ctx context.Context) {
	collection := m.markers
	if collection == nil {
		collection = []*models.Marker{}
	}
	data, err := json.Marshal(collection)
	if err != nil {
		m.logger.Error().Err(err).Msg("failed to serialize markers")
		return
	}
	if err := m.store.Set(ctx, m.key, string(data)); err != nil {
		m.logger.Error().Err(err).Int("count", len(collection)).Msg("failed to save markers")
		return
	}
	m.logger.Debug().Int("count", len(collection)).Msg("markers saved")
}

// List returns copies of all markers in insertion order.
func (m *Manager) List() []*models.Marker {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.Marker, len(m.markers))
	for i, marker := range m.markers {
		out[i] = marker.Clone()
	}
	return out
}

// Count returns the collection size.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.markers)
}

// Get returns a copy of the marker with id.
func (m *Manager) Get(id string) (*models.Marker, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if marker := m.findLocked(id); marker != nil {
		return marker.Clone(), true
	}
	return nil, false
}

// ErrAmbiguous is returned by Find when a reference matches several markers.
var ErrAmbiguous = errors.New("ambiguous marker reference")

// Find resolves a user-supplied reference: an exact id, a unique id prefix,
// or a unique case-insensitive title.
func (m *Manager) Find(ref string) (*models.Marker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, storage.ErrNotFound
	}
	if marker := m.findLocked(ref); marker != nil {
		return marker.Clone(), nil
	}

	var matches []*models.Marker
	for _, marker := range m.markers {
		if strings.HasPrefix(marker.ID, ref) || strings.EqualFold(marker.Title, ref) {
			matches = append(matches, marker)
		}
	}
	switch len(matches) {
	case 0:
		return nil, storage.ErrNotFound
	case 1:
		return matches[0].Clone(), nil
	default:
		return nil, ErrAmbiguous
	}
}

func (m *Manager) findLocked(id string) *models.Marker {
	for _, marker := range m.markers {
		if marker.ID == id {
			return marker
		}
	}
	return nil
}
