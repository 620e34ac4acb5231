// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts markers to GeoJSON FeatureCollections using orb

package geojson

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/harper/geomark/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection wraps an orb collection with serialization helpers.
type FeatureCollection struct {
	*geojson.FeatureCollection
}

// Point returns the marker position in GeoJSON axis order.
func Point(m *models.Marker) orb.Point {
	return orb.Point{m.Longitude, m.Latitude}
}

// ToPointsFeatureCollection converts markers to a FeatureCollection of Points.
func ToPointsFeatureCollection(markers []*models.Marker) *FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, m := range markers {
		f := geojson.NewFeature(Point(m))
		f.ID = m.ID
		f.Properties["id"] = m.ID
		f.Properties["title"] = m.Title
		f.Properties["createdAt"] = m.CreatedAt.UTC().Format(time.RFC3339)
		if m.Observation != "" {
			f.Properties["observation"] = m.Observation
		}
		if m.ImageURL != "" {
			f.Properties["imageUrl"] = m.ImageURL
		}
		if m.Date != "" {
			f.Properties["date"] = m.Date
		}
		fc.Append(f)
	}

	return &FeatureCollection{fc}
}

// ToLineFeatureCollection connects markers in creation order into a single
// LineString. Fewer than two markers yield an empty collection.
func ToLineFeatureCollection(markers []*models.Marker) *FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(markers) < 2 {
		return &FeatureCollection{fc}
	}

	ordered := make([]*models.Marker, len(markers))
	copy(ordered, markers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	line := make(orb.LineString, len(ordered))
	for i, m := range ordered {
		line[i] = Point(m)
	}

	f := geojson.NewFeature(line)
	f.Properties["point_count"] = len(ordered)
	f.Properties["from"] = ordered[0].CreatedAt.UTC().Format(time.RFC3339)
	f.Properties["to"] = ordered[len(ordered)-1].CreatedAt.UTC().Format(time.RFC3339)
	fc.Append(f)

	return &FeatureCollection{fc}
}

// Bound returns the bounding box of the markers.
func Bound(markers []*models.Marker) (orb.Bound, bool) {
	if len(markers) == 0 {
		return orb.Bound{}, false
	}
	mp := make(orb.MultiPoint, len(markers))
	for i, m := range markers {
		mp[i] = Point(m)
	}
	return mp.Bound(), true
}

// ToJSON serializes a FeatureCollection to JSON.
func (fc *FeatureCollection) ToJSON() ([]byte, error) {
	return fc.MarshalJSON()
}

// ToJSONIndent serializes a FeatureCollection to indented JSON.
func (fc *FeatureCollection) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(fc.FeatureCollection, "", "  ")
}
