// ABOUTME: Export and import functionality for marker data
// ABOUTME: Supports a versioned YAML backup format

package storage

import (
	"fmt"
	"time"

	"github.com/harper/geomark/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// BackupTool identifies backups written by this program.
const BackupTool = "geomark"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string         `yaml:"version"`
	ExportedAt time.Time      `yaml:"exported_at"`
	Tool       string         `yaml:"tool"`
	Variant    string         `yaml:"variant,omitempty"`
	Markers    []MarkerBackup `yaml:"markers"`
}

// MarkerBackup represents a marker in the backup format.
type MarkerBackup struct {
	ID          string    `yaml:"id"`
	Latitude    float64   `yaml:"latitude"`
	Longitude   float64   `yaml:"longitude"`
	Title       string    `yaml:"title"`
	Observation string    `yaml:"observation,omitempty"`
	ImageURL    string    `yaml:"image_url,omitempty"`
	Date        string    `yaml:"date,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// ExportToYAML exports the marker collection to YAML format.
func ExportToYAML(markers []*models.Marker, variant models.Variant) ([]byte, error) {
	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       BackupTool,
		Variant:    string(variant),
		Markers:    make([]MarkerBackup, len(markers)),
	}

	for i, m := range markers {
		backup.Markers[i] = MarkerBackup{
			ID:          m.ID,
			Latitude:    m.Latitude,
			Longitude:   m.Longitude,
			Title:       m.Title,
			Observation: m.Observation,
			ImageURL:    m.ImageURL,
			Date:        m.Date,
			CreatedAt:   m.CreatedAt,
		}
	}

	return yaml.Marshal(backup)
}

// ImportFromYAML parses a YAML backup into a marker collection.
// Markers with invalid coordinates, blank titles, or duplicate ids are rejected.
func ImportFromYAML(data []byte) ([]*models.Marker, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}

	if backup.Tool != BackupTool {
		return nil, fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, BackupTool)
	}

	seen := make(map[string]bool, len(backup.Markers))
	markers := make([]*models.Marker, 0, len(backup.Markers))
	for _, b := range backup.Markers {
		if b.ID == "" {
			return nil, fmt.Errorf("marker %q has no id", b.Title)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate marker id %s", b.ID)
		}
		seen[b.ID] = true

		if err := models.ValidateCoordinates(b.Latitude, b.Longitude); err != nil {
			return nil, fmt.Errorf("marker %s: %w", b.ID, err)
		}
		if err := models.ValidateTitle(b.Title); err != nil {
			return nil, fmt.Errorf("marker %s: %w", b.ID, err)
		}

		markers = append(markers, &models.Marker{
			ID:          b.ID,
			Latitude:    b.Latitude,
			Longitude:   b.Longitude,
			Title:       b.Title,
			Observation: b.Observation,
			ImageURL:    b.ImageURL,
			Date:        b.Date,
			CreatedAt:   b.CreatedAt.UTC(),
		})
	}

	return markers, nil
}
