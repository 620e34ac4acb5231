// ABOUTME: Tests for YAML backup, markdown export, and backend migration
// ABOUTME: Verifies backup envelopes, validation on import, and blob copies

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/geomark/internal/models"
	"gopkg.in/yaml.v3"
)

func sampleMarkers() []*models.Marker {
	return []*models.Marker{
		{
			ID:          "m1",
			Latitude:    48.8566,
			Longitude:   2.3522,
			Title:       "Fox den",
			Observation: "Seen a fox",
			Date:        "2024-05-01T00:00:00Z",
			CreatedAt:   time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:        "m2",
			Latitude:  45.764,
			Longitude: 4.8357,
			Title:     "Point 2",
			ImageURL:  "file:///photos/heron.jpg",
			CreatedAt: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestExportImportYAML_RoundTrip(t *testing.T) {
	markers := sampleMarkers()

	data, err := ExportToYAML(markers, models.VariantWildWatch)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := ImportFromYAML(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if len(got) != len(markers) {
		t.Fatalf("expected %d markers, got %d", len(markers), len(got))
	}
	for i := range markers {
		if *got[i] != *markers[i] {
			t.Errorf("marker %d mismatch:\n got  %+v\n want %+v", i, got[i], markers[i])
		}
	}
}

func TestExportToYAML_Envelope(t *testing.T) {
	data, err := ExportToYAML(sampleMarkers(), models.VariantWildWatch)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.Tool != BackupTool {
		t.Errorf("expected tool %s, got %s", BackupTool, backup.Tool)
	}
	if backup.Variant != "wildwatch" {
		t.Errorf("expected variant wildwatch, got %s", backup.Variant)
	}
	if backup.ExportedAt.IsZero() {
		t.Error("expected exported_at to be set")
	}
}

func TestImportFromYAML_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"bad_yaml", "{{{", "parse yaml"},
		{"wrong_version", "version: \"9.9\"\ntool: geomark\nmarkers: []\n", "unsupported backup version"},
		{"wrong_tool", "version: \"1.0\"\ntool: position\nmarkers: []\n", "wrong tool"},
		{"missing_id", "version: \"1.0\"\ntool: geomark\nmarkers:\n  - title: a\n", "has no id"},
		{"duplicate_id", "version: \"1.0\"\ntool: geomark\nmarkers:\n  - {id: a, title: a}\n  - {id: a, title: b}\n", "duplicate marker id"},
		{"bad_latitude", "version: \"1.0\"\ntool: geomark\nmarkers:\n  - {id: a, title: a, latitude: 95}\n", "latitude"},
		{"blank_title", "version: \"1.0\"\ntool: geomark\nmarkers:\n  - {id: a, title: \" \"}\n", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportFromYAML([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestImportFromYAML_Empty(t *testing.T) {
	markers, err := ImportFromYAML([]byte("version: \"1.0\"\ntool: geomark\nmarkers: []\n"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(markers) != 0 {
		t.Errorf("expected no markers, got %d", len(markers))
	}
}

func TestExportToMarkdown(t *testing.T) {
	out := string(ExportToMarkdown(sampleMarkers(), models.VariantWildWatch))

	for _, want := range []string{
		"# WildWatch Markers",
		"| Fox den | (48.856600, 2.352200) |",
		"## Point 2",
		"- Date: 2024-05-01",
		"- Date: -",
		"- Photo: file:///photos/heron.jpg",
		"Seen a fox",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected markdown to contain %q\n%s", want, out)
		}
	}
}

func TestExportToMarkdown_GeoMobileHasNoDates(t *testing.T) {
	out := string(ExportToMarkdown(sampleMarkers(), models.VariantGeoMobile))
	if strings.Contains(out, "- Date:") {
		t.Error("geomobile export should not include dates")
	}
	if !strings.Contains(out, "# GeoMobile Markers") {
		t.Error("expected GeoMobile heading")
	}
}

func TestExportToMarkdown_Empty(t *testing.T) {
	out := string(ExportToMarkdown(nil, models.VariantGeoMobile))
	if !strings.Contains(out, "No markers saved.") {
		t.Errorf("expected empty notice, got %q", out)
	}
}

func TestExportToMarkdown_EscapesPipes(t *testing.T) {
	markers := []*models.Marker{{ID: "m1", Title: "a|b"}}
	out := string(ExportToMarkdown(markers, models.VariantGeoMobile))
	if !strings.Contains(out, `a\|b`) {
		t.Errorf("expected escaped pipe in table, got %s", out)
	}
}

func TestMigrateData(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := testSQLite(t)

	blob := `[{"id":"m1","latitude":1,"longitude":2,"title":"a","createdAt":"2024-05-01T00:00:00Z"}]`
	if err := src.Set(ctx, MarkersKey, blob); err != nil {
		t.Fatalf("seed: %v", err)
	}

	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if summary.Markers != 1 {
		t.Errorf("expected 1 marker migrated, got %d", summary.Markers)
	}

	got, err := dst.Get(ctx, MarkersKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != blob {
		t.Errorf("expected blob copied verbatim, got %q", got)
	}
}

func TestMigrateData_EmptySource(t *testing.T) {
	summary, err := MigrateData(context.Background(), NewMemoryStore(), NewMemoryStore())
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if summary.Markers != 0 {
		t.Errorf("expected nothing migrated, got %d", summary.Markers)
	}
}

func TestMigrateData_CorruptSource(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := NewMemoryStore()
	_ = src.Set(ctx, MarkersKey, "not json")

	if _, err := MigrateData(ctx, src, dst); err == nil {
		t.Fatal("expected error for corrupt source")
	}
	if ok, _ := HasCollection(ctx, dst); ok {
		t.Error("corrupt source must not be written to destination")
	}
}

func TestMigrateData_WriteFailure(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := NewMemoryStore()
	_ = src.Set(ctx, MarkersKey, "[]")
	dst.SetErr = errors.New("read-only")

	if _, err := MigrateData(ctx, src, dst); err == nil {
		t.Fatal("expected error when destination write fails")
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(dir)
	if err != nil || nonEmpty {
		t.Errorf("expected empty dir, got %v, %v", nonEmpty, err)
	}

	nonEmpty, err = IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || nonEmpty {
		t.Errorf("expected missing dir to be empty, got %v, %v", nonEmpty, err)
	}

	_ = testSQLiteAt(t, filepath.Join(dir, "x.db"))
	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("expected non-empty dir, got %v, %v", nonEmpty, err)
	}
}

func testSQLiteAt(t *testing.T, path string) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
