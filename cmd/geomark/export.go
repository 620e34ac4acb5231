// ABOUTME: Export command writing the collection as GeoJSON, markdown, or YAML
// ABOUTME: Markers can be narrowed to a creation-time window and joined into a line

package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/harper/geomark/internal/geojson"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportFormats    = []string{"geojson", "markdown", "yaml"}
	exportGeometries = []string{"points", "line"}
)

// ageUnits maps the suffix of a --since value to its length.
var ageUnits = map[byte]time.Duration{
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
	'm': 30 * 24 * time.Hour,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export markers as GeoJSON, markdown, or YAML",
	Long: `Write the marker collection to stdout or a file.

GeoJSON carries one Point feature per marker, or with --geometry line a single
LineString through the markers in creation order. Markdown renders a field
notebook; YAML is the backup format read by 'geomark import'.

Examples:
  geomark export > markers.geojson
  geomark export --format markdown --since 7d
  geomark export --from 2024-05-01 --to 2024-05-31 -o may.geojson
  geomark export --geometry line
  geomark export --format yaml --output markers.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		format, _ := flags.GetString("format")
		geometry, _ := flags.GetString("geometry")
		output, _ := flags.GetString("output")

		if !slices.Contains(exportFormats, format) {
			return fmt.Errorf("unknown format %q (want one of %v)", format, exportFormats)
		}
		if !slices.Contains(exportGeometries, geometry) {
			return fmt.Errorf("unknown geometry %q (want one of %v)", geometry, exportGeometries)
		}

		since, _ := flags.GetString("since")
		from, _ := flags.GetString("from")
		to, _ := flags.GetString("to")
		w, err := parseWindow(since, from, to, time.Now())
		if err != nil {
			return err
		}
		list := filterMarkers(manager.List(), w)

		switch format {
		case "markdown":
			return writeExport(cmd, output, storage.ExportToMarkdown(list, variant), "markdown")
		case "yaml":
			data, err := storage.ExportToYAML(list, variant)
			if err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			return writeExport(cmd, output, data, "YAML")
		}
		return exportGeoJSON(cmd, list, geometry, output)
	},
}

func exportGeoJSON(cmd *cobra.Command, list []*models.Marker, geometry, output string) error {
	if len(list) == 0 {
		return fmt.Errorf("no markers to export")
	}

	fc := geojson.ToPointsFeatureCollection(list)
	if geometry == "line" {
		if len(list) < 2 {
			return fmt.Errorf("line geometry needs at least two markers, have %d", len(list))
		}
		fc = geojson.ToLineFeatureCollection(list)
	}

	data, err := fc.ToJSONIndent()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	return writeExport(cmd, output, append(data, '\n'), fmt.Sprintf("%d markers", len(list)))
}

// writeExport writes data to output, or to the command's stdout when output is empty.
func writeExport(cmd *cobra.Command, output string, data []byte, what string) error {
	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // exports are meant to be shared
		return fmt.Errorf("write %s: %w", output, err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s to %s\n", what, output)
	return nil
}

// window bounds marker creation times. A zero bound is open.
type window struct {
	from, to time.Time
}

func (w window) open() bool { return w.from.IsZero() && w.to.IsZero() }

func (w window) contains(t time.Time) bool {
	if !w.from.IsZero() && t.Before(w.from) {
		return false
	}
	return w.to.IsZero() || !t.After(w.to)
}

// parseWindow builds the export window. since is relative to now and takes
// precedence over from. A date-only to covers that whole day.
func parseWindow(since, from, to string, now time.Time) (window, error) {
	var w window
	var err error

	switch {
	case since != "":
		if w.from, err = parseAge(since, now); err != nil {
			return w, fmt.Errorf("--since: %w", err)
		}
	case from != "":
		if w.from, _, err = parseDay(from); err != nil {
			return w, fmt.Errorf("--from: %w", err)
		}
	}

	if to != "" {
		end, dayOnly, err := parseDay(to)
		if err != nil {
			return w, fmt.Errorf("--to: %w", err)
		}
		if dayOnly {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		w.to = end
	}
	return w, nil
}

// filterMarkers keeps the markers created inside w, in collection order.
func filterMarkers(list []*models.Marker, w window) []*models.Marker {
	if w.open() {
		return list
	}
	out := make([]*models.Marker, 0, len(list))
	for _, m := range list {
		if w.contains(m.CreatedAt) {
			out = append(out, m)
		}
	}
	return out
}

// parseAge turns an age like "24h", "7d", "2w", or "1m" (30 days) into the
// instant that long before now.
func parseAge(s string, now time.Time) (time.Time, error) {
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid age %q (use e.g. 24h, 7d, 1w, 1m)", s)
	}
	unit, ok := ageUnits[s[len(s)-1]]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid age unit in %q (use h, d, w, or m)", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("invalid age %q (use e.g. 24h, 7d, 1w, 1m)", s)
	}
	return now.Add(-time.Duration(n) * unit), nil
}

// parseDay accepts RFC3339 or YYYY-MM-DD. dayOnly reports the second form.
func parseDay(s string) (t time.Time, dayOnly bool, err error) {
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	if t, err = time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC3339)", s)
}

func init() {
	flags := exportCmd.Flags()
	flags.StringP("format", "f", "geojson", "output format: geojson, markdown, or yaml")
	flags.StringP("geometry", "g", "points", "geojson geometry: points or line")
	flags.String("since", "", "only markers created within this age (24h, 7d, 1w, 1m)")
	flags.String("from", "", "only markers created on or after this date")
	flags.String("to", "", "only markers created on or before this date")
	flags.StringP("output", "o", "", "write to a file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
