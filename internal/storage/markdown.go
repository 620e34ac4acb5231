// ABOUTME: Markdown export of the marker collection
// ABOUTME: Renders a human-readable field notebook with one section per marker

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/harper/geomark/internal/models"
)

// ExportToMarkdown renders markers as a markdown notebook.
func ExportToMarkdown(markers []*models.Marker, variant models.Variant) []byte {
	var sb strings.Builder

	now := time.Now().UTC()
	sb.WriteString(fmt.Sprintf("# %s Markers - %s\n\n", variant.DisplayName(), now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(markers) == 0 {
		sb.WriteString("No markers saved.\n")
		return []byte(sb.String())
	}

	sb.WriteString("| Title | Coordinates | Created |\n")
	sb.WriteString("|-------|-------------|---------|\n")
	for _, m := range markers {
		sb.WriteString(fmt.Sprintf("| %s | (%.6f, %.6f) | %s |\n",
			escapeTableCell(m.Title), m.Latitude, m.Longitude, m.CreatedAt.Format("2006-01-02 15:04")))
	}
	sb.WriteString("\n")

	for _, m := range markers {
		sb.WriteString(fmt.Sprintf("## %s\n\n", m.Title))
		sb.WriteString(fmt.Sprintf("- ID: `%s`\n", m.ID))
		sb.WriteString(fmt.Sprintf("- Position: %.6f, %.6f\n", m.Latitude, m.Longitude))
		if variant.Features().Date {
			sb.WriteString(fmt.Sprintf("- Date: %s\n", formatMarkdownDate(m.Date)))
		}
		if m.ImageURL != "" {
			sb.WriteString(fmt.Sprintf("- Photo: %s\n", m.ImageURL))
		}
		sb.WriteString("\n")
		if m.Observation != "" {
			sb.WriteString(m.Observation)
			sb.WriteString("\n\n")
		}
	}

	return []byte(sb.String())
}

// formatMarkdownDate shows only the day part of a stored date.
func formatMarkdownDate(date string) string {
	if date == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02")
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
