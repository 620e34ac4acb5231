// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for markers and share messages

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/geomark/internal/models"
)

// ShortIDLen is how many id characters list output shows.
const ShortIDLen = 8

// ShortID trims an id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// FormatCoordinates formats a coordinate pair with four decimals.
func FormatCoordinates(lat, lng float64) string {
	return fmt.Sprintf("(%.4f, %.4f)", lat, lng)
}

// FormatMarkerLine formats a marker as a single list line.
func FormatMarkerLine(m *models.Marker) string {
	if m == nil {
		return color.New(color.Faint).Sprint("(invalid marker)")
	}
	line := fmt.Sprintf("%s %s %s - %s",
		color.New(color.Faint).Sprint(ShortID(m.ID)),
		color.GreenString(m.Title),
		color.CyanString(FormatCoordinates(m.Latitude, m.Longitude)),
		color.New(color.Faint).Sprint(FormatRelativeTime(m.CreatedAt)))
	if m.ImageURL != "" {
		line += color.New(color.Faint).Sprint(" [photo]")
	}
	return line
}

// FormatMarkerDetail formats every field of a marker. The date line is only
// shown when the variant has dates.
func FormatMarkerDetail(m *models.Marker, features models.Features) string {
	if m == nil {
		return color.New(color.Faint).Sprint("(invalid marker)")
	}
	faint := color.New(color.Faint).SprintFunc()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", color.New(color.FgGreen, color.Bold).Sprint(m.Title))
	fmt.Fprintf(&sb, "  %s %s\n", faint("id:      "), m.ID)
	fmt.Fprintf(&sb, "  %s %s\n", faint("position:"), color.CyanString(m.Location().String()))
	fmt.Fprintf(&sb, "  %s %s (%s)\n", faint("created: "),
		m.CreatedAt.Local().Format("Jan 2 2006, 3:04 PM"), FormatRelativeTime(m.CreatedAt))
	if features.Date {
		fmt.Fprintf(&sb, "  %s %s\n", faint("date:    "), FormatDate(m.Date))
	}
	if m.ImageURL != "" {
		fmt.Fprintf(&sb, "  %s %s\n", faint("photo:   "), m.ImageURL)
	}
	if m.Observation != "" {
		fmt.Fprintf(&sb, "\n  %s\n", strings.ReplaceAll(m.Observation, "\n", "\n  "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatDate shows the day of a stored date.
func FormatDate(date string) string {
	if date == "" {
		return color.New(color.Faint).Sprint("not set")
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
