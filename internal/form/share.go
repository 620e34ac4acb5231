// ABOUTME: Share message for an observation
// ABOUTME: Formats title, note, date, and coordinates as plain text for the platform share sheet

package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/harper/geomark/internal/models"
)

// Placeholders used when optional fields are empty.
const (
	NoObservation = "No observation"
	NoDate        = "Date not set"
)

// shareDateLayout is day/month/year.
const shareDateLayout = "02/01/2006"

// Message is a share payload.
type Message struct {
	Title string
	Body  string
}

// ShareMessage builds the share payload for a draft observed at loc.
func ShareMessage(d models.Draft, loc models.SelectedLocation) Message {
	observation := d.Observation
	if strings.TrimSpace(observation) == "" {
		observation = NoObservation
	}

	var sb strings.Builder
	sb.WriteString("Observation WildWatch\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", d.Title)
	fmt.Fprintf(&sb, "Observation: %s\n", observation)
	fmt.Fprintf(&sb, "Date: %s\n", shareDate(d.Date))
	fmt.Fprintf(&sb, "Position: %.6f, %.6f\n\n", loc.Latitude, loc.Longitude)
	sb.WriteString("Shared from WildWatch - wildlife observation")

	return Message{
		Title: "Observation: " + d.Title,
		Body:  sb.String(),
	}
}

func shareDate(date string) string {
	if date == "" {
		return NoDate
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format(shareDateLayout)
}
