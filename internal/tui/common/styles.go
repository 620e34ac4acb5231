// ABOUTME: Shared lipgloss palette and styles for the interactive map
// ABOUTME: Keeps screens visually consistent

package common

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harper/geomark/internal/mapview"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#2E8B57") // Sea green
	ColorSecondary = lipgloss.Color("#00CED1") // Dark turquoise
	ColorPin       = lipgloss.Color("#FF6347") // Tomato
	ColorUser      = lipgloss.Color("#1E90FF") // Dodger blue

	ColorSuccess = lipgloss.Color("#32CD32")
	ColorWarning = lipgloss.Color("#FFD700")
	ColorError   = lipgloss.Color("#FF6347")

	ColorSubtle     = lipgloss.Color("#666666")
	ColorMuted      = lipgloss.Color("#888888")
	ColorBorder     = lipgloss.Color("#444444")
	ColorForeground = lipgloss.Color("#FFFFFF")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginBottom(1)

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(13)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Width(13)

	ModalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(ColorForeground).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpSepStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	emptyStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
	pinStyle      = lipgloss.NewStyle().Foreground(ColorPin).Bold(true)
	userStyle     = lipgloss.NewStyle().Foreground(ColorUser).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(ColorWarning).Background(ColorPin).Bold(true)
)

// Logo returns the app name banner.
func Logo(name string) string {
	return lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Render("◉ " + name)
}

// SpinnerFrames are the loading animation frames.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// FormatHelp formats a help line with key and description
func FormatHelp(key, desc string) string {
	return HelpKeyStyle.Render(key) +
		HelpSepStyle.Render(" ") +
		HelpDescStyle.Render(desc)
}

// ColorizeMap styles rendered map lines glyph by glyph.
func ColorizeMap(lines []string) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range line {
			sb.WriteString(glyphStyle(r).Render(string(r)))
		}
	}
	return sb.String()
}

func glyphStyle(r rune) lipgloss.Style {
	switch r {
	case mapview.GlyphPin:
		return pinStyle
	case mapview.GlyphUser:
		return userStyle
	case mapview.GlyphCursor, mapview.GlyphDragging:
		return cursorStyle
	case mapview.GlyphSelected:
		return selectedStyle
	default:
		return emptyStyle
	}
}
