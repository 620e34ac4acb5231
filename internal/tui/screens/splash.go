// ABOUTME: Splash screen shown while the location request is pending
// ABOUTME: Animates a spinner under the app name

package screens

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harper/geomark/internal/tui/common"
)

// SplashModel is the model for the splash screen.
type SplashModel struct {
	name    string
	spinner spinner.Model
	width   int
	height  int
}

// NewSplashModel creates a splash screen for the named app.
func NewSplashModel(name string) SplashModel {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: common.SpinnerFrames, FPS: spinner.Dot.FPS}
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorPrimary)
	return SplashModel{name: name, spinner: sp}
}

// Init starts the spinner.
func (m SplashModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the splash screen.
func (m SplashModel) Update(msg tea.Msg) (SplashModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the splash screen.
func (m SplashModel) View() string {
	content := common.Logo(m.name) + "\n\n" +
		m.spinner.View() + " " + common.MutedTextStyle.Render("Locating you...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
