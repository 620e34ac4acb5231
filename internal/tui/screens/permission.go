// ABOUTME: Permission error screen shown when location access is denied
// ABOUTME: Offers a retry that re-runs the location request

package screens

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harper/geomark/internal/tui/common"
)

// RetryLocationMsg asks the app to run the location request again.
type RetryLocationMsg struct{}

// PermissionModel is the model for the permission error screen.
type PermissionModel struct {
	keys   common.PermissionKeyMap
	width  int
	height int
}

// NewPermissionModel creates the permission error screen.
func NewPermissionModel() PermissionModel {
	return PermissionModel{keys: common.DefaultPermissionKeyMap()}
}

// Init implements the screen contract.
func (m PermissionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the permission error screen.
func (m PermissionModel) Update(msg tea.Msg) (PermissionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Retry):
			return m, func() tea.Msg { return RetryLocationMsg{} }
		}
	}
	return m, nil
}

// View renders the permission error screen.
func (m PermissionModel) View() string {
	content := common.ErrorTextStyle.Bold(true).Render("Location permission required") + "\n\n" +
		common.MutedTextStyle.Render("Allow location access, then retry.") + "\n" +
		common.MutedTextStyle.Render("Set location.permission to \"granted\" in the config.") + "\n\n" +
		common.FormatHelp("r", "retry") + "  " + common.FormatHelp("q", "quit")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
