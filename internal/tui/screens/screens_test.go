// ABOUTME: Tests for the splash and permission screens
// ABOUTME: Verifies retry and quit handling and rendered text

package screens

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplashModel(t *testing.T) {
	m := NewSplashModel("WildWatch")
	assert.NotNil(t, m.Init())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Equal(t, 60, m.width)

	view := m.View()
	assert.Contains(t, view, "WildWatch")
	assert.Contains(t, view, "Locating you...")

	_, cmd := m.Update(spinner.TickMsg{})
	_ = cmd
}

func TestSplashModel_CtrlCQuits(t *testing.T) {
	m := NewSplashModel("GeoMobile")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPermissionModel_Retry(t *testing.T) {
	m := NewPermissionModel()
	assert.Nil(t, m.Init())

	_, cmd := m.Update(keyRunes("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, RetryLocationMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, RetryLocationMsg{}, cmd())
}

func TestPermissionModel_Quit(t *testing.T) {
	m := NewPermissionModel()

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPermissionModel_View(t *testing.T) {
	m := NewPermissionModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.Contains(t, view, "Location permission required")
	assert.Contains(t, view, "retry")
}
