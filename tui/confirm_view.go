// ABOUTME: Confirmation dialog for TUI
// ABOUTME: Answers confirmations raised by controllers through the bridge
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/freightdesk/notify"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmView() string {
	if m.confirm == nil {
		return ""
	}
	c := m.confirm.confirmation

	title := c.Title
	if c.Icon == notify.IconWarning {
		title = "⚠  " + title + "  ⚠"
	}
	confirmText, cancelText := c.ConfirmText, c.CancelText
	if confirmText == "" {
		confirmText = "Yes"
	}
	if cancelText == "" {
		cancelText = "Cancel"
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render(confirmText+" (y)"),
		cancelButtonStyle.Render(cancelText+" (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		warningStyle.Render(title),
		"",
		c.Text,
		"",
		buttons,
	)

	// Center the box on screen
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		confirmBoxStyle.Render(content),
	)
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.answer(true)
	case "n", "N", "esc":
		m.answer(false)
	}
	return m, nil
}

func (m *Model) answer(ok bool) {
	if m.confirm != nil {
		m.confirm.reply <- ok
		m.confirm = nil
	}
	m.viewMode = m.prevMode
}
