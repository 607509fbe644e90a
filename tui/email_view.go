// ABOUTME: Email composer for sending the selected quotes
// ABOUTME: Subject and body inputs feeding the quote table's email draft
package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
)

func (m Model) openEmail(e entities.Emailer) (tea.Model, tea.Cmd) {
	subject, content := e.Email()
	m.emailSubject.SetValue(subject)
	m.emailSubject.CursorEnd()
	m.emailBody.SetValue(content)
	m.emailFocus = 0
	m.emailSubject.Focus()
	m.emailBody.Blur()
	m.viewMode = ViewEmail
	return m, nil
}

func (m Model) renderEmailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("EMAIL QUOTES"))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(strconv.Itoa(len(m.table().Selected())) + " selected"))
	s.WriteString("\n\n")

	s.WriteString(fieldLabelStyle.Render("Subject:"))
	s.WriteString(m.emailSubject.View())
	s.WriteString("\n\n")
	s.WriteString(m.emailBody.View())
	s.WriteString("\n")

	if status := renderStatus(m.status); status != "" {
		s.WriteString("\n" + status + "\n")
	}

	help := []string{"Tab: Switch field", "Ctrl+S: Send", "Esc: Back"}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleEmailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	emailer, ok := m.table().(entities.Emailer)
	if !ok {
		m.viewMode = ViewList
		return m, nil
	}

	switch msg.String() {
	case "esc":
		emailer.SetEmail(m.emailSubject.Value(), m.emailBody.Value())
		m.viewMode = ViewList
		return m, nil
	case "tab", "shift+tab":
		m.emailFocus = 1 - m.emailFocus
		if m.emailFocus == 0 {
			m.emailSubject.Focus()
			m.emailBody.Blur()
		} else {
			m.emailSubject.Blur()
			m.emailBody.Focus()
		}
		return m, nil
	case "ctrl+s":
		if m.busy {
			return m, nil
		}
		m.busy = true
		emailer.SetEmail(m.emailSubject.Value(), m.emailBody.Value())
		ctx := m.ctx
		return m, actionCmd("email", func() controller.Outcome { return emailer.SendEmails(ctx) })
	}

	var cmd tea.Cmd
	if m.emailFocus == 0 {
		m.emailSubject, cmd = m.emailSubject.Update(msg)
	} else {
		m.emailBody, cmd = m.emailBody.Update(msg)
	}
	return m, cmd
}
