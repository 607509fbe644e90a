package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/freightdesk/models"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(28)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render(strings.ToUpper(m.table().Singular()) + " DETAILS"))
	s.WriteString("\n\n")

	row, ok := m.table().Record(m.detailID)
	if !ok {
		s.WriteString(fmt.Sprintf("Record %d is no longer loaded.", m.detailID))
	} else {
		s.WriteString(m.renderRecord(row.Fields))
	}

	s.WriteString("\n")

	// Help
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

// renderRecord lists the table's columns first, then every other field by name.
func (m Model) renderRecord(fields map[string]any) string {
	var s strings.Builder
	seen := map[string]bool{}
	for _, c := range m.table().Columns() {
		s.WriteString(m.renderField(c.Title, models.FormatValue(fields[c.Key])))
		seen[c.Key] = true
	}

	var rest, nested []string
	for k, v := range fields {
		if seen[k] {
			continue
		}
		if _, ok := v.([]any); ok {
			nested = append(nested, k)
		} else {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	sort.Strings(nested)
	for _, k := range rest {
		s.WriteString(m.renderField(k, models.FormatValue(fields[k])))
	}

	for _, k := range nested {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Bold(true).Render(strings.ToUpper(k)))
		s.WriteString("\n")
		for _, item := range fields[k].([]any) {
			s.WriteString("  • " + summarize(item) + "\n")
		}
	}
	return s.String()
}

func summarize(item any) string {
	child, ok := item.(map[string]any)
	if !ok {
		return models.FormatValue(item)
	}
	keys := make([]string, 0, len(child))
	for k := range child {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := models.FormatValue(child[k]); v != "" {
			parts = append(parts, k+": "+v)
		}
	}
	return strings.Join(parts, ", ")
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Esc: Back",
		"e: Edit",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
	case "e":
		return m.openEdit(m.detailID)
	case "q":
		return m, tea.Quit
	}

	return m, nil
}
