package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/notify"
)

func (m Model) renderListView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("FREIGHT DESK"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.searching || m.table().SearchQuery() != "" {
		s.WriteString(m.search.View())
		s.WriteString("\n")
	}

	// Table
	if m.table().Loading() && !m.loaded[m.active] {
		s.WriteString("Loading " + m.table().Title() + "...")
	} else {
		s.WriteString(m.renderTable())
	}
	s.WriteString("\n")
	s.WriteString(m.renderPager())
	s.WriteString("\n")

	if status := renderStatus(m.status); status != "" {
		s.WriteString(status)
		s.WriteString("\n")
	}

	// Help
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string

	for i, t := range m.tables {
		if i == m.active {
			rendered = append(rendered, tabActiveStyle.Render(t.Title()))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(t.Title()))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() string {
	t := m.table()

	columns := []table.Column{{Title: " ", Width: 3}}
	for i, c := range t.Columns() {
		title := strconv.Itoa(i+1) + " " + c.Title
		if t.SortBy() == c.Key {
			if t.SortDesc() {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		columns = append(columns, table.Column{Title: title, Width: c.Width})
	}

	var rows []table.Row
	for _, r := range t.Rows() {
		mark := "[ ]"
		if t.IsSelected(r.ID) {
			mark = "[x]"
		}
		row := table.Row{mark}
		for _, c := range t.Columns() {
			row = append(row, r.Text(c.Key))
		}
		rows = append(rows, row)
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(controller.RowsPerPage+1),
	)

	// Set selected row
	if m.cursor < len(rows) {
		tbl.SetCursor(m.cursor)
	}

	return tbl.View()
}

func (m Model) renderPager() string {
	t := m.table()
	pages := t.TotalPages()
	if pages == 0 {
		return helpStyle.Render("No records")
	}
	info := fmt.Sprintf("Page %d of %d • %d record(s)", t.Page(), pages, len(t.All()))
	if n := len(t.Selected()); n > 0 {
		info += fmt.Sprintf(" • %d selected", n)
	}
	return helpStyle.Render(info)
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"←/→: Page",
		"Tab: Switch tabs",
		"1-9: Sort",
		"Space: Select",
		"a: Select page",
		"Enter: View",
		"e: Edit",
		"n: New",
		"d: Delete",
		"/: Search",
		"r: Refresh",
	}
	switch m.table().(type) {
	case entities.Emailer:
		help = append(help, "m: Email")
	case entities.Converter:
		help = append(help, "c: Convert")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	t := m.table()
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(t.Rows())-1 {
			m.cursor++
		}
	case "left", "h":
		t.SetPage(t.Page() - 1)
		m.cursor = 0
	case "right", "l":
		t.SetPage(t.Page() + 1)
		m.cursor = 0
	case "tab", "shift+tab":
		if key == "tab" {
			m.active = (m.active + 1) % len(m.tables)
		} else {
			m.active = (m.active + len(m.tables) - 1) % len(m.tables)
		}
		m.cursor = 0
		m.status = notify.Alert{}
		m.search.SetValue(m.table().SearchQuery())
		if !m.loaded[m.active] {
			m.busy = true
			return m, m.fetchCmd(m.active)
		}
	case "r":
		m.busy = true
		return m, m.fetchCmd(m.active)
	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil
	case " ":
		if id, ok := m.currentID(); ok {
			t.ToggleSelect(id)
		}
	case "a":
		t.ToggleSelectAll()
	case "enter":
		if id, ok := m.currentID(); ok {
			m.detailID = id
			m.viewMode = ViewDetail
		}
	case "e":
		if id, ok := m.currentID(); ok {
			return m.openEdit(id)
		}
	case "n":
		return m.openAdd()
	case "d":
		if m.busy {
			return m, nil
		}
		m.busy = true
		ctx := m.ctx
		return m, actionCmd("delete", func() controller.Outcome { return t.DeleteSelected(ctx) })
	case "m":
		if e, ok := t.(entities.Emailer); ok {
			return m.openEmail(e)
		}
	case "c":
		conv, ok := t.(entities.Converter)
		id, has := m.currentID()
		if ok && has && !m.busy {
			m.busy = true
			ctx := m.ctx
			return m, actionCmd("convert", func() controller.Outcome { return conv.ConvertToCustomer(ctx, id) })
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(t.Columns()) {
			t.HandleSort(t.Columns()[n-1].Key)
			m.cursor = 0
		}
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		if msg.String() == "esc" {
			m.search.SetValue("")
			m.table().SetSearch("")
		}
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.table().SearchQuery() {
		m.table().SetSearch(m.search.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) currentID() (int64, bool) {
	rows := m.table().Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return 0, false
	}
	return rows[m.cursor].ID, true
}
