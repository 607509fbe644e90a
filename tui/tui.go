// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen back office over every entity table with tabs and modals
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/notify"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEdit
	ViewConfirm
	ViewEmail
)

// fetchedMsg reports a finished fetch of one tab.
type fetchedMsg struct {
	tab     int
	outcome controller.Outcome
}

// actionMsg reports a finished user action.
type actionMsg struct {
	action  string
	outcome controller.Outcome
	err     error
}

// Model is the main bubbletea model
type Model struct {
	ctx    context.Context
	tables []entities.Table
	bridge *Bridge
	active int
	loaded map[int]bool

	viewMode ViewMode
	prevMode ViewMode
	busy     bool

	// List view state
	cursor    int
	searching bool
	search    textinput.Model

	// Detail view state
	detailID int64

	// Edit view state
	form       entities.FormEditor
	inputs     []formInput
	focusIndex int

	// Confirm view state
	confirm *confirmMsg

	// Email view state
	emailSubject textinput.Model
	emailBody    textarea.Model
	emailFocus   int

	status notify.Alert
	width  int
	height int
}

// NewModel creates a model over tables whose notifier is bridge.
func NewModel(ctx context.Context, tables []entities.Table, bridge *Bridge) Model {
	search := textinput.New()
	search.Placeholder = "Search..."
	search.Prompt = "/ "

	subject := textinput.New()
	subject.Placeholder = "Subject"
	body := textarea.New()
	body.Placeholder = "Message"

	return Model{
		ctx:          ctx,
		tables:       tables,
		bridge:       bridge,
		loaded:       map[int]bool{},
		viewMode:     ViewList,
		search:       search,
		emailSubject: subject,
		emailBody:    body,
		width:        100,
		height:       30,
	}
}

func (m Model) Init() tea.Cmd {
	if len(m.tables) == 0 {
		return m.bridge.Next()
	}
	return tea.Batch(m.bridge.Next(), m.fetchCmd(m.active))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case alertMsg:
		m.status = msg.alert
		return m, m.bridge.Next()
	case confirmMsg:
		m.confirm = &msg
		m.prevMode = m.viewMode
		m.viewMode = ViewConfirm
		return m, m.bridge.Next()
	case fetchedMsg:
		m.busy = false
		m.loaded[msg.tab] = true
		m.clampCursor()
		return m, nil
	case actionMsg:
		return m.handleActionDone(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.tables) == 0 {
		return "No tables configured."
	}
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewEdit:
		return m.renderEditView()
	case ViewConfirm:
		return m.renderConfirmView()
	case ViewEmail:
		return m.renderEmailView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if len(m.tables) == 0 {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewEdit:
		return m.handleEditKeys(msg)
	case ViewConfirm:
		return m.handleConfirmKeys(msg)
	case ViewEmail:
		return m.handleEmailKeys(msg)
	}

	return m, nil
}

func (m Model) table() entities.Table {
	return m.tables[m.active]
}

func (m Model) fetchCmd(tab int) tea.Cmd {
	t, ctx := m.tables[tab], m.ctx
	return func() tea.Msg {
		return fetchedMsg{tab: tab, outcome: t.Fetch(ctx)}
	}
}

// actionCmd runs fn off the event loop and reports its outcome.
func actionCmd(action string, fn func() controller.Outcome) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{action: action, outcome: fn()}
	}
}

func (m Model) handleActionDone(msg actionMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.status = notify.Error("Error", msg.err.Error())
	}
	switch msg.action {
	case "save":
		if msg.outcome == controller.OutcomeOK {
			m.form = nil
			m.inputs = nil
			m.viewMode = ViewList
		}
	case "upload":
		if m.form != nil {
			m.syncInputs()
		}
	case "email":
		if msg.outcome == controller.OutcomeOK {
			m.emailSubject.SetValue("")
			m.emailBody.SetValue("")
			m.viewMode = ViewList
		}
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.table().Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func renderStatus(a notify.Alert) string {
	if a == (notify.Alert{}) {
		return ""
	}
	text := a.Title + ": " + a.Text
	switch a.Icon {
	case notify.IconSuccess:
		return successStyle.Render("✓ " + text)
	case notify.IconError:
		return errorStyle.Render("✗ " + text)
	}
	return noticeStyle.Render("! " + text)
}
