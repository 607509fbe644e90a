package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/freightdesk/controller"
)

// formInput is one editable line: a scalar field, or a column of a child row.
type formInput struct {
	label string
	field string
	child int // -1 for scalar fields
	row   int
	input textinput.Model
}

const maxVisibleInputs = 14

func (m Model) openAdd() (tea.Model, tea.Cmd) {
	t, ctx := m.table(), m.ctx
	m.form = t.AddForm(func() { t.Fetch(ctx) })
	m.focusIndex = 0
	m.buildInputs()
	m.viewMode = ViewEdit
	return m, nil
}

func (m Model) openEdit(id int64) (tea.Model, tea.Cmd) {
	form, ok := m.table().EditForm(id, nil)
	if !ok {
		return m, nil
	}
	m.form = form
	m.focusIndex = 0
	m.buildInputs()
	m.viewMode = ViewEdit
	return m, nil
}

// buildInputs recreates every input from the current draft.
func (m *Model) buildInputs() {
	var inputs []formInput
	for _, field := range m.form.Fields() {
		label := field
		if m.form.IsRequired(field) {
			label += " *"
		}
		inputs = append(inputs, newFormInput(label, field, -1, 0, m.form.Value(field)))
	}
	for ci, ed := range m.form.Children() {
		for row := 0; row < ed.Len(); row++ {
			values := ed.Row(row)
			for _, col := range ed.Columns() {
				if ed.ByID() && col == "id" {
					continue
				}
				label := fmt.Sprintf("%s[%d].%s", ed.Label(), row+1, col)
				inputs = append(inputs, newFormInput(label, col, ci, row, textValue(values[col])))
			}
		}
	}
	m.inputs = inputs
	if m.focusIndex >= len(m.inputs) {
		m.focusIndex = len(m.inputs) - 1
	}
	if m.focusIndex < 0 {
		m.focusIndex = 0
	}
	m.updateFormFocus()
}

// syncInputs refreshes input values after the draft changed underneath them.
func (m *Model) syncInputs() {
	m.buildInputs()
}

func newFormInput(label, field string, child, row int, value string) formInput {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 500
	in.SetValue(value)
	in.CursorEnd()
	return formInput{label: label, field: field, child: child, row: row, input: in}
}

func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func (m Model) renderEditView() string {
	var s strings.Builder

	// Title
	name := strings.ToUpper(m.table().Singular())
	if m.form.Mode() == controller.ModeAdd {
		s.WriteString(titleStyle.Render("NEW " + name))
	} else {
		s.WriteString(titleStyle.Render("EDIT " + name))
	}
	s.WriteString("\n\n")

	start := m.focusIndex - maxVisibleInputs/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisibleInputs
	if end > len(m.inputs) {
		end = len(m.inputs)
	}

	// Form fields
	for i := start; i < end; i++ {
		in := m.inputs[i]
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(fieldLabelStyle.Render(in.label + ":"))
		s.WriteString(in.input.View())
		s.WriteString("\n")
		if in.child < 0 {
			if msg := m.form.Error(in.field); msg != "" {
				s.WriteString("    " + errorStyle.Render(msg) + "\n")
			}
		}
	}
	if len(m.inputs) > maxVisibleInputs {
		s.WriteString(helpStyle.Render(fmt.Sprintf("field %d of %d", m.focusIndex+1, len(m.inputs))))
		s.WriteString("\n")
	}

	if status := renderStatus(m.status); status != "" {
		s.WriteString("\n" + status + "\n")
	}

	// Help
	s.WriteString(m.renderEditHelp())

	return s.String()
}

func (m Model) renderEditHelp() string {
	help := []string{
		"Tab/↓: Next field",
		"Shift+Tab/↑: Previous",
		"Ctrl+S: Save",
		"Ctrl+N: Add row",
		"Ctrl+X: Remove row",
	}
	if len(m.form.FileFields()) > 0 {
		help = append(help, "Ctrl+U: Upload file at path")
	}
	help = append(help, "Esc: Cancel")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.inputs = nil
		m.viewMode = ViewList
		return m, nil
	case "tab", "down":
		if len(m.inputs) > 0 {
			m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
			m.updateFormFocus()
		}
		return m, nil
	case "shift+tab", "up":
		if len(m.inputs) > 0 {
			m.focusIndex = (m.focusIndex + len(m.inputs) - 1) % len(m.inputs)
			m.updateFormFocus()
		}
		return m, nil
	case "ctrl+s":
		if m.busy {
			return m, nil
		}
		m.busy = true
		form, ctx := m.form, m.ctx
		return m, actionCmd("save", func() controller.Outcome { return form.Save(ctx) })
	case "ctrl+n":
		m.addChildRow()
		return m, nil
	case "ctrl+x":
		m.removeChildRow()
		return m, nil
	case "ctrl+u":
		return m.uploadFocused()
	}

	if len(m.inputs) == 0 {
		return m, nil
	}

	// Update current input
	var cmd tea.Cmd
	before := m.inputs[m.focusIndex].input.Value()
	m.inputs[m.focusIndex].input, cmd = m.inputs[m.focusIndex].input.Update(msg)
	if m.inputs[m.focusIndex].input.Value() != before {
		m.applyInput(m.focusIndex)
	}
	return m, cmd
}

func (m *Model) applyInput(i int) {
	in := m.inputs[i]
	value := in.input.Value()
	if in.child < 0 {
		_, _ = m.form.SetField(in.field, value)
		return
	}
	children := m.form.Children()
	if in.child < len(children) {
		_ = children[in.child].SetChildField(in.row, in.field, value)
	}
}

// focusedChild is the collection of the focused input, or the first one.
func (m Model) focusedChild() (int, int, bool) {
	if len(m.inputs) > 0 {
		if in := m.inputs[m.focusIndex]; in.child >= 0 {
			return in.child, in.row, true
		}
	}
	return 0, -1, len(m.form.Children()) > 0
}

func (m *Model) addChildRow() {
	ci, _, ok := m.focusedChild()
	if !ok {
		return
	}
	m.form.Children()[ci].Add()
	m.buildInputs()
}

func (m *Model) removeChildRow() {
	ci, row, ok := m.focusedChild()
	if !ok || row < 0 {
		return
	}
	_ = m.form.Children()[ci].Remove(row)
	m.buildInputs()
}

func (m Model) uploadFocused() (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 || m.busy {
		return m, nil
	}
	in := m.inputs[m.focusIndex]
	isFile := false
	for _, f := range m.form.FileFields() {
		if f == in.field && in.child < 0 {
			isFile = true
		}
	}
	if !isFile {
		return m, nil
	}
	m.busy = true
	form, ctx, path := m.form, m.ctx, strings.TrimSpace(in.input.Value())
	return m, uploadCmd(ctx, form.UploadDocument, in.field, path)
}

func uploadCmd(ctx context.Context, upload func(context.Context, string, string) (controller.Outcome, error), key, path string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := upload(ctx, key, path)
		return actionMsg{action: "upload", outcome: outcome, err: err}
	}
}

func (m *Model) updateFormFocus() {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].input.Focus()
		} else {
			m.inputs[i].input.Blur()
		}
	}
}
