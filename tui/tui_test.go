// ABOUTME: Tests for the TUI model against the fake backend
// ABOUTME: Drives key presses and bridged confirmations through Update
package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/apitest"
	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/models"
)

func newTestModel(t *testing.T, names ...string) (Model, *apitest.Server, *Bridge) {
	t.Helper()
	srv := apitest.NewServer(t)
	bridge := NewBridge()
	deps := entities.Deps{
		Backend:  api.New(srv.URL(), api.StaticToken("tok")),
		Notifier: bridge,
		FileBase: srv.FileRoot(),
	}
	var tables []entities.Table
	for _, name := range names {
		tbl, err := entities.New(name, deps)
		require.NoError(t, err)
		tables = append(tables, tbl)
	}
	return NewModel(context.Background(), tables, bridge), srv, bridge
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// nextEvent reads one bridged event without blocking forever.
func nextEvent(t *testing.T, b *Bridge) tea.Msg {
	t.Helper()
	ch := make(chan tea.Msg, 1)
	go func() { ch <- b.Next()() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no bridged event")
		return nil
	}
}

func TestModel_FetchRendersRows(t *testing.T) {
	m, srv, _ := newTestModel(t, "leads", "quotes")
	srv.Seed("lead", models.Lead{ID: 1, LeadNo: "L-1", CustomerName: "Acme Freight"})

	m, _ = update(t, m, m.fetchCmd(0)())
	view := m.View()
	assert.Contains(t, view, "FREIGHT DESK")
	assert.Contains(t, view, "Acme Freight")
	assert.True(t, m.loaded[0])

	// Switching to an unloaded tab fetches it.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.active)
	require.NotNil(t, cmd)
	fetched, ok := cmd().(fetchedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, fetched.tab)
}

func TestModel_SortKey(t *testing.T) {
	m, srv, _ := newTestModel(t, "leads")
	srv.Seed("lead",
		models.Lead{ID: 1, LeadNo: "L-2"},
		models.Lead{ID: 2, LeadNo: "L-1"},
	)
	m, _ = update(t, m, m.fetchCmd(0)())

	m, _ = update(t, m, keys("1"))
	assert.Equal(t, "lead_no", m.table().SortBy())
	assert.Equal(t, "L-1", m.table().Rows()[0].Text("lead_no"))
}

func TestModel_DeleteWithConfirmation(t *testing.T) {
	m, srv, bridge := newTestModel(t, "leads")
	srv.Seed("lead", models.Lead{ID: 7, LeadNo: "L-7"})
	m, _ = update(t, m, m.fetchCmd(0)())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.table().IsSelected(7))

	m, cmd := update(t, m, keys("d"))
	require.NotNil(t, cmd)
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	confirm, ok := nextEvent(t, bridge).(confirmMsg)
	require.True(t, ok)
	m, _ = update(t, m, confirm)
	assert.Equal(t, ViewConfirm, m.viewMode)
	assert.Contains(t, m.View(), controller.ConfirmDelete.Title)

	m, _ = update(t, m, keys("y"))
	assert.Equal(t, ViewList, m.viewMode)

	m, _ = update(t, m, <-done)
	assert.False(t, m.busy)
	assert.Equal(t, 0, srv.Len("lead"))
	assert.Empty(t, m.table().Rows())

	alert, ok := nextEvent(t, bridge).(alertMsg)
	require.True(t, ok)
	m, _ = update(t, m, alert)
	assert.Contains(t, m.View(), "Deleted!")
}

func TestModel_DeleteDeclined(t *testing.T) {
	m, srv, bridge := newTestModel(t, "leads")
	srv.Seed("lead", models.Lead{ID: 7})
	m, _ = update(t, m, m.fetchCmd(0)())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, cmd := update(t, m, keys("d"))
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	confirm := nextEvent(t, bridge).(confirmMsg)
	m, _ = update(t, m, confirm)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	result := (<-done).(actionMsg)
	assert.Equal(t, controller.OutcomeCancelled, result.outcome)
	assert.Equal(t, 1, srv.Len("lead"))
	assert.Equal(t, 0, srv.Count("DELETE", "/lead"))
}

func TestModel_AddFormValidation(t *testing.T) {
	m, srv, bridge := newTestModel(t, "leads")
	m, _ = update(t, m, m.fetchCmd(0)())

	m, _ = update(t, m, keys("n"))
	require.Equal(t, ViewEdit, m.viewMode)
	require.NotEmpty(t, m.inputs)
	assert.Contains(t, m.View(), "NEW LEAD")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, ViewEdit, m.viewMode)
	assert.Equal(t, 0, srv.Count("POST", "/lead"))

	alert := nextEvent(t, bridge).(alertMsg)
	assert.Equal(t, controller.AlertValidation, alert.alert)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.viewMode)
	assert.Nil(t, m.form)
}

func TestModel_EditTypesIntoDraft(t *testing.T) {
	m, srv, _ := newTestModel(t, "leads")
	srv.Seed("lead", models.Lead{ID: 3, LeadNo: "L-3", LeadDate: "2024-01-02", LeadType: "FTL", LeadStatus: "New"})
	m, _ = update(t, m, m.fetchCmd(0)())

	m, _ = update(t, m, keys("e"))
	require.Equal(t, ViewEdit, m.viewMode)

	var idx = -1
	for i, in := range m.inputs {
		if in.field == "lead_no" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	m.focusIndex = idx
	m.updateFormFocus()

	m, _ = update(t, m, keys("X"))
	assert.Equal(t, "L-3X", m.form.Value("lead_no"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = update(t, m, cmd())
	assert.Equal(t, ViewList, m.viewMode)

	rec, ok := srv.Record("lead", 3)
	require.True(t, ok)
	assert.Equal(t, "L-3X", rec["lead_no"])
}

func TestModel_EmailView(t *testing.T) {
	m, srv, _ := newTestModel(t, "quotes")
	srv.Seed("quote", models.Quote{ID: 1, QuoteCustomer: "Acme"})
	m, _ = update(t, m, m.fetchCmd(0)())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, _ = update(t, m, keys("m"))
	require.Equal(t, ViewEmail, m.viewMode)
	assert.True(t, strings.Contains(m.View(), "1 selected"))

	m, _ = update(t, m, keys("Rates"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, ViewList, m.viewMode)
	require.Equal(t, 1, srv.Count("POST", entities.SendEmailPath))
	subject, _ := m.table().(entities.Emailer).Email()
	assert.Empty(t, subject)
}
