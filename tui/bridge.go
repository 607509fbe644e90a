// ABOUTME: Notifier that forwards alerts and confirmations into the bubbletea loop
// ABOUTME: Confirmations block the calling command until the user answers on screen
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/freightdesk/notify"
)

// alertMsg carries a fired alert to the model.
type alertMsg struct {
	alert notify.Alert
}

// confirmMsg asks the model to show a confirmation dialog.
type confirmMsg struct {
	confirmation notify.Confirmation
	reply        chan<- bool
}

// Bridge implements notify.Notifier for controllers running inside tea.Cmds.
type Bridge struct {
	events chan tea.Msg
}

func NewBridge() *Bridge {
	return &Bridge{events: make(chan tea.Msg, 64)}
}

func (b *Bridge) Fire(a notify.Alert) {
	b.events <- alertMsg{alert: a}
}

// Confirm waits for the user's answer or for ctx to end.
func (b *Bridge) Confirm(ctx context.Context, c notify.Confirmation) (bool, error) {
	reply := make(chan bool, 1)
	select {
	case b.events <- confirmMsg{confirmation: c, reply: reply}:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Next waits for the next bridged event. The model re-arms it after each one.
func (b *Bridge) Next() tea.Cmd {
	return func() tea.Msg {
		return <-b.events
	}
}
