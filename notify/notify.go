// ABOUTME: Confirmation and status notification contract used by controllers
// ABOUTME: Surfaces render alerts and answer yes/no prompts on the user's behalf
package notify

import "context"

// Icon classifies an alert.
type Icon string

const (
	IconSuccess Icon = "success"
	IconError   Icon = "error"
	IconWarning Icon = "warning"
	IconInfo    Icon = "info"
)

// Alert is a fire-and-forget status message.
type Alert struct {
	Icon  Icon   `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Confirmation is a blocking yes/no prompt.
type Confirmation struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	Icon        Icon   `json:"icon"`
	ConfirmText string `json:"confirm_text"`
	CancelText  string `json:"cancel_text"`
}

// Notifier shows alerts and asks for confirmation.
type Notifier interface {
	Fire(a Alert)
	Confirm(ctx context.Context, c Confirmation) (bool, error)
}

func Success(title, text string) Alert { return Alert{Icon: IconSuccess, Title: title, Text: text} }
func Error(title, text string) Alert   { return Alert{Icon: IconError, Title: title, Text: text} }
func Warning(title, text string) Alert { return Alert{Icon: IconWarning, Title: title, Text: text} }

// Discard drops alerts and declines every prompt.
type Discard struct{}

func (Discard) Fire(Alert) {}

func (Discard) Confirm(context.Context, Confirmation) (bool, error) { return false, nil }
