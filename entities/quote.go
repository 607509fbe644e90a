// ABOUTME: Quote table with bulk email of selected quotes
// ABOUTME: Posts the selection once to the backend email endpoint
package entities

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
)

// SendEmailPath is the backend route that emails quotes.
const SendEmailPath = "/quote/send-email"

var (
	AlertEmailNoSelection = notify.Warning("No record selected", "Please select a record to email.")
	AlertEmailSent        = notify.Success("Success!", "Emails have been sent.")
	AlertEmailFailed      = notify.Error("Error!", "Failed to send emails.")
)

// Emailer is a table whose selection can be emailed.
type Emailer interface {
	SetEmail(subject, content string)
	Email() (subject, content string)
	SendEmails(ctx context.Context) controller.Outcome
}

// QuoteTable lists quotes and emails the selected ones.
type QuoteTable struct {
	*table[models.Quote]
	logger *zap.Logger

	mu      sync.Mutex
	subject string
	content string
}

type emailRequest struct {
	IDs     []int64 `json:"ids"`
	Subject string  `json:"subject"`
	Content string  `json:"content"`
}

func NewQuoteTable(b controller.Backend, n notify.Notifier, logger *zap.Logger, opts ...controller.Option) *QuoteTable {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteTable{
		table:  newTable("quotes", "Quotes", quoteColumns, Quote(), b, n, opts),
		logger: logger.With(zap.String("resource", "quote")),
	}
}

func (q *QuoteTable) SetEmail(subject, content string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subject = subject
	q.content = content
}

func (q *QuoteTable) Email() (string, string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.subject, q.content
}

// SendEmails posts the selected ids with the email draft, clearing the
// draft on success.
func (q *QuoteTable) SendEmails(ctx context.Context) controller.Outcome {
	ids := q.Selected()
	if len(ids) == 0 {
		q.notifier.Fire(AlertEmailNoSelection)
		return controller.OutcomeNoSelection
	}
	if err := q.backend.Authorized(); err != nil {
		if errors.Is(err, api.ErrNoToken) {
			q.notifier.Fire(controller.AlertNotLoggedIn)
			return controller.OutcomeNoToken
		}
		q.logger.Error("failed to read token", zap.Error(err))
		q.notifier.Fire(AlertEmailFailed)
		return controller.OutcomeFailed
	}

	subject, content := q.Email()
	body := emailRequest{IDs: ids, Subject: subject, Content: content}
	if err := q.backend.Post(ctx, SendEmailPath, body, nil); err != nil {
		q.logger.Error("failed to send emails", zap.Int64s("ids", ids), zap.Error(err))
		q.notifier.Fire(AlertEmailFailed)
		if api.IsUnauthorized(err) {
			return controller.OutcomeUnauthorized
		}
		return controller.OutcomeFailed
	}

	q.SetEmail("", "")
	q.notifier.Fire(AlertEmailSent)
	return controller.OutcomeOK
}
