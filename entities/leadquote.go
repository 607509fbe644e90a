// ABOUTME: Quotation-stage lead table with conversion of a lead into a customer
// ABOUTME: Creates the customer, deletes the lead, and drops it from the list
package entities

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
)

var (
	ConfirmConvert = notify.Confirmation{
		Title:       "Are you sure?",
		Text:        "This lead will be converted to a customer.",
		Icon:        notify.IconWarning,
		ConfirmText: "Yes, convert it!",
		CancelText:  "No, cancel!",
	}
	AlertConverted     = notify.Success("Converted!", "The lead has been converted to a customer.")
	AlertConvertFailed = notify.Error("Error!", "Failed to convert the lead to a customer.")
)

// Converter is a table whose records can be converted into customers.
type Converter interface {
	ConvertToCustomer(ctx context.Context, id int64) controller.Outcome
}

// LeadQuoteTable lists leads with status "Quotations".
type LeadQuoteTable struct {
	*table[models.Lead]
	logger *zap.Logger
}

func NewLeadQuoteTable(b controller.Backend, n notify.Notifier, logger *zap.Logger, opts ...controller.Option) *LeadQuoteTable {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadQuoteTable{
		table:  newTable("lead-quotes", "Lead Quotes", leadColumns, LeadQuote(), b, n, opts),
		logger: logger.With(zap.String("resource", "lead")),
	}
}

// ConvertToCustomer asks for confirmation, creates a customer from the
// lead's name, email, and state, then deletes the lead.
func (t *LeadQuoteTable) ConvertToCustomer(ctx context.Context, id int64) controller.Outcome {
	lead, ok := t.find(id)
	if !ok {
		t.notifier.Fire(controller.AlertNoSelection)
		return controller.OutcomeNoSelection
	}

	confirmed, err := t.notifier.Confirm(ctx, ConfirmConvert)
	if err != nil || !confirmed {
		return controller.OutcomeCancelled
	}

	if err := t.backend.Authorized(); err != nil {
		t.logger.Error("failed to read token", zap.Error(err))
		t.notifier.Fire(AlertConvertFailed)
		if errors.Is(err, api.ErrNoToken) {
			return controller.OutcomeNoToken
		}
		return controller.OutcomeFailed
	}

	customer := models.Customer{
		CustName:         lead.CustomerName,
		CustEmail:        lead.Email,
		CustPrimaryState: lead.State,
	}
	if err := t.backend.Create(ctx, "customer", conversionBody(customer), nil); err != nil {
		return t.convertFailed(id, err)
	}
	if err := t.backend.Delete(ctx, "lead", id); err != nil {
		return t.convertFailed(id, err)
	}

	t.list.RemoveItems(id)
	t.notifier.Fire(AlertConverted)
	return controller.OutcomeOK
}

func (t *LeadQuoteTable) convertFailed(id int64, err error) controller.Outcome {
	t.logger.Error("failed to convert lead", zap.Int64("id", id), zap.Error(err))
	t.notifier.Fire(AlertConvertFailed)
	if api.IsUnauthorized(err) {
		return controller.OutcomeUnauthorized
	}
	return controller.OutcomeFailed
}

// conversionBody sends only the fields carried over from the lead.
func conversionBody(c models.Customer) map[string]string {
	return map[string]string{
		"cust_name":          c.CustName,
		"cust_email":         c.CustEmail,
		"cust_primary_state": c.CustPrimaryState,
	}
}
