// Package notification subscribes to domain events and sends the matching
// emails. Domain modules publish events; they never talk to SMTP directly.
package notification

import (
	"context"

	"github.com/google/uuid"

	"panelbom_backend/internal/email"
	"panelbom_backend/internal/events"
	"panelbom_backend/internal/quotation/domain"
	platformevents "panelbom_backend/platform/events"
	"panelbom_backend/platform/logger"
)

// QuotationReader loads a stored quotation for the email body.
type QuotationReader interface {
	GetQuotation(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
}

// Module wires domain events to notification delivery.
type Module struct {
	sender     email.Sender
	quotations QuotationReader
	log        *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, quotations QuotationReader, log *logger.Logger) *Module {
	return &Module{sender: sender, quotations: quotations, log: log}
}

// RegisterHandlers subscribes the module to the events it handles.
func (m *Module) RegisterHandlers(bus platformevents.Bus) {
	bus.Subscribe(events.QuotationIssued{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event platformevents.Event) error {
	switch e := event.(type) {
	case events.QuotationIssued:
		return m.handleQuotationIssued(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleQuotationIssued(ctx context.Context, event events.QuotationIssued) error {
	if event.CustomerEmail == "" {
		return nil
	}

	quotation, err := m.quotations.GetQuotation(ctx, event.QuotationID)
	if err != nil {
		m.log.Error("quotation email skipped, quotation not readable",
			"id", event.QuotationID, "error", err)
		return err
	}

	if err := m.sender.SendQuotationIssued(ctx, event.CustomerEmail, quotation); err != nil {
		m.log.Error("quotation email delivery failed",
			"id", event.QuotationID, "error", err)
		return err
	}

	m.log.Info("quotation email sent", "id", event.QuotationID)
	return nil
}
