// Package email delivers quotation summaries over SMTP.
package email

import (
	"context"

	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/platform/config"
)

// Sender delivers quotation emails.
type Sender interface {
	SendQuotationIssued(ctx context.Context, toEmail string, quotation *domain.Quotation) error
}

// NewSender returns the configured sender, or a no-op sender when email
// delivery is disabled.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}

// NoopSender drops all emails. Used when SMTP is not configured.
type NoopSender struct{}

// SendQuotationIssued does nothing.
func (NoopSender) SendQuotationIssued(context.Context, string, *domain.Quotation) error {
	return nil
}
