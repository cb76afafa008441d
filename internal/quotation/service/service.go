// Package service orchestrates quotation creation: catalog view lookup,
// engine invocation, persistence, and the issued-quotation event.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"panelbom_backend/internal/catalog/index"
	"panelbom_backend/internal/events"
	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/internal/quotation/engine"
	"panelbom_backend/internal/quotation/repository"
	platformevents "panelbom_backend/platform/events"
	"panelbom_backend/platform/logger"
	"panelbom_backend/platform/phone"
)

// CatalogViews provides the current indexed catalog view.
type CatalogViews interface {
	View() (*index.View, error)
}

// Service is the quotation application service.
type Service struct {
	views     CatalogViews
	repo      *repository.Repository
	assembler *engine.Assembler
	bus       platformevents.Bus
	log       *logger.Logger
}

// New creates the quotation service.
func New(views CatalogViews, repo *repository.Repository, bus platformevents.Bus, log *logger.Logger) *Service {
	return &Service{
		views:     views,
		repo:      repo,
		assembler: engine.NewAssembler(),
		bus:       bus,
		log:       log,
	}
}

// CreateQuotation computes, persists, and announces a quotation. The
// calculation itself never blocks on I/O; only the catalog load earlier and
// the insert afterwards touch external systems.
func (s *Service) CreateQuotation(ctx context.Context, req domain.QuotationRequest, customer domain.Customer) (*domain.Quotation, error) {
	view, err := s.views.View()
	if err != nil {
		return nil, err
	}

	result, err := s.assembler.Process(view, req)
	if err != nil {
		return nil, err
	}

	customer.Phone = phone.NormalizeE164(customer.Phone)

	quotation := &domain.Quotation{
		ID:        uuid.New(),
		Customer:  customer,
		Request:   req,
		Result:    *result,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, quotation); err != nil {
		return nil, err
	}

	s.log.Info("quotation issued",
		"id", quotation.ID,
		"product", result.ProductKey,
		"status", string(result.Status),
		"total", result.Totals.Total.String(),
		"catalogVersion", result.CatalogVersion)

	if s.bus != nil {
		s.bus.Publish(ctx, events.QuotationIssued{
			BaseEvent:     platformevents.NewBaseEvent(),
			QuotationID:   quotation.ID,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			Status:        string(result.Status),
			Total:         result.Totals.Total,
			Currency:      result.Currency,
		})
	}

	return quotation, nil
}

// GetQuotation returns a stored quotation by ID.
func (s *Service) GetQuotation(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	return s.repo.GetByID(ctx, id)
}
