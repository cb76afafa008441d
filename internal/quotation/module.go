// Package quotation provides the quotation bounded context module: the
// calculation entrypoint plus persistence and retrieval of issued quotations.
package quotation

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "panelbom_backend/internal/http"
	"panelbom_backend/internal/quotation/handler"
	"panelbom_backend/internal/quotation/repository"
	"panelbom_backend/internal/quotation/service"
	"panelbom_backend/platform/events"
	"panelbom_backend/platform/logger"
	"panelbom_backend/platform/validator"
)

// Module is the quotation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the quotation module.
func NewModule(pool *pgxpool.Pool, views service.CatalogViews, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(views, repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotation"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts quotation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/quotations", m.handler.Create)
	ctx.Protected.GET("/quotations/:id", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
