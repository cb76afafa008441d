// Package catalog provides the catalog bounded context module.
package catalog

import (
	"context"

	"panelbom_backend/internal/catalog/handler"
	"panelbom_backend/internal/catalog/repository"
	"panelbom_backend/internal/catalog/service"
	"panelbom_backend/internal/catalog/source"
	apphttp "panelbom_backend/internal/http"
	"panelbom_backend/platform/events"
	"panelbom_backend/platform/logger"
	"panelbom_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(src source.Source, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(src, log)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Load performs the initial catalog load.
func (m *Module) Load(ctx context.Context) error {
	return m.service.Load(ctx)
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/catalog/info", m.handler.Info)
	ctx.V1.GET("/catalog/products", m.handler.ListProducts)
	ctx.V1.GET("/catalog/accessories/resolve", m.handler.ResolveAccessory)

	ctx.Admin.POST("/catalog/refresh", m.handler.Refresh)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
