package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panelbom_backend/internal/catalog/service"
	"panelbom_backend/internal/catalog/transport"
	"panelbom_backend/platform/httpkit"
	"panelbom_backend/platform/validator"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Info returns the current snapshot's version, fingerprint, and counts.
// GET /api/v1/catalog/info
func (h *Handler) Info(c *gin.Context) {
	snap, err := h.svc.Snapshot()
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.CatalogInfoResponse{
		Version:     snap.Version,
		Fingerprint: snap.Fingerprint,
		LoadedAt:    snap.LoadedAt,
		Products:    len(snap.Products),
		Accessories: len(snap.Accessories),
		Currency:    snap.Rules.Currency,
		TaxRateBps:  snap.Rules.TaxRateBps,
	})
}

// ListProducts returns the catalog's products, optionally filtered by family.
// GET /api/v1/catalog/products
func (h *Handler) ListProducts(c *gin.Context) {
	var req transport.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	products, err := h.svc.ListProducts(req.Family)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, transport.ToProductResponse(p))
	}
	httpkit.OK(c, transport.ProductListResponse{Items: items, Total: len(items)})
}

// ResolveAccessory probes the accessory resolution strategy chain.
// GET /api/v1/catalog/accessories/resolve
func (h *Handler) ResolveAccessory(c *gin.Context) {
	var req transport.ResolveAccessoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	match, err := h.svc.ResolveAccessory(req.Query, req.Family)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, match)
}

// Refresh re-fingerprints the catalog source and reloads it on change.
// POST /api/v1/admin/catalog/refresh
func (h *Handler) Refresh(c *gin.Context) {
	snap, changed, err := h.svc.Refresh(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.RefreshResponse{Changed: changed, Version: snap.Version})
}
