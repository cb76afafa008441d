// Package domain holds the quotation request/result model. A result is a
// value: assembled once per request, never mutated after return.
package domain

import (
	"time"

	"github.com/google/uuid"

	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/platform/money"
)

// Status is the top-level outcome of a quotation.
type Status string

const (
	// StatusPriced means the request was feasible as specified.
	StatusPriced Status = "priced"
	// StatusRequiresDesignChange means the requested span exceeds the panel's
	// load table. The result still carries a priced plan with intermediate
	// supports plus a thicker-panel suggestion, so the caller can present
	// options instead of a bare failure.
	StatusRequiresDesignChange Status = "requires_design_change"
)

// Customer is the optional delivery contact attached to a request.
type Customer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// QuotationRequest is the caller-constructed product specification.
// Width drives the panel count when given; otherwise Quantity is the
// explicitly requested number of panels.
type QuotationRequest struct {
	ProductKey      string               `json:"productKey,omitempty"`
	Family          catalog.Family       `json:"family,omitempty"`
	ThicknessMM     float64              `json:"thicknessMm,omitempty"`
	LengthM         float64              `json:"lengthM"`
	WidthM          float64              `json:"widthM,omitempty"`
	SpanM           float64              `json:"spanM"`
	Fixation        catalog.FixationType `json:"fixation,omitempty"`
	Quantity        int                  `json:"quantity,omitempty"`
	DiscountPercent float64              `json:"discountPercent,omitempty"`
}

// SpanPlan is the span validation outcome carried on every result.
type SpanPlan struct {
	Feasible             bool    `json:"feasible"`
	RequestedSpanM       float64 `json:"requestedSpanM"`
	MaxUnsupportedSpanM  float64 `json:"maxUnsupportedSpanM"`
	EffectiveSpanM       float64 `json:"effectiveSpanM"`
	IntermediateSupports int     `json:"intermediateSupports"`
	RecommendedSpacingM  float64 `json:"recommendedSpacingM,omitempty"`
	SuggestedProductKey  string  `json:"suggestedProductKey,omitempty"`
	SuggestedProductName string  `json:"suggestedProductName,omitempty"`
}

// LineItem is one priced row of the bill of materials.
type LineItem struct {
	Description   string              `json:"description"`
	SKU           string              `json:"sku,omitempty"`
	Kind          string              `json:"kind"`
	Quantity      int                 `json:"quantity"`
	UnitPrice     money.Cents         `json:"unitPriceCents"`
	Unit          catalog.PricingUnit `json:"pricingUnit"`
	ExtendedPrice money.Cents         `json:"extendedPriceCents"`
}

// Totals rolls up the priced line items. Total = Subtotal - Discount + Tax.
type Totals struct {
	Subtotal money.Cents `json:"subtotalCents"`
	Discount money.Cents `json:"discountCents"`
	Tax      money.Cents `json:"taxCents"`
	Total    money.Cents `json:"totalCents"`
}

// QuotationResult is the itemized outcome of one calculation.
type QuotationResult struct {
	Status         Status     `json:"status"`
	CatalogVersion string     `json:"catalogVersion"`
	Currency       string     `json:"currency"`
	ProductKey     string     `json:"productKey"`
	ProductName    string     `json:"productName"`
	Span           SpanPlan   `json:"span"`
	Items          []LineItem `json:"items"`
	Totals         Totals     `json:"totals"`
	Warnings       []string   `json:"warnings,omitempty"`
}

// Quotation is a persisted, issued quotation.
type Quotation struct {
	ID        uuid.UUID        `json:"id"`
	Customer  Customer         `json:"customer"`
	Request   QuotationRequest `json:"request"`
	Result    QuotationResult  `json:"result"`
	CreatedAt time.Time        `json:"createdAt"`
}
