package transport

import (
	"time"

	"panelbom_backend/internal/catalog/domain"
	"panelbom_backend/platform/money"
)

type ListProductsRequest struct {
	Family string `form:"family" validate:"omitempty,max=50"`
}

type ResolveAccessoryRequest struct {
	Query  string `form:"q" validate:"required,min=1,max=100"`
	Family string `form:"family" validate:"omitempty,max=50"`
}

type CatalogInfoResponse struct {
	Version     string    `json:"version"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loadedAt"`
	Products    int       `json:"products"`
	Accessories int       `json:"accessories"`
	Currency    string    `json:"currency"`
	TaxRateBps  int       `json:"taxRateBps"`
}

type LoadTableEntryResponse struct {
	ThicknessMM float64 `json:"thicknessMm"`
	MaxSpanM    float64 `json:"maxSpanM"`
}

type ProductResponse struct {
	Key             string                   `json:"key"`
	SKU             string                   `json:"sku,omitempty"`
	Name            string                   `json:"name"`
	Family          string                   `json:"family"`
	ThicknessMM     float64                  `json:"thicknessMm"`
	UsableWidthM    float64                  `json:"usableWidthM"`
	PricePerM2Cents money.Cents              `json:"pricePerM2Cents"`
	Currency        string                   `json:"currency,omitempty"`
	Fixations       []string                 `json:"fixations"`
	LoadTable       []LoadTableEntryResponse `json:"loadTable"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

type RefreshResponse struct {
	Changed bool   `json:"changed"`
	Version string `json:"version"`
}

// ToProductResponse maps a domain product to its wire form.
func ToProductResponse(p domain.Product) ProductResponse {
	fixations := make([]string, 0, len(p.Fixations))
	for _, f := range p.Fixations {
		fixations = append(fixations, string(f))
	}

	loadTable := make([]LoadTableEntryResponse, 0, len(p.LoadTable))
	for _, entry := range p.LoadTable {
		loadTable = append(loadTable, LoadTableEntryResponse{
			ThicknessMM: entry.ThicknessMM,
			MaxSpanM:    entry.MaxSpanM,
		})
	}

	return ProductResponse{
		Key:             p.Key,
		SKU:             p.SKU,
		Name:            p.Name,
		Family:          string(p.Family),
		ThicknessMM:     p.ThicknessMM,
		UsableWidthM:    p.UsableWidthM,
		PricePerM2Cents: p.PricePerM2,
		Currency:        p.Currency,
		Fixations:       fixations,
		LoadTable:       loadTable,
	}
}
