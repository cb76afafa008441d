package engine

import (
	"fmt"

	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/platform/apperr"
	"panelbom_backend/platform/money"
)

// Dimensions carries the length/area context a line item may need. Per-piece
// pricing must ignore it entirely.
type Dimensions struct {
	UnitLengthM float64
	TotalAreaM2 float64
}

// PricingEngine converts quantities and pricing units into integer-cent line
// totals and rolls them up. Dispatch is strict on the pricing unit: a
// fixed-length trim priced per piece is never multiplied by its length.
type PricingEngine struct{}

// NewPricingEngine creates a pricing engine.
func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

// PriceLineItem computes the extended price for one line. A missing unit
// price is KindPricing: the line must fail loudly, never default to zero.
func (e *PricingEngine) PriceLineItem(
	quantity int,
	unitPrice money.Cents,
	unit catalog.PricingUnit,
	dims Dimensions,
) (money.Cents, error) {
	if quantity < 0 {
		return 0, apperr.Internal(fmt.Sprintf("negative quantity %d", quantity))
	}
	if unitPrice <= 0 {
		return 0, apperr.Pricing("unit price not available in catalog")
	}

	switch unit {
	case catalog.PerPiece:
		return unitPrice.MulInt(quantity), nil
	case catalog.PerLinearMeter:
		if dims.UnitLengthM <= 0 {
			return 0, apperr.Pricing("per-meter line has no unit length")
		}
		return unitPrice.MulFloat(float64(quantity) * dims.UnitLengthM), nil
	case catalog.PerArea:
		if dims.TotalAreaM2 <= 0 {
			return 0, apperr.Pricing("per-area line has no area")
		}
		return unitPrice.MulFloat(dims.TotalAreaM2), nil
	default:
		return 0, apperr.Pricing(fmt.Sprintf("unknown pricing unit %q", unit))
	}
}

// ComputeTotals rolls up line items. The discount applies to the subtotal;
// tax applies to the post-discount base. All arithmetic stays in integer
// cents; each figure is rounded once, at emission.
func (e *PricingEngine) ComputeTotals(
	items []domain.LineItem,
	taxRateBps int,
	discountPercent float64,
) (domain.Totals, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return domain.Totals{}, apperr.Validation(
			fmt.Sprintf("discount must be between 0 and 100 percent, got %g", discountPercent))
	}
	if taxRateBps < 0 {
		return domain.Totals{}, apperr.Internal(fmt.Sprintf("negative tax rate %d bps", taxRateBps))
	}

	var subtotal money.Cents
	for _, item := range items {
		if item.ExtendedPrice < 0 {
			return domain.Totals{}, apperr.Pricing(
				fmt.Sprintf("line %q carries a negative extended price", item.Description))
		}
		subtotal += item.ExtendedPrice
	}

	discount := subtotal.ApplyBps(money.PercentToBps(discountPercent))
	base := subtotal - discount
	tax := base.ApplyBps(taxRateBps)

	return domain.Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    base + tax,
	}, nil
}
