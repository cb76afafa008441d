// Package engine implements the quotation calculation pipeline: span
// validation, quantity derivation, accessory resolution, pricing, and
// assembly. Everything here is pure and synchronous; a call is a function of
// the request and the immutable catalog view it is handed.
package engine

import (
	"fmt"
	"math"

	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/platform/apperr"
)

// SpanValidator checks a requested span against a product's load table and
// plans evenly distributed intermediate supports when it exceeds the table.
type SpanValidator struct {
	snap *catalog.CatalogSnapshot
}

// NewSpanValidator creates a validator over a snapshot. The snapshot is only
// consulted for thicker-panel suggestions; validation itself uses the product.
func NewSpanValidator(snap *catalog.CatalogSnapshot) *SpanValidator {
	return &SpanValidator{snap: snap}
}

// Validate never auto-selects a thicker product and never reports a feasible
// plan whose spacing exceeds the load table. An infeasible span yields the
// minimal count of intermediate supports at equal spacing, not full-length
// segments with a short leftover.
func (v *SpanValidator) Validate(product catalog.Product, spanM float64) (domain.SpanPlan, error) {
	if spanM <= 0 {
		return domain.SpanPlan{}, apperr.Validation(fmt.Sprintf("span must be positive, got %g m", spanM))
	}

	maxSpan, ok := product.MaxUnsupportedSpan()
	if !ok {
		return domain.SpanPlan{}, apperr.Internal(
			fmt.Sprintf("product %s has no load-table entry for its own thickness", product.Key))
	}

	plan := domain.SpanPlan{
		RequestedSpanM:      spanM,
		MaxUnsupportedSpanM: maxSpan,
	}

	if spanM <= maxSpan {
		plan.Feasible = true
		plan.EffectiveSpanM = spanM
		return plan, nil
	}

	segments := int(math.Ceil(spanM / maxSpan))
	spacing := spanM / float64(segments)

	plan.Feasible = false
	plan.IntermediateSupports = segments - 1
	plan.RecommendedSpacingM = spacing
	plan.EffectiveSpanM = spacing

	if suggestion, ok := v.snap.NextThickerProduct(product.Family, product.ThicknessMM, spanM); ok {
		plan.SuggestedProductKey = suggestion.Key
		plan.SuggestedProductName = suggestion.Name
	}

	return plan, nil
}
