package engine

import (
	"fmt"

	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/catalog/index"
	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/platform/apperr"
)

// Assembler orchestrates product lookup, span validation, quantity
// derivation, accessory resolution, and pricing into one result. It is
// stateless; Process is deterministic in the request and catalog view.
type Assembler struct {
	pricing *PricingEngine
}

// NewAssembler creates an assembler.
func NewAssembler() *Assembler {
	return &Assembler{pricing: NewPricingEngine()}
}

// Process computes a full quotation against the given catalog view.
//
// An infeasible span does not abort: the result carries the
// requires_design_change status, a priced plan with the minimal intermediate
// supports, and a thicker-panel suggestion when one exists. Hard failures are
// reserved for unknown products, missing prices, and invalid input.
func (a *Assembler) Process(view *index.View, req domain.QuotationRequest) (*domain.QuotationResult, error) {
	snap := view.Snapshot

	product, err := a.resolveProduct(view, req)
	if err != nil {
		return nil, err
	}

	var warnings []string

	fixation := req.Fixation
	if fixation == "" {
		standard, ok := snap.Rules.StandardFixation[product.Family]
		if !ok {
			return nil, apperr.Validation(fmt.Sprintf(
				"no fixation type given and no standard fixation declared for %s panels", product.Family))
		}
		fixation = standard
		warnings = append(warnings, fmt.Sprintf(
			"no support structure specified; assuming standard %s fixation for %s panels",
			fixation, product.Family))
	}
	if !product.SupportsFixation(fixation) {
		return nil, apperr.Validation(fmt.Sprintf(
			"%s is not rated for %s fixation", product.Name, fixation))
	}

	span, err := NewSpanValidator(snap).Validate(product, req.SpanM)
	if err != nil {
		return nil, err
	}
	if !span.Feasible {
		warning := fmt.Sprintf(
			"requested span %.2f m exceeds the %.2f m load-table limit; plan adds %d intermediate support(s) at %.2f m spacing",
			span.RequestedSpanM, span.MaxUnsupportedSpanM, span.IntermediateSupports, span.RecommendedSpacingM)
		if span.SuggestedProductName != "" {
			warning += fmt.Sprintf("; alternatively %s carries the span without supports", span.SuggestedProductName)
		}
		warnings = append(warnings, warning)
	}

	formulas := NewFormulaEngine(snap.Formulas)
	bill, err := formulas.ComputeBillOfMaterials(product, req, span, fixation)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(bill.Lines)+1)

	panelExtended, err := a.pricing.PriceLineItem(
		bill.PanelCount, product.PricePerM2, catalog.PerArea, Dimensions{TotalAreaM2: bill.PanelAreaM2})
	if err != nil {
		return nil, err
	}
	items = append(items, domain.LineItem{
		Description:   product.Name,
		SKU:           product.SKU,
		Kind:          "panel",
		Quantity:      bill.PanelCount,
		UnitPrice:     product.PricePerM2,
		Unit:          catalog.PerArea,
		ExtendedPrice: panelExtended,
	})

	resolver := NewAccessoryResolver(view.Accessories)
	for _, line := range bill.Lines {
		match, err := a.resolveRole(resolver, snap.Rules, line.Role, product.Family)
		if err != nil {
			return nil, err
		}

		quantity := line.Quantity
		if quantity == 0 {
			quantity = formulas.Pieces(line.RequiredM, match.Accessory)
		}
		if quantity == 0 {
			continue
		}

		dims := Dimensions{}
		if match.Accessory.Unit == catalog.PerLinearMeter {
			dims.UnitLengthM = match.Accessory.PieceLengthM
			if dims.UnitLengthM <= 0 {
				dims.UnitLengthM = 1
			}
		}

		extended, err := a.pricing.PriceLineItem(quantity, match.Accessory.UnitPrice, match.Accessory.Unit, dims)
		if err != nil {
			return nil, err
		}

		items = append(items, domain.LineItem{
			Description:   match.Accessory.Name,
			SKU:           match.Accessory.SKU,
			Kind:          string(line.Role),
			Quantity:      quantity,
			UnitPrice:     match.Accessory.UnitPrice,
			Unit:          match.Accessory.Unit,
			ExtendedPrice: extended,
		})
	}

	totals, err := a.pricing.ComputeTotals(items, snap.Rules.TaxRateBps, req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	status := domain.StatusPriced
	if !span.Feasible {
		status = domain.StatusRequiresDesignChange
	}

	currency := snap.Rules.Currency
	if currency == "" {
		currency = product.Currency
	}

	return &domain.QuotationResult{
		Status:         status,
		CatalogVersion: snap.Version,
		Currency:       currency,
		ProductKey:     product.Key,
		ProductName:    product.Name,
		Span:           span,
		Items:          items,
		Totals:         totals,
		Warnings:       warnings,
	}, nil
}

func (a *Assembler) resolveProduct(view *index.View, req domain.QuotationRequest) (catalog.Product, error) {
	if req.ProductKey != "" {
		if p, ok := view.Products.FindByKey(req.ProductKey); ok {
			return p, nil
		}
		if p, ok := view.Products.FindBySKU(req.ProductKey); ok {
			return p, nil
		}
		if p, ok := view.Products.FindByName(req.ProductKey); ok {
			return p, nil
		}
		return catalog.Product{}, apperr.NotFound(
			fmt.Sprintf("product %q not available in catalog", req.ProductKey))
	}

	if req.Family == "" || req.ThicknessMM == 0 {
		return catalog.Product{}, apperr.Validation(
			"either product_key or family plus thickness_mm is required")
	}

	p, ok, err := view.Products.FindByFamilyAndThickness(req.Family, req.ThicknessMM)
	if err != nil {
		return catalog.Product{}, err
	}
	if !ok {
		return catalog.Product{}, apperr.NotFound(fmt.Sprintf(
			"no %s panel with thickness %g mm available in catalog", req.Family, req.ThicknessMM))
	}
	return p, nil
}

// resolveRole looks up the catalog's query for a material role and resolves
// it. A missing role mapping or an unresolvable query is a pricing failure:
// the quotation must report "not available in catalog" instead of inventing
// a price or dropping the line.
func (a *Assembler) resolveRole(
	resolver *AccessoryResolver,
	rules catalog.BusinessRules,
	role catalog.MaterialRole,
	family catalog.Family,
) (AccessoryMatch, error) {
	query, ok := rules.AccessoryRoles[role]
	if !ok {
		return AccessoryMatch{}, apperr.Pricing(fmt.Sprintf(
			"catalog declares no accessory for %s; price not available", role))
	}

	match, err := resolver.Resolve(query, family)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return AccessoryMatch{}, apperr.Pricing(fmt.Sprintf(
				"price for %s (%q) not available in catalog", role, query))
		}
		return AccessoryMatch{}, err
	}
	return match, nil
}
