package engine

import (
	"testing"

	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/platform/apperr"
	"panelbom_backend/platform/money"
)

func TestPriceLineItemPerPieceIgnoresDimensions(t *testing.T) {
	pricing := NewPricingEngine()

	// Fixed-length trim at $20.77 per piece, quantity 8: $166.16, never the
	// $498.48 that multiplying by the 3 m length would produce.
	bare, err := pricing.PriceLineItem(8, 2077, catalog.PerPiece, Dimensions{})
	if err != nil {
		t.Fatalf("PriceLineItem failed: %v", err)
	}
	withDims, err := pricing.PriceLineItem(8, 2077, catalog.PerPiece, Dimensions{UnitLengthM: 3, TotalAreaM2: 60})
	if err != nil {
		t.Fatalf("PriceLineItem failed: %v", err)
	}

	if bare != 16616 {
		t.Fatalf("expected 16616 cents, got %d", bare)
	}
	if bare != withDims {
		t.Fatalf("per-piece price must ignore dimensions: %d vs %d", bare, withDims)
	}
}

func TestPriceLineItemPerLinearMeter(t *testing.T) {
	pricing := NewPricingEngine()

	// 7 pieces of 6 m profile at $8.40/m.
	got, err := pricing.PriceLineItem(7, 840, catalog.PerLinearMeter, Dimensions{UnitLengthM: 6})
	if err != nil {
		t.Fatalf("PriceLineItem failed: %v", err)
	}
	if got != 35280 {
		t.Fatalf("expected 35280 cents, got %d", got)
	}

	if _, err := pricing.PriceLineItem(7, 840, catalog.PerLinearMeter, Dimensions{}); !apperr.Is(err, apperr.KindPricing) {
		t.Fatalf("expected KindPricing without a unit length, got %v", err)
	}
}

func TestPriceLineItemPerArea(t *testing.T) {
	pricing := NewPricingEngine()

	got, err := pricing.PriceLineItem(10, 1850, catalog.PerArea, Dimensions{TotalAreaM2: 60})
	if err != nil {
		t.Fatalf("PriceLineItem failed: %v", err)
	}
	if got != 111000 {
		t.Fatalf("expected 111000 cents, got %d", got)
	}
}

func TestPriceLineItemMissingPriceFails(t *testing.T) {
	pricing := NewPricingEngine()

	if _, err := pricing.PriceLineItem(3, 0, catalog.PerPiece, Dimensions{}); !apperr.Is(err, apperr.KindPricing) {
		t.Fatalf("expected KindPricing for missing unit price, got %v", err)
	}
	if _, err := pricing.PriceLineItem(3, 100, "per_fortnight", Dimensions{}); !apperr.Is(err, apperr.KindPricing) {
		t.Fatalf("expected KindPricing for unknown unit, got %v", err)
	}
}

func TestComputeTotalsTaxOnly(t *testing.T) {
	pricing := NewPricingEngine()
	items := []domain.LineItem{{Description: "panels", ExtendedPrice: 10000}}

	totals, err := pricing.ComputeTotals(items, 2200, 0)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	if totals.Subtotal != 10000 || totals.Discount != 0 || totals.Tax != 2200 || totals.Total != 12200 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestComputeTotalsDiscountBeforeTax(t *testing.T) {
	pricing := NewPricingEngine()
	items := []domain.LineItem{{Description: "panels", ExtendedPrice: 10000}}

	totals, err := pricing.ComputeTotals(items, 2200, 10)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}
	// Discount on the subtotal, tax on the post-discount base.
	if totals.Discount != 1000 {
		t.Fatalf("expected 1000 cents discount, got %d", totals.Discount)
	}
	if totals.Tax != 1980 {
		t.Fatalf("expected tax on 9000 cents (1980), got %d", totals.Tax)
	}
	if totals.Total != 10980 {
		t.Fatalf("expected 10980 cents total, got %d", totals.Total)
	}
}

func TestComputeTotalsRoundTrip(t *testing.T) {
	pricing := NewPricingEngine()
	items := []domain.LineItem{
		{Description: "a", ExtendedPrice: 11137},
		{Description: "b", ExtendedPrice: 499},
		{Description: "c", ExtendedPrice: 70003},
	}

	totals, err := pricing.ComputeTotals(items, 2200, 7.5)
	if err != nil {
		t.Fatalf("ComputeTotals failed: %v", err)
	}

	var sum money.Cents
	for _, item := range items {
		sum += item.ExtendedPrice
	}
	if totals.Subtotal != sum {
		t.Fatalf("subtotal %d does not match line sum %d", totals.Subtotal, sum)
	}
	if totals.Total != totals.Subtotal-totals.Discount+totals.Tax {
		t.Fatalf("total %d is not subtotal - discount + tax", totals.Total)
	}
}

func TestComputeTotalsRejectsBadDiscount(t *testing.T) {
	pricing := NewPricingEngine()

	for _, discount := range []float64{-1, 101} {
		if _, err := pricing.ComputeTotals(nil, 2200, discount); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("expected KindValidation for discount %g, got %v", discount, err)
		}
	}
}
