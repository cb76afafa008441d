package engine

import (
	"math"
	"testing"

	"panelbom_backend/platform/apperr"
)

func TestValidateFeasibleSpan(t *testing.T) {
	snap := testSnapshot()
	validator := NewSpanValidator(snap)
	product := snap.Products[0] // trapezoidal-30, max span 2.8

	for _, span := range []float64{0.5, 2.5, 2.8} {
		plan, err := validator.Validate(product, span)
		if err != nil {
			t.Fatalf("Validate(%g) failed: %v", span, err)
		}
		if !plan.Feasible {
			t.Fatalf("expected span %g to be feasible", span)
		}
		if plan.IntermediateSupports != 0 || plan.RecommendedSpacingM != 0 {
			t.Fatalf("feasible span %g must not recommend supports, got %+v", span, plan)
		}
		if plan.EffectiveSpanM != span {
			t.Fatalf("expected effective span %g, got %g", span, plan.EffectiveSpanM)
		}
	}
}

func TestValidateInfeasibleSpanDistributesSupportsEvenly(t *testing.T) {
	snap := testSnapshot()
	validator := NewSpanValidator(snap)
	product := snap.Products[1] // trapezoidal-50, max span 4.5

	plan, err := validator.Validate(product, 6.0)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if plan.Feasible {
		t.Fatal("expected span 6.0 over max 4.5 to be infeasible")
	}
	// One support splitting the span into two 3 m segments, not one full
	// 4.5 m segment plus a 1.5 m leftover.
	if plan.IntermediateSupports != 1 {
		t.Fatalf("expected 1 intermediate support, got %d", plan.IntermediateSupports)
	}
	if math.Abs(plan.RecommendedSpacingM-3.0) > 1e-9 {
		t.Fatalf("expected 3.0 m spacing, got %g", plan.RecommendedSpacingM)
	}
}

func TestValidateSpacingNeverExceedsMaxSpan(t *testing.T) {
	snap := testSnapshot()
	validator := NewSpanValidator(snap)
	product := snap.Products[0] // max span 2.8

	for span := 2.9; span < 15; span += 0.7 {
		plan, err := validator.Validate(product, span)
		if err != nil {
			t.Fatalf("Validate(%g) failed: %v", span, err)
		}
		if plan.Feasible {
			t.Fatalf("expected span %g to be infeasible", span)
		}
		if plan.RecommendedSpacingM > plan.MaxUnsupportedSpanM+1e-9 {
			t.Fatalf("spacing %g exceeds max span %g", plan.RecommendedSpacingM, plan.MaxUnsupportedSpanM)
		}
		// Minimal support count: one segment fewer would overrun the table.
		segments := plan.IntermediateSupports + 1
		if segments > 1 && span/float64(segments-1) <= plan.MaxUnsupportedSpanM {
			t.Fatalf("support count %d is not minimal for span %g", plan.IntermediateSupports, span)
		}
	}
}

func TestValidateSuggestsNextThickerProduct(t *testing.T) {
	snap := testSnapshot()
	validator := NewSpanValidator(snap)
	product := snap.Products[0] // trapezoidal-30, max 2.8

	plan, err := validator.Validate(product, 4.0)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if plan.Feasible {
		t.Fatal("expected span 4.0 to be infeasible")
	}
	// trapezoidal-50 carries 4.5 m unsupported, so it should be suggested.
	if plan.SuggestedProductKey != "trapezoidal-50" {
		t.Fatalf("expected trapezoidal-50 suggestion, got %q", plan.SuggestedProductKey)
	}

	// Nothing in the family carries 6 m, so no suggestion.
	plan, err = validator.Validate(product, 6.0)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if plan.SuggestedProductKey != "" {
		t.Fatalf("expected no suggestion for span 6.0, got %q", plan.SuggestedProductKey)
	}
}

func TestValidateRejectsNonPositiveSpan(t *testing.T) {
	snap := testSnapshot()
	validator := NewSpanValidator(snap)

	if _, err := validator.Validate(snap.Products[0], 0); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected KindValidation for zero span, got %v", err)
	}
	if _, err := validator.Validate(snap.Products[0], -2); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected KindValidation for negative span, got %v", err)
	}
}
