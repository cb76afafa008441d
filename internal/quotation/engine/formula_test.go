package engine

import (
	"testing"

	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/platform/apperr"
)

func TestPanelCountFromWidth(t *testing.T) {
	snap := testSnapshot()
	formulas := NewFormulaEngine(snap.Formulas)

	cases := []struct {
		name    string
		product catalog.Product
		widthM  float64
		want    int
	}{
		{"exact fit", snap.Products[0], 10.0, 10},      // usable 1.0 m
		{"rounds up", snap.Products[2], 10.0, 9},       // usable 1.2 m, ceil(10/1.2)
		{"single panel", snap.Products[0], 0.4, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formulas.PanelCount(tc.product, domain.QuotationRequest{WidthM: tc.widthM})
			if err != nil {
				t.Fatalf("PanelCount failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d panels, got %d", tc.want, got)
			}
		})
	}
}

func TestPanelCountFromExplicitQuantity(t *testing.T) {
	snap := testSnapshot()
	formulas := NewFormulaEngine(snap.Formulas)

	got, err := formulas.PanelCount(snap.Products[0], domain.QuotationRequest{Quantity: 7})
	if err != nil {
		t.Fatalf("PanelCount failed: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7 panels, got %d", got)
	}

	if _, err := formulas.PanelCount(snap.Products[0], domain.QuotationRequest{}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected KindValidation without width or quantity, got %v", err)
	}
}

func TestComputeBillOfMaterialsConcrete(t *testing.T) {
	snap := testSnapshot()
	formulas := NewFormulaEngine(snap.Formulas)

	req := domain.QuotationRequest{LengthM: 6, WidthM: 10, SpanM: 2.5}
	span := domain.SpanPlan{Feasible: true, EffectiveSpanM: 2.5}

	bill, err := formulas.ComputeBillOfMaterials(snap.Products[0], req, span, catalog.FixationConcrete)
	if err != nil {
		t.Fatalf("ComputeBillOfMaterials failed: %v", err)
	}

	if bill.PanelCount != 10 {
		t.Fatalf("expected 10 panels, got %d", bill.PanelCount)
	}
	if bill.SupportCount != 4 { // ceil(6/2.5)+1
		t.Fatalf("expected 4 supports, got %d", bill.SupportCount)
	}
	// 10 panels x 4 supports x 2 points + 6 m x 2 edges / 0.5 m spacing
	if bill.FixationPoints != 104 {
		t.Fatalf("expected 104 fixation points, got %d", bill.FixationPoints)
	}

	want := map[catalog.MaterialRole]int{
		catalog.RoleEdgeTrim:    4,   // ceil(12 / 3.0)
		catalog.RoleThreadedRod: 104,
		catalog.RoleNut:         104,
		catalog.RoleAnchor:      104,
		catalog.RoleSealant:     9, // ceil(9 joints x 6 m / 6.0)
	}
	got := make(map[catalog.MaterialRole]int, len(bill.Lines))
	for _, line := range bill.Lines {
		got[line.Role] = line.Quantity
	}
	for role, quantity := range want {
		if got[role] != quantity {
			t.Fatalf("expected %d %s, got %d", quantity, role, got[role])
		}
	}

	// Structural profile carries required meters; pieces depend on the
	// resolved accessory.
	for _, line := range bill.Lines {
		if line.Role == catalog.RoleStructuralProfile {
			if line.RequiredM != 40 { // 4 supports x 10 m width
				t.Fatalf("expected 40 m of profile, got %g", line.RequiredM)
			}
			return
		}
	}
	t.Fatal("expected a structural profile line")
}

func TestFastenerSetsPerFixationType(t *testing.T) {
	snap := testSnapshot()
	formulas := NewFormulaEngine(snap.Formulas)

	req := domain.QuotationRequest{LengthM: 6, WidthM: 10, SpanM: 2.5}
	span := domain.SpanPlan{Feasible: true, EffectiveSpanM: 2.5}

	quantities := func(fixation catalog.FixationType) map[catalog.MaterialRole]int {
		t.Helper()
		bill, err := formulas.ComputeBillOfMaterials(snap.Products[1], req, span, fixation)
		if err != nil {
			t.Fatalf("ComputeBillOfMaterials(%s) failed: %v", fixation, err)
		}
		got := make(map[catalog.MaterialRole]int, len(bill.Lines))
		for _, line := range bill.Lines {
			got[line.Role] = line.Quantity
		}
		return got
	}

	concrete := quantities(catalog.FixationConcrete)
	if concrete[catalog.RoleThreadedRod] != 104 || concrete[catalog.RoleNut] != 104 || concrete[catalog.RoleAnchor] != 104 {
		t.Fatalf("concrete set wrong: %v", concrete)
	}

	metal := quantities(catalog.FixationMetal)
	if metal[catalog.RoleThreadedRod] != 104 || metal[catalog.RoleNut] != 208 {
		t.Fatalf("metal set wrong: %v", metal)
	}
	if _, ok := metal[catalog.RoleAnchor]; ok {
		t.Fatal("metal fixation must not need anchors")
	}

	wood := quantities(catalog.FixationWood)
	if wood[catalog.RoleSelfTappingScrew] != 104 {
		t.Fatalf("wood set wrong: %v", wood)
	}
	for _, role := range []catalog.MaterialRole{catalog.RoleThreadedRod, catalog.RoleNut, catalog.RoleAnchor} {
		if _, ok := wood[role]; ok {
			t.Fatalf("wood fixation must not need %s", role)
		}
	}
}

func TestQuantitiesMonotonicInProjectSize(t *testing.T) {
	snap := testSnapshot()
	formulas := NewFormulaEngine(snap.Formulas)
	span := domain.SpanPlan{Feasible: true, EffectiveSpanM: 2.5}

	prev := Bill{}
	for _, size := range []float64{4, 6, 8, 12, 20} {
		req := domain.QuotationRequest{LengthM: size, WidthM: size, SpanM: 2.5}
		bill, err := formulas.ComputeBillOfMaterials(snap.Products[0], req, span, catalog.FixationMetal)
		if err != nil {
			t.Fatalf("ComputeBillOfMaterials failed: %v", err)
		}

		if bill.PanelCount < prev.PanelCount || bill.SupportCount < prev.SupportCount ||
			bill.FixationPoints < prev.FixationPoints {
			t.Fatalf("quantities decreased when project grew to %g m", size)
		}
		for _, line := range bill.Lines {
			if line.Quantity < 0 {
				t.Fatalf("negative quantity for %s", line.Role)
			}
		}
		prev = bill
	}
}

func TestPiecesRoundsUpToWholeUnits(t *testing.T) {
	formulas := NewFormulaEngine(testSnapshot().Formulas)

	fixedLength := catalog.Accessory{PieceLengthM: 6}
	if got := formulas.Pieces(40, fixedLength); got != 7 {
		t.Fatalf("expected 7 pieces for 40 m in 6 m lengths, got %d", got)
	}
	if got := formulas.Pieces(36, fixedLength); got != 6 {
		t.Fatalf("expected 6 pieces for an exact fit, got %d", got)
	}

	byMeter := catalog.Accessory{}
	if got := formulas.Pieces(7.2, byMeter); got != 8 {
		t.Fatalf("expected 8 whole meters, got %d", got)
	}
	if got := formulas.Pieces(0, fixedLength); got != 0 {
		t.Fatalf("expected 0 pieces for no length, got %d", got)
	}
}
