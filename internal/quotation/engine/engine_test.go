package engine

import (
	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/catalog/index"
)

// testSnapshot mirrors the repository test fixture: three panel products,
// a full accessory set, and the business rules the engine depends on.
func testSnapshot() *catalog.CatalogSnapshot {
	return &catalog.CatalogSnapshot{
		Version:     "abc123def456-20260101T000000Z",
		Fingerprint: "abc123def456",
		Products: []catalog.Product{
			{
				Key:          "trapezoidal-30",
				SKU:          "TRP-30",
				Name:         "Panel Trapezoidal 30mm",
				Family:       "trapezoidal",
				ThicknessMM:  30,
				UsableWidthM: 1.0,
				PricePerM2:   1850,
				Currency:     "USD",
				Fixations:    []catalog.FixationType{catalog.FixationConcrete, catalog.FixationMetal},
				LoadTable: []catalog.LoadTableEntry{
					{ThicknessMM: 30, MaxSpanM: 2.8},
					{ThicknessMM: 50, MaxSpanM: 4.5},
				},
			},
			{
				Key:          "trapezoidal-50",
				SKU:          "TRP-50",
				Name:         "Panel Trapezoidal 50mm",
				Family:       "trapezoidal",
				ThicknessMM:  50,
				UsableWidthM: 1.0,
				PricePerM2:   2490,
				Currency:     "USD",
				Fixations:    []catalog.FixationType{catalog.FixationConcrete, catalog.FixationMetal, catalog.FixationWood},
				LoadTable: []catalog.LoadTableEntry{
					{ThicknessMM: 30, MaxSpanM: 2.8},
					{ThicknessMM: 50, MaxSpanM: 4.5},
				},
			},
			{
				Key:          "sandwich-40",
				SKU:          "SND-40",
				Name:         "Panel Sándwich 40mm",
				Family:       "sandwich",
				ThicknessMM:  40,
				UsableWidthM: 1.2,
				PricePerM2:   3100,
				Currency:     "USD",
				Fixations:    []catalog.FixationType{catalog.FixationMetal, catalog.FixationWood},
				LoadTable: []catalog.LoadTableEntry{
					{ThicknessMM: 40, MaxSpanM: 3.5},
				},
			},
		},
		Accessories: []catalog.Accessory{
			{SKU: "GOT-3M", Name: "Goterón lateral 3 m", Category: catalog.CategoryEdgeTrim,
				UnitPrice: 2077, Unit: catalog.PerPiece, PieceLengthM: 3,
				Families: []catalog.Family{"trapezoidal", "sandwich"}},
			{SKU: "OMEGA-PRF", Name: "Perfil Ómega galvanizado", Category: catalog.CategoryStructural,
				UnitPrice: 840, Unit: catalog.PerLinearMeter, PieceLengthM: 6},
			{SKU: "VAR-38", Name: "Varilla roscada 3/8", Category: catalog.CategoryFastener,
				UnitPrice: 195, Unit: catalog.PerPiece},
			{SKU: "TUE-38", Name: "Tuerca 3/8", Category: catalog.CategoryFastener,
				UnitPrice: 12, Unit: catalog.PerPiece},
			{SKU: "ANC-38", Name: "Anclaje expansivo 3/8", Category: catalog.CategoryFastener,
				UnitPrice: 85, Unit: catalog.PerPiece},
			{SKU: "TOR-AUTO", Name: "Tornillo autoperforante", Category: catalog.CategoryFastener,
				UnitPrice: 18, Unit: catalog.PerPiece},
			{SKU: "SEL-BUT", Name: "Cinta de sellado butílica", Category: catalog.CategorySealant,
				UnitPrice: 630, Unit: catalog.PerPiece},
		},
		Formulas: catalog.Formulas{
			PointsPerPanelSupport: 2,
			EdgeScrewSpacingM:     0.5,
			TrimCoverageM:         3.0,
			SealantCoverageM:      6.0,
		},
		Rules: catalog.BusinessRules{
			TaxRateBps:   2200,
			Currency:     "USD",
			RoundingMode: "half_up",
			StandardFixation: map[catalog.Family]catalog.FixationType{
				"trapezoidal": catalog.FixationMetal,
				"sandwich":    catalog.FixationWood,
			},
			AccessoryRoles: map[catalog.MaterialRole]string{
				catalog.RoleStructuralProfile: "OMEGA-PRF",
				catalog.RoleEdgeTrim:          "goteron",
				catalog.RoleThreadedRod:       "varilla",
				catalog.RoleNut:               "tuerca",
				catalog.RoleAnchor:            "anclaje",
				catalog.RoleSelfTappingScrew:  "autoperforante",
				catalog.RoleSealant:           "sellado",
			},
		},
	}
}

func testView() *index.View {
	return index.NewView(testSnapshot())
}

func testViewFor(snap *catalog.CatalogSnapshot) *index.View {
	return index.NewView(snap)
}
