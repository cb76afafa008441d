package index

import (
	"testing"

	"panelbom_backend/internal/catalog/domain"
	"panelbom_backend/platform/apperr"
)

func testSnapshot() *domain.CatalogSnapshot {
	return &domain.CatalogSnapshot{
		Products: []domain.Product{
			{
				Key:         "trapezoidal-30",
				SKU:         "TRP-30",
				Name:        "Panel Trapezoidal 30mm",
				Family:      "trapezoidal",
				ThicknessMM: 30,
			},
			{
				Key:         "sandwich-40",
				SKU:         "SND-40",
				Name:        "Panel Sándwich 40mm",
				Family:      "sandwich",
				ThicknessMM: 40,
			},
		},
		Accessories: []domain.Accessory{
			{
				SKU:      "GOT-3M",
				Name:     "Goterón lateral 3 m",
				Category: domain.CategoryEdgeTrim,
				Families: []domain.Family{"trapezoidal"},
			},
			{
				SKU:      "OMEGA-PRF",
				Name:     "Perfil Ómega galvanizado",
				Category: domain.CategoryStructural,
			},
		},
	}
}

func TestProductLookupsFoldAccentsAndCase(t *testing.T) {
	ix := BuildProductIndex(testSnapshot())

	if _, ok := ix.FindByKey("TRAPEZOIDAL-30"); !ok {
		t.Fatal("expected case-insensitive key lookup to hit")
	}
	if _, ok := ix.FindBySKU("trp-30"); !ok {
		t.Fatal("expected case-insensitive SKU lookup to hit")
	}

	// "Sándwich" must resolve without the accent and in any case.
	p, ok := ix.FindByName("panel sandwich 40MM")
	if !ok {
		t.Fatal("expected accent-insensitive name lookup to hit")
	}
	if p.Key != "sandwich-40" {
		t.Fatalf("expected sandwich-40, got %s", p.Key)
	}

	if _, ok := ix.FindByKey("trapezoidal-99"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestFindByFamilyAndThickness(t *testing.T) {
	ix := BuildProductIndex(testSnapshot())

	p, ok, err := ix.FindByFamilyAndThickness("trapezoidal", 30)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if p.Key != "trapezoidal-30" {
		t.Fatalf("expected trapezoidal-30, got %s", p.Key)
	}

	// Unknown thickness is an ordinary miss, not an error.
	if _, ok, err := ix.FindByFamilyAndThickness("trapezoidal", 60); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	// Negative thickness is malformed input.
	if _, _, err := ix.FindByFamilyAndThickness("trapezoidal", -30); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected KindValidation for negative thickness, got %v", err)
	}
}

func TestAccessoryLookups(t *testing.T) {
	ix := BuildAccessoryIndex(testSnapshot())

	if _, ok := ix.FindBySKU("got-3m"); !ok {
		t.Fatal("expected case-insensitive SKU lookup to hit")
	}
	if _, ok := ix.FindByName("goteron lateral 3 m"); !ok {
		t.Fatal("expected accent-insensitive name lookup to hit")
	}
}

func TestFindByKeywordHonorsFamilyCompatibility(t *testing.T) {
	ix := BuildAccessoryIndex(testSnapshot())

	// "omega" matches "Ómega" after folding; no family restriction declared.
	a, ok := ix.FindByKeyword("omega", "sandwich")
	if !ok {
		t.Fatal("expected keyword match for omega")
	}
	if a.SKU != "OMEGA-PRF" {
		t.Fatalf("expected OMEGA-PRF, got %s", a.SKU)
	}

	// The trim is restricted to trapezoidal; a sandwich query must miss.
	if _, ok := ix.FindByKeyword("goteron", "sandwich"); ok {
		t.Fatal("expected family-incompatible keyword lookup to miss")
	}
	if _, ok := ix.FindByKeyword("goteron", "trapezoidal"); !ok {
		t.Fatal("expected family-compatible keyword lookup to hit")
	}

	if _, ok := ix.FindByKeyword("", "trapezoidal"); ok {
		t.Fatal("expected empty keyword to miss")
	}
}
