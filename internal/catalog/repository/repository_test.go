package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"panelbom_backend/internal/catalog/source"
	"panelbom_backend/platform/apperr"
	"panelbom_backend/platform/logger"
)

func testRepo(t *testing.T, path string) *Repository {
	t.Helper()
	return New(source.NewFileSource(path), logger.New("development"))
}

func TestLoadBuildsSnapshot(t *testing.T) {
	repo := testRepo(t, "testdata/catalog.yaml")

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(snap.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(snap.Products))
	}
	if len(snap.Accessories) != 7 {
		t.Fatalf("expected 7 accessories, got %d", len(snap.Accessories))
	}
	if snap.Rules.TaxRateBps != 2200 {
		t.Fatalf("expected tax 2200 bps, got %d", snap.Rules.TaxRateBps)
	}
	if snap.Fingerprint == "" || snap.Version == "" {
		t.Fatal("expected fingerprint and version to be set")
	}

	product := snap.Products[0]
	if product.PricePerM2 != 1850 {
		t.Fatalf("expected 1850 cents per m2, got %d", product.PricePerM2)
	}
	maxSpan, ok := product.MaxUnsupportedSpan()
	if !ok || maxSpan != 2.8 {
		t.Fatalf("expected own-thickness span 2.8, got %v (ok=%v)", maxSpan, ok)
	}
}

func TestRefreshUnchangedReturnsCachedSnapshot(t *testing.T) {
	repo := testRepo(t, "testdata/catalog.yaml")

	first, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	second, changed, err := repo.RefreshIfChanged(context.Background())
	if err != nil {
		t.Fatalf("RefreshIfChanged failed: %v", err)
	}
	if changed {
		t.Fatal("expected unchanged source to report changed=false")
	}
	if first != second {
		t.Fatal("expected the cached snapshot pointer to be reused")
	}
}

func TestRefreshChangedSwapsSnapshot(t *testing.T) {
	data, err := os.ReadFile("testdata/catalog.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture copy: %v", err)
	}

	repo := testRepo(t, path)
	first, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Append a trailing comment so the fingerprint changes but parsing does not.
	if err := os.WriteFile(path, append(data, []byte("\n# rev 2\n")...), 0o644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}

	second, changed, err := repo.RefreshIfChanged(context.Background())
	if err != nil {
		t.Fatalf("RefreshIfChanged failed: %v", err)
	}
	if !changed {
		t.Fatal("expected changed source to report changed=true")
	}
	if first == second || first.Fingerprint == second.Fingerprint {
		t.Fatal("expected a new snapshot with a new fingerprint")
	}

	current, err := repo.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current != second {
		t.Fatal("expected Current to return the swapped snapshot")
	}
}

func TestLoadMissingSourceFails(t *testing.T) {
	repo := testRepo(t, "testdata/does-not-exist.yaml")

	if _, err := repo.Load(context.Background()); !apperr.Is(err, apperr.KindCatalogLoad) {
		t.Fatalf("expected KindCatalogLoad, got %v", err)
	}
}

func TestLoadMalformedCatalogFails(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing products", "formulas:\n  points_per_panel_support: 2\n  edge_screw_spacing_m: 0.5\n  trim_coverage_m: 3\n  sealant_coverage_m: 6\nbusiness_rules:\n  tax_rate_bps: 2100\n"},
		{"missing formulas", "products:\n  - key: p\n    name: P\n    family: f\n    thickness_mm: 30\n    usable_width_m: 1\n    price_per_m2: \"10.00\"\n    fixations: [metal]\n    load_table:\n      - { thickness_mm: 30, max_span_m: 2 }\nbusiness_rules:\n  tax_rate_bps: 2100\n"},
		{"per-meter accessory without piece length", "products:\n  - key: p\n    name: P\n    family: f\n    thickness_mm: 30\n    usable_width_m: 1\n    price_per_m2: \"10.00\"\n    fixations: [metal]\n    load_table:\n      - { thickness_mm: 30, max_span_m: 2 }\naccessories:\n  - sku: A\n    name: Perfil\n    category: structural_profile\n    unit_price: \"5.00\"\n    pricing_unit: per_linear_meter\nformulas:\n  points_per_panel_support: 2\n  edge_screw_spacing_m: 0.5\n  trim_coverage_m: 3\n  sealant_coverage_m: 6\nbusiness_rules:\n  tax_rate_bps: 2100\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			repo := testRepo(t, path)
			if _, err := repo.Load(context.Background()); !apperr.Is(err, apperr.KindCatalogLoad) {
				t.Fatalf("expected KindCatalogLoad, got %v", err)
			}
		})
	}
}

func TestCurrentBeforeLoadFails(t *testing.T) {
	repo := testRepo(t, "testdata/catalog.yaml")

	if _, err := repo.Current(); !apperr.Is(err, apperr.KindCatalogLoad) {
		t.Fatalf("expected KindCatalogLoad before first load, got %v", err)
	}
}
