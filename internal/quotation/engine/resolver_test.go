package engine

import (
	"testing"

	"panelbom_backend/platform/apperr"
)

func TestResolveStrategyOrder(t *testing.T) {
	resolver := NewAccessoryResolver(testView().Accessories)

	cases := []struct {
		query    string
		strategy string
		sku      string
	}{
		{"Goterón lateral 3 m", "name", "GOT-3M"},
		{"goteron lateral 3 m", "name", "GOT-3M"}, // accent/case folded
		{"OMEGA-PRF", "sku", "OMEGA-PRF"},
		{"var-38", "sku", "VAR-38"},
		{"varilla", "keyword", "VAR-38"},
		{"tuerca", "keyword", "TUE-38"},
	}

	for _, tc := range cases {
		match, err := resolver.Resolve(tc.query, "trapezoidal")
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", tc.query, err)
		}
		if match.Strategy != tc.strategy {
			t.Fatalf("Resolve(%q): expected %s strategy, got %s", tc.query, tc.strategy, match.Strategy)
		}
		if match.Accessory.SKU != tc.sku {
			t.Fatalf("Resolve(%q): expected %s, got %s", tc.query, tc.sku, match.Accessory.SKU)
		}
	}
}

func TestResolveKeywordHonorsFamily(t *testing.T) {
	resolver := NewAccessoryResolver(testView().Accessories)

	// The trim is restricted to trapezoidal and sandwich families.
	if _, err := resolver.Resolve("goteron", "corrugated"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound for incompatible family, got %v", err)
	}
	if _, err := resolver.Resolve("goteron", "sandwich"); err != nil {
		t.Fatalf("expected sandwich family to resolve the trim, got %v", err)
	}
}

func TestResolveMissReturnsTypedNotFound(t *testing.T) {
	resolver := NewAccessoryResolver(testView().Accessories)

	_, err := resolver.Resolve("membrana asfaltica", "trapezoidal")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}

	if _, err := resolver.Resolve("  ", "trapezoidal"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected KindValidation for empty query, got %v", err)
	}
}
