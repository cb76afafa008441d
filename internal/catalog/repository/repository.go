// Package repository loads and caches the catalog snapshot.
//
// A load fetches the source document, fingerprints it, and parses it into an
// immutable domain.CatalogSnapshot. Refreshes that see an unchanged
// fingerprint return the cached snapshot without re-parsing; a changed
// fingerprint builds a new snapshot and swaps a single atomic reference, so
// in-flight quotation requests keep the snapshot they started with.
package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/catalog/source"
	"panelbom_backend/platform/apperr"
	"panelbom_backend/platform/logger"
	"panelbom_backend/platform/money"
)

// Repository loads catalog snapshots from a source and caches the latest.
type Repository struct {
	src     source.Source
	log     *logger.Logger
	current atomic.Pointer[domain.CatalogSnapshot]
	group   singleflight.Group
}

// New creates a catalog repository over the given source.
func New(src source.Source, log *logger.Logger) *Repository {
	return &Repository{src: src, log: log}
}

// Current returns the latest loaded snapshot. It fails when no load has
// succeeded yet; callers must treat that as the catalog being unavailable.
func (r *Repository) Current() (*domain.CatalogSnapshot, error) {
	snap := r.current.Load()
	if snap == nil {
		return nil, apperr.CatalogLoad("catalog not loaded", nil)
	}
	return snap, nil
}

// Load fetches, fingerprints, and parses the catalog source. When the
// fingerprint matches the cached snapshot the cached one is returned
// without re-parsing.
func (r *Repository) Load(ctx context.Context) (*domain.CatalogSnapshot, error) {
	snap, _, err := r.RefreshIfChanged(ctx)
	return snap, err
}

// RefreshIfChanged re-fingerprints the source and reloads only on change.
// Concurrent refreshes are collapsed into a single fetch+parse.
func (r *Repository) RefreshIfChanged(ctx context.Context) (*domain.CatalogSnapshot, bool, error) {
	type refreshResult struct {
		snap    *domain.CatalogSnapshot
		changed bool
	}

	v, err, _ := r.group.Do("refresh", func() (interface{}, error) {
		data, err := r.src.Fetch(ctx)
		if err != nil {
			return nil, apperr.CatalogLoad(
				fmt.Sprintf("catalog source %s unavailable", r.src.Describe()), err)
		}

		sum := sha256.Sum256(data)
		fingerprint := hex.EncodeToString(sum[:])

		if cached := r.current.Load(); cached != nil && cached.Fingerprint == fingerprint {
			return refreshResult{snap: cached, changed: false}, nil
		}

		snap, err := r.parse(data, fingerprint)
		if err != nil {
			return nil, err
		}

		r.current.Store(snap)
		r.log.CatalogRefresh(snap.Version, true, len(snap.Products), len(snap.Accessories))
		return refreshResult{snap: snap, changed: true}, nil
	})
	if err != nil {
		return nil, false, err
	}

	result := v.(refreshResult)
	return result.snap, result.changed, nil
}

// lengthInName flags accessory names that advertise a fixed length, e.g.
// "Goterón 3 m" or "perfil x 3m". Combined with a per-meter pricing unit this
// is the known catalog-authoring ambiguity; it is reported, never corrected.
var lengthInName = regexp.MustCompile(`(?i)(\d+([.,]\d+)?)\s*m\b`)

func (r *Repository) parse(data []byte, fingerprint string) (*domain.CatalogSnapshot, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.CatalogLoad("catalog document is not valid YAML", err)
	}

	if len(doc.Products) == 0 {
		return nil, apperr.CatalogLoad("catalog is missing the products section", nil)
	}
	if doc.Formulas == nil {
		return nil, apperr.CatalogLoad("catalog is missing the formulas section", nil)
	}
	if doc.BusinessRules == nil {
		return nil, apperr.CatalogLoad("catalog is missing the business_rules section", nil)
	}

	loadedAt := time.Now().UTC()
	snap := &domain.CatalogSnapshot{
		Fingerprint: fingerprint,
		Version:     fingerprint[:12] + "-" + loadedAt.Format("20060102T150405Z"),
		LoadedAt:    loadedAt,
	}

	seenKeys := make(map[string]struct{}, len(doc.Products))
	for i, p := range doc.Products {
		product, err := buildProduct(p)
		if err != nil {
			return nil, apperr.CatalogLoad(fmt.Sprintf("products[%d] (%s): %v", i, p.Key, err), nil)
		}
		if _, dup := seenKeys[product.Key]; dup {
			return nil, apperr.CatalogLoad(fmt.Sprintf("duplicate product key %q", product.Key), nil)
		}
		seenKeys[product.Key] = struct{}{}
		snap.Products = append(snap.Products, product)
	}

	seenSKUs := make(map[string]struct{}, len(doc.Accessories))
	for i, a := range doc.Accessories {
		accessory, err := buildAccessory(a)
		if err != nil {
			return nil, apperr.CatalogLoad(fmt.Sprintf("accessories[%d] (%s): %v", i, a.SKU, err), nil)
		}
		if _, dup := seenSKUs[accessory.SKU]; dup {
			return nil, apperr.CatalogLoad(fmt.Sprintf("duplicate accessory sku %q", accessory.SKU), nil)
		}
		seenSKUs[accessory.SKU] = struct{}{}

		if accessory.Unit == domain.PerLinearMeter && lengthInName.MatchString(accessory.Name) {
			r.log.CatalogWarning(accessory.SKU,
				"name declares a fixed length but pricing_unit is per_linear_meter")
		}

		snap.Accessories = append(snap.Accessories, accessory)
	}

	formulas, err := buildFormulas(*doc.Formulas)
	if err != nil {
		return nil, apperr.CatalogLoad("formulas: "+err.Error(), nil)
	}
	snap.Formulas = formulas

	rules, err := buildBusinessRules(*doc.BusinessRules)
	if err != nil {
		return nil, apperr.CatalogLoad("business_rules: "+err.Error(), nil)
	}
	snap.Rules = rules

	return snap, nil
}

func buildProduct(doc productDoc) (domain.Product, error) {
	if strings.TrimSpace(doc.Key) == "" {
		return domain.Product{}, fmt.Errorf("key is required")
	}
	if strings.TrimSpace(doc.Name) == "" {
		return domain.Product{}, fmt.Errorf("name is required")
	}
	if doc.ThicknessMM <= 0 {
		return domain.Product{}, fmt.Errorf("thickness_mm must be positive")
	}
	if doc.UsableWidthM <= 0 {
		return domain.Product{}, fmt.Errorf("usable_width_m must be positive")
	}
	if len(doc.LoadTable) == 0 {
		return domain.Product{}, fmt.Errorf("load_table is required")
	}

	price, err := money.ParseCents(doc.PricePerM2)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price_per_m2: %v", err)
	}
	if price <= 0 {
		return domain.Product{}, fmt.Errorf("price_per_m2 must be positive")
	}

	fixations := make([]domain.FixationType, 0, len(doc.Fixations))
	for _, f := range doc.Fixations {
		fixation, err := parseFixation(f)
		if err != nil {
			return domain.Product{}, err
		}
		fixations = append(fixations, fixation)
	}
	if len(fixations) == 0 {
		return domain.Product{}, fmt.Errorf("at least one fixation type is required")
	}

	loadTable := make([]domain.LoadTableEntry, 0, len(doc.LoadTable))
	for _, entry := range doc.LoadTable {
		if entry.ThicknessMM <= 0 || entry.MaxSpanM <= 0 {
			return domain.Product{}, fmt.Errorf("load_table entries must be positive")
		}
		loadTable = append(loadTable, domain.LoadTableEntry{
			ThicknessMM: entry.ThicknessMM,
			MaxSpanM:    entry.MaxSpanM,
		})
	}
	sort.Slice(loadTable, func(i, j int) bool {
		return loadTable[i].ThicknessMM < loadTable[j].ThicknessMM
	})

	product := domain.Product{
		Key:                strings.TrimSpace(doc.Key),
		SKU:                strings.TrimSpace(doc.SKU),
		Name:               strings.TrimSpace(doc.Name),
		Family:             domain.Family(strings.TrimSpace(doc.Family)),
		ThicknessMM:        doc.ThicknessMM,
		UsableWidthM:       doc.UsableWidthM,
		PricePerM2:         price,
		Currency:           strings.TrimSpace(doc.Currency),
		Fixations:          fixations,
		LoadTable:          loadTable,
		ThermalCoefficient: doc.ThermalCoefficient,
	}

	if _, ok := product.MaxUnsupportedSpan(); !ok {
		return domain.Product{}, fmt.Errorf("load_table has no entry for the product's own thickness")
	}

	return product, nil
}

func buildAccessory(doc accessoryDoc) (domain.Accessory, error) {
	if strings.TrimSpace(doc.SKU) == "" {
		return domain.Accessory{}, fmt.Errorf("sku is required")
	}
	if strings.TrimSpace(doc.Name) == "" {
		return domain.Accessory{}, fmt.Errorf("name is required")
	}

	price, err := money.ParseCents(doc.UnitPrice)
	if err != nil {
		return domain.Accessory{}, fmt.Errorf("unit_price: %v", err)
	}
	if price <= 0 {
		return domain.Accessory{}, fmt.Errorf("unit_price must be positive")
	}

	unit, err := parsePricingUnit(doc.PricingUnit)
	if err != nil {
		return domain.Accessory{}, err
	}
	if unit == domain.PerLinearMeter && doc.PieceLengthM <= 0 {
		return domain.Accessory{}, fmt.Errorf("piece_length_m is required for per_linear_meter pricing")
	}

	families := make([]domain.Family, 0, len(doc.Families))
	for _, f := range doc.Families {
		families = append(families, domain.Family(strings.TrimSpace(f)))
	}

	return domain.Accessory{
		SKU:          strings.TrimSpace(doc.SKU),
		Name:         strings.TrimSpace(doc.Name),
		Category:     domain.AccessoryCategory(strings.TrimSpace(doc.Category)),
		UnitPrice:    price,
		Unit:         unit,
		PieceLengthM: doc.PieceLengthM,
		Families:     families,
	}, nil
}

func buildFormulas(doc formulasDoc) (domain.Formulas, error) {
	if doc.PointsPerPanelSupport <= 0 {
		return domain.Formulas{}, fmt.Errorf("points_per_panel_support must be positive")
	}
	if doc.EdgeScrewSpacingM <= 0 {
		return domain.Formulas{}, fmt.Errorf("edge_screw_spacing_m must be positive")
	}
	if doc.TrimCoverageM <= 0 {
		return domain.Formulas{}, fmt.Errorf("trim_coverage_m must be positive")
	}
	if doc.SealantCoverageM <= 0 {
		return domain.Formulas{}, fmt.Errorf("sealant_coverage_m must be positive")
	}
	return domain.Formulas{
		PointsPerPanelSupport: doc.PointsPerPanelSupport,
		EdgeScrewSpacingM:     doc.EdgeScrewSpacingM,
		TrimCoverageM:         doc.TrimCoverageM,
		SealantCoverageM:      doc.SealantCoverageM,
	}, nil
}

func buildBusinessRules(doc businessRulesDoc) (domain.BusinessRules, error) {
	if doc.TaxRateBps < 0 {
		return domain.BusinessRules{}, fmt.Errorf("tax_rate_bps cannot be negative")
	}

	standard := make(map[domain.Family]domain.FixationType, len(doc.StandardFixation))
	for family, fixation := range doc.StandardFixation {
		parsed, err := parseFixation(fixation)
		if err != nil {
			return domain.BusinessRules{}, fmt.Errorf("standard_fixation[%s]: %v", family, err)
		}
		standard[domain.Family(family)] = parsed
	}

	roles := make(map[domain.MaterialRole]string, len(doc.AccessoryRoles))
	for role, query := range doc.AccessoryRoles {
		if strings.TrimSpace(query) == "" {
			return domain.BusinessRules{}, fmt.Errorf("accessory_roles[%s] is empty", role)
		}
		roles[domain.MaterialRole(role)] = strings.TrimSpace(query)
	}

	return domain.BusinessRules{
		TaxRateBps:       doc.TaxRateBps,
		MinimumSlopeDeg:  doc.MinimumSlopeDeg,
		RoundingMode:     doc.RoundingMode,
		Currency:         strings.TrimSpace(doc.Currency),
		StandardFixation: standard,
		AccessoryRoles:   roles,
	}, nil
}

func parseFixation(value string) (domain.FixationType, error) {
	switch domain.FixationType(strings.TrimSpace(value)) {
	case domain.FixationConcrete:
		return domain.FixationConcrete, nil
	case domain.FixationWood:
		return domain.FixationWood, nil
	case domain.FixationMetal:
		return domain.FixationMetal, nil
	default:
		return "", fmt.Errorf("unknown fixation type %q", value)
	}
}

func parsePricingUnit(value string) (domain.PricingUnit, error) {
	switch domain.PricingUnit(strings.TrimSpace(value)) {
	case domain.PerPiece:
		return domain.PerPiece, nil
	case domain.PerLinearMeter:
		return domain.PerLinearMeter, nil
	case domain.PerArea:
		return domain.PerArea, nil
	default:
		return "", fmt.Errorf("unknown pricing unit %q", value)
	}
}
