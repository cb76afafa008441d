// Package domain holds the immutable catalog model shared by the catalog
// and quotation bounded contexts. Values are created once per catalog load
// and never mutated afterwards; a refresh produces a whole new snapshot.
package domain

import (
	"sort"
	"time"

	"panelbom_backend/platform/money"
)

// FixationType is the structural substrate a panel is fastened to.
// It determines which fastener set the formula engine derives.
type FixationType string

const (
	FixationConcrete FixationType = "concrete"
	FixationWood     FixationType = "wood"
	FixationMetal    FixationType = "metal"
)

// PricingUnit is the basis on which an accessory is priced. Pricing dispatches
// strictly on this field: a fixed-length trim priced per piece must never be
// multiplied by its length.
type PricingUnit string

const (
	PerPiece       PricingUnit = "per_piece"
	PerLinearMeter PricingUnit = "per_linear_meter"
	PerArea        PricingUnit = "per_area"
)

// Family is a catalog-declared panel system (e.g. "trapezoidal", "sandwich").
type Family string

// AccessoryCategory groups accessories for line-item ordering.
type AccessoryCategory string

const (
	CategoryStructural AccessoryCategory = "structural_profile"
	CategoryEdgeTrim   AccessoryCategory = "edge_trim"
	CategoryFastener   AccessoryCategory = "fastener"
	CategorySealant    AccessoryCategory = "sealant"
)

// LoadTableEntry maps a panel thickness to the maximum span it bridges
// without intermediate supports.
type LoadTableEntry struct {
	ThicknessMM float64
	MaxSpanM    float64
}

// Product is a panel product as loaded from the catalog.
type Product struct {
	Key                string
	SKU                string
	Name               string
	Family             Family
	ThicknessMM        float64
	UsableWidthM       float64
	PricePerM2         money.Cents
	Currency           string
	Fixations          []FixationType
	LoadTable          []LoadTableEntry // sorted ascending by thickness
	ThermalCoefficient float64          // W/mK, 0 when not declared
}

// MaxUnsupportedSpan returns the load-table span for the product's own
// thickness. The second return is false when the thickness is not listed,
// which is a catalog defect callers must surface, never paper over.
func (p Product) MaxUnsupportedSpan() (float64, bool) {
	for _, entry := range p.LoadTable {
		if entry.ThicknessMM == p.ThicknessMM {
			return entry.MaxSpanM, true
		}
	}
	return 0, false
}

// SupportsFixation reports whether the product is rated for the substrate.
func (p Product) SupportsFixation(f FixationType) bool {
	for _, allowed := range p.Fixations {
		if allowed == f {
			return true
		}
	}
	return false
}

// Accessory is a priced catalog accessory.
type Accessory struct {
	SKU          string
	Name         string
	Category     AccessoryCategory
	UnitPrice    money.Cents
	Unit         PricingUnit
	PieceLengthM float64  // length of one piece, required when Unit is per_linear_meter
	Families     []Family // empty means compatible with all families
}

// CompatibleWith reports whether the accessory fits the given family.
func (a Accessory) CompatibleWith(f Family) bool {
	if len(a.Families) == 0 {
		return true
	}
	for _, fam := range a.Families {
		if fam == f {
			return true
		}
	}
	return false
}

// Formulas holds the named constants the formula engine is parameterized by.
// None of these may be hard-coded in calculation code.
type Formulas struct {
	PointsPerPanelSupport int     // fixation points per panel-support crossing
	EdgeScrewSpacingM     float64 // spacing of perimeter screws along panel length
	TrimCoverageM         float64 // meters of edge covered by one trim piece
	SealantCoverageM      float64 // meters of joint covered by one sealant unit
}

// MaterialRole names a bill-of-materials slot the quotation engine must fill
// with a catalog accessory.
type MaterialRole string

const (
	RoleStructuralProfile MaterialRole = "structural_profile"
	RoleEdgeTrim          MaterialRole = "edge_trim"
	RoleThreadedRod       MaterialRole = "threaded_rod"
	RoleNut               MaterialRole = "nut"
	RoleAnchor            MaterialRole = "anchor"
	RoleSelfTappingScrew  MaterialRole = "self_tapping_screw"
	RoleSealant           MaterialRole = "sealant"
)

// BusinessRules holds catalog-level business constants.
type BusinessRules struct {
	TaxRateBps       int
	MinimumSlopeDeg  float64
	RoundingMode     string
	Currency         string
	StandardFixation map[Family]FixationType
	// AccessoryRoles maps each material role to the query (SKU or keyword)
	// the catalog author chose for it. A missing role means the catalog
	// cannot quote that slot; the engine surfaces that, never guesses.
	AccessoryRoles map[MaterialRole]string
}

// CatalogSnapshot is the immutable, versioned aggregate of a catalog load.
// It is shared read-only across concurrent quotation requests; refreshing
// builds a new snapshot and swaps a single reference.
type CatalogSnapshot struct {
	Version     string
	Fingerprint string
	LoadedAt    time.Time
	Products    []Product
	Accessories []Accessory
	Formulas    Formulas
	Rules       BusinessRules
}

// NextThickerProduct returns the thinnest product of the same family whose own
// load-table span covers the requested span, or false when none does.
func (s *CatalogSnapshot) NextThickerProduct(family Family, thicknessMM, spanM float64) (Product, bool) {
	candidates := make([]Product, 0, 4)
	for _, p := range s.Products {
		if p.Family != family || p.ThicknessMM <= thicknessMM {
			continue
		}
		maxSpan, ok := p.MaxUnsupportedSpan()
		if !ok || maxSpan < spanM {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return Product{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ThicknessMM < candidates[j].ThicknessMM
	})
	return candidates[0], true
}
