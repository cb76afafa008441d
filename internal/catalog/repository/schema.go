package repository

// Wire schema of the catalog document (§ catalog source format). Parsing is
// strict: unknown pricing units, missing sections, or unparseable prices fail
// the load; nothing is defaulted into existence.

type catalogDocument struct {
	Products      []productDoc      `yaml:"products"`
	Accessories   []accessoryDoc    `yaml:"accessories"`
	Formulas      *formulasDoc      `yaml:"formulas"`
	BusinessRules *businessRulesDoc `yaml:"business_rules"`
}

type productDoc struct {
	Key                string         `yaml:"key"`
	SKU                string         `yaml:"sku"`
	Name               string         `yaml:"name"`
	Family             string         `yaml:"family"`
	ThicknessMM        float64        `yaml:"thickness_mm"`
	UsableWidthM       float64        `yaml:"usable_width_m"`
	PricePerM2         string         `yaml:"price_per_m2"`
	Currency           string         `yaml:"currency"`
	Fixations          []string       `yaml:"fixations"`
	LoadTable          []loadTableDoc `yaml:"load_table"`
	ThermalCoefficient float64        `yaml:"thermal_coefficient"`
}

type loadTableDoc struct {
	ThicknessMM float64 `yaml:"thickness_mm"`
	MaxSpanM    float64 `yaml:"max_span_m"`
}

type accessoryDoc struct {
	SKU          string   `yaml:"sku"`
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"`
	UnitPrice    string   `yaml:"unit_price"`
	PricingUnit  string   `yaml:"pricing_unit"`
	PieceLengthM float64  `yaml:"piece_length_m"`
	Families     []string `yaml:"families"`
}

type formulasDoc struct {
	PointsPerPanelSupport int     `yaml:"points_per_panel_support"`
	EdgeScrewSpacingM     float64 `yaml:"edge_screw_spacing_m"`
	TrimCoverageM         float64 `yaml:"trim_coverage_m"`
	SealantCoverageM      float64 `yaml:"sealant_coverage_m"`
}

type businessRulesDoc struct {
	TaxRateBps       int               `yaml:"tax_rate_bps"`
	MinimumSlopeDeg  float64           `yaml:"minimum_slope_deg"`
	RoundingMode     string            `yaml:"rounding_mode"`
	Currency         string            `yaml:"currency"`
	StandardFixation map[string]string `yaml:"standard_fixation"`
	AccessoryRoles   map[string]string `yaml:"accessory_roles"`
}
