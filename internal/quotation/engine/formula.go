package engine

import (
	"fmt"
	"math"

	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/quotation/domain"
	"panelbom_backend/platform/apperr"
)

// BillLine is one accessory need derived by the formula engine, expressed as
// a catalog role plus either a whole-unit quantity or a required length that
// is converted to pieces once the accessory (and its piece length) is known.
type BillLine struct {
	Role      catalog.MaterialRole
	Quantity  int
	RequiredM float64
}

// Bill is the quantity side of the bill of materials, before pricing.
type Bill struct {
	PanelCount     int
	PanelAreaM2    float64
	TotalWidthM    float64
	SupportCount   int
	FixationPoints int
	Lines          []BillLine
}

// FormulaEngine derives material quantities from dimensions, span, and
// fixation type. Every formula is parameterized by catalog-declared
// constants and every derived quantity is ceil-rounded: materials cannot be
// purchased fractionally.
type FormulaEngine struct {
	formulas catalog.Formulas
}

// NewFormulaEngine creates an engine over the snapshot's formula constants.
func NewFormulaEngine(formulas catalog.Formulas) *FormulaEngine {
	return &FormulaEngine{formulas: formulas}
}

// PanelCount derives the number of panels. Width is authoritative when given;
// otherwise the request must name an explicit panel quantity.
func (e *FormulaEngine) PanelCount(product catalog.Product, req domain.QuotationRequest) (int, error) {
	if req.WidthM > 0 {
		return ceilInt(req.WidthM / product.UsableWidthM), nil
	}
	if req.Quantity < 1 {
		return 0, apperr.Validation("either width_m or a panel quantity of at least 1 is required")
	}
	return req.Quantity, nil
}

// ComputeBillOfMaterials derives all quantities for the request. The span
// plan's effective span drives the support count; the fixation type selects
// the fastener set:
//
//	concrete: threaded rod + one nut + one anchor per fixation point
//	metal:    threaded rod + two nuts per point, no anchor
//	wood:     self-tapping screws only
func (e *FormulaEngine) ComputeBillOfMaterials(
	product catalog.Product,
	req domain.QuotationRequest,
	span domain.SpanPlan,
	fixation catalog.FixationType,
) (Bill, error) {
	if req.LengthM <= 0 {
		return Bill{}, apperr.Validation(fmt.Sprintf("length must be positive, got %g m", req.LengthM))
	}
	if span.EffectiveSpanM <= 0 {
		return Bill{}, apperr.Internal("span plan carries no effective span")
	}

	panelCount, err := e.PanelCount(product, req)
	if err != nil {
		return Bill{}, err
	}

	totalWidth := req.WidthM
	if totalWidth <= 0 {
		totalWidth = float64(panelCount) * product.UsableWidthM
	}

	supports := ceilInt(req.LengthM/span.EffectiveSpanM) + 1

	points := ceilInt(
		float64(panelCount*supports*e.formulas.PointsPerPanelSupport) +
			req.LengthM*2/e.formulas.EdgeScrewSpacingM)

	bill := Bill{
		PanelCount:     panelCount,
		PanelAreaM2:    float64(panelCount) * req.LengthM * product.UsableWidthM,
		TotalWidthM:    totalWidth,
		SupportCount:   supports,
		FixationPoints: points,
	}

	// Structural profile runs across the full width at every support line.
	// The piece quantity depends on the resolved accessory's piece length,
	// so only the required meters are fixed here.
	bill.Lines = append(bill.Lines, BillLine{
		Role:      catalog.RoleStructuralProfile,
		RequiredM: float64(supports) * totalWidth,
	})

	bill.Lines = append(bill.Lines, BillLine{
		Role:      catalog.RoleEdgeTrim,
		Quantity:  ceilInt(req.LengthM * 2 / e.formulas.TrimCoverageM),
		RequiredM: req.LengthM * 2,
	})

	switch fixation {
	case catalog.FixationConcrete:
		bill.Lines = append(bill.Lines,
			BillLine{Role: catalog.RoleThreadedRod, Quantity: points},
			BillLine{Role: catalog.RoleNut, Quantity: points},
			BillLine{Role: catalog.RoleAnchor, Quantity: points},
		)
	case catalog.FixationMetal:
		bill.Lines = append(bill.Lines,
			BillLine{Role: catalog.RoleThreadedRod, Quantity: points},
			BillLine{Role: catalog.RoleNut, Quantity: points * 2},
		)
	case catalog.FixationWood:
		bill.Lines = append(bill.Lines,
			BillLine{Role: catalog.RoleSelfTappingScrew, Quantity: points},
		)
	default:
		return Bill{}, apperr.Validation(fmt.Sprintf("unknown fixation type %q", fixation))
	}

	// Sealant covers the longitudinal joints between adjacent panels.
	jointM := float64(panelCount-1) * req.LengthM
	if jointM > 0 {
		bill.Lines = append(bill.Lines, BillLine{
			Role:      catalog.RoleSealant,
			Quantity:  ceilInt(jointM / e.formulas.SealantCoverageM),
			RequiredM: jointM,
		})
	}

	for _, line := range bill.Lines {
		if line.Quantity < 0 {
			return Bill{}, apperr.Internal(fmt.Sprintf("negative quantity computed for %s", line.Role))
		}
	}

	return bill, nil
}

// Pieces converts a required length into whole purchasable units of the
// resolved accessory. Accessories sold in fixed-length pieces round up to
// whole pieces; per-meter accessories without a piece length round up to
// whole meters.
func (e *FormulaEngine) Pieces(requiredM float64, accessory catalog.Accessory) int {
	if requiredM <= 0 {
		return 0
	}
	if accessory.PieceLengthM > 0 {
		return ceilInt(requiredM / accessory.PieceLengthM)
	}
	return ceilInt(requiredM)
}

func ceilInt(v float64) int {
	return int(math.Ceil(v))
}
