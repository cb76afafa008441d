package transport

import (
	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/quotation/domain"
)

type CustomerRequest struct {
	Name  string `json:"name" validate:"omitempty,max=200"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

type CreateQuotationRequest struct {
	ProductKey      string           `json:"productKey" validate:"omitempty,max=100"`
	Family          string           `json:"family" validate:"omitempty,max=50"`
	ThicknessMM     float64          `json:"thicknessMm" validate:"omitempty,gt=0"`
	LengthM         float64          `json:"lengthM" validate:"required,gt=0"`
	WidthM          float64          `json:"widthM" validate:"omitempty,gt=0"`
	SpanM           float64          `json:"spanM" validate:"required,gt=0"`
	Fixation        string           `json:"fixation" validate:"omitempty,fixation"`
	Quantity        int              `json:"quantity" validate:"omitempty,min=1"`
	DiscountPercent float64          `json:"discountPercent" validate:"omitempty,min=0,max=100"`
	Customer        *CustomerRequest `json:"customer,omitempty"`
}

// ToDomain maps the wire request to the engine's request type.
func (r CreateQuotationRequest) ToDomain() (domain.QuotationRequest, domain.Customer) {
	req := domain.QuotationRequest{
		ProductKey:      r.ProductKey,
		Family:          catalog.Family(r.Family),
		ThicknessMM:     r.ThicknessMM,
		LengthM:         r.LengthM,
		WidthM:          r.WidthM,
		SpanM:           r.SpanM,
		Fixation:        catalog.FixationType(r.Fixation),
		Quantity:        r.Quantity,
		DiscountPercent: r.DiscountPercent,
	}

	var customer domain.Customer
	if r.Customer != nil {
		customer = domain.Customer{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		}
	}
	return req, customer
}

type QuotationResponse struct {
	ID        string                 `json:"id"`
	Customer  domain.Customer        `json:"customer"`
	Result    domain.QuotationResult `json:"result"`
	CreatedAt string                 `json:"createdAt"`
}

// ToQuotationResponse maps a stored quotation to its wire form.
func ToQuotationResponse(q *domain.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:        q.ID.String(),
		Customer:  q.Customer,
		Result:    q.Result,
		CreatedAt: q.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
