// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import "github.com/go-playground/validator/v10"

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the domain tags registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("fixation", validFixation)
	_ = v.RegisterValidation("pricingunit", validPricingUnit)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// validFixation accepts the structural substrates the formula engine knows.
// Empty is allowed so the catalog's standard fixation fallback can apply.
func validFixation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "concrete", "wood", "metal":
		return true
	default:
		return false
	}
}

func validPricingUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "per_piece", "per_linear_meter", "per_area":
		return true
	default:
		return false
	}
}
