package transport

import (
	"clinic_portal_backend/internal/leads/scoring"
	"clinic_portal_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// RegisterValidations adds the price_range and lifestyle tags used by the DTOs.
func RegisterValidations(val *validator.Validator) error {
	if err := val.RegisterValidation("price_range", func(fl playground.FieldLevel) bool {
		return scoring.PriceRange(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return val.RegisterValidation("lifestyle", func(fl playground.FieldLevel) bool {
		return scoring.Lifestyle(fl.Field().String()).Valid()
	})
}
