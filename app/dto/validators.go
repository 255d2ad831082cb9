package dto

import (
	"regexp"

	"github.com/amirphl/Rentora/pricing"
	"github.com/go-playground/validator/v10"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// NewValidator returns a validator with the API's custom tags registered
func NewValidator() *validator.Validate {
	v := validator.New()
	// the tags are static, registration only fails on programmer error
	if err := RegisterCustomValidators(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterCustomValidators adds bidding_pct and currency_code
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("bidding_pct", func(fl validator.FieldLevel) bool {
		return pricing.IsValidBiddingPercentage(fl.Field().Float())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		return currencyCodeRe.MatchString(fl.Field().String())
	})
}

