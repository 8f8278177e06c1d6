package impact

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPrice is returned when a purchase price is not a positive number.
var ErrInvalidPrice = errors.New("price must be greater than zero")

// ValidatePrice rejects zero, negative and non-finite prices.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidPrice, price)
	}
	return nil
}

// Estimate returns the CO2-equivalent estimate for spending price on category.
// Callers must validate price first; Estimate never fails.
func Estimate(category string, price float64) float64 {
	raw := price * Multiplier(category) / 100
	if IsEco(category) {
		return raw * EcoDiscount
	}
	return raw
}

// CheckedEstimate validates price and returns its estimate. Prices so large
// that the estimate overflows are rejected with ErrInvalidPrice, since a
// non-finite CO2 figure could never be saved.
func CheckedEstimate(category string, price float64) (float64, error) {
	if err := ValidatePrice(price); err != nil {
		return 0, err
	}
	co2 := Estimate(category, price)
	if math.IsInf(co2, 0) || math.IsNaN(co2) {
		return 0, fmt.Errorf("%w: %v is too large to estimate", ErrInvalidPrice, price)
	}
	return co2, nil
}
