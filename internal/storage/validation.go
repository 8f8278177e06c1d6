// Package storage provides the persistence layer for the shopimpact application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/shopimpact/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidPurchase = errors.New("invalid purchase")
	ErrInvalidProfile  = errors.New("invalid profile")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateState checks the invariants every saved document must hold.
func validateState(state *model.State) error {
	if state == nil {
		return fmt.Errorf("%w: state", ErrNilParameter)
	}
	for i := range state.Purchases {
		if err := validatePurchase(&state.Purchases[i]); err != nil {
			return fmt.Errorf("purchase at index %d: %w", i, err)
		}
	}
	return validateProfile(&state.Profile)
}

// validatePurchase validates a single purchase.
func validatePurchase(p *model.Purchase) error {
	if p.Timestamp.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidPurchase)
	}
	if !finite(p.Price) || p.Price < 0 {
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidPurchase)
	}
	if !finite(p.CO2Impact) || p.CO2Impact < 0 {
		return fmt.Errorf("%w: co2 impact must be a non-negative number", ErrInvalidPurchase)
	}
	return nil
}

// validateProfile validates the profile, including badge uniqueness.
func validateProfile(p *model.Profile) error {
	if p.JoinedDate.IsZero() {
		return fmt.Errorf("%w: missing joined date", ErrInvalidProfile)
	}
	if !finite(p.MonthlyBudget) || !finite(p.CO2Goal) {
		return fmt.Errorf("%w: targets must be finite", ErrInvalidProfile)
	}
	seen := make(map[string]bool, len(p.Badges))
	for _, id := range p.Badges {
		if seen[id] {
			return fmt.Errorf("%w: duplicate badge %q", ErrInvalidProfile, id)
		}
		seen[id] = true
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
