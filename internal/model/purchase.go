// Package model defines the core data structures for the shopimpact application.
package model

import "time"

// Purchase is a single logged purchase. CO2Impact is fixed when the purchase is
// created so later changes to the multiplier table never rewrite history.
type Purchase struct {
	Timestamp time.Time
	Category  string
	Brand     string
	Price     float64
	CO2Impact float64
}

// NewPurchase builds a purchase stamped at now, truncated to second precision in UTC.
func NewPurchase(now time.Time, category, brand string, price, co2Impact float64) Purchase {
	return Purchase{
		Timestamp: now.UTC().Truncate(time.Second),
		Category:  category,
		Brand:     brand,
		Price:     price,
		CO2Impact: co2Impact,
	}
}
