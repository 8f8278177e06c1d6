// Package impact maps product categories to carbon estimates and eco advice.
//
// All lookups are ordered tables evaluated top to bottom so that the
// first-match contract never depends on map iteration order.
package impact

import "strings"

// DefaultMultiplier is returned for categories no rule recognises.
const DefaultMultiplier = 1.0

// CategoryMultiplier pairs an exact category label with its impact multiplier.
type CategoryMultiplier struct {
	Category   string
	Multiplier float64
}

// SubstringRule matches a category containing any of Needles.
type SubstringRule struct {
	Needles    []string
	Multiplier float64
}

// Matches reports whether category contains one of the rule's needles.
func (r SubstringRule) Matches(category string) bool {
	return containsAny(category, r.Needles)
}

// categoryTable holds the exact-match multipliers. Higher is more carbon
// intensive per unit of spend.
var categoryTable = []CategoryMultiplier{
	{Category: "Electronics", Multiplier: 1.8},
	{Category: "Smartphones", Multiplier: 2.0},
	{Category: "Laptops", Multiplier: 1.9},
	{Category: "Gaming Consoles", Multiplier: 2.1},
	{Category: "Video Games", Multiplier: 0.9},
	{Category: "Home Appliances", Multiplier: 2.2},
	{Category: "Furniture", Multiplier: 1.5},
	{Category: "Fast Fashion", Multiplier: 3.0},
	{Category: "Clothing", Multiplier: 2.0},
	{Category: "Shoes", Multiplier: 2.2},
	{Category: "Leather Goods", Multiplier: 3.5},
	{Category: "Cosmetics", Multiplier: 1.4},
	{Category: "Beef", Multiplier: 5.0},
	{Category: "Meat", Multiplier: 4.0},
	{Category: "Dairy", Multiplier: 2.5},
	{Category: "Groceries", Multiplier: 1.2},
	{Category: "Fast Food", Multiplier: 2.0},
	{Category: "Restaurant", Multiplier: 1.6},
	{Category: "Coffee", Multiplier: 1.1},
	{Category: "Desserts", Multiplier: 1.3},
	{Category: "Fuel", Multiplier: 4.5},
	{Category: "Flights", Multiplier: 5.0},
	{Category: "Books (New)", Multiplier: 0.6},
	{Category: "Digital Subscriptions", Multiplier: 0.0},
	{Category: "Books (Used)", Multiplier: 0.05},
	{Category: "Second-Hand Clothing", Multiplier: 0.1},
	{Category: "Refurbished Electronics", Multiplier: 0.3},
	{Category: "Local Produce", Multiplier: 0.3},
	{Category: "Organic Groceries", Multiplier: 0.6},
	{Category: "Bamboo Products", Multiplier: 0.3},
	{Category: "Reusable Items", Multiplier: 0.2},
	{Category: "Public Transport", Multiplier: 0.2},
	{Category: "Bicycle", Multiplier: 0.1},
	{Category: "Solar Products", Multiplier: 0.1},
	{Category: "Repair Services", Multiplier: 0.05},
	{Category: "Rental Services", Multiplier: 0.1},
}

// substringRules are tried in order once the exact table misses.
var substringRules = []SubstringRule{
	{Needles: []string{"Refurbished", "Used", "Second-Hand", "Thrift"}, Multiplier: 0.1},
	{Needles: []string{"Bamboo", "Hemp", "Organic"}, Multiplier: 0.5},
	{Needles: []string{"Rental"}, Multiplier: 0.1},
	{Needles: []string{"Leather"}, Multiplier: 3.5},
	{Needles: []string{"Plastic"}, Multiplier: 2.0},
}

// categoryIndex is built once from categoryTable for exact lookups.
var categoryIndex = func() map[string]float64 {
	idx := make(map[string]float64, len(categoryTable))
	for _, entry := range categoryTable {
		idx[entry.Category] = entry.Multiplier
	}
	return idx
}()

// Multiplier returns the impact multiplier for category. It is total: unknown
// labels fall through the substring rules to DefaultMultiplier.
func Multiplier(category string) float64 {
	if m, ok := categoryIndex[category]; ok {
		return m
	}

	for _, rule := range substringRules {
		if rule.Matches(category) {
			return rule.Multiplier
		}
	}

	return DefaultMultiplier
}

// Categories lists the exact-table categories in table order.
func Categories() []string {
	names := make([]string, 0, len(categoryTable))
	for _, entry := range categoryTable {
		names = append(names, entry.Category)
	}
	return names
}

// SubstringRules returns a copy of the ordered fallback rules.
func SubstringRules() []SubstringRule {
	rules := make([]SubstringRule, len(substringRules))
	copy(rules, substringRules)
	return rules
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
