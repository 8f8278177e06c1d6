package impact

import "sort"

// ecoSet marks categories considered environmentally preferable. Members get
// a 50% discount on their estimate and count towards the eco badges.
var ecoSet = map[string]struct{}{
	"Books (Used)":            {},
	"Second-Hand Clothing":    {},
	"Refurbished Electronics": {},
	"Local Produce":           {},
	"Organic Groceries":       {},
	"Bamboo Products":         {},
	"Reusable Items":          {},
	"Public Transport":        {},
	"Bicycle":                 {},
	"Solar Products":          {},
	"Repair Services":         {},
	"Rental Services":         {},
}

// EcoDiscount is the factor applied to estimates of eco categories.
const EcoDiscount = 0.5

// IsEco reports whether category is an exact member of the eco set.
func IsEco(category string) bool {
	_, ok := ecoSet[category]
	return ok
}

// EcoCategories returns the eco set sorted by name.
func EcoCategories() []string {
	names := make([]string, 0, len(ecoSet))
	for name := range ecoSet {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
