package tracker

import (
	"sort"
	"time"

	"github.com/Veraticus/shopimpact/internal/badge"
	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/model"
)

// CategoryTotal aggregates the purchases of one category.
type CategoryTotal struct {
	Category string
	Count    int
	Spend    float64
	CO2      float64
	Eco      bool
}

// Summary is a read-only digest of the state. Budget and CO2 goal figures are
// advisory and never affect badges.
type Summary struct {
	GeneratedAt     time.Time
	JoinedDate      time.Time
	Name            string
	Categories      []CategoryTotal
	Badges          []model.Badge
	Purchases       int
	EcoCount        int
	BadgesTotal     int
	TotalSpend      float64
	TotalCO2        float64
	EcoShare        float64
	MonthPurchases  int
	MonthSpend      float64
	MonthCO2        float64
	MonthlyBudget   float64
	CO2Goal         float64
	BudgetRemaining float64
	CO2Remaining    float64
}

// OverBudget reports whether this month's spend exceeds the monthly budget.
func (s Summary) OverBudget() bool {
	return s.MonthSpend > s.MonthlyBudget
}

// OverCO2Goal reports whether this month's CO2 exceeds the goal.
func (s Summary) OverCO2Goal() bool {
	return s.MonthCO2 > s.CO2Goal
}

// Summary digests the current state as of now.
func (t *Tracker) Summary(now time.Time) Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Summarize(t.state, now)
}

// Summarize digests state. The month window is the calendar month of now in UTC.
func Summarize(state *model.State, now time.Time) Summary {
	now = now.UTC()
	s := Summary{
		GeneratedAt:   now,
		JoinedDate:    state.Profile.JoinedDate,
		Name:          state.Profile.Name,
		Purchases:     len(state.Purchases),
		MonthlyBudget: state.Profile.MonthlyBudget,
		CO2Goal:       state.Profile.CO2Goal,
		BadgesTotal:   len(badge.All()),
		Badges:        make([]model.Badge, 0, len(state.Profile.Badges)),
	}

	byCategory := make(map[string]*CategoryTotal)
	for _, p := range state.Purchases {
		s.TotalSpend += p.Price
		s.TotalCO2 += p.CO2Impact
		eco := impact.IsEco(p.Category)
		if eco {
			s.EcoCount++
		}

		ts := p.Timestamp.UTC()
		if ts.Year() == now.Year() && ts.Month() == now.Month() {
			s.MonthPurchases++
			s.MonthSpend += p.Price
			s.MonthCO2 += p.CO2Impact
		}

		ct, ok := byCategory[p.Category]
		if !ok {
			ct = &CategoryTotal{Category: p.Category, Eco: eco}
			byCategory[p.Category] = ct
		}
		ct.Count++
		ct.Spend += p.Price
		ct.CO2 += p.CO2Impact
	}

	if s.Purchases > 0 {
		s.EcoShare = float64(s.EcoCount) / float64(s.Purchases)
	}
	s.BudgetRemaining = s.MonthlyBudget - s.MonthSpend
	s.CO2Remaining = s.CO2Goal - s.MonthCO2

	s.Categories = make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		s.Categories = append(s.Categories, *ct)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		if s.Categories[i].CO2 != s.Categories[j].CO2 {
			return s.Categories[i].CO2 > s.Categories[j].CO2
		}
		return s.Categories[i].Category < s.Categories[j].Category
	})

	for _, id := range state.Profile.Badges {
		if b, ok := badge.Lookup(id); ok {
			s.Badges = append(s.Badges, b)
		}
	}

	return s
}
