package badge

import (
	"strings"

	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/model"
)

// Chain groups rules by the data they look at.
type Chain string

const (
	// ChainHistory rules look at aggregates over the whole history.
	ChainHistory Chain = "history"
	// ChainLastPurchase rules look at the purchase that was just logged.
	ChainLastPurchase Chain = "last_purchase"
)

// Stats are the aggregates computed once per evaluation pass.
type Stats struct {
	Last         model.Purchase
	TotalCO2     float64
	Count        int
	EcoCount     int
	CoffeeCount  int
	DessertCount int
}

// EcoShare is the fraction of purchases in the eco set.
func (s Stats) EcoShare() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.EcoCount) / float64(s.Count)
}

// NewStats aggregates history. Last is the zero Purchase for an empty history.
func NewStats(history []model.Purchase) Stats {
	var s Stats
	for _, p := range history {
		s.Count++
		s.TotalCO2 += p.CO2Impact
		if impact.IsEco(p.Category) {
			s.EcoCount++
		}
		if strings.Contains(p.Category, "Coffee") {
			s.CoffeeCount++
		}
		if strings.Contains(p.Category, "Dessert") {
			s.DessertCount++
		}
	}
	if len(history) > 0 {
		s.Last = history[len(history)-1]
	}
	return s
}

// Rule selects Badge when Match holds. Unless IgnoreUnlocked is set the rule
// only fires while the badge is still locked.
type Rule struct {
	Match          func(Stats) bool
	Badge          string
	Chain          Chain
	IgnoreUnlocked bool
}

// rules is evaluated top to bottom; every firing rule overwrites the single
// candidate slot, so the last firing rule wins. Chain A lists the eco tiers
// before the count tiers so that first_step is its last match on a first
// purchase.
var rules = []Rule{
	{Badge: ThriftCurious, Chain: ChainHistory, Match: func(s Stats) bool { return s.EcoCount >= 1 }},
	{Badge: ThriftKing, Chain: ChainHistory, Match: func(s Stats) bool { return s.EcoCount >= 5 }},
	{Badge: ZeroWaster, Chain: ChainHistory, Match: func(s Stats) bool { return s.EcoCount >= 10 }},
	{Badge: EcoWarrior, Chain: ChainHistory, Match: func(s Stats) bool { return s.Count > 10 && s.EcoShare() >= 0.5 }},
	{Badge: FirstStep, Chain: ChainHistory, Match: func(s Stats) bool { return s.Count >= 1 }},
	{Badge: BabySteps, Chain: ChainHistory, Match: func(s Stats) bool { return s.Count >= 5 }},
	{Badge: BronzeLogger, Chain: ChainHistory, Match: func(s Stats) bool { return s.Count >= 10 }},
	{Badge: SilverLogger, Chain: ChainHistory, Match: func(s Stats) bool { return s.Count >= 25 }},
	{Badge: GoldLogger, Chain: ChainHistory, Match: func(s Stats) bool { return s.Count >= 50 }},
	{Badge: DiamondLogger, Chain: ChainHistory, Match: func(s Stats) bool { return s.Count >= 100 }},

	{Badge: LowCarbon, Chain: ChainLastPurchase, Match: func(s Stats) bool { return s.Last.CO2Impact < 0.5 }},
	{Badge: BigSaver, Chain: ChainLastPurchase, Match: func(s Stats) bool {
		return s.Last.Price > 10000 && impact.IsEco(s.Last.Category)
	}},
	{Badge: RichieRich, Chain: ChainLastPurchase, Match: func(s Stats) bool { return s.Last.Price > 50000 }},
	{Badge: Oopsie, Chain: ChainLastPurchase, Match: func(s Stats) bool { return s.Last.CO2Impact > 50 }},
	{Badge: CoffeeAddict, Chain: ChainLastPurchase, Match: func(s Stats) bool {
		return strings.Contains(s.Last.Category, "Coffee") && s.CoffeeCount >= 5
	}},
	// "Game" selects gamer even after it is unlocked; "Console" only while locked.
	{Badge: Gamer, Chain: ChainLastPurchase, IgnoreUnlocked: true, Match: func(s Stats) bool {
		return strings.Contains(s.Last.Category, "Game")
	}},
	{Badge: Gamer, Chain: ChainLastPurchase, Match: func(s Stats) bool {
		return strings.Contains(s.Last.Category, "Console")
	}},
	{Badge: SweetTooth, Chain: ChainLastPurchase, Match: func(s Stats) bool {
		return strings.Contains(s.Last.Category, "Dessert") && s.DessertCount >= 3
	}},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
