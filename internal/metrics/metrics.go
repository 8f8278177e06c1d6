// Package metrics exports the footprint summary as Prometheus gauges.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Veraticus/shopimpact/internal/service"
)

const namespace = "shopimpact"

// Collector recomputes gauges from a SummaryProvider on every refresh.
type Collector struct {
	provider service.SummaryProvider
	clock    func() time.Time

	purchases     prometheus.Gauge
	ecoPurchases  prometheus.Gauge
	spend         prometheus.Gauge
	co2           prometheus.Gauge
	ecoShare      prometheus.Gauge
	monthSpend    prometheus.Gauge
	monthCO2      prometheus.Gauge
	monthlyBudget prometheus.Gauge
	co2Goal       prometheus.Gauge
	badges        prometheus.Gauge
	badgesTotal   prometheus.Gauge

	spendByCategory *prometheus.GaugeVec
	co2ByCategory   *prometheus.GaugeVec
	badgeUnlocked   *prometheus.GaugeVec
}

// New builds a collector. A nil clock means time.Now.
func New(provider service.SummaryProvider, clock func() time.Time) *Collector {
	if clock == nil {
		clock = time.Now
	}
	c := &Collector{provider: provider, clock: clock}

	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	c.purchases = gauge("purchases", "Number of logged purchases")
	c.ecoPurchases = gauge("eco_purchases", "Number of logged purchases in eco categories")
	c.spend = gauge("spend_total", "Total spend across all purchases")
	c.co2 = gauge("co2_kg_total", "Estimated CO2 across all purchases in kg")
	c.ecoShare = gauge("eco_share_ratio", "Fraction of purchases in eco categories")
	c.monthSpend = gauge("spend_mtd", "Month-to-date spend")
	c.monthCO2 = gauge("co2_kg_mtd", "Month-to-date estimated CO2 in kg")
	c.monthlyBudget = gauge("monthly_budget", "Configured monthly budget")
	c.co2Goal = gauge("co2_goal_kg", "Configured monthly CO2 goal in kg")
	c.badges = gauge("badges_unlocked", "Number of unlocked badges")
	c.badgesTotal = gauge("badges_available", "Number of badges in the catalog")

	c.spendByCategory = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "spend_by_category",
		Help:      "Total spend by category",
	}, []string{"category", "eco"})

	c.co2ByCategory = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "co2_kg_by_category",
		Help:      "Estimated CO2 by category in kg",
	}, []string{"category", "eco"})

	c.badgeUnlocked = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "badge_unlocked",
		Help:      "Unlocked badges (value is 1, labelled by badge id and rarity)",
	}, []string{"badge", "rarity"})

	return c
}

// Register adds every gauge to reg. It panics on duplicate registration.
func (c *Collector) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		c.purchases,
		c.ecoPurchases,
		c.spend,
		c.co2,
		c.ecoShare,
		c.monthSpend,
		c.monthCO2,
		c.monthlyBudget,
		c.co2Goal,
		c.badges,
		c.badgesTotal,
		c.spendByCategory,
		c.co2ByCategory,
		c.badgeUnlocked,
	)
}

// Refresh recomputes all gauges from the current summary.
func (c *Collector) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := c.provider.Summary(c.clock())

	c.purchases.Set(float64(s.Purchases))
	c.ecoPurchases.Set(float64(s.EcoCount))
	c.spend.Set(s.TotalSpend)
	c.co2.Set(s.TotalCO2)
	c.ecoShare.Set(s.EcoShare)
	c.monthSpend.Set(s.MonthSpend)
	c.monthCO2.Set(s.MonthCO2)
	c.monthlyBudget.Set(s.MonthlyBudget)
	c.co2Goal.Set(s.CO2Goal)
	c.badges.Set(float64(len(s.Badges)))
	c.badgesTotal.Set(float64(s.BadgesTotal))

	// Reset so categories removed by a reset disappear from the scrape.
	c.spendByCategory.Reset()
	c.co2ByCategory.Reset()
	for _, cat := range s.Categories {
		eco := "false"
		if cat.Eco {
			eco = "true"
		}
		c.spendByCategory.WithLabelValues(cat.Category, eco).Set(cat.Spend)
		c.co2ByCategory.WithLabelValues(cat.Category, eco).Set(cat.CO2)
	}

	c.badgeUnlocked.Reset()
	for _, b := range s.Badges {
		c.badgeUnlocked.WithLabelValues(b.ID, string(b.Rarity)).Set(1)
	}

	return nil
}
