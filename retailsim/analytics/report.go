// Package analytics computes tier- and store-level performance aggregates
// over a generated dataset. It consumes the tables read-only and only
// recomputes derived figures; it never adds columns of its own.
package analytics

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
	"github.com/Darshil562002/retailsim/retailsim/simulation"
)

// repeatThreshold is the purchase count from which a customer counts as a
// repeat buyer.
const repeatThreshold = 3

// TierPerformance aggregates the business narrative for one region tier.
type TierPerformance struct {
	Tier                  string
	Transactions          int
	TotalRevenue          float64
	TotalMargin           float64
	MarginPct             float64 // 100 * total margin / total revenue
	MeanMarginPct         float64 // mean of per-row margin_pct
	MedianOrderValue      float64
	UniqueCustomers       int
	RevenuePerCustomer    float64
	RepeatRatePct         float64
	AvgLogisticsCost      float64
	AvgSpoilageCost       float64
	AvgDeliveryTimeHours  float64
	AvgDeliveryDistanceKm float64
}

// Report is the per-tier performance summary over one dataset.
type Report struct {
	GeneratedAt time.Time
	Tiers       []TierPerformance
}

// Tier returns the row for one tier, or nil when the tier saw no activity.
func (r *Report) Tier(tier string) *TierPerformance {
	for i := range r.Tiers {
		if r.Tiers[i].Tier == tier {
			return &r.Tiers[i]
		}
	}
	return nil
}

// Summarize walks the transaction table once per tier, in canonical tier
// order, and derives every aggregate from the row-level fields.
func Summarize(ds *simulation.Dataset) *Report {
	report := &Report{GeneratedAt: time.Now()}

	for _, tier := range models.Tiers {
		perf := summarizeTier(ds, tier)
		if perf.Transactions == 0 {
			continue
		}
		report.Tiers = append(report.Tiers, perf)
	}
	return report
}

func summarizeTier(ds *simulation.Dataset, tier string) TierPerformance {
	perf := TierPerformance{Tier: tier}

	var (
		marginPcts []float64
		revenues   []float64
		logistics  []float64
		spoilage   []float64
		times      []float64
		distances  []float64
	)
	purchasesByCustomer := make(map[string]int)

	for _, t := range ds.Transactions {
		if t.RegionTier != tier {
			continue
		}
		perf.Transactions++
		perf.TotalRevenue += t.Revenue
		perf.TotalMargin += t.Margin
		purchasesByCustomer[t.CustomerID]++

		marginPcts = append(marginPcts, t.MarginPct)
		revenues = append(revenues, t.Revenue)
		logistics = append(logistics, t.LogisticsCost)
		spoilage = append(spoilage, t.SpoilageCost)
		times = append(times, t.DeliveryTimeHours)
		distances = append(distances, t.DeliveryDistanceKm)
	}

	if perf.Transactions == 0 {
		return perf
	}

	perf.UniqueCustomers = len(purchasesByCustomer)
	if perf.TotalRevenue > 0 {
		perf.MarginPct = 100 * perf.TotalMargin / perf.TotalRevenue
	}
	perf.RevenuePerCustomer = perf.TotalRevenue / float64(perf.UniqueCustomers)

	repeat := 0
	for _, n := range purchasesByCustomer {
		if n >= repeatThreshold {
			repeat++
		}
	}
	perf.RepeatRatePct = 100 * float64(repeat) / float64(perf.UniqueCustomers)

	perf.MeanMarginPct = mean(marginPcts)
	perf.MedianOrderValue = median(revenues)
	perf.AvgLogisticsCost = mean(logistics)
	perf.AvgSpoilageCost = mean(spoilage)
	perf.AvgDeliveryTimeHours = mean(times)
	perf.AvgDeliveryDistanceKm = mean(distances)

	return perf
}

func mean(values []float64) float64 {
	v, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return v
}

func median(values []float64) float64 {
	v, err := stats.Median(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	return v
}

// Format renders the report as a fixed-width console table.
func (r *Report) Format() string {
	out := fmt.Sprintf("%-8s %12s %16s %14s %9s %11s %10s %10s\n",
		"Tier", "Transactions", "Revenue", "Margin", "Margin%", "Customers", "AvgLogi", "AvgSpoil")
	for _, p := range r.Tiers {
		out += fmt.Sprintf("%-8s %12d %16.2f %14.2f %8.2f%% %11d %10.2f %10.2f\n",
			p.Tier, p.Transactions, p.TotalRevenue, p.TotalMargin, p.MarginPct,
			p.UniqueCustomers, p.AvgLogisticsCost, p.AvgSpoilageCost)
	}
	return out
}
