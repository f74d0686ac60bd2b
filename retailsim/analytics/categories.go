package analytics

import (
	"github.com/Darshil562002/retailsim/retailsim/database/models"
	"github.com/Darshil562002/retailsim/retailsim/simulation"
)

// CategoryPerformance aggregates one (region tier, product category) cell.
type CategoryPerformance struct {
	Tier          string
	Category      string
	Transactions  int
	TotalRevenue  float64
	TotalMargin   float64
	MarginPct     float64 // 100 * total margin / total revenue
	MeanMarginPct float64 // mean of per-row margin_pct
}

// SummarizeCategories breaks the transaction table down by tier and
// category, in canonical tier then catalog order. Cells with no activity
// are dropped. The category comes from the referenced product; transactions
// pointing at an unknown product are skipped, which cannot happen for a
// generated dataset.
func SummarizeCategories(ds *simulation.Dataset) []CategoryPerformance {
	categoryByProduct := make(map[string]string, len(ds.Products))
	for _, p := range ds.Products {
		categoryByProduct[p.ID] = p.Category
	}

	type cell struct {
		transactions int
		revenue      float64
		margin       float64
		marginPctSum float64
	}
	type key struct {
		tier     string
		category string
	}
	cells := make(map[key]*cell)

	for _, t := range ds.Transactions {
		category, ok := categoryByProduct[t.ProductID]
		if !ok {
			continue
		}
		k := key{t.RegionTier, category}
		c := cells[k]
		if c == nil {
			c = &cell{}
			cells[k] = c
		}
		c.transactions++
		c.revenue += t.Revenue
		c.margin += t.Margin
		c.marginPctSum += t.MarginPct
	}

	var rows []CategoryPerformance
	for _, tier := range models.Tiers {
		for _, category := range models.Categories {
			c := cells[key{tier, category}]
			if c == nil {
				continue
			}
			perf := CategoryPerformance{
				Tier:          tier,
				Category:      category,
				Transactions:  c.transactions,
				TotalRevenue:  c.revenue,
				TotalMargin:   c.margin,
				MeanMarginPct: c.marginPctSum / float64(c.transactions),
			}
			if c.revenue > 0 {
				perf.MarginPct = 100 * c.margin / c.revenue
			}
			rows = append(rows, perf)
		}
	}
	return rows
}
