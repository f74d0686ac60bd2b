package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

func TestSummarizeCategoriesCraftedDataset(t *testing.T) {
	rows := SummarizeCategories(craftedDataset())

	// Canonical order: tiers outermost, categories in catalog order; empty
	// cells dropped.
	require.Len(t, rows, 3)

	require.Equal(t, models.TierMetro, rows[0].Tier)
	require.Equal(t, models.CategoryGroceries, rows[0].Category)
	require.Equal(t, 1, rows[0].Transactions)
	require.InDelta(t, 100.0, rows[0].TotalRevenue, 1e-9)
	require.InDelta(t, 30.0, rows[0].TotalMargin, 1e-9)
	require.InDelta(t, 30.0, rows[0].MarginPct, 1e-9)
	require.InDelta(t, 30.0, rows[0].MeanMarginPct, 1e-9)

	require.Equal(t, models.TierMetro, rows[1].Tier)
	require.Equal(t, models.CategoryFreshProduce, rows[1].Category)
	require.InDelta(t, 200.0, rows[1].TotalRevenue, 1e-9)
	require.InDelta(t, 5.0, rows[1].MarginPct, 1e-9)

	require.Equal(t, models.TierThree, rows[2].Tier)
	require.Equal(t, models.CategoryFreshProduce, rows[2].Category)
	require.InDelta(t, -50.0, rows[2].MarginPct, 1e-9)
}

func TestSummarizeCategoriesAgreesWithTierReport(t *testing.T) {
	ds := generatedDataset(t)
	rows := SummarizeCategories(ds)
	report := Summarize(ds)

	require.NotEmpty(t, rows)

	transactions := make(map[string]int)
	revenue := make(map[string]float64)
	for _, row := range rows {
		require.Contains(t, models.Tiers, row.Tier)
		require.Contains(t, models.Categories, row.Category)
		require.Positive(t, row.Transactions)
		transactions[row.Tier] += row.Transactions
		revenue[row.Tier] += row.TotalRevenue
	}

	// The category cells partition each tier's transactions exactly.
	for _, tier := range models.Tiers {
		perf := report.Tier(tier)
		require.NotNil(t, perf)
		require.Equal(t, perf.Transactions, transactions[tier])
		require.InEpsilon(t, perf.TotalRevenue, revenue[tier], 1e-8)
	}
}
