package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
	"github.com/Darshil562002/retailsim/retailsim/simulation"
)

func craftedDataset() *simulation.Dataset {
	return &simulation.Dataset{
		Stores: []*models.Store{
			{ID: "STR0001", RegionTier: models.TierMetro},
			{ID: "STR0002", RegionTier: models.TierThree},
		},
		Products: []*models.Product{
			{ID: "PRD0001", Category: models.CategoryGroceries},
			{ID: "PRD0002", Category: models.CategoryFreshProduce, IsPerishable: true},
		},
		Transactions: []*models.Transaction{
			{
				ID: "TXN0000001", CustomerID: "CUST000001", StoreID: "STR0001",
				ProductID:  "PRD0001",
				RegionTier: models.TierMetro,
				Revenue:    100, Margin: 30, MarginPct: 30,
				LogisticsCost: 20, SpoilageCost: 0,
				DeliveryTimeHours: 1, DeliveryDistanceKm: 5,
			},
			{
				ID: "TXN0000002", CustomerID: "CUST000001", StoreID: "STR0001",
				ProductID:  "PRD0002",
				RegionTier: models.TierMetro,
				Revenue:    200, Margin: 10, MarginPct: 5,
				LogisticsCost: 30, SpoilageCost: 2,
				DeliveryTimeHours: 2, DeliveryDistanceKm: 10,
				IsPerishable: true,
			},
			{
				ID: "TXN0000003", CustomerID: "CUST000002", StoreID: "STR0002",
				ProductID:  "PRD0002",
				RegionTier: models.TierThree,
				Revenue:    50, Margin: -25, MarginPct: -50,
				LogisticsCost: 60, SpoilageCost: 5,
				DeliveryTimeHours: 10, DeliveryDistanceKm: 40,
				IsPerishable: true,
			},
		},
	}
}

func TestSummarizeCraftedDataset(t *testing.T) {
	report := Summarize(craftedDataset())

	// Tiers with no activity are dropped; the remaining rows keep the
	// canonical Metro, Tier 2, Tier 3 order.
	require.Len(t, report.Tiers, 2)
	require.Equal(t, models.TierMetro, report.Tiers[0].Tier)
	require.Equal(t, models.TierThree, report.Tiers[1].Tier)
	require.Nil(t, report.Tier(models.TierTwo))

	metro := report.Tier(models.TierMetro)
	require.NotNil(t, metro)
	require.Equal(t, 2, metro.Transactions)
	require.InDelta(t, 300.0, metro.TotalRevenue, 1e-9)
	require.InDelta(t, 40.0, metro.TotalMargin, 1e-9)
	require.InDelta(t, 100*40.0/300.0, metro.MarginPct, 1e-9)
	require.InDelta(t, 17.5, metro.MeanMarginPct, 1e-9)
	require.InDelta(t, 150.0, metro.MedianOrderValue, 1e-9)
	require.Equal(t, 1, metro.UniqueCustomers)
	require.InDelta(t, 300.0, metro.RevenuePerCustomer, 1e-9)
	require.InDelta(t, 25.0, metro.AvgLogisticsCost, 1e-9)
	require.InDelta(t, 1.0, metro.AvgSpoilageCost, 1e-9)

	tier3 := report.Tier(models.TierThree)
	require.NotNil(t, tier3)
	require.Equal(t, 1, tier3.Transactions)
	require.InDelta(t, -50.0, tier3.MarginPct, 1e-9)
	require.InDelta(t, 50.0, tier3.MedianOrderValue, 1e-9)
}

func TestRepeatRateCountsFrequentBuyers(t *testing.T) {
	ds := craftedDataset()
	// A third purchase pushes the Metro customer over the repeat threshold.
	ds.Transactions = append(ds.Transactions, &models.Transaction{
		ID: "TXN0000004", CustomerID: "CUST000001", StoreID: "STR0001",
		RegionTier: models.TierMetro, Revenue: 80, Margin: 8, MarginPct: 10,
	})

	report := Summarize(ds)
	metro := report.Tier(models.TierMetro)
	require.NotNil(t, metro)
	require.InDelta(t, 100.0, metro.RepeatRatePct, 1e-9)

	tier3 := report.Tier(models.TierThree)
	require.NotNil(t, tier3)
	require.Zero(t, tier3.RepeatRatePct)
}

func TestSummarizeGeneratedDataset(t *testing.T) {
	ds := generatedDataset(t)
	report := Summarize(ds)

	require.Len(t, report.Tiers, 3)

	total := 0
	for _, perf := range report.Tiers {
		total += perf.Transactions
		require.Positive(t, perf.UniqueCustomers)
		require.Positive(t, perf.TotalRevenue)
		require.Positive(t, perf.AvgLogisticsCost)
		require.Positive(t, perf.AvgDeliveryTimeHours)
	}
	require.Equal(t, len(ds.Transactions), total)

	metro := report.Tier(models.TierMetro)
	tier3 := report.Tier(models.TierThree)
	require.Greater(t, metro.MeanMarginPct, tier3.MeanMarginPct)
	require.Greater(t, tier3.AvgLogisticsCost, metro.AvgLogisticsCost)
	require.Greater(t, tier3.AvgDeliveryTimeHours, metro.AvgDeliveryTimeHours)
}

func TestFormatRendersAllTiers(t *testing.T) {
	out := Summarize(craftedDataset()).Format()
	require.True(t, strings.Contains(out, models.TierMetro))
	require.True(t, strings.Contains(out, models.TierThree))
	require.True(t, strings.Contains(out, "Margin%"))
}

func TestInsightsCoverTheTierGaps(t *testing.T) {
	report := Summarize(generatedDataset(t))
	insights := Insights(report)

	require.NotEmpty(t, insights)
	joined := strings.Join(insights, "\n")
	require.Contains(t, joined, "Margin gap")
	require.Contains(t, joined, "Logistics premium")
	require.Contains(t, joined, "Retention gap")
	require.Contains(t, joined, "Delivery delay")
	require.Contains(t, joined, "Growth potential")
}

func TestInsightsNeedBothEndTiers(t *testing.T) {
	ds := craftedDataset()
	ds.Transactions = ds.Transactions[:2] // Metro only
	require.Nil(t, Insights(Summarize(ds)))
}

// generatedDataset produces a mid-sized dataset for the aggregate tests.
func generatedDataset(t *testing.T) *simulation.Dataset {
	t.Helper()
	cfg := simulation.DefaultConfig()
	cfg.MetroStores, cfg.Tier2Stores, cfg.Tier3Stores = 20, 15, 15
	cfg.Products = 35
	cfg.MetroCustomers, cfg.Tier2Customers, cfg.Tier3Customers = simulation.SplitCustomers(600)
	cfg.Transactions = 12000

	engine, err := simulation.NewEngine(cfg)
	require.NoError(t, err)
	ds, err := engine.Run()
	require.NoError(t, err)
	return ds
}
