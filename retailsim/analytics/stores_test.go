package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

func TestStorePerformanceAggregates(t *testing.T) {
	service, err := NewService(craftedDataset())
	require.NoError(t, err)

	perf, err := service.StorePerformance("STR0001")
	require.NoError(t, err)
	require.Equal(t, models.TierMetro, perf.RegionTier)
	require.Equal(t, 2, perf.Transactions)
	require.InDelta(t, 300.0, perf.TotalRevenue, 1e-9)
	require.InDelta(t, 40.0, perf.TotalMargin, 1e-9)
	require.InDelta(t, 100*40.0/300.0, perf.MarginPct, 1e-9)
	require.InDelta(t, 25.0, perf.AvgLogisticsCost, 1e-9)
	require.InDelta(t, 0.5, perf.PerishableShare, 1e-9)
	require.False(t, perf.HighRisk)

	perf, err = service.StorePerformance("STR0002")
	require.NoError(t, err)
	require.InDelta(t, -50.0, perf.MarginPct, 1e-9)
	require.True(t, perf.HighRisk)
}

func TestStorePerformanceIsCached(t *testing.T) {
	service, err := NewService(craftedDataset())
	require.NoError(t, err)

	first, err := service.StorePerformance("STR0001")
	require.NoError(t, err)
	second, err := service.StorePerformance("STR0001")
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestStorePerformanceUnknownStore(t *testing.T) {
	service, err := NewService(craftedDataset())
	require.NoError(t, err)

	_, err = service.StorePerformance("STR9999")
	require.ErrorContains(t, err, "unknown store")
}

func TestHighRiskStores(t *testing.T) {
	ds := craftedDataset()
	service, err := NewService(ds)
	require.NoError(t, err)

	risky, err := service.HighRiskStores(ds)
	require.NoError(t, err)
	require.Len(t, risky, 1)
	require.Equal(t, "STR0002", risky[0].StoreID)
}

func TestHighRiskStoresSkipIdleStores(t *testing.T) {
	ds := craftedDataset()
	ds.Stores = append(ds.Stores, &models.Store{ID: "STR0003", RegionTier: models.TierThree})

	service, err := NewService(ds)
	require.NoError(t, err)

	risky, err := service.HighRiskStores(ds)
	require.NoError(t, err)
	for _, perf := range risky {
		require.NotEqual(t, "STR0003", perf.StoreID)
	}
}
