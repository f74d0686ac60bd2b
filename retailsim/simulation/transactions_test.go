package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

// TestSpoilageScalesWithShelfLife holds everything fixed except the
// product's shelf life: under identical draw sequences, a one-day
// perishable must lose strictly more to spoilage than a seven-day one.
func TestSpoilageScalesWithShelfLife(t *testing.T) {
	cfg := DefaultConfig()
	store := &models.Store{
		ID:                  "STR0001",
		RegionTier:          models.TierTwo,
		InfrastructureScore: 7.2,
		WarehouseDistanceKm: 20,
	}
	customer := &models.Customer{
		ID:             "CUST000001",
		PrimaryStoreID: store.ID,
		RegionTier:     store.RegionTier,
		RegisteredAt:   cfg.WindowStart,
	}
	params := Params(store.RegionTier)

	perishable := func(shelfLifeDays int) *models.Product {
		return &models.Product{
			ID:               "PRD0001",
			Name:             "Milk 1L",
			Category:         models.CategoryFreshProduce,
			UnitCost:         80,
			ListPrice:        100,
			IsPerishable:     true,
			AvgShelfLifeDays: shelfLifeDays,
		}
	}

	totalSpoilage := func(product *models.Product) float64 {
		s := newSampler(11)
		var sum float64
		for i := 1; i <= 200; i++ {
			txn, err := sampleTransaction(s, cfg, i, customer, store, product, params)
			require.NoError(t, err)
			require.LessOrEqual(t, txn.SpoilageCost, round2(txn.ProductCost*params.SpoilageRateCap))
			sum += txn.SpoilageCost
		}
		return sum
	}

	shortLife := totalSpoilage(perishable(1))
	longLife := totalSpoilage(perishable(7))
	require.Greater(t, shortLife, longLife)
	require.Positive(t, longLife)
}

func TestSpoilageZeroForNonPerishable(t *testing.T) {
	cfg := DefaultConfig()
	store := &models.Store{
		ID:                  "STR0001",
		RegionTier:          models.TierThree,
		InfrastructureScore: 6.0,
		WarehouseDistanceKm: 25,
	}
	customer := &models.Customer{
		ID:             "CUST000001",
		PrimaryStoreID: store.ID,
		RegionTier:     store.RegionTier,
		RegisteredAt:   cfg.WindowStart,
	}
	product := &models.Product{
		ID:               "PRD0002",
		Name:             "Detergent 1kg",
		Category:         models.CategoryHomeCare,
		UnitCost:         90,
		ListPrice:        120,
		AvgShelfLifeDays: 365,
	}

	s := newSampler(11)
	for i := 1; i <= 50; i++ {
		txn, err := sampleTransaction(s, cfg, i, customer, store, product, Params(store.RegionTier))
		require.NoError(t, err)
		require.Zero(t, txn.SpoilageCost)
	}
}
