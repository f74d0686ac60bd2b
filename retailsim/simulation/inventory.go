package simulation

import (
	"fmt"
	"math"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

const restockMaxDaysAgo = 30

type pairKey struct {
	StoreID   string
	ProductID string
}

// generateInventory derives one record per stocked (store, product) pair.
// Pair uniqueness is structural: the generator walks stores in store order
// and products in catalog order, emitting each pair at most once. Tier 3
// stores skip a share of Electronics/Fashion pairs, reflecting their
// narrower assortment.
//
// avg_daily_sales is calibrated from the transaction volume actually
// observed for the pair; pairs with no sales fall back to a stock-derived
// estimate.
func generateInventory(
	s *sampler,
	cfg Config,
	stores []*models.Store,
	products []*models.Product,
	transactions []*models.Transaction,
) []*models.Inventory {
	volume := make(map[pairKey]int, len(transactions))
	for _, t := range transactions {
		volume[pairKey{t.StoreID, t.ProductID}] += t.Quantity
	}

	salesDays := transactionDays
	if window := int(cfg.WindowEnd.Sub(cfg.WindowStart).Hours() / 24); window < salesDays {
		salesDays = window
	}
	if salesDays < 1 {
		salesDays = 1
	}

	inventory := make([]*models.Inventory, 0, len(stores)*len(products))
	id := 1
	for _, store := range stores {
		params := Params(store.RegionTier)
		for _, product := range products {
			if IsPremiumCategory(product.Category) && s.float() < params.PremiumSkipShare {
				continue
			}

			stock := s.intBetween(int(params.StockUnits.Min), int(params.StockUnits.Max))

			avgDaily := float64(stock) / 30
			if sold, ok := volume[pairKey{store.ID, product.ID}]; ok {
				avgDaily = float64(sold) / float64(salesDays)
			}

			stockout := s.intBetween(0, params.StockoutMaxDays)

			inventory = append(inventory, &models.Inventory{
				ID:                    fmt.Sprintf("INV%06d", id),
				StoreID:               store.ID,
				ProductID:             product.ID,
				CurrentStock:          stock,
				ReorderPoint:          int(math.Ceil(float64(stock) * params.ReorderFraction)),
				StockoutDaysLastMonth: stockout,
				AvgDailySales:         round2(avgDaily),
				LastRestockDate:       cfg.WindowEnd.AddDate(0, 0, -s.intBetween(1, restockMaxDaysAgo)),
			})
			id++
		}
	}
	return inventory
}
