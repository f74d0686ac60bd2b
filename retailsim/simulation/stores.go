package simulation

import (
	"fmt"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

// storeOpeningDays bounds opening dates to the first year of the window.
const storeOpeningDays = 365

// generateStores produces the store population tier by tier. When a tier
// requests more stores than its city pool holds, cities are reused in
// round-robin order and the store name carries a per-city sequence number;
// reuse is a documented fallback, not an error.
func generateStores(s *sampler, cfg Config) []*models.Store {
	stores := make([]*models.Store, 0, cfg.MetroStores+cfg.Tier2Stores+cfg.Tier3Stores)

	openingDays := storeOpeningDays
	if window := int(cfg.WindowEnd.Sub(cfg.WindowStart).Hours() / 24); window < openingDays {
		openingDays = window
	}

	id := 1
	for _, tier := range models.Tiers {
		params := Params(tier)
		pool := cityPools[tier]
		for i := 0; i < cfg.storeCount(tier); i++ {
			city := pool[i%len(pool)]

			// The city carries the base infrastructure score; individual
			// stores jitter around it inside the tier band.
			infra := clampFloat(city.InfraScore+s.uniform(Range{-0.25, 0.25}), params.Infrastructure)

			stores = append(stores, &models.Store{
				ID:                  fmt.Sprintf("STR%04d", id),
				Name:                fmt.Sprintf("%s Store %d", city.Name, i/len(pool)+1),
				RegionTier:          tier,
				City:                city.Name,
				State:               city.State,
				CityPopulation:      city.Population,
				InfrastructureScore: round2(infra),
				WarehouseDistanceKm: round2(s.uniform(params.WarehouseDistanceKm)),
				OpeningDate:         cfg.WindowStart.AddDate(0, 0, s.intBetween(0, openingDays-1)),
			})
			id++
		}
	}
	return stores
}
