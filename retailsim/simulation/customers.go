package simulation

import (
	"fmt"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

const (
	registrationDays = 450
	minCustomerAge   = 18
	maxCustomerAge   = 70
)

// generateCustomers produces the customer population tier by tier. The
// primary store is sampled uniformly from the stores of the matching tier
// and the customer's region tier is copied from it, never sampled on its
// own, so customer and store can never disagree.
func generateCustomers(s *sampler, cfg Config, stores []*models.Store) []*models.Customer {
	byTier := make(map[string][]*models.Store, len(models.Tiers))
	for _, st := range stores {
		byTier[st.RegionTier] = append(byTier[st.RegionTier], st)
	}

	regDays := registrationDays
	if window := int(cfg.WindowEnd.Sub(cfg.WindowStart).Hours() / 24); window < regDays {
		regDays = window
	}

	customers := make([]*models.Customer, 0, cfg.MetroCustomers+cfg.Tier2Customers+cfg.Tier3Customers)
	id := 1
	for _, tier := range models.Tiers {
		params := Params(tier)
		tierStores := byTier[tier]
		for i := 0; i < cfg.customerCount(tier); i++ {
			store := tierStores[s.intBetween(0, len(tierStores)-1)]

			age := int(s.normal(params.AgeMean, params.AgeStdDev))
			if age < minCustomerAge {
				age = minCustomerAge
			}
			if age > maxCustomerAge {
				age = maxCustomerAge
			}

			customers = append(customers, &models.Customer{
				ID:             fmt.Sprintf("CUST%06d", id),
				PrimaryStoreID: store.ID,
				RegionTier:     store.RegionTier,
				Age:            age,
				IncomeBracket:  s.pickString(params.IncomeBrackets),
				DigitalScore:   round2(s.uniform(params.DigitalLiteracy)),
				RegisteredAt:   cfg.WindowStart.AddDate(0, 0, s.intBetween(0, regDays-1)),
			})
			id++
		}
	}
	return customers
}
