package simulation

import (
	"fmt"
	"time"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

const (
	// transactionDays bounds transaction dates to the last year of the window.
	transactionDays = 365

	minQuantity = 1
	maxQuantity = 10
)

// generateTransactions is the core of the simulation. Per transaction it
// samples a customer (frequency-weighted, so repeat buyers exist), derives
// the store and tier from that customer, samples a product with the tier's
// assortment bias, and then derives the full financial and logistics record.
//
// The accounting fields are pure functions of the sampled inputs, and the
// delivery distance, delivery time, logistics cost and spoilage cost all
// hang off one latent distance derived from the store's warehouse distance,
// so every row is internally consistent.
func generateTransactions(
	s *sampler,
	cfg Config,
	stores []*models.Store,
	products []*models.Product,
	customers []*models.Customer,
) ([]*models.Transaction, error) {
	if cfg.Transactions == 0 {
		return []*models.Transaction{}, nil
	}

	storeByID := make(map[string]*models.Store, len(stores))
	for _, st := range stores {
		storeByID[st.ID] = st
	}

	// Repeat-purchase propensity turns into a per-customer sampling weight:
	// the higher the tier's propensity, the heavier the tail of frequent
	// buyers. Weights are drawn once, before any transaction, so the draw
	// order stays fixed.
	weights := make([]float64, len(customers))
	for i, c := range customers {
		weights[i] = 1 + Params(c.RegionTier).RepeatPropensity*s.exp()
	}
	customerCum := cumulativeWeights(weights)

	essentials, premium := splitCatalog(products)

	transactions := make([]*models.Transaction, 0, cfg.Transactions)
	for i := 1; i <= cfg.Transactions; i++ {
		customer := customers[s.pickIndex(customerCum)]
		store, ok := storeByID[customer.PrimaryStoreID]
		if !ok {
			// Structurally impossible: customers are built from the store
			// table. Treat it as a defect, not a recoverable condition.
			return nil, fmt.Errorf("customer %s references unknown store %s", customer.ID, customer.PrimaryStoreID)
		}
		params := Params(customer.RegionTier)

		product := pickProduct(s, params, essentials, premium)

		txn, err := sampleTransaction(s, cfg, i, customer, store, product, params)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, nil
}

// sampleTransaction derives one row, resampling the stochastic inputs
// within a bounded attempt budget whenever a sampled value lands outside
// its domain. No invalid row ever reaches the output table.
func sampleTransaction(
	s *sampler,
	cfg Config,
	seq int,
	customer *models.Customer,
	store *models.Store,
	product *models.Product,
	params TierParams,
) (*models.Transaction, error) {
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		quantity := s.lognormalInt(params.QuantityLogMean, params.QuantityLogStdev, minQuantity, maxQuantity)
		discountPct := s.pickPct(params.Discounts)
		priceFactor := s.uniform(params.PriceFactor)
		unitPrice := round2(product.ListPrice * (1 - discountPct/100) * priceFactor)

		// One latent distance drives delivery distance, delivery time,
		// logistics cost and spoilage, so the four stay consistent.
		distance := round2(clampFloat(store.WarehouseDistanceKm*s.uniform(Range{0.6, 1.4}), params.DeliveryDistanceKm))
		distNorm := 0.0
		if params.DeliveryDistanceKm.Width() > 0 {
			distNorm = (distance - params.DeliveryDistanceKm.Min) / params.DeliveryDistanceKm.Width()
		}
		deliveryTime := round2(clampFloat(
			params.DeliveryTimeHours.Min+params.DeliveryTimeHours.Width()*distNorm*s.uniform(Range{0.8, 1.2}),
			params.DeliveryTimeHours))

		// Logistics cost grows with distance and with poor infrastructure.
		infraPenalty := 1 + params.InfraCostPenalty*(10-store.InfrastructureScore)
		logisticsCost := round2((distance*params.LogisticsRatePerKm + params.LogisticsBaseCost) * infraPenalty)

		productCost := round2(float64(quantity) * product.UnitCost)

		// Spoilage applies only to perishables: it grows with time in
		// transit, shrinks with infrastructure quality, and hits short
		// shelf lives hardest.
		spoilageCost := 0.0
		if product.IsPerishable {
			timeNorm := deliveryTime / params.DeliveryTimeHours.Max
			infraFactor := 0.5 + (10-store.InfrastructureScore)/10
			shelfFactor := perishableShelfLife.Max / float64(product.AvgShelfLifeDays)
			rate := params.SpoilageRateCap * s.float() * timeNorm * infraFactor * shelfFactor
			if rate > params.SpoilageRateCap {
				rate = params.SpoilageRateCap
			}
			spoilageCost = round2(productCost * rate)
		}

		if quantity <= 0 || unitPrice < 0 || productCost < 0 || logisticsCost < 0 || spoilageCost < 0 {
			continue
		}
		if discountPct < 0 || discountPct > 100 {
			continue
		}

		revenue := round2(float64(quantity) * unitPrice)
		totalCost := productCost + logisticsCost + spoilageCost
		margin := revenue - totalCost
		marginPct := 0.0
		if revenue > 0 {
			marginPct = 100 * margin / revenue
		}

		return &models.Transaction{
			ID:                 fmt.Sprintf("TXN%07d", seq),
			Date:               transactionDate(s, cfg, customer),
			CustomerID:         customer.ID,
			ProductID:          product.ID,
			StoreID:            store.ID,
			RegionTier:         customer.RegionTier,
			Quantity:           quantity,
			UnitPrice:          unitPrice,
			Revenue:            revenue,
			ProductCost:        productCost,
			LogisticsCost:      logisticsCost,
			SpoilageCost:       spoilageCost,
			TotalCost:          totalCost,
			Margin:             margin,
			MarginPct:          marginPct,
			DiscountPct:        discountPct,
			DeliveryTimeHours:  deliveryTime,
			DeliveryDistanceKm: distance,
			PaymentMethod:      s.pickString(params.PaymentMethods),
			IsPerishable:       product.IsPerishable,
		}, nil
	}
	return nil, fmt.Errorf("could not sample a valid transaction for customer %s in %d attempts", customer.ID, maxSampleAttempts)
}

// transactionDate places the sale between the customer's registration and
// the window end, at most a year back.
func transactionDate(s *sampler, cfg Config, customer *models.Customer) time.Time {
	sinceRegistration := int(cfg.WindowEnd.Sub(customer.RegisteredAt).Hours() / 24)
	maxBack := transactionDays
	if sinceRegistration < maxBack {
		maxBack = sinceRegistration
	}
	if maxBack < 1 {
		maxBack = 1
	}
	return cfg.WindowEnd.AddDate(0, 0, -s.intBetween(0, maxBack-1))
}

// splitCatalog divides the catalog into essentials and premium
// (Electronics/Fashion) pools for the assortment bias.
func splitCatalog(products []*models.Product) (essentials, premium []*models.Product) {
	for _, p := range products {
		if IsPremiumCategory(p.Category) {
			premium = append(premium, p)
		} else {
			essentials = append(essentials, p)
		}
	}
	return essentials, premium
}

// pickProduct applies the tier's assortment policy: with the tier's premium
// share it samples a discretionary product, otherwise an essential one.
// Either pool may be empty under small catalogs, in which case the other
// serves every draw.
func pickProduct(s *sampler, params TierParams, essentials, premium []*models.Product) *models.Product {
	pool := essentials
	if len(premium) > 0 && (len(essentials) == 0 || s.float() < params.PremiumShare) {
		pool = premium
	}
	return pool[s.intBetween(0, len(pool)-1)]
}
