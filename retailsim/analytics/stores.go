package analytics

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
	"github.com/Darshil562002/retailsim/retailsim/simulation"
)

// highRiskMarginPct marks a store as high risk when its aggregate margin
// falls below it. Matches the threshold the downstream risk model trains on.
const highRiskMarginPct = 10.0

const storeCacheSize = 1024

// StorePerformance aggregates one store's transactions.
type StorePerformance struct {
	StoreID              string
	RegionTier           string
	Transactions         int
	TotalRevenue         float64
	TotalMargin          float64
	MarginPct            float64
	AvgLogisticsCost     float64
	AvgSpoilageCost      float64
	AvgDeliveryTimeHours float64
	PerishableShare      float64
	HighRisk             bool
}

// Service answers per-store performance queries over one dataset. Results
// are cached: the dataset is immutable, so an entry never goes stale.
type Service struct {
	stores  map[string]*models.Store
	byStore map[string][]*models.Transaction
	cache   *lru.Cache
}

func NewService(ds *simulation.Dataset) (*Service, error) {
	cache, err := lru.New(storeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create store performance cache: %w", err)
	}

	stores := make(map[string]*models.Store, len(ds.Stores))
	for _, s := range ds.Stores {
		stores[s.ID] = s
	}
	byStore := make(map[string][]*models.Transaction, len(ds.Stores))
	for _, t := range ds.Transactions {
		byStore[t.StoreID] = append(byStore[t.StoreID], t)
	}

	return &Service{
		stores:  stores,
		byStore: byStore,
		cache:   cache,
	}, nil
}

// StorePerformance computes (or serves from cache) the aggregate for one
// store.
func (s *Service) StorePerformance(storeID string) (*StorePerformance, error) {
	if cached, ok := s.cache.Get(storeID); ok {
		return cached.(*StorePerformance), nil
	}

	store, ok := s.stores[storeID]
	if !ok {
		return nil, fmt.Errorf("unknown store %s", storeID)
	}

	perf := &StorePerformance{
		StoreID:    store.ID,
		RegionTier: store.RegionTier,
	}

	var logistics, spoilage, times []float64
	perishable := 0
	for _, t := range s.byStore[storeID] {
		perf.Transactions++
		perf.TotalRevenue += t.Revenue
		perf.TotalMargin += t.Margin
		logistics = append(logistics, t.LogisticsCost)
		spoilage = append(spoilage, t.SpoilageCost)
		times = append(times, t.DeliveryTimeHours)
		if t.IsPerishable {
			perishable++
		}
	}

	if perf.Transactions > 0 {
		if perf.TotalRevenue > 0 {
			perf.MarginPct = 100 * perf.TotalMargin / perf.TotalRevenue
		}
		perf.AvgLogisticsCost = mean(logistics)
		perf.AvgSpoilageCost = mean(spoilage)
		perf.AvgDeliveryTimeHours = mean(times)
		perf.PerishableShare = float64(perishable) / float64(perf.Transactions)
		perf.HighRisk = perf.MarginPct < highRiskMarginPct
	}

	s.cache.Add(storeID, perf)
	return perf, nil
}

// HighRiskStores lists the stores whose aggregate margin sits below the
// risk threshold, in store order.
func (s *Service) HighRiskStores(ds *simulation.Dataset) ([]*StorePerformance, error) {
	var risky []*StorePerformance
	for _, store := range ds.Stores {
		perf, err := s.StorePerformance(store.ID)
		if err != nil {
			return nil, err
		}
		if perf.Transactions > 0 && perf.HighRisk {
			risky = append(risky, perf)
		}
	}
	return risky, nil
}
