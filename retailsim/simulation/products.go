package simulation

import (
	"fmt"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

// maxSampleAttempts bounds every reject-and-resample loop. Exhausting it
// means the sampling parameters themselves are broken, which is fatal.
const maxSampleAttempts = 100

// Shelf life ranges in days.
var (
	perishableShelfLife    = Range{1, 7}
	nonPerishableShelfLife = Range{180, 730}
)

// generateProducts builds the fixed catalog. The total SKU count is spread
// over the categories in catalog order; item names cycle their pool with a
// variant number once exhausted. The list price is derived from the unit
// cost and the target margin, so list_price > unit_cost holds by
// construction, but each SKU is still validated and resampled within a
// bounded attempt budget before it is admitted.
func generateProducts(s *sampler, cfg Config) ([]*models.Product, error) {
	counts := splitSKUs(cfg.Products, len(catalogSpecs))

	products := make([]*models.Product, 0, cfg.Products)
	id := 1
	for ci, spec := range catalogSpecs {
		for i := 0; i < counts[ci]; i++ {
			product, err := sampleProduct(s, spec, id, i)
			if err != nil {
				return nil, err
			}
			products = append(products, product)
			id++
		}
	}
	return products, nil
}

func sampleProduct(s *sampler, spec categorySpec, id, slot int) (*models.Product, error) {
	name := spec.Items[slot%len(spec.Items)]
	if variant := slot / len(spec.Items); variant > 0 {
		name = fmt.Sprintf("%s Variant %d", name, variant+1)
	}

	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		cost := round2(s.uniform(spec.CostRange))
		marginPct := round2(s.uniform(spec.MarginRange))
		listPrice := round2(cost / (1 - marginPct/100))
		if cost <= 0 || listPrice <= cost {
			continue
		}

		shelfRange := nonPerishableShelfLife
		if spec.Perishable {
			shelfRange = perishableShelfLife
		}

		return &models.Product{
			ID:               fmt.Sprintf("PRD%04d", id),
			Name:             name,
			Category:         spec.Name,
			UnitCost:         cost,
			ListPrice:        listPrice,
			TargetMarginPct:  marginPct,
			IsPerishable:     spec.Perishable,
			AvgShelfLifeDays: s.intBetween(int(shelfRange.Min), int(shelfRange.Max)),
		}, nil
	}
	return nil, fmt.Errorf("could not sample a valid %s SKU in %d attempts", spec.Name, maxSampleAttempts)
}

// splitSKUs spreads a total over n categories, front-loading the remainder
// so the split is deterministic.
func splitSKUs(total, n int) []int {
	counts := make([]int, n)
	base := total / n
	rem := total % n
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}
