package simulation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateProductsCatalog(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Products = 39

	products, err := generateProducts(newSampler(cfg.Seed), cfg)
	require.NoError(t, err)
	require.Len(t, products, 39)

	specByName := make(map[string]categorySpec, len(catalogSpecs))
	for _, spec := range catalogSpecs {
		specByName[spec.Name] = spec
	}

	for _, p := range products {
		spec, ok := specByName[p.Category]
		require.True(t, ok, "unknown category %s", p.Category)

		require.Positive(t, p.UnitCost, p.ID)
		require.Greater(t, p.ListPrice, p.UnitCost, p.ID)
		inRange(t, p.UnitCost, spec.CostRange, p.ID)
		inRange(t, p.TargetMarginPct, spec.MarginRange, p.ID)

		// The list price encodes the target margin exactly.
		require.InDelta(t, p.UnitCost/(1-p.TargetMarginPct/100), p.ListPrice, rangeDelta, p.ID)

		require.Equal(t, spec.Perishable, p.IsPerishable, p.ID)
		shelf := nonPerishableShelfLife
		if p.IsPerishable {
			shelf = perishableShelfLife
		}
		require.GreaterOrEqual(t, p.AvgShelfLifeDays, int(shelf.Min), p.ID)
		require.LessOrEqual(t, p.AvgShelfLifeDays, int(shelf.Max), p.ID)
	}
}

func TestGenerateProductsCyclesItemNames(t *testing.T) {
	cfg := DefaultConfig()
	// Far more SKUs than the item pools hold, forcing variant names.
	cfg.Products = 200

	products, err := generateProducts(newSampler(1), cfg)
	require.NoError(t, err)
	require.Len(t, products, 200)

	names := make(map[string]int, len(products))
	variants := 0
	for _, p := range products {
		names[p.Category+"/"+p.Name]++
		if p.ID == "" {
			t.Fatalf("product without ID")
		}
	}
	for name, n := range names {
		require.Equal(t, 1, n, "duplicate product name %s", name)
	}
	for _, p := range products {
		if strings.Contains(p.Name, " Variant ") {
			variants++
		}
	}
	require.Positive(t, variants)
}

func TestSplitSKUs(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{39, 7, []int{6, 6, 6, 6, 5, 5, 5}},
		{7, 7, []int{1, 1, 1, 1, 1, 1, 1}},
		{3, 7, []int{1, 1, 1, 0, 0, 0, 0}},
		{0, 7, []int{0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_over_%d", tt.total, tt.n), func(t *testing.T) {
			got := splitSKUs(tt.total, tt.n)
			require.Equal(t, tt.want, got)

			sum := 0
			for _, c := range got {
				sum += c
			}
			require.Equal(t, tt.total, sum)
		})
	}
}

func TestPremiumCategories(t *testing.T) {
	require.True(t, IsPremiumCategory("Electronics"))
	require.True(t, IsPremiumCategory("Fashion"))
	require.False(t, IsPremiumCategory("Groceries"))
	require.False(t, IsPremiumCategory("Fresh Produce"))
}
