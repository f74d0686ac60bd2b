package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Region tiers used across the whole dataset. A store's tier is fixed at
// creation and every dependent entity copies it from the store.
const (
	TierMetro = "Metro"
	TierTwo   = "Tier 2"
	TierThree = "Tier 3"
)

// Tiers lists the region tiers in their canonical order (best to weakest
// infrastructure). Generation and reporting both iterate this slice instead
// of a map so that output order is stable.
var Tiers = []string{TierMetro, TierTwo, TierThree}

type Store struct {
	bun.BaseModel `bun:"table:stores,alias:s"`

	ID                  string    `bun:"store_id,pk"`
	Name                string    `bun:"store_name,notnull"`
	RegionTier          string    `bun:"region_tier,notnull"`
	City                string    `bun:"city,notnull"`
	State               string    `bun:"state,notnull"`
	CityPopulation      int64     `bun:"city_population,notnull"`
	InfrastructureScore float64   `bun:"infrastructure_score,notnull"`
	WarehouseDistanceKm float64   `bun:"warehouse_distance_km,notnull"`
	OpeningDate         time.Time `bun:"opening_date,notnull"`
}
