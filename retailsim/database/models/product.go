package models

import (
	"github.com/uptrace/bun"
)

// Product categories form a closed set; the catalog generator only ever
// emits these values.
const (
	CategoryGroceries     = "Groceries"
	CategoryFreshProduce  = "Fresh Produce"
	CategoryPackagedFoods = "Packaged Foods"
	CategoryPersonalCare  = "Personal Care"
	CategoryHomeCare      = "Home Care"
	CategoryElectronics   = "Electronics"
	CategoryFashion       = "Fashion"
)

// Categories lists the product categories in catalog order, the same way
// Tiers fixes the region-tier order.
var Categories = []string{
	CategoryGroceries, CategoryFreshProduce, CategoryPackagedFoods,
	CategoryPersonalCare, CategoryHomeCare, CategoryElectronics, CategoryFashion,
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID               string  `bun:"product_id,pk"`
	Name             string  `bun:"product_name,notnull"`
	Category         string  `bun:"category,notnull"`
	UnitCost         float64 `bun:"unit_cost,notnull"`
	ListPrice        float64 `bun:"list_price,notnull"`
	TargetMarginPct  float64 `bun:"target_margin_pct,notnull"`
	IsPerishable     bool    `bun:"is_perishable,notnull"`
	AvgShelfLifeDays int     `bun:"avg_shelf_life_days,notnull"`
}
