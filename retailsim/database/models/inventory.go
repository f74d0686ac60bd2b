package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Inventory holds at most one record per (store_id, product_id) pair.
type Inventory struct {
	bun.BaseModel `bun:"table:inventory,alias:inv"`

	ID                    string    `bun:"inventory_id,pk"`
	StoreID               string    `bun:"store_id,notnull"`
	ProductID             string    `bun:"product_id,notnull"`
	CurrentStock          int       `bun:"current_stock,notnull"`
	ReorderPoint          int       `bun:"reorder_point,notnull"`
	StockoutDaysLastMonth int       `bun:"stockout_days_last_month,notnull"`
	AvgDailySales         float64   `bun:"avg_daily_sales,notnull"`
	LastRestockDate       time.Time `bun:"last_restock_date,notnull"`

	// Relations
	Store   *Store   `bun:"rel:has-one,join:store_id=store_id"`
	Product *Product `bun:"rel:has-one,join:product_id=product_id"`
}
