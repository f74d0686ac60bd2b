package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Payment methods sampled from tier-conditioned categorical distributions.
const (
	PaymentUPI    = "UPI"
	PaymentCard   = "Card"
	PaymentWallet = "Wallet"
	PaymentCOD    = "COD"
)

// Transaction is a single sale. The accounting fields are pure derivations:
//
//	total_cost = product_cost + logistics_cost + spoilage_cost
//	margin     = revenue - total_cost
//	margin_pct = 100 * margin / revenue  (0 when revenue is 0)
//
// and spoilage_cost is 0 whenever the product is not perishable. Rows are
// immutable once generated.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID                 string    `bun:"transaction_id,pk"`
	Date               time.Time `bun:"transaction_date,notnull"`
	CustomerID         string    `bun:"customer_id,notnull"`
	ProductID          string    `bun:"product_id,notnull"`
	StoreID            string    `bun:"store_id,notnull"`
	RegionTier         string    `bun:"region_tier,notnull"`
	Quantity           int       `bun:"quantity,notnull"`
	UnitPrice          float64   `bun:"unit_price,notnull"`
	Revenue            float64   `bun:"revenue,notnull"`
	ProductCost        float64   `bun:"product_cost,notnull"`
	LogisticsCost      float64   `bun:"logistics_cost,notnull"`
	SpoilageCost       float64   `bun:"spoilage_cost,notnull"`
	TotalCost          float64   `bun:"total_cost,notnull"`
	Margin             float64   `bun:"margin,notnull"`
	MarginPct          float64   `bun:"margin_pct,notnull"`
	DiscountPct        float64   `bun:"discount_pct,notnull"`
	DeliveryTimeHours  float64   `bun:"delivery_time_hours,notnull"`
	DeliveryDistanceKm float64   `bun:"delivery_distance_km,notnull"`
	PaymentMethod      string    `bun:"payment_method,notnull"`
	IsPerishable       bool      `bun:"is_perishable,notnull"`

	// Relations
	Customer *Customer `bun:"rel:has-one,join:customer_id=customer_id"`
	Product  *Product  `bun:"rel:has-one,join:product_id=product_id"`
	Store    *Store    `bun:"rel:has-one,join:store_id=store_id"`
}
