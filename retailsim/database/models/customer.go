package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Customer struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID             string    `bun:"customer_id,pk"`
	PrimaryStoreID string    `bun:"primary_store_id,notnull"`
	RegionTier     string    `bun:"region_tier,notnull"`
	Age            int       `bun:"age,notnull"`
	IncomeBracket  string    `bun:"income_bracket,notnull"`
	DigitalScore   float64   `bun:"digital_literacy_score,notnull"`
	RegisteredAt   time.Time `bun:"registration_date,notnull"`

	// Relations
	PrimaryStore *Store `bun:"rel:has-one,join:primary_store_id=store_id"`
}
