package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"

	"github.com/Darshil562002/retailsim/retailsim/config"
	"github.com/Darshil562002/retailsim/retailsim/database/models"
	"github.com/Darshil562002/retailsim/retailsim/simulation"
)

// TierMarginRow is the per-tier margin summary computed in SQL, used to
// cross-check the in-memory analytics after a load.
type TierMarginRow struct {
	RegionTier   string  `bun:"region_tier"`
	Transactions int     `bun:"transactions"`
	Revenue      float64 `bun:"revenue"`
	Margin       float64 `bun:"margin"`
	AvgMarginPct float64 `bun:"avg_margin_pct"`
}

// DatasetRepository persists a generated dataset and answers the reporting
// queries downstream consumers run against it.
type DatasetRepository interface {
	Load(ctx context.Context, ds *simulation.Dataset) error
	TierMarginSummary(ctx context.Context) ([]TierMarginRow, error)
	RowCounts(ctx context.Context) (map[string]int, error)
}

type datasetRepository struct {
	*BaseRepository
	pool *pgxpool.Pool
}

func NewDatasetRepository(db *bun.DB, pool *pgxpool.Pool) DatasetRepository {
	return &datasetRepository{
		BaseRepository: NewBaseRepository(db),
		pool:           pool,
	}
}

// Load bulk-inserts the five tables in foreign-key order inside a single
// transaction: any failure rolls everything back, so a partial dataset
// never persists. CopyFrom is used throughout; transaction volumes make
// row-by-row inserts impractical.
func (r *datasetRepository) Load(ctx context.Context, ds *simulation.Dataset) error {
	ctx, cancel := r.WithCustomTimeout(ctx, config.BatchQueryTimeout)
	defer cancel()

	start := time.Now()

	loads := []struct {
		table string
		cols  []string
		rows  [][]any
	}{
		{"stores", storeColumns, storeRows(ds.Stores)},
		{"products", productColumns, productRows(ds.Products)},
		{"customers", customerColumns, customerRows(ds.Customers)},
		{"transactions", transactionColumns, transactionRows(ds.Transactions)},
		{"inventory", inventoryColumns, inventoryRows(ds.Inventory)},
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return r.HandleError("load", "dataset", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return r.HandleError("begin", "dataset", err)
	}
	defer tx.Rollback(ctx)

	for _, load := range loads {
		if len(load.rows) == 0 {
			continue
		}
		var loaded int64
		for lo := 0; lo < len(load.rows); lo += config.CopyBatchSize {
			hi := lo + config.CopyBatchSize
			if hi > len(load.rows) {
				hi = len(load.rows)
			}
			n, err := tx.CopyFrom(ctx, pgx.Identifier{load.table}, load.cols, pgx.CopyFromRows(load.rows[lo:hi]))
			if err != nil {
				return r.HandleError("copy_from", load.table, err)
			}
			loaded += n
		}
		slog.Info("Table loaded",
			slog.String("type", "db"),
			slog.String("table", load.table),
			slog.Int64("rows", loaded))
	}

	if err := tx.Commit(ctx); err != nil {
		return r.HandleError("commit", "dataset", err)
	}

	slog.Info("Dataset load complete",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(start)))
	return nil
}

// TierMarginSummary aggregates margin by tier straight from SQL.
func (r *datasetRepository) TierMarginSummary(ctx context.Context) ([]TierMarginRow, error) {
	var rows []TierMarginRow
	err := r.SelectWithTimeout(ctx, "tier_margin_summary", "transactions", func(ctx context.Context) error {
		return r.GetDB().NewSelect().
			Model((*models.Transaction)(nil)).
			ColumnExpr("region_tier").
			ColumnExpr("count(*) AS transactions").
			ColumnExpr("sum(revenue) AS revenue").
			ColumnExpr("sum(margin) AS margin").
			ColumnExpr("avg(margin_pct) AS avg_margin_pct").
			GroupExpr("region_tier").
			OrderExpr("region_tier").
			Scan(ctx, &rows)
	})
	return rows, err
}

// RowCounts reports per-table row counts after a load.
func (r *datasetRepository) RowCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, 5)
	for table, model := range map[string]interface{}{
		"stores":       (*models.Store)(nil),
		"products":     (*models.Product)(nil),
		"customers":    (*models.Customer)(nil),
		"transactions": (*models.Transaction)(nil),
		"inventory":    (*models.Inventory)(nil),
	} {
		n, err := r.Count(ctx, table, r.GetDB().NewSelect().Model(model))
		if err != nil {
			return nil, r.HandleErrorWithID("row_counts", "dataset", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

var storeColumns = []string{
	"store_id", "store_name", "region_tier", "city", "state",
	"city_population", "infrastructure_score", "warehouse_distance_km", "opening_date",
}

func storeRows(stores []*models.Store) [][]any {
	rows := make([][]any, len(stores))
	for i, s := range stores {
		rows[i] = []any{
			s.ID, s.Name, s.RegionTier, s.City, s.State,
			s.CityPopulation, s.InfrastructureScore, s.WarehouseDistanceKm, s.OpeningDate,
		}
	}
	return rows
}

var productColumns = []string{
	"product_id", "product_name", "category", "unit_cost", "list_price",
	"target_margin_pct", "is_perishable", "avg_shelf_life_days",
}

func productRows(products []*models.Product) [][]any {
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{
			p.ID, p.Name, p.Category, p.UnitCost, p.ListPrice,
			p.TargetMarginPct, p.IsPerishable, p.AvgShelfLifeDays,
		}
	}
	return rows
}

var customerColumns = []string{
	"customer_id", "primary_store_id", "region_tier", "age",
	"income_bracket", "digital_literacy_score", "registration_date",
}

func customerRows(customers []*models.Customer) [][]any {
	rows := make([][]any, len(customers))
	for i, c := range customers {
		rows[i] = []any{
			c.ID, c.PrimaryStoreID, c.RegionTier, c.Age,
			c.IncomeBracket, c.DigitalScore, c.RegisteredAt,
		}
	}
	return rows
}

var transactionColumns = []string{
	"transaction_id", "transaction_date", "customer_id", "product_id", "store_id",
	"region_tier", "quantity", "unit_price", "revenue", "product_cost",
	"logistics_cost", "spoilage_cost", "total_cost", "margin", "margin_pct",
	"discount_pct", "delivery_time_hours", "delivery_distance_km",
	"payment_method", "is_perishable",
}

func transactionRows(transactions []*models.Transaction) [][]any {
	rows := make([][]any, len(transactions))
	for i, t := range transactions {
		rows[i] = []any{
			t.ID, t.Date, t.CustomerID, t.ProductID, t.StoreID,
			t.RegionTier, t.Quantity, t.UnitPrice, t.Revenue, t.ProductCost,
			t.LogisticsCost, t.SpoilageCost, t.TotalCost, t.Margin, t.MarginPct,
			t.DiscountPct, t.DeliveryTimeHours, t.DeliveryDistanceKm,
			t.PaymentMethod, t.IsPerishable,
		}
	}
	return rows
}

var inventoryColumns = []string{
	"inventory_id", "store_id", "product_id", "current_stock", "reorder_point",
	"stockout_days_last_month", "avg_daily_sales", "last_restock_date",
}

func inventoryRows(inventory []*models.Inventory) [][]any {
	rows := make([][]any, len(inventory))
	for i, inv := range inventory {
		rows[i] = []any{
			inv.ID, inv.StoreID, inv.ProductID, inv.CurrentStock, inv.ReorderPoint,
			inv.StockoutDaysLastMonth, inv.AvgDailySales, inv.LastRestockDate,
		}
	}
	return rows
}
