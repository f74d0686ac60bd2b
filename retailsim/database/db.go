package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	"log/slog"

	"github.com/Darshil562002/retailsim/retailsim/config"
	"github.com/Darshil562002/retailsim/retailsim/database/models"
	"github.com/uptrace/bun"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// DB carries both connections: pgxpool for bulk loads (CopyFrom) and raw
// SQL, bun for model-driven DDL and queries.
type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	// Probe reachability before handing the DSN to the pool, so a dead
	// server fails fast with a clear error.
	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	var conn net.Conn
	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, config.NetworkDialTimeout)
		if err == nil {
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}
	conn.Close()

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(cfg)}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(cfg DBConfig) *bun.DB {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) GetPool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgxpool ping failed: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	return nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", sql),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Info("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", sql),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

func (db *DB) QueryWithLog(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	start := time.Now()
	rows, err := db.pool.Query(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "query"),
			slog.String("query", sql),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return rows, err
	}

	slog.Info("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "query"),
		slog.String("query", sql),
		slog.Duration("took", duration),
	)
	return rows, nil
}

// InitializeSchema creates the five dataset tables, their foreign keys, the
// check constraints mirroring the generator's invariants, and the reporting
// indexes. Tables are created in dependency order.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.Store)(nil),
		(*models.Product)(nil),
		(*models.Customer)(nil),
		(*models.Transaction)(nil),
		(*models.Inventory)(nil),
	}

	for _, model := range tables {
		query := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists()

		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	constraints := []string{
		// Referential integrity
		`ALTER TABLE customers DROP CONSTRAINT IF EXISTS fk_customers_store,
		 ADD CONSTRAINT fk_customers_store FOREIGN KEY (primary_store_id) REFERENCES stores(store_id);`,
		`ALTER TABLE transactions DROP CONSTRAINT IF EXISTS fk_transactions_customer,
		 ADD CONSTRAINT fk_transactions_customer FOREIGN KEY (customer_id) REFERENCES customers(customer_id);`,
		`ALTER TABLE transactions DROP CONSTRAINT IF EXISTS fk_transactions_product,
		 ADD CONSTRAINT fk_transactions_product FOREIGN KEY (product_id) REFERENCES products(product_id);`,
		`ALTER TABLE transactions DROP CONSTRAINT IF EXISTS fk_transactions_store,
		 ADD CONSTRAINT fk_transactions_store FOREIGN KEY (store_id) REFERENCES stores(store_id);`,
		`ALTER TABLE inventory DROP CONSTRAINT IF EXISTS fk_inventory_store,
		 ADD CONSTRAINT fk_inventory_store FOREIGN KEY (store_id) REFERENCES stores(store_id);`,
		`ALTER TABLE inventory DROP CONSTRAINT IF EXISTS fk_inventory_product,
		 ADD CONSTRAINT fk_inventory_product FOREIGN KEY (product_id) REFERENCES products(product_id);`,
		// One inventory row per (store, product)
		`ALTER TABLE inventory DROP CONSTRAINT IF EXISTS uq_inventory_store_product,
		 ADD CONSTRAINT uq_inventory_store_product UNIQUE (store_id, product_id);`,
		// Row-level domains mirrored from the generator
		`ALTER TABLE transactions DROP CONSTRAINT IF EXISTS chk_transactions_quantity,
		 ADD CONSTRAINT chk_transactions_quantity CHECK (quantity > 0);`,
		`ALTER TABLE transactions DROP CONSTRAINT IF EXISTS chk_transactions_costs,
		 ADD CONSTRAINT chk_transactions_costs CHECK (revenue >= 0 AND product_cost >= 0 AND logistics_cost >= 0 AND spoilage_cost >= 0);`,
		`ALTER TABLE transactions DROP CONSTRAINT IF EXISTS chk_transactions_discount,
		 ADD CONSTRAINT chk_transactions_discount CHECK (discount_pct >= 0 AND discount_pct <= 100);`,
		`ALTER TABLE inventory DROP CONSTRAINT IF EXISTS chk_inventory_levels,
		 ADD CONSTRAINT chk_inventory_levels CHECK (current_stock >= 0 AND reorder_point >= 0 AND stockout_days_last_month >= 0 AND avg_daily_sales >= 0);`,
	}
	for _, ddl := range constraints {
		if _, err := db.ExecWithLog(ctx, ddl); err != nil {
			return fmt.Errorf("failed to add constraint: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_stores_region_tier ON stores(region_tier);",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);",
		"CREATE INDEX IF NOT EXISTS idx_customers_store ON customers(primary_store_id);",
		"CREATE INDEX IF NOT EXISTS idx_customers_region_tier ON customers(region_tier);",
		"CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id);",
		"CREATE INDEX IF NOT EXISTS idx_transactions_store ON transactions(store_id);",
		"CREATE INDEX IF NOT EXISTS idx_transactions_product ON transactions(product_id);",
		"CREATE INDEX IF NOT EXISTS idx_transactions_region_date ON transactions(region_tier, transaction_date);",
		"CREATE INDEX IF NOT EXISTS idx_transactions_margin ON transactions(region_tier, margin_pct);",
		"CREATE INDEX IF NOT EXISTS idx_inventory_store_product ON inventory(store_id, product_id);",
	}
	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// ResetTables truncates the dataset tables so a new run starts clean.
// A run either loads a complete dataset or nothing.
func (db *DB) ResetTables(ctx context.Context) error {
	stmt := `TRUNCATE TABLE "inventory", "transactions", "customers", "products", "stores" RESTART IDENTITY CASCADE;`
	if _, err := db.ExecWithLog(ctx, stmt); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	slog.Info("Dataset tables truncated", slog.String("type", "db"))
	return nil
}
