package simulation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Darshil562002/retailsim/retailsim/database/models"
)

// Config is the full external control surface of a run: entity counts,
// the historical window, and the seed. Everything else is derived.
type Config struct {
	Seed int64 `toml:"seed"`

	MetroStores int `toml:"metro_stores"`
	Tier2Stores int `toml:"tier2_stores"`
	Tier3Stores int `toml:"tier3_stores"`

	Products int `toml:"products"`

	MetroCustomers int `toml:"metro_customers"`
	Tier2Customers int `toml:"tier2_customers"`
	Tier3Customers int `toml:"tier3_customers"`

	Transactions int `toml:"transactions"`

	// WindowStart/WindowEnd bound every generated date: store openings fall
	// in the first year of the window, registrations in the first 450 days,
	// transactions in the last year before WindowEnd.
	WindowStart time.Time `toml:"window_start"`
	WindowEnd   time.Time `toml:"window_end"`
}

// DefaultConfig mirrors the dataset the analysis notebooks were built on.
func DefaultConfig() Config {
	return Config{
		Seed:           42,
		MetroStores:    40,
		Tier2Stores:    45,
		Tier3Stores:    35,
		Products:       39,
		MetroCustomers: 8250,
		Tier2Customers: 4500,
		Tier3Customers: 2250,
		Transactions:   50000,
		WindowStart:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:      time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
	}
}

// SplitCustomers distributes a total customer count over the tiers using
// the observed 55/30/15 population shares, keeping the exact total.
func SplitCustomers(total int) (metro, tier2, tier3 int) {
	metro = total * 55 / 100
	tier2 = total * 30 / 100
	tier3 = total - metro - tier2
	return metro, tier2, tier3
}

func (c Config) storeCount(tier string) int {
	switch tier {
	case models.TierMetro:
		return c.MetroStores
	case models.TierTwo:
		return c.Tier2Stores
	case models.TierThree:
		return c.Tier3Stores
	}
	return 0
}

func (c Config) customerCount(tier string) int {
	switch tier {
	case models.TierMetro:
		return c.MetroCustomers
	case models.TierTwo:
		return c.Tier2Customers
	case models.TierThree:
		return c.Tier3Customers
	}
	return 0
}

// Validate surfaces configuration errors before any table is generated, so
// a bad run never leaves a partial dataset behind.
func (c Config) Validate() error {
	for _, tier := range models.Tiers {
		if c.storeCount(tier) < 0 {
			return fmt.Errorf("invalid config: negative store count for %s", tier)
		}
		if c.customerCount(tier) < 0 {
			return fmt.Errorf("invalid config: negative customer count for %s", tier)
		}
		if c.customerCount(tier) > 0 && c.storeCount(tier) == 0 {
			return fmt.Errorf("invalid config: %d %s customers requested but no %s stores", c.customerCount(tier), tier, tier)
		}
	}
	if c.Products < 0 {
		return fmt.Errorf("invalid config: negative product count")
	}
	if c.Transactions < 0 {
		return fmt.Errorf("invalid config: negative transaction count")
	}
	if c.Transactions > 0 {
		if c.MetroCustomers+c.Tier2Customers+c.Tier3Customers == 0 {
			return fmt.Errorf("invalid config: %d transactions requested but no customers", c.Transactions)
		}
		if c.Products == 0 {
			return fmt.Errorf("invalid config: %d transactions requested but no products", c.Transactions)
		}
	}
	if !c.WindowEnd.After(c.WindowStart) {
		return fmt.Errorf("invalid config: window end %s is not after window start %s",
			c.WindowEnd.Format(time.DateOnly), c.WindowStart.Format(time.DateOnly))
	}
	return nil
}

// Dataset holds the five generated tables. Once Run returns, the dataset is
// read-only: downstream consumers (persistence, analytics, export) never
// mutate it.
type Dataset struct {
	Stores       []*models.Store
	Products     []*models.Product
	Customers    []*models.Customer
	Transactions []*models.Transaction
	Inventory    []*models.Inventory
}

// Engine generates the dataset in dependency order. Generation is
// single-threaded on purpose: the draw sequence defines the output, and a
// run with the same seed and config must reproduce it byte for byte.
type Engine struct {
	cfg Config
	s   *sampler
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg: cfg,
		s:   newSampler(cfg.Seed),
	}, nil
}

// Run materializes all five tables. Tables are produced strictly in
// dependency order; each generator only reads tables that are already
// complete.
func (e *Engine) Run() (*Dataset, error) {
	start := time.Now()
	slog.Info("Starting dataset generation",
		slog.String("type", "gen"),
		slog.Int64("seed", e.cfg.Seed))

	stores := generateStores(e.s, e.cfg)
	slog.Info("Stores generated", slog.String("type", "gen"), slog.Int("count", len(stores)))

	products, err := generateProducts(e.s, e.cfg)
	if err != nil {
		return nil, fmt.Errorf("product catalog generation failed: %w", err)
	}
	slog.Info("Product catalog generated", slog.String("type", "gen"), slog.Int("count", len(products)))

	customers := generateCustomers(e.s, e.cfg, stores)
	slog.Info("Customers generated", slog.String("type", "gen"), slog.Int("count", len(customers)))

	transactions, err := generateTransactions(e.s, e.cfg, stores, products, customers)
	if err != nil {
		return nil, fmt.Errorf("transaction generation failed: %w", err)
	}
	slog.Info("Transactions generated", slog.String("type", "gen"), slog.Int("count", len(transactions)))

	inventory := generateInventory(e.s, e.cfg, stores, products, transactions)
	slog.Info("Inventory generated", slog.String("type", "gen"), slog.Int("count", len(inventory)))

	slog.Info("Dataset generation complete",
		slog.String("type", "gen"),
		slog.Duration("took", time.Since(start)))

	return &Dataset{
		Stores:       stores,
		Products:     products,
		Customers:    customers,
		Transactions: transactions,
		Inventory:    inventory,
	}, nil
}
