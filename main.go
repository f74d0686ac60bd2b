package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Darshil562002/retailsim/retailsim"
	"github.com/Darshil562002/retailsim/retailsim/analytics"
	"github.com/Darshil562002/retailsim/retailsim/config"
	"github.com/Darshil562002/retailsim/retailsim/database"
	"github.com/Darshil562002/retailsim/retailsim/database/repositories"
	"github.com/Darshil562002/retailsim/retailsim/logger"
	"github.com/Darshil562002/retailsim/retailsim/services"
	"github.com/Darshil562002/retailsim/retailsim/simulation"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Initialize custom logger
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting RetailSim dataset generator",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldLoadDB := flag.Bool("load-db", false, "Whether to load the dataset into Postgres")
	shouldExportCSV := flag.Bool("export-csv", false, "Whether to upload CSV artifacts to Spaces")
	shouldExportMongo := flag.Bool("export-mongo", false, "Whether to mirror the dataset into MongoDB")
	seedOverride := flag.Int64("seed", 0, "Override the configured random seed (0 keeps the config value)")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := retailsim.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	if *seedOverride != 0 {
		cfg.Simulation.Seed = *seedOverride
	}
	slog.Info("Configuration loaded successfully",
		slog.Int64("seed", cfg.Simulation.Seed),
		slog.Int("transactions", cfg.Simulation.Transactions))

	engine, err := simulation.NewEngine(cfg.Simulation)
	if err != nil {
		slog.Error("Invalid simulation configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	dataset, err := engine.Run()
	if err != nil {
		slog.Error("Dataset generation failed", slog.Any("error", err))
		os.Exit(-1)
	}

	report := analytics.Summarize(dataset)
	fmt.Print(report.Format())
	for _, row := range analytics.SummarizeCategories(dataset) {
		slog.Debug("Category performance",
			slog.String("type", "sys"),
			slog.String("tier", row.Tier),
			slog.String("category", row.Category),
			slog.Int("transactions", row.Transactions),
			slog.Float64("margin_pct", row.MarginPct))
	}
	for _, insight := range analytics.Insights(report) {
		logger.LogSystem(insight)
	}

	if *shouldLoadDB {
		if err := loadPostgres(cfg, dataset); err != nil {
			slog.Error("Postgres load failed", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	if *shouldExportCSV {
		if err := exportCSV(cfg, dataset); err != nil {
			slog.Error("CSV export failed", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	if *shouldExportMongo {
		if err := exportMongo(cfg, dataset); err != nil {
			slog.Error("Mongo export failed", slog.Any("error", err))
			os.Exit(-1)
		}
	}

	slog.Info("Run complete")
}

func loadPostgres(cfg *retailsim.Config, dataset *simulation.Dataset) error {
	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), config.BatchQueryTimeout)
	defer cancel()

	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if err := db.InitializeSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	if err := db.ResetTables(ctx); err != nil {
		return err
	}

	repo := repositories.NewDatasetRepository(db.BunDB(), db.GetPool())
	if err := repo.Load(ctx, dataset); err != nil {
		return err
	}

	counts, err := repo.RowCounts(ctx)
	if err != nil {
		return err
	}
	slog.Info("Dataset persisted",
		slog.String("type", "db"),
		slog.Int("stores", counts["stores"]),
		slog.Int("products", counts["products"]),
		slog.Int("customers", counts["customers"]),
		slog.Int("transactions", counts["transactions"]),
		slog.Int("inventory", counts["inventory"]))

	// Cross-check: the SQL aggregates must match what the in-memory report
	// already printed.
	summary, err := repo.TierMarginSummary(ctx)
	if err != nil {
		return err
	}
	for _, row := range summary {
		slog.Info("Tier margin verified",
			slog.String("type", "db"),
			slog.String("tier", row.RegionTier),
			slog.Int("transactions", row.Transactions),
			slog.Float64("avg_margin_pct", row.AvgMarginPct))
	}
	return nil
}

func exportCSV(cfg *retailsim.Config, dataset *simulation.Dataset) error {
	spaces, err := services.NewSpacesService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.Prefix,
	)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ExportTimeout)
	defer cancel()

	if err := services.NewCSVExporter(spaces).Export(ctx, dataset); err != nil {
		return err
	}

	for _, object := range []string{
		config.StoresObject, config.ProductsObject, config.CustomersObject,
		config.TransactionsObject, config.InventoryObject,
	} {
		logger.LogSystem("Artifact available", slog.String("url", spaces.GetObjectURL(object)))
	}
	return nil
}

func exportMongo(cfg *retailsim.Config, dataset *simulation.Dataset) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.ExportTimeout)
	defer cancel()

	exporter, err := services.NewMongoExporter(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer exporter.Close(ctx)

	return exporter.Export(ctx, dataset)
}
