package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Darshil562002/retailsim/retailsim/config"
	"github.com/Darshil562002/retailsim/retailsim/simulation"
)

const csvContentType = "text/csv"

// CSVExporter renders the five tables as CSV and ships them to Spaces.
// Uploads run concurrently; the CSV bytes themselves are built from the
// already-materialized dataset, so ordering within each file is the
// generation order and stays reproducible.
type CSVExporter struct {
	spaces *SpacesService
}

func NewCSVExporter(spaces *SpacesService) *CSVExporter {
	return &CSVExporter{spaces: spaces}
}

// Export uploads all five CSV artifacts. Any single failure fails the
// export: downstream consumers expect the artifact set to be complete.
func (e *CSVExporter) Export(ctx context.Context, ds *simulation.Dataset) error {
	artifacts := []struct {
		name string
		body []byte
	}{
		{config.StoresObject, storesCSV(ds)},
		{config.ProductsObject, productsCSV(ds)},
		{config.CustomersObject, customersCSV(ds)},
		{config.TransactionsObject, transactionsCSV(ds)},
		{config.InventoryObject, inventoryCSV(ds)},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.ConcurrentUploads)

	for _, artifact := range artifacts {
		artifact := artifact
		g.Go(func() error {
			start := time.Now()
			if err := e.spaces.UploadObject(gctx, artifact.name, csvContentType, artifact.body); err != nil {
				return err
			}
			slog.Info("Artifact uploaded",
				slog.String("type", "sys"),
				slog.String("object", artifact.name),
				slog.Int("bytes", len(artifact.body)),
				slog.Duration("took", time.Since(start)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("csv export failed: %w", err)
	}
	return nil
}

func writeCSV(header []string, rows [][]string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	w.Flush()
	return buf.Bytes()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func day(t time.Time) string {
	return t.Format(time.DateOnly)
}

func storesCSV(ds *simulation.Dataset) []byte {
	header := []string{"store_id", "store_name", "region_tier", "city", "state",
		"city_population", "infrastructure_score", "warehouse_distance_km", "opening_date"}
	rows := make([][]string, len(ds.Stores))
	for i, s := range ds.Stores {
		rows[i] = []string{
			s.ID, s.Name, s.RegionTier, s.City, s.State,
			strconv.FormatInt(s.CityPopulation, 10), ftoa(s.InfrastructureScore),
			ftoa(s.WarehouseDistanceKm), day(s.OpeningDate),
		}
	}
	return writeCSV(header, rows)
}

func productsCSV(ds *simulation.Dataset) []byte {
	header := []string{"product_id", "product_name", "category", "unit_cost", "list_price",
		"target_margin_pct", "is_perishable", "avg_shelf_life_days"}
	rows := make([][]string, len(ds.Products))
	for i, p := range ds.Products {
		rows[i] = []string{
			p.ID, p.Name, p.Category, ftoa(p.UnitCost), ftoa(p.ListPrice),
			ftoa(p.TargetMarginPct), strconv.FormatBool(p.IsPerishable),
			strconv.Itoa(p.AvgShelfLifeDays),
		}
	}
	return writeCSV(header, rows)
}

func customersCSV(ds *simulation.Dataset) []byte {
	header := []string{"customer_id", "primary_store_id", "region_tier", "age",
		"income_bracket", "digital_literacy_score", "registration_date"}
	rows := make([][]string, len(ds.Customers))
	for i, c := range ds.Customers {
		rows[i] = []string{
			c.ID, c.PrimaryStoreID, c.RegionTier, strconv.Itoa(c.Age),
			c.IncomeBracket, ftoa(c.DigitalScore), day(c.RegisteredAt),
		}
	}
	return writeCSV(header, rows)
}

func transactionsCSV(ds *simulation.Dataset) []byte {
	header := []string{"transaction_id", "transaction_date", "customer_id", "product_id",
		"store_id", "region_tier", "quantity", "unit_price", "revenue", "product_cost",
		"logistics_cost", "spoilage_cost", "total_cost", "margin", "margin_pct",
		"discount_pct", "delivery_time_hours", "delivery_distance_km",
		"payment_method", "is_perishable"}
	rows := make([][]string, len(ds.Transactions))
	for i, t := range ds.Transactions {
		rows[i] = []string{
			t.ID, day(t.Date), t.CustomerID, t.ProductID,
			t.StoreID, t.RegionTier, strconv.Itoa(t.Quantity), ftoa(t.UnitPrice),
			ftoa(t.Revenue), ftoa(t.ProductCost),
			ftoa(t.LogisticsCost), ftoa(t.SpoilageCost), ftoa(t.TotalCost),
			ftoa(t.Margin), ftoa(t.MarginPct),
			ftoa(t.DiscountPct), ftoa(t.DeliveryTimeHours), ftoa(t.DeliveryDistanceKm),
			t.PaymentMethod, strconv.FormatBool(t.IsPerishable),
		}
	}
	return writeCSV(header, rows)
}

func inventoryCSV(ds *simulation.Dataset) []byte {
	header := []string{"inventory_id", "store_id", "product_id", "current_stock",
		"reorder_point", "stockout_days_last_month", "avg_daily_sales", "last_restock_date"}
	rows := make([][]string, len(ds.Inventory))
	for i, inv := range ds.Inventory {
		rows[i] = []string{
			inv.ID, inv.StoreID, inv.ProductID, strconv.Itoa(inv.CurrentStock),
			strconv.Itoa(inv.ReorderPoint), strconv.Itoa(inv.StockoutDaysLastMonth),
			ftoa(inv.AvgDailySales), day(inv.LastRestockDate),
		}
	}
	return writeCSV(header, rows)
}
