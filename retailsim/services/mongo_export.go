package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Darshil562002/retailsim/retailsim/config"
	"github.com/Darshil562002/retailsim/retailsim/simulation"
)

// MongoExporter mirrors the dataset into MongoDB collections for notebook
// consumers that read Mongo instead of Postgres.
type MongoExporter struct {
	client   *mongo.Client
	database string
}

func NewMongoExporter(ctx context.Context, uri, database string) (*MongoExporter, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	return &MongoExporter{client: client, database: database}, nil
}

func (m *MongoExporter) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Export drops and rewrites the five collections. Collections are written
// in dependency order, in batches, so a failed export never leaves a
// dataset that looks complete.
func (m *MongoExporter) Export(ctx context.Context, ds *simulation.Dataset) error {
	start := time.Now()
	db := m.client.Database(m.database)

	collections := []struct {
		name string
		docs []interface{}
	}{
		{"stores", toDocs(ds.Stores)},
		{"products", toDocs(ds.Products)},
		{"customers", toDocs(ds.Customers)},
		{"transactions", toDocs(ds.Transactions)},
		{"inventory", toDocs(ds.Inventory)},
	}

	for _, coll := range collections {
		c := db.Collection(coll.name)
		if err := c.Drop(ctx); err != nil {
			return fmt.Errorf("failed to drop collection %s: %w", coll.name, err)
		}
		for lo := 0; lo < len(coll.docs); lo += config.MongoBatchSize {
			hi := lo + config.MongoBatchSize
			if hi > len(coll.docs) {
				hi = len(coll.docs)
			}
			if _, err := c.InsertMany(ctx, coll.docs[lo:hi]); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", coll.name, err)
			}
		}
		slog.Info("Collection exported",
			slog.String("type", "db"),
			slog.String("collection", coll.name),
			slog.Int("docs", len(coll.docs)))
	}

	slog.Info("Mongo export complete",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(start)))
	return nil
}

func toDocs[T any](items []T) []interface{} {
	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}
