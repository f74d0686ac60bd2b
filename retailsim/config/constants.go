package config

import "time"

// Application-wide constants organized by domain

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 30 * time.Second
	BatchQueryTimeout   = 2 * time.Minute
	ExportTimeout       = 5 * time.Minute
	NetworkDialTimeout  = 5 * time.Second

	// Batch processing
	CopyBatchSize     = 5000
	MongoBatchSize    = 1000
	ConcurrentUploads = 5
)

// Export Constants
const (
	StoresObject       = "stores.csv"
	ProductsObject     = "products.csv"
	CustomersObject    = "customers.csv"
	TransactionsObject = "transactions.csv"
	InventoryObject    = "inventory.csv"
)
