package sqlite

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/voltmart/sales-insights-go/internal/domain/entity"
	"github.com/voltmart/sales-insights-go/internal/domain/repository"
	"github.com/voltmart/sales-insights-go/internal/shared/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SalesRepositoryImpl implements the SalesRepository over a SQLite snapshot
// file. The database is opened per call and never written to.
type SalesRepositoryImpl struct{}

// NewSalesRepository creates a new SQLite-backed implementation of the
// SalesRepository.
func NewSalesRepository() repository.SalesRepository {
	return &SalesRepositoryImpl{}
}

// requiredColumns lists the columns each required table must carry before a
// load is attempted. The currency_rates table is optional and not listed.
var requiredColumns = map[string][]string{
	"sales":     {"order_number", "line_item", "order_date", "customer_key", "product_key", "store_key", "currency_code", "quantity"},
	"products":  {"product_key", "product_name", "category", "unit_price_usd", "unit_cost_usd"},
	"customers": {"customer_key", "first_name", "last_name"},
	"stores":    {"store_key", "country", "states"},
}

var requiredTables = []string{"sales", "products", "customers", "stores"}

func (r *SalesRepositoryImpl) Describe(source string) string {
	return fmt.Sprintf("SQLite database %s", source)
}

func (r *SalesRepositoryImpl) LoadDataset(ctx context.Context, source string) (*entity.Dataset, error) {
	// The sqlite driver creates a missing file on open; stat plain paths
	// first so a typo surfaces as a clean error instead of an empty database.
	if !strings.HasPrefix(source, "file:") {
		if _, err := os.Stat(source); err != nil {
			return nil, fmt.Errorf("cannot open SQLite database %s: %w", source, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(source), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite database %s: %w", source, err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := checkSchema(db); err != nil {
		return nil, err
	}

	ds := &entity.Dataset{}
	tx := db.WithContext(ctx)
	if err := tx.Find(&ds.Sales).Error; err != nil {
		return nil, &types.SchemaError{Table: "sales", Detail: err.Error()}
	}
	if err := tx.Find(&ds.Products).Error; err != nil {
		return nil, &types.SchemaError{Table: "products", Detail: err.Error()}
	}
	if err := tx.Find(&ds.Customers).Error; err != nil {
		return nil, &types.SchemaError{Table: "customers", Detail: err.Error()}
	}
	if err := tx.Find(&ds.Stores).Error; err != nil {
		return nil, &types.SchemaError{Table: "stores", Detail: err.Error()}
	}
	if db.Migrator().HasTable("currency_rates") {
		if err := tx.Find(&ds.Currencies).Error; err != nil {
			return nil, &types.SchemaError{Table: "currency_rates", Detail: err.Error()}
		}
	}

	return ds, nil
}

// checkSchema verifies every required table and column exists before any rows
// are scanned, so a malformed snapshot fails fast with no partial dataset.
func checkSchema(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, table := range requiredTables {
		if !migrator.HasTable(table) {
			return &types.SchemaError{Table: table, Detail: "required table not found"}
		}
		for _, column := range requiredColumns[table] {
			if !migrator.HasColumn(table, column) {
				return &types.SchemaError{Table: table, Detail: fmt.Sprintf("required column %q not found", column)}
			}
		}
	}
	return nil
}
