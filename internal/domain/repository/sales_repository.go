package repository

import (
	"context"

	"github.com/voltmart/sales-insights-go/internal/domain/entity"
)

// SalesRepository defines the interface for loading one snapshot of the
// sales star schema. Implementations perform full scans only; callers never
// ask the storage side for aggregation.
type SalesRepository interface {
	// LoadDataset loads the four required tables and the optional currency
	// table from the given source (a database file or a directory, depending
	// on the implementation). Structural problems surface as
	// *types.SchemaError.
	LoadDataset(ctx context.Context, source string) (*entity.Dataset, error)

	// Describe returns a short human-readable description of the source,
	// used in status output.
	Describe(source string) string
}
