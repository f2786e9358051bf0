package csvdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/voltmart/sales-insights-go/internal/domain/entity"
	"github.com/voltmart/sales-insights-go/internal/domain/repository"
	"github.com/voltmart/sales-insights-go/internal/shared/types"
)

// SalesRepositoryImpl implements the SalesRepository over a directory of CSV
// exports, one file per table.
type SalesRepositoryImpl struct{}

// NewSalesRepository creates a new CSV-backed implementation of the
// SalesRepository.
func NewSalesRepository() repository.SalesRepository {
	return &SalesRepositoryImpl{}
}

// dateLayouts are the accepted order_date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
}

func (r *SalesRepositoryImpl) Describe(source string) string {
	return fmt.Sprintf("CSV directory %s", source)
}

func (r *SalesRepositoryImpl) LoadDataset(ctx context.Context, source string) (*entity.Dataset, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("cannot open CSV directory %s: %w", source, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", source)
	}

	ds := &entity.Dataset{}
	steps := []func(string) error{
		func(dir string) error { return loadSales(dir, &ds.Sales) },
		func(dir string) error { return loadProducts(dir, &ds.Products) },
		func(dir string) error { return loadCustomers(dir, &ds.Customers) },
		func(dir string) error { return loadStores(dir, &ds.Stores) },
		func(dir string) error { return loadCurrencies(dir, &ds.Currencies) },
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step(source); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// table is one parsed CSV file: a header index plus its data rows. The csv
// reader has already enforced a uniform field count, so every row is as wide
// as the header.
type table struct {
	name string
	idx  map[string]int
	rows [][]string
}

// openTable reads and header-checks one CSV file. Extra columns are ignored;
// a missing required column is a schema error.
func openTable(dir, filename string, required []string) (*table, error) {
	name := strings.TrimSuffix(filename, ".csv")

	f, err := os.Open(filepath.Join(dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("error opening %s: %w", filename, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &types.SchemaError{Table: name, Detail: err.Error()}
	}
	if len(records) == 0 {
		return nil, &types.SchemaError{Table: name, Detail: "missing header row"}
	}

	idx := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		idx[strings.TrimSpace(header)] = i
	}
	for _, column := range required {
		if _, ok := idx[column]; !ok {
			return nil, &types.SchemaError{Table: name, Detail: fmt.Sprintf("required column %q not found", column)}
		}
	}
	return &table{name: name, idx: idx, rows: records[1:]}, nil
}

func (t *table) cell(row int, column string) string {
	return strings.TrimSpace(t.rows[row][t.idx[column]])
}

// cellError reports the 1-based file line (data row + header row).
func (t *table) cellError(row int, column, raw string) error {
	return &types.SchemaError{
		Table:  t.name,
		Detail: fmt.Sprintf("row %d column %q: cannot parse %q", row+2, column, raw),
	}
}

func (t *table) intCell(row int, column string) (int, error) {
	raw := t.cell(row, column)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, t.cellError(row, column, raw)
	}
	return v, nil
}

func (t *table) int64Cell(row int, column string) (int64, error) {
	raw := t.cell(row, column)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, t.cellError(row, column, raw)
	}
	return v, nil
}

func (t *table) floatCell(row int, column string) (float64, error) {
	raw := t.cell(row, column)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, t.cellError(row, column, raw)
	}
	return v, nil
}

func (t *table) dateCell(row int, column string) (time.Time, error) {
	raw := t.cell(row, column)
	for _, layout := range dateLayouts {
		if v, err := time.Parse(layout, raw); err == nil {
			return v, nil
		}
	}
	return time.Time{}, t.cellError(row, column, raw)
}

// optionalIntCell maps an empty cell to nil so NULL exports survive loading
// and reach the quality audit.
func (t *table) optionalIntCell(row int, column string) (*int, error) {
	raw := t.cell(row, column)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, t.cellError(row, column, raw)
	}
	return &v, nil
}

func loadSales(dir string, out *[]entity.Sale) error {
	t, err := openTable(dir, "sales.csv", []string{
		"order_number", "line_item", "order_date",
		"customer_key", "product_key", "store_key",
		"currency_code", "quantity",
	})
	if err != nil {
		if os.IsNotExist(err) {
			return &types.SchemaError{Table: "sales", Detail: "sales.csv not found"}
		}
		return err
	}

	sales := make([]entity.Sale, 0, len(t.rows))
	for i := range t.rows {
		var (
			sale entity.Sale
			err  error
		)
		if sale.OrderNumber, err = t.int64Cell(i, "order_number"); err != nil {
			return err
		}
		if sale.LineItem, err = t.intCell(i, "line_item"); err != nil {
			return err
		}
		if sale.OrderDate, err = t.dateCell(i, "order_date"); err != nil {
			return err
		}
		if sale.CustomerKey, err = t.intCell(i, "customer_key"); err != nil {
			return err
		}
		if sale.ProductKey, err = t.intCell(i, "product_key"); err != nil {
			return err
		}
		if sale.StoreKey, err = t.intCell(i, "store_key"); err != nil {
			return err
		}
		sale.CurrencyCode = t.cell(i, "currency_code")
		if sale.Quantity, err = t.optionalIntCell(i, "quantity"); err != nil {
			return err
		}
		sales = append(sales, sale)
	}
	*out = sales
	return nil
}

func loadProducts(dir string, out *[]entity.Product) error {
	t, err := openTable(dir, "products.csv", []string{
		"product_key", "product_name", "category", "unit_price_usd", "unit_cost_usd",
	})
	if err != nil {
		if os.IsNotExist(err) {
			return &types.SchemaError{Table: "products", Detail: "products.csv not found"}
		}
		return err
	}

	products := make([]entity.Product, 0, len(t.rows))
	for i := range t.rows {
		var (
			p   entity.Product
			err error
		)
		if p.ProductKey, err = t.intCell(i, "product_key"); err != nil {
			return err
		}
		p.ProductName = t.cell(i, "product_name")
		p.Category = t.cell(i, "category")
		if p.UnitPriceUSD, err = t.floatCell(i, "unit_price_usd"); err != nil {
			return err
		}
		if p.UnitCostUSD, err = t.floatCell(i, "unit_cost_usd"); err != nil {
			return err
		}
		products = append(products, p)
	}
	*out = products
	return nil
}

func loadCustomers(dir string, out *[]entity.Customer) error {
	t, err := openTable(dir, "customers.csv", []string{"customer_key", "first_name", "last_name"})
	if err != nil {
		if os.IsNotExist(err) {
			return &types.SchemaError{Table: "customers", Detail: "customers.csv not found"}
		}
		return err
	}

	customers := make([]entity.Customer, 0, len(t.rows))
	for i := range t.rows {
		var (
			c   entity.Customer
			err error
		)
		if c.CustomerKey, err = t.intCell(i, "customer_key"); err != nil {
			return err
		}
		c.FirstName = t.cell(i, "first_name")
		c.LastName = t.cell(i, "last_name")
		customers = append(customers, c)
	}
	*out = customers
	return nil
}

func loadStores(dir string, out *[]entity.Store) error {
	t, err := openTable(dir, "stores.csv", []string{"store_key", "country", "states"})
	if err != nil {
		if os.IsNotExist(err) {
			return &types.SchemaError{Table: "stores", Detail: "stores.csv not found"}
		}
		return err
	}

	stores := make([]entity.Store, 0, len(t.rows))
	for i := range t.rows {
		var (
			s   entity.Store
			err error
		)
		if s.StoreKey, err = t.intCell(i, "store_key"); err != nil {
			return err
		}
		s.Country = t.cell(i, "country")
		s.State = t.cell(i, "states")
		stores = append(stores, s)
	}
	*out = stores
	return nil
}

// loadCurrencies tolerates an absent file; the currency table is optional.
func loadCurrencies(dir string, out *[]entity.CurrencyRate) error {
	t, err := openTable(dir, "currency_rates.csv", []string{"currency_code", "conversion_to_usd"})
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	rates := make([]entity.CurrencyRate, 0, len(t.rows))
	for i := range t.rows {
		var (
			cr  entity.CurrencyRate
			err error
		)
		cr.CurrencyCode = t.cell(i, "currency_code")
		if cr.ConversionToUSD, err = t.floatCell(i, "conversion_to_usd"); err != nil {
			return err
		}
		rates = append(rates, cr)
	}
	*out = rates
	return nil
}
