package entity

import "time"

// Sale is one line item of the sales fact table. Quantity is a pointer so a
// NULL survives loading and can be flagged by the quality audit instead of
// being silently dropped.
type Sale struct {
	OrderNumber  int64     `json:"order_number" gorm:"column:order_number;primaryKey"`
	LineItem     int       `json:"line_item" gorm:"column:line_item;primaryKey"`
	OrderDate    time.Time `json:"order_date" gorm:"column:order_date"`
	CustomerKey  int       `json:"customer_key" gorm:"column:customer_key"`
	ProductKey   int       `json:"product_key" gorm:"column:product_key"`
	StoreKey     int       `json:"store_key" gorm:"column:store_key"`
	CurrencyCode string    `json:"currency_code" gorm:"column:currency_code"`
	Quantity     *int      `json:"quantity" gorm:"column:quantity"`
}

// Product is the product dimension. Unit prices and costs are already in USD,
// normalized upstream of this tool.
type Product struct {
	ProductKey   int     `json:"product_key" gorm:"column:product_key;primaryKey"`
	ProductName  string  `json:"product_name" gorm:"column:product_name"`
	Category     string  `json:"category" gorm:"column:category"`
	UnitPriceUSD float64 `json:"unit_price_usd" gorm:"column:unit_price_usd"`
	UnitCostUSD  float64 `json:"unit_cost_usd" gorm:"column:unit_cost_usd"`
}

// Customer is the customer dimension.
type Customer struct {
	CustomerKey int    `json:"customer_key" gorm:"column:customer_key;primaryKey"`
	FirstName   string `json:"first_name" gorm:"column:first_name"`
	LastName    string `json:"last_name" gorm:"column:last_name"`
}

// Store is the store dimension. The source schema names the region column
// "states"; it is kept verbatim here.
type Store struct {
	StoreKey int    `json:"store_key" gorm:"column:store_key;primaryKey"`
	Country  string `json:"country" gorm:"column:country"`
	State    string `json:"states" gorm:"column:states"`
}

// CurrencyRate maps a currency code to its USD conversion factor. The rates
// feed the upstream price normalization only; they are loaded so the
// diagnostics can report currency coverage.
type CurrencyRate struct {
	CurrencyCode    string  `json:"currency_code" gorm:"column:currency_code;primaryKey"`
	ConversionToUSD float64 `json:"conversion_to_usd" gorm:"column:conversion_to_usd"`
}

// Dataset holds one immutable snapshot of the star schema, as loaded by a
// SalesRepository. Currencies may be empty when the source carries no
// currency table.
type Dataset struct {
	Sales      []Sale
	Products   []Product
	Customers  []Customer
	Stores     []Store
	Currencies []CurrencyRate
}
