package entity

import "time"

// CustomerRevenue is one row of the revenue-per-customer report.
type CustomerRevenue struct {
	CustomerKey     int     `json:"customer_key"`
	CustomerName    string  `json:"customer_name"`
	TotalRevenueUSD float64 `json:"total_revenue_usd"`
}

// StoreRevenue is one row of the revenue-by-store report.
type StoreRevenue struct {
	StoreKey        int     `json:"store_key"`
	Country         string  `json:"country"`
	State           string  `json:"state"`
	TotalRevenueUSD float64 `json:"total_revenue_usd"`
}

// ProductSales is one row of the top-selling-products report.
type ProductSales struct {
	ProductName     string  `json:"product_name"`
	Category        string  `json:"category"`
	UnitsSold       int     `json:"units_sold"`
	TotalRevenueUSD float64 `json:"total_revenue_usd"`
}

// MonthlyRevenue is one calendar month of the revenue trend. Month is the
// first day of the month in UTC.
type MonthlyRevenue struct {
	Month           time.Time `json:"month"`
	TotalRevenueUSD float64   `json:"total_revenue_usd"`
}

// RepeatBuyer is one row of the repeat-buyer-spend report: a customer with
// more than one distinct order.
type RepeatBuyer struct {
	CustomerKey    int     `json:"customer_key"`
	CustomerName   string  `json:"customer_name"`
	DistinctOrders int     `json:"distinct_orders"`
	TotalSpendUSD  float64 `json:"total_spend_usd"`
}

// CategoryRevenue is one row of the revenue-by-category report.
type CategoryRevenue struct {
	Category        string  `json:"category"`
	TotalRevenueUSD float64 `json:"total_revenue_usd"`
}

// RankedStore is one row of the top-stores-per-country report. Rank is a
// strict row-number rank within the store's country.
type RankedStore struct {
	Country         string  `json:"country"`
	StoreKey        int     `json:"store_key"`
	State           string  `json:"state"`
	TotalRevenueUSD float64 `json:"total_revenue_usd"`
	Rank            int     `json:"rank"`
}

// StoreShare is one row of the store-revenue-share report. CountryRank uses
// standard competition ranking: ties share a rank and the next rank jumps.
// SharePct is nil when the country total is zero.
type StoreShare struct {
	Country         string   `json:"country"`
	StoreKey        int      `json:"store_key"`
	TotalRevenueUSD float64  `json:"total_revenue_usd"`
	CountryRank     int      `json:"country_rank"`
	CountryTotalUSD float64  `json:"country_total_usd"`
	SharePct        *float64 `json:"share_pct,omitempty"`
}

// QuartileStore is one row of the underperforming-stores report: a store in
// the bottom revenue quartile of its country.
type QuartileStore struct {
	Country         string  `json:"country"`
	StoreKey        int     `json:"store_key"`
	TotalRevenueUSD float64 `json:"total_revenue_usd"`
	Quartile        int     `json:"quartile"`
}

// CountryYoY is one row of the year-over-year revenue report by country.
// PrevYearRevenueUSD is the revenue of the immediately preceding year present
// in the country's series, nil for the first year. ChangePct is nil when the
// previous revenue is absent or zero.
type CountryYoY struct {
	Country            string   `json:"country"`
	Year               int      `json:"year"`
	RevenueUSD         float64  `json:"revenue_usd"`
	PrevYearRevenueUSD *float64 `json:"prev_year_revenue_usd,omitempty"`
	ChangeUSD          *float64 `json:"change_usd,omitempty"`
	ChangePct          *float64 `json:"change_pct,omitempty"`
}

// CategoryYoY is one row of the year-over-year revenue report by category,
// with the same null semantics as CountryYoY.
type CategoryYoY struct {
	Category           string   `json:"category"`
	Year               int      `json:"year"`
	RevenueUSD         float64  `json:"revenue_usd"`
	PrevYearRevenueUSD *float64 `json:"prev_year_revenue_usd,omitempty"`
	ChangeUSD          *float64 `json:"change_usd,omitempty"`
	ChangePct          *float64 `json:"change_pct,omitempty"`
}

// CategoryMargin is one row of the profit-margin-by-category report.
// MarginPct is nil when the category's revenue is zero.
type CategoryMargin struct {
	Category        string   `json:"category"`
	TotalRevenueUSD float64  `json:"total_revenue_usd"`
	TotalProfitUSD  float64  `json:"total_profit_usd"`
	MarginPct       *float64 `json:"margin_pct,omitempty"`
}
