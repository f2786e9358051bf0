package usecase

import (
	"fmt"
	"strconv"

	"github.com/voltmart/sales-insights-go/internal/application/engine"
)

// reportDefinition binds a report name to its title and its builder. Build
// returns the display columns, the formatted cell rows, and the typed
// records carried into JSON exports at full precision.
type reportDefinition struct {
	Name  string
	Title string
	Build func(eng *engine.Engine) ([]string, [][]string, interface{})
}

// reportRegistry lists every shipped report in evaluation order. Names are
// what --reports matches against.
var reportRegistry = []reportDefinition{
	{
		Name:  "revenue_per_customer",
		Title: "Revenue per Customer",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.RevenuePerCustomer()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{strconv.Itoa(r.CustomerKey), r.CustomerName, money(r.TotalRevenueUSD)})
			}
			return []string{"Customer Key", "Customer", "Total Revenue (USD)"}, rows, records
		},
	},
	{
		Name:  "revenue_by_store",
		Title: "Revenue by Store",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.RevenueByStore()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{strconv.Itoa(r.StoreKey), r.Country, r.State, money(r.TotalRevenueUSD)})
			}
			return []string{"Store Key", "Country", "State", "Total Revenue (USD)"}, rows, records
		},
	},
	{
		Name:  "top_selling_products",
		Title: "Top-Selling Products",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.TopSellingProducts()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.ProductName, r.Category, strconv.Itoa(r.UnitsSold), money(r.TotalRevenueUSD)})
			}
			return []string{"Product", "Category", "Units Sold", "Total Revenue (USD)"}, rows, records
		},
	},
	{
		Name:  "monthly_revenue_trend",
		Title: "Monthly Revenue Trend",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.MonthlyRevenueTrend()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Month.Format("2006-01"), money(r.TotalRevenueUSD)})
			}
			return []string{"Month", "Total Revenue (USD)"}, rows, records
		},
	},
	{
		Name:  "repeat_buyer_spend",
		Title: "Repeat-Buyer Spend",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.RepeatBuyerSpend()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{strconv.Itoa(r.CustomerKey), r.CustomerName, strconv.Itoa(r.DistinctOrders), money(r.TotalSpendUSD)})
			}
			return []string{"Customer Key", "Customer", "Distinct Orders", "Total Spend (USD)"}, rows, records
		},
	},
	{
		Name:  "revenue_by_category",
		Title: "Revenue by Category",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.RevenueByCategory()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Category, money(r.TotalRevenueUSD)})
			}
			return []string{"Category", "Total Revenue (USD)"}, rows, records
		},
	},
	{
		Name:  "top_stores_by_country",
		Title: "Top 3 Stores per Country",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.TopStoresByCountry()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Country, strconv.Itoa(r.Rank), strconv.Itoa(r.StoreKey), r.State, money(r.TotalRevenueUSD)})
			}
			return []string{"Country", "Rank", "Store Key", "State", "Total Revenue (USD)"}, rows, records
		},
	},
	{
		Name:  "store_revenue_share",
		Title: "Store Revenue Share by Country",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.StoreRevenueShare()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Country, strconv.Itoa(r.CountryRank), strconv.Itoa(r.StoreKey), money(r.TotalRevenueUSD), money(r.CountryTotalUSD), pct(r.SharePct)})
			}
			return []string{"Country", "Rank", "Store Key", "Store Revenue (USD)", "Country Total (USD)", "Share"}, rows, records
		},
	},
	{
		Name:  "underperforming_stores",
		Title: "Underperforming Stores (Bottom Quartile)",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.UnderperformingStores()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Country, strconv.Itoa(r.StoreKey), money(r.TotalRevenueUSD), strconv.Itoa(r.Quartile)})
			}
			return []string{"Country", "Store Key", "Total Revenue (USD)", "Quartile"}, rows, records
		},
	},
	{
		Name:  "country_yoy",
		Title: "Year-over-Year Revenue by Country",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.CountryYoY()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Country, strconv.Itoa(r.Year), money(r.RevenueUSD), optMoney(r.PrevYearRevenueUSD), signedMoney(r.ChangeUSD), signedPct(r.ChangePct)})
			}
			return []string{"Country", "Year", "Revenue (USD)", "Prev Year (USD)", "Change (USD)", "Change %"}, rows, records
		},
	},
	{
		Name:  "category_yoy",
		Title: "Year-over-Year Revenue by Category",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.CategoryYoY()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Category, strconv.Itoa(r.Year), money(r.RevenueUSD), optMoney(r.PrevYearRevenueUSD), signedMoney(r.ChangeUSD), signedPct(r.ChangePct)})
			}
			return []string{"Category", "Year", "Revenue (USD)", "Prev Year (USD)", "Change (USD)", "Change %"}, rows, records
		},
	},
	{
		Name:  "category_margin",
		Title: "Profit Margin by Category",
		Build: func(eng *engine.Engine) ([]string, [][]string, interface{}) {
			records := eng.CategoryMargin()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Category, money(r.TotalRevenueUSD), money(r.TotalProfitUSD), pct(r.MarginPct)})
			}
			return []string{"Category", "Total Revenue (USD)", "Total Profit (USD)", "Margin"}, rows, records
		},
	},
}

// money formats a USD amount for display cells. Typed records keep the
// unrounded values.
func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func optMoney(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return money(*v)
}

// signedMoney renders a delta with an explicit sign so gains and losses
// read at a glance.
func signedMoney(v *float64) string {
	if v == nil {
		return "N/A"
	}
	if *v < 0 {
		return fmt.Sprintf("-$%.2f", -*v)
	}
	return fmt.Sprintf("+$%.2f", *v)
}

func pct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v)
}

func signedPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}
