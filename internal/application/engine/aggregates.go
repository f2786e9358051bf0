package engine

import (
	"sort"
	"time"

	"github.com/voltmart/sales-insights-go/internal/domain/entity"
)

// RevenuePerCustomer groups qualifying sales by customer and sums revenue.
// Rows are ordered by revenue descending, then customer key ascending so the
// order is total.
func (e *Engine) RevenuePerCustomer() []entity.CustomerRevenue {
	totals := map[int]float64{}
	names := map[int]string{}
	for _, ln := range e.lines {
		totals[ln.customer.CustomerKey] += ln.revenue
		names[ln.customer.CustomerKey] = customerName(ln.customer)
	}

	rows := make([]entity.CustomerRevenue, 0, len(totals))
	for key, revenue := range totals {
		rows = append(rows, entity.CustomerRevenue{
			CustomerKey:     key,
			CustomerName:    names[key],
			TotalRevenueUSD: revenue,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenueUSD != rows[j].TotalRevenueUSD {
			return rows[i].TotalRevenueUSD > rows[j].TotalRevenueUSD
		}
		return rows[i].CustomerKey < rows[j].CustomerKey
	})
	return rows
}

// RevenueByStore groups qualifying sales by store, carrying the store's
// country and state through as attributes. Rows are ordered by revenue
// descending, then store key ascending.
func (e *Engine) RevenueByStore() []entity.StoreRevenue {
	totals := e.storeTotals()

	rows := make([]entity.StoreRevenue, 0, len(totals))
	for _, st := range totals {
		rows = append(rows, entity.StoreRevenue{
			StoreKey:        st.store.StoreKey,
			Country:         st.store.Country,
			State:           st.store.State,
			TotalRevenueUSD: st.revenue,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenueUSD != rows[j].TotalRevenueUSD {
			return rows[i].TotalRevenueUSD > rows[j].TotalRevenueUSD
		}
		return rows[i].StoreKey < rows[j].StoreKey
	})
	return rows
}

// TopSellingProducts groups qualifying sales by product name and category
// and sums both units and revenue. Rows are ordered by revenue descending,
// then product name and category ascending.
func (e *Engine) TopSellingProducts() []entity.ProductSales {
	type groupKey struct {
		name     string
		category string
	}
	totals := map[groupKey]*entity.ProductSales{}
	for _, ln := range e.lines {
		k := groupKey{ln.product.ProductName, ln.product.Category}
		row, ok := totals[k]
		if !ok {
			row = &entity.ProductSales{ProductName: k.name, Category: k.category}
			totals[k] = row
		}
		row.UnitsSold += ln.quantity
		row.TotalRevenueUSD += ln.revenue
	}

	rows := make([]entity.ProductSales, 0, len(totals))
	for _, row := range totals {
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenueUSD != rows[j].TotalRevenueUSD {
			return rows[i].TotalRevenueUSD > rows[j].TotalRevenueUSD
		}
		if rows[i].ProductName != rows[j].ProductName {
			return rows[i].ProductName < rows[j].ProductName
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// MonthlyRevenueTrend sums revenue per calendar month (order dates truncated
// to the first of the month, UTC) in chronological order.
func (e *Engine) MonthlyRevenueTrend() []entity.MonthlyRevenue {
	totals := map[time.Time]float64{}
	for _, ln := range e.lines {
		totals[monthOf(ln.sale.OrderDate)] += ln.revenue
	}

	rows := make([]entity.MonthlyRevenue, 0, len(totals))
	for month, revenue := range totals {
		rows = append(rows, entity.MonthlyRevenue{Month: month, TotalRevenueUSD: revenue})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month.Before(rows[j].Month)
	})
	return rows
}

// RepeatBuyerSpend returns the customers with more than one distinct order
// number together with their distinct order count and total spend. The
// filter applies after aggregation: membership is decided by the final
// distinct count. Rows are ordered by spend descending, then customer key
// ascending.
func (e *Engine) RepeatBuyerSpend() []entity.RepeatBuyer {
	type buyer struct {
		name   string
		orders map[int64]struct{}
		spend  float64
	}
	buyers := map[int]*buyer{}
	for _, ln := range e.lines {
		b, ok := buyers[ln.customer.CustomerKey]
		if !ok {
			b = &buyer{name: customerName(ln.customer), orders: map[int64]struct{}{}}
			buyers[ln.customer.CustomerKey] = b
		}
		b.orders[ln.sale.OrderNumber] = struct{}{}
		b.spend += ln.revenue
	}

	rows := []entity.RepeatBuyer{}
	for key, b := range buyers {
		if len(b.orders) > 1 {
			rows = append(rows, entity.RepeatBuyer{
				CustomerKey:    key,
				CustomerName:   b.name,
				DistinctOrders: len(b.orders),
				TotalSpendUSD:  b.spend,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalSpendUSD != rows[j].TotalSpendUSD {
			return rows[i].TotalSpendUSD > rows[j].TotalSpendUSD
		}
		return rows[i].CustomerKey < rows[j].CustomerKey
	})
	return rows
}

// RevenueByCategory groups qualifying sales by product category. Rows are
// ordered by revenue descending, then category ascending.
func (e *Engine) RevenueByCategory() []entity.CategoryRevenue {
	totals := map[string]float64{}
	for _, ln := range e.lines {
		totals[ln.product.Category] += ln.revenue
	}

	rows := make([]entity.CategoryRevenue, 0, len(totals))
	for category, revenue := range totals {
		rows = append(rows, entity.CategoryRevenue{
			Category:        category,
			TotalRevenueUSD: revenue,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenueUSD != rows[j].TotalRevenueUSD {
			return rows[i].TotalRevenueUSD > rows[j].TotalRevenueUSD
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// CategoryMargin sums revenue and profit per category and derives the profit
// margin percentage. The margin is nil for a category whose revenue is zero;
// a zero denominator never becomes an error or an infinity. Rows are ordered
// by profit descending, then category ascending.
func (e *Engine) CategoryMargin() []entity.CategoryMargin {
	type totals struct {
		revenue float64
		profit  float64
	}
	byCategory := map[string]*totals{}
	for _, ln := range e.lines {
		t, ok := byCategory[ln.product.Category]
		if !ok {
			t = &totals{}
			byCategory[ln.product.Category] = t
		}
		t.revenue += ln.revenue
		t.profit += ln.profit
	}

	rows := make([]entity.CategoryMargin, 0, len(byCategory))
	for category, t := range byCategory {
		row := entity.CategoryMargin{
			Category:        category,
			TotalRevenueUSD: t.revenue,
			TotalProfitUSD:  t.profit,
		}
		if t.revenue != 0 {
			margin := 100 * t.profit / t.revenue
			row.MarginPct = &margin
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalProfitUSD != rows[j].TotalProfitUSD {
			return rows[i].TotalProfitUSD > rows[j].TotalProfitUSD
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
