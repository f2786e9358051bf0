// Package engine implements the analytical reports over one immutable
// snapshot of the sales star schema. Every report is a pure function of the
// snapshot: deterministic output order, no shared mutable state, no storage
// access. Window semantics (ranking, quartile bucketing, previous-year
// lookup) are computed by explicit partition, sort, and index arithmetic.
package engine

import (
	"sort"
	"time"

	"github.com/voltmart/sales-insights-go/internal/domain/entity"
)

// line is one sale row joined against its three dimensions, the unit every
// aggregate is computed over. Only qualifying rows become lines: all keys
// resolved and quantity present and non-negative.
type line struct {
	sale     entity.Sale
	product  entity.Product
	customer entity.Customer
	store    entity.Store
	quantity int
	revenue  float64
	profit   float64
}

// Engine evaluates the analytical reports over one dataset snapshot.
// Construct it once per snapshot with New; all report methods are read-only
// and safe to call repeatedly and in any order.
type Engine struct {
	lines []line
	audit entity.QualityAudit
}

// New joins the snapshot's fact rows against the dimension tables and
// precomputes the data-quality audit. Fact rows with an unresolved dimension
// key or an invalid quantity are excluded from the joined set and counted by
// the audit; they never reach an aggregate.
func New(ds *entity.Dataset) *Engine {
	products := make(map[int]entity.Product, len(ds.Products))
	for _, p := range ds.Products {
		products[p.ProductKey] = p
	}
	customers := make(map[int]entity.Customer, len(ds.Customers))
	for _, c := range ds.Customers {
		customers[c.CustomerKey] = c
	}
	stores := make(map[int]entity.Store, len(ds.Stores))
	for _, s := range ds.Stores {
		stores[s.StoreKey] = s
	}
	rates := make(map[string]struct{}, len(ds.Currencies))
	for _, r := range ds.Currencies {
		rates[r.CurrencyCode] = struct{}{}
	}

	e := &Engine{}
	e.audit.TotalSales = len(ds.Sales)

	currencySet := map[string]struct{}{}
	for _, s := range ds.Sales {
		if s.CurrencyCode != "" {
			currencySet[s.CurrencyCode] = struct{}{}
		}

		// A row with several problems is counted once, at the first check
		// that rejects it.
		if s.Quantity == nil || *s.Quantity < 0 {
			e.audit.InvalidQuantitySales = append(e.audit.InvalidQuantitySales, s)
			continue
		}
		product, ok := products[s.ProductKey]
		if !ok {
			e.audit.UnmatchedProducts++
			continue
		}
		customer, ok := customers[s.CustomerKey]
		if !ok {
			e.audit.UnmatchedCustomers++
			continue
		}
		store, ok := stores[s.StoreKey]
		if !ok {
			e.audit.UnmatchedStores++
			continue
		}

		qty := *s.Quantity
		e.lines = append(e.lines, line{
			sale:     s,
			product:  product,
			customer: customer,
			store:    store,
			quantity: qty,
			revenue:  product.UnitPriceUSD * float64(qty),
			profit:   (product.UnitPriceUSD - product.UnitCostUSD) * float64(qty),
		})
	}

	sort.Slice(e.audit.InvalidQuantitySales, func(i, j int) bool {
		a, b := e.audit.InvalidQuantitySales[i], e.audit.InvalidQuantitySales[j]
		if a.OrderNumber != b.OrderNumber {
			return a.OrderNumber < b.OrderNumber
		}
		return a.LineItem < b.LineItem
	})

	e.audit.QualifyingSales = len(e.lines)
	e.audit.CurrencyCodes = sortedStringSet(currencySet)

	// Coverage is only meaningful when the snapshot carries a currency table.
	if len(ds.Currencies) > 0 {
		for _, code := range e.audit.CurrencyCodes {
			if _, ok := rates[code]; !ok {
				e.audit.MissingConversions = append(e.audit.MissingConversions, code)
			}
		}
	}

	return e
}

// storeTotal is a store with its summed revenue, the working row for the
// store-scoped reports.
type storeTotal struct {
	store   entity.Store
	revenue float64
}

// storeTotals sums revenue per store over the qualifying lines. The result
// is ordered by store key ascending; callers re-sort for their own ordering.
func (e *Engine) storeTotals() []storeTotal {
	totals := map[int]*storeTotal{}
	for _, ln := range e.lines {
		st, ok := totals[ln.store.StoreKey]
		if !ok {
			st = &storeTotal{store: ln.store}
			totals[ln.store.StoreKey] = st
		}
		st.revenue += ln.revenue
	}

	out := make([]storeTotal, 0, len(totals))
	for _, st := range totals {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].store.StoreKey < out[j].store.StoreKey
	})
	return out
}

func sortedStringSet(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func customerName(c entity.Customer) string {
	return c.FirstName + " " + c.LastName
}
