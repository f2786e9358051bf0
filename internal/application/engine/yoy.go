package engine

import (
	"sort"

	"github.com/voltmart/sales-insights-go/internal/domain/entity"
)

// yoyEntry is one (group, year) revenue row with its lagged comparison
// figures. prev is the revenue of the immediately preceding year present in
// the group's series, not year minus one: a gap year carries the last
// present year forward.
type yoyEntry struct {
	group   string
	year    int
	revenue float64
	prev    *float64
	change  *float64
	pct     *float64
}

// yearlySeries sums revenue per (group, year), orders each group's years
// ascending, and derives the lagged previous revenue, absolute change, and
// percentage change. The first year of a group has nil comparison figures;
// the percentage is also nil when the previous revenue is zero. Entries come
// back ordered by group ascending, then year ascending.
func (e *Engine) yearlySeries(groupOf func(ln line) string) []yoyEntry {
	totals := map[string]map[int]float64{}
	for _, ln := range e.lines {
		g := groupOf(ln)
		m, ok := totals[g]
		if !ok {
			m = map[int]float64{}
			totals[g] = m
		}
		m[ln.sale.OrderDate.Year()] += ln.revenue
	}

	groups := make([]string, 0, len(totals))
	for g := range totals {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var entries []yoyEntry
	for _, g := range groups {
		years := make([]int, 0, len(totals[g]))
		for y := range totals[g] {
			years = append(years, y)
		}
		sort.Ints(years)

		hasPrev := false
		prevRevenue := 0.0
		for _, year := range years {
			revenue := totals[g][year]
			entry := yoyEntry{group: g, year: year, revenue: revenue}
			if hasPrev {
				p := prevRevenue
				change := revenue - p
				entry.prev = &p
				entry.change = &change
				if p != 0 {
					pct := 100 * change / p
					entry.pct = &pct
				}
			}
			entries = append(entries, entry)
			prevRevenue = revenue
			hasPrev = true
		}
	}
	return entries
}

// CountryYoY computes yearly revenue per country with lagged previous-year
// comparison figures. Rows come back ordered by country ascending, then year
// ascending.
func (e *Engine) CountryYoY() []entity.CountryYoY {
	entries := e.yearlySeries(func(ln line) string { return ln.store.Country })

	rows := make([]entity.CountryYoY, 0, len(entries))
	for _, en := range entries {
		rows = append(rows, entity.CountryYoY{
			Country:            en.group,
			Year:               en.year,
			RevenueUSD:         en.revenue,
			PrevYearRevenueUSD: en.prev,
			ChangeUSD:          en.change,
			ChangePct:          en.pct,
		})
	}
	return rows
}

// CategoryYoY computes yearly revenue per product category with lagged
// previous-year comparison figures. Unlike CountryYoY the final order is by
// the change-over-year value descending; first-year rows (nil change) sort
// after every comparable row, then by category and year ascending.
func (e *Engine) CategoryYoY() []entity.CategoryYoY {
	entries := e.yearlySeries(func(ln line) string { return ln.product.Category })

	rows := make([]entity.CategoryYoY, 0, len(entries))
	for _, en := range entries {
		rows = append(rows, entity.CategoryYoY{
			Category:           en.group,
			Year:               en.year,
			RevenueUSD:         en.revenue,
			PrevYearRevenueUSD: en.prev,
			ChangeUSD:          en.change,
			ChangePct:          en.pct,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		ci, cj := rows[i].ChangeUSD, rows[j].ChangeUSD
		switch {
		case ci != nil && cj == nil:
			return true
		case ci == nil && cj != nil:
			return false
		case ci != nil && cj != nil && *ci != *cj:
			return *ci > *cj
		}
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}
