package engine

import (
	"sort"

	"github.com/voltmart/sales-insights-go/internal/domain/entity"
)

// storesByCountry partitions the per-store totals by country. Countries come
// back sorted ascending; within a partition stores are sorted by revenue
// descending with store key ascending breaking ties, so every window
// computation below sees one fixed, reproducible order.
func (e *Engine) storesByCountry() ([]string, map[string][]storeTotal) {
	partitions := map[string][]storeTotal{}
	for _, st := range e.storeTotals() {
		partitions[st.store.Country] = append(partitions[st.store.Country], st)
	}

	countries := make([]string, 0, len(partitions))
	for country := range partitions {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	for _, country := range countries {
		stores := partitions[country]
		sort.Slice(stores, func(i, j int) bool {
			if stores[i].revenue != stores[j].revenue {
				return stores[i].revenue > stores[j].revenue
			}
			return stores[i].store.StoreKey < stores[j].store.StoreKey
		})
	}
	return countries, partitions
}

// TopStoresByCountry ranks each country's stores by revenue descending and
// keeps the top three. Ranking is strict (1, 2, 3 even on revenue ties); the
// stable secondary key is store key ascending. Rows come back ordered by
// country ascending, then revenue descending.
func (e *Engine) TopStoresByCountry() []entity.RankedStore {
	countries, partitions := e.storesByCountry()

	var rows []entity.RankedStore
	for _, country := range countries {
		for i, st := range partitions[country] {
			if i >= 3 {
				break
			}
			rows = append(rows, entity.RankedStore{
				Country:         country,
				StoreKey:        st.store.StoreKey,
				State:           st.store.State,
				TotalRevenueUSD: st.revenue,
				Rank:            i + 1,
			})
		}
	}
	return rows
}

// StoreRevenueShare computes, for every store, its revenue, its
// country-scoped rank (ties share a rank and the following rank jumps, as in
// standard competition ranking), its country's total revenue, and its
// percentage share of that total. The share is nil when the country total is
// zero. Rows come back ordered by country ascending, then rank ascending.
func (e *Engine) StoreRevenueShare() []entity.StoreShare {
	countries, partitions := e.storesByCountry()

	var rows []entity.StoreShare
	for _, country := range countries {
		stores := partitions[country]

		countryTotal := 0.0
		for _, st := range stores {
			countryTotal += st.revenue
		}

		rank := 0
		for i, st := range stores {
			if i == 0 || st.revenue != stores[i-1].revenue {
				rank = i + 1
			}
			row := entity.StoreShare{
				Country:         country,
				StoreKey:        st.store.StoreKey,
				TotalRevenueUSD: st.revenue,
				CountryRank:     rank,
				CountryTotalUSD: countryTotal,
			}
			if countryTotal != 0 {
				share := 100 * st.revenue / countryTotal
				row.SharePct = &share
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// UnderperformingStores buckets each country's stores into four ordered
// buckets by descending revenue, sized the way NTILE sizes them (remainder
// rows fill the earlier buckets), and returns the bottom bucket only. Rows
// come back ordered by country ascending, then revenue ascending, then store
// key ascending. A country with fewer than four stores has an empty bottom
// bucket and contributes nothing.
func (e *Engine) UnderperformingStores() []entity.QuartileStore {
	countries, partitions := e.storesByCountry()

	var rows []entity.QuartileStore
	for _, country := range countries {
		stores := partitions[country]

		var bottom []entity.QuartileStore
		for i, st := range stores {
			if quartileOf(i, len(stores)) == 4 {
				bottom = append(bottom, entity.QuartileStore{
					Country:         country,
					StoreKey:        st.store.StoreKey,
					TotalRevenueUSD: st.revenue,
					Quartile:        4,
				})
			}
		}

		sort.Slice(bottom, func(i, j int) bool {
			if bottom[i].TotalRevenueUSD != bottom[j].TotalRevenueUSD {
				return bottom[i].TotalRevenueUSD < bottom[j].TotalRevenueUSD
			}
			return bottom[i].StoreKey < bottom[j].StoreKey
		})
		rows = append(rows, bottom...)
	}
	return rows
}

// quartileOf returns the 1-based bucket for the row at position idx of a
// partition with n rows, bucketed into four: the first n%4 buckets hold one
// row more than the rest.
func quartileOf(idx, n int) int {
	base := n / 4
	extra := n % 4

	threshold := 0
	for bucket := 1; bucket <= 4; bucket++ {
		size := base
		if bucket <= extra {
			size++
		}
		threshold += size
		if idx < threshold {
			return bucket
		}
	}
	return 4
}
