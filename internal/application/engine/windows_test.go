package engine

import (
	"testing"
)

func TestTopStoresByCountry(t *testing.T) {
	ds := storesWithRevenue(t, map[string][]float64{
		"Brazil": {500, 400, 300, 200, 100},
		"Chile":  {50},
	})

	rows := New(ds).TopStoresByCountry()
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4 (3 for Brazil, 1 for Chile)", len(rows))
	}

	perCountry := map[string]int{}
	for _, row := range rows {
		perCountry[row.Country]++
		if row.Rank < 1 || row.Rank > 3 {
			t.Errorf("store %d has rank %d, want 1..3", row.StoreKey, row.Rank)
		}
	}
	if perCountry["Brazil"] != 3 || perCountry["Chile"] != 1 {
		t.Errorf("rows per country = %v, want Brazil:3 Chile:1", perCountry)
	}

	wantRevenue := []float64{500, 400, 300, 50}
	for i, row := range rows {
		if !floatEq(row.TotalRevenueUSD, wantRevenue[i]) {
			t.Errorf("row %d revenue = %v, want %v", i, row.TotalRevenueUSD, wantRevenue[i])
		}
		if row.Rank != i%3+1 && row.Country == "Brazil" {
			t.Errorf("row %d rank = %d", i, row.Rank)
		}
	}

	// Within each country revenue never increases.
	for i := 1; i < len(rows); i++ {
		if rows[i].Country == rows[i-1].Country && rows[i].TotalRevenueUSD > rows[i-1].TotalRevenueUSD {
			t.Errorf("revenue increases within %s at row %d", rows[i].Country, i)
		}
	}
}

func TestTopStoresByCountryBreaksTiesByStoreKey(t *testing.T) {
	ds := storesWithRevenue(t, map[string][]float64{
		"Peru": {100, 100, 100, 100},
	})

	rows := New(ds).TopStoresByCountry()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, row := range rows {
		if row.StoreKey != i+1 {
			t.Errorf("row %d store = %d, want %d (store key ascending on ties)", i, row.StoreKey, i+1)
		}
		if row.Rank != i+1 {
			t.Errorf("row %d rank = %d, want %d (strict ranking, no shared ranks)", i, row.Rank, i+1)
		}
	}
}

func TestStoreRevenueShare(t *testing.T) {
	ds := storesWithRevenue(t, map[string][]float64{
		"Norway": {300, 100, 100, 50},
	})

	rows := New(ds).StoreRevenueShare()
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	wantRanks := []int{1, 2, 2, 4}
	wantShares := []float64{
		100 * 300 / 550.0,
		100 * 100 / 550.0,
		100 * 100 / 550.0,
		100 * 50 / 550.0,
	}
	for i, row := range rows {
		if row.CountryRank != wantRanks[i] {
			t.Errorf("row %d rank = %d, want %d (ties share, next rank jumps)", i, row.CountryRank, wantRanks[i])
		}
		if !floatEq(row.CountryTotalUSD, 550) {
			t.Errorf("row %d country total = %v, want 550", i, row.CountryTotalUSD)
		}
		if row.SharePct == nil {
			t.Fatalf("row %d share is nil", i)
		}
		if !floatEq(*row.SharePct, wantShares[i]) {
			t.Errorf("row %d share = %v, want %v", i, *row.SharePct, wantShares[i])
		}
	}
}

func TestStoreRevenueShareZeroCountryTotal(t *testing.T) {
	ds := storesWithRevenue(t, map[string][]float64{
		"Iceland": {0, 0},
	})

	rows := New(ds).StoreRevenueShare()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for i, row := range rows {
		if row.SharePct != nil {
			t.Errorf("row %d share = %v, want nil when country total is zero", i, *row.SharePct)
		}
		if row.CountryRank != 1 {
			t.Errorf("row %d rank = %d, want shared rank 1", i, row.CountryRank)
		}
	}
}

func TestUnderperformingStores(t *testing.T) {
	ds := storesWithRevenue(t, map[string][]float64{
		"Spain": {800, 700, 600, 500, 400, 300, 200, 100},
		"Italy": {90, 80, 70, 60, 50},
	})

	rows := New(ds).UnderperformingStores()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (2 for Spain, 1 for Italy)", len(rows))
	}

	// Countries ascending, revenue ascending inside each.
	if rows[0].Country != "Italy" || !floatEq(rows[0].TotalRevenueUSD, 50) {
		t.Errorf("row 0 = %+v, want Italy store with revenue 50", rows[0])
	}
	if rows[1].Country != "Spain" || !floatEq(rows[1].TotalRevenueUSD, 100) {
		t.Errorf("row 1 = %+v, want Spain store with revenue 100", rows[1])
	}
	if rows[2].Country != "Spain" || !floatEq(rows[2].TotalRevenueUSD, 200) {
		t.Errorf("row 2 = %+v, want Spain store with revenue 200", rows[2])
	}
	for _, row := range rows {
		if row.Quartile != 4 {
			t.Errorf("store %d quartile = %d, want 4", row.StoreKey, row.Quartile)
		}
	}
}

func TestUnderperformingStoresSkipsSmallCountries(t *testing.T) {
	ds := storesWithRevenue(t, map[string][]float64{
		"Malta": {30, 20, 10},
	})

	rows := New(ds).UnderperformingStores()
	if len(rows) != 0 {
		t.Errorf("got %d rows for a 3-store country, want 0 (no fourth bucket)", len(rows))
	}
}

func TestQuartileOfPartitionsEveryRowOnce(t *testing.T) {
	for n := 1; n <= 12; n++ {
		counts := map[int]int{}
		prev := 1
		for idx := 0; idx < n; idx++ {
			b := quartileOf(idx, n)
			if b < 1 || b > 4 {
				t.Fatalf("n=%d idx=%d: bucket %d out of range", n, idx, b)
			}
			if b < prev {
				t.Fatalf("n=%d idx=%d: bucket %d after bucket %d, order must be non-decreasing", n, idx, b, prev)
			}
			prev = b
			counts[b]++
		}

		total := 0
		for _, c := range counts {
			total += c
		}
		if total != n {
			t.Fatalf("n=%d: buckets hold %d rows", n, total)
		}

		// Earlier buckets are never smaller, and sizes differ by at most one.
		for b := 1; b < 4; b++ {
			if counts[b] < counts[b+1] {
				t.Errorf("n=%d: bucket %d holds %d rows, bucket %d holds %d", n, b, counts[b], b+1, counts[b+1])
			}
			if counts[b]-counts[b+1] > 1 {
				t.Errorf("n=%d: bucket sizes %d and %d differ by more than one", n, counts[b], counts[b+1])
			}
		}
	}
}

func TestUnderperformingStoresBottomBucketHasLowestRevenue(t *testing.T) {
	ds := storesWithRevenue(t, map[string][]float64{
		"Spain": {800, 700, 600, 500, 400, 300, 200, 100},
	})

	e := New(ds)
	bottom := e.UnderperformingStores()
	if len(bottom) == 0 {
		t.Fatal("expected a bottom bucket")
	}

	maxBottom := bottom[len(bottom)-1].TotalRevenueUSD
	inBottom := map[int]bool{}
	for _, row := range bottom {
		inBottom[row.StoreKey] = true
	}
	for _, st := range e.RevenueByStore() {
		if !inBottom[st.StoreKey] && st.TotalRevenueUSD < maxBottom {
			t.Errorf("store %d has revenue %v below the bottom bucket's maximum %v but is not in it",
				st.StoreKey, st.TotalRevenueUSD, maxBottom)
		}
	}
}
