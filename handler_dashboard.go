package main

import (
	"net/http"
	"sort"
	"strconv"

	"aims/internal/sheetdb"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	assets := store.GetAll(sheetdb.SheetAssets)

	d := Dashboard{
		TotalAssets: len(assets),
		ByCategory:  map[string]int{},
		ByLocation:  map[string]int{},
		ByStatus:    map[string]int{},
	}

	brandCounts := map[string]int{}
	for _, a := range assets {
		if v := a["Asset Category"]; v != "" {
			d.ByCategory[v]++
		}
		if v := a["Location"]; v != "" {
			d.ByLocation[v]++
		}
		if v := a["Asset Status"]; v != "" {
			d.ByStatus[v]++
		}
		if v := a["Brand"]; v != "" {
			brandCounts[v]++
		}
		if amount, err := strconv.ParseFloat(a["Amount"], 64); err == nil {
			d.TotalValue += amount
		}
	}

	d.TopBrands = topBrands(brandCounts, 10)

	recent := collectLogs()
	if len(recent) > 10 {
		recent = recent[:10]
	}
	d.RecentActivity = recent

	jsonResp(w, d)
}

// topBrands ranks brands by count, ties broken alphabetically for a stable
// chart.
func topBrands(counts map[string]int, n int) []BrandCount {
	out := make([]BrandCount, 0, len(counts))
	for brand, count := range counts {
		out = append(out, BrandCount{Brand: brand, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Brand < out[j].Brand
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
