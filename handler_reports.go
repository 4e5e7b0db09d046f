package main

import (
	"net/http"
	"sort"
	"strings"

	"aims/internal/sheetdb"
)

// filteredAssets applies the asset report filters: exact category, location
// and department, plus a free-text search over code, name and brand.
func filteredAssets(r *http.Request) []sheetdb.Row {
	q := r.URL.Query()
	category := q.Get("category")
	location := q.Get("location")
	department := q.Get("department")
	search := strings.ToLower(q.Get("search"))

	var out []sheetdb.Row
	for _, a := range store.GetAll(sheetdb.SheetAssets) {
		if category != "" && a["Asset Category"] != category {
			continue
		}
		if location != "" && a["Location"] != location {
			continue
		}
		if department != "" && a["Department"] != department {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(a["Asset Code"] + " " + a["Item Name"] + " " + a["Brand"])
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func handleReportAssets(w http.ResponseWriter, r *http.Request) {
	rows := filteredAssets(r)
	jsonRespMeta(w, rows, len(rows))
}

func handleExportReportAssets(w http.ResponseWriter, r *http.Request) {
	headers := sheetdb.CanonicalHeaders[sheetdb.SheetAssets]
	var data [][]string
	for _, a := range filteredAssets(r) {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = a[h]
		}
		data = append(data, row)
	}
	exportTabular(w, r, "assets_report", "Assets", headers, data)
}

// filteredMovements applies the movement report filters, newest first.
func filteredMovements(r *http.Request) []sheetdb.Row {
	q := r.URL.Query()
	assetCode := q.Get("asset_code")
	from := q.Get("from_location")
	to := q.Get("to_location")
	movedBy := q.Get("moved_by")
	dateFrom := q.Get("date_from")
	dateTo := q.Get("date_to")

	var out []sheetdb.Row
	for _, m := range store.GetAll(sheetdb.SheetAssetMovements) {
		if assetCode != "" && m["Asset Code"] != assetCode {
			continue
		}
		if from != "" && m["From Location"] != from {
			continue
		}
		if to != "" && m["To Location"] != to {
			continue
		}
		if movedBy != "" && !strings.EqualFold(m["Moved By"], movedBy) {
			continue
		}
		date := m["Movement Date"]
		if dateFrom != "" && date < dateFrom {
			continue
		}
		if dateTo != "" && date > dateTo {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i]["Movement Date"] > out[j]["Movement Date"]
	})
	return out
}

func handleReportMovements(w http.ResponseWriter, r *http.Request) {
	rows := filteredMovements(r)
	jsonRespMeta(w, rows, len(rows))
}

func handleExportReportMovements(w http.ResponseWriter, r *http.Request) {
	headers := sheetdb.CanonicalHeaders[sheetdb.SheetAssetMovements]
	var data [][]string
	for _, m := range filteredMovements(r) {
		row := make([]string, len(headers))
		for i, h := range headers {
			row[i] = m[h]
		}
		data = append(data, row)
	}
	exportTabular(w, r, "movements_report", "Movements", headers, data)
}
