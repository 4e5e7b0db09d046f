package main

import (
	"fmt"
	"net/http"
	"time"

	"aims/internal/sheetdb"
)

func depreciationFromQuery(r *http.Request) DepreciationReport {
	filters := DepreciationFilters{
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
		Status:   r.URL.Query().Get("status"),
	}
	return CalculateDepreciation(
		store.GetAll(sheetdb.SheetAssets),
		store.GetAll(sheetdb.SheetAssetTypes),
		filters,
		time.Now(),
	)
}

func handleDepreciation(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, depreciationFromQuery(r))
}

func handleExportDepreciation(w http.ResponseWriter, r *http.Request) {
	report := depreciationFromQuery(r)

	headers := []string{
		"Asset Code", "Item Name", "Category", "Location", "Status",
		"Purchase Date", "Amount", "Age (Years)", "Depreciation %",
		"Annual Depreciation", "Total Depreciation", "Current Value",
	}
	rows := make([][]string, 0, len(report.Rows)+1)
	for _, row := range report.Rows {
		rows = append(rows, []string{
			row.AssetCode, row.ItemName, row.Category, row.Location,
			row.Status, row.PurchaseDate,
			fmt.Sprintf("%.2f", row.Amount),
			fmt.Sprintf("%.2f", row.AgeYears),
			fmt.Sprintf("%.2f", row.Percent),
			fmt.Sprintf("%.2f", row.AnnualDepreciation),
			fmt.Sprintf("%.2f", row.TotalDepreciation),
			fmt.Sprintf("%.2f", row.CurrentValue),
		})
	}
	rows = append(rows, []string{
		"TOTAL", "", "", "", "", "",
		fmt.Sprintf("%.2f", report.Totals.Amount),
		"", "",
		fmt.Sprintf("%.2f", report.Totals.AnnualDepreciation),
		fmt.Sprintf("%.2f", report.Totals.TotalDepreciation),
		fmt.Sprintf("%.2f", report.Totals.CurrentValue),
	})

	exportTabular(w, r, "depreciation_report", "Depreciation", headers, rows)
}
