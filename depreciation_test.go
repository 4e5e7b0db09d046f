package main

import (
	"math"
	"testing"
	"time"

	"aims/internal/sheetdb"
)

var electronicsRate = []sheetdb.Row{
	{"Asset Code": "ELEC", "Asset Type": "Electronics", "Depreciation Value (%)": "10"},
	{"Asset Code": "FURN", "Asset Type": "Furniture", "Depreciation Value (%)": "0"},
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestDepreciationStraightLine(t *testing.T) {
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Exactly two years of age under the days/365.25 convention.
	today := purchase.Add(time.Duration(2*365.25*24) * time.Hour)

	assets := []sheetdb.Row{{
		"Asset Code":       "AST-1",
		"Item Name":        "Laptop",
		"Asset Category":   "Electronics",
		"Amount":           "1200",
		"Date of Purchase": purchase.Format("2006-01-02"),
	}}

	report := CalculateDepreciation(assets, electronicsRate, DepreciationFilters{}, today)
	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	approx(t, "age", row.AgeYears, 2)
	approx(t, "annual", row.AnnualDepreciation, 120)
	approx(t, "total", row.TotalDepreciation, 240)
	approx(t, "current", row.CurrentValue, 960)
	approx(t, "totals.current", report.Totals.CurrentValue, 960)
}

func TestDepreciationZeroPercentKeepsFullValue(t *testing.T) {
	assets := []sheetdb.Row{{
		"Asset Code":       "AST-2",
		"Asset Category":   "Furniture",
		"Amount":           "500",
		"Date of Purchase": "2020-01-01",
	}}
	report := CalculateDepreciation(assets, electronicsRate, DepreciationFilters{}, time.Now())
	row := report.Rows[0]
	approx(t, "annual", row.AnnualDepreciation, 0)
	approx(t, "current", row.CurrentValue, 500)
}

func TestDepreciationUnparsableDateMeansNoAge(t *testing.T) {
	assets := []sheetdb.Row{{
		"Asset Code":       "AST-3",
		"Asset Category":   "Electronics",
		"Amount":           "800",
		"Date of Purchase": "sometime last year",
	}}
	report := CalculateDepreciation(assets, electronicsRate, DepreciationFilters{}, time.Now())
	row := report.Rows[0]
	approx(t, "age", row.AgeYears, 0)
	approx(t, "current", row.CurrentValue, 800)
}

func TestDepreciationFutureDateClampedToZero(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	assets := []sheetdb.Row{{
		"Asset Code":       "AST-4",
		"Asset Category":   "Electronics",
		"Amount":           "900",
		"Date of Purchase": future,
	}}
	report := CalculateDepreciation(assets, electronicsRate, DepreciationFilters{}, time.Now())
	approx(t, "age", report.Rows[0].AgeYears, 0)
	approx(t, "current", report.Rows[0].CurrentValue, 900)
}

func TestDepreciationNeverNegative(t *testing.T) {
	// 10% over 15 years exceeds the purchase price; value floors at zero.
	purchase := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assets := []sheetdb.Row{{
		"Asset Code":       "AST-5",
		"Asset Category":   "Electronics",
		"Amount":           "1000",
		"Date of Purchase": purchase.Format("2006-01-02"),
	}}
	report := CalculateDepreciation(assets, electronicsRate, DepreciationFilters{}, today)
	approx(t, "current", report.Rows[0].CurrentValue, 0)
}

func TestPurchaseDateLayoutOrder(t *testing.T) {
	iso := parsePurchaseDate("2023-05-01")
	dayFirst := parsePurchaseDate("01/05/2023")
	if iso.IsZero() || dayFirst.IsZero() {
		t.Fatal("expected both layouts to parse")
	}
	// 01/05/2023 reads day/month first, so both are 1 May 2023.
	if !iso.Equal(dayFirst) {
		t.Fatalf("layout order changed: %v vs %v", iso, dayFirst)
	}
}

func TestDepreciationBlankAmount(t *testing.T) {
	assets := []sheetdb.Row{{
		"Asset Code":       "AST-6",
		"Asset Category":   "Electronics",
		"Amount":           "",
		"Date of Purchase": "2020-01-01",
	}}
	report := CalculateDepreciation(assets, electronicsRate, DepreciationFilters{}, time.Now())
	approx(t, "amount", report.Rows[0].Amount, 0)
	approx(t, "current", report.Rows[0].CurrentValue, 0)
}

func TestDepreciationFilters(t *testing.T) {
	assets := []sheetdb.Row{
		{"Asset Code": "A", "Asset Category": "Electronics", "Location": "HQ", "Asset Status": "In Use", "Amount": "100"},
		{"Asset Code": "B", "Asset Category": "Furniture", "Location": "HQ", "Asset Status": "In Use", "Amount": "200"},
		{"Asset Code": "C", "Asset Category": "Electronics", "Location": "Warehouse", "Asset Status": "Retired", "Amount": "300"},
	}

	report := CalculateDepreciation(assets, nil, DepreciationFilters{Category: "Electronics"}, time.Now())
	if len(report.Rows) != 2 {
		t.Fatalf("category filter: got %d rows", len(report.Rows))
	}

	report = CalculateDepreciation(assets, nil, DepreciationFilters{Category: "Electronics", Location: "HQ"}, time.Now())
	if len(report.Rows) != 1 || report.Rows[0].AssetCode != "A" {
		t.Fatalf("combined filter: %+v", report.Rows)
	}

	report = CalculateDepreciation(assets, nil, DepreciationFilters{Status: "Retired"}, time.Now())
	if len(report.Rows) != 1 || report.Rows[0].AssetCode != "C" {
		t.Fatalf("status filter: %+v", report.Rows)
	}
	approx(t, "totals.amount", report.Totals.Amount, 300)
}
