package main

import (
	"strconv"
	"time"

	"aims/internal/sheetdb"
)

// purchaseDateLayouts are tried in order; the first that parses wins. An
// ambiguous value like 01/02/2024 therefore reads as day/month first.
var purchaseDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
}

// DepreciationFilters narrow the calculation to matching assets. Empty
// fields match everything; comparisons are exact strings.
type DepreciationFilters struct {
	Category string
	Location string
	Status   string
}

func (f DepreciationFilters) match(asset sheetdb.Row) bool {
	if f.Category != "" && asset["Asset Category"] != f.Category {
		return false
	}
	if f.Location != "" && asset["Location"] != f.Location {
		return false
	}
	if f.Status != "" && asset["Asset Status"] != f.Status {
		return false
	}
	return true
}

// parsePurchaseDate returns the zero time when no layout matches.
func parsePurchaseDate(s string) time.Time {
	for _, layout := range purchaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ageYears converts a purchase date to fractional years before today,
// clamped at zero for future dates and unparsable values.
func ageYears(purchase, today time.Time) float64 {
	if purchase.IsZero() {
		return 0
	}
	days := today.Sub(purchase).Hours() / 24
	years := days / 365.25
	if years < 0 {
		return 0
	}
	return years
}

// CalculateDepreciation computes straight-line depreciation for every asset
// passing the filters. The percentage comes from the asset's type name (its
// category when no type is set) looked up in the AssetTypes rows; assets
// with no amount, no rate, or no age keep their full purchase value.
func CalculateDepreciation(assets, assetTypes []sheetdb.Row, filters DepreciationFilters, today time.Time) DepreciationReport {
	rates := make(map[string]float64, len(assetTypes))
	for _, at := range assetTypes {
		if name := at["Asset Type"]; name != "" {
			pct, _ := strconv.ParseFloat(at["Depreciation Value (%)"], 64)
			rates[name] = pct
		}
	}

	report := DepreciationReport{Rows: []DepreciationRow{}}
	for _, asset := range assets {
		if !filters.match(asset) {
			continue
		}

		amount, _ := strconv.ParseFloat(asset["Amount"], 64)
		age := ageYears(parsePurchaseDate(asset["Date of Purchase"]), today)

		rateKey := asset["Asset Type"]
		if rateKey == "" {
			rateKey = asset["Asset Category"]
		}
		percent := rates[rateKey]

		var annual, total, current float64
		if amount > 0 && percent > 0 && age > 0 {
			annual = amount * percent / 100
			total = annual * age
			current = amount - total
			if current < 0 {
				current = 0
			}
		} else {
			current = amount
		}

		report.Rows = append(report.Rows, DepreciationRow{
			AssetCode:          asset["Asset Code"],
			ItemName:           asset["Item Name"],
			Category:           asset["Asset Category"],
			Location:           asset["Location"],
			Status:             asset["Asset Status"],
			PurchaseDate:       asset["Date of Purchase"],
			Amount:             amount,
			AgeYears:           age,
			Percent:            percent,
			AnnualDepreciation: annual,
			TotalDepreciation:  total,
			CurrentValue:       current,
		})

		report.Totals.Amount += amount
		report.Totals.AnnualDepreciation += annual
		report.Totals.TotalDepreciation += total
		report.Totals.CurrentValue += current
	}
	return report
}
