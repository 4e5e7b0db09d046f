package main

import "aims/internal/models"

// Aliases into internal/models so handlers stay terse.
type (
	APIResponse        = models.APIResponse
	Meta               = models.Meta
	UserInfo           = models.UserInfo
	LogEntry           = models.LogEntry
	Dashboard          = models.Dashboard
	BrandCount         = models.BrandCount
	DepreciationRow    = models.DepreciationRow
	DepreciationTotals = models.DepreciationTotals
	DepreciationReport = models.DepreciationReport
	BarcodeLabel       = models.BarcodeLabel
)
