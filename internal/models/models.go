package models

// APIResponse is the standard JSON envelope for all API responses.
type APIResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta contains list metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// UserInfo is the public view of a user. Password hashes never leave the
// Users sheet.
type UserInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LogEntry is one row of the merged activity view: stored activity records
// and asset movements rendered in a single shape, newest first.
type LogEntry struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	Type        string `json:"type"`
	User        string `json:"user"`
	Action      string `json:"action"`
	EntityType  string `json:"entity_type"`
	EntityID    string `json:"entity_id"`
	Description string `json:"description"`
	Details     string `json:"details"`
}

// Dashboard aggregates the asset register for the landing page.
type Dashboard struct {
	TotalAssets    int            `json:"total_assets"`
	TotalValue     float64        `json:"total_value"`
	ByCategory     map[string]int `json:"by_category"`
	ByLocation     map[string]int `json:"by_location"`
	ByStatus       map[string]int `json:"by_status"`
	TopBrands      []BrandCount   `json:"top_brands"`
	RecentActivity []LogEntry     `json:"recent_activity"`
}

// BrandCount is one bar of the dashboard brand chart.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// DepreciationRow is one asset's straight-line depreciation figures.
type DepreciationRow struct {
	AssetCode          string  `json:"asset_code"`
	ItemName           string  `json:"item_name"`
	Category           string  `json:"category"`
	Location           string  `json:"location"`
	Status             string  `json:"status"`
	PurchaseDate       string  `json:"purchase_date"`
	Amount             float64 `json:"amount"`
	AgeYears           float64 `json:"age_years"`
	Percent            float64 `json:"depreciation_percent"`
	AnnualDepreciation float64 `json:"annual_depreciation"`
	TotalDepreciation  float64 `json:"total_depreciation"`
	CurrentValue       float64 `json:"current_value"`
}

// DepreciationTotals sums the per-asset figures.
type DepreciationTotals struct {
	Amount             float64 `json:"total_amount"`
	AnnualDepreciation float64 `json:"total_annual_depreciation"`
	TotalDepreciation  float64 `json:"total_depreciation"`
	CurrentValue       float64 `json:"total_current_value"`
}

// DepreciationReport is the full calculator output.
type DepreciationReport struct {
	Rows   []DepreciationRow  `json:"rows"`
	Totals DepreciationTotals `json:"totals"`
}

// BarcodeLabel carries what the label printer needs for one asset.
type BarcodeLabel struct {
	AssetCode string `json:"asset_code"`
	ItemName  string `json:"item_name"`
	Location  string `json:"location"`
	ImageURL  string `json:"image_url"`
}
