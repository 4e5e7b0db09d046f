package sheetdb

// Sheet names used by the application.
const (
	SheetUsers          = "Users"
	SheetLocations      = "Locations"
	SheetCategories     = "Categories"
	SheetSubcategories  = "Subcategories"
	SheetAssetTypes     = "AssetTypes"
	SheetBrands         = "Brands"
	SheetAssets         = "Assets"
	SheetAssetMovements = "AssetMovements"
	SheetActivityLogs   = "ActivityLogs"
)

// RequiredSheets lists every sheet the store initializes on open, in
// creation order.
var RequiredSheets = []string{
	SheetUsers, SheetLocations, SheetCategories, SheetSubcategories,
	SheetAssetTypes, SheetBrands, SheetAssets, SheetAssetMovements,
	SheetActivityLogs,
}

// CanonicalHeaders maps each sheet to its expected header row. Header
// reconciliation appends missing headers after the existing columns and
// never reorders or removes columns already present in the backend.
var CanonicalHeaders = map[string][]string{
	SheetUsers:         {"Username", "Email", "Password", "Role"},
	SheetLocations:     {"ID", "Location Name"},
	SheetCategories:    {"ID", "Category Name"},
	SheetSubcategories: {"ID", "Subcategory Name", "Category ID"},
	SheetAssetTypes:    {"Asset Code", "Asset Type", "Depreciation Value (%)"},
	SheetBrands:        {"ID", "Brand Name"},
	SheetAssets: {
		"Asset Code", "Item Name", "Asset Category", "Asset SubCategory",
		"Brand", "Asset Description", "Amount", "Location",
		"Date of Purchase", "Warranty", "Department", "Ownership",
		"Asset Status", "Image Attachment", "Document Attachment",
	},
	SheetAssetMovements: {
		"ID", "Asset Code", "From Location", "To Location",
		"Movement Date", "Moved By", "Notes",
	},
	SheetActivityLogs: {
		"ID", "Date & Time", "Type", "User", "Action", "Entity Type",
		"Entity ID", "Description", "Details",
	},
}
