package main

import (
	"net/http"
	"strconv"
	"strings"

	"aims/internal/sheetdb"
)

// Asset types are keyed by Asset Code rather than a numeric ID; the code
// doubles as the lookup key for depreciation percentages.
func handleListAssetTypes(w http.ResponseWriter, r *http.Request) {
	rows := store.GetAll(sheetdb.SheetAssetTypes)
	jsonRespMeta(w, rows, len(rows))
}

func handleAddAssetType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssetCode         string `json:"asset_code"`
		AssetType         string `json:"asset_type"`
		DepreciationValue string `json:"depreciation_value"`
	}
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	req.AssetCode = strings.TrimSpace(req.AssetCode)
	req.AssetType = strings.TrimSpace(req.AssetType)
	if req.AssetCode == "" || req.AssetType == "" {
		jsonErr(w, "asset_code and asset_type required", 400)
		return
	}
	if req.DepreciationValue != "" {
		if _, err := strconv.ParseFloat(req.DepreciationValue, 64); err != nil {
			jsonErr(w, "depreciation_value must be numeric", 400)
			return
		}
	}
	if _, exists := store.GetByID(sheetdb.SheetAssetTypes, "Asset Code", req.AssetCode); exists {
		jsonErr(w, "Asset type code already exists", 409)
		return
	}

	row := sheetdb.Row{
		"Asset Code":             req.AssetCode,
		"Asset Type":             req.AssetType,
		"Depreciation Value (%)": req.DepreciationValue,
	}
	if !store.Insert(sheetdb.SheetAssetTypes, row) {
		jsonErr(w, "Failed to add asset type", 500)
		return
	}
	logActivity(currentUsername(r), "create", "assettype", req.AssetCode, "Added asset type "+req.AssetType)

	w.WriteHeader(201)
	jsonResp(w, row)
}

func handleDeleteAssetType(w http.ResponseWriter, r *http.Request, code string) {
	if !requireAdmin(w, r) {
		return
	}
	row, found := store.GetByID(sheetdb.SheetAssetTypes, "Asset Code", code)
	if !found || !store.Delete(sheetdb.SheetAssetTypes, "Asset Code", code) {
		jsonErr(w, "Asset type not found", 404)
		return
	}
	logActivity(currentUsername(r), "delete", "assettype", code, "Deleted asset type "+row["Asset Type"])
	jsonResp(w, map[string]string{"status": "deleted"})
}
