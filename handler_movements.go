package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"aims/internal/sheetdb"
)

func handleListMovements(w http.ResponseWriter, r *http.Request) {
	rows := store.GetAll(sheetdb.SheetAssetMovements)
	jsonRespMeta(w, rows, len(rows))
}

// handleCreateMovement records the movement and relocates the asset. The
// two writes are not atomic; the movement row lands first so a failed
// relocation still leaves an audit trail.
func handleCreateMovement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssetCode    string `json:"asset_code"`
		ToLocation   string `json:"to_location"`
		MovementDate string `json:"movement_date"`
		Notes        string `json:"notes"`
	}
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	req.AssetCode = strings.TrimSpace(req.AssetCode)
	req.ToLocation = strings.TrimSpace(req.ToLocation)
	if req.AssetCode == "" || req.ToLocation == "" {
		jsonErr(w, "asset_code and to_location required", 400)
		return
	}

	asset, found := store.GetByID(sheetdb.SheetAssets, "Asset Code", req.AssetCode)
	if !found {
		jsonErr(w, "Asset not found", 404)
		return
	}

	if req.MovementDate == "" {
		req.MovementDate = time.Now().Format("2006-01-02")
	}
	movedBy := currentUsername(r)
	from := asset["Location"]

	id := fmt.Sprint(store.NextID(sheetdb.SheetAssetMovements))
	row := sheetdb.Row{
		"ID":            id,
		"Asset Code":    req.AssetCode,
		"From Location": from,
		"To Location":   req.ToLocation,
		"Movement Date": req.MovementDate,
		"Moved By":      movedBy,
		"Notes":         req.Notes,
	}
	if !store.Insert(sheetdb.SheetAssetMovements, row) {
		jsonErr(w, "Failed to record movement", 500)
		return
	}

	if !store.Update(sheetdb.SheetAssets, "Asset Code", req.AssetCode, sheetdb.Row{"Location": req.ToLocation}) {
		jsonErr(w, "Movement recorded but asset not relocated", 500)
		return
	}

	logActivity(movedBy, "move", "asset", req.AssetCode,
		fmt.Sprintf("Moved %s from %s to %s", asset["Item Name"], from, req.ToLocation))

	w.WriteHeader(201)
	jsonResp(w, row)
}
