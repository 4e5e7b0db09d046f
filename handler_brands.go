package main

import (
	"fmt"
	"net/http"
	"strings"

	"aims/internal/sheetdb"
)

func handleListBrands(w http.ResponseWriter, r *http.Request) {
	rows := store.GetAll(sheetdb.SheetBrands)
	jsonRespMeta(w, rows, len(rows))
}

func handleAddBrand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonErr(w, "name required", 400)
		return
	}
	for _, row := range store.GetAll(sheetdb.SheetBrands) {
		if strings.EqualFold(row["Brand Name"], req.Name) {
			jsonErr(w, "Brand already exists", 409)
			return
		}
	}

	id := fmt.Sprint(store.NextID(sheetdb.SheetBrands))
	if !store.Insert(sheetdb.SheetBrands, sheetdb.Row{"ID": id, "Brand Name": req.Name}) {
		jsonErr(w, "Failed to add brand", 500)
		return
	}
	logActivity(currentUsername(r), "create", "brand", id, "Added brand "+req.Name)

	w.WriteHeader(201)
	jsonResp(w, sheetdb.Row{"ID": id, "Brand Name": req.Name})
}

func handleDeleteBrand(w http.ResponseWriter, r *http.Request, id string) {
	if !requireAdmin(w, r) {
		return
	}
	row, found := store.GetByID(sheetdb.SheetBrands, "ID", id)
	if !found || !store.Delete(sheetdb.SheetBrands, "ID", id) {
		jsonErr(w, "Brand not found", 404)
		return
	}
	logActivity(currentUsername(r), "delete", "brand", id, "Deleted brand "+row["Brand Name"])
	jsonResp(w, map[string]string{"status": "deleted"})
}
