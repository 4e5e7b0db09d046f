package main

import (
	"fmt"
	"net/http"
	"strings"

	"aims/internal/sheetdb"
)

func handleListLocations(w http.ResponseWriter, r *http.Request) {
	rows := store.GetAll(sheetdb.SheetLocations)
	jsonRespMeta(w, rows, len(rows))
}

func handleAddLocation(w http.ResponseWriter, r *http.Request) {
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
	for _, row := range store.GetAll(sheetdb.SheetLocations) {
		if strings.EqualFold(row["Location Name"], req.Name) {
			jsonErr(w, "Location already exists", 409)
			return
		}
	}

	id := fmt.Sprint(store.NextID(sheetdb.SheetLocations))
	if !store.Insert(sheetdb.SheetLocations, sheetdb.Row{"ID": id, "Location Name": req.Name}) {
		jsonErr(w, "Failed to add location", 500)
		return
	}
	logActivity(currentUsername(r), "create", "location", id, "Added location "+req.Name)

	w.WriteHeader(201)
	jsonResp(w, sheetdb.Row{"ID": id, "Location Name": req.Name})
}

func handleDeleteLocation(w http.ResponseWriter, r *http.Request, id string) {
	if !requireAdmin(w, r) {
		return
	}
	row, found := store.GetByID(sheetdb.SheetLocations, "ID", id)
	if !found || !store.Delete(sheetdb.SheetLocations, "ID", id) {
		jsonErr(w, "Location not found", 404)
		return
	}
	logActivity(currentUsername(r), "delete", "location", id, "Deleted location "+row["Location Name"])
	jsonResp(w, map[string]string{"status": "deleted"})
}
