package main

import (
	"fmt"
	"net/http"
	"strings"

	"aims/internal/sheetdb"
)

func handleListCategories(w http.ResponseWriter, r *http.Request) {
	rows := store.GetAll(sheetdb.SheetCategories)
	jsonRespMeta(w, rows, len(rows))
}

func handleAddCategory(w http.ResponseWriter, r *http.Request) {
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
	for _, row := range store.GetAll(sheetdb.SheetCategories) {
		if strings.EqualFold(row["Category Name"], req.Name) {
			jsonErr(w, "Category already exists", 409)
			return
		}
	}

	id := fmt.Sprint(store.NextID(sheetdb.SheetCategories))
	if !store.Insert(sheetdb.SheetCategories, sheetdb.Row{"ID": id, "Category Name": req.Name}) {
		jsonErr(w, "Failed to add category", 500)
		return
	}
	logActivity(currentUsername(r), "create", "category", id, "Added category "+req.Name)

	w.WriteHeader(201)
	jsonResp(w, sheetdb.Row{"ID": id, "Category Name": req.Name})
}

func handleDeleteCategory(w http.ResponseWriter, r *http.Request, id string) {
	if !requireAdmin(w, r) {
		return
	}
	row, found := store.GetByID(sheetdb.SheetCategories, "ID", id)
	if !found || !store.Delete(sheetdb.SheetCategories, "ID", id) {
		jsonErr(w, "Category not found", 404)
		return
	}
	logActivity(currentUsername(r), "delete", "category", id, "Deleted category "+row["Category Name"])
	jsonResp(w, map[string]string{"status": "deleted"})
}
