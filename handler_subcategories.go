package main

import (
	"fmt"
	"net/http"
	"strings"

	"aims/internal/sheetdb"
)

// handleListSubcategories joins each subcategory with its category name.
// The join is by ID string; a dangling Category ID renders as "".
func handleListSubcategories(w http.ResponseWriter, r *http.Request) {
	categories := make(map[string]string)
	for _, c := range store.GetAll(sheetdb.SheetCategories) {
		categories[c["ID"]] = c["Category Name"]
	}

	rows := store.GetAll(sheetdb.SheetSubcategories)
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]string{
			"ID":               row["ID"],
			"Subcategory Name": row["Subcategory Name"],
			"Category ID":      row["Category ID"],
			"Category Name":    categories[row["Category ID"]],
		})
	}
	jsonRespMeta(w, out, len(out))
}

func handleAddSubcategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		CategoryID string `json:"category_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.CategoryID == "" {
		jsonErr(w, "name and category_id required", 400)
		return
	}
	if _, found := store.GetByID(sheetdb.SheetCategories, "ID", req.CategoryID); !found {
		jsonErr(w, "Category not found", 404)
		return
	}

	id := fmt.Sprint(store.NextID(sheetdb.SheetSubcategories))
	ok := store.Insert(sheetdb.SheetSubcategories, sheetdb.Row{
		"ID":               id,
		"Subcategory Name": req.Name,
		"Category ID":      req.CategoryID,
	})
	if !ok {
		jsonErr(w, "Failed to add subcategory", 500)
		return
	}
	logActivity(currentUsername(r), "create", "subcategory", id, "Added subcategory "+req.Name)

	w.WriteHeader(201)
	jsonResp(w, sheetdb.Row{"ID": id, "Subcategory Name": req.Name, "Category ID": req.CategoryID})
}

func handleDeleteSubcategory(w http.ResponseWriter, r *http.Request, id string) {
	if !requireAdmin(w, r) {
		return
	}
	row, found := store.GetByID(sheetdb.SheetSubcategories, "ID", id)
	if !found || !store.Delete(sheetdb.SheetSubcategories, "ID", id) {
		jsonErr(w, "Subcategory not found", 404)
		return
	}
	logActivity(currentUsername(r), "delete", "subcategory", id, "Deleted subcategory "+row["Subcategory Name"])
	jsonResp(w, map[string]string{"status": "deleted"})
}
