package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aims/internal/sheetdb"
)

// AssetRequest carries the editable fields of an asset. All values travel
// as strings; the sheet stores text.
type AssetRequest struct {
	ItemName       string `json:"item_name"`
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory"`
	Brand          string `json:"brand"`
	Description    string `json:"description"`
	Amount         string `json:"amount"`
	Location       string `json:"location"`
	DateOfPurchase string `json:"date_of_purchase"`
	Warranty       string `json:"warranty"`
	Department     string `json:"department"`
	Ownership      string `json:"ownership"`
	Status         string `json:"status"`
}

func (req *AssetRequest) toRow() sheetdb.Row {
	return sheetdb.Row{
		"Item Name":         req.ItemName,
		"Asset Category":    req.Category,
		"Asset SubCategory": req.Subcategory,
		"Brand":             req.Brand,
		"Asset Description": req.Description,
		"Amount":            req.Amount,
		"Location":          req.Location,
		"Date of Purchase":  req.DateOfPurchase,
		"Warranty":          req.Warranty,
		"Department":        req.Department,
		"Ownership":         req.Ownership,
		"Asset Status":      req.Status,
	}
}

func handleListAssets(w http.ResponseWriter, r *http.Request) {
	rows := store.GetAll(sheetdb.SheetAssets)
	jsonRespMeta(w, rows, len(rows))
}

func handleGetAsset(w http.ResponseWriter, r *http.Request, code string) {
	row, found := store.GetByID(sheetdb.SheetAssets, "Asset Code", code)
	if !found {
		jsonErr(w, "Asset not found", 404)
		return
	}
	jsonResp(w, row)
}

func handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req AssetRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	if strings.TrimSpace(req.ItemName) == "" {
		jsonErr(w, "item_name required", 400)
		return
	}

	code := "AST-" + time.Now().Format("20060102150405")
	row := req.toRow()
	row["Asset Code"] = code
	row["Image Attachment"] = ""
	row["Document Attachment"] = ""

	if !store.Insert(sheetdb.SheetAssets, row) {
		jsonErr(w, "Failed to create asset", 500)
		return
	}
	logActivity(currentUsername(r), "create", "asset", code, "Added asset "+req.ItemName)

	w.WriteHeader(201)
	jsonResp(w, row)
}

func handleUpdateAsset(w http.ResponseWriter, r *http.Request, code string) {
	if _, found := store.GetByID(sheetdb.SheetAssets, "Asset Code", code); !found {
		jsonErr(w, "Asset not found", 404)
		return
	}
	var req AssetRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}

	if !store.Update(sheetdb.SheetAssets, "Asset Code", code, req.toRow()) {
		jsonErr(w, "Failed to update asset", 500)
		return
	}
	logActivity(currentUsername(r), "update", "asset", code, "Updated asset "+req.ItemName)

	row, _ := store.GetByID(sheetdb.SheetAssets, "Asset Code", code)
	jsonResp(w, row)
}

func handleDeleteAsset(w http.ResponseWriter, r *http.Request, code string) {
	if !requireAdmin(w, r) {
		return
	}
	row, found := store.GetByID(sheetdb.SheetAssets, "Asset Code", code)
	if !found {
		jsonErr(w, "Asset not found", 404)
		return
	}
	if !store.Delete(sheetdb.SheetAssets, "Asset Code", code) {
		jsonErr(w, "Failed to delete asset", 500)
		return
	}

	// Stored attachments go with the asset.
	for _, rel := range []string{row["Image Attachment"], row["Document Attachment"]} {
		if rel == "" {
			continue
		}
		if path, ok := uploadPath(rel); ok {
			os.Remove(path)
		}
	}

	logActivity(currentUsername(r), "delete", "asset", code, "Deleted asset "+row["Item Name"])
	jsonResp(w, map[string]string{"status": "deleted"})
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

var documentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".txt": true,
}

// handleUploadAssetAttachment accepts a multipart upload with fields "file"
// and "kind" (image or document), stores it under the uploads dir, and
// records the relative path in the asset row.
func handleUploadAssetAttachment(w http.ResponseWriter, r *http.Request, code string) {
	if _, found := store.GetByID(sheetdb.SheetAssets, "Asset Code", code); !found {
		jsonErr(w, "Asset not found", 404)
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		jsonErr(w, "Failed to parse form", 400)
		return
	}
	kind := r.FormValue("kind")
	if kind != "image" && kind != "document" {
		jsonErr(w, "kind must be image or document", 400)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonErr(w, "File required", 400)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := imageExtensions
	column := "Image Attachment"
	subdir := "images"
	if kind == "document" {
		allowed = documentExtensions
		column = "Document Attachment"
		subdir = "documents"
	}
	if !allowed[ext] {
		jsonErr(w, fmt.Sprintf("File type %s not allowed", ext), 400)
		return
	}

	safeName := filepath.Base(header.Filename)
	safeName = strings.ReplaceAll(safeName, " ", "_")
	filename := code + "_" + safeName
	rel := filepath.Join(subdir, filename)

	dir := filepath.Join(cfg.UploadsDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		jsonErr(w, "Failed to save file", 500)
		return
	}
	out, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		jsonErr(w, "Failed to save file", 500)
		return
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		jsonErr(w, "Failed to write file", 500)
		return
	}

	if !store.Update(sheetdb.SheetAssets, "Asset Code", code, sheetdb.Row{column: rel}) {
		jsonErr(w, "Failed to record attachment", 500)
		return
	}
	logActivity(currentUsername(r), "upload", "asset", code, "Attached "+kind+" "+safeName)

	w.WriteHeader(201)
	jsonResp(w, map[string]string{"path": rel, "url": "/files/" + rel})
}

// uploadPath resolves a stored relative attachment path inside the uploads
// dir, rejecting traversal outside it.
func uploadPath(rel string) (string, bool) {
	clean := filepath.Clean(rel)
	if clean == "" || clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", false
	}
	return filepath.Join(cfg.UploadsDir, clean), true
}

func handleServeFile(w http.ResponseWriter, r *http.Request, rel string) {
	path, ok := uploadPath(rel)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}
