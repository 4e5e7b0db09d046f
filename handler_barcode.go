package main

import (
	"image/png"
	"net/http"
	"strings"

	"aims/internal/sheetdb"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// handleBarcodeLabels returns printable label data for the requested asset
// codes (comma-separated), or for every asset when none are given. Unknown
// codes are skipped.
func handleBarcodeLabels(w http.ResponseWriter, r *http.Request) {
	codesParam := r.URL.Query().Get("codes")

	assets := store.GetAll(sheetdb.SheetAssets)
	wanted := map[string]bool{}
	if codesParam != "" {
		for _, c := range strings.Split(codesParam, ",") {
			if c = strings.TrimSpace(c); c != "" {
				wanted[c] = true
			}
		}
	}

	labels := []BarcodeLabel{}
	for _, a := range assets {
		code := a["Asset Code"]
		if code == "" {
			continue
		}
		if len(wanted) > 0 && !wanted[code] {
			continue
		}
		labels = append(labels, BarcodeLabel{
			AssetCode: code,
			ItemName:  a["Item Name"],
			Location:  a["Location"],
			ImageURL:  "/api/v1/barcodes/" + code + "/image",
		})
	}
	jsonRespMeta(w, labels, len(labels))
}

// handleBarcodeImage renders a Code-128 PNG for one asset code.
func handleBarcodeImage(w http.ResponseWriter, r *http.Request, code string) {
	if _, found := store.GetByID(sheetdb.SheetAssets, "Asset Code", code); !found {
		jsonErr(w, "Asset not found", 404)
		return
	}

	bc, err := code128.Encode(code)
	if err != nil {
		jsonErr(w, "Failed to encode barcode", 500)
		return
	}
	scaled, err := barcode.Scale(bc, 300, 80)
	if err != nil {
		jsonErr(w, "Failed to scale barcode", 500)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, scaled); err != nil {
		jsonErr(w, "Failed to render barcode", 500)
	}
}
