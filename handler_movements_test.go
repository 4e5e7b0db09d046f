package main

import (
	"testing"

	"aims/internal/sheetdb"
	"aims/internal/testutil"
)

func seedAsset(t *testing.T, code, name, location string) {
	t.Helper()
	ok := store.Insert(sheetdb.SheetAssets, sheetdb.Row{
		"Asset Code": code,
		"Item Name":  name,
		"Location":   location,
	})
	if !ok {
		t.Fatalf("seed asset %s", code)
	}
}

func TestMovementRelocatesAsset(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")
	seedAsset(t, "AST-100", "Projector", "HQ")

	body := `{"asset_code":"AST-100","to_location":"Warehouse","movement_date":"2026-03-01","notes":"annual audit"}`
	w := do(h, authedRequest("POST", "/api/v1/movements", body, admin))
	if w.Code != 201 {
		t.Fatalf("move: %d %s", w.Code, w.Body.String())
	}
	var mv map[string]string
	testutil.DecodeEnvelope(t, w, &mv)
	if mv["From Location"] != "HQ" || mv["To Location"] != "Warehouse" || mv["Moved By"] != "admin" {
		t.Fatalf("unexpected movement: %v", mv)
	}

	asset, _ := store.GetByID(sheetdb.SheetAssets, "Asset Code", "AST-100")
	if asset["Location"] != "Warehouse" {
		t.Fatalf("asset not relocated: %q", asset["Location"])
	}
}

func TestMovementUnknownAsset(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")

	body := `{"asset_code":"AST-404","to_location":"Warehouse"}`
	if w := do(h, authedRequest("POST", "/api/v1/movements", body, admin)); w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestMovementAppearsInLogs(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")
	seedAsset(t, "AST-200", "Scanner", "HQ")

	body := `{"asset_code":"AST-200","to_location":"Lab","movement_date":"2026-02-10"}`
	do(h, authedRequest("POST", "/api/v1/movements", body, admin))

	w := do(h, authedRequest("GET", "/api/v1/logs?type=movement", "", admin))
	var entries []LogEntry
	testutil.DecodeEnvelope(t, w, &entries)
	if len(entries) != 1 {
		t.Fatalf("expected 1 movement entry, got %d", len(entries))
	}
	if entries[0].EntityID != "AST-200" || entries[0].Type != "movement" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestLogsFilterByUserAndDate(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")
	alice := login(t, h, "alice", "password")
	seedAsset(t, "AST-300", "Monitor", "HQ")

	do(h, authedRequest("POST", "/api/v1/movements",
		`{"asset_code":"AST-300","to_location":"Desk 4","movement_date":"2026-01-15"}`, admin))
	do(h, authedRequest("POST", "/api/v1/movements",
		`{"asset_code":"AST-300","to_location":"Desk 9","movement_date":"2026-02-20"}`, alice))

	w := do(h, authedRequest("GET", "/api/v1/logs?type=movement&user=alice", "", admin))
	var entries []LogEntry
	testutil.DecodeEnvelope(t, w, &entries)
	if len(entries) != 1 || entries[0].User != "alice" {
		t.Fatalf("user filter failed: %+v", entries)
	}

	w = do(h, authedRequest("GET",
		"/api/v1/logs?type=movement&date_from=2026-02-01&date_to=2026-02-28", "", admin))
	testutil.DecodeEnvelope(t, w, &entries)
	if len(entries) != 1 || entries[0].Description != "Moved from Desk 4 to Desk 9" {
		t.Fatalf("date filter failed: %+v", entries)
	}
}
