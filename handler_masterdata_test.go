package main

import (
	"testing"

	"aims/internal/testutil"
)

func TestLocationAddListDelete(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")

	w := do(h, authedRequest("POST", "/api/v1/locations", `{"name":"Head Office"}`, admin))
	if w.Code != 201 {
		t.Fatalf("add: %d %s", w.Code, w.Body.String())
	}
	var created map[string]string
	testutil.DecodeEnvelope(t, w, &created)
	if created["ID"] != "1" || created["Location Name"] != "Head Office" {
		t.Fatalf("unexpected location: %v", created)
	}

	w = do(h, authedRequest("GET", "/api/v1/locations", "", admin))
	var list []map[string]string
	testutil.DecodeEnvelope(t, w, &list)
	if len(list) != 1 {
		t.Fatalf("expected 1 location, got %d", len(list))
	}

	w = do(h, authedRequest("DELETE", "/api/v1/locations/1", "", admin))
	if w.Code != 200 {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}

	w = do(h, authedRequest("GET", "/api/v1/locations", "", admin))
	testutil.DecodeEnvelope(t, w, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestDuplicateLocationRejected(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")

	do(h, authedRequest("POST", "/api/v1/locations", `{"name":"Depot"}`, admin))
	w := do(h, authedRequest("POST", "/api/v1/locations", `{"name":"depot"}`, admin))
	if w.Code != 409 {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestDeleteRequiresAdmin(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")
	user := login(t, h, "alice", "password")

	do(h, authedRequest("POST", "/api/v1/brands", `{"name":"Dell"}`, admin))

	if w := do(h, authedRequest("DELETE", "/api/v1/brands/1", "", user)); w.Code != 403 {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}
	if w := do(h, authedRequest("DELETE", "/api/v1/brands/1", "", admin)); w.Code != 200 {
		t.Fatalf("admin delete failed: %d", w.Code)
	}
}

func TestSubcategoryJoinsCategoryName(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")

	do(h, authedRequest("POST", "/api/v1/categories", `{"name":"Electronics"}`, admin))
	w := do(h, authedRequest("POST", "/api/v1/subcategories",
		`{"name":"Laptops","category_id":"1"}`, admin))
	if w.Code != 201 {
		t.Fatalf("add subcategory: %d %s", w.Code, w.Body.String())
	}

	w = do(h, authedRequest("GET", "/api/v1/subcategories", "", admin))
	var list []map[string]string
	testutil.DecodeEnvelope(t, w, &list)
	if len(list) != 1 || list[0]["Category Name"] != "Electronics" {
		t.Fatalf("join failed: %v", list)
	}
}

func TestSubcategoryRequiresExistingCategory(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")

	w := do(h, authedRequest("POST", "/api/v1/subcategories",
		`{"name":"Orphans","category_id":"42"}`, admin))
	if w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAssetTypeKeyedByCode(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")

	w := do(h, authedRequest("POST", "/api/v1/assettypes",
		`{"asset_code":"ELEC","asset_type":"Electronics","depreciation_value":"10"}`, admin))
	if w.Code != 201 {
		t.Fatalf("add: %d %s", w.Code, w.Body.String())
	}

	w = do(h, authedRequest("POST", "/api/v1/assettypes",
		`{"asset_code":"ELEC","asset_type":"Duplicate","depreciation_value":"5"}`, admin))
	if w.Code != 409 {
		t.Fatalf("expected 409 for duplicate code, got %d", w.Code)
	}

	w = do(h, authedRequest("POST", "/api/v1/assettypes",
		`{"asset_code":"FURN","asset_type":"Furniture","depreciation_value":"abc"}`, admin))
	if w.Code != 400 {
		t.Fatalf("expected 400 for bad percent, got %d", w.Code)
	}

	if w := do(h, authedRequest("DELETE", "/api/v1/assettypes/ELEC", "", admin)); w.Code != 200 {
		t.Fatalf("delete by code failed: %d", w.Code)
	}
}
