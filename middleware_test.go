package main

import (
	"strings"
	"testing"

	"aims/internal/testutil"
	"aims/internal/websocket"
)

func TestDegradedModeAnswers503(t *testing.T) {
	store = nil
	hub = websocket.NewHub()
	cfg = defaultConfig()
	initSessions("test-secret")
	h := logging(requireStore(requireAuth(newMux())))

	w := do(h, authedRequest("GET", "/api/v1/assets", "", nil))
	if w.Code != 503 {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "database not configured") {
		t.Fatalf("unexpected body: %s", body)
	}

	// Auth POSTs fail the same way.
	w = do(h, authedRequest("POST", "/auth/login", `{"username":"a","password":"b"}`, nil))
	if w.Code != 503 {
		t.Fatalf("login expected 503, got %d", w.Code)
	}

	// GET /auth/me still answers (401, not 503): the server is up.
	w = do(h, authedRequest("GET", "/auth/me", "", nil))
	if w.Code != 401 {
		t.Fatalf("me expected 401, got %d", w.Code)
	}
}

func TestUnknownBackendRejected(t *testing.T) {
	c := defaultConfig()
	c.Backend = "cassandra"
	if _, err := openStore(c); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestBarcodeEndpoints(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")
	seedAsset(t, "AST-77", "Label Printer", "HQ")

	w := do(h, authedRequest("GET", "/api/v1/barcodes?codes=AST-77,AST-missing", "", admin))
	var labels []BarcodeLabel
	testutil.DecodeEnvelope(t, w, &labels)
	if len(labels) != 1 || labels[0].AssetCode != "AST-77" {
		t.Fatalf("labels: %+v", labels)
	}

	w = do(h, authedRequest("GET", labels[0].ImageURL, "", admin))
	if w.Code != 200 {
		t.Fatalf("image: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	// PNG magic bytes.
	if body := w.Body.Bytes(); len(body) < 8 || body[1] != 'P' || body[2] != 'N' || body[3] != 'G' {
		t.Fatal("not a png payload")
	}

	w = do(h, authedRequest("GET", "/api/v1/barcodes/AST-missing/image", "", admin))
	if w.Code != 404 {
		t.Fatalf("expected 404 for unknown code, got %d", w.Code)
	}
}

func TestUsersListAdminOnly(t *testing.T) {
	h := setupTest(t)
	admin := login(t, h, "admin", "changeme")
	user := login(t, h, "alice", "password")

	if w := do(h, authedRequest("GET", "/api/v1/users", "", user)); w.Code != 403 {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	w := do(h, authedRequest("GET", "/api/v1/users", "", admin))
	var users []UserInfo
	testutil.DecodeEnvelope(t, w, &users)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.Username == "" || u.Role == "" {
			t.Fatalf("incomplete user: %+v", u)
		}
	}
}
