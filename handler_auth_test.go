package main

import (
	"strings"
	"testing"

	"aims/internal/sheetdb"
	"aims/internal/testutil"
	"aims/internal/websocket"
)

func TestLoginAndMe(t *testing.T) {
	h := setupTest(t)
	cookie := login(t, h, "admin", "changeme")

	w := do(h, authedRequest("GET", "/auth/me", "", cookie))
	if w.Code != 200 {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
	var user UserInfo
	testutil.DecodeEnvelope(t, w, &user)
	if user.Username != "admin" || user.Role != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := setupTest(t)
	req := authedRequest("POST", "/auth/login", `{"username":"admin","password":"wrong"}`, nil)
	if w := do(h, req); w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestFirstRegisteredUserBecomesAdmin(t *testing.T) {
	store = testutil.NewStore(t)
	hub = websocket.NewHub()
	cfg = defaultConfig()
	initSessions("test-secret")
	h := logging(requireStore(requireAuth(newMux())))

	req := authedRequest("POST", "/auth/register",
		`{"username":"first","email":"f@example.com","password":"pw"}`, nil)
	w := do(h, req)
	if w.Code != 201 {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("register content type = %q", ct)
	}
	var user UserInfo
	testutil.DecodeEnvelope(t, w, &user)
	if user.Role != "admin" {
		t.Fatalf("first user role = %q, want admin", user.Role)
	}

	req = authedRequest("POST", "/auth/register",
		`{"username":"second","email":"s@example.com","password":"pw"}`, nil)
	w = do(h, req)
	if w.Code != 201 {
		t.Fatalf("second register: %d %s", w.Code, w.Body.String())
	}
	testutil.DecodeEnvelope(t, w, &user)
	if user.Role != "user" {
		t.Fatalf("second user role = %q, want user", user.Role)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h := setupTest(t)
	req := authedRequest("POST", "/auth/register",
		`{"username":"admin","email":"x@example.com","password":"pw"}`, nil)
	if w := do(h, req); w.Code != 409 {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestRegisterStoresBcryptHash(t *testing.T) {
	h := setupTest(t)
	req := authedRequest("POST", "/auth/register",
		`{"username":"hashcheck","email":"h@example.com","password":"secretpw"}`, nil)
	if w := do(h, req); w.Code != 201 {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}

	user, found := store.GetByID(sheetdb.SheetUsers, "Username", "hashcheck")
	if !found {
		t.Fatal("user not stored")
	}
	if user["Password"] == "secretpw" || !strings.HasPrefix(user["Password"], "$2") {
		t.Fatalf("password not bcrypt-hashed: %q", user["Password"])
	}
}

func TestUnauthenticatedAPIRejected(t *testing.T) {
	h := setupTest(t)
	if w := do(h, authedRequest("GET", "/api/v1/assets", "", nil)); w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	h := setupTest(t)
	cookie := login(t, h, "alice", "password")

	w := do(h, authedRequest("POST", "/auth/logout", "", cookie))
	if w.Code != 200 {
		t.Fatalf("logout: %d", w.Code)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
}
