package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aims/internal/testutil"
	"aims/internal/websocket"
)

// setupTest wires the package globals to an in-memory store with one admin
// and one regular user, and returns the full handler chain.
func setupTest(t *testing.T) http.Handler {
	t.Helper()
	store = testutil.NewStore(t)
	testutil.SeedUser(t, store, "admin", "changeme", "admin")
	testutil.SeedUser(t, store, "alice", "password", "user")
	hub = websocket.NewHub()
	cfg = defaultConfig()
	cfg.UploadsDir = t.TempDir()
	initSessions("test-secret")
	return logging(requireStore(requireAuth(newMux())))
}

// login returns the session cookie for the given credentials.
func login(t *testing.T, h http.Handler, username, password string) *http.Cookie {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != 200 {
		t.Fatalf("login %s failed: %d %s", username, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func authedRequest(method, path, body string, cookie *http.Cookie) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
