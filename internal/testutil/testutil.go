package testutil

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"aims/internal/sheetdb"

	"golang.org/x/crypto/bcrypt"
)

// NewStore returns a sheet store over an in-memory backend with all
// required sheets created.
func NewStore(t *testing.T) *sheetdb.Store {
	t.Helper()
	s, err := sheetdb.Open(sheetdb.NewMemoryBackend())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

// SeedUser inserts a user with a bcrypt-hashed password.
func SeedUser(t *testing.T, s *sheetdb.Store, username, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	ok := s.Insert(sheetdb.SheetUsers, sheetdb.Row{
		"Username": username,
		"Email":    username + "@example.com",
		"Password": string(hash),
		"Role":     role,
	})
	if !ok {
		t.Fatalf("seed user %s", username)
	}
}

// DecodeEnvelope unwraps the standard {"data": ...} response envelope into v.
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, w.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("decode data: %v (data: %s)", err, string(envelope.Data))
	}
}
