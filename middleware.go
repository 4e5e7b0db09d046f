package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const (
	ctxUsername contextKey = "username"
	ctxRole     contextKey = "role"
)

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// exemptPath reports whether a request may proceed without a session.
func exemptPath(path string) bool {
	return path == "/" ||
		path == "/auth/login" ||
		path == "/auth/register" ||
		path == "/auth/logout" ||
		path == "/auth/me" ||
		strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/files/")
}

func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if exemptPath(path) {
			next.ServeHTTP(w, r)
			return
		}

		username, role, ok := sessionUser(r)
		if !ok {
			jsonErr(w, "Unauthorized", 401)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUsername, username)
		ctx = context.WithValue(ctx, ctxRole, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireStore answers 503 on data endpoints while the record store is
// unavailable. Auth POSTs fail the same way; the server itself stays up so
// the condition is visible instead of a connection refused.
func requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			path := r.URL.Path
			if strings.HasPrefix(path, "/api/v1/") ||
				(strings.HasPrefix(path, "/auth/") && r.Method == "POST") {
				jsonErr(w, "database not configured", 503)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func currentUsername(r *http.Request) string {
	u, _ := r.Context().Value(ctxUsername).(string)
	return u
}

func isAdmin(r *http.Request) bool {
	role, _ := r.Context().Value(ctxRole).(string)
	return role == "admin"
}

// requireAdmin guards destructive endpoints.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !isAdmin(r) {
		jsonErr(w, "Admin access required", 403)
		return false
	}
	return true
}
