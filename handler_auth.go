package main

import (
	"net/http"
	"strings"

	"aims/internal/sheetdb"

	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister creates a user in the Users sheet. The first user ever
// registered becomes admin; everyone after is a regular user.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		jsonErr(w, "username and password required", 400)
		return
	}

	if _, exists := store.GetByID(sheetdb.SheetUsers, "Username", req.Username); exists {
		jsonErr(w, "Username already taken", 409)
		return
	}

	role := "user"
	if len(store.GetAll(sheetdb.SheetUsers)) == 0 {
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		jsonErr(w, "Failed to hash password", 500)
		return
	}

	ok := store.Insert(sheetdb.SheetUsers, sheetdb.Row{
		"Username": req.Username,
		"Email":    strings.TrimSpace(req.Email),
		"Password": string(hash),
		"Role":     role,
	})
	if !ok {
		jsonErr(w, "Failed to create user", 500)
		return
	}

	logActivity(req.Username, "register", "user", req.Username, "User registered")

	jsonRespStatus(w, UserInfo{Username: req.Username, Email: req.Email, Role: role}, 201)
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		jsonErr(w, "Invalid request body", 400)
		return
	}

	user, found := store.GetByID(sheetdb.SheetUsers, "Username", req.Username)
	if !found {
		jsonErr(w, "Invalid username or password", 401)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user["Password"]), []byte(req.Password)); err != nil {
		jsonErr(w, "Invalid username or password", 401)
		return
	}

	role := user["Role"]
	if role == "" {
		role = "user"
	}
	if err := setSessionUser(w, r, req.Username, role); err != nil {
		jsonErr(w, "Failed to create session", 500)
		return
	}

	logActivity(req.Username, "login", "user", req.Username, "User logged in")

	jsonResp(w, UserInfo{Username: req.Username, Email: user["Email"], Role: role})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if username, _, ok := sessionUser(r); ok {
		logActivity(username, "logout", "user", username, "User logged out")
	}
	clearSession(w, r)
	jsonResp(w, map[string]string{"status": "ok"})
}

func handleMe(w http.ResponseWriter, r *http.Request) {
	username, role, ok := sessionUser(r)
	if !ok {
		jsonErr(w, "Unauthorized", 401)
		return
	}
	email := ""
	if store != nil {
		if user, found := store.GetByID(sheetdb.SheetUsers, "Username", username); found {
			email = user["Email"]
		}
	}
	jsonResp(w, UserInfo{Username: username, Email: email, Role: role})
}
